package zotero

import (
	"encoding/json"
	"strings"

	zerrors "github.com/zogtools/zog/pkg/errors"
)

// RelationDC is the relations key holding cross-references between items.
const RelationDC = "dc:relation"

// Collection is a named grouping of items in a Zotero library.
// Collections form a tree via ParentCollection.
type Collection struct {
	Key  string         `json:"key"`
	Data CollectionData `json:"data"`
}

// CollectionData is the data envelope of a collection record.
type CollectionData struct {
	Key              string    `json:"key"`
	Name             string    `json:"name"`
	ParentCollection ParentKey `json:"parentCollection"`
}

// ParentKey is the key of a collection's parent. The API encodes a top-level
// collection as the JSON literal false instead of a string, so this type
// decodes both; a top-level collection yields the empty string.
type ParentKey string

// IsRoot reports whether the collection is top-level.
func (p ParentKey) IsRoot() bool { return p == "" }

// UnmarshalJSON implements json.Unmarshaler for the false-or-string union.
func (p *ParentKey) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "false" {
		*p = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return zerrors.Wrap(zerrors.ErrCodeInvalidInput, err, "parentCollection must be false or a string")
	}
	*p = ParentKey(s)
	return nil
}

// Item is a bibliographic record with metadata and optional outbound
// relations to other items.
type Item struct {
	Key  string   `json:"key"`
	Data ItemData `json:"data"`
}

// ItemData is the data envelope of an item record. Fields absent upstream
// decode to the empty string; callers decide how to represent absence.
type ItemData struct {
	Key       string                  `json:"key"`
	ItemType  string                  `json:"itemType"`
	Title     string                  `json:"title"`
	URL       string                  `json:"url"`
	Relations map[string]RelationList `json:"relations"`
}

// Related returns the dc:relation URIs and whether the entry exists at all.
// An existing-but-empty list is reported as present, matching the API's
// distinction between "no relations declared" and "relations cleared".
func (d ItemData) Related() ([]string, bool) {
	rel, ok := d.Relations[RelationDC]
	return rel, ok
}

// RelationList is a list of relation URIs. The API serves a single relation
// as a bare string and multiple relations as a string array; both decode to
// a uniform slice. Any other shape fails with INVALID_RELATION so malformed
// records surface instead of silently degrading.
type RelationList []string

// UnmarshalJSON implements json.Unmarshaler for the string-or-array union.
func (r *RelationList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*r = RelationList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return zerrors.New(zerrors.ErrCodeInvalidRelation, "relation must be a string or list of strings, got %s", string(data))
	}
	*r = RelationList(many)
	return nil
}
