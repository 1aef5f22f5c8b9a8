package export

import (
	"strings"

	zerrors "github.com/zogtools/zog/pkg/errors"
	"github.com/zogtools/zog/pkg/zotero"
)

// ResolveCollectionPath resolves a slash-separated collection name path
// (e.g. "Projects/Research/Data") to the key of the last segment.
//
// Every segment is matched by name against the entire collection list; the
// parent/child structure is ignored. A name that appears in several branches
// of the hierarchy therefore resolves to whichever collection the API listed
// first. Use [ResolveCollectionPathStrict] for hierarchy-aware resolution.
func ResolveCollectionPath(collections []zotero.Collection, path string) (string, error) {
	var key string
	for _, segment := range strings.Split(path, "/") {
		k, err := namedCollectionKey(collections, segment)
		if err != nil {
			return "", err
		}
		key = k
	}
	return key, nil
}

// namedCollectionKey returns the key of the first collection whose name
// matches name.
func namedCollectionKey(collections []zotero.Collection, name string) (string, error) {
	for _, c := range collections {
		if c.Data.Name == name {
			return c.Key, nil
		}
	}
	return "", zerrors.New(zerrors.ErrCodeCollectionNotFound, "%q is not a collection in the library", name)
}

// ResolveCollectionPathStrict resolves the path against the actual
// collection hierarchy: the first segment is matched among top-level
// collections and every later segment only among the children of the
// previous match. The returned error names the segment where the path
// breaks off.
func ResolveCollectionPathStrict(collections []zotero.Collection, path string) (string, error) {
	children := make(map[string][]zotero.Collection)
	for _, c := range collections {
		parent := string(c.Data.ParentCollection)
		children[parent] = append(children[parent], c)
	}

	var current string // empty = library root
	for i, segment := range strings.Split(path, "/") {
		key, err := childKey(children[current], segment)
		if err != nil {
			if i == 0 {
				return "", zerrors.New(zerrors.ErrCodeCollectionNotFound, "%q is not a top-level collection", segment)
			}
			return "", zerrors.New(zerrors.ErrCodeCollectionNotFound, "%q has no sub-collection %q", strings.Join(strings.Split(path, "/")[:i], "/"), segment)
		}
		current = key
	}
	return current, nil
}

func childKey(siblings []zotero.Collection, name string) (string, error) {
	for _, c := range siblings {
		if c.Data.Name == name {
			return c.Key, nil
		}
	}
	return "", zerrors.New(zerrors.ErrCodeCollectionNotFound, "%q not found", name)
}
