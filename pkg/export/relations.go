package export

import (
	"strings"

	"github.com/zogtools/zog/pkg/graph"
	"github.com/zogtools/zog/pkg/zotero"
)

// Relationships derives the directed edge list from a collection's items.
//
// For each item with a dc:relation entry, one edge is emitted per relation
// URI, the target being the final "/"-delimited segment of the URI. An item
// without a dc:relation entry yields a single self-loop, which keeps
// isolated items visible in the exported graph. An item whose relation list
// exists but is empty yields no edges at all.
//
// Duplicate edges are preserved; nothing is merged or deduplicated.
func Relationships(items []zotero.Item) []graph.Edge {
	var edges []graph.Edge

	for _, item := range items {
		key := item.Data.Key
		if key == "" {
			key = item.Key
		}

		uris, ok := item.Data.Related()
		if !ok {
			edges = append(edges, graph.Edge{From: key, To: key})
			continue
		}
		for _, uri := range uris {
			edges = append(edges, graph.Edge{From: key, To: targetKey(uri)})
		}
	}
	return edges
}

// targetKey extracts the related item's key from a relation URI such as
// "http://zotero.org/users/1/items/ABCD".
func targetKey(uri string) string {
	return uri[strings.LastIndex(uri, "/")+1:]
}
