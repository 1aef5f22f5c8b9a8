package export

import (
	"context"
	"slices"

	"github.com/zogtools/zog/pkg/graph"
	"github.com/zogtools/zog/pkg/zotero"
)

// NodeKeys returns the sorted set of distinct keys appearing as either
// endpoint of any edge.
func NodeKeys(edges []graph.Edge) []string {
	set := make(map[string]struct{}, len(edges))
	for _, e := range edges {
		set[e.From] = struct{}{}
		set[e.To] = struct{}{}
	}
	var keys []string
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// NodeData pairs a node key with its fetched display attributes.
type NodeData struct {
	Key   string
	Attrs graph.Attrs
}

// FetchNodeData fetches the record of every node key from the store, one
// request per key, and extracts the display attributes. Each attribute
// starts as [graph.Fallback] and is overwritten only when the fetched
// record carries a value for it.
//
// The loop is deliberately serial; one round-trip per node is the dominant
// cost for large collections and an accepted one.
func FetchNodeData(ctx context.Context, store zotero.Store, keys []string) ([]NodeData, error) {
	out := make([]NodeData, 0, len(keys))
	for _, key := range keys {
		item, err := store.Item(ctx, key)
		if err != nil {
			return nil, err
		}

		attrs := graph.Attrs{
			ItemType: graph.Fallback,
			Title:    graph.Fallback,
			URL:      graph.Fallback,
		}
		if v := item.Data.ItemType; v != "" {
			attrs.ItemType = v
		}
		if v := item.Data.Title; v != "" {
			attrs.Title = v
		}
		if v := item.Data.URL; v != "" {
			attrs.URL = v
		}

		out = append(out, NodeData{Key: key, Attrs: attrs})
	}
	return out, nil
}
