// Package export implements the collection-to-graph pipeline: resolve the
// collection path, list its items, derive the relation edges, enumerate the
// node set, fetch per-node display metadata, and assemble the directed
// graph.
//
// The pipeline is a single linear pass. Nothing is cached, nothing is
// fetched concurrently, and any failure aborts the run before output is
// written.
package export

import (
	"context"

	"github.com/zogtools/zog/pkg/graph"
	"github.com/zogtools/zog/pkg/zotero"
)

// Options configure a pipeline run.
type Options struct {
	// CollectionPath is the slash-separated name path of the collection
	// to export.
	CollectionPath string

	// StrictHierarchy resolves each path segment only among the children
	// of the previous segment instead of the whole collection list.
	StrictHierarchy bool

	// Logger receives progress messages. Nil disables progress logging.
	Logger func(msg string, args ...any)
}

func (o Options) logf(msg string, args ...any) {
	if o.Logger != nil {
		o.Logger(msg, args...)
	}
}

// Run executes the pipeline against the store and returns the assembled
// graph. The caller is responsible for serializing it.
func Run(ctx context.Context, store zotero.Store, opts Options) (*graph.Directed, error) {
	collections, err := store.Collections(ctx)
	if err != nil {
		return nil, err
	}

	resolve := ResolveCollectionPath
	if opts.StrictHierarchy {
		resolve = ResolveCollectionPathStrict
	}
	key, err := resolve(collections, opts.CollectionPath)
	if err != nil {
		return nil, err
	}
	opts.logf("Resolved %q to collection %s", opts.CollectionPath, key)

	items, err := store.CollectionItems(ctx, key)
	if err != nil {
		return nil, err
	}
	opts.logf("Collection %s contains %d items", key, len(items))

	edges := Relationships(items)
	keys := NodeKeys(edges)
	opts.logf("Extracted %d relations across %d nodes", len(edges), len(keys))

	nodes, err := FetchNodeData(ctx, store, keys)
	if err != nil {
		return nil, err
	}

	g := graph.NewDirected()
	for _, n := range nodes {
		g.AddNode(n.Key, n.Attrs)
	}
	for _, e := range edges {
		g.AddEdge(e.From, e.To)
	}
	return g, nil
}
