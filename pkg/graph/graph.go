// Package graph provides the directed item graph and its serializations.
//
// Nodes are items keyed by their Zotero item key and carry the three display
// attributes the exporter collects. Edges are an ordered bag of (source,
// target) pairs; duplicates are permitted and no deduplication is performed.
// [WriteGraphML] emits nodes sorted by key, so exporting the same library
// twice produces byte-identical files.
package graph

import (
	"slices"
	"strings"
)

// Fallback is the attribute value used when the upstream record does not
// provide a field.
const Fallback = "null"

// Attrs holds the display attributes attached to a node. Every field is
// always populated: either a real value or [Fallback].
type Attrs struct {
	ItemType string
	Title    string
	URL      string
}

// Node is a vertex of the exported graph.
type Node struct {
	ID    string
	Attrs Attrs
}

// Edge is a directed connection between two nodes. A self-loop (From == To)
// marks an item without outbound relations.
type Edge struct {
	From string
	To   string
}

// Directed is a directed graph with attribute-carrying nodes and a bag of
// edges. The zero value is not usable; use [NewDirected].
//
// Directed is not safe for concurrent use without external synchronization.
type Directed struct {
	nodes map[string]Attrs
	edges []Edge
}

// NewDirected creates an empty directed graph.
func NewDirected() *Directed {
	return &Directed{nodes: make(map[string]Attrs)}
}

// AddNode adds a node with the given attributes. Adding an existing ID
// overwrites its attributes; the last write wins.
func (g *Directed) AddNode(id string, attrs Attrs) {
	g.nodes[id] = attrs
}

// AddEdge appends a directed edge. Endpoints are not required to exist as
// nodes and duplicate edges are kept.
func (g *Directed) AddEdge(from, to string) {
	g.edges = append(g.edges, Edge{From: from, To: to})
}

// Node returns the attributes of the node with the given ID.
func (g *Directed) Node(id string) (Attrs, bool) {
	attrs, ok := g.nodes[id]
	return attrs, ok
}

// Nodes returns all nodes sorted by ID.
func (g *Directed) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for id, attrs := range g.nodes {
		out = append(out, Node{ID: id, Attrs: attrs})
	}
	slices.SortFunc(out, func(a, b Node) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Edges returns all edges in insertion order.
func (g *Directed) Edges() []Edge {
	return slices.Clone(g.edges)
}

// NodeCount returns the number of nodes.
func (g *Directed) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Directed) EdgeCount() int { return len(g.edges) }
