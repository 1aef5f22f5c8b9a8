package graph

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// WriteDOT encodes the graph as Graphviz DOT text and writes it to w.
// Node labels prefer the item title and fall back to the item key; the url
// and item type ride along as node attributes for downstream tooling.
func WriteDOT(g *Directed, w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString("digraph items {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=rounded];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := n.Attrs.Title
		if label == Fallback {
			label = n.ID
		}
		fmt.Fprintf(&buf, "  %q [label=%q, item_type=%q, url=%q];\n",
			n.ID, label, n.Attrs.ItemType, n.Attrs.URL)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// ExportDOT writes the graph to a DOT file at path, overwriting any
// existing file.
func ExportDOT(g *Directed, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDOT(g, f)
}
