package graph

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

const (
	graphmlNS     = "http://graphml.graphdrawing.org/xmlns"
	graphmlXSI    = "http://www.w3.org/2001/XMLSchema-instance"
	graphmlSchema = "http://graphml.graphdrawing.org/xmlns http://graphml.graphdrawing.org/xmlns/1.0/graphml.xsd"
)

// GraphML key IDs, declared in this order in the output document.
const (
	keyItemType = "d0"
	keyTitle    = "d1"
	keyURL      = "d2"
)

type xmlDocument struct {
	XMLName   xml.Name `xml:"graphml"`
	Namespace string   `xml:"xmlns,attr"`
	XSI       string   `xml:"xmlns:xsi,attr"`
	SchemaLoc string   `xml:"xsi:schemaLocation,attr"`
	Keys      []xmlKey `xml:"key"`
	Graph     xmlGraph `xml:"graph"`
}

type xmlKey struct {
	ID   string `xml:"id,attr"`
	For  string `xml:"for,attr"`
	Name string `xml:"attr.name,attr"`
	Type string `xml:"attr.type,attr"`
}

type xmlGraph struct {
	EdgeDefault string    `xml:"edgedefault,attr"`
	Nodes       []xmlNode `xml:"node"`
	Edges       []xmlEdge `xml:"edge"`
}

type xmlNode struct {
	ID   string    `xml:"id,attr"`
	Data []xmlData `xml:"data"`
}

type xmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

type xmlEdge struct {
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

// WriteGraphML encodes the graph as pretty-printed GraphML and writes it
// to w. Nodes appear sorted by ID and edges in insertion order, so output
// for a given graph is deterministic.
func WriteGraphML(g *Directed, w io.Writer) error {
	doc := xmlDocument{
		Namespace: graphmlNS,
		XSI:       graphmlXSI,
		SchemaLoc: graphmlSchema,
		Keys: []xmlKey{
			{ID: keyItemType, For: "node", Name: "item_type", Type: "string"},
			{ID: keyTitle, For: "node", Name: "title", Type: "string"},
			{ID: keyURL, For: "node", Name: "url", Type: "string"},
		},
		Graph: xmlGraph{EdgeDefault: "directed"},
	}

	for _, n := range g.Nodes() {
		doc.Graph.Nodes = append(doc.Graph.Nodes, xmlNode{
			ID: n.ID,
			Data: []xmlData{
				{Key: keyItemType, Value: n.Attrs.ItemType},
				{Key: keyTitle, Value: n.Attrs.Title},
				{Key: keyURL, Value: n.Attrs.URL},
			},
		})
	}
	for _, e := range g.Edges() {
		doc.Graph.Edges = append(doc.Graph.Edges, xmlEdge{Source: e.From, Target: e.To})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// ExportGraphML writes the graph to a GraphML file at path, overwriting any
// existing file. Parent directories are not created.
func ExportGraphML(g *Directed, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraphML(g, f)
}
