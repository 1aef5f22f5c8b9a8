package graph

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleGraph() *Directed {
	g := NewDirected()
	g.AddNode("I1", Attrs{ItemType: "journalArticle", Title: "A Study of Things", URL: "https://example.org/things"})
	g.AddNode("I2", Attrs{ItemType: "note", Title: Fallback, URL: Fallback})
	g.AddEdge("I1", "I2")
	g.AddEdge("I2", "I2")
	return g
}

func TestWriteGraphML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGraphML(sampleGraph(), &buf); err != nil {
		t.Fatalf("WriteGraphML: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`xmlns="http://graphml.graphdrawing.org/xmlns"`,
		`<key id="d0" for="node" attr.name="item_type" attr.type="string">`,
		`<key id="d1" for="node" attr.name="title" attr.type="string">`,
		`<key id="d2" for="node" attr.name="url" attr.type="string">`,
		`<graph edgedefault="directed">`,
		`<node id="I1">`,
		`<data key="d1">A Study of Things</data>`,
		`<data key="d1">null</data>`,
		`<edge source="I1" target="I2">`,
		`<edge source="I2" target="I2">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}

	// Pretty-printed: the document spans multiple indented lines.
	if got := strings.Count(out, "\n"); got < 10 {
		t.Errorf("output has %d lines, want pretty-printed form", got)
	}

	// The output must remain well-formed XML.
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		if _, err := dec.Token(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("output is not well-formed XML: %v", err)
		}
	}
}

func TestWriteGraphMLDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	if err := WriteGraphML(sampleGraph(), &first); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteGraphML(sampleGraph(), &second); err != nil {
		t.Fatalf("second write: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("two writes of the same graph differ")
	}
}

func TestWriteGraphMLEscapesMarkup(t *testing.T) {
	g := NewDirected()
	g.AddNode("I1", Attrs{ItemType: "note", Title: `Ampersands & <tags>`, URL: Fallback})
	g.AddEdge("I1", "I1")

	var buf bytes.Buffer
	if err := WriteGraphML(g, &buf); err != nil {
		t.Fatalf("WriteGraphML: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Ampersands &amp; &lt;tags&gt;") {
		t.Errorf("markup not escaped:\n%s", out)
	}
}

func TestExportGraphML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.graphml")
	if err := ExportGraphML(sampleGraph(), path); err != nil {
		t.Fatalf("ExportGraphML: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), `<node id="I1">`) {
		t.Error("exported file missing node I1")
	}

	// A second export overwrites the file rather than appending.
	if err := ExportGraphML(sampleGraph(), path); err != nil {
		t.Fatalf("re-export: %v", err)
	}
	again, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Error("re-export changed the file contents")
	}
}
