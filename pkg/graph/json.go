package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type document struct {
	Meta  Metadata `json:"meta,omitempty"`
	Nodes []node   `json:"nodes"`
	Edges []edge   `json:"edges"`
}

type node struct {
	ID   string   `json:"id"`
	Meta Metadata `json:"meta,omitempty"`
}

// edge accepts "from"/"to" as aliases so dependency graphs exported by other
// tools import unchanged.
type edge struct {
	ID     string   `json:"id,omitempty"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	From   string   `json:"from,omitempty"`
	To     string   `json:"to,omitempty"`
	Meta   Metadata `json:"meta,omitempty"`
}

// ReadJSON decodes a node-link document from r.
//
// Each node must have an "id". Each edge must name existing nodes through
// "source" and "target" (or "from" and "to"). Errors are wrapped with the
// offending node or edge. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Graph, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := New(data.Meta)
	for _, n := range data.Nodes {
		if err := g.AddNode(Node{ID: n.ID, Meta: n.Meta}); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		src, dst := e.Source, e.Target
		if src == "" {
			src = e.From
		}
		if dst == "" {
			dst = e.To
		}
		if err := g.AddEdge(Edge{ID: e.ID, Source: src, Target: dst, Meta: e.Meta}); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", src, dst, err)
		}
	}
	return g, nil
}

// ImportJSON reads the graph stored at path.
func ImportJSON(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes g as an indented node-link document. The output can be
// read back with [ReadJSON].
func WriteJSON(g *Graph, w io.Writer) error {
	out := document{
		Nodes: make([]node, 0, g.NodeCount()),
		Edges: make([]edge, 0, g.EdgeCount()),
	}
	if len(g.meta) > 0 {
		out.Meta = g.meta
	}
	for _, n := range g.Nodes() {
		nd := node{ID: n.ID}
		if len(n.Meta) > 0 {
			nd.Meta = n.Meta
		}
		out.Nodes = append(out.Nodes, nd)
	}
	for _, e := range g.edges {
		ed := edge{ID: e.ID, Source: e.Source, Target: e.Target}
		if len(e.Meta) > 0 {
			ed.Meta = e.Meta
		}
		out.Edges = append(out.Edges, ed)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
