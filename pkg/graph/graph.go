package graph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/stackviz/pkg/graph/neighbors"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrDuplicateEdgeID is returned by [Graph.AddEdge] when an explicit edge
	// ID is already taken.
	ErrDuplicateEdgeID = errors.New("duplicate edge ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the Source
	// node does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the Target
	// node does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrUnknownNode is returned by lookups and removals naming a node that
	// is not in the graph.
	ErrUnknownNode = errors.New("unknown node")
)

// Metadata stores arbitrary key-value pairs attached to nodes or the graph,
// typically display labels or attributes read by renderers.
type Metadata map[string]any

// Node is a vertex of the graph.
type Node struct {
	ID   string   // Unique identifier
	Meta Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// Label returns the "label" metadata entry when it is a non-empty string,
// otherwise the node ID.
func (n Node) Label() string {
	if s, ok := n.Meta["label"].(string); ok && s != "" {
		return s
	}
	return n.ID
}

// Edge connects two nodes. Direction is recorded but incidence queries treat
// both endpoints alike.
type Edge struct {
	ID     string   // Unique identifier; assigned by AddEdge when empty
	Source string   // Source node ID
	Target string   // Target node ID
	Meta   Metadata // Arbitrary key-value metadata (never nil after AddEdge)
}

// AdjacentNode returns the endpoint of e opposite pivot. For a self-loop the
// pivot itself is returned. The result is meaningless when pivot is not an
// endpoint; check with IsIncident first.
func (e Edge) AdjacentNode(pivot string) string {
	if e.Source == pivot {
		return e.Target
	}
	return e.Source
}

// IsIncident reports whether id is one of the endpoints of e.
func (e Edge) IsIncident(id string) bool {
	return e.Source == id || e.Target == id
}

// String formats the edge as "source->target".
func (e Edge) String() string { return fmt.Sprintf("%s->%s", e.Source, e.Target) }

// Graph is a multigraph keyed by node ID.
//
// The zero value is not usable - use New to create a valid Graph.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	nodes     map[string]*Node
	order     []string // node IDs in insertion order
	edges     []Edge
	edgeIDs   map[string]struct{}
	incident  map[string][]int // nodeID -> indices into edges
	meta      Metadata
	nextEdge  int
	listeners []Listener
}

// New creates an empty Graph with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *Graph {
	if meta == nil {
		meta = Metadata{}
	}
	return &Graph{
		nodes:    make(map[string]*Node),
		edgeIDs:  make(map[string]struct{}),
		incident: make(map[string][]int),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
func (g *Graph) Meta() Metadata { return g.meta }

// AddNode adds a node to the graph. Returns ErrInvalidNodeID if the node ID
// is empty, or ErrDuplicateNodeID if a node with the same ID exists.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	row := len(g.order) - 1
	g.fire(TableNodes, row, row, AllColumns, Insert)
	return nil
}

// AddEdge adds an edge between two existing nodes. Returns
// ErrUnknownSourceNode or ErrUnknownTargetNode for missing endpoints and
// ErrDuplicateEdgeID when an explicit ID is already in use. An empty ID is
// replaced by a generated one ("e0", "e1", ...).
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.Source]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.Target]; !ok {
		return ErrUnknownTargetNode
	}
	if e.ID == "" {
		e.ID = g.generateEdgeID()
	} else if _, dup := g.edgeIDs[e.ID]; dup {
		return ErrDuplicateEdgeID
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}

	idx := len(g.edges)
	g.edges = append(g.edges, e)
	g.edgeIDs[e.ID] = struct{}{}
	g.incident[e.Source] = append(g.incident[e.Source], idx)
	if e.Target != e.Source {
		g.incident[e.Target] = append(g.incident[e.Target], idx)
	}
	g.fire(TableEdges, idx, idx, AllColumns, Insert)
	return nil
}

func (g *Graph) generateEdgeID() string {
	for {
		id := fmt.Sprintf("e%d", g.nextEdge)
		g.nextEdge++
		if _, taken := g.edgeIDs[id]; !taken {
			return id
		}
	}
}

// RemoveEdge removes the edge with the given ID. It reports whether an edge
// was removed.
func (g *Graph) RemoveEdge(id string) bool {
	idx := slices.IndexFunc(g.edges, func(e Edge) bool { return e.ID == id })
	if idx < 0 {
		return false
	}
	g.edges = slices.Delete(g.edges, idx, idx+1)
	delete(g.edgeIDs, id)
	g.reindex()
	g.fire(TableEdges, idx, idx, AllColumns, Delete)
	return true
}

// RemoveNode removes a node and every edge incident to it. Edge deletions
// are announced before the node deletion.
func (g *Graph) RemoveNode(id string) error {
	if _, ok := g.nodes[id]; !ok {
		return ErrUnknownNode
	}
	for _, e := range g.IncidentEdges(id) {
		g.RemoveEdge(e.ID)
	}
	row := slices.Index(g.order, id)
	g.order = slices.Delete(g.order, row, row+1)
	delete(g.nodes, id)
	delete(g.incident, id)
	g.fire(TableNodes, row, row, AllColumns, Delete)
	return nil
}

// SetNodeMeta sets one metadata entry on a node and announces the update
// with the key as the changed column.
func (g *Graph) SetNodeMeta(id, key string, value any) error {
	n, ok := g.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	n.Meta[key] = value
	row := slices.Index(g.order, id)
	g.fire(TableNodes, row, row, key, Update)
	return nil
}

// reindex rebuilds the incidence lists after an edge removal shifted indices.
func (g *Graph) reindex() {
	g.incident = make(map[string][]int, len(g.nodes))
	for i, e := range g.edges {
		g.incident[e.Source] = append(g.incident[e.Source], i)
		if e.Target != e.Source {
			g.incident[e.Target] = append(g.incident[e.Target], i)
		}
	}
}

// Node returns the node with the given ID and true, or nil and false if not
// found. The returned pointer refers to the node stored in the graph.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Degree returns the number of edges incident to the node. A self-loop
// counts once.
func (g *Graph) Degree(id string) int { return len(g.incident[id]) }

// IncidentEdges returns copies of the edges touching id, in insertion order.
// Returns nil for unknown nodes.
func (g *Graph) IncidentEdges(id string) []Edge {
	idx := g.incident[id]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Edge, len(idx))
	for i, j := range idx {
		out[i] = g.edges[j]
	}
	return out
}

// OutEdges returns the edges whose source is id.
func (g *Graph) OutEdges(id string) []Edge {
	return slices.DeleteFunc(g.IncidentEdges(id), func(e Edge) bool { return e.Source != id })
}

// InEdges returns the edges whose target is id.
func (g *Graph) InEdges(id string) []Edge {
	return slices.DeleteFunc(g.IncidentEdges(id), func(e Edge) bool { return e.Target != id })
}

// EdgeIter returns a forward-only iterator over the edges incident to id.
// The iterator works on a snapshot taken at call time.
func (g *Graph) EdgeIter(id string) neighbors.EdgeIterator[Edge] {
	return neighbors.SliceEdges(g.IncidentEdges(id))
}

// Neighbors returns an iterator over the nodes adjacent to id. Nodes
// connected through several edges are yielded once per edge.
func (g *Graph) Neighbors(id string) *neighbors.Iterator[string, Edge] {
	return neighbors.New[string, Edge](id, g.EdgeIter(id))
}

// NeighborIDs collects the distinct neighbors of id in first-seen order.
// Returns ErrUnknownNode when id is not in the graph.
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	if _, ok := g.nodes[id]; !ok {
		return nil, ErrUnknownNode
	}
	seen := make(map[string]struct{})
	var out []string
	it := g.Neighbors(id)
	for it.HasNext() {
		n, err := it.Next()
		if err != nil {
			return out, err
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out, nil
}
