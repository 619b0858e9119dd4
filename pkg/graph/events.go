package graph

import (
	"reflect"
	"slices"
)

// ChangeKind is the type of modification announced by a Change.
type ChangeKind int

const (
	// Insert announces new rows.
	Insert ChangeKind = iota
	// Delete announces removed rows.
	Delete
	// Update announces modified values in existing rows.
	Update
)

func (k ChangeKind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Update:
		return "update"
	default:
		return "unknown"
	}
}

// Table names used in Change notifications.
const (
	TableNodes = "nodes"
	TableEdges = "edges"
)

// AllColumns marks a change that affects every column of the rows.
const AllColumns = "*"

// Change describes a mutation of a graph.
type Change struct {
	Graph  *Graph     // Graph that changed
	Table  string     // TableNodes or TableEdges
	Start  int        // First affected row
	End    int        // Last affected row (inclusive)
	Column string     // Changed column, or AllColumns
	Kind   ChangeKind // Insert, Delete or Update
}

// Listener is notified of graph changes.
type Listener interface {
	GraphChanged(c Change)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(c Change)

// GraphChanged calls f(c).
func (f ListenerFunc) GraphChanged(c Change) { f(c) }

// AddListener registers l. Registering the same listener twice delivers
// each change twice.
func (g *Graph) AddListener(l Listener) {
	g.listeners = append(g.listeners, l)
}

// RemoveListener unregisters the first registration of l. Listeners of
// non-comparable types, such as ListenerFunc, cannot be removed.
func (g *Graph) RemoveListener(l Listener) {
	i := slices.IndexFunc(g.listeners, func(x Listener) bool { return sameListener(x, l) })
	if i >= 0 {
		g.listeners = slices.Delete(g.listeners, i, i+1)
	}
}

func sameListener(a, b Listener) bool {
	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) || t == nil || !t.Comparable() {
		return false
	}
	return a == b
}

func (g *Graph) fire(table string, start, end int, col string, kind ChangeKind) {
	if len(g.listeners) == 0 {
		return
	}
	c := Change{Graph: g, Table: table, Start: start, End: end, Column: col, Kind: kind}
	for _, l := range slices.Clone(g.listeners) {
		l.GraphChanged(c)
	}
}
