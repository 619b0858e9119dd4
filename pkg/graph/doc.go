// Package graph provides the node/edge model that the neighborhood views
// and the neighbor traversal operate on.
//
// # Overview
//
// A [Graph] is a multigraph of string-identified nodes. Edges have a source
// and a target, but incidence is symmetric: [Graph.IncidentEdges] returns
// every edge touching a node regardless of direction, in insertion order.
// Self-loops and parallel edges are allowed.
//
//	g := graph.New(nil)
//	_ = g.AddNode(graph.Node{ID: "alice"})
//	_ = g.AddNode(graph.Node{ID: "bob"})
//	_ = g.AddEdge(graph.Edge{Source: "alice", Target: "bob"})
//
// # Neighbors
//
// [Graph.Neighbors] adapts the incident edges of a pivot into a
// [neighbors.Iterator] that yields the node on the other side of each edge:
//
//	it := g.Neighbors("bob")
//	for id := range it.Seq() {
//	    fmt.Println(id) // alice
//	}
//
// # Change Notifications
//
// Listeners registered with [Graph.AddListener] receive a [Change] for every
// node or edge insertion, deletion and metadata update. A change names the
// table ("nodes" or "edges"), the affected row range, the column (or
// [AllColumns]) and the [ChangeKind]. Listeners run synchronously on the
// mutating goroutine.
//
// # Serialization
//
// [ReadJSON] and [WriteJSON] use the same node-link document shape as the
// rest of the toolchain:
//
//	{
//	  "nodes": [{"id": "alice"}, {"id": "bob"}],
//	  "edges": [{"source": "alice", "target": "bob"}]
//	}
//
// A Graph is not safe for concurrent use without external synchronization.
package graph
