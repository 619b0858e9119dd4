// Package neighbors turns an iterator over the edges incident to a node into
// an iterator over the nodes on the other side of those edges.
//
// The traversal is lazy and forward-only: each call to [Iterator.Next]
// consumes one edge from the underlying iterator and yields the endpoint
// opposite the pivot. It cannot be restarted, does not support removal and
// must not be shared between goroutines. Mutating the graph while a
// traversal is in flight leaves the result undefined.
//
//	it := neighbors.New("hub", neighbors.SliceEdges(edges))
//	for it.HasNext() {
//	    n, err := it.Next()
//	    ...
//	}
package neighbors

import (
	"iter"

	errs "github.com/matzehuels/stackviz/pkg/errors"
)

// ErrExhausted is returned by Next once the underlying edges are consumed.
var ErrExhausted = errs.New(errs.ErrCodeUnsupported, "neighbor iterator exhausted")

// ErrRemove is returned by Remove; neighbor traversals are read-only.
var ErrRemove = errs.New(errs.ErrCodeUnsupported, "remove is not supported by neighbor iterators")

// Edge is anything that can name its endpoint opposite a given node.
type Edge[N any] interface {
	AdjacentNode(pivot N) N
}

// Incidence is optionally implemented by edges that can tell whether a node
// is one of their endpoints. When available, Iterator uses it to reject
// edges that do not touch the pivot.
type Incidence[N any] interface {
	IsIncident(n N) bool
}

// EdgeIterator is a forward-only source of edges.
type EdgeIterator[E any] interface {
	HasNext() bool
	Next() (E, error)
}

// Iterator yields the neighbors of a pivot node.
type Iterator[N any, E Edge[N]] struct {
	pivot N
	edges EdgeIterator[E]
}

// New creates an Iterator over the nodes adjacent to pivot through edges.
// Every edge produced by edges is expected to be incident to pivot.
func New[N any, E Edge[N]](pivot N, edges EdgeIterator[E]) *Iterator[N, E] {
	return &Iterator[N, E]{pivot: pivot, edges: edges}
}

// Pivot returns the node the traversal is anchored to.
func (it *Iterator[N, E]) Pivot() N { return it.pivot }

// HasNext reports whether another neighbor is available.
func (it *Iterator[N, E]) HasNext() bool { return it.edges.HasNext() }

// Next consumes the next incident edge and returns its endpoint opposite the
// pivot. It returns [ErrExhausted] past the end.
func (it *Iterator[N, E]) Next() (N, error) {
	var zero N
	if !it.edges.HasNext() {
		return zero, ErrExhausted
	}
	e, err := it.edges.Next()
	if err != nil {
		return zero, err
	}
	if inc, ok := any(e).(Incidence[N]); ok && !inc.IsIncident(it.pivot) {
		return zero, errs.New(errs.ErrCodeInvalidInput, "edge %v is not incident to pivot %v", e, it.pivot)
	}
	return e.AdjacentNode(it.pivot), nil
}

// Remove always fails with [ErrRemove].
func (it *Iterator[N, E]) Remove() error { return ErrRemove }

// Seq drains the iterator as a range-over-func sequence. Iteration stops at
// the first error; use Next directly when errors must be observed.
func (it *Iterator[N, E]) Seq() iter.Seq[N] {
	return func(yield func(N) bool) {
		for it.HasNext() {
			n, err := it.Next()
			if err != nil || !yield(n) {
				return
			}
		}
	}
}

// Collect drains the iterator into a slice, stopping at the first error.
func Collect[N any, E Edge[N]](it *Iterator[N, E]) ([]N, error) {
	var out []N
	for it.HasNext() {
		n, err := it.Next()
		if err != nil {
			return out, err
		}
		out = append(out, n)
	}
	return out, nil
}

// sliceIter walks a slice of edges.
type sliceIter[E any] struct {
	edges []E
	pos   int
}

// SliceEdges adapts a slice to an EdgeIterator. The slice is not copied.
func SliceEdges[E any](edges []E) EdgeIterator[E] {
	return &sliceIter[E]{edges: edges}
}

func (s *sliceIter[E]) HasNext() bool { return s.pos < len(s.edges) }

func (s *sliceIter[E]) Next() (E, error) {
	var zero E
	if s.pos >= len(s.edges) {
		return zero, ErrExhausted
	}
	e := s.edges[s.pos]
	s.pos++
	return e, nil
}
