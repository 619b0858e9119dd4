package nodelink

import (
	"math"

	errs "github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/geom"
	"github.com/matzehuels/stackviz/pkg/graph"
)

const (
	ringMargin  = 40.0
	boxHeight   = 24.0
	boxMinWidth = 40.0
	boxMaxWidth = 160.0
	charWidth   = 7.0
	boxPadding  = 16.0
)

// Box is a node drawn as a rectangle.
type Box struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Rect  geom.Rect `json:"rect"`
}

// Link connects the pivot box to a neighbor box. From and To lie on the
// boundaries of the two boxes.
type Link struct {
	Target string     `json:"target"`
	From   geom.Point `json:"from"`
	To     geom.Point `json:"to"`
	Edges  int        `json:"edges"` // parallel edges folded into this link
}

// Neighborhood is the radial layout of a pivot and its neighbors.
type Neighborhood struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Pivot     Box     `json:"pivot"`
	Neighbors []Box   `json:"neighbors"`
	Links     []Link  `json:"links"`
}

// Radial lays out pivot and its neighbors on a w×h canvas. Neighbors appear
// once each, in the order their first edge was added, starting at twelve
// o'clock and going clockwise. Self-loops are ignored.
func Radial(g *graph.Graph, pivot string, w, h float64) (Neighborhood, error) {
	if !(w > 0 && h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return Neighborhood{}, errs.New(errs.ErrCodeInvalidConfig, "invalid canvas size %vx%v", w, h)
	}
	pn, ok := g.Node(pivot)
	if !ok {
		return Neighborhood{}, errs.New(errs.ErrCodeNodeNotFound, "node %q not found", pivot)
	}

	ids, counts, err := distinctNeighbors(g, pivot)
	if err != nil {
		return Neighborhood{}, err
	}

	center := geom.Point{X: w / 2, Y: h / 2}
	out := Neighborhood{
		Width:     w,
		Height:    h,
		Pivot:     newBox(*pn, center),
		Neighbors: make([]Box, 0, len(ids)),
		Links:     make([]Link, 0, len(ids)),
	}

	radius := max(0, min(w, h)/2-ringMargin)
	for k, id := range ids {
		angle := -math.Pi/2 + 2*math.Pi*float64(k)/float64(len(ids))
		at := geom.Point{X: center.X + radius*math.Cos(angle), Y: center.Y + radius*math.Sin(angle)}
		n, _ := g.Node(id)
		box := newBox(*n, at)
		from, to := geom.ClipSegment(out.Pivot.Rect, box.Rect)
		out.Neighbors = append(out.Neighbors, box)
		out.Links = append(out.Links, Link{Target: id, From: from, To: to, Edges: counts[id]})
	}
	return out, nil
}

// distinctNeighbors walks the neighbor iterator once, folding parallel edges.
func distinctNeighbors(g *graph.Graph, pivot string) ([]string, map[string]int, error) {
	counts := make(map[string]int)
	var ids []string
	it := g.Neighbors(pivot)
	for it.HasNext() {
		id, err := it.Next()
		if err != nil {
			return nil, nil, errs.Wrap(errs.ErrCodeInternal, err, "iterate neighbors of %q", pivot)
		}
		if id == pivot {
			continue
		}
		if counts[id] == 0 {
			ids = append(ids, id)
		}
		counts[id]++
	}
	return ids, counts, nil
}

func newBox(n graph.Node, center geom.Point) Box {
	label := n.Label()
	w := min(boxMaxWidth, max(boxMinWidth, float64(len([]rune(label)))*charWidth+boxPadding))
	return Box{ID: n.ID, Label: label, Rect: geom.RectAround(center, w, boxHeight)}
}
