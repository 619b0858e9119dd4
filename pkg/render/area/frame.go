package area

import (
	"math"
	"slices"

	"github.com/matzehuels/stackviz/pkg/geom"
	"github.com/matzehuels/stackviz/pkg/stacked"
	"github.com/matzehuels/stackviz/pkg/visual"
)

// Layer is one series of a laid-out frame.
//
// Polygons hold 4·len(Columns) numbers: the bottom curve from the last
// column back to the first, then the top curve from the first column to
// the last, as interleaved x,y pairs.
type Layer struct {
	ID      string    `json:"id"`
	Label   string    `json:"label"`
	Visible bool      `json:"visible"`
	Values  []float64 `json:"values"`
	Current []float64 `json:"current,omitempty"`
	Start   []float64 `json:"start,omitempty"`
	End     []float64 `json:"end,omitempty"`
}

// Frame is a renderable snapshot of a stacked layout.
type Frame struct {
	X           float64             `json:"x"`
	Y           float64             `json:"y"`
	Width       float64             `json:"width"`
	Height      float64             `json:"height"`
	Orientation stacked.Orientation `json:"orientation"`
	Normalized  bool                `json:"normalized,omitempty"`
	Columns     []string            `json:"columns"`
	Range       stacked.RangeModel  `json:"range"`
	Layers      []Layer             `json:"layers"`
}

// FromTable captures the state of t after l has run on it, reading the
// polygons stored under l's field. Layers keep the table's insertion order.
func FromTable(l *stacked.Layout, t *visual.Table) Frame {
	b := l.Bounds()
	cols := l.Columns()
	cur, start, end := l.Field()
	f := Frame{
		X:           b.MinX,
		Y:           b.MinY,
		Width:       b.Width(),
		Height:      b.Height(),
		Orientation: l.Orientation(),
		Normalized:  l.Normalized(),
		Columns:     cols,
		Range:       l.RangeModel(),
		Layers:      make([]Layer, 0, t.Len()),
	}
	for _, r := range t.Records() {
		values := make([]float64, len(cols))
		for i, c := range cols {
			values[i], _ = r.Value(c)
		}
		f.Layers = append(f.Layers, Layer{
			ID:      r.ID,
			Label:   r.Label,
			Visible: r.Visible(),
			Values:  values,
			Current: slices.Clone(r.Polygon(cur)),
			Start:   slices.Clone(r.Polygon(start)),
			End:     slices.Clone(r.Polygon(end)),
		})
	}
	return f
}

// Bounds returns the rectangle the frame was laid out in.
func (f Frame) Bounds() geom.Rect {
	return geom.Rect{MinX: f.X, MinY: f.Y, MaxX: f.X + f.Width, MaxY: f.Y + f.Height}
}

// VisibleLayers returns the layers that are drawn.
func (f Frame) VisibleLayers() []Layer {
	out := make([]Layer, 0, len(f.Layers))
	for _, ly := range f.Layers {
		if ly.Visible && len(ly.Current) > 0 {
			out = append(out, ly)
		}
	}
	return out
}

// Layer returns the layer with the given ID.
func (f Frame) Layer(id string) (Layer, bool) {
	for _, ly := range f.Layers {
		if ly.ID == id {
			return ly, true
		}
	}
	return Layer{}, false
}

// Total returns the sum of the layer's values.
func (ly Layer) Total() float64 {
	var sum float64
	for _, v := range ly.Values {
		sum += v
	}
	return sum
}

// Span returns the column index where the layer is thickest together with
// the bottom and top points at that column. ok is false when the polygon
// does not match the column count.
func (ly Layer) Span(columns int) (col int, bottom, top geom.Point, ok bool) {
	n := columns
	if n == 0 || len(ly.Current) != 4*n {
		return 0, geom.Point{}, geom.Point{}, false
	}
	p := ly.Current
	best := -1.0
	for i := range n {
		b := geom.Point{X: p[2*(n-1-i)], Y: p[2*(n-1-i)+1]}
		t := geom.Point{X: p[2*(n+i)], Y: p[2*(n+i)+1]}
		if d := math.Max(math.Abs(t.X-b.X), math.Abs(t.Y-b.Y)); d > best {
			best, col, bottom, top = d, i, b, t
		}
	}
	return col, bottom, top, true
}
