package stacked

import (
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/geom"
	"github.com/matzehuels/stackviz/pkg/visual"
)

const (
	// DefaultPadding is the headroom added above the tallest column.
	DefaultPadding = 0.05
	// DefaultThreshold hides layers thinner than one unit.
	DefaultThreshold = 1.0
)

// ItemSource resolves a group name to the items a layout operates on.
// *visual.Visualization implements it.
type ItemSource interface {
	Group(name string) (visual.Group, error)
}

// Option configures a Layout at construction time.
type Option func(*Layout) error

// WithPadding sets the padding fraction, see [Layout.SetPadding].
func WithPadding(p float64) Option {
	return func(l *Layout) error { return l.SetPadding(p) }
}

// WithThreshold sets the visibility threshold, see [Layout.SetThreshold].
func WithThreshold(t float64) Option {
	return func(l *Layout) error { return l.SetThreshold(t) }
}

// WithOrientation sets the orientation, see [Layout.SetOrientation].
func WithOrientation(o Orientation) Option {
	return func(l *Layout) error { return l.SetOrientation(o) }
}

// WithNormalized enables per-column normalization.
func WithNormalized(n bool) Option {
	return func(l *Layout) error {
		l.SetNormalized(n)
		return nil
	}
}

// WithLogger sets the logger used for debug output. Nil is ignored.
func WithLogger(logger *log.Logger) Option {
	return func(l *Layout) error {
		if logger != nil {
			l.logger = logger
		}
		return nil
	}
}

// Layout computes stacked area polygons for one group.
type Layout struct {
	group      string
	field      string
	columns    []string
	orient     Orientation
	normalized bool
	padding    float64
	threshold  float64
	model      RangeModel
	bounds     geom.Rect
	logger     *log.Logger

	baseline []float64
	peaks    []float64
	poly     []float64
}

// New creates a layout for group. Field names the current polygon slot and
// defaults to visual.DefaultField when empty; columns must hold at least two
// distinct identifiers.
func New(group, field string, columns []string, opts ...Option) (*Layout, error) {
	if field == "" {
		field = visual.DefaultField
	}
	l := &Layout{
		group:     group,
		field:     field,
		orient:    BottomTop,
		padding:   DefaultPadding,
		threshold: DefaultThreshold,
		model:     NewRangeModel(),
		logger:    log.New(io.Discard),
	}
	if err := l.SetColumns(columns); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Group returns the name of the group laid out.
func (l *Layout) Group() string { return l.group }

// Field returns the attribute names of the current, start and end slots.
func (l *Layout) Field() (current, start, end string) {
	return visual.Current.Name(l.field), visual.Start.Name(l.field), visual.End.Name(l.field)
}

// Columns returns a copy of the column identifiers.
func (l *Layout) Columns() []string { return slices.Clone(l.columns) }

// SetColumns replaces the columns and resizes the scratch buffers.
func (l *Layout) SetColumns(cols []string) error {
	if err := errs.ValidateColumns(cols); err != nil {
		return err
	}
	n := len(cols)
	l.columns = slices.Clone(cols)
	l.baseline = make([]float64, n)
	l.peaks = make([]float64, n)
	l.poly = make([]float64, 4*n)
	return nil
}

// Padding returns the headroom fraction.
func (l *Layout) Padding() float64 { return l.padding }

// SetPadding sets the fraction of the peak added as empty space at the end
// of the stack. It must lie within [0,1] and is ignored when normalized.
func (l *Layout) SetPadding(p float64) error {
	if err := errs.ValidateFraction("padding percentage", p); err != nil {
		return err
	}
	l.padding = p
	return nil
}

// Threshold returns the minimum layer span below which items are hidden.
func (l *Layout) Threshold() float64 { return l.threshold }

// SetThreshold sets the minimum span, in bounds units, a layer needs to stay
// visible.
func (l *Layout) SetThreshold(t float64) error {
	if math.IsNaN(t) || t < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "illegal threshold: %v (must be >= 0)", t)
	}
	l.threshold = t
	return nil
}

// Orientation returns the layout orientation.
func (l *Layout) Orientation() Orientation { return l.orient }

// SetOrientation changes the orientation.
func (l *Layout) SetOrientation(o Orientation) error {
	if !o.Valid() {
		return errs.New(errs.ErrCodeInvalidOrientation, "invalid orientation value: %d", int(o))
	}
	l.orient = o
	return nil
}

// Normalized reports whether columns are scaled independently.
func (l *Layout) Normalized() bool { return l.normalized }

// SetNormalized toggles per-column normalization.
func (l *Layout) SetNormalized(n bool) { l.normalized = n }

// RangeModel returns the value range computed by the last run.
func (l *Layout) RangeModel() RangeModel { return l.model }

// Bounds returns the rectangle used by the last run.
func (l *Layout) Bounds() geom.Rect { return l.bounds }

// Run lays out the group. The fraction argument is part of the action
// contract shared with animated actions and is ignored.
//
// Run validates every visible item before writing anything: a missing column
// or a non-finite value fails the whole batch with INVALID_DATA. Degenerate
// bounds fail with INVALID_CONFIG.
func (l *Layout) Run(src ItemSource, frac float64) error {
	g, err := src.Group(l.group)
	if err != nil {
		return err
	}
	b := g.Bounds()
	if !finiteRect(b) || !b.Valid() || b.IsEmpty() {
		return errs.New(errs.ErrCodeInvalidConfig, "degenerate layout bounds %v", b)
	}

	maxValue, err := l.computePeaks(g)
	if err != nil {
		return err
	}
	l.bounds = b

	n := len(l.columns)
	horiz, top, mult := l.orient.axes()
	xbias, ybias := 0, 1
	if horiz {
		xbias, ybias = 1, 0
	}
	start, inc := l.timeAxis()
	hgt := b.Height()
	if horiz {
		hgt = b.Width()
	}

	var base float64
	switch {
	case horiz && top:
		base = b.MinX
	case horiz:
		base = b.MaxX
	case top:
		base = b.MinY
	default:
		base = b.MaxY
	}
	for i := range l.baseline {
		l.baseline[i] = base
	}

	l.model.SetValueRange(0, maxValue, 0, maxValue)

	var placed, hidden int
	for idx := g.Len() - 1; idx >= 0; idx-- {
		item := g.At(idx)
		if !item.Visible() {
			continue
		}

		for i := n - 1; i >= 0; i-- {
			l.poly[2*(n-1-i)+xbias] = start + float64(i)*inc
			l.poly[2*(n-1-i)+ybias] = l.baseline[i]
		}
		height := 0.0
		for i, col := range l.columns {
			v, _ := item.Value(col)
			if p := l.peaks[i]; p != 0 {
				l.baseline[i] += mult * hgt * (v / p)
			}
			at := 2 * (n + i)
			l.poly[at+xbias] = start + float64(i)*inc
			l.poly[at+ybias] = l.baseline[i]
			height = math.Max(height, math.Abs(l.poly[2*(n-1-i)+ybias]-l.poly[at+ybias]))
		}
		if height < l.threshold {
			item.SetVisible(false)
			hidden++
		}

		item.SetPosition(0, 0)
		l.install(item)
		placed++
	}

	l.logger.Debug("stacked layout",
		"group", l.group,
		"orientation", l.orient,
		"columns", n,
		"items", placed,
		"hidden", hidden,
		"max", maxValue)
	return nil
}

// computePeaks fills l.peaks from the visible items and returns the value
// the range model should span. It fails before any item is touched when an
// item lacks a column or holds a non-finite value.
func (l *Layout) computePeaks(g visual.Group) (float64, error) {
	clear(l.peaks)
	for idx := range g.Len() {
		item := g.At(idx)
		if !item.Visible() {
			continue
		}
		for i, col := range l.columns {
			v, ok := item.Value(col)
			if !ok {
				return 0, errs.New(errs.ErrCodeInvalidData, "item %d: missing column %q", idx, col)
			}
			if err := errs.ValidateFinite(col, v); err != nil {
				return 0, errs.Wrap(errs.ErrCodeInvalidData, err, "item %d", idx)
			}
			l.peaks[i] += v
		}
	}

	maxValue := slices.Max(l.peaks)
	if l.normalized {
		maxValue = 1.0
	} else {
		for i := range l.peaks {
			l.peaks[i] = maxValue * (1 + l.padding)
		}
		maxValue += l.padding * maxValue
	}
	if math.IsNaN(maxValue) {
		maxValue = 0
	}
	l.logger.Debug("stacked peaks", "peaks", l.peaks, "normalized", l.normalized)
	return maxValue, nil
}

// timeAxis returns the time coordinate of column 0 and the signed step
// between columns.
func (l *Layout) timeAxis() (start, inc float64) {
	b := l.bounds
	if l.orient.Horizontal() {
		return b.MaxY, (b.MinY - b.MaxY) / float64(len(l.columns)-1)
	}
	return b.MinX, (b.MaxX - b.MinX) / float64(len(l.columns)-1)
}

// install rotates the item's polygons: current moves to start, the fresh
// polygon becomes both current and end.
func (l *Layout) install(item visual.Item) {
	cur := l.polygon(item, visual.Current)
	from := l.polygon(item, visual.Start)
	to := l.polygon(item, visual.End)
	copy(from, cur)
	copy(cur, l.poly)
	copy(to, l.poly)
	item.SetValidated(false)
}

// polygon returns the buffer in slot s of the layout's field, replacing it with a collapsed ring
// on the far edge when it is missing or sized for a different column count.
func (l *Layout) polygon(item visual.Item, s visual.Slot) []float64 {
	name := s.Name(l.field)
	p := item.Polygon(name)
	if len(p) == 4*len(l.columns) {
		return p
	}
	p = l.defaultPolygon()
	item.SetPolygon(name, p)
	return p
}

func (l *Layout) defaultPolygon() []float64 {
	n := len(l.columns)
	b := l.bounds
	horiz, top, _ := l.orient.axes()

	var far float64
	switch {
	case horiz && top:
		far = b.MaxX
	case horiz:
		far = b.MinX
	case top:
		far = b.MinY
	default:
		far = b.MaxY
	}
	bias := 0
	if horiz {
		bias = 1
	}

	p := make([]float64, 4*n)
	for i := range p {
		p[i] = far
	}
	start, inc := l.timeAxis()
	for i := range n {
		t := start + float64(i)*inc
		p[2*(n+i)+bias] = t
		p[2*(n-1-i)+bias] = t
	}
	return p
}

func finiteRect(r geom.Rect) bool {
	for _, v := range [...]float64{r.MinX, r.MinY, r.MaxX, r.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
