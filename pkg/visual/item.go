package visual

import "github.com/matzehuels/stackviz/pkg/geom"

// Slot addresses one of the three polygon buffers carried by an item.
type Slot int

const (
	// Current is the polygon to draw now.
	Current Slot = iota
	// Start is the polygon an animation interpolates from.
	Start
	// End is the polygon an animation interpolates to.
	End
)

// DefaultField is the attribute name of the current polygon slot.
const DefaultField = "_polygon"

// Slots lists the polygon slots in storage order.
var Slots = [...]Slot{Current, Start, End}

func (s Slot) String() string {
	switch s {
	case Current:
		return "current"
	case Start:
		return "start"
	case End:
		return "end"
	default:
		return "unknown"
	}
}

// Name returns the attribute name of s for the given polygon field:
// field itself for Current, field+":start" and field+":end" otherwise.
func (s Slot) Name(field string) string {
	switch s {
	case Start:
		return field + ":start"
	case End:
		return field + ":end"
	default:
		return field
	}
}

// Item is the contract a layout writes to.
type Item interface {
	// Value returns the numeric attribute stored under column.
	Value(column string) (float64, bool)
	// Polygon returns the buffer stored under the attribute name, or nil.
	Polygon(name string) []float64
	// SetPolygon stores p under the attribute name without copying it.
	SetPolygon(name string, p []float64)
	Visible() bool
	SetVisible(v bool)
	SetPosition(x, y float64)
	SetValidated(v bool)
}

// Record is the concrete Item backing a Table row.
type Record struct {
	Row    int                // Index in the owning table
	ID     string             // Series identifier
	Label  string             // Display label
	Values map[string]float64 // Numeric attributes by column

	polygons  map[string][]float64
	visible   bool
	x, y      float64
	validated bool
}

// NewRecord creates a visible record. The values map is used as is.
func NewRecord(id, label string, values map[string]float64) *Record {
	if values == nil {
		values = map[string]float64{}
	}
	return &Record{ID: id, Label: label, Values: values, visible: true}
}

func (r *Record) Value(column string) (float64, bool) {
	v, ok := r.Values[column]
	return v, ok
}

func (r *Record) Polygon(name string) []float64 { return r.polygons[name] }

func (r *Record) SetPolygon(name string, p []float64) {
	if r.polygons == nil {
		r.polygons = make(map[string][]float64, len(Slots))
	}
	r.polygons[name] = p
}

// SlotPolygon returns the buffer of slot s for the polygon field.
func (r *Record) SlotPolygon(field string, s Slot) []float64 {
	return r.polygons[s.Name(field)]
}

func (r *Record) Visible() bool     { return r.visible }
func (r *Record) SetVisible(v bool) { r.visible = v }

// Position returns the x/y offset of the record.
func (r *Record) Position() (x, y float64) { return r.x, r.y }

func (r *Record) SetPosition(x, y float64) { r.x, r.y = x, y }

// Validated reports whether the record's geometry has been consumed since
// the last layout pass.
func (r *Record) Validated() bool     { return r.validated }
func (r *Record) SetValidated(v bool) { r.validated = v }

// Group is an ordered collection of items laid out inside one rectangle.
type Group interface {
	// Len returns the number of items, visible or not.
	Len() int
	// At returns the item at insertion index i.
	At(i int) Item
	// Bounds returns the layout bounds of the group.
	Bounds() geom.Rect
}
