package visual

import (
	"slices"

	errs "github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/geom"
)

// Table is a named, ordered group of records.
type Table struct {
	name    string
	records []*Record
	index   map[string]int
	bounds  geom.Rect
}

// NewTable creates an empty table laid out inside bounds.
func NewTable(name string, bounds geom.Rect) *Table {
	return &Table{name: name, index: make(map[string]int), bounds: bounds}
}

// Name returns the group name of the table.
func (t *Table) Name() string { return t.name }

// Add appends r and assigns its Row. Records with a non-empty ID must be
// unique within the table.
func (t *Table) Add(r *Record) error {
	if r.ID != "" {
		if _, dup := t.index[r.ID]; dup {
			return errs.New(errs.ErrCodeInvalidInput, "duplicate record %q in group %q", r.ID, t.name)
		}
		t.index[r.ID] = len(t.records)
	}
	r.Row = len(t.records)
	t.records = append(t.records, r)
	return nil
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// At returns the record at row i as an Item.
func (t *Table) At(i int) Item { return t.records[i] }

// Record returns the record at row i.
func (t *Table) Record(i int) *Record { return t.records[i] }

// Lookup finds a record by ID.
func (t *Table) Lookup(id string) (*Record, bool) {
	i, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return t.records[i], true
}

// Records returns the records in insertion order. The slice is shared.
func (t *Table) Records() []*Record { return t.records }

// Bounds returns the layout bounds.
func (t *Table) Bounds() geom.Rect { return t.bounds }

// SetBounds replaces the layout bounds.
func (t *Table) SetBounds(b geom.Rect) { t.bounds = b }

// Visualization maps group names to tables.
type Visualization struct {
	tables map[string]*Table
	order  []string
}

// New creates an empty Visualization.
func New() *Visualization {
	return &Visualization{tables: make(map[string]*Table)}
}

// AddTable registers t under its name.
func (v *Visualization) AddTable(t *Table) error {
	if _, dup := v.tables[t.name]; dup {
		return errs.New(errs.ErrCodeInvalidInput, "group %q already registered", t.name)
	}
	v.tables[t.name] = t
	v.order = append(v.order, t.name)
	return nil
}

// Table returns the table registered under name.
func (v *Visualization) Table(name string) (*Table, bool) {
	t, ok := v.tables[name]
	return t, ok
}

// Group returns the named group, or a NOT_FOUND error.
func (v *Visualization) Group(name string) (Group, error) {
	t, ok := v.tables[name]
	if !ok {
		return nil, errs.New(errs.ErrCodeNotFound, "unknown group %q", name)
	}
	return t, nil
}

// Groups returns the registered group names in registration order.
func (v *Visualization) Groups() []string { return slices.Clone(v.order) }
