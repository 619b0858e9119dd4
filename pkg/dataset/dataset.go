package dataset

import (
	"slices"

	errs "github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/geom"
	"github.com/matzehuels/stackviz/pkg/visual"
)

// Dataset is an ordered collection of series sampled at the same columns.
type Dataset struct {
	Name    string   `json:"name,omitempty"`
	Columns []string `json:"columns"`
	Series  []Series `json:"series"`
}

// Series is one stacked layer.
type Series struct {
	ID     string             `json:"id"`
	Label  string             `json:"label,omitempty"`
	Values map[string]float64 `json:"values"`
	Hidden bool               `json:"hidden,omitempty"`
}

// DisplayLabel returns the label, or the ID when no label is set.
func (s Series) DisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}
	return s.ID
}

// Validate checks the dataset can be laid out: at least two distinct
// columns, unique non-empty series IDs, and a finite value for every column
// of every series.
func (d *Dataset) Validate() error {
	if err := errs.ValidateColumns(d.Columns); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(d.Series))
	for _, s := range d.Series {
		if err := errs.ValidateIdentifier("series", s.ID); err != nil {
			return err
		}
		if _, dup := seen[s.ID]; dup {
			return errs.New(errs.ErrCodeInvalidData, "duplicate series %q", s.ID)
		}
		seen[s.ID] = struct{}{}
		for _, c := range d.Columns {
			v, ok := s.Values[c]
			if !ok {
				return errs.New(errs.ErrCodeInvalidData, "series %q: missing column %q", s.ID, c)
			}
			if err := errs.ValidateFinite(s.ID+"/"+c, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Lookup returns the series with the given ID.
func (d *Dataset) Lookup(id string) (Series, bool) {
	i := slices.IndexFunc(d.Series, func(s Series) bool { return s.ID == id })
	if i < 0 {
		return Series{}, false
	}
	return d.Series[i], true
}

// Totals returns the sum of all series at each column.
func (d *Dataset) Totals() []float64 {
	out := make([]float64, len(d.Columns))
	for _, s := range d.Series {
		for i, c := range d.Columns {
			out[i] += s.Values[c]
		}
	}
	return out
}

// ToTable converts the dataset into a visual group named group, laid out
// inside bounds. Hidden series become invisible records.
func ToTable(d *Dataset, group string, bounds geom.Rect) (*visual.Table, error) {
	t := visual.NewTable(group, bounds)
	for _, s := range d.Series {
		r := visual.NewRecord(s.ID, s.DisplayLabel(), s.Values)
		r.SetVisible(!s.Hidden)
		if err := t.Add(r); err != nil {
			return nil, err
		}
	}
	return t, nil
}
