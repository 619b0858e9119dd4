package pipeline

import (
	"github.com/matzehuels/stackviz/pkg/dataset"
	"github.com/matzehuels/stackviz/pkg/geom"
	"github.com/matzehuels/stackviz/pkg/render/area"
	"github.com/matzehuels/stackviz/pkg/stacked"
	"github.com/matzehuels/stackviz/pkg/visual"
)

// ComputeLayout lays out d inside a Width×Height frame anchored at the
// origin. Options must have passed ValidateForLayout.
func ComputeLayout(d *dataset.Dataset, opts Options) (area.Frame, error) {
	if err := d.Validate(); err != nil {
		return area.Frame{}, err
	}

	tbl, err := dataset.ToTable(d, GroupName, geom.NewRect(0, 0, opts.Width, opts.Height))
	if err != nil {
		return area.Frame{}, err
	}
	vis := visual.New()
	if err := vis.AddTable(tbl); err != nil {
		return area.Frame{}, err
	}

	l, err := stacked.New(GroupName, visual.DefaultField, d.Columns, opts.LayoutOptions()...)
	if err != nil {
		return area.Frame{}, err
	}
	if err := l.Run(vis, 1); err != nil {
		return area.Frame{}, err
	}
	return area.FromTable(l, tbl), nil
}
