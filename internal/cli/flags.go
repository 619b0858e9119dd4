package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackviz/pkg/pipeline"
)

// layoutFlags are the flags shared by every command that computes a layout.
type layoutFlags struct {
	config      string
	orientation string
	normalized  bool
	padding     float64
	threshold   float64
	width       float64
	height      float64
	refresh     bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "TOML chart config (flags override it)")
	fs.StringVar(&f.orientation, "orientation", "", "stacking direction: bottom-top (default), top-bottom, left-right, right-left")
	fs.BoolVar(&f.normalized, "normalized", false, "scale every column to the full height (100% stacked)")
	fs.Float64Var(&f.padding, "padding", 0, "fraction of the peak added as headroom above the stack (default 0.05)")
	fs.Float64Var(&f.threshold, "threshold", 0, "hide series thinner than this many pixels at every column (default 1)")
	fs.Float64Var(&f.width, "width", 0, "frame width (default 800)")
	fs.Float64Var(&f.height, "height", 0, "frame height (default 600)")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute the layout even if cached")
}

// apply copies set flags into opts, then fills the rest from the config file.
func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	fs := cmd.Flags()
	opts.Orientation = f.orientation
	opts.Normalized = f.normalized
	opts.Width = f.width
	opts.Height = f.height
	opts.Refresh = f.refresh
	if fs.Changed("padding") {
		opts.Padding = &f.padding
	}
	if fs.Changed("threshold") {
		opts.Threshold = &f.threshold
	}
	return applyConfigFile(f.config, opts)
}

// renderFlags are the flags shared by every command that renders a frame.
type renderFlags struct {
	formats  string
	style    string
	palette  []string
	animate  bool
	duration time.Duration
	labels   bool
	axis     bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	fs.StringVar(&f.style, "style", "", "area style: filled (default), outline")
	fs.StringSliceVar(&f.palette, "palette", nil, "fill colors as #rrggbb (comma-separated)")
	fs.BoolVar(&f.animate, "animate", false, "animate layers from their start to their end shape (svg)")
	fs.DurationVar(&f.duration, "duration", 0, "animation length (default 1s)")
	fs.BoolVar(&f.labels, "labels", false, "label layers at their widest column")
	fs.BoolVar(&f.axis, "axis", false, "draw column labels along the axis")
}

// apply copies the flags into opts. Call it before layoutFlags.apply so the
// config file only fills what the flags left unset.
func (f *renderFlags) apply(opts *pipeline.Options) {
	opts.Formats = parseFormats(f.formats)
	opts.Style = f.style
	opts.Palette = f.palette
	opts.Animate = f.animate
	opts.Duration.Duration = f.duration
	opts.Labels = f.labels
	opts.Axis = f.axis
}
