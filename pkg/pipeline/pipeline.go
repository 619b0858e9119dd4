// Package pipeline provides the load → layout → render pipeline for stackviz.
//
// The CLI and the HTTP API both drive charts through this package so that
// defaults, validation and caching behave the same everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a series dataset from JSON or CSV
//  2. Layout: Run the stacked area layout and snapshot it as an [area.Frame]
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// A fourth entry point, [Runner.NeighborhoodWithCacheInfo], renders the
// neighborhood of a node in a graph.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "sales.csv",
//	    Formats: []string{"svg"},
//	    Animate: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackviz/pkg/cache"
	"github.com/matzehuels/stackviz/pkg/dataset"
	errs "github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/render/area"
	"github.com/matzehuels/stackviz/pkg/stacked"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0

	// DefaultOrientation is the default stacking direction.
	DefaultOrientation = "bottom-top"

	// DefaultDuration is the default animation length.
	DefaultDuration = time.Second

	// GroupName is the visual group every dataset is laid out as.
	GroupName = "areas"
)

// DefaultStyle is the default visual style.
const DefaultStyle = string(area.StyleFilled)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Input string `json:"-"` // Dataset path (.json or .csv)

	// Layout options
	Orientation string   `json:"orientation,omitempty"`
	Normalized  bool     `json:"normalized,omitempty"`
	Padding     *float64 `json:"padding,omitempty"`   // nil selects stacked.DefaultPadding
	Threshold   *float64 `json:"threshold,omitempty"` // nil selects stacked.DefaultThreshold
	Width       float64  `json:"width,omitempty"`
	Height      float64  `json:"height,omitempty"`
	Refresh     bool     `json:"refresh,omitempty"`

	// Render options
	Formats  []string         `json:"formats,omitempty"`
	Style    string           `json:"style,omitempty"`
	Animate  bool             `json:"animate,omitempty"`
	Duration dataset.Duration `json:"duration,omitzero"`
	Palette  []string         `json:"palette,omitempty"`
	Labels   bool             `json:"labels,omitempty"`
	Axis     bool             `json:"axis,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Dataset is the loaded series table.
	Dataset *dataset.Dataset

	// DatasetHash is the content hash of the dataset.
	DatasetHash string

	// Frame is the computed layout.
	Frame area.Frame

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SeriesCount int
	ColumnCount int
	HiddenCount int
	LoadTime    time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the frame came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	_, err := area.ParseStyle(style)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// ApplyConfig fills options that are still unset from a chart config.
// Values already present on o win, so command-line flags override the file.
func (o *Options) ApplyConfig(cfg *dataset.Config) {
	if cfg == nil {
		return
	}
	l, r := cfg.Layout, cfg.Render
	if o.Orientation == "" && l.Orientation != nil {
		o.Orientation = l.Orientation.String()
	}
	if !o.Normalized && l.Normalized != nil {
		o.Normalized = *l.Normalized
	}
	if o.Padding == nil {
		o.Padding = l.Padding
	}
	if o.Threshold == nil {
		o.Threshold = l.Threshold
	}
	if o.Width == 0 {
		o.Width = l.Width
	}
	if o.Height == 0 {
		o.Height = l.Height
	}
	if len(o.Formats) == 0 {
		o.Formats = r.Formats
	}
	if o.Style == "" {
		o.Style = r.Style
	}
	if !o.Animate {
		o.Animate = r.Animate
	}
	if o.Duration.Duration == 0 {
		o.Duration = r.Duration
	}
	if len(o.Palette) == 0 {
		o.Palette = r.Palette
	}
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Orientation == "" {
		o.Orientation = DefaultOrientation
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Padding == nil {
		p := stacked.DefaultPadding
		o.Padding = &p
	}
	if o.Threshold == nil {
		t := stacked.DefaultThreshold
		o.Threshold = &t
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	orient, err := stacked.ParseOrientation(o.Orientation)
	if err != nil {
		return err
	}
	o.Orientation = orient.String()
	if err := errs.ValidateFraction("padding", *o.Padding); err != nil {
		return err
	}
	if math.IsNaN(*o.Threshold) || *o.Threshold < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "threshold must be >= 0, got %v", *o.Threshold)
	}
	if !validSize(o.Width) || !validSize(o.Height) {
		return errs.New(errs.ErrCodeInvalidConfig, "invalid frame size %vx%v", o.Width, o.Height)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Animate && o.Duration.Duration == 0 {
		o.Duration.Duration = DefaultDuration
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if o.Duration.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "animation duration must be positive, got %s", o.Duration.Duration)
	}
	if len(o.Palette) > 0 {
		for _, c := range o.Palette {
			if _, err := area.ParsePalette(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateAndSetDefaults checks and defaults every stage. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Input == "" {
		return errs.New(errs.ErrCodeInvalidInput, "input is required")
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// LayoutOptions converts validated options into stacked layout options.
func (o *Options) LayoutOptions() []stacked.Option {
	orient, _ := stacked.ParseOrientation(o.Orientation)
	return []stacked.Option{
		stacked.WithOrientation(orient),
		stacked.WithNormalized(o.Normalized),
		stacked.WithPadding(*o.Padding),
		stacked.WithThreshold(*o.Threshold),
		stacked.WithLogger(o.Logger),
	}
}

// SVGOptions converts validated options into area SVG options.
func (o *Options) SVGOptions() []area.SVGOption {
	style, _ := area.ParseStyle(o.Style)
	opts := []area.SVGOption{area.WithStyle(style)}
	if len(o.Palette) > 0 {
		opts = append(opts, area.WithPalette(o.Palette))
	}
	if o.Animate {
		opts = append(opts, area.WithAnimation(o.Duration.Duration))
	}
	if o.Labels {
		opts = append(opts, area.WithLabels())
	}
	if o.Axis {
		opts = append(opts, area.WithAxis())
	}
	return opts
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Orientation: o.Orientation,
		Normalized:  o.Normalized,
		Padding:     *o.Padding,
		Threshold:   *o.Threshold,
		Width:       o.Width,
		Height:      o.Height,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Style:    o.Style,
		Animate:  o.Animate,
		Duration: o.Duration.Duration,
		Palette:  o.Palette,
		Labels:   o.Labels,
		Axis:     o.Axis,
	}
}

func validSize(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
