package dataset

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/stacked"
)

// Config is the TOML chart configuration read from a file such as
// chart.toml:
//
//	[layout]
//	orientation = "bottom-top"
//	normalized  = false
//	padding     = 0.05
//	threshold   = 1.0
//	width       = 800
//	height      = 400
//
//	[render]
//	formats  = ["svg", "png"]
//	style    = "outline"
//	animate  = true
//	duration = "750ms"
//	palette  = ["#4c78a8", "#f58518", "#54a24b"]
//
// Pointer fields distinguish "unset" from zero so command-line flags can
// fill the gaps.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
}

// LayoutConfig holds the [layout] table.
type LayoutConfig struct {
	Orientation *stacked.Orientation `toml:"orientation"`
	Normalized  *bool                `toml:"normalized"`
	Padding     *float64             `toml:"padding"`
	Threshold   *float64             `toml:"threshold"`
	Width       float64              `toml:"width"`
	Height      float64              `toml:"height"`
}

// RenderConfig holds the [render] table.
type RenderConfig struct {
	Formats  []string `toml:"formats"`
	Style    string   `toml:"style"`
	Animate  bool     `toml:"animate"`
	Duration Duration `toml:"duration"`
	Palette  []string `toml:"palette"`
}

// DecodeConfig parses TOML from r. Unknown keys are rejected.
func DecodeConfig(r io.Reader) (*Config, error) {
	var cfg Config
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode chart config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads the TOML configuration at path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return DecodeConfig(f)
}

func (c *Config) validate() error {
	l := c.Layout
	if l.Padding != nil {
		if err := errs.ValidateFraction("padding", *l.Padding); err != nil {
			return err
		}
	}
	if l.Threshold != nil && *l.Threshold < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "threshold must be >= 0, got %v", *l.Threshold)
	}
	if l.Width < 0 || l.Height < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "width and height must be positive")
	}
	if c.Render.Duration.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "duration must be positive")
	}
	return nil
}
