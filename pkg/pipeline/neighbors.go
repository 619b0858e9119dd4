package pipeline

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/matzehuels/stackviz/pkg/cache"
	errs "github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/graph"
	"github.com/matzehuels/stackviz/pkg/render/nodelink"
)

// Neighborhood output formats. FormatGraphviz is SVG laid out by Graphviz
// instead of the radial layout.
const (
	FormatDOT      = "dot"
	FormatText     = "text"
	FormatGraphviz = "graphviz"
)

// ValidNeighborFormats is the set of supported neighborhood formats.
var ValidNeighborFormats = map[string]bool{
	FormatSVG:      true,
	FormatPNG:      true,
	FormatPDF:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatText:     true,
	FormatGraphviz: true,
}

// NeighborOptions configures a neighborhood render.
type NeighborOptions struct {
	Pivot    string  `json:"pivot"`
	Format   string  `json:"format,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
}

// Validate checks required fields and applies defaults.
func (o *NeighborOptions) Validate() error {
	if err := errs.ValidateIdentifier("pivot", o.Pivot); err != nil {
		return err
	}
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if !ValidNeighborFormats[o.Format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot, text, graphviz)", o.Format)
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if !validSize(o.Width) || !validSize(o.Height) {
		return errs.New(errs.ErrCodeInvalidConfig, "invalid frame size %vx%v", o.Width, o.Height)
	}
	return nil
}

// KeyOpts returns cache key options for the neighborhood.
func (o NeighborOptions) KeyOpts() cache.NeighborhoodKeyOpts {
	format := o.Format
	if o.Detailed {
		format += "+detailed"
	}
	return cache.NeighborhoodKeyOpts{Format: format, Width: o.Width, Height: o.Height}
}

// RenderNeighborhood renders the neighbors of opts.Pivot in g.
// Options must have passed Validate.
func RenderNeighborhood(ctx context.Context, g *graph.Graph, opts NeighborOptions) ([]byte, error) {
	switch opts.Format {
	case FormatText:
		if _, ok := g.Node(opts.Pivot); !ok {
			return nil, errs.New(errs.ErrCodeNodeNotFound, "node %q not found", opts.Pivot)
		}
		ids, err := g.NeighborIDs(opts.Pivot)
		if err != nil {
			return nil, err
		}
		var b strings.Builder
		for _, id := range ids {
			if id == opts.Pivot {
				continue
			}
			b.WriteString(id)
			b.WriteByte('\n')
		}
		return []byte(b.String()), nil
	case FormatDOT, FormatGraphviz:
		dot, err := nodelink.ToDOT(g, opts.Pivot, nodelink.DOTOptions{Detailed: opts.Detailed})
		if err != nil {
			return nil, err
		}
		if opts.Format == FormatDOT {
			return []byte(dot), nil
		}
		return nodelink.RenderDOTSVG(ctx, dot)
	}

	n, err := nodelink.Radial(g, opts.Pivot, opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	switch opts.Format {
	case FormatPNG:
		return nodelink.RenderPNG(n, 2.0)
	case FormatPDF:
		return nodelink.RenderPDF(n)
	case FormatJSON:
		data, err := json.MarshalIndent(n, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nodelink.RenderSVG(n), nil
	}
}
