package pipeline

import (
	"fmt"

	errs "github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/render/area"
)

// Render generates output artifacts in the requested formats.
// Options must have passed ValidateForRender.
func Render(f area.Frame, opts Options) (map[string][]byte, error) {
	svgOpts := opts.SVGOptions()
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = area.RenderSVG(f, svgOpts...)
		case FormatPNG:
			data, err = area.RenderPNG(f, area.WithPNGSVGOptions(svgOpts...))
		case FormatPDF:
			data, err = area.RenderPDF(f, area.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = area.RenderJSON(f)
		default:
			return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
