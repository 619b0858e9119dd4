// Package render turns computed layouts into files.
//
// The subpackages produce SVG directly:
//
//   - [area] draws stacked area charts from a stacked layout
//   - [nodelink] draws the neighborhood of a graph node
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg):
//
//	svg := area.RenderSVG(frame)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [area]: github.com/matzehuels/stackviz/pkg/render/area
// [nodelink]: github.com/matzehuels/stackviz/pkg/render/nodelink
package render
