// Package nodelink renders the neighborhood of a graph node.
//
// # Radial layout
//
// [Radial] places the pivot node at the center of the canvas and its distinct
// neighbors on a circle around it. Nodes are boxes; every link is clipped so
// it starts on the pivot's box and ends on the neighbor's box, found with
// [geom.ClipSegment]. [RenderSVG] draws the result without external tools:
//
//	n, err := nodelink.Radial(g, "api", 800, 600)
//	svg := nodelink.RenderSVG(n)
//
// # Graphviz
//
// [ToDOT] emits the same neighborhood as Graphviz DOT source, which
// [RenderDOTSVG] lays out in-process with [github.com/goccy/go-graphviz].
// The DOT text can also be saved and processed with external Graphviz tools.
//
// PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
