// Package geom provides the small amount of plane geometry that the layout
// and rendering packages share: points, axis-aligned rectangles and
// segment intersection.
//
// # Coordinates
//
// All coordinates are in user units with the y axis pointing down, as in
// SVG. A [Rect] stores its extremes directly; [NewRect] builds one from an
// origin and a size.
//
// # Intersections
//
// [LineLineIntersect] classifies a pair of segments and returns the crossing
// point when there is one. [LineRectIntersect] clips a segment against the
// four sides of a rectangle, scanning them in the fixed order top, right,
// bottom, left and stopping after two hits. Edge renderers rely on that
// order: the first returned point is the entry on the top or right side
// whenever the segment crosses one of them.
//
//	r := geom.NewRect(0, 0, 100, 100)
//	pts := geom.LineRectIntersect(geom.Point{X: -1, Y: 50}, geom.Point{X: 101, Y: 50}, r)
//	// pts == [(100,50) (0,50)]
//
// All functions are pure and safe for concurrent use.
package geom
