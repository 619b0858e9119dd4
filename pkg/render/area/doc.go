// Package area renders stacked area layouts.
//
// A [Frame] is a snapshot of a laid-out group: one [Layer] per series with
// its current, start and end polygons. Frames are what the pipeline caches
// and what every sink in this package consumes:
//
//   - [RenderSVG] draws the polygons, optionally animating start to end
//   - [RenderJSON] and [ReadFrame] round-trip a frame
//   - [RenderPNG] and [RenderPDF] convert the SVG via rsvg-convert
//
// Build a frame right after running the layout:
//
//	if err := layout.Run(vis, 0); err != nil {
//	    return err
//	}
//	frame := area.FromTable(layout, table)
//	svg := area.RenderSVG(frame, area.WithAnimation(time.Second))
package area
