// Package stacked computes stacked area chart geometry.
//
// A [Layout] reads one numeric value per column from every visible item of a
// group and writes a closed polygon ring per item: the lower curve is the
// running baseline of the items below it, the upper curve adds the item's own
// values. Columns are the samples of the time axis, in order.
//
// # Polygon Buffers
//
// Each polygon is a flat buffer of 4·N coordinates for N columns. Indices
// [0, 2N) hold the bottom curve from the last column back to the first;
// indices [2N, 4N) hold the top curve from the first column to the last.
// Every pair is (x, y). For vertical orientations x is the time axis, for
// horizontal orientations y is.
//
// A run rewrites three slots on every visible item: the previous current
// polygon is copied into the start slot, and the new polygon is stored in
// both the current and end slots. An animator interpolating start→end
// therefore morphs from the previous layout into the new one. Items without
// a polygon get a ring collapsed onto the far edge of the bounds, so new
// layers grow in from there.
//
// Slots are stored on the item under attribute names derived from the
// layout's field: the field itself for the current polygon, field+":start"
// and field+":end" for the others. Layouts with different fields can run on
// the same group without touching each other's polygons.
//
// # Stacking Order
//
// Items are stacked in reverse insertion order: the last item sits on the
// baseline and the first item ends up on top. The layout performs the
// reversal itself.
//
// # Scaling
//
// Without normalization every column shares one scale: the largest column
// total, plus padding, maps to the full extent of the bounds. With
// normalization each column is scaled to its own total and padding is
// ignored. Columns whose total is zero contribute nothing.
//
//	l, err := stacked.New("areas", visual.DefaultField, []string{"2019", "2020", "2021"},
//	    stacked.WithOrientation(stacked.BottomTop),
//	    stacked.WithThreshold(0),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := l.Run(vis, 1); err != nil {
//	    return err
//	}
//
// A Layout is not safe for concurrent use.
package stacked
