package geom

// Intersection classifies the outcome of a segment intersection test.
type Intersection int

const (
	// NoIntersection means the supporting lines cross outside either segment.
	NoIntersection Intersection = iota
	// Intersect means the segments share exactly one point.
	Intersect
	// Parallel means the segments are parallel and not collinear.
	Parallel
	// Coincident means the segments lie on the same line.
	Coincident
)

func (i Intersection) String() string {
	switch i {
	case Intersect:
		return "intersect"
	case Parallel:
		return "parallel"
	case Coincident:
		return "coincident"
	default:
		return "none"
	}
}

// LineLineIntersect tests segment a1→a2 against segment b1→b2.
//
// When the result is [Intersect] the returned point lies on both segments and
// is computed along a: a1 + ua·(a2−a1). For every other result the point is
// the zero value.
func LineLineIntersect(a1, a2, b1, b2 Point) (Point, Intersection) {
	uaT := (b2.X-b1.X)*(a1.Y-b1.Y) - (b2.Y-b1.Y)*(a1.X-b1.X)
	ubT := (a2.X-a1.X)*(a1.Y-b1.Y) - (a2.Y-a1.Y)*(a1.X-b1.X)
	uB := (b2.Y-b1.Y)*(a2.X-a1.X) - (b2.X-b1.X)*(a2.Y-a1.Y)

	if uB == 0 {
		if uaT == 0 || ubT == 0 {
			return Point{}, Coincident
		}
		return Point{}, Parallel
	}

	ua := uaT / uB
	ub := ubT / uB
	if ua < 0 || ua > 1 || ub < 0 || ub > 1 {
		return Point{}, NoIntersection
	}
	return Point{
		X: a1.X + ua*(a2.X-a1.X),
		Y: a1.Y + ua*(a2.Y-a1.Y),
	}, Intersect
}

// LineRectIntersect returns the points where segment a1→a2 crosses the
// boundary of r, at most two.
//
// Sides are tested in the order top, right, bottom, left and the scan stops
// as soon as two points are found. A segment through a corner reports that
// corner once per side it touches; no deduplication is performed. Segments
// running along a side are reported as coincident by [LineLineIntersect] and
// contribute no point.
func LineRectIntersect(a1, a2 Point, r Rect) []Point {
	tl := Point{r.MinX, r.MinY}
	tr := Point{r.MaxX, r.MinY}
	br := Point{r.MaxX, r.MaxY}
	bl := Point{r.MinX, r.MaxY}
	sides := [4][2]Point{
		{tl, tr}, // top
		{tr, br}, // right
		{br, bl}, // bottom
		{bl, tl}, // left
	}

	pts := make([]Point, 0, 2)
	for _, s := range sides {
		if p, kind := LineLineIntersect(s[0], s[1], a1, a2); kind == Intersect {
			pts = append(pts, p)
			if len(pts) == 2 {
				break
			}
		}
	}
	return pts
}

// ClipSegment shortens the segment from the center of src to the center of
// dst so that it starts and ends on the boundaries of the two rectangles.
// When a rectangle does not cut the segment (overlapping boxes) the center
// is kept as the endpoint.
func ClipSegment(src, dst Rect) (Point, Point) {
	from, to := Center(src), Center(dst)
	start, end := from, to
	if pts := LineRectIntersect(from, to, src); len(pts) > 0 {
		start = pts[0]
	}
	if pts := LineRectIntersect(from, to, dst); len(pts) > 0 {
		end = pts[0]
	}
	return start, end
}
