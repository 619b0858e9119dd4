package geom

import "fmt"

// Point is a location in the plane.
type Point struct {
	X, Y float64
}

// String formats the point as "(x,y)".
func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p with both coordinates multiplied by f.
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Rect is an axis-aligned rectangle. A valid Rect has MinX <= MaxX and
// MinY <= MaxY.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewRect returns the rectangle with top-left corner (x, y) and size w×h.
// Negative sizes are normalized so the result is always valid.
func NewRect(x, y, w, h float64) Rect {
	r := Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
	if r.MinX > r.MaxX {
		r.MinX, r.MaxX = r.MaxX, r.MinX
	}
	if r.MinY > r.MaxY {
		r.MinY, r.MaxY = r.MaxY, r.MinY
	}
	return r
}

// RectAround returns the rectangle of size w×h centered on c.
func RectAround(c Point, w, h float64) Rect {
	return NewRect(c.X-w/2, c.Y-h/2, w, h)
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Valid reports whether the extremes of r are ordered.
func (r Rect) Valid() bool { return r.MinX <= r.MaxX && r.MinY <= r.MaxY }

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Contains reports whether p lies inside r or on its boundary.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// ContainsStrict reports whether p lies inside r and off its boundary.
func (r Rect) ContainsStrict(p Point) bool {
	return p.X > r.MinX && p.X < r.MaxX && p.Y > r.MinY && p.Y < r.MaxY
}

// Inset returns r shrunk by d on every side. The result collapses to the
// center line when d exceeds half of a dimension.
func (r Rect) Inset(d float64) Rect {
	out := Rect{MinX: r.MinX + d, MinY: r.MinY + d, MaxX: r.MaxX - d, MaxY: r.MaxY - d}
	if out.MinX > out.MaxX {
		c := CenterX(r)
		out.MinX, out.MaxX = c, c
	}
	if out.MinY > out.MaxY {
		c := CenterY(r)
		out.MinY, out.MaxY = c, c
	}
	return out
}

// String formats r as "[minX,minY maxX,maxY]".
func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %g,%g]", r.MinX, r.MinY, r.MaxX, r.MaxY)
}

// CenterX returns the horizontal center of r.
func CenterX(r Rect) float64 { return r.MinX + r.Width()/2 }

// CenterY returns the vertical center of r.
func CenterY(r Rect) float64 { return r.MinY + r.Height()/2 }

// Center returns the center point of r.
func Center(r Rect) Point { return Point{CenterX(r), CenterY(r)} }
