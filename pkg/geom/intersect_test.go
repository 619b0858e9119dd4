package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineLineIntersect(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 Point
		wantKind       Intersection
		wantPoint      Point
	}{
		{
			name: "crossing diagonals",
			a1:   Point{0, 0}, a2: Point{10, 10},
			b1: Point{0, 10}, b2: Point{10, 0},
			wantKind:  Intersect,
			wantPoint: Point{5, 5},
		},
		{
			name: "touching at endpoint",
			a1:   Point{0, 0}, a2: Point{10, 0},
			b1: Point{10, -5}, b2: Point{10, 5},
			wantKind:  Intersect,
			wantPoint: Point{10, 0},
		},
		{
			name: "lines cross outside segments",
			a1:   Point{0, 0}, a2: Point{1, 1},
			b1: Point{5, 0}, b2: Point{6, -1},
			wantKind: NoIntersection,
		},
		{
			name: "parallel",
			a1:   Point{0, 0}, a2: Point{10, 0},
			b1: Point{0, 1}, b2: Point{10, 1},
			wantKind: Parallel,
		},
		{
			name: "coincident overlapping",
			a1:   Point{0, 0}, a2: Point{10, 0},
			b1: Point{5, 0}, b2: Point{15, 0},
			wantKind: Coincident,
		},
		{
			name: "coincident disjoint",
			a1:   Point{0, 0}, a2: Point{1, 1},
			b1: Point{5, 5}, b2: Point{6, 6},
			wantKind: Coincident,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, kind := LineLineIntersect(tt.a1, tt.a2, tt.b1, tt.b2)
			if kind != tt.wantKind {
				t.Fatalf("LineLineIntersect() kind = %v, want %v", kind, tt.wantKind)
			}
			assert.InDelta(t, tt.wantPoint.X, p.X, 1e-12)
			assert.InDelta(t, tt.wantPoint.Y, p.Y, 1e-12)
		})
	}
}

func TestIntersectionString(t *testing.T) {
	tests := []struct {
		kind Intersection
		want string
	}{
		{Intersect, "intersect"},
		{Parallel, "parallel"},
		{Coincident, "coincident"},
		{NoIntersection, "none"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestLineRectIntersect(t *testing.T) {
	r := NewRect(0, 0, 100, 100)

	tests := []struct {
		name   string
		a1, a2 Point
		want   []Point
	}{
		{
			name: "horizontal through both sides reports right then left",
			a1:   Point{-1, 50}, a2: Point{101, 50},
			want: []Point{{100, 50}, {0, 50}},
		},
		{
			name: "vertical through both sides reports top then bottom",
			a1:   Point{30, 150}, a2: Point{30, -50},
			want: []Point{{30, 0}, {30, 100}},
		},
		{
			name: "diagonal cutting top-left corner",
			a1:   Point{-10, 50}, a2: Point{50, -10},
			want: []Point{{40, 0}, {0, 40}},
		},
		{
			name: "exiting through right side",
			a1:   Point{50, 50}, a2: Point{150, 60},
			want: []Point{{100, 55}},
		},
		{
			name: "exiting through top",
			a1:   Point{50, 50}, a2: Point{50, -50},
			want: []Point{{50, 0}},
		},
		{
			name: "fully inside",
			a1:   Point{10, 10}, a2: Point{90, 90},
			want: []Point{},
		},
		{
			name: "fully outside",
			a1:   Point{200, 200}, a2: Point{300, 250},
			want: []Point{},
		},
		{
			name: "diagonal through corners is not deduplicated",
			a1:   Point{-10, -10}, a2: Point{110, 110},
			want: []Point{{0, 0}, {100, 100}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineRectIntersect(tt.a1, tt.a2, r)
			if len(got) != len(tt.want) {
				t.Fatalf("LineRectIntersect() = %v, want %d points", got, len(tt.want))
			}
			for i := range tt.want {
				assert.InDelta(t, tt.want[i].X, got[i].X, 1e-9, "point %d x", i)
				assert.InDelta(t, tt.want[i].Y, got[i].Y, 1e-9, "point %d y", i)
			}
		})
	}
}

func TestLineRectIntersectOneEndpointOutside(t *testing.T) {
	r := NewRect(10, 20, 200, 100)
	rng := rand.New(rand.NewSource(7))

	onEdge := func(p Point) bool {
		const eps = 1e-9
		if !(p.X >= r.MinX-eps && p.X <= r.MaxX+eps && p.Y >= r.MinY-eps && p.Y <= r.MaxY+eps) {
			return false
		}
		return math.Abs(p.X-r.MinX) < eps || math.Abs(p.X-r.MaxX) < eps ||
			math.Abs(p.Y-r.MinY) < eps || math.Abs(p.Y-r.MaxY) < eps
	}

	for i := 0; i < 500; i++ {
		inside := Point{
			X: r.MinX + 1 + rng.Float64()*(r.Width()-2),
			Y: r.MinY + 1 + rng.Float64()*(r.Height()-2),
		}
		var outside Point
		for {
			outside = Point{X: -500 + rng.Float64()*1000, Y: -500 + rng.Float64()*1000}
			if !r.Contains(outside) {
				break
			}
		}

		got := LineRectIntersect(inside, outside, r)
		if len(got) != 1 {
			t.Fatalf("LineRectIntersect(%v, %v) = %v, want one point", inside, outside, got)
		}
		if !onEdge(got[0]) {
			t.Errorf("point %v not on boundary of %v", got[0], r)
		}
	}
}

func TestClipSegment(t *testing.T) {
	tests := []struct {
		name       string
		src, dst   Rect
		start, end Point
	}{
		{
			name: "separate boxes",
			src:  RectAround(Point{0, 0}, 20, 20), dst: RectAround(Point{100, 0}, 20, 20),
			start: Point{10, 0}, end: Point{90, 0},
		},
		{
			name: "overlapping boxes keep the centers",
			src:  NewRect(0, 0, 100, 100), dst: NewRect(10, 10, 80, 80),
			start: Point{50, 50}, end: Point{50, 50},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ClipSegment(tt.src, tt.dst)
			if start != tt.start || end != tt.end {
				t.Errorf("ClipSegment() = %v, %v, want %v, %v", start, end, tt.start, tt.end)
			}
		})
	}
}
