package geom

import "testing"

func TestNewRect(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want Rect
	}{
		{"positive size", NewRect(10, 20, 30, 40), Rect{10, 20, 40, 60}},
		{"zero size", NewRect(5, 5, 0, 0), Rect{5, 5, 5, 5}},
		{"negative width", NewRect(10, 0, -10, 5), Rect{0, 0, 10, 5}},
		{"negative height", NewRect(0, 10, 5, -10), Rect{0, 0, 5, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.r != tt.want {
				t.Errorf("NewRect() = %v, want %v", tt.r, tt.want)
			}
			if !tt.r.Valid() {
				t.Errorf("NewRect() = %v is not valid", tt.r)
			}
		})
	}
}

func TestRectDimensions(t *testing.T) {
	tests := []struct {
		name          string
		r             Rect
		width, height float64
		empty, valid  bool
	}{
		{"regular", NewRect(0, 0, 100, 50), 100, 50, false, true},
		{"zero width", NewRect(0, 0, 0, 10), 0, 10, true, true},
		{"inverted", Rect{MinX: 10, MaxX: 0}, -10, 0, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Width(); got != tt.width {
				t.Errorf("Width() = %v, want %v", got, tt.width)
			}
			if got := tt.r.Height(); got != tt.height {
				t.Errorf("Height() = %v, want %v", got, tt.height)
			}
			if got := tt.r.IsEmpty(); got != tt.empty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.empty)
			}
			if got := tt.r.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestCenter(t *testing.T) {
	tests := []struct {
		r    Rect
		want Point
	}{
		{NewRect(0, 0, 100, 100), Point{50, 50}},
		{NewRect(10, 20, 30, 40), Point{25, 40}},
		{NewRect(-10, -10, 20, 20), Point{0, 0}},
	}

	for _, tt := range tests {
		if got := Center(tt.r); got != tt.want {
			t.Errorf("Center(%v) = %v, want %v", tt.r, got, tt.want)
		}
		if got := CenterX(tt.r); got != tt.want.X {
			t.Errorf("CenterX(%v) = %v, want %v", tt.r, got, tt.want.X)
		}
		if got := CenterY(tt.r); got != tt.want.Y {
			t.Errorf("CenterY(%v) = %v, want %v", tt.r, got, tt.want.Y)
		}
	}
}

func TestContains(t *testing.T) {
	r := NewRect(0, 0, 10, 10)

	tests := []struct {
		name           string
		p              Point
		contains       bool
		containsStrict bool
	}{
		{"corner", Point{0, 0}, true, false},
		{"edge", Point{5, 10}, true, false},
		{"interior", Point{5, 5}, true, true},
		{"outside", Point{11, 5}, false, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.contains {
			t.Errorf("%s: Contains(%v) = %v, want %v", tt.name, tt.p, got, tt.contains)
		}
		if got := r.ContainsStrict(tt.p); got != tt.containsStrict {
			t.Errorf("%s: ContainsStrict(%v) = %v, want %v", tt.name, tt.p, got, tt.containsStrict)
		}
	}
}

func TestInset(t *testing.T) {
	r := NewRect(0, 0, 10, 20)

	tests := []struct {
		d    float64
		want Rect
	}{
		{2, Rect{2, 2, 8, 18}},
		{6, Rect{5, 6, 5, 14}}, // collapses horizontally
	}
	for _, tt := range tests {
		if got := r.Inset(tt.d); got != tt.want {
			t.Errorf("Inset(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestRectAround(t *testing.T) {
	r := RectAround(Point{50, 50}, 20, 10)
	if want := (Rect{40, 45, 60, 55}); r != want {
		t.Errorf("RectAround() = %v, want %v", r, want)
	}
	if got := Center(r); got != (Point{50, 50}) {
		t.Errorf("Center(RectAround()) = %v, want {50 50}", got)
	}
}
