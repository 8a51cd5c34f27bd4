package core

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent vertical (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "sliver overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9.999, 9.999, 10, 10),
			expected: true,
		},
		{
			name:     "negative coordinates",
			a:        NewRect(-20, -20, 15, 15),
			b:        NewRect(-10, -10, 3, 3),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %f, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %f, expected 25", r.Bottom())
	}
	if r.Pos() != V(5, 10) {
		t.Errorf("Pos() = %v, expected (5, 10)", r.Pos())
	}

	corners := r.Corners()
	want := []Vec2{V(5, 10), V(25, 10), V(25, 25), V(5, 25)}
	for i := range want {
		if corners[i] != want[i] {
			t.Errorf("Corners()[%d] = %v, expected %v", i, corners[i], want[i])
		}
	}
}

func TestCross(t *testing.T) {
	if got := Cross(V(1, 0), V(0, 1)); got != 1 {
		t.Errorf("Cross(x, y) = %f, expected 1", got)
	}
	if got := Cross(V(0, 1), V(1, 0)); got != -1 {
		t.Errorf("Cross(y, x) = %f, expected -1", got)
	}
	if got := Cross(V(2, 4), V(1, 2)); got != 0 {
		t.Errorf("Cross of parallel vectors = %f, expected 0", got)
	}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name           string
		p1, p2, q1, q2 Vec2
		expected       bool
	}{
		{"crossing X", V(0, 0), V(10, 10), V(0, 10), V(10, 0), true},
		{"T junction at endpoint", V(0, 0), V(10, 0), V(5, 0), V(5, 10), true},
		{"shared endpoint", V(0, 0), V(10, 0), V(10, 0), V(10, 10), true},
		{"disjoint", V(0, 0), V(1, 1), V(5, 0), V(6, 1), false},
		{"would cross if extended", V(0, 0), V(1, 1), V(3, 0), V(2, 1), false},
		{"parallel", V(0, 0), V(10, 0), V(0, 5), V(10, 5), false},
		{"collinear overlapping", V(0, 0), V(10, 0), V(5, 0), V(15, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SegmentsIntersect(tc.p1, tc.p2, tc.q1, tc.q2); got != tc.expected {
				t.Errorf("SegmentsIntersect() = %v, expected %v", got, tc.expected)
			}
			if got := SegmentsIntersect(tc.q1, tc.q2, tc.p1, tc.p2); got != tc.expected {
				t.Errorf("SegmentsIntersect() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []Vec2{V(0, 0), V(0, 1), V(1, 1), V(1, 0)}

	if !PointInPolygon(V(0.5, 0.5), square) {
		t.Error("center of unit square should be inside")
	}
	if PointInPolygon(V(2, 2), square) {
		t.Error("(2, 2) should be outside unit square")
	}
	if PointInPolygon(V(-0.5, 0.5), square) {
		t.Error("(-0.5, 0.5) should be outside unit square")
	}

	// Concave "L" shape: the notch must read as outside.
	ell := []Vec2{V(0, 0), V(4, 0), V(4, 1), V(1, 1), V(1, 4), V(0, 4)}
	if !PointInPolygon(V(0.5, 3), ell) {
		t.Error("point in the L's vertical arm should be inside")
	}
	if PointInPolygon(V(3, 3), ell) {
		t.Error("point in the L's notch should be outside")
	}
}

func TestPolygonBounds(t *testing.T) {
	poly := []Vec2{V(775, -80), V(775, 250), V(1075, 250), V(1075, 0), V(975, -80)}
	b := PolygonBounds(poly)
	if b != NewRect(775, -80, 300, 330) {
		t.Errorf("PolygonBounds() = %+v", b)
	}
	if PolygonBounds(nil) != (Rect{}) {
		t.Error("PolygonBounds(nil) should be the zero rect")
	}
}

func TestVec2(t *testing.T) {
	v := V(3, 4)
	if v.Len() != 5 {
		t.Errorf("Len() = %f, expected 5", v.Len())
	}
	if got := v.Add(V(1, 1)).Sub(V(2, 2)); got != V(2, 3) {
		t.Errorf("Add/Sub = %v, expected (2, 3)", got)
	}
	if got := v.Scale(0.5); got != V(1.5, 2) {
		t.Errorf("Scale = %v, expected (1.5, 2)", got)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in     float64
		places int
		want   float64
	}{
		{1.23456, 2, 1.23},
		{1.235, 0, 1},
		{100.0 / 60.0, 2, 1.67},
	}
	for _, tc := range tests {
		if got := Round(tc.in, tc.places); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Round(%f, %d) = %f, expected %f", tc.in, tc.places, got, tc.want)
		}
	}
}
