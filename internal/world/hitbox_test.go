package world

import (
	"testing"

	"github.com/vovakirdan/hardest-game/internal/core"
)

func TestHitboxCollides(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Hitbox
		expected bool
	}{
		{"overlap", NewHitbox(0, 0, 10, 10), NewHitbox(5, 5, 10, 10), true},
		{"touching right edge", NewHitbox(0, 0, 10, 10), NewHitbox(10, 0, 10, 10), false},
		{"touching bottom edge", NewHitbox(0, 0, 10, 10), NewHitbox(0, 10, 10, 10), false},
		{"touching corner", NewHitbox(0, 0, 10, 10), NewHitbox(10, 10, 10, 10), false},
		{"disjoint", NewHitbox(0, 0, 10, 10), NewHitbox(50, 50, 5, 5), false},
		{"contained", NewHitbox(0, 0, 100, 100), NewHitbox(40, 40, 2, 2), true},
		{"player under ceiling", NewHitbox(0, -249, 32, 24), NewHitbox(0, -300, 5000, 50), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Collides(tc.b); got != tc.expected {
				t.Errorf("a.Collides(b) = %v, want %v", got, tc.expected)
			}
			if got := tc.b.Collides(tc.a); got != tc.expected {
				t.Errorf("b.Collides(a) = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestHitboxPosition(t *testing.T) {
	h := NewHitbox(3, -4, 10, 20)
	if got := h.Position(); got != core.V(3, -4) {
		t.Errorf("Position() = %v, want (3,-4)", got)
	}
}

func TestHitboxPolygon(t *testing.T) {
	poly := NewHitbox(0, 0, 32, 24).Polygon()
	want := []core.Vec2{core.V(0, 0), core.V(32, 0), core.V(32, 24), core.V(0, 24)}
	if len(poly.Points) != len(want) {
		t.Fatalf("got %d points, want %d", len(poly.Points), len(want))
	}
	for i := range want {
		if poly.Points[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, poly.Points[i], want[i])
		}
	}
}

func TestPolygonCollides(t *testing.T) {
	ramp := DefaultDocument().PolyObjects[0]
	pts := make([]core.Vec2, len(ramp.Points))
	for i, p := range ramp.Points {
		pts[i] = p.vec()
	}
	poly := NewPolygonHitbox(pts...)

	tests := []struct {
		name     string
		other    PolygonHitbox
		expected bool
	}{
		{"crosses left edge", NewHitbox(760, 100, 32, 24).Polygon(), true},
		{"crosses slanted edge", NewHitbox(1010, -70, 32, 24).Polygon(), true},
		{"fully inside is not detected", NewHitbox(850, 100, 32, 24).Polygon(), false},
		{"left of ramp", NewHitbox(700, 100, 32, 24).Polygon(), false},
		{"above ramp", NewHitbox(800, -200, 32, 24).Polygon(), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := poly.Collides(tc.other); got != tc.expected {
				t.Errorf("Collides = %v, want %v", got, tc.expected)
			}
			if got := tc.other.Collides(poly); got != tc.expected {
				t.Errorf("reverse Collides = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestPolygonFarCopyNeverCollides(t *testing.T) {
	poly := NewPolygonHitbox(core.V(0, 0), core.V(10, 0), core.V(15, 8), core.V(5, 12), core.V(-3, 6))
	b := poly.Bounds()
	diag := core.V(b.W, b.H).Len()

	offsets := []core.Vec2{
		core.V(diag+1, 0),
		core.V(0, diag+1),
		core.V(-(diag + 1), diag+1),
		core.V(1000, -1000),
	}
	for _, d := range offsets {
		if poly.Collides(poly.Translate(d)) {
			t.Errorf("polygon collides with copy translated by %v", d)
		}
	}

	if !poly.Collides(poly.Translate(core.V(2, 1))) {
		t.Error("polygon should collide with a slightly shifted copy")
	}
}

func TestPolygonContains(t *testing.T) {
	square := NewPolygonHitbox(core.V(0, 0), core.V(0, 1), core.V(1, 1), core.V(1, 0))
	if !square.Contains(core.V(0.5, 0.5)) {
		t.Error("center should be inside")
	}
	if square.Contains(core.V(2, 2)) {
		t.Error("(2,2) should be outside")
	}
}
