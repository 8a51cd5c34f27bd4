// Package world implements the simulation core: hitboxes, moving hazards,
// speed portals, the player body and the World that ties them together.
// Everything here is deterministic and free of I/O; one call to Update is
// one fixed simulation tick.
package world

import "github.com/vovakirdan/hardest-game/internal/core"

// Hitbox is an axis-aligned rectangle used for terrain, the player body,
// moving platforms and portal volumes.
type Hitbox struct {
	X, Y          float64
	Width, Height float64
}

// NewHitbox creates a hitbox with its top-left corner at (x, y).
func NewHitbox(x, y, width, height float64) Hitbox {
	return Hitbox{X: x, Y: y, Width: width, Height: height}
}

// Rect returns the hitbox as a core.Rect.
func (h Hitbox) Rect() core.Rect {
	return core.NewRect(h.X, h.Y, h.Width, h.Height)
}

// Position returns the top-left corner.
func (h Hitbox) Position() core.Vec2 {
	return core.V(h.X, h.Y)
}

// Collides reports whether h and other overlap. Touching edges do not count.
func (h Hitbox) Collides(other Hitbox) bool {
	return h.Rect().Intersects(other.Rect())
}

// Polygon returns the four corners of h as a polygon hitbox.
func (h Hitbox) Polygon() PolygonHitbox {
	return PolygonHitbox{Points: h.Rect().Corners()}
}

// PolygonHitbox is a simple closed polygon; the last vertex connects back
// to the first.
type PolygonHitbox struct {
	Points []core.Vec2
}

// NewPolygonHitbox creates a polygon hitbox from its vertices in order.
func NewPolygonHitbox(points ...core.Vec2) PolygonHitbox {
	return PolygonHitbox{Points: points}
}

// edge returns the i-th edge, wrapping around to the first vertex.
func (p PolygonHitbox) edge(i int) (core.Vec2, core.Vec2) {
	return p.Points[i], p.Points[(i+1)%len(p.Points)]
}

// Collides reports whether any edge of p crosses any edge of other.
// Only boundary crossings are detected: a polygon lying entirely inside
// the other does not collide.
func (p PolygonHitbox) Collides(other PolygonHitbox) bool {
	for i := range p.Points {
		p1, p2 := p.edge(i)
		for j := range other.Points {
			q1, q2 := other.edge(j)
			if core.SegmentsIntersect(p1, p2, q1, q2) {
				return true
			}
		}
	}
	return false
}

// Contains reports whether pt lies inside the polygon.
func (p PolygonHitbox) Contains(pt core.Vec2) bool {
	return core.PointInPolygon(pt, p.Points)
}

// Bounds returns the polygon's bounding rectangle.
func (p PolygonHitbox) Bounds() core.Rect {
	return core.PolygonBounds(p.Points)
}

// Translate returns a copy of p moved by d.
func (p PolygonHitbox) Translate(d core.Vec2) PolygonHitbox {
	pts := make([]core.Vec2, len(p.Points))
	for i, pt := range p.Points {
		pts[i] = pt.Add(d)
	}
	return PolygonHitbox{Points: pts}
}
