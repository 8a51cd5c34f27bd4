package world

import (
	"fmt"

	"github.com/vovakirdan/hardest-game/internal/core"
)

// MovingObject is a hazard that ping-pongs between From and To at a
// constant Speed (world units per tick).
type MovingObject struct {
	From    core.Vec2
	To      core.Vec2
	Speed   float64
	Forward bool
	Hitbox  Hitbox

	unit     core.Vec2 // normalized From -> To
	distance float64   // |To - From|
}

// NewMovingObject creates a moving object whose hitbox starts at from,
// heading towards to. From and To must differ.
func NewMovingObject(from, to core.Vec2, width, height, speed float64) (*MovingObject, error) {
	dir := to.Sub(from)
	dist := dir.Len()
	if dist == 0 {
		return nil, fmt.Errorf("moving object path from %v to %v has zero length", from, to)
	}
	return &MovingObject{
		From:     from,
		To:       to,
		Speed:    speed,
		Forward:  true,
		Hitbox:   NewHitbox(from.X, from.Y, width, height),
		unit:     dir.Scale(1 / dist),
		distance: dist,
	}, nil
}

// Update advances the object one tick and flips direction once it reaches
// or passes an endpoint. Overshoot of up to one step is not clamped.
func (m *MovingObject) Update() {
	step := m.unit.Scale(m.Speed)
	if m.Forward {
		m.Hitbox.X += step.X
		m.Hitbox.Y += step.Y
	} else {
		m.Hitbox.X -= step.X
		m.Hitbox.Y -= step.Y
	}

	// Signed progress along the path, so passing From reads as <= 0.
	progress := m.Progress()
	if progress >= m.distance {
		m.Forward = false
	} else if progress <= 0 {
		m.Forward = true
	}
}

// Progress returns how far along the From -> To path the hitbox is.
// Negative values mean it has overshot From.
func (m *MovingObject) Progress() float64 {
	d := m.Hitbox.Position().Sub(m.From)
	return d.X*m.unit.X + d.Y*m.unit.Y
}

// Distance returns the length of the path.
func (m *MovingObject) Distance() float64 {
	return m.distance
}
