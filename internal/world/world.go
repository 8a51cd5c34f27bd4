package world

// World owns all static and moving geometry of one level.
type World struct {
	Objects       []Hitbox
	PolyObjects   []PolygonHitbox
	MovingObjects []*MovingObject
	Portals       []SpeedPortal
}

// PlayerHitCheck reports whether the player overlaps any hazard: a static
// hitbox, a static polygon (edge crossings only) or a moving object.
// Portals are never lethal.
func (w *World) PlayerHitCheck(p *Player) bool {
	for _, o := range w.Objects {
		if p.Hitbox.Collides(o) {
			return true
		}
	}

	if len(w.PolyObjects) > 0 {
		body := p.Body()
		for _, o := range w.PolyObjects {
			if o.Collides(body) {
				return true
			}
		}
	}

	for _, m := range w.MovingObjects {
		if p.Hitbox.Collides(m.Hitbox) {
			return true
		}
	}
	return false
}

// Update advances every moving object, then lets every portal act on the
// player.
func (w *World) Update(p *Player) {
	for _, m := range w.MovingObjects {
		m.Update()
	}
	for i := range w.Portals {
		w.Portals[i].Update(p)
	}
}

// ResetPortals clears every portal latch. Called on respawn; geometry is
// left where it is.
func (w *World) ResetPortals() {
	for i := range w.Portals {
		w.Portals[i].Used = false
	}
}
