package world

// Portal volume size in world units.
const (
	PortalWidth  = 64.0
	PortalHeight = 128.0
)

// SpeedPortal multiplies the player's horizontal speed on first contact.
// Used latches the effect until the World resets it on respawn.
type SpeedPortal struct {
	Hitbox      Hitbox
	SpeedChange float64
	Used        bool
}

// NewSpeedPortal creates an unused portal with its top-left corner at (x, y).
func NewSpeedPortal(x, y, speedChange float64) SpeedPortal {
	return SpeedPortal{
		Hitbox:      NewHitbox(x, y, PortalWidth, PortalHeight),
		SpeedChange: speedChange,
	}
}

// Update applies the speed change if the player overlaps an unused portal.
func (s *SpeedPortal) Update(p *Player) {
	if s.Used || !p.Hitbox.Collides(s.Hitbox) {
		return
	}
	p.SpeedMult *= s.SpeedChange
	s.Used = true
}
