package world

import "github.com/vovakirdan/hardest-game/internal/core"

// Physics defaults, tuned for 60 ticks per second.
const (
	PlayerSpeed    = 1.0  // vertical acceleration and base scroll per tick
	Damping        = 0.9  // vertical velocity multiplier applied every tick
	StartSpeedMult = 3.5  // initial horizontal speed multiplier
	PlayerWidth    = 32.0 // hitbox size
	PlayerHeight   = 24.0
)

// Outcome is the result of one player tick.
type Outcome int

const (
	Alive Outcome = iota
	Died
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case Alive:
		return "alive"
	case Died:
		return "died"
	default:
		return "unknown"
	}
}

// Params holds the tunable player physics.
type Params struct {
	Speed          float64
	Damping        float64
	StartSpeedMult float64
	Width          float64
	Height         float64
	Spawn          core.Vec2
}

// DefaultParams returns the standard player physics with spawn at the origin.
func DefaultParams() Params {
	return Params{
		Speed:          PlayerSpeed,
		Damping:        Damping,
		StartSpeedMult: StartSpeedMult,
		Width:          PlayerWidth,
		Height:         PlayerHeight,
	}
}

// Player is the kinematic body the user steers. Hitbox always mirrors (X, Y).
type Player struct {
	X, Y      float64
	VY        float64
	FacingUp  bool
	SpeedMult float64
	Hitbox    Hitbox

	params Params
}

// NewPlayer spawns a player facing up at params.Spawn.
func NewPlayer(params Params) *Player {
	return &Player{
		X:         params.Spawn.X,
		Y:         params.Spawn.Y,
		FacingUp:  true,
		SpeedMult: params.StartSpeedMult,
		Hitbox:    NewHitbox(params.Spawn.X, params.Spawn.Y, params.Width, params.Height),
		params:    params,
	}
}

// Params returns the physics the player was spawned with.
func (p *Player) Params() Params {
	return p.params
}

// Update runs one tick. The hit check sees the world as it was left by
// the previous World.Update; on a hit the player does not move at all.
// toggled is the edge-triggered "direction flip pressed this tick" signal.
func (p *Player) Update(w *World, toggled bool) Outcome {
	if w.PlayerHitCheck(p) {
		return Died
	}

	if toggled {
		p.FacingUp = !p.FacingUp
	}

	if p.FacingUp {
		p.VY -= p.params.Speed
	} else {
		p.VY += p.params.Speed
	}

	p.Y += p.VY
	p.Hitbox.Y = p.Y

	p.X += p.params.Speed * p.SpeedMult
	p.Hitbox.X = p.X

	p.VY *= p.params.Damping

	return Alive
}

// Body returns the player's hitbox as a four-corner polygon.
func (p *Player) Body() PolygonHitbox {
	return p.Hitbox.Polygon()
}
