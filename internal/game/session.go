// Package game runs a play session on top of the world simulation: it
// owns the attempt and score counters, respawns the player, and draws the
// world into a core.Screen.
package game

import (
	"github.com/vovakirdan/hardest-game/internal/core"
	"github.com/vovakirdan/hardest-game/internal/world"
)

// StepResult is the outcome of one session tick.
type StepResult struct {
	Outcome  world.Outcome
	Toggled  bool
	Score    int // ticks survived in the current attempt
	Best     int // best attempt of this session, in ticks
	Attempts int // deaths so far
}

// Session is one continuous play session on a single world. Geometry
// persists across deaths; only the player and the portal latches reset.
type Session struct {
	world    *world.World
	player   *world.Player
	params   world.Params
	attempts int
	score    int
	best     int
	ticks    int
}

// NewSession starts a session on w with the player spawned from params.
func NewSession(w *world.World, params world.Params) *Session {
	return &Session{
		world:  w,
		player: world.NewPlayer(params),
		params: params,
	}
}

// Step advances the session by one tick.
//
// The player moves (or dies) against the world as the previous tick left
// it, then the world advances. A death respawns the player, clears every
// portal latch and restarts the score; the respawn tick still counts.
func (s *Session) Step(in core.InputFrame) StepResult {
	toggled := in.Has(core.ActionToggle)

	outcome := s.player.Update(s.world, toggled)
	if outcome == world.Died {
		s.player = world.NewPlayer(s.params)
		s.world.ResetPortals()
		s.attempts++
		s.score = 0
	}

	s.world.Update(s.player)

	s.score++
	if s.score > s.best {
		s.best = s.score
	}
	s.ticks++

	return StepResult{
		Outcome:  outcome,
		Toggled:  toggled && outcome == world.Alive,
		Score:    s.score,
		Best:     s.best,
		Attempts: s.attempts,
	}
}

// World returns the simulated world.
func (s *Session) World() *world.World {
	return s.world
}

// Player returns the current player body.
func (s *Session) Player() *world.Player {
	return s.player
}

// Score returns the ticks survived in the current attempt.
func (s *Session) Score() int {
	return s.score
}

// Best returns the best attempt of this session in ticks.
func (s *Session) Best() int {
	return s.best
}

// Attempts returns the number of deaths so far.
func (s *Session) Attempts() int {
	return s.attempts
}

// Ticks returns the total ticks simulated in this session.
func (s *Session) Ticks() int {
	return s.ticks
}
