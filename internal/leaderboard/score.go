// Package leaderboard implements the score service: an in-memory board,
// the HTTP server that exposes it with a live websocket feed, and the
// client the game uses to fetch the world and submit scores.
package leaderboard

import (
	"errors"
	"strings"

	"github.com/vovakirdan/hardest-game/internal/core"
)

// SubmitResponse is the body returned by a successful submission.
const SubmitResponse = "Score submitted!"

// ErrEmptyPlayer is returned when a score carries no player name.
var ErrEmptyPlayer = errors.New("leaderboard: empty player name")

// Score is one leaderboard entry. Score counts simulation ticks survived.
type Score struct {
	Player string `json:"player"`
	Score  uint32 `json:"score"`
}

// Seconds returns the score as seconds rounded to two places.
func (s Score) Seconds() float64 {
	return core.TicksToSeconds(int(s.Score))
}

// Validate checks that s can be stored.
func (s Score) Validate() error {
	if strings.TrimSpace(s.Player) == "" {
		return ErrEmptyPlayer
	}
	return nil
}

// SelfBest returns the best score of player in scores, or 0.
func SelfBest(scores []Score, player string) uint32 {
	var best uint32
	for _, s := range scores {
		if s.Player == player && s.Score > best {
			best = s.Score
		}
	}
	return best
}

// Store persists the board. Implementations keep one entry per player
// holding that player's best score.
type Store interface {
	// Submit records s, replacing the player's entry only if s is better.
	Submit(s Score) error
	// Top returns up to limit entries, best first. limit <= 0 means all.
	Top(limit int) ([]Score, error)
}
