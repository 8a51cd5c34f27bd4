package leaderboard

import (
	"sort"
	"strings"
	"sync"
)

type boardEntry struct {
	score Score
	seq   uint64 // arrival order of the current best, breaks ties
}

// Board is an in-memory Store. It is safe for concurrent use.
type Board struct {
	mu      sync.RWMutex
	entries map[string]*boardEntry
	seq     uint64
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{entries: make(map[string]*boardEntry)}
}

// Submit records s if it beats the player's current best.
func (b *Board) Submit(s Score) error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.Player = strings.TrimSpace(s.Player)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	if e, ok := b.entries[s.Player]; ok {
		if s.Score > e.score.Score {
			e.score = s
			e.seq = b.seq
		}
		return nil
	}
	b.entries[s.Player] = &boardEntry{score: s, seq: b.seq}
	return nil
}

// Top returns up to limit entries sorted by score, ties by earlier arrival.
func (b *Board) Top(limit int) ([]Score, error) {
	b.mu.RLock()
	entries := make([]boardEntry, 0, len(b.entries))
	for _, e := range b.entries {
		entries = append(entries, *e)
	}
	b.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score.Score != entries[j].score.Score {
			return entries[i].score.Score > entries[j].score.Score
		}
		return entries[i].seq < entries[j].seq
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	out := make([]Score, len(entries))
	for i, e := range entries {
		out[i] = e.score
	}
	return out, nil
}

// Len returns the number of players on the board.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
