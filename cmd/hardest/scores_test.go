package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/hardest-game/internal/leaderboard"
)

func TestPrintScores(t *testing.T) {
	var buf bytes.Buffer
	printScores(&buf, "http://localhost:3000", []leaderboard.Score{
		{Player: "alice", Score: 600},
		{Player: "bob", Score: 100},
	})

	out := buf.String()
	for _, want := range []string{"alice", "10s", "bob", "1.67s"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "alice") > strings.Index(out, "bob") {
		t.Errorf("rank order lost:\n%s", out)
	}
}

func TestPrintScoresEmpty(t *testing.T) {
	var buf bytes.Buffer
	printScores(&buf, "http://localhost:3000", nil)
	if !strings.Contains(buf.String(), "No scores submitted yet.") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestLimitScores(t *testing.T) {
	scores := []leaderboard.Score{{Player: "a"}, {Player: "b"}, {Player: "c"}}

	tests := []struct {
		limit int
		want  int
	}{
		{0, 3},
		{-1, 3},
		{2, 2},
		{10, 3},
	}
	for _, tt := range tests {
		if got := len(limitScores(scores, tt.limit)); got != tt.want {
			t.Errorf("limitScores(%d) kept %d, want %d", tt.limit, got, tt.want)
		}
	}
}

func TestLocalURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":3000", "http://127.0.0.1:3000"},
		{"0.0.0.0:8080", "http://127.0.0.1:8080"},
		{"192.168.1.5:3000", "http://192.168.1.5:3000"},
		{"[::]:3000", "http://127.0.0.1:3000"},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			if got := localURL(tt.addr); got != tt.want {
				t.Errorf("localURL(%q) = %q, want %q", tt.addr, got, tt.want)
			}
		})
	}
}
