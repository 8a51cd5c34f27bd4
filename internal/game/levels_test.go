package game

import (
	"testing"

	"github.com/vovakirdan/hardest-game/internal/registry"
	"github.com/vovakirdan/hardest-game/internal/world"
)

func TestBuiltinLevelsLoad(t *testing.T) {
	for _, id := range []string{registry.DefaultLevel, "practice"} {
		t.Run(id, func(t *testing.T) {
			w, err := registry.Load(id)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			// The spawn point must be safe on every built-in level.
			p := world.NewPlayer(world.DefaultParams())
			if w.PlayerHitCheck(p) {
				t.Error("player spawns inside a hazard")
			}
		})
	}
}
