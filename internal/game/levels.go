package game

import (
	"github.com/vovakirdan/hardest-game/internal/registry"
	"github.com/vovakirdan/hardest-game/internal/world"
)

func init() {
	registry.Register(registry.DefaultLevel, "Classic", world.DefaultDocument)
	registry.Register("practice", "Practice", practiceDocument)
}

// practiceDocument is a gentler corridor: wider gaps, one slow block and
// no ramp.
func practiceDocument() world.Document {
	return world.Document{
		Objects: []world.RectDoc{
			{X: 0, Y: 250, Width: 8000, Height: 50},
			{X: 0, Y: -300, Width: 8000, Height: 50},
			{X: 700, Y: 100, Width: 50, Height: 150},
			{X: 1200, Y: -250, Width: 50, Height: 150},
			{X: 1700, Y: 100, Width: 50, Height: 150},
		},
		PolyObjects: []world.PolyDoc{
			{Points: []world.PointDoc{
				{X: 2200, Y: 250},
				{X: 2400, Y: 120},
				{X: 2600, Y: 250},
			}},
		},
		MovingObjects: []world.MovingDoc{
			{From: world.PointDoc{X: 3000, Y: -200}, To: world.PointDoc{X: 3000, Y: 150}, Width: 50, Height: 50, Speed: 1.5},
		},
		SpeedIncreases: []world.PortalDoc{
			{X: 3500, Y: -64, SpeedChange: 1.5},
		},
	}
}
