package world

// DefaultDocument returns the built-in level: floor and ceiling, two
// pillars, a ramp, three moving blocks and one speed portal.
func DefaultDocument() Document {
	return Document{
		Objects: []RectDoc{
			{X: 0, Y: 250, Width: 5000, Height: 50},
			{X: 0, Y: -300, Width: 5000, Height: 50},
			{X: 500, Y: 15, Width: 50, Height: 235},
			{X: 625, Y: -250, Width: 50, Height: 235},
		},
		PolyObjects: []PolyDoc{
			{Points: []PointDoc{
				{X: 775, Y: -80},
				{X: 775, Y: 250},
				{X: 1075, Y: 250},
				{X: 1075, Y: 0},
				{X: 975, Y: -80},
			}},
		},
		MovingObjects: []MovingDoc{
			{From: PointDoc{X: 1100, Y: -225}, To: PointDoc{X: 1200, Y: 150}, Width: 50, Height: 100, Speed: 3},
			{From: PointDoc{X: 1300, Y: 150}, To: PointDoc{X: 1400, Y: -225}, Width: 50, Height: 100, Speed: 3},
			{From: PointDoc{X: 1500, Y: 0}, To: PointDoc{X: 1600, Y: 0}, Width: 100, Height: 50, Speed: 3},
		},
		SpeedIncreases: []PortalDoc{
			{X: 1075, Y: -200, SpeedChange: 2.0},
		},
	}
}

// Default builds the built-in level.
func Default() *World {
	w, err := FromDocument(DefaultDocument())
	if err != nil {
		panic("world: invalid default document: " + err.Error())
	}
	return w
}
