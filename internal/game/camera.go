package game

import (
	"math"

	"github.com/vovakirdan/hardest-game/internal/core"
)

// Camera maps world coordinates to screen cells. Terminal cells are about
// twice as tall as they are wide, so one row covers twice the world
// distance of one column.
type Camera struct {
	Center core.Vec2 // world point shown in the middle of the screen
	Scale  float64   // world units per column
	Width  int       // screen size in cells
	Height int
}

// NewCamera creates a camera for a screen of the given size.
func NewCamera(scale float64, width, height int) Camera {
	if scale <= 0 {
		scale = 10
	}
	return Camera{Scale: scale, Width: width, Height: height}
}

// Follow centers the camera lead units ahead of x on the horizontal axis.
// The vertical center stays on y = 0.
func (c *Camera) Follow(x, lead float64) {
	c.Center = core.V(x+lead, 0)
}

func (c Camera) scaleY() float64 {
	return c.Scale * 2
}

// ToScreen returns the cell containing world point v. The result may lie
// outside the screen.
func (c Camera) ToScreen(v core.Vec2) (col, row int) {
	col = int(math.Floor((v.X-c.Center.X)/c.Scale + float64(c.Width)/2))
	row = int(math.Floor((v.Y-c.Center.Y)/c.scaleY() + float64(c.Height)/2))
	return col, row
}

// CellCenter returns the world point at the center of a cell.
func (c Camera) CellCenter(col, row int) core.Vec2 {
	return core.V(
		c.Center.X+(float64(col)+0.5-float64(c.Width)/2)*c.Scale,
		c.Center.Y+(float64(row)+0.5-float64(c.Height)/2)*c.scaleY(),
	)
}

// Cells returns the on-screen cell range covering r, clipped to the
// screen. Empty ranges have x0 >= x1 or y0 >= y1.
func (c Camera) Cells(r core.Rect) (x0, y0, x1, y1 int) {
	x0, y0 = c.ToScreen(r.Pos())
	x1, y1 = c.ToScreen(core.V(r.Right(), r.Bottom()))
	x1++
	y1++
	return max(x0, 0), max(y0, 0), min(x1, c.Width), min(y1, c.Height)
}
