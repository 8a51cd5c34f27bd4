package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/hardest-game/internal/core"
	"github.com/vovakirdan/hardest-game/internal/world"
)

// Rendering constants.
const (
	DefaultViewHeight = 600.0 // world units visible top to bottom
	DefaultCameraLead = 200.0 // camera looks this far ahead of the player

	wallTile = 50.0 // world size of one wall texture tile
)

// Runes used for world objects.
const (
	runeWallA     = '▓'
	runeWallB     = '▒'
	runeMoving    = '█'
	runePortal    = '░'
	runePlayerUp  = '▲'
	runePlayerDn  = '▼'
	flashStrong   = 0.6
	flashFaint    = 0.2
	hudHelp       = "space: flip  esc: menu  q: quit"
	titleText     = "Hardest Game Ever"
	hintText      = "Use the mouse or space bar to change direction"
	attemptsLabel = "Attempts: %d"
)

// Renderer draws a session into a screen buffer.
type Renderer struct {
	ViewHeight float64
	CameraLead float64
}

// NewRenderer creates a renderer. Non-positive values fall back to the
// defaults.
func NewRenderer(viewHeight, cameraLead float64) *Renderer {
	if viewHeight <= 0 {
		viewHeight = DefaultViewHeight
	}
	if cameraLead == 0 {
		cameraLead = DefaultCameraLead
	}
	return &Renderer{ViewHeight: viewHeight, CameraLead: cameraLead}
}

// Camera returns the camera used for a screen of the given size following p.
func (r *Renderer) Camera(p *world.Player, width, height int) Camera {
	cam := NewCamera(r.ViewHeight/float64(max(height, 1))/2, width, height)
	cam.Follow(p.X, r.CameraLead)
	return cam
}

// Render draws s into dst. flash is the toggle tint in [0, 1].
func (r *Renderer) Render(dst *core.Screen, s *Session, flash float32) {
	switch {
	case flash > flashStrong:
		dst.FillColor(' ', core.ColorNavy)
	case flash > flashFaint:
		dst.FillColor(' ', core.ColorNavyDim)
	default:
		dst.Clear()
	}

	p := s.Player()
	w := s.World()
	cam := r.Camera(p, dst.Width(), dst.Height())

	drawWorldText(dst, cam, core.V(0, -40), titleText, core.ColorBrightYellow)
	drawWorldText(dst, cam, core.V(-50, 60), hintText, core.ColorWhite)
	drawWorldText(dst, cam, core.V(0, 100), fmt.Sprintf(attemptsLabel, s.Attempts()), core.ColorWhite)

	for _, o := range w.Objects {
		drawWall(dst, cam, o.Rect(), nil)
	}
	for _, o := range w.PolyObjects {
		drawWall(dst, cam, o.Bounds(), o.Contains)
	}
	for _, m := range w.MovingObjects {
		fillRect(dst, cam, m.Hitbox.Rect(), runeMoving, core.ColorRed)
	}
	for _, pt := range w.Portals {
		c := core.ColorCyan
		if pt.Used {
			c = core.ColorGray
		}
		fillRect(dst, cam, pt.Hitbox.Rect(), runePortal, c)
	}

	drawPlayer(dst, cam, p)
	r.drawHUD(dst, s)
}

func (r *Renderer) drawHUD(dst *core.Screen, s *Session) {
	dst.DrawTextColor(1, 0, "Score: "+formatSeconds(s.Score()), core.ColorWhite)
	dst.DrawTextColor(1, 1, "Best Score: "+formatSeconds(s.Best()), core.ColorWhite)
	if x := dst.Width() - len(hudHelp) - 1; x > 20 {
		dst.DrawTextColor(x, 0, hudHelp, core.ColorGray)
	}
}

// formatSeconds renders a tick count as seconds rounded to two places.
func formatSeconds(ticks int) string {
	return fmt.Sprintf("%gs", core.TicksToSeconds(ticks))
}

// drawWall tiles a textured wall over bounds. If inside is non-nil only
// cells whose center passes it are drawn, which is how polygons are tiled.
func drawWall(dst *core.Screen, cam Camera, bounds core.Rect, inside func(core.Vec2) bool) {
	x0, y0, x1, y1 := cam.Cells(bounds)
	for row := y0; row < y1; row++ {
		for col := x0; col < x1; col++ {
			c := cam.CellCenter(col, row)
			if !containsPoint(bounds, c) {
				continue
			}
			if inside != nil && !inside(c) {
				continue
			}
			dst.SetColor(col, row, wallRune(bounds.Pos(), c), core.ColorGray)
		}
	}
}

// wallRune picks the checker rune for the texture tile containing p.
func wallRune(origin, p core.Vec2) rune {
	tx := int(math.Floor((p.X - origin.X) / wallTile))
	ty := int(math.Floor((p.Y - origin.Y) / wallTile))
	if (tx+ty)&1 == 0 {
		return runeWallA
	}
	return runeWallB
}

func fillRect(dst *core.Screen, cam Camera, r core.Rect, fill rune, color core.Color) {
	x0, y0, x1, y1 := cam.Cells(r)
	for row := y0; row < y1; row++ {
		for col := x0; col < x1; col++ {
			if containsPoint(r, cam.CellCenter(col, row)) {
				dst.SetColor(col, row, fill, color)
			}
		}
	}
}

// drawPlayer fills the player's cells, always drawing at least the cell
// under the body's center so a small body never vanishes.
func drawPlayer(dst *core.Screen, cam Camera, p *world.Player) {
	fill := runePlayerUp
	if !p.FacingUp {
		fill = runePlayerDn
	}
	r := p.Hitbox.Rect()
	fillRect(dst, cam, r, fill, core.ColorBrightYellow)

	col, row := cam.ToScreen(core.V(r.X+r.W/2, r.Y+r.H/2))
	dst.SetColor(col, row, fill, core.ColorBrightYellow)
}

func drawWorldText(dst *core.Screen, cam Camera, at core.Vec2, text string, color core.Color) {
	col, row := cam.ToScreen(at)
	if row < 0 || row >= dst.Height() {
		return
	}
	dst.DrawTextColor(col, row, text, color)
}

// containsPoint reports whether p lies in r, counting the top and left
// edges as inside.
func containsPoint(r core.Rect, p core.Vec2) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}
