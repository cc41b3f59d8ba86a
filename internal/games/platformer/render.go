package platformer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Visual characters for rendering
const (
	GroundChar   = '▓'
	PlatformChar = '█'
	PlayerChar   = '█'
)

// viewport maps world units onto screen cells.
type viewport struct {
	sx, sy float64
}

func newViewport(dst *core.Screen, world core.Vec2) viewport {
	return viewport{
		sx: float64(dst.Width()) / world.X,
		sy: float64(dst.Height()) / world.Y,
	}
}

// rect returns the cells covered by a box. Every box covers at least one cell.
func (v viewport) rect(b core.Box) core.Rect {
	lo, hi := b.Min(), b.Max()
	x0 := int(math.Floor(lo.X * v.sx))
	y0 := int(math.Floor(lo.Y * v.sy))
	x1 := int(math.Ceil(hi.X * v.sx))
	y1 := int(math.Ceil(hi.Y * v.sy))
	return core.NewRect(x0, y0, core.Max(x1-x0, 1), core.Max(y1-y0, 1))
}

// baseline returns the cell row for text whose baseline is at world y.
func (v viewport) baseline(y float64) int {
	return core.Max(int(math.Ceil(y*v.sy))-1, 0)
}

// Render draws the level, the script's text, and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.level == nil {
		return
	}

	w := g.level.World
	vp := newViewport(dst, g.frame.Viewport)

	dst.DrawRectColor(vp.rect(w.ColliderBox(g.level.Ground)), GroundChar, core.ColorGray)
	for _, p := range g.level.Platforms {
		dst.DrawRectColor(vp.rect(w.ColliderBox(p.Collider)), PlatformChar, core.ColorGreen)
	}
	dst.DrawRectColor(vp.rect(w.ColliderBox(g.level.Player.Collider)), PlayerChar, core.ColorBlue)

	for _, t := range g.bridge.Queue() {
		dst.DrawTextColor(int(t.X*vp.sx), vp.baseline(t.Y), t.Content, t.Color)
	}

	hud := fmt.Sprintf(" ride %d  jumps %d ", g.rideFrames, g.jumps)
	dst.DrawText(2, dst.Height()-1, hud)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "P to resume  |  R to restart")
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, title)
	dst.DrawTextCentered(box.Y+3, subtitle)
}
