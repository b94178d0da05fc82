package breakout

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar = '='
	BallChar   = '●'
	BrickChar  = '█'
)

// hudRows is the number of rows above the arena border.
const hudRows = 1

// Render draws the game onto dst. The arena is scaled to fit inside a
// border below a one-line HUD showing the observed frame rate.
func (g *Game) Render(dst *core.Screen, fps int) {
	dst.Clear()

	if dst.Width() < 12 || dst.Height() < 8 {
		dst.DrawText(0, 0, "Window too small")
		return
	}

	g.renderHUD(dst, fps)

	frame := core.NewRect(0, hudRows, dst.Width(), dst.Height()-hudRows)
	dst.DrawBox(frame)
	v := newViewport(g.world.Arena, core.NewRect(frame.X+1, frame.Y+1, frame.W-2, frame.H-2))

	g.renderBricks(dst, v)
	g.renderPaddle(dst, v)
	g.renderBall(dst, v)
	g.renderOverlay(dst)
}

func (g *Game) renderHUD(dst *core.Screen, fps int) {
	dst.DrawText(1, 0, fmt.Sprintf("FPS: %d", fps))

	bricks := fmt.Sprintf("Bricks: %d/%d", g.world.Grid.Remaining(), g.world.Grid.Total())
	dst.DrawText(dst.Width()-len(bricks)-1, 0, bricks)
}

// renderBricks draws all unbroken bricks in their palette color.
func (g *Game) renderBricks(dst *core.Screen, v viewport) {
	grid := g.world.Grid
	for i := range grid.Bricks {
		brick := grid.Bricks[i]
		if !brick.Alive() {
			continue
		}
		color := core.PaletteColor(brick.Color)
		x0, y0 := v.cell(brick.X, brick.Y)
		x1, y1 := v.cell(brick.X+grid.Width, brick.Y+grid.Height)
		x1 = spanEnd(x0, x1)
		y1 = spanEnd(y0, y1)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				dst.SetColored(x, y, BrickChar, color)
			}
		}
	}
}

func (g *Game) renderPaddle(dst *core.Screen, v viewport) {
	p := g.world.Paddle
	x0, y := v.cell(p.X, p.Y)
	x1, _ := v.cell(p.X+p.Width, p.Y)
	for x := x0; x <= core.Max(x0, x1-1); x++ {
		dst.Set(x, y, PaddleChar)
	}
}

func (g *Game) renderBall(dst *core.Screen, v viewport) {
	x, y := v.cell(g.world.Ball.X, g.world.Ball.Y)
	dst.Set(x, y, BallChar)
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.machine.State() {
	case StatePaused:
		dst.DrawTextCentered(dst.Height()-2, "Press any key to start")
	case StateOver:
		g.drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("%d/%d bricks", g.world.Destroyed, g.world.Grid.Total()))
	case StateWin:
		g.drawCenteredBox(dst, "YOU WIN!", fmt.Sprintf("%d steps", g.steps))
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// spanEnd returns an exclusive end cell covering at least one cell.
// Spans wider than two cells give up their last cell as a gap between neighbours.
func spanEnd(start, end int) int {
	if end-start > 2 {
		end--
	}
	if end <= start {
		end = start + 1
	}
	return end
}

// viewport maps arena units onto a rectangle of screen cells.
type viewport struct {
	arena core.Arena
	area  core.Rect
}

func newViewport(a core.Arena, area core.Rect) viewport {
	return viewport{arena: a, area: area}
}

// cell projects an arena point to the cell containing it, clamped to the area.
func (v viewport) cell(x, y float64) (int, int) {
	cx := v.area.X + int(x/v.arena.Width*float64(v.area.W))
	cy := v.area.Y + int(y/v.arena.Height*float64(v.area.H))
	return core.ClampInt(cx, v.area.X, v.area.Right()-1), core.ClampInt(cy, v.area.Y, v.area.Bottom()-1)
}
