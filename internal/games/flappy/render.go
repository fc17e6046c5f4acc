package flappy

import (
	"fmt"

	"github.com/vovakirdan/flappy-quest/internal/core"
)

// Visual characters for rendering
const (
	BirdChar      = '●'
	BirdEyeChar   = '▶'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
)

// Overlay is an optional centered message box drawn over the field.
type Overlay struct {
	Title    string
	Subtitle string
}

// Render draws w onto dst. The bottom row is the ground line; the field is
// scaled onto the remaining rows.
func Render(dst *core.Screen, w World, p Params, overlay *Overlay) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() < 2 {
		return
	}

	groundY := dst.Height() - 1
	vp := core.NewViewport(p.FieldW, p.FieldH, dst.Width(), groundY)

	dst.DrawHLine(0, groundY, dst.Width(), GroundChar, core.ColorGround)

	for _, o := range w.Obstacles {
		drawObstacle(dst, vp, o, p)
	}

	// Bird, with the eye on the leading top cell
	x0, y0, x1, y1 := vp.Cells(w.Bird.Rect(p.BirdSize))
	dst.FillRect(x0, y0, x1, y1, BirdChar, core.ColorBird)
	dst.SetColored(x1-1, y0, BirdEyeChar, core.ColorBirdEye)

	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", w.Score), core.ColorHUD)

	if overlay != nil {
		drawCenteredMessage(dst, overlay.Title, overlay.Subtitle)
	}
}

// drawObstacle renders both barriers of one obstacle.
func drawObstacle(dst *core.Screen, vp core.Viewport, o Obstacle, p Params) {
	tx0, ty0, tx1, ty1 := vp.Cells(o.TopRect(p.ObstacleWidth))
	dst.FillRect(tx0, ty0, tx1, ty1, PipeChar, core.ColorPipe)
	if ty1 > 0 {
		dst.FillRect(tx0, ty1-1, tx1, ty1, PipeCapTop, core.ColorPipeCap)
	}

	bx0, by0, bx1, by1 := vp.Cells(o.BottomRect(p.ObstacleWidth, p.FieldH))
	dst.FillRect(bx0, by0, bx1, by1, PipeChar, core.ColorPipe)
	if by0 < by1 {
		dst.FillRect(bx0, by0, bx1, by0+1, PipeCapBottom, core.ColorPipeCap)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxX+boxW, boxY+boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorAlert)

	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawText(titleX, boxY+1, title, core.ColorAlert)

	subtitleX := boxX + (boxW-len([]rune(subtitle)))/2
	dst.DrawText(subtitleX, boxY+3, subtitle, core.ColorHUD)
}
