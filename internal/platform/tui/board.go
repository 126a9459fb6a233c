package tui

import (
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Each grid cell is two columns wide so the board looks square in a
// terminal font.
const cellWidth = 2

// boardLayout positions the HUD line, board box and help line on screen.
type boardLayout struct {
	hud   core.Rect
	board core.Rect
	help  core.Rect
}

// layoutFor centers a board for a grid of the given size.
func layoutFor(screenW, screenH, grid int) boardLayout {
	boardW := grid*cellWidth + 2
	boardH := grid + 2
	all := core.CenteredRect(screenW, screenH, boardW, boardH+2)

	return boardLayout{
		hud:   core.NewRect(all.X, all.Y, boardW, 1),
		board: core.NewRect(all.X, all.Y+1, boardW, boardH),
		help:  core.NewRect(all.X, all.Y+1+boardH, boardW, 1),
	}
}

// cellOrigin returns the screen position of grid cell p.
func (l boardLayout) cellOrigin(p snake.Point) (int, int) {
	return l.board.X + 1 + p.X*cellWidth, l.board.Y + 1 + p.Y
}

// drawFrame draws the border, snake and food. Cells outside the board
// interior are skipped.
func drawFrame(dst *core.Screen, l boardLayout, frame snake.RenderRequest, th config.Theme) {
	dst.DrawBox(l.board, th.Border)
	inner := core.NewRect(l.board.X+1, l.board.Y+1, l.board.W-2, l.board.H-2)

	if frame.HasFood() {
		if x, y := l.cellOrigin(frame.Food); inner.Contains(x, y) {
			dst.SetColor(x, y, th.Food, th.FoodColor)
		}
	}

	// Body first so the head wins if anything overlaps.
	for i := len(frame.Snake) - 1; i >= 0; i-- {
		x, y := l.cellOrigin(frame.Snake[i])
		if !inner.Contains(x, y) {
			continue
		}
		if i == 0 {
			dst.SetColor(x, y, th.Head, th.HeadColor)
		} else {
			dst.SetColor(x, y, th.Body, th.BodyColor)
		}
	}
}

// overlayLine is one line of text in an overlay box.
type overlayLine struct {
	text  string
	color core.Color
}

// drawOverlay draws a bordered box centered on the board with the given lines.
func drawOverlay(dst *core.Screen, l boardLayout, border core.Color, lines []overlayLine) {
	w := 0
	for _, line := range lines {
		w = core.Max(w, len([]rune(line.text)))
	}
	w += 4
	h := len(lines) + 2

	box := core.CenteredRect(l.board.W, l.board.H, w, h)
	box.X += l.board.X
	box.Y += l.board.Y

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, border)
	for i, line := range lines {
		x := box.X + (box.W-len([]rune(line.text)))/2
		dst.DrawTextColor(x, box.Y+1+i, line.text, line.color)
	}
}
