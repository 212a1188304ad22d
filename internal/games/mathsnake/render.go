package mathsnake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/math-snake/internal/core"
	"github.com/vovakirdan/math-snake/internal/grid"
)

const (
	headGlyph = '█'
	bodyGlyph = '▓'
)

// screenRenderer draws a session board into a core.Screen.
type screenRenderer struct {
	dst   *core.Screen
	g     *grid.Grid
	label string // Shown at the right end of the status row
}

var _ Renderer = (*screenRenderer)(nil)

func (r *screenRenderer) fillCell(c grid.Cell, ch rune, color core.Color) {
	r.dst.FillRect(r.g.CellBounds(c.Row, c.Col), ch, color)
}

// DrawGrid draws the border and clears the board.
func (r *screenRenderer) DrawGrid() {
	w, h := r.g.PixelSize()
	origin := r.g.CellBounds(0, 0)
	r.dst.DrawBox(core.NewRect(origin.X-1, origin.Y-1, w+2, h+2), core.ColorGray)
	r.dst.FillRect(core.NewRect(origin.X, origin.Y, w, h), ' ', core.ColorDefault)
}

// DrawTile draws a digit in the middle of its cell.
func (r *screenRenderer) DrawTile(t Tile) {
	b := r.g.CellBounds(t.Cell.Row, t.Cell.Col)
	r.dst.FillRect(b, ' ', core.ColorDefault)
	x, y := b.X+(b.W-1)/2, b.Y+(b.H-1)/2
	r.dst.SetColor(x, y, t.Digit.Rune(), core.ColorBrightCyan)
}

func (r *screenRenderer) DrawSnakeHead(c grid.Cell) {
	r.fillCell(c, headGlyph, core.ColorBrightGreen)
}

func (r *screenRenderer) DrawSnakeBody(c grid.Cell) {
	r.fillCell(c, bodyGlyph, core.ColorGreen)
}

func (r *screenRenderer) ClearCell(c grid.Cell) {
	r.fillCell(c, ' ', core.ColorDefault)
}

// DrawStats fills the status row with the collected digits and tick count.
func (r *screenRenderer) DrawStats(collected []Digit, elapsedTicks int) {
	row := r.g.CellBounds(0, 0)
	w, _ := r.g.PixelSize()

	digits := make([]string, len(collected))
	for i, d := range collected {
		digits[i] = string(d.Rune())
	}
	if len(digits) == 0 {
		digits = []string{"-"}
	}

	left := fmt.Sprintf(" Collected: %s  Moves: %d", strings.Join(digits, " "), elapsedTicks)
	r.dst.DrawTextColor(row.X, row.Y, truncate(left, w), core.ColorBrightYellow)
	if r.label != "" && len(left)+len(r.label)+2 <= w {
		r.dst.DrawTextColor(row.X+w-len(r.label)-1, row.Y, r.label, core.ColorGray)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string, c core.Color) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.DrawBox(box, c)
	dst.DrawTextColor(box.X+(boxW-len(line1))/2, box.Y+1, line1, c)
	dst.DrawTextColor(box.X+(boxW-len(line2))/2, box.Y+3, line2, core.ColorWhite)
}
