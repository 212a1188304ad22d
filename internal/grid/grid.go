// Package grid partitions the play area into fixed-size cells and supplies
// the random placement used by every spawned entity.
package grid

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/math-snake/internal/core"
)

// ErrGridExhausted is returned when every spawnable cell is excluded.
var ErrGridExhausted = errors.New("grid: no spawnable cell available")

// StatusRow is reserved for the status bar and never holds entities.
const StatusRow = 0

// maxSampleAttempts bounds rejection sampling before falling back to an
// exhaustive scan of the free cells.
const maxSampleAttempts = 64

// Cell identifies a grid position.
type Cell struct {
	Row, Col int
}

// C is shorthand for constructing a Cell.
func C(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

// Add returns the cell offset by (dRow, dCol).
func (c Cell) Add(dRow, dCol int) Cell {
	return Cell{Row: c.Row + dRow, Col: c.Col + dCol}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Set is a set of cells.
type Set = mapset.Set[Cell]

// NewSet returns a set holding the given cells.
func NewSet(cells ...Cell) Set {
	s := mapset.New[Cell]()
	for _, c := range cells {
		s.Put(c)
	}
	return s
}

// Grid has immutable dimensions and maps cells to screen rectangles.
// It is built once by the application root and passed by reference to
// anything that needs cell geometry.
type Grid struct {
	rows, cols int
	cellW      int // screen columns per cell
	cellH      int // screen rows per cell
	originX    int
	originY    int
}

// New creates a grid of rows x cols cells, each cellW x cellH screen characters.
func New(rows, cols, cellW, cellH int) (*Grid, error) {
	if rows < 2 || cols < 1 {
		return nil, fmt.Errorf("grid: need at least 2 rows and 1 column, got %dx%d", rows, cols)
	}
	if cellW < 1 || cellH < 1 {
		return nil, fmt.Errorf("grid: cell size must be positive, got %dx%d", cellW, cellH)
	}
	return &Grid{rows: rows, cols: cols, cellW: cellW, cellH: cellH}, nil
}

// Rows returns the number of rows, including the status row.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// PixelSize returns the screen size of the whole grid.
func (g *Grid) PixelSize() (w, h int) {
	return g.cols * g.cellW, g.rows * g.cellH
}

// SetOrigin moves the grid's top-left corner on screen.
func (g *Grid) SetOrigin(x, y int) {
	g.originX = x
	g.originY = y
}

// CellBounds returns the screen rectangle covered by a cell.
func (g *Grid) CellBounds(row, col int) core.Rect {
	return core.NewRect(g.originX+col*g.cellW, g.originY+row*g.cellH, g.cellW, g.cellH)
}

// IsInBounds reports whether (row, col) lies on the grid.
func (g *Grid) IsInBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// IsPlayable reports whether c is inside the play area (below the status row).
func (g *Grid) IsPlayable(c Cell) bool {
	return c.Row > StatusRow && g.IsInBounds(c.Row, c.Col)
}

// SpawnableCount is the number of cells entities may occupy.
func (g *Grid) SpawnableCount() int {
	return (g.rows - 1) * g.cols
}

// RandomSpawnableCell samples uniformly from the play area until it finds a
// cell not in excluding. It returns ErrGridExhausted when no such cell exists.
func (g *Grid) RandomSpawnableCell(rng *rand.Rand, excluding Set) (Cell, error) {
	blocked := 0
	excluding.Each(func(c Cell) {
		if g.IsPlayable(c) {
			blocked++
		}
	})
	free := g.SpawnableCount() - blocked
	if free <= 0 {
		return Cell{}, ErrGridExhausted
	}

	for range maxSampleAttempts {
		c := Cell{Row: 1 + rng.Intn(g.rows-1), Col: rng.Intn(g.cols)}
		if !excluding.Has(c) {
			return c, nil
		}
	}

	// Crowded grid: pick among the free cells directly.
	pick := rng.Intn(free)
	for row := 1; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			c := Cell{Row: row, Col: col}
			if excluding.Has(c) {
				continue
			}
			if pick == 0 {
				return c, nil
			}
			pick--
		}
	}
	return Cell{}, ErrGridExhausted
}

// RandomInteriorCell picks a cell from the middle 80% of the grid on both
// axes, clamped to the play area, so a fresh snake is not next to a wall.
func (g *Grid) RandomInteriorCell(rng *rand.Rand) Cell {
	rowLo := core.Clamp(int(float64(g.rows)*0.1), 1, g.rows-1)
	rowHi := core.Clamp(int(float64(g.rows)*0.9), rowLo, g.rows-1)
	colLo := core.Clamp(int(float64(g.cols)*0.1), 0, g.cols-1)
	colHi := core.Clamp(int(float64(g.cols)*0.9), colLo, g.cols-1)
	return Cell{
		Row: rowLo + rng.Intn(rowHi-rowLo+1),
		Col: colLo + rng.Intn(colHi-colLo+1),
	}
}
