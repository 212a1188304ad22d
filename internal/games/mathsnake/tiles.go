package mathsnake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/math-snake/internal/grid"
)

// Digit is a decimal digit, 0 through 9.
type Digit int

// DigitCount is the number of tiles on the board.
const DigitCount = 10

// ParseDigit converts a character '0'..'9' to a Digit.
func ParseDigit(ch byte) (Digit, bool) {
	if ch < '0' || ch > '9' {
		return 0, false
	}
	return Digit(ch - '0'), true
}

// Rune returns the character for d.
func (d Digit) Rune() rune {
	return rune('0' + d)
}

// Tile is one digit entity on the board.
type Tile struct {
	Digit Digit
	Cell  grid.Cell
}

// DigitTileSet owns the ten digit tiles and keeps them apart from each
// other and from the snake.
type DigitTileSet struct {
	g     *grid.Grid
	rng   *rand.Rand
	tiles map[Digit]*Tile
}

// NewDigitTileSet creates an unplaced tile set.
func NewDigitTileSet(g *grid.Grid, rng *rand.Rand) *DigitTileSet {
	tiles := make(map[Digit]*Tile, DigitCount)
	for d := Digit(0); d < DigitCount; d++ {
		tiles[d] = &Tile{Digit: d, Cell: noCell}
	}
	return &DigitTileSet{g: g, rng: rng, tiles: tiles}
}

// Initialize places every tile on a free cell, adding each placed tile to
// the exclusion set before the next one is sampled.
func (s *DigitTileSet) Initialize(occupied grid.Set) error {
	excl := grid.NewSet()
	occupied.Each(func(c grid.Cell) { excl.Put(c) })

	for d := Digit(0); d < DigitCount; d++ {
		c, err := s.g.RandomSpawnableCell(s.rng, excl)
		if err != nil {
			return fmt.Errorf("place tile %d: %w", d, err)
		}
		s.tiles[d].Cell = c
		excl.Put(c)
	}
	return nil
}

// Relocate moves tile t to a free cell. The exclusion set is rebuilt for
// every call from snakeCells and the current positions of the other tiles.
func (s *DigitTileSet) Relocate(t *Tile, snakeCells grid.Set) error {
	excl := grid.NewSet()
	snakeCells.Each(func(c grid.Cell) { excl.Put(c) })
	for d := Digit(0); d < DigitCount; d++ {
		if other := s.tiles[d]; other != t {
			excl.Put(other.Cell)
		}
	}

	c, err := s.g.RandomSpawnableCell(s.rng, excl)
	if err != nil {
		return fmt.Errorf("relocate tile %d: %w", t.Digit, err)
	}
	t.Cell = c
	return nil
}

// Tile returns the tile for digit d.
func (s *DigitTileSet) Tile(d Digit) *Tile {
	return s.tiles[d]
}

// TileAt returns the tile occupying c, or nil.
func (s *DigitTileSet) TileAt(c grid.Cell) *Tile {
	for d := Digit(0); d < DigitCount; d++ {
		if t := s.tiles[d]; t.Cell == c {
			return t
		}
	}
	return nil
}

// Tiles returns copies of all tiles ordered by digit.
func (s *DigitTileSet) Tiles() []Tile {
	out := make([]Tile, 0, DigitCount)
	for d := Digit(0); d < DigitCount; d++ {
		out = append(out, *s.tiles[d])
	}
	return out
}
