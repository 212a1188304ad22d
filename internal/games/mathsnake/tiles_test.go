package mathsnake

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/math-snake/internal/grid"
)

func TestDigitTileSetInitialize(t *testing.T) {
	g := testGrid(t)
	for seed := int64(0); seed < 100; seed++ {
		ts := NewDigitTileSet(g, rand.New(rand.NewSource(seed)))
		snake := grid.NewSet(grid.C(5, 5), grid.C(5, 4))
		if err := ts.Initialize(snake); err != nil {
			t.Fatal(err)
		}

		seen := grid.NewSet()
		for _, tile := range ts.Tiles() {
			if snake.Has(tile.Cell) || seen.Has(tile.Cell) || !g.IsPlayable(tile.Cell) {
				t.Fatalf("seed %d: bad tile %d at %v", seed, tile.Digit, tile.Cell)
			}
			seen.Put(tile.Cell)
		}
		if snake.Size() != 2 {
			t.Fatal("Initialize must not modify the caller's set")
		}
	}
}

func TestDigitTileSetRelocate(t *testing.T) {
	g := testGrid(t)
	ts := NewDigitTileSet(g, rand.New(rand.NewSource(3)))
	if err := ts.Initialize(grid.NewSet()); err != nil {
		t.Fatal(err)
	}
	snake := grid.NewSet(grid.C(4, 4), grid.C(4, 5), grid.C(4, 6))

	for range 500 {
		tile := ts.Tile(7)
		if err := ts.Relocate(tile, snake); err != nil {
			t.Fatal(err)
		}
		if snake.Has(tile.Cell) {
			t.Fatalf("relocated onto the snake at %v", tile.Cell)
		}
		for _, other := range ts.Tiles() {
			if other.Digit != 7 && other.Cell == tile.Cell {
				t.Fatalf("relocated onto tile %d", other.Digit)
			}
		}
	}
}

func TestDigitTileSetTileAt(t *testing.T) {
	g := testGrid(t)
	ts := NewDigitTileSet(g, rand.New(rand.NewSource(1)))
	if err := ts.Initialize(grid.NewSet()); err != nil {
		t.Fatal(err)
	}
	for d := Digit(0); d < DigitCount; d++ {
		if got := ts.TileAt(ts.Tile(d).Cell); got == nil || got.Digit != d {
			t.Errorf("TileAt(tile %d) = %v", d, got)
		}
	}
	ts.Tile(0).Cell = grid.C(1, 1)
	for d := Digit(1); d < DigitCount; d++ {
		ts.Tile(d).Cell = grid.C(2, int(d))
	}
	if got := ts.TileAt(grid.C(10, 10)); got != nil {
		t.Errorf("TileAt(empty) = %v", got)
	}
}

func TestDigitTileSetExhausted(t *testing.T) {
	g, err := grid.New(2, 9, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	ts := NewDigitTileSet(g, rand.New(rand.NewSource(1)))
	if err := ts.Initialize(grid.NewSet()); !errors.Is(err, grid.ErrGridExhausted) {
		t.Fatalf("err = %v, want ErrGridExhausted", err)
	}
}

func TestParseDigit(t *testing.T) {
	for ch := byte('0'); ch <= '9'; ch++ {
		d, ok := ParseDigit(ch)
		if !ok || d.Rune() != rune(ch) {
			t.Errorf("ParseDigit(%q) = %d, %v", ch, d, ok)
		}
	}
	if _, ok := ParseDigit('-'); ok {
		t.Error("'-' is not a digit")
	}
}
