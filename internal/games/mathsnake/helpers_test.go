package mathsnake

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/math-snake/internal/audio"
	"github.com/vovakirdan/math-snake/internal/config"
	"github.com/vovakirdan/math-snake/internal/grid"
	"github.com/vovakirdan/math-snake/internal/question"
)

type cueRecorder struct {
	cues []audio.Cue
}

func (r *cueRecorder) Play(c audio.Cue) {
	r.cues = append(r.cues, c)
}

func testGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(20, 30, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func newTestSession(t *testing.T, seed int64) (*Session, *cueRecorder) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	rec := &cueRecorder{}
	s := NewSession(testGrid(t), rng, question.NewGenerator(rng, config.Default()), rec)
	return s, rec
}

// startWith starts s on text with the snake at body and tiles parked on
// row 18 unless listed in at.
func startWith(t *testing.T, s *Session, text string, body []grid.Cell, at map[Digit]grid.Cell) {
	t.Helper()
	q, err := question.New(question.Easy, text)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Start(q); err != nil {
		t.Fatal(err)
	}
	s.snake = newSnakeWithBody(s.g, body...)
	for d := Digit(0); d < DigitCount; d++ {
		s.tiles.Tile(d).Cell = grid.C(18, int(d)*2)
	}
	for d, c := range at {
		s.tiles.Tile(d).Cell = c
	}
}

func checkInvariants(t *testing.T, s *Session) {
	t.Helper()
	body := s.snake.Body()
	occupied := grid.NewSet()
	for _, c := range body {
		if s.snake.Alive() && occupied.Has(c) {
			t.Fatalf("alive snake has duplicate cell %v in %v", c, body)
		}
		occupied.Put(c)
	}

	seen := grid.NewSet()
	for _, tile := range s.tiles.Tiles() {
		if !s.g.IsPlayable(tile.Cell) {
			t.Fatalf("tile %d off the play area at %v", tile.Digit, tile.Cell)
		}
		if seen.Has(tile.Cell) {
			t.Fatalf("two tiles share %v", tile.Cell)
		}
		seen.Put(tile.Cell)
		if occupied.Has(tile.Cell) {
			t.Fatalf("tile %d under the snake at %v", tile.Digit, tile.Cell)
		}
	}
}

func digitsOf(s string) []Digit {
	out := make([]Digit, len(s))
	for i := range len(s) {
		out[i], _ = ParseDigit(s[i])
	}
	return out
}
