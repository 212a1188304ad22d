package mathsnake

import (
	"errors"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/math-snake/internal/audio"
	"github.com/vovakirdan/math-snake/internal/grid"
	"github.com/vovakirdan/math-snake/internal/question"
)

func TestSessionStartsAwaitingDifficulty(t *testing.T) {
	s, _ := newTestSession(t, 1)
	if s.State() != AwaitingDifficulty {
		t.Fatalf("state = %v", s.State())
	}
	if err := s.Tick(DirUp, true); err != nil || s.ElapsedTicks() != 0 {
		t.Errorf("tick before start changed the session")
	}
}

func TestSessionSelectDifficulty(t *testing.T) {
	s, _ := newTestSession(t, 7)
	if err := s.SelectDifficulty(question.Hard); err != nil {
		t.Fatal(err)
	}
	if s.State() != Playing {
		t.Fatalf("state = %v", s.State())
	}
	if s.Snake().Len() != 1 {
		t.Errorf("snake length = %d, want 1", s.Snake().Len())
	}
	if s.TargetIndex() != 0 || len(s.Collected()) != 0 {
		t.Errorf("target index = %d, collected = %v", s.TargetIndex(), s.Collected())
	}
	q := s.Question()
	if got := s.CurrentTarget().Digit; got != digitsOf(q.Digits)[0] {
		t.Errorf("current target = %d for answer %d", got, q.Answer)
	}
	checkInvariants(t, s)

	if err := s.SelectDifficulty(question.Easy); !errors.Is(err, ErrNotAwaiting) {
		t.Errorf("second SelectDifficulty err = %v", err)
	}
}

func TestScenarioCorrectOrderWins(t *testing.T) {
	s, rec := newTestSession(t, 1)
	startWith(t, s, "42 + 17", []grid.Cell{grid.C(5, 5)}, map[Digit]grid.Cell{
		5: grid.C(5, 6),
		9: grid.C(5, 7),
	})
	if got := s.AnswerDigits(); !slices.Equal(got, []Digit{5, 9}) {
		t.Fatalf("answer digits = %v", got)
	}

	if err := s.Tick(DirRight, true); err != nil {
		t.Fatal(err)
	}
	if s.State() != Playing || s.TargetIndex() != 1 || s.Snake().Len() != 2 {
		t.Fatalf("after first eat: state=%v target=%d len=%d", s.State(), s.TargetIndex(), s.Snake().Len())
	}
	if s.CurrentTarget().Digit != 9 {
		t.Fatalf("current target = %d, want 9", s.CurrentTarget().Digit)
	}
	checkInvariants(t, s)

	if err := s.Tick(DirRight, true); err != nil {
		t.Fatal(err)
	}
	if s.State() != Won {
		t.Fatalf("state = %v (cause %q), want won", s.State(), s.Cause())
	}
	if s.CurrentTarget() != nil {
		t.Error("no target should remain")
	}
	checkInvariants(t, s)

	want := []audio.Cue{audio.CueEat, audio.CueCorrect, audio.CueEat, audio.CueVictory}
	if !slices.Equal(rec.cues, want) {
		t.Errorf("cues = %v, want %v", rec.cues, want)
	}
}

func TestScenarioNegativeAnswerWins(t *testing.T) {
	s, _ := newTestSession(t, 2)
	startWith(t, s, "10 - 20", []grid.Cell{grid.C(5, 5)}, map[Digit]grid.Cell{
		1: grid.C(5, 6),
		0: grid.C(5, 7),
	})
	q := s.Question()
	if !q.Negative || q.Digits != "10" || q.Answer != -10 {
		t.Fatalf("question = %+v", q)
	}

	s.Tick(DirRight, true)
	s.Tick(DirRight, true)
	if s.State() != Won {
		t.Fatalf("state = %v (cause %q), want won", s.State(), s.Cause())
	}
	if s.spelled() != "-10" {
		t.Errorf("spelled = %q", s.spelled())
	}
}

func TestScenarioWrongOrderLoses(t *testing.T) {
	s, rec := newTestSession(t, 3)
	startWith(t, s, "42 + 17", []grid.Cell{grid.C(5, 5)}, map[Digit]grid.Cell{
		9: grid.C(5, 6),
		5: grid.C(5, 7),
	})

	s.Tick(DirRight, true)
	if s.State() != Lost || s.Cause() != CauseWrongDigit {
		t.Fatalf("state = %v cause = %q, want lost/wrong_digit", s.State(), s.Cause())
	}
	if !slices.Equal(s.Collected(), []Digit{9}) {
		t.Errorf("collected = %v", s.Collected())
	}
	if s.Snake().Len() != 1 {
		t.Errorf("wrong digit grew the snake to %d", s.Snake().Len())
	}
	checkInvariants(t, s)
	if !slices.Equal(rec.cues, []audio.Cue{audio.CueEat, audio.CueWrong}) {
		t.Errorf("cues = %v", rec.cues)
	}

	// Terminal: nothing changes afterwards.
	s.Tick(DirRight, true)
	if s.ElapsedTicks() != 1 || len(s.Collected()) != 1 {
		t.Error("lost session kept playing")
	}
}

func TestScenarioWallLoses(t *testing.T) {
	s, rec := newTestSession(t, 4)
	startWith(t, s, "42 + 17", []grid.Cell{grid.C(1, 10)}, map[Digit]grid.Cell{
		5: grid.C(2, 10),
	})

	s.Tick(DirUp, true)
	if s.State() != Lost || s.Cause() != CauseWall {
		t.Fatalf("state = %v cause = %q, want lost/wall", s.State(), s.Cause())
	}
	if s.Snake().Head() != grid.C(1, 10) {
		t.Errorf("head moved to %v", s.Snake().Head())
	}
	if !slices.Equal(rec.cues, []audio.Cue{audio.CueCollision}) {
		t.Errorf("cues = %v", rec.cues)
	}
}

func TestScenarioSelfCollisionLoses(t *testing.T) {
	s, _ := newTestSession(t, 5)
	startWith(t, s, "42 + 17", []grid.Cell{grid.C(5, 5), grid.C(5, 4), grid.C(5, 3)}, nil)

	s.Tick(DirLeft, true)
	if s.State() != Lost || s.Cause() != CauseSelf {
		t.Fatalf("state = %v cause = %q, want lost/self", s.State(), s.Cause())
	}
}

func TestSessionNoInputKeepsSnakeStill(t *testing.T) {
	s, _ := newTestSession(t, 6)
	startWith(t, s, "42 + 17", []grid.Cell{grid.C(5, 5)}, nil)

	for range 10 {
		s.Tick(DirUp, false)
	}
	if s.Snake().Head() != grid.C(5, 5) {
		t.Errorf("snake moved without input to %v", s.Snake().Head())
	}
	if s.ElapsedTicks() != 10 || s.State() != Playing {
		t.Errorf("ticks = %d state = %v", s.ElapsedTicks(), s.State())
	}
}

func TestSessionCollidedSnakeLosesAtTickStart(t *testing.T) {
	s, _ := newTestSession(t, 8)
	startWith(t, s, "42 + 17", []grid.Cell{grid.C(1, 3)}, nil)
	s.snake.state = SnakeHitWall

	s.Tick(DirDown, false)
	if s.State() != Lost || s.Cause() != CauseWall {
		t.Errorf("state = %v cause = %q", s.State(), s.Cause())
	}
}

func TestSessionRepeatedDigits(t *testing.T) {
	tests := []struct {
		text   string
		digits string
	}{
		{"50 + 5", "55"},
		{"50 + 50", "100"},
		{"600 + 66", "666"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			s, _ := newTestSession(t, 9)
			startWith(t, s, tt.text, []grid.Cell{grid.C(5, 2)}, nil)
			if s.Question().Digits != tt.digits {
				t.Fatalf("digits = %q, want %q", s.Question().Digits, tt.digits)
			}

			for i, d := range digitsOf(tt.digits) {
				if s.CurrentTarget().Digit != d {
					t.Fatalf("step %d: target = %d, want %d", i, s.CurrentTarget().Digit, d)
				}
				// Put the wanted tile right in front of the head.
				next := s.Snake().Head().Add(0, 1)
				if other := s.tiles.TileAt(next); other != nil {
					other.Cell = spareCell(t, s)
				}
				s.tiles.Tile(d).Cell = next

				if err := s.Tick(DirRight, true); err != nil {
					t.Fatal(err)
				}
				checkInvariants(t, s)
			}
			if s.State() != Won {
				t.Fatalf("state = %v cause = %q, want won", s.State(), s.Cause())
			}
			if s.Snake().Len() != len(tt.digits)+1 {
				t.Errorf("length = %d, want %d", s.Snake().Len(), len(tt.digits)+1)
			}
		})
	}
}

func TestSessionGridExhausted(t *testing.T) {
	g, err := grid.New(3, 6, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	s := NewSession(g, rng, nil, nil)
	q, err := question.New(question.Easy, "2 + 3")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Start(q); err != nil {
		t.Fatal(err)
	}

	// Twelve spawnable cells: a two-cell snake and ten tiles fill them all.
	s.snake = newSnakeWithBody(g, grid.C(1, 1), grid.C(1, 0))
	free := []grid.Cell{grid.C(1, 2), grid.C(1, 3), grid.C(1, 4), grid.C(1, 5)}
	for col := range 6 {
		free = append(free, grid.C(2, col))
	}
	s.tiles.Tile(5).Cell = free[0]
	i := 1
	for d := Digit(0); d < DigitCount; d++ {
		if d == 5 {
			continue
		}
		s.tiles.Tile(d).Cell = free[i]
		i++
	}

	err = s.Tick(DirRight, true)
	if !errors.Is(err, grid.ErrGridExhausted) {
		t.Fatalf("err = %v, want ErrGridExhausted", err)
	}
	if s.State() != Lost || s.Cause() != CauseGridExhausted {
		t.Errorf("state = %v cause = %q", s.State(), s.Cause())
	}
}

// spareCell returns a bottom-row cell free of tiles and snake.
func spareCell(t *testing.T, s *Session) grid.Cell {
	t.Helper()
	body := s.Snake().Occupied()
	for col := 29; col >= 0; col-- {
		c := grid.C(19, col)
		if s.tiles.TileAt(c) == nil && !body.Has(c) {
			return c
		}
	}
	t.Fatal("no spare cell")
	return grid.Cell{}
}

// steer heads for the current target and avoids walls, the snake's own
// body and wrong tiles, with an occasional random move.
func steer(rng *rand.Rand, s *Session) Direction {
	all := []Direction{DirUp, DirLeft, DirDown, DirRight}
	if rng.Intn(10) == 0 {
		return all[rng.Intn(len(all))]
	}

	head := s.Snake().Head()
	target := s.CurrentTarget()
	body := s.Snake().Occupied()

	best, bestDist := all[rng.Intn(len(all))], 1<<30
	for _, i := range rng.Perm(len(all)) {
		d := all[i]
		dr, dc := d.Delta()
		next := head.Add(dr, dc)
		if !s.g.IsPlayable(next) || body.Has(next) {
			continue
		}
		if tile := s.tiles.TileAt(next); tile != nil && tile != target {
			continue
		}
		dist := abs(next.Row-target.Cell.Row) + abs(next.Col-target.Cell.Col)
		if dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestSessionRandomPlayInvariants(t *testing.T) {
	wins, losses := 0, 0
	for seed := int64(0); seed < 200; seed++ {
		s, _ := newTestSession(t, seed)
		if err := s.SelectDifficulty(question.Difficulties[seed%4]); err != nil {
			t.Fatal(err)
		}
		checkInvariants(t, s)

		rng := rand.New(rand.NewSource(seed + 1000))
		for range 3000 {
			if s.State() != Playing {
				break
			}
			if err := s.Tick(steer(rng, s), true); err != nil {
				t.Fatalf("seed %d: %v", seed, err)
			}
			checkInvariants(t, s)
		}

		want := s.AnswerDigits()
		got := s.Collected()
		switch s.State() {
		case Won:
			wins++
			if !slices.Equal(got, want) {
				t.Fatalf("seed %d: won with %v, answer %v", seed, got, want)
			}
		case Lost:
			losses++
			if slices.Equal(got, want) {
				t.Fatalf("seed %d: lost after collecting the full answer", seed)
			}
			if s.Cause() == CauseWrongDigit {
				n := len(got)
				if !slices.Equal(got[:n-1], want[:n-1]) || (n <= len(want) && got[n-1] == want[n-1]) {
					t.Fatalf("seed %d: wrong digit cause with %v vs %v", seed, got, want)
				}
			}
		}
	}
	if wins == 0 || losses == 0 {
		t.Errorf("wins = %d, losses = %d; expected both outcomes", wins, losses)
	}
}

type panicCue struct{}

func (panicCue) Play(audio.Cue) { panic("device gone") }

func TestSessionSurvivesFailingAudio(t *testing.T) {
	s, _ := newTestSession(t, 4)
	s.audio = panicCue{}
	startWith(t, s, "42 + 17", []grid.Cell{grid.C(1, 10)}, nil)

	if err := s.Tick(DirUp, true); err != nil {
		t.Fatalf("Tick() = %v", err)
	}
	if s.State() != Lost || s.Cause() != CauseWall {
		t.Fatalf("state = %v cause = %q, want lost/wall", s.State(), s.Cause())
	}
	err := s.TakeAudioError()
	if err == nil || !strings.Contains(err.Error(), "device gone") {
		t.Errorf("TakeAudioError() = %v", err)
	}
	if s.TakeAudioError() != nil {
		t.Error("TakeAudioError should clear the error")
	}
}
