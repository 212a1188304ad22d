package mathsnake

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/math-snake/internal/audio"
	"github.com/vovakirdan/math-snake/internal/grid"
	"github.com/vovakirdan/math-snake/internal/question"
)

// SessionState is the state of one play-through.
type SessionState int

const (
	AwaitingDifficulty SessionState = iota
	Playing
	Won
	Lost
)

func (s SessionState) String() string {
	switch s {
	case AwaitingDifficulty:
		return "awaiting_difficulty"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session has ended.
func (s SessionState) Terminal() bool {
	return s == Won || s == Lost
}

// Cause explains why a session was lost.
type Cause string

const (
	CauseNone          Cause = ""
	CauseWall          Cause = "wall"
	CauseSelf          Cause = "self"
	CauseWrongDigit    Cause = "wrong_digit"
	CauseMismatch      Cause = "mismatch"
	CauseGridExhausted Cause = "grid_exhausted"
)

// Message returns a short player-facing description.
func (c Cause) Message() string {
	switch c {
	case CauseWall:
		return "You hit the wall"
	case CauseSelf:
		return "You bit yourself"
	case CauseWrongDigit:
		return "Wrong digit"
	case CauseMismatch:
		return "Wrong answer"
	case CauseGridExhausted:
		return "No room left on the board"
	default:
		return ""
	}
}

// ErrNotAwaiting is returned when a round is started twice.
var ErrNotAwaiting = errors.New("mathsnake: session already started")

// Session runs a single play-through: it sequences the answer digits,
// validates each eaten tile and detects the end of the round.
// It is mutated only from the tick loop.
type Session struct {
	g     *grid.Grid
	rng   *rand.Rand
	gen   *question.Generator
	audio AudioCue

	state        SessionState
	question     question.Question
	answerDigits []Digit
	snake        *Snake
	tiles        *DigitTileSet
	targetIndex  int
	collected    []Digit
	elapsedTicks int
	cause        Cause
	audioErr     error
}

// NewSession creates a session awaiting a difficulty choice.
func NewSession(g *grid.Grid, rng *rand.Rand, gen *question.Generator, cue AudioCue) *Session {
	if cue == nil {
		cue = audio.Nop{}
	}
	return &Session{g: g, rng: rng, gen: gen, audio: cue}
}

// SelectDifficulty generates a question for d and starts the round.
func (s *Session) SelectDifficulty(d question.Difficulty) error {
	if s.state != AwaitingDifficulty {
		return ErrNotAwaiting
	}
	q, err := s.gen.Generate(d)
	if err != nil {
		return fmt.Errorf("mathsnake: generate question: %w", err)
	}
	return s.Start(q)
}

// Start begins a round with q: the snake is placed at a random interior
// cell and the ten tiles around it.
func (s *Session) Start(q question.Question) error {
	if s.state != AwaitingDifficulty {
		return ErrNotAwaiting
	}

	digits := make([]Digit, 0, len(q.Digits))
	for i := range len(q.Digits) {
		d, ok := ParseDigit(q.Digits[i])
		if !ok {
			return fmt.Errorf("mathsnake: answer %q has non-digit %q", q.Digits, q.Digits[i])
		}
		digits = append(digits, d)
	}
	if len(digits) == 0 {
		return fmt.Errorf("mathsnake: answer for %q has no digits", q.Text)
	}

	snake := NewSnake(s.g, s.g.RandomInteriorCell(s.rng))
	tiles := NewDigitTileSet(s.g, s.rng)
	if err := tiles.Initialize(snake.Occupied()); err != nil {
		return fmt.Errorf("mathsnake: %w", err)
	}

	s.question = q
	s.answerDigits = digits
	s.snake = snake
	s.tiles = tiles
	s.targetIndex = 0
	s.collected = nil
	s.elapsedTicks = 0
	s.cause = CauseNone
	s.state = Playing
	return nil
}

// Tick advances the round by one move. With ok false the snake stays put
// and only the tick counter advances. The returned error is non-nil only
// when a tile could not be relocated; the round is already Lost by then.
func (s *Session) Tick(dir Direction, ok bool) error {
	if s.state != Playing {
		return nil
	}
	s.elapsedTicks++

	if !s.snake.Alive() {
		s.lose(causeFor(s.snake.State()))
		return nil
	}
	if !ok {
		return nil
	}

	growAt := noCell
	if t := s.CurrentTarget(); t != nil {
		growAt = t.Cell
	}
	if st := s.snake.Move(dir, growAt); st != SnakeAlive {
		s.cue(audio.CueCollision)
		s.lose(causeFor(st))
		return nil
	}

	eaten := s.tiles.TileAt(s.snake.Head())
	if eaten == nil {
		return nil
	}
	if err := s.tiles.Relocate(eaten, s.snake.Occupied()); err != nil {
		s.lose(CauseGridExhausted)
		return fmt.Errorf("mathsnake: %w", err)
	}
	s.collected = append(s.collected, eaten.Digit)
	s.cue(audio.CueEat)

	if s.targetIndex >= len(s.answerDigits) || eaten.Digit != s.answerDigits[s.targetIndex] {
		s.cue(audio.CueWrong)
		s.lose(CauseWrongDigit)
		return nil
	}
	s.targetIndex++

	if len(s.collected) < len(s.answerDigits) {
		s.cue(audio.CueCorrect)
		return nil
	}

	if s.spelled() == s.question.Signed() {
		s.cue(audio.CueVictory)
		s.state = Won
		return nil
	}
	s.cue(audio.CueWrong)
	s.lose(CauseMismatch)
	return nil
}

// cue plays c. A failing audio backend never ends the round.
func (s *Session) cue(c audio.Cue) {
	defer func() {
		if r := recover(); r != nil {
			s.audioErr = fmt.Errorf("mathsnake: audio cue %v: %v", c, r)
		}
	}()
	s.audio.Play(c)
}

// TakeAudioError returns and clears the last recovered audio failure.
func (s *Session) TakeAudioError() error {
	err := s.audioErr
	s.audioErr = nil
	return err
}

// spelled reconstructs the signed answer from the collected digits.
func (s *Session) spelled() string {
	var b strings.Builder
	if s.question.Negative {
		b.WriteByte('-')
	}
	for _, d := range s.collected {
		b.WriteRune(d.Rune())
	}
	return b.String()
}

func (s *Session) lose(c Cause) {
	s.state = Lost
	s.cause = c
}

func causeFor(st SnakeState) Cause {
	if st == SnakeHitSelf {
		return CauseSelf
	}
	return CauseWall
}

// State returns the session state.
func (s *Session) State() SessionState {
	return s.state
}

// Cause returns why the session was lost.
func (s *Session) Cause() Cause {
	return s.cause
}

// Question returns the question being played.
func (s *Session) Question() question.Question {
	return s.question
}

// Snake returns the snake, or nil before the round starts.
func (s *Session) Snake() *Snake {
	return s.snake
}

// Tiles returns the digit tiles, or nil before the round starts.
func (s *Session) Tiles() *DigitTileSet {
	return s.tiles
}

// TargetIndex returns the index of the next digit to collect.
func (s *Session) TargetIndex() int {
	return s.targetIndex
}

// AnswerDigits returns the digits to collect, in order.
func (s *Session) AnswerDigits() []Digit {
	return append([]Digit(nil), s.answerDigits...)
}

// CurrentTarget returns the tile the player must eat next, or nil once
// every digit has been collected.
func (s *Session) CurrentTarget() *Tile {
	if s.tiles == nil || s.targetIndex >= len(s.answerDigits) {
		return nil
	}
	return s.tiles.Tile(s.answerDigits[s.targetIndex])
}

// Collected returns the digits eaten so far, in order.
func (s *Session) Collected() []Digit {
	return append([]Digit(nil), s.collected...)
}

// ElapsedTicks returns the number of ticks played.
func (s *Session) ElapsedTicks() int {
	return s.elapsedTicks
}

// Draw sends the current board to r.
func (s *Session) Draw(r Renderer) {
	r.DrawGrid()
	if s.snake == nil {
		r.DrawStats(s.collected, s.elapsedTicks)
		return
	}
	if c, ok := s.snake.Vacated(); ok {
		r.ClearCell(c)
	}
	for _, t := range s.tiles.Tiles() {
		r.DrawTile(t)
	}
	body := s.snake.Body()
	for _, c := range body[1:] {
		r.DrawSnakeBody(c)
	}
	r.DrawSnakeHead(body[0])
	r.DrawStats(s.collected, s.elapsedTicks)
}
