package mathsnake

import (
	"github.com/vovakirdan/math-snake/internal/audio"
	"github.com/vovakirdan/math-snake/internal/core"
	"github.com/vovakirdan/math-snake/internal/grid"
	"github.com/vovakirdan/math-snake/internal/question"
)

// EventKind identifies a discrete input event.
type EventKind int

const (
	EventQuit EventKind = iota
	EventRestart
	EventDifficultySelected
	EventNavigate
	EventConfirm
	EventBack
	EventPause
)

func (k EventKind) String() string {
	switch k {
	case EventQuit:
		return "quit"
	case EventRestart:
		return "restart"
	case EventDifficultySelected:
		return "difficulty_selected"
	case EventNavigate:
		return "navigate"
	case EventConfirm:
		return "confirm"
	case EventBack:
		return "back"
	case EventPause:
		return "pause"
	default:
		return "unknown"
	}
}

// Event is a discrete input event. Difficulty is set for
// EventDifficultySelected and Dir for EventNavigate.
type Event struct {
	Kind       EventKind
	Difficulty question.Difficulty
	Dir        Direction
}

// InputSource supplies player input to the game once per frame.
type InputSource interface {
	// CurrentDirection returns the active steering direction, if any.
	CurrentDirection() (Direction, bool)
	// PollEvents returns and clears the events received since the last call.
	PollEvents() []Event
}

// Renderer draws the board of a running session.
type Renderer interface {
	DrawGrid()
	DrawTile(t Tile)
	DrawSnakeHead(c grid.Cell)
	DrawSnakeBody(c grid.Cell)
	ClearCell(c grid.Cell)
	DrawStats(collected []Digit, elapsedTicks int)
}

// AudioCue plays a sound effect. Implementations must not block and must
// swallow their own failures.
type AudioCue interface {
	Play(c audio.Cue)
}

// AnimationHost runs the end-of-round effects and screens. Play and Show
// calls only start an effect; Step advances it by one frame and reports
// whether it is still running.
type AnimationHost interface {
	SetArea(area core.Rect)
	PlayDeathAnimation(x, y int)
	PlayVictoryAnimation()
	ShowWinScreen(s Summary)
	ShowLoseScreen(s Summary)
	Step() bool
	Draw(dst *core.Screen)
}
