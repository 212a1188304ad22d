package mathsnake

import (
	"github.com/vovakirdan/math-snake/internal/core"
	"github.com/vovakirdan/math-snake/internal/question"
)

var directionActions = []struct {
	action core.Action
	dir    Direction
}{
	{core.ActionUp, DirUp},
	{core.ActionLeft, DirLeft},
	{core.ActionDown, DirDown},
	{core.ActionRight, DirRight},
}

var selectActions = []core.Action{
	core.ActionSelect1,
	core.ActionSelect2,
	core.ActionSelect3,
	core.ActionSelect4,
}

var controlActions = []struct {
	action core.Action
	kind   EventKind
}{
	{core.ActionQuit, EventQuit},
	{core.ActionRestart, EventRestart},
	{core.ActionBack, EventBack},
	{core.ActionConfirm, EventConfirm},
	{core.ActionPause, EventPause},
}

// KeyInput turns platform input frames into an InputSource.
// Terminals report key presses rather than held keys, so the most recent
// direction stays latched until another one is pressed.
type KeyInput struct {
	dir     Direction
	latched bool
	events  []Event
}

// NewKeyInput creates an input source with no direction latched.
func NewKeyInput() *KeyInput {
	return &KeyInput{}
}

// Feed records the actions of one frame. When several directions arrive
// together the first in Up, Left, Down, Right order wins. Every other
// action in the frame becomes its own event.
func (k *KeyInput) Feed(frame core.InputFrame) {
	for _, da := range directionActions {
		if frame.Has(da.action) {
			k.dir = da.dir
			k.latched = true
			k.events = append(k.events, Event{Kind: EventNavigate, Dir: da.dir})
			break
		}
	}

	for i, a := range selectActions {
		if frame.Has(a) {
			k.events = append(k.events, Event{Kind: EventDifficultySelected, Difficulty: question.Difficulties[i]})
		}
	}

	for _, c := range controlActions {
		if frame.Has(c.action) {
			k.events = append(k.events, Event{Kind: c.kind})
		}
	}
}

// Release forgets the latched direction.
func (k *KeyInput) Release() {
	k.latched = false
}

// CurrentDirection implements InputSource.
func (k *KeyInput) CurrentDirection() (Direction, bool) {
	return k.dir, k.latched
}

// PollEvents implements InputSource.
func (k *KeyInput) PollEvents() []Event {
	ev := k.events
	k.events = nil
	return ev
}
