// Package audio plays the short procedural sound cues of the game.
package audio

// Cue identifies a sound effect.
type Cue int

const (
	CueEat Cue = iota
	CueCorrect
	CueWrong
	CueVictory
	CueCollision
)

// Cues lists every cue.
var Cues = []Cue{CueEat, CueCorrect, CueWrong, CueVictory, CueCollision}

func (c Cue) String() string {
	switch c {
	case CueEat:
		return "eat"
	case CueCorrect:
		return "correct"
	case CueWrong:
		return "wrong"
	case CueVictory:
		return "victory"
	case CueCollision:
		return "collision"
	default:
		return "unknown"
	}
}

// Nop discards every cue. It is used when audio is disabled or no output
// device is available, and for remote sessions.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Cue) {}
