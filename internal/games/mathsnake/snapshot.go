package mathsnake

import "github.com/vovakirdan/math-snake/internal/grid"

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Frame        uint64
	Phase        Phase
	Session      SessionState
	Difficulty   string
	Expression   string
	Head         grid.Cell
	SnakeLen     int
	TargetDigit  int // -1 when nothing is left to collect
	TargetIndex  int
	Collected    string
	ElapsedTicks int
	Cause        Cause
	Tiles        [DigitCount]grid.Cell
	Particles    int
}

// Snapshot returns the current game snapshot for determinism verification.
func (a *App) Snapshot() Snapshot {
	s := a.session
	snap := Snapshot{
		Frame:        a.frame,
		Phase:        a.phase,
		Session:      s.State(),
		Expression:   s.Question().Text,
		Head:         noCell,
		TargetDigit:  -1,
		TargetIndex:  s.TargetIndex(),
		Collected:    digitsString(s.Collected()),
		ElapsedTicks: s.ElapsedTicks(),
		Cause:        s.Cause(),
		Particles:    a.effects.ParticleCount(),
	}
	if s.State() != AwaitingDifficulty {
		snap.Difficulty = a.difficulty.String()
	}
	if sn := s.Snake(); sn != nil {
		snap.Head = sn.Head()
		snap.SnakeLen = sn.Len()
	}
	if t := s.CurrentTarget(); t != nil {
		snap.TargetDigit = int(t.Digit)
	}
	if ts := s.Tiles(); ts != nil {
		for _, t := range ts.Tiles() {
			snap.Tiles[t.Digit] = t.Cell
		}
	}
	return snap
}
