// Package mathsnake implements Math Snake: memorize an arithmetic
// expression, then steer a snake over the board eating the digit tiles
// that spell its answer, in order.
//
// The package holds pure game logic with no terminal dependencies. The
// platform feeds input through an InputSource, calls Step once per frame
// and renders into a core.Screen.
package mathsnake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/math-snake/internal/config"
	"github.com/vovakirdan/math-snake/internal/core"
	"github.com/vovakirdan/math-snake/internal/grid"
	"github.com/vovakirdan/math-snake/internal/question"
)

// Phase is the application-level screen.
type Phase int

const (
	PhaseMenu Phase = iota
	PhaseMemorize
	PhasePlaying
	PhaseAnimating
	PhaseEndScreen
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseMemorize:
		return "memorize"
	case PhasePlaying:
		return "playing"
	case PhaseAnimating:
		return "animating"
	case PhaseEndScreen:
		return "end_screen"
	default:
		return "unknown"
	}
}

// RoundResult describes a finished round.
type RoundResult struct {
	Difficulty question.Difficulty
	Expression string
	Answer     int64
	Collected  string
	Won        bool
	Cause      Cause
	Ticks      int
}

// App drives menus, memorization, play and end screens around a Session.
type App struct {
	cfg   config.Config
	g     *grid.Grid
	audio AudioCue

	rng      *rand.Rand
	gen      *question.Generator
	session  *Session
	effects  AnimationHost
	tickRate int
	frame    uint64

	phase         Phase
	cursor        int
	difficulty    question.Difficulty
	memorizeLeft  int
	memorizeTotal int
	moveTicker    int
	steering      bool // A direction was pressed during this round
	paused        bool
	quit          bool
	won           bool

	pending *RoundResult
	lastErr error

	screenW  int
	screenH  int
	tooSmall bool
}

// NewApp creates the game. cue may be nil for silent play.
func NewApp(cfg config.Config, cue AudioCue) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g, err := grid.New(cfg.Grid.Rows, cfg.Grid.Cols, cfg.Grid.CellWidth, cfg.Grid.CellHeight)
	if err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, g: g, audio: cue}
	a.Reset(core.DefaultConfig())
	return a, nil
}

// Title returns the display name.
func (a *App) Title() string {
	return "Math Snake"
}

// Reset restarts at the difficulty menu.
func (a *App) Reset(rc core.RuntimeConfig) {
	a.rng = rand.New(rand.NewSource(rc.Seed))
	a.gen = question.NewGenerator(a.rng, a.cfg)
	a.effects = NewEffects(rand.New(rand.NewSource(a.rng.Int63())), a.cfg.AnimationTicks)
	a.tickRate = rc.TickRate
	if a.tickRate <= 0 {
		a.tickRate = a.cfg.TickRate
	}
	a.frame = 0
	a.cursor = 0
	a.quit = false
	a.pending = nil
	a.lastErr = nil
	a.toMenu()
	a.Resize(rc.ScreenW, rc.ScreenH)
}

// RequiredSize returns the smallest screen the board fits on.
func (a *App) RequiredSize() (w, h int) {
	gw, gh := a.g.PixelSize()
	return gw + 2, gh + 3 // Border plus the hint line
}

// Resize lays the board out for a new screen size.
func (a *App) Resize(w, h int) {
	a.screenW, a.screenH = w, h
	rw, rh := a.RequiredSize()
	a.tooSmall = w < rw || h < rh
	if a.tooSmall {
		return
	}
	ox := (w-rw)/2 + 1
	oy := (h-rh)/2 + 1
	a.g.SetOrigin(ox, oy)
	gw, gh := a.g.PixelSize()
	a.effects.SetArea(core.NewRect(ox, oy, gw, gh))
}

// Step advances the game by one frame.
func (a *App) Step(in InputSource) core.StepResult {
	a.frame++
	events := in.PollEvents()
	for _, ev := range events {
		if ev.Kind == EventQuit {
			a.quit = true
		}
	}
	if a.quit || a.tooSmall {
		return core.StepResult{State: a.State()}
	}

	switch a.phase {
	case PhaseMenu:
		a.stepMenu(events)
	case PhaseMemorize:
		a.stepMemorize(events)
	case PhasePlaying:
		a.stepPlaying(events, in)
	case PhaseAnimating:
		a.stepAnimating(events)
	case PhaseEndScreen:
		a.stepEndScreen(events)
	}
	return core.StepResult{State: a.State()}
}

func (a *App) stepMenu(events []Event) {
	n := len(question.Difficulties)
	for _, ev := range events {
		switch ev.Kind {
		case EventNavigate:
			switch ev.Dir {
			case DirUp:
				a.cursor = (a.cursor + n - 1) % n
			case DirDown:
				a.cursor = (a.cursor + 1) % n
			}
		case EventConfirm:
			a.startRound(question.Difficulties[a.cursor])
			return
		case EventDifficultySelected:
			if ev.Difficulty.Valid() {
				a.cursor = int(ev.Difficulty)
				a.startRound(ev.Difficulty)
				return
			}
		case EventBack:
			a.quit = true
			return
		}
	}
}

func (a *App) startRound(d question.Difficulty) {
	if err := a.session.SelectDifficulty(d); err != nil {
		a.lastErr = err
		a.toMenu()
		return
	}
	a.difficulty = d
	p, _ := a.cfg.Profile(d.String())
	a.memorizeTotal = p.MemorizeTicks(a.tickRate)
	a.memorizeLeft = a.memorizeTotal
	if a.memorizeTotal <= 0 {
		a.beginPlaying()
		return
	}
	a.phase = PhaseMemorize
}

func (a *App) stepMemorize(events []Event) {
	for _, ev := range events {
		switch ev.Kind {
		case EventConfirm:
			a.beginPlaying()
			return
		case EventBack:
			a.toMenu()
			return
		}
	}
	a.memorizeLeft--
	if a.memorizeLeft <= 0 {
		a.beginPlaying()
	}
}

func (a *App) beginPlaying() {
	a.phase = PhasePlaying
	a.memorizeLeft = 0
	a.moveTicker = 0
	a.steering = false
	a.paused = false
}

func (a *App) stepPlaying(events []Event, in InputSource) {
	for _, ev := range events {
		switch ev.Kind {
		case EventNavigate:
			a.steering = true
		case EventPause:
			a.paused = !a.paused
		case EventBack:
			a.toMenu()
			return
		}
	}
	if a.paused {
		return
	}

	a.moveTicker++
	if a.moveTicker < a.cfg.MoveInterval() {
		return
	}
	a.moveTicker = 0

	dir, ok := in.CurrentDirection()
	if err := a.session.Tick(dir, ok && a.steering); err != nil {
		a.lastErr = err
	} else if err := a.session.TakeAudioError(); err != nil {
		a.lastErr = err
	}
	if a.session.State().Terminal() {
		a.finishRound()
	}
}

func (a *App) finishRound() {
	s := a.session
	q := s.Question()
	a.won = s.State() == Won
	a.pending = &RoundResult{
		Difficulty: a.difficulty,
		Expression: q.Text,
		Answer:     q.Answer,
		Collected:  digitsString(s.Collected()),
		Won:        a.won,
		Cause:      s.Cause(),
		Ticks:      s.ElapsedTicks(),
	}

	if a.won {
		a.effects.PlayVictoryAnimation()
	} else {
		head := s.Snake().Head()
		cx, cy := a.g.CellBounds(head.Row, head.Col).Center()
		a.effects.PlayDeathAnimation(cx, cy)
	}
	a.phase = PhaseAnimating
}

func (a *App) stepAnimating(events []Event) {
	for _, ev := range events {
		if ev.Kind == EventConfirm {
			a.showEndScreen()
			return
		}
	}
	if !a.effects.Step() {
		a.showEndScreen()
	}
}

func (a *App) showEndScreen() {
	s := a.session
	sum := Summary{
		Expression: s.Question().Text,
		Answer:     s.Question().Signed(),
		Collected:  digitsString(s.Collected()),
		Cause:      s.Cause(),
		Ticks:      s.ElapsedTicks(),
	}
	if a.won {
		a.effects.ShowWinScreen(sum)
	} else {
		a.effects.ShowLoseScreen(sum)
	}
	a.phase = PhaseEndScreen
}

func (a *App) stepEndScreen(events []Event) {
	for _, ev := range events {
		switch ev.Kind {
		case EventRestart, EventBack, EventConfirm:
			a.toMenu()
			return
		}
	}
}

// toMenu discards the current session and waits for a new difficulty.
func (a *App) toMenu() {
	a.session = NewSession(a.g, a.rng, a.gen, a.audio)
	a.phase = PhaseMenu
	a.paused = false
	a.won = false
	a.memorizeLeft = 0
}

// State returns the platform-facing state.
func (a *App) State() core.GameState {
	return core.GameState{Quit: a.quit, Paused: a.paused}
}

// Phase returns the current screen.
func (a *App) Phase() Phase {
	return a.phase
}

// Session returns the current session.
func (a *App) Session() *Session {
	return a.session
}

// TakeResult returns the result of the last finished round once.
func (a *App) TakeResult() (RoundResult, bool) {
	if a.pending == nil {
		return RoundResult{}, false
	}
	r := *a.pending
	a.pending = nil
	return r, true
}

// TakeError returns and clears the last internal error.
func (a *App) TakeError() error {
	err := a.lastErr
	a.lastErr = nil
	return err
}

func digitsString(ds []Digit) string {
	b := make([]rune, len(ds))
	for i, d := range ds {
		b[i] = d.Rune()
	}
	return string(b)
}

// Render draws the current screen.
func (a *App) Render(dst *core.Screen) {
	dst.Clear()
	if a.tooSmall {
		rw, rh := a.RequiredSize()
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", rw, rh), core.ColorYellow)
		return
	}

	switch a.phase {
	case PhaseMenu:
		a.renderMenu(dst)
	case PhaseMemorize:
		a.renderMemorize(dst)
	case PhasePlaying:
		a.renderBoard(dst)
		if a.paused {
			renderOverlay(dst, "Paused", "Press P to continue", core.ColorYellow)
		}
	case PhaseAnimating, PhaseEndScreen:
		a.renderBoard(dst)
		a.effects.Draw(dst)
	}
}

func (a *App) renderBoard(dst *core.Screen) {
	r := &screenRenderer{dst: dst, g: a.g, label: a.difficulty.Title()}
	a.session.Draw(r)

	_, gh := a.g.PixelSize()
	origin := a.g.CellBounds(0, 0)
	hint := "WASD/arrows: move  P: pause  Esc: menu  Q: quit"
	dst.DrawTextColor(origin.X-1, origin.Y+gh+1, truncate(hint, dst.Width()), core.ColorGray)
}

var difficultyHints = map[question.Difficulty]string{
	question.Easy:   "2-3 numbers up to 99, + and -",
	question.Medium: "2-4 numbers up to 999, + and -",
	question.Hard:   "signed numbers, + - *, parentheses",
	question.Insane: "3-4 signed numbers up to 9999",
}

func (a *App) renderMenu(dst *core.Screen) {
	title := "M A T H   S N A K E"
	top := max(1, dst.Height()/2-7)
	dst.DrawTextCentered(top, title, core.ColorBrightGreen)
	dst.DrawTextCentered(top+2, "Memorize the expression, then eat its answer digit by digit", core.ColorGray)

	for i, d := range question.Difficulties {
		p, _ := a.cfg.Profile(d.String())
		line := fmt.Sprintf("  %d. %-7s %3ds  %s", i+1, d.Title(), p.MemorizeSeconds, difficultyHints[d])
		color := core.ColorWhite
		if i == a.cursor {
			line = ">" + line[1:]
			color = core.ColorBrightYellow
		}
		dst.DrawTextCentered(top+5+i*2, line, color)
	}

	dst.DrawTextCentered(top+14, "Up/Down + Enter or 1-4 to choose, Q to quit", core.ColorGray)
}

func (a *App) renderMemorize(dst *core.Screen) {
	q := a.session.Question()
	mid := dst.Height() / 2

	dst.DrawTextCentered(mid-4, "Memorize this expression", core.ColorBrightCyan)
	box := core.NewRect((dst.Width()-len(q.Text)-6)/2, mid-2, len(q.Text)+6, 3)
	dst.DrawBox(box, core.ColorBrightBlue)
	dst.DrawTextCentered(mid-1, q.Text, core.ColorBrightWhite)

	secs := (a.memorizeLeft + a.tickRate - 1) / a.tickRate
	color := core.ColorBrightGreen
	switch {
	case a.memorizeLeft*4 < a.memorizeTotal:
		color = core.ColorBrightRed
	case a.memorizeLeft*2 < a.memorizeTotal:
		color = core.ColorBrightYellow
	}
	dst.DrawTextCentered(mid+2, fmt.Sprintf("%d s", secs), color)
	dst.DrawTextCentered(mid+4, "Enter: start now  Esc: menu", core.ColorGray)
}
