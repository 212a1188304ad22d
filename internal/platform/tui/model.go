package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/math-snake/internal/core"
	"github.com/vovakirdan/math-snake/internal/games/mathsnake"
	"github.com/vovakirdan/math-snake/internal/storage"
)

// RoundRecorder persists finished rounds. *storage.Store implements it.
type RoundRecorder interface {
	SaveRound(r storage.Round) (string, error)
}

// Model is the Bubble Tea model for running Math Snake.
type Model struct {
	app        *mathsnake.App
	input      *mathsnake.KeyInput
	keyMapper  *KeyMapper
	screen     *core.Screen
	store      RoundRecorder
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	quitting   bool
}

// NewModel creates a new Bubble Tea model around app and resets it.
// store and logger may be nil.
func NewModel(app *mathsnake.App, store RoundRecorder, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	app.Reset(cfg)

	return Model{
		app:        app,
		input:      mathsnake.NewKeyInput(),
		keyMapper:  NewKeyMapper(),
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events. The round keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.app.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick runs one frame of the game.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.input.Feed(m.inputFrame)
	m.inputFrame.Clear()

	result := m.app.Step(m.input)

	if err := m.app.TakeError(); err != nil {
		m.logger.Error("round aborted", "error", err)
	}
	if r, ok := m.app.TakeResult(); ok {
		m.recordRound(r)
		m.input.Release()
	}

	if result.State.Quit {
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

// recordRound logs a finished round and saves it when a store is attached.
func (m Model) recordRound(r mathsnake.RoundResult) {
	rec := roundRecord(r)
	m.logger.Info("round finished",
		"difficulty", rec.Difficulty,
		"outcome", rec.Outcome,
		"cause", rec.Cause,
		"ticks", rec.Ticks,
	)

	if m.store == nil {
		return
	}
	// Best-effort save, game continues regardless
	id, err := m.store.SaveRound(rec)
	if err != nil {
		m.logger.Warn("could not save round", "error", err)
		return
	}
	m.logger.Debug("round saved", "id", id)
}

// roundRecord converts a game result to its stored form.
func roundRecord(r mathsnake.RoundResult) storage.Round {
	rec := storage.Round{
		Difficulty: r.Difficulty.String(),
		Expression: r.Expression,
		Answer:     r.Answer,
		Collected:  r.Collected,
		Outcome:    storage.OutcomeLost,
		Cause:      string(r.Cause),
		Ticks:      r.Ticks,
	}
	if r.Won {
		rec.Outcome = storage.OutcomeWon
	}
	return rec
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.app.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".mathsnake", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("mathsnake_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Debug("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.app.Render(m.screen)
	return RenderScreen(m.screen)
}

// Quitting reports whether the player left the game.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program with the given app.
func Run(app *mathsnake.App, store RoundRecorder, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(app, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
