package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/math-snake/internal/audio"
	"github.com/vovakirdan/math-snake/internal/audio/device"
	"github.com/vovakirdan/math-snake/internal/config"
	"github.com/vovakirdan/math-snake/internal/core"
	"github.com/vovakirdan/math-snake/internal/games/mathsnake"
	"github.com/vovakirdan/math-snake/internal/platform/tui"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Math Snake in this terminal",
	Long: `Pick a difficulty, memorize the expression, then steer the snake
over the digits of the answer in order. Eating a wrong digit, hitting a
wall or biting yourself ends the round.

Controls:
  Arrows/WASD  - Steer (menu: move cursor)
  1-4/Enter    - Choose difficulty, skip countdown
  P            - Pause
  R/B/Esc      - Back to menu
  Q/Ctrl+C     - Quit
  Ctrl+S       - Save a screenshot to ~/.mathsnake/screenshots

Examples:
  mathsnake play
  mathsnake play --seed 42 --mute
  mathsnake play --config ./my-mathsnake.yaml --log-file /tmp/mathsnake.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gameLog, closeLog, err := openGameLogger()
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	defer closeLog()

	app, err := mathsnake.NewApp(cfg, newAudio(cfg, gameLog))
	if err != nil {
		return err
	}

	// A nil *storage.Store must not become a non-nil recorder
	var recorder tui.RoundRecorder
	if store := openStore(); store != nil {
		defer store.Close()
		recorder = store
	}

	width, height := terminalSize()
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.TickRate,
		Seed:     flagSeed,
	}

	gameLog.Info("starting", "seed", flagSeed, "tick_rate", rc.TickRate, "size", fmt.Sprintf("%dx%d", width, height))
	return tui.Run(app, recorder, rc, gameLog)
}

// newAudio returns the tone player, or a silent cue when sound is off or unavailable.
func newAudio(cfg config.Config, l *log.Logger) mathsnake.AudioCue {
	if flagMute || !cfg.Audio.Enabled {
		return audio.Nop{}
	}
	p, err := device.NewPlayer(cfg.Audio.Volume, l)
	if err != nil {
		l.Warn("audio unavailable", "error", err)
		return audio.Nop{}
	}
	return p
}
