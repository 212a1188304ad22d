// mathsnake is a terminal snake game about memorizing arithmetic.
//
// Usage:
//
//	mathsnake play              - Play in this terminal (default command)
//	mathsnake serve             - Start SSH server for remote play
//	mathsnake history           - Browse played rounds
//	mathsnake eval "<expr>"     - Evaluate an expression
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: config tick_rate)
//	--seed <value>      - Set RNG seed for reproducible rounds
//	--db <path>         - Set database path (default: ~/.mathsnake/rounds.db)
//	--config <path>     - Use a custom config YAML
//	--log-file <path>   - Write debug logs to a file
package main

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/math-snake/internal/config"
	"github.com/vovakirdan/math-snake/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "mathsnake",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("command failed", "error", err)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mathsnake",
	Short: "Math Snake - memorize an expression, eat its answer",
	Long: `Math Snake shows you an arithmetic expression for a few seconds,
hides it, and lets you steer a snake over the board to eat the digits
of its answer in order.

Available commands:
  play     - Play in this terminal (default)
  serve    - Start SSH server for remote play
  history  - Browse played rounds
  eval     - Evaluate or generate expressions

Examples:
  mathsnake
  mathsnake play --seed 42
  mathsnake serve --ssh :2222
  mathsnake history --difficulty hard
  mathsnake eval "12 * (3 - 5)"`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate in frames per second (0 = config tick_rate)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mathsnake/rounds.db", "Path to round history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write debug logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(evalCmd)
}

// loadConfig loads the game configuration for the --config flag.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	return cfg, nil
}

// openGameLogger returns the logger used while the alt screen is active.
// Without --log-file it discards everything.
func openGameLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "mathsnake",
		Level:           log.DebugLevel,
	})
	return l, func() { f.Close() }, nil
}

// openStore opens the round history. Failures are logged and yield nil.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open round history, rounds will not be saved", "error", err)
		return nil
	}
	return store
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}
