package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/math-snake/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Math Snake SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own game without sound.
Rounds from every session go to the same history database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.mathsnake/host_key

Examples:
  mathsnake serve                           # Listen on :23235 with auto-generated key
  mathsnake serve --ssh :2222               # Listen on port 2222
  mathsnake serve --host-key ./my_host_key  # Use specific host key
  mathsnake serve --db ./rounds.db          # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(defaults.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	game, err := loadConfig()
	if err != nil {
		return err
	}

	var recorder tui.RoundRecorder
	if store := openStore(); store != nil {
		defer store.Close()
		recorder = store
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = game.TickRate

	server, err := tui.NewSSHServer(cfg, game, recorder, logger.WithPrefix("mathsnake-ssh"))
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	logger.Info("press Ctrl+C to stop", "connect", "ssh localhost -p <port>", "address", server.Addr())

	return server.ListenAndServe()
}
