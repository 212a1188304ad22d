package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/math-snake/internal/config"
)

func TestNewSSHServerFillsDefaults(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "keys", "host_key")

	srv, err := NewSSHServer(SSHServerConfig{HostKeyPath: keyPath}, config.Default(), nil, nil)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}

	defaults := DefaultSSHServerConfig()
	if srv.Addr() != defaults.Address {
		t.Errorf("Addr() = %q, want %q", srv.Addr(), defaults.Address)
	}
	if srv.config.IdleTimeout != defaults.IdleTimeout {
		t.Errorf("idle timeout = %v, want %v", srv.config.IdleTimeout, defaults.IdleTimeout)
	}
	if srv.config.TickRate != config.Default().TickRate {
		t.Errorf("tick rate = %d, want %d", srv.config.TickRate, config.Default().TickRate)
	}
	if _, err := os.Stat(filepath.Dir(keyPath)); err != nil {
		t.Errorf("host key directory not created: %v", err)
	}
}

func TestNewSSHServerRejectsInvalidGame(t *testing.T) {
	game := config.Default()
	game.TickRate = 0

	if _, err := NewSSHServer(SSHServerConfig{HostKeyPath: filepath.Join(t.TempDir(), "host_key")}, game, nil, nil); err == nil {
		t.Fatal("NewSSHServer() should reject an invalid game config")
	}
}
