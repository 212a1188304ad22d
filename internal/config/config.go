// Package config provides YAML-based configuration for Math Snake:
// grid geometry, pacing, audio and the per-difficulty expression profiles.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config contains all configuration for the game.
type Config struct {
	Grid           GridConfig         `yaml:"grid"`
	TickRate       int                `yaml:"tick_rate"`
	MoveEveryTicks int                `yaml:"move_every_ticks"`
	AnimationTicks int                `yaml:"animation_ticks"`
	Audio          AudioConfig        `yaml:"audio"`
	Difficulties   DifficultiesConfig `yaml:"difficulties"`
}

// GridConfig defines the play field. Row 0 is the status bar.
type GridConfig struct {
	Rows       int `yaml:"rows"`
	Cols       int `yaml:"cols"`
	CellWidth  int `yaml:"cell_width"`  // Screen columns per cell
	CellHeight int `yaml:"cell_height"` // Screen rows per cell
}

// AudioConfig controls the sound cues.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// DifficultiesConfig holds one profile per difficulty level.
type DifficultiesConfig struct {
	Easy   Profile `yaml:"easy"`
	Medium Profile `yaml:"medium"`
	Hard   Profile `yaml:"hard"`
	Insane Profile `yaml:"insane"`
}

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	var errs []error

	if c.Grid.Rows < 2 || c.Grid.Cols < 1 {
		errs = append(errs, fmt.Errorf("grid must be at least 2x1, got %dx%d", c.Grid.Rows, c.Grid.Cols))
	} else if spawnable := (c.Grid.Rows - 1) * c.Grid.Cols; spawnable < MinSpawnableCells {
		errs = append(errs, fmt.Errorf("grid has %d spawnable cells, need at least %d", spawnable, MinSpawnableCells))
	}
	if c.Grid.CellWidth < 1 || c.Grid.CellHeight < 1 {
		errs = append(errs, fmt.Errorf("cell size must be positive, got %dx%d", c.Grid.CellWidth, c.Grid.CellHeight))
	}
	if c.TickRate < 1 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", c.TickRate))
	}
	if c.MoveEveryTicks < 1 {
		errs = append(errs, fmt.Errorf("move_every_ticks must be positive, got %d", c.MoveEveryTicks))
	}
	if c.AnimationTicks < 0 {
		errs = append(errs, fmt.Errorf("animation_ticks must not be negative, got %d", c.AnimationTicks))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be within [0, 1], got %g", c.Audio.Volume))
	}

	for _, name := range DifficultyNames {
		p, _ := c.Profile(name)
		if err := p.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// MoveInterval returns the number of frames between snake moves.
func (c Config) MoveInterval() int {
	if c.MoveEveryTicks < 1 {
		return 1
	}
	return c.MoveEveryTicks
}
