package config

import (
	_ "embed"
)

//go:embed defaults/mathsnake.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Rows:       20,
			Cols:       30,
			CellWidth:  2,
			CellHeight: 1,
		},
		TickRate:       60,
		MoveEveryTicks: 6,
		AnimationTicks: 120,
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.3,
		},
		Difficulties: DifficultiesConfig{
			Easy: Profile{
				MemorizeSeconds: 10,
				MinOperands:     2,
				MaxOperands:     3,
				MinValue:        1,
				MaxValue:        99,
				Operators:       []string{"+", "-"},
			},
			Medium: Profile{
				MemorizeSeconds: 20,
				MinOperands:     2,
				MaxOperands:     4,
				MinValue:        100,
				MaxValue:        999,
				Operators:       []string{"+", "-"},
			},
			Hard: Profile{
				MemorizeSeconds: 35,
				MinOperands:     2,
				MaxOperands:     4,
				MinValue:        101,
				MaxValue:        999,
				Negative:        true,
				Operators:       []string{"+", "-", "*"},
				Parenthesize:    true,
			},
			Insane: Profile{
				MemorizeSeconds: 70,
				MinOperands:     3,
				MaxOperands:     4,
				MinValue:        101,
				MaxValue:        9999,
				Negative:        true,
				Operators:       []string{"+", "-", "*"},
				Parenthesize:    true,
			},
		},
	}
}
