package config

import "fmt"

// MinSpawnableCells is the smallest play area that fits the ten digit
// tiles and a snake.
const MinSpawnableCells = 11

// DifficultyNames lists the profile keys in menu order.
var DifficultyNames = []string{"easy", "medium", "hard", "insane"}

// Profile controls expression generation and memorization time for one
// difficulty level.
type Profile struct {
	MemorizeSeconds int      `yaml:"memorize_seconds"`
	MinOperands     int      `yaml:"min_operands"`
	MaxOperands     int      `yaml:"max_operands"`
	MinValue        int      `yaml:"min_value"`    // Smallest operand magnitude
	MaxValue        int      `yaml:"max_value"`    // Largest operand magnitude
	Negative        bool     `yaml:"negative"`     // Also draw from [-max, -min]
	Operators       []string `yaml:"operators"`    // Subset of "+", "-", "*"
	Parenthesize    bool     `yaml:"parenthesize"` // Wrap every operand after the first
}

// Profile returns the profile for a difficulty name.
func (c Config) Profile(name string) (Profile, bool) {
	switch name {
	case "easy":
		return c.Difficulties.Easy, true
	case "medium":
		return c.Difficulties.Medium, true
	case "hard":
		return c.Difficulties.Hard, true
	case "insane":
		return c.Difficulties.Insane, true
	default:
		return Profile{}, false
	}
}

// MemorizeTicks converts the memorization time to frames at tickRate.
func (p Profile) MemorizeTicks(tickRate int) int {
	return p.MemorizeSeconds * tickRate
}

func (p Profile) validate() error {
	if p.MemorizeSeconds < 0 {
		return fmt.Errorf("memorize_seconds must not be negative, got %d", p.MemorizeSeconds)
	}
	if p.MinOperands < 1 || p.MaxOperands < p.MinOperands {
		return fmt.Errorf("operand count range [%d, %d] is empty", p.MinOperands, p.MaxOperands)
	}
	if p.MinValue < 0 || p.MaxValue < p.MinValue {
		return fmt.Errorf("operand value range [%d, %d] is empty", p.MinValue, p.MaxValue)
	}
	if p.Negative && p.MinValue == 0 {
		// Zero has no mirrored negative.
		return fmt.Errorf("negative operands need min_value >= 1")
	}
	if len(p.Operators) == 0 {
		return fmt.Errorf("no operators")
	}
	for _, op := range p.Operators {
		switch op {
		case "+", "-", "*":
		default:
			return fmt.Errorf("unsupported operator %q", op)
		}
	}
	return nil
}
