package question

import (
	"fmt"
	"strings"
)

// Difficulty controls expression complexity and memorization time.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Insane
)

// Difficulties lists every level in menu order.
var Difficulties = []Difficulty{Easy, Medium, Hard, Insane}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Insane:
		return "insane"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// Title returns the display name.
func (d Difficulty) Title() string {
	s := d.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Valid reports whether d is one of the defined levels.
func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Insane
}

// ParseDifficulty parses a difficulty name or its 1-based menu number.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, d := range Difficulties {
		if s == d.String() || s == fmt.Sprint(i+1) {
			return d, nil
		}
	}
	return Easy, fmt.Errorf("unknown difficulty %q (want easy, medium, hard or insane)", s)
}
