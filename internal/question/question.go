// Package question generates the arithmetic expressions the player has to
// memorize and solve.
package question

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/vovakirdan/math-snake/internal/config"
	"github.com/vovakirdan/math-snake/internal/expr"
)

// Question is a generated expression together with its answer.
type Question struct {
	Difficulty Difficulty
	Text       string
	Answer     int64
	Digits     string // Decimal digits of |Answer|, most significant first
	Negative   bool
}

// New evaluates text and derives the answer digits.
func New(d Difficulty, text string) (Question, error) {
	answer, err := expr.Eval(text)
	if err != nil {
		return Question{}, fmt.Errorf("question: %q: %w", text, err)
	}
	digits, negative := SplitAnswer(answer)
	return Question{
		Difficulty: d,
		Text:       text,
		Answer:     answer,
		Digits:     digits,
		Negative:   negative,
	}, nil
}

// SplitAnswer returns the decimal digits of |v| and whether v is negative.
func SplitAnswer(v int64) (digits string, negative bool) {
	s := strconv.FormatInt(v, 10)
	if strings.HasPrefix(s, "-") {
		return s[1:], true
	}
	return s, false
}

// Signed returns the answer as it has to be spelled, including the sign.
func (q Question) Signed() string {
	if q.Negative {
		return "-" + q.Digits
	}
	return q.Digits
}

// Generator produces questions from the configured difficulty profiles.
type Generator struct {
	rng *rand.Rand
	cfg config.Config
}

// NewGenerator creates a generator drawing from rng.
func NewGenerator(rng *rand.Rand, cfg config.Config) *Generator {
	return &Generator{rng: rng, cfg: cfg}
}

// Generate builds a random expression for d and evaluates it.
func (g *Generator) Generate(d Difficulty) (Question, error) {
	p, ok := g.cfg.Profile(d.String())
	if !ok {
		return Question{}, fmt.Errorf("question: no profile for %s", d)
	}

	n := p.MinOperands + g.rng.Intn(p.MaxOperands-p.MinOperands+1)
	var b strings.Builder
	for i := range n {
		if i > 0 {
			b.WriteString(" ")
			b.WriteString(p.Operators[g.rng.Intn(len(p.Operators))])
			b.WriteString(" ")
		}
		operand := strconv.Itoa(g.operand(p))
		if i > 0 && p.Parenthesize {
			operand = "(" + operand + ")"
		}
		b.WriteString(operand)
	}

	return New(d, b.String())
}

// operand draws a value from [min, max], or from [-max, -min] ∪ [min, max]
// when the profile allows negatives.
func (g *Generator) operand(p config.Profile) int {
	v := p.MinValue + g.rng.Intn(p.MaxValue-p.MinValue+1)
	if p.Negative && g.rng.Intn(2) == 0 {
		v = -v
	}
	return v
}
