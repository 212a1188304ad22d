package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/math-snake/internal/expr"
	"github.com/vovakirdan/math-snake/internal/question"
)

var (
	flagGenerate string
	flagCount    int
)

var evalCmd = &cobra.Command{
	Use:   `eval ["<expr>"]`,
	Short: "Evaluate or generate expressions",
	Long: `Evaluate an integer expression with + - * / and parentheses, or
generate expressions the way the game does.

Examples:
  mathsnake eval "12 * (3 - 5)"
  mathsnake eval --generate hard --count 10
  mathsnake eval --generate insane --seed 7`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringVar(&flagGenerate, "generate", "", "Generate expressions of this difficulty instead")
	evalCmd.Flags().IntVar(&flagCount, "count", 5, "Number of expressions to generate")
}

func runEval(_ *cobra.Command, args []string) error {
	if flagGenerate != "" {
		d, err := question.ParseDifficulty(flagGenerate)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		seed := flagSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		gen := question.NewGenerator(rand.New(rand.NewSource(seed)), cfg)
		return printGenerated(os.Stdout, gen, d, flagCount)
	}

	if len(args) != 1 {
		return errors.New(`eval needs an expression or --generate <difficulty>`)
	}
	return printEval(os.Stdout, args[0])
}

// printEval prints the value of src.
func printEval(w io.Writer, src string) error {
	v, err := expr.Eval(src)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, v)
	return err
}

// printGenerated prints n expressions with their answers.
func printGenerated(w io.Writer, gen *question.Generator, d question.Difficulty, n int) error {
	for range n {
		q, err := gen.Generate(d)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s = %d\n", q.Text, q.Answer); err != nil {
			return err
		}
	}
	return nil
}

