package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/math-snake/internal/platform/tui"
	"github.com/vovakirdan/math-snake/internal/question"
	"github.com/vovakirdan/math-snake/internal/storage"
)

var (
	flagHistoryDifficulty string
	flagHistoryLimit      int
	flagHistoryPlain      bool
	flagHistoryClear      bool
	flagHistoryID         string
)

// roundClearer deletes recorded rounds.
type roundClearer interface {
	Stats(difficulty string) (storage.DifficultyStats, error)
	ClearRounds(difficulty string) error
}

// roundLookup finds a single recorded round.
type roundLookup interface {
	RoundByID(id string) (*storage.Round, error)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse played rounds",
	Long: `Show the most recent rounds with per-difficulty totals.

In a terminal this opens a browser: Tab and Shift+Tab switch the
difficulty filter, Up/Down scroll, Q or Esc leaves. When stdout is not
a terminal, or with --plain, the rounds are printed as text.

--id prints one round in full. --clear deletes the rounds of the
selected difficulty, or every round without --difficulty.

Examples:
  mathsnake history
  mathsnake history --difficulty hard --limit 50
  mathsnake history --plain > rounds.txt
  mathsnake history --id 5f0c6a52-8d1e-4c1b-9f7e-2b8f4c3a1d90
  mathsnake history --clear --difficulty easy`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryDifficulty, "difficulty", "", "Only show this difficulty (easy, medium, hard, insane)")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 100, "Maximum number of rounds to show")
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print as text instead of opening the browser")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete recorded rounds (all, or only --difficulty)")
	historyCmd.Flags().StringVar(&flagHistoryID, "id", "", "Print the round with this ID")
	historyCmd.MarkFlagsMutuallyExclusive("clear", "id")
}

func runHistory(_ *cobra.Command, _ []string) error {
	difficulty := ""
	if flagHistoryDifficulty != "" {
		d, err := question.ParseDifficulty(flagHistoryDifficulty)
		if err != nil {
			return err
		}
		difficulty = d.String()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagHistoryClear:
		return clearHistory(os.Stdout, store, difficulty)
	case flagHistoryID != "":
		return printRound(os.Stdout, store, flagHistoryID)
	}

	if flagHistoryPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printHistory(os.Stdout, store, difficulty, flagHistoryLimit)
	}

	width, height := terminalSize()
	return tui.RunHistory(store, difficulty, flagHistoryLimit, width, height)
}

// printHistory writes the totals and the recent rounds as aligned text.
func printHistory(w io.Writer, src tui.RoundSource, difficulty string, limit int) error {
	stats, err := src.AllStats()
	if err != nil {
		return err
	}
	rounds, err := src.RecentRounds(difficulty, limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DIFFICULTY\tPLAYED\tWON\tWIN %\tAVG MOVES")
	for _, d := range question.Difficulties {
		if difficulty != "" && d.String() != difficulty {
			continue
		}
		st := stats[d.String()]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.0f%%\t%.1f\n", d.String(), st.Played, st.Wins, st.WinRate()*100, st.AvgTicks)
	}
	fmt.Fprintln(tw)

	if len(rounds) == 0 {
		fmt.Fprintln(tw, "No rounds recorded yet.")
		return tw.Flush()
	}

	fmt.Fprintln(tw, "DATE\tDIFFICULTY\tEXPRESSION\tANSWER\tEATEN\tOUTCOME\tCAUSE\tMOVES\tID")
	for _, r := range rounds {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%d\t%s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Difficulty,
			r.Expression,
			r.Answer,
			orDash(r.Collected),
			r.Outcome,
			orDash(r.Cause),
			r.Ticks,
			r.ID,
		)
	}
	return tw.Flush()
}

// clearHistory deletes the rounds of difficulty, or all rounds when it is empty.
func clearHistory(w io.Writer, c roundClearer, difficulty string) error {
	st, err := c.Stats(difficulty)
	if err != nil {
		return err
	}
	if err := c.ClearRounds(difficulty); err != nil {
		return err
	}

	scope := ""
	if difficulty != "" {
		scope = difficulty + " "
	}
	_, err = fmt.Fprintf(w, "Cleared %d %srounds.\n", st.Played, scope)
	return err
}

// printRound writes every field of one round.
func printRound(w io.Writer, l roundLookup, id string) error {
	r, err := l.RoundByID(id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("round %q not found", id)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", r.ID)
	fmt.Fprintf(tw, "Played\t%s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(tw, "Difficulty\t%s\n", r.Difficulty)
	fmt.Fprintf(tw, "Expression\t%s = %d\n", r.Expression, r.Answer)
	fmt.Fprintf(tw, "Eaten\t%s\n", orDash(r.Collected))
	fmt.Fprintf(tw, "Outcome\t%s\n", r.Outcome)
	fmt.Fprintf(tw, "Cause\t%s\n", orDash(r.Cause))
	fmt.Fprintf(tw, "Moves\t%d\n", r.Ticks)
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
