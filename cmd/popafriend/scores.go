package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/popafriend/internal/platform/tui"
	"github.com/vovakirdan/popafriend/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresBrowse bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recent rounds",
	Long: `Display the most recent rounds and the best score.

Examples:
  popafriend scores
  popafriend scores -n 25
  popafriend scores --browse
  popafriend scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of rounds to show")
	scoresCmd.Flags().BoolVar(&flagScoresBrowse, "browse", false, "Browse rounds in an interactive table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the round history")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearRounds(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing rounds: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Round history cleared.")
		return

	case flagScoresBrowse:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunRounds(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	rounds, err := store.RecentRounds(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent Rounds - Pop a Friend")
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'popafriend play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-4s  %s\n", "#", "Score", "Best", "Date")
	fmt.Printf("  %-4s  %-6s  %-4s  %s\n", "-", "-----", "----", "----")

	for i, r := range rounds {
		best := ""
		if r.NewHighScore {
			best = "*"
		}
		fmt.Printf("  %-4d  %-6d  %-4s  %s\n", i+1, r.Score, best, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.BestRound(); err == nil {
		fmt.Printf("Best round: %d\n", best)
	}
	fmt.Printf("High score: %d\n", storage.NewPreferences(store, nil).HighScore())
}
