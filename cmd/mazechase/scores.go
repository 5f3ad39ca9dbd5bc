package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazechase/internal/maze"
	"github.com/vovakirdan/mazechase/internal/platform/tui"
	"github.com/vovakirdan/mazechase/internal/storage"
)

var (
	flagClearScores bool
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top 10 scores.

Examples:
  mazechase scores
  mazechase scores --tui
  mazechase scores --clear
  mazechase scores --db postgres://localhost/mazechase`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Show the interactive scoreboard")
}

func runScores(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	store, err := storage.Open(ctx, flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.Clear(ctx, maze.GameID); err != nil {
			return err
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	if flagScoresTUI {
		cfg, err := sessionConfig(runtimeConfig())
		if err != nil {
			return err
		}
		return tui.RunScoreboard(cfg, tui.Deps{Store: store})
	}

	scores, err := store.ListTop(ctx, maze.GameID, storage.MaxEntries)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", maze.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'mazechase play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-10s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-16s  %-10s  %s\n", "----", "----", "-----", "----")

	for _, entry := range scores {
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-16s  %-10d  %s\n", entry.Rank, entry.Name, entry.Score, dateStr)
	}

	fmt.Println()
	if best, err := store.HighScore(ctx, maze.GameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}
