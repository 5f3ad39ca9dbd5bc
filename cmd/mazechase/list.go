package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazechase/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all registered games.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Levels", "Title")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "------", "-----")

	// Print games
	for _, g := range games {
		fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, g.ID, levelCount(g.ID), g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'mazechase play' to start.")
}

// levelCount reports how many levels a game offers under the current flags,
// "-" when it has no level list or cannot be built.
func levelCount(id string) string {
	game, err := registry.Create(id, gameOptions(0))
	if err != nil {
		return "-"
	}
	if ll, ok := game.(registry.LevelLister); ok {
		return strconv.Itoa(len(ll.LevelNames()))
	}
	return "-"
}
