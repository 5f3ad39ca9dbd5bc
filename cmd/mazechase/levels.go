package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazechase/internal/maze"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List levels",
	Long: `Shows every level of the built-in set, or of the pack given with
--levels, with its size in tiles.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	levels, err := maze.LoadLevels(flagLevels)
	if err != nil {
		return err
	}

	fmt.Printf("  %-3s  %-20s  %s\n", "#", "Name", "Size")
	fmt.Printf("  %-3s  %-20s  %s\n", "-", "----", "----")
	for _, info := range maze.DescribeLevels(levels) {
		fmt.Printf("  %-3d  %-20s  %dx%d\n", info.Number, info.Name, info.Cols, info.Rows)
	}

	fmt.Println()
	fmt.Println("Run 'mazechase play --level <n>' to start on a level.")
	return nil
}
