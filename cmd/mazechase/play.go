package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazechase/internal/maze"
	"github.com/vovakirdan/mazechase/internal/platform/tui"
	"github.com/vovakirdan/mazechase/internal/registry"
)

var (
	flagLevel int
	flagMute  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a run directly, skipping the menu.

Controls:
  Arrows/WASD  - Move
  P/Space      - Pause
  M            - Toggle sound
  R            - Restart (after the run ends)
  Esc          - Leave (after the run ends or while paused)
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - More lives and a longer power window
  normal - Configured values
  hard   - Fewer lives and a shorter power window
  fixed  - Configured values, no preset applied

Examples:
  mazechase play
  mazechase play --level 3
  mazechase play --difficulty hard --mute
  mazechase play --config ./my-maze.yaml --levels ./pack.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start on (unknown levels fall back to 1)")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound off")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	logger, closer, err := fileLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	game, err := registry.Create(maze.GameID, gameOptions(flagLevel))
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	ctx := context.Background()
	store := openStore(ctx, logger)
	if store == nil {
		fmt.Fprintln(os.Stderr, "Warning: could not open scores database; scores will not be saved")
	} else {
		defer store.Close()
	}

	sounds := openSounds(flagMute, logger)
	defer sounds.Cleanup()

	deps := tui.Deps{Store: store, Sounds: sounds, Logger: logger}
	logger.Info("run started", "level", flagLevel, "difficulty", flagDifficulty)
	if err := tui.Run(game, deps, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
