package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazechase/internal/platform/tui"
)

var menuMute bool

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Level select menu",
	Long: `Pick a level, play it, and browse the scoreboard. Esc after a run
returns to the menu; Tab on the menu opens the scoreboard.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&menuMute, "mute", false, "Start with sound off")
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closer, err := fileLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg, err := sessionConfig(runtimeConfig())
	if err != nil {
		return fmt.Errorf("loading levels: %w", err)
	}

	store := openStore(context.Background(), logger)
	if store != nil {
		defer store.Close()
	}

	sounds := openSounds(menuMute, logger)
	defer sounds.Cleanup()

	return tui.RunSession(cfg, tui.Deps{Store: store, Sounds: sounds, Logger: logger})
}
