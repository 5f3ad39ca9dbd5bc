// mazechase is a maze-chase arcade game for the terminal, SSH and the browser.
//
// Usage:
//
//	mazechase play            - Play in the terminal
//	mazechase menu            - Level select, game and scoreboard
//	mazechase list            - List registered games
//	mazechase levels          - List levels and their sizes
//	mazechase scores          - Show the leaderboard
//	mazechase serve           - Start the SSH server
//	mazechase web             - Start the websocket server
//
// Global flags:
//
//	--fps <rate>        - Override the tick rate (default: the game's own)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <dsn>          - SQLite path, postgres:// URL or :memory:
//	--log-level <name>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/mazechase/internal/maze"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagConfig     string
	flagDifficulty string
	flagLevels     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mazechase",
	Short: "Maze Chase - eat every pickup, dodge the ghosts",
	Long: `Maze Chase is a maze-chase arcade game. Clear every pickup on each
level while adversaries roam the corridors. A power pickup turns the
tables for a few seconds.

Available commands:
  play     - Play directly in this terminal
  menu     - Level select menu with scoreboard
  list     - Show registered games
  levels   - Show level names and sizes
  scores   - View high scores
  serve    - Start SSH server for remote play
  web      - Start websocket server for browser clients

Examples:
  mazechase play
  mazechase play --level 2 --difficulty easy
  mazechase menu
  mazechase serve --ssh :2222
  mazechase web --addr :8080 --db postgres://localhost/mazechase`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mazechase/scores.db", "Scores database: SQLite path, postgres:// URL or :memory:")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom maze config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Path to a level pack YAML")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}
