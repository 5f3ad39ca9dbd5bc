package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/mazechase/internal/audio"
	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/logging"
	"github.com/vovakirdan/mazechase/internal/maze"
	"github.com/vovakirdan/mazechase/internal/platform/tui"
	"github.com/vovakirdan/mazechase/internal/registry"
	"github.com/vovakirdan/mazechase/internal/storage"
)

// gameOptions collects the shared game flags.
func gameOptions(startLevel int) registry.Options {
	return registry.Options{
		StartLevel: startLevel,
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
		LevelsPath: flagLevels,
	}
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW, rc.ScreenH = w, h
	}
	rc.TickRate = flagFPS
	rc.Seed = flagSeed
	return rc
}

// stderrLogger is used by the server commands.
func stderrLogger(prefix string) (*log.Logger, error) {
	return logging.New(flagLogLevel, prefix, os.Stderr)
}

// fileLogger keeps log output off the alt screen. The returned closer must be
// called on exit.
func fileLogger() (*log.Logger, io.Closer, error) {
	f, err := logging.OpenFile(logging.DefaultLogFile)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(flagLogLevel, "mazechase", f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

// openStore opens the leaderboard. Failures are logged and the game runs
// without one.
func openStore(ctx context.Context, logger *log.Logger) storage.Leaderboard {
	store, err := storage.Open(ctx, flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "db", flagDBPath, "error", err)
		return nil
	}
	return store
}

// openSounds starts the speaker unless muted. A manager that failed to open
// the device stays silent but still tracks the mute toggle.
func openSounds(muted bool, logger *log.Logger) *audio.SoundManager {
	sm := audio.NewSoundManager(muted)
	if muted {
		return sm
	}
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio unavailable", "error", err)
	}
	return sm
}

// sessionConfig describes the maze game for menu, SSH and scoreboard screens.
func sessionConfig(rc core.RuntimeConfig) (tui.SessionConfig, error) {
	cfg := tui.SessionConfig{
		GameID:  maze.GameID,
		Title:   maze.Title,
		Options: gameOptions(0),
		Runtime: rc,
	}
	names, err := tui.LevelNames(cfg)
	if err != nil {
		return tui.SessionConfig{}, err
	}
	cfg.Levels = names
	return cfg, nil
}
