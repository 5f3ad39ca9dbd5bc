package config

import (
	"fmt"
	"strings"
)

// ParsePreset maps a flag value to a DifficultyPreset. The empty string
// means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", s)
	}
}

// ApplyMazePreset modifies the config based on a difficulty preset.
// Normal and fixed leave the loaded values untouched.
func ApplyMazePreset(cfg *MazeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Timing.PowerSeconds = 8
		cfg.Timing.WarningSeconds = 5
		cfg.Gameplay.DirectionMax = 30
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Timing.PowerSeconds = 4
		cfg.Timing.WarningSeconds = 2
		cfg.Gameplay.DirectionMax = 10
	}
}
