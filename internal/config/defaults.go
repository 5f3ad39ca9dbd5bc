package config

import (
	_ "embed"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// DefaultMazeConfig returns the default maze configuration. It matches the
// embedded defaults/maze.yaml.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Grid: GridConfig{
			TileSize: 32,
			Velocity: 2,
		},
		Timing: TimingConfig{
			TickRate:           75,
			PowerSeconds:       6,
			WarningSeconds:     3,
			Invincibility:      75,
			Transition:         150,
			RollUp:             75,
			FlashPeriod:        10,
			AnimationPeriod:    10,
			PowerBlinkPeriod:   30,
			InvincibilityBlink: 10,
		},
		Scoring: ScoringConfig{
			Pickup:         10,
			PowerPickup:    50,
			Adversary:      200,
			BonusBase:      10000,
			BonusPerSecond: 100,
		},
		Gameplay: GameplayConfig{
			Lives:           3,
			DirectionMin:    1,
			DirectionMax:    20,
			LeaderboardSize: 10,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML, used by `config dump`
// style tooling and tests.
func GetDefaultYAML() []byte {
	return defaultMazeYAML
}
