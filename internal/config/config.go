// Package config provides YAML-based game configuration loading and
// difficulty presets for mazechase.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate for unusable values.
var ErrInvalidConfig = errors.New("invalid config")

// MazeConfig contains all tunables of the maze simulation. It is passed by
// value into constructors and never mutated while a game runs.
type MazeConfig struct {
	Grid     GridConfig     `yaml:"grid"`
	Timing   TimingConfig   `yaml:"timing"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Gameplay GameplayConfig `yaml:"gameplay"`
}

// GridConfig defines tile geometry in simulation pixels.
type GridConfig struct {
	TileSize int `yaml:"tile_size"`
	Velocity int `yaml:"velocity"` // pixels per tick
}

// TimingConfig defines every countdown of the simulation, in ticks unless
// the name says seconds.
type TimingConfig struct {
	TickRate           int `yaml:"tick_rate"`
	PowerSeconds       int `yaml:"power_seconds"`
	WarningSeconds     int `yaml:"warning_seconds"`
	Invincibility      int `yaml:"invincibility"`
	Transition         int `yaml:"transition"`
	RollUp             int `yaml:"roll_up"`
	FlashPeriod        int `yaml:"flash_period"`
	AnimationPeriod    int `yaml:"animation_period"`
	PowerBlinkPeriod   int `yaml:"power_blink_period"`
	InvincibilityBlink int `yaml:"invincibility_blink"`
}

// ScoringConfig defines point rewards.
type ScoringConfig struct {
	Pickup         int `yaml:"pickup"`
	PowerPickup    int `yaml:"power_pickup"`
	Adversary      int `yaml:"adversary"`
	BonusBase      int `yaml:"bonus_base"`
	BonusPerSecond int `yaml:"bonus_per_second"`
}

// GameplayConfig defines rules that are not about time or points.
type GameplayConfig struct {
	Lives           int `yaml:"lives"`
	DirectionMin    int `yaml:"direction_min"` // adversary countdown bound, lower
	DirectionMax    int `yaml:"direction_max"` // adversary countdown bound, upper
	LeaderboardSize int `yaml:"leaderboard_size"`
}

// PowerTicks returns the length of the power window in ticks.
func (c MazeConfig) PowerTicks() int {
	return c.Timing.PowerSeconds * c.Timing.TickRate
}

// WarningTicks returns the offset of the expiry warning in ticks.
func (c MazeConfig) WarningTicks() int {
	return c.Timing.WarningSeconds * c.Timing.TickRate
}

// Validate checks the invariants the simulation depends on.
func (c MazeConfig) Validate() error {
	switch {
	case c.Grid.TileSize <= 0 || c.Grid.Velocity <= 0:
		return fmt.Errorf("%w: tile_size and velocity must be positive", ErrInvalidConfig)
	case c.Grid.TileSize%c.Grid.Velocity != 0:
		return fmt.Errorf("%w: velocity %d does not divide tile_size %d",
			ErrInvalidConfig, c.Grid.Velocity, c.Grid.TileSize)
	case c.Grid.TileSize%2 != 0:
		return fmt.Errorf("%w: tile_size must be even", ErrInvalidConfig)
	case c.Timing.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate must be positive", ErrInvalidConfig)
	case c.Timing.PowerSeconds <= 0:
		return fmt.Errorf("%w: power_seconds must be positive", ErrInvalidConfig)
	case c.Timing.WarningSeconds <= 0 || c.Timing.WarningSeconds >= c.Timing.PowerSeconds:
		return fmt.Errorf("%w: warning_seconds must be in (0, power_seconds)", ErrInvalidConfig)
	case c.Timing.Transition < 2 || c.Timing.RollUp <= 0:
		return fmt.Errorf("%w: transition and roll_up are too short", ErrInvalidConfig)
	case c.Timing.FlashPeriod <= 0 || c.Timing.AnimationPeriod <= 0 ||
		c.Timing.PowerBlinkPeriod <= 0 || c.Timing.InvincibilityBlink <= 0:
		return fmt.Errorf("%w: periods must be positive", ErrInvalidConfig)
	case c.Gameplay.Lives <= 0:
		return fmt.Errorf("%w: lives must be positive", ErrInvalidConfig)
	case c.Gameplay.DirectionMin <= 0 || c.Gameplay.DirectionMax < c.Gameplay.DirectionMin:
		return fmt.Errorf("%w: direction bounds %d..%d",
			ErrInvalidConfig, c.Gameplay.DirectionMin, c.Gameplay.DirectionMax)
	case c.Gameplay.LeaderboardSize <= 0:
		return fmt.Errorf("%w: leaderboard_size must be positive", ErrInvalidConfig)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)
