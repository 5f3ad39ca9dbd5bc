package maze

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed levels.yaml
var builtinLevelsYAML []byte

// Level is one hand-authored maze template.
type Level struct {
	Name string   `yaml:"name" json:"name"`
	Rows []string `yaml:"rows" json:"rows"`
}

// LevelInfo is a short description of a level for menus and listings.
type LevelInfo struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Cols   int    `json:"cols"`
	Rows   int    `json:"rows"`
}

type levelPack struct {
	Levels []Level `yaml:"levels"`
}

// BuiltinLevels returns the levels shipped with the game.
func BuiltinLevels() []Level {
	levels, err := ParseLevels(builtinLevelsYAML)
	if err != nil {
		panic(fmt.Sprintf("maze: built-in levels: %v", err))
	}
	return levels
}

// LoadLevels reads a YAML level pack. An empty path selects the built-in
// levels.
func LoadLevels(path string) ([]Level, error) {
	if path == "" {
		return BuiltinLevels(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("maze: read levels %s: %w", path, err)
	}
	levels, err := ParseLevels(data)
	if err != nil {
		return nil, fmt.Errorf("maze: levels %s: %w", path, err)
	}
	return levels, nil
}

// ParseLevels decodes and validates a level pack. Every level is checked up
// front so a bad level fails at load time, not mid-game.
func ParseLevels(data []byte) ([]Level, error) {
	var pack levelPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLevel, err)
	}
	if len(pack.Levels) == 0 {
		return nil, fmt.Errorf("%w: pack has no levels", ErrMalformedLevel)
	}
	for i, lvl := range pack.Levels {
		// Any positive tile size exercises the same structural checks.
		if _, err := NewGrid(lvl.Rows, 2); err != nil {
			return nil, fmt.Errorf("level %d (%s): %w", i+1, lvl.Name, err)
		}
		if lvl.Name == "" {
			pack.Levels[i].Name = fmt.Sprintf("Level %d", i+1)
		}
	}
	return pack.Levels, nil
}

// DescribeLevels summarizes levels for listings.
func DescribeLevels(levels []Level) []LevelInfo {
	out := make([]LevelInfo, 0, len(levels))
	for i, lvl := range levels {
		info := LevelInfo{Number: i + 1, Name: lvl.Name, Rows: len(lvl.Rows)}
		if len(lvl.Rows) > 0 {
			info.Cols = len([]rune(lvl.Rows[0]))
		}
		out = append(out, info)
	}
	return out
}
