package maze

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mazechase/internal/config"
	"github.com/vovakirdan/mazechase/internal/core"
)

// corridorLevel is a straight corridor with ten pickups. Its adversary is
// sealed in a pocket so it can never reach the player.
var corridorLevel = Level{
	Name: "Corridor",
	Rows: []string{
		"##############",
		"#P..........##",
		"############G#",
		"##############",
	},
}

func testConfig() config.MazeConfig {
	return config.DefaultMazeConfig()
}

func newTestGame(t *testing.T, levels ...Level) *Game {
	t.Helper()
	var lv []Level
	if len(levels) > 0 {
		lv = levels
	}
	g, err := New(testConfig(), lv)
	require.NoError(t, err)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 42})
	return g
}

func press(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func hasEvent(events []core.Event, kind core.EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func mustGrid(t *testing.T, rows ...string) *Grid {
	t.Helper()
	g, err := NewGrid(rows, testConfig().Grid.TileSize)
	require.NoError(t, err)
	return g
}
