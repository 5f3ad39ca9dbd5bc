package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mazechase/internal/config"
	"github.com/vovakirdan/mazechase/internal/core"
)

func TestNewValidates(t *testing.T) {
	bad := config.DefaultMazeConfig()
	bad.Grid.Velocity = 3
	_, err := New(bad, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = New(config.DefaultMazeConfig(), []Level{})
	assert.ErrorIs(t, err, ErrNoLevels)

	_, err = New(config.DefaultMazeConfig(), []Level{{Name: "bad", Rows: []string{"#"}}})
	assert.ErrorIs(t, err, ErrMalformedLevel)
}

func TestResetStartsFirstLevel(t *testing.T) {
	g := newTestGame(t)

	s := g.Snapshot()
	assert.Equal(t, PhaseRunning, s.Phase)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 3, s.LevelCount)
	assert.Equal(t, "Entrance", s.LevelName)
	assert.Equal(t, 3, s.Lives)
	assert.Len(t, s.Adversaries, 3)
	assert.False(t, s.Player.MadeFirstMove)
	assert.Equal(t, []string{"Entrance", "Corridors", "Labyrinth"}, g.LevelNames())
}

func TestStartLevelFallsBackToFirst(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.StartLevel(2))
	assert.Equal(t, 2, g.State().Level)

	require.NoError(t, g.StartLevel(42))
	assert.Equal(t, 1, g.State().Level)
}

func TestNothingMovesBeforeFirstInput(t *testing.T) {
	g := newTestGame(t)
	before := g.Snapshot()
	for i := 0; i < 50; i++ {
		g.Step(idle())
	}
	after := g.Snapshot()

	assert.Equal(t, before.Player, after.Player)
	assert.Equal(t, before.Adversaries, after.Adversaries)
	assert.Equal(t, before.Grid.Cells, after.Grid.Cells)
}

func TestPauseStopsSimulation(t *testing.T) {
	g := newTestGame(t)
	g.Step(press(core.ActionLeft))
	for i := 0; i < 5; i++ {
		g.Step(idle())
	}

	res := g.Step(press(core.ActionPause))
	require.True(t, res.State.Paused)
	frozen := g.Snapshot()

	for i := 0; i < 100; i++ {
		g.Step(press(core.ActionRight))
	}
	assert.Equal(t, frozen, g.Snapshot(), "no step runs while paused")

	assert.False(t, g.TogglePause())
	g.Step(idle())
	assert.Equal(t, frozen.Tick+1, g.Snapshot().Tick)
}

// Scenario A at game level: the ten pickups of the corridor score exactly
// 100 and clear the level.
func TestCorridorClearStartsTransition(t *testing.T) {
	g := newTestGame(t, corridorLevel, corridorLevel)

	pickups, cleared := 0, false
	for i := 0; i < 500 && !cleared; i++ {
		in := idle()
		if i == 0 {
			in = press(core.ActionRight)
		}
		res := g.Step(in)
		for _, ev := range res.Events {
			switch ev.Kind {
			case core.EventPickup:
				pickups++
			case core.EventLevelCleared:
				cleared = true
				assert.Equal(t, 1, ev.Level)
			}
		}
	}

	require.True(t, cleared)
	assert.Equal(t, 10, pickups)
	assert.Equal(t, 100, g.State().Score)
	assert.Equal(t, PhaseTransition, g.Snapshot().Phase)
	assert.Equal(t, 2, g.State().Level)

	for i := 0; i < 150; i++ {
		g.Step(idle())
	}
	s := g.Snapshot()
	assert.Equal(t, PhaseRunning, s.Phase)
	assert.Equal(t, 10, s.Grid.Remaining, "level rebuilt at the midpoint")
	assert.False(t, s.Player.MadeFirstMove)
	assert.Equal(t, 100, s.Score)
}

func TestClearingLastLevelWins(t *testing.T) {
	g := newTestGame(t, corridorLevel)

	g.Step(press(core.ActionRight))
	var won *core.Event
	for i := 0; i < 500 && won == nil; i++ {
		res := g.Step(idle())
		for _, ev := range res.Events {
			if ev.Kind == core.EventGameWon {
				e := ev
				won = &e
			}
		}
	}

	require.NotNil(t, won)
	s := g.Snapshot()
	assert.Equal(t, PhaseWon, s.Phase)
	assert.Equal(t, max(10000-s.FinalSeconds*100, 0), s.Bonus)
	assert.Equal(t, s.Bonus, won.Points)
	assert.Equal(t, 100+s.Bonus, s.Score)
	assert.True(t, g.State().Won)
	assert.True(t, g.State().GameOver)
}

// Scenario B: mid-window contact eats the adversary.
func TestPowerWindowEatsAdversary(t *testing.T) {
	g := newTestGame(t, corridorLevel)
	g.player.MadeFirstMove = true
	g.player.Power.Activate(g.clock)
	activatedAt := g.clock

	for g.clock < activatedAt+184 {
		g.Step(idle())
	}
	g.adversaries[0].Pos = g.player.Pos
	res := g.Step(idle())

	require.Equal(t, activatedAt+185, g.clock)
	assert.True(t, g.player.Power.Active)
	assert.Empty(t, g.adversaries)
	assert.Equal(t, 200, res.State.Score)
	assert.Equal(t, 3, res.State.Lives)
	assert.True(t, hasEvent(res.Events, core.EventAdversaryEaten))
	assert.False(t, hasEvent(res.Events, core.EventCapture))
}

func TestCaptureWithoutPower(t *testing.T) {
	g := newTestGame(t, corridorLevel)
	spawn := g.player.Pos
	g.player.Pos = spawn.Add(core.Point{X: 64})
	g.adversaries[0].Pos = g.player.Pos

	res := g.Step(idle())
	assert.True(t, hasEvent(res.Events, core.EventCapture))
	assert.False(t, hasEvent(res.Events, core.EventAdversaryEaten))
	assert.Equal(t, 2, res.State.Lives)
	assert.Equal(t, 0, res.State.Score)
	assert.Len(t, g.adversaries, 1)
	assert.Equal(t, spawn, g.player.Pos, "player respawned")
	assert.Equal(t, 75, g.match.Invincibility)

	// The grace suppresses a second capture.
	g.adversaries[0].Pos = g.player.Pos
	res = g.Step(idle())
	assert.False(t, hasEvent(res.Events, core.EventCapture))
	assert.Equal(t, 2, res.State.Lives)
}

// Scenario C: a capture on the last life ends the run.
func TestCaptureOnLastLifeLoses(t *testing.T) {
	g := newTestGame(t, corridorLevel)
	g.match.Lives = 1
	g.match.Elapsed = 10*75 - 1
	g.adversaries[0].Pos = g.player.Pos

	res := g.Step(idle())
	assert.True(t, hasEvent(res.Events, core.EventGameLost))
	assert.Equal(t, 0, res.State.Lives)
	assert.True(t, res.State.GameOver)
	assert.False(t, res.State.Won)
	assert.True(t, res.State.AwaitingName)
	assert.Equal(t, 10, g.match.FinalSeconds)

	name, ok := g.SubmitName("")
	assert.True(t, ok)
	assert.Equal(t, DefaultPlayerName, name)
	assert.False(t, g.State().AwaitingName)

	res = g.Step(press(core.ActionRestart))
	assert.False(t, res.State.GameOver)
	assert.Equal(t, 3, res.State.Lives)
	assert.Equal(t, 0, res.State.Score)
}

func TestGameInvariantsUnderRandomPlay(t *testing.T) {
	dirs := []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}

	for seed := int64(1); seed <= 5; seed++ {
		g := newTestGame(t)
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: seed})
		input := rand.New(rand.NewSource(seed * 100))
		ts := g.cfg.Grid.TileSize

		grid := g.grid
		remaining := grid.RemainingPickups()
		score := 0
		lives := g.match.Lives

		for tick := 0; tick < 3000; tick++ {
			in := idle()
			if tick%15 == 0 {
				in = press(dirs[input.Intn(len(dirs))])
			}
			res := g.Step(in)

			if g.grid != grid {
				grid, remaining = g.grid, g.grid.RemainingPickups()
			}
			require.LessOrEqual(t, grid.RemainingPickups(), remaining, "pickups reappeared")
			remaining = grid.RemainingPickups()
			require.Equal(t, remaining == 0, grid.HasWon())

			require.GreaterOrEqual(t, res.State.Score, score, "score decreased")
			score = res.State.Score
			require.GreaterOrEqual(t, res.State.Lives, 0)
			require.LessOrEqual(t, lives-res.State.Lives, 1, "more than one life lost in a tick")
			lives = res.State.Lives
			require.False(t, hasEvent(res.Events, core.EventCapture) && hasEvent(res.Events, core.EventAdversaryEaten))

			require.True(t, g.player.Pos.X%ts == 0 || g.player.Pos.Y%ts == 0, "player off-grid at %+v", g.player.Pos)
			for _, a := range g.adversaries {
				require.True(t, a.Pos.X%ts == 0 || a.Pos.Y%ts == 0, "adversary off-grid at %+v", a.Pos)
			}

			if res.State.GameOver {
				g.Step(press(core.ActionRestart))
				grid, remaining = g.grid, g.grid.RemainingPickups()
				score, lives = 0, g.match.Lives
			}
		}
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() []Snapshot {
		g := newTestGame(t)
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 99})
		script := map[int]core.Action{0: core.ActionLeft, 40: core.ActionDown, 120: core.ActionRight, 300: core.ActionUp}

		var out []Snapshot
		for tick := 0; tick < 600; tick++ {
			in := idle()
			if a, ok := script[tick]; ok {
				in = press(a)
			}
			g.Step(in)
			if tick%50 == 0 {
				out = append(out, g.Snapshot())
			}
		}
		return out
	}

	assert.Equal(t, run(), run())
}

func TestRuntimeTickRateOverridesConfig(t *testing.T) {
	g, err := New(testConfig(), nil)
	require.NoError(t, err)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1})

	assert.Equal(t, 30, g.Config().Timing.TickRate)
	assert.Equal(t, 30, g.TickRate())
	g.player.Power.Activate(0)
	assert.Equal(t, 180, g.player.Power.Remaining(0))
}

func TestTickRateFollowsConfigWithoutOverride(t *testing.T) {
	cfg := testConfig()
	cfg.Timing.TickRate = 30
	g, err := New(cfg, nil)
	require.NoError(t, err)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})

	assert.Equal(t, 30, g.TickRate())
	g.player.Power.Activate(0)
	assert.Equal(t, 6*30, g.player.Power.Remaining(0))
}
