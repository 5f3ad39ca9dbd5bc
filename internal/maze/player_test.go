package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mazechase/internal/core"
)

func spawnPlayer(t *testing.T, g *Grid) *Player {
	t.Helper()
	spawn, _, err := g.SpawnPositions()
	require.NoError(t, err)
	return NewPlayer(spawn, testConfig())
}

func TestPlayerIsInertUntilRequest(t *testing.T) {
	g := mustGrid(t, corridorLevel.Rows...)
	p := spawnPlayer(t, g)

	assert.False(t, p.MadeFirstMove)
	assert.False(t, p.Update(g))
	assert.Equal(t, 1, p.Frame(), "neutral frame at rest")

	p.Request(DirRight)
	assert.True(t, p.MadeFirstMove)
	assert.True(t, p.Update(g))
	assert.Equal(t, core.Point{X: 34, Y: 32}, p.Pos)
	assert.Equal(t, DirRight, p.Facing)
}

func TestPlayerHaltsAtWallOnNeutralFrame(t *testing.T) {
	g := mustGrid(t, corridorLevel.Rows...)
	p := spawnPlayer(t, g)

	p.Request(DirUp)
	assert.False(t, p.Update(g), "wall above")
	assert.Equal(t, DirNone, p.Dir, "blocked request is not adopted")

	p.Request(DirRight)
	for i := 0; i < 1000; i++ {
		p.Update(g)
	}
	assert.Equal(t, core.Point{X: 11 * 32, Y: 32}, p.Pos, "stops at the last open tile")
	assert.Equal(t, 1, p.Frame())
}

func TestPlayerReversesImmediately(t *testing.T) {
	g := mustGrid(t, corridorLevel.Rows...)
	p := spawnPlayer(t, g)

	p.Request(DirRight)
	for i := 0; i < 5; i++ {
		p.Update(g)
	}
	require.Equal(t, 42, p.Pos.X)

	p.Request(DirLeft)
	assert.Equal(t, DirLeft, p.Dir, "reversal applies mid-tile")
	p.Update(g)
	assert.Equal(t, 40, p.Pos.X)
}

func TestPlayerQueuedTurnWaitsForAlignment(t *testing.T) {
	g := mustGrid(t,
		"######",
		"#P..G#",
		"##.###",
		"######",
	)
	p := spawnPlayer(t, g)

	p.Request(DirRight)
	p.Update(g)
	p.Request(DirDown)

	for p.Pos.X < 64 {
		assert.Equal(t, DirRight, p.Dir, "turn must wait for x=64, at %d", p.Pos.X)
		p.Update(g)
	}
	p.Update(g)
	assert.Equal(t, DirDown, p.Dir)
	assert.Equal(t, core.Point{X: 64, Y: 34}, p.Pos)
}

func TestPlayerAnimationCycle(t *testing.T) {
	g := mustGrid(t,
		"##########",
		"#P......G#",
		"##########",
	)
	p := spawnPlayer(t, g)
	p.Request(DirRight)

	var frames []int
	for i := 0; i < 40; i++ {
		p.Update(g)
		if (i+1)%10 == 0 {
			frames = append(frames, p.Frame())
		}
	}
	assert.Equal(t, []int{2, 1, 0, 1}, frames)
}

func TestOnPickupConsumed(t *testing.T) {
	g := mustGrid(t, corridorLevel.Rows...)
	p := spawnPlayer(t, g)

	assert.Equal(t, 10, p.OnPickupConsumed(PickupPlain, 5))
	assert.False(t, p.Power.Active)
	assert.Equal(t, 0, p.OnPickupConsumed(PickupNone, 5))

	assert.Equal(t, 50, p.OnPickupConsumed(PickupPower, 5))
	assert.True(t, p.Power.Active)
	assert.False(t, p.Power.AboutToExpire)
	assert.Equal(t, testConfig().PowerTicks(), p.Power.Remaining(5))
}

func TestPlayerReset(t *testing.T) {
	g := mustGrid(t, corridorLevel.Rows...)
	p := spawnPlayer(t, g)
	spawn := p.Pos

	p.Request(DirRight)
	for i := 0; i < 7; i++ {
		p.Update(g)
	}
	p.OnPickupConsumed(PickupPower, 7)

	p.Reset(spawn)
	assert.Equal(t, spawn, p.Pos)
	assert.Equal(t, DirNone, p.Dir)
	assert.Equal(t, DirNone, p.Requested)
	assert.False(t, p.MadeFirstMove)
	assert.False(t, p.Power.Active)
	assert.Equal(t, 0, p.Power.Remaining(7))
	assert.Equal(t, 1, p.Frame())
}

// Scenario A: eating every plain pickup of a ten-pickup corridor wins the
// grid and scores exactly 100.
func TestPlayerClearsCorridor(t *testing.T) {
	g := mustGrid(t, corridorLevel.Rows...)
	p := spawnPlayer(t, g)
	require.Equal(t, 10, g.RemainingPickups())

	p.Request(DirRight)
	score := 0
	for tick := 1; tick <= 500; tick++ {
		p.Update(g)
		score += p.OnPickupConsumed(g.ConsumePickupAt(p.Pos.X, p.Pos.Y), tick)
	}

	assert.True(t, g.HasWon())
	assert.Equal(t, 100, score)
}
