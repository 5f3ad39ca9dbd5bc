// Package maze implements the maze-chase simulation: the tile grid, the
// player and adversary entities, the power window, the match state machine
// and the fixed-tick Step that drives them. It has no platform dependencies.
package maze

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/mazechase/internal/config"
	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/registry"
)

const (
	// GameID is the registry and leaderboard identifier.
	GameID = "maze"
	// Title is the display name.
	Title = "Maze Chase"
)

// ErrNoLevels is returned by New for an empty level list.
var ErrNoLevels = errors.New("maze: no levels")

// Game implements the maze-chase game. It is not safe for concurrent use:
// a platform driver owns one Game and calls it from a single goroutine.
type Game struct {
	cfg        config.MazeConfig
	levels     []Level
	startLevel int

	rng   *rand.Rand
	clock int // steps taken while unpaused

	grid        *Grid
	player      *Player
	adversaries []*Adversary
	playerSpawn core.Point
	match       *Match

	powerBlink bool

	events []core.Event
}

// New creates a game over the given levels. Nil levels selects the built-in
// set. The game must be Reset before stepping.
func New(cfg config.MazeConfig, levels []Level) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("maze: %w", err)
	}
	if levels == nil {
		levels = BuiltinLevels()
	}
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	for i, lvl := range levels {
		if _, err := NewGrid(lvl.Rows, cfg.Grid.TileSize); err != nil {
			return nil, fmt.Errorf("maze: level %d: %w", i+1, err)
		}
	}

	g := &Game{
		cfg:        cfg,
		levels:     levels,
		startLevel: 1,
		rng:        rand.New(rand.NewSource(1)),
	}
	g.match = NewMatch(cfg, len(levels))
	return g, nil
}

// NewFromOptions loads config, difficulty and levels the way the registry
// factory does.
func NewFromOptions(opts registry.Options) (*Game, error) {
	cfg, err := config.LoadMaze(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	preset, err := config.ParsePreset(opts.Difficulty)
	if err != nil {
		return nil, err
	}
	config.ApplyMazePreset(&cfg, preset)

	levels, err := LoadLevels(opts.LevelsPath)
	if err != nil {
		return nil, err
	}

	g, err := New(cfg, levels)
	if err != nil {
		return nil, err
	}
	g.startLevel = g.match.ResolveLevel(opts.StartLevel)
	return g, nil
}

func init() {
	registry.Register(GameID, Title, func(opts registry.Options) (registry.Game, error) {
		return NewFromOptions(opts)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return Title
}

// Reset seeds the RNG, adopts the platform tick rate and starts a new run on
// the configured start level.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	if rc.TickRate > 0 && rc.TickRate != g.cfg.Timing.TickRate {
		g.cfg.Timing.TickRate = rc.TickRate
		g.match = NewMatch(g.cfg, len(g.levels))
	}
	g.clock = 0
	g.powerBlink = false

	// Levels were validated in New, so building cannot fail here.
	_ = g.StartLevel(g.startLevel)
}

// StartLevel begins a fresh run on level n. Unknown levels fall back to
// level 1.
func (g *Game) StartLevel(n int) error {
	g.match.ResetForNewGame()
	level := g.match.Start(n)
	if err := g.buildLevel(level); err != nil {
		return fmt.Errorf("maze: start level %d: %w", level, err)
	}
	g.startLevel = level
	return nil
}

// buildLevel replaces the grid and every entity with fresh ones for level n.
func (g *Game) buildLevel(n int) error {
	grid, err := NewGrid(g.levels[n-1].Rows, g.cfg.Grid.TileSize)
	if err != nil {
		return err
	}
	spawn, advSpawns, err := grid.SpawnPositions()
	if err != nil {
		return err
	}

	g.grid = grid
	g.playerSpawn = spawn
	g.player = NewPlayer(spawn, g.cfg)
	g.adversaries = make([]*Adversary, 0, len(advSpawns))
	for _, pos := range advSpawns {
		g.adversaries = append(g.adversaries, NewAdversary(pos, g.cfg, g.rng))
	}
	g.match.Invincibility = 0
	return nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	// Handle restart
	if in.Has(core.ActionRestart) && g.match.Over() {
		_ = g.StartLevel(g.startLevel)
		return g.result()
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.match.TogglePause()
	}
	if g.match.Paused() || !g.match.Started() {
		return g.result()
	}

	if !g.match.Over() {
		g.applyInput(in)
	}

	g.clock++
	g.player.Power.Advance(g.clock)

	if g.live() {
		g.player.Update(g.grid)
		for _, a := range g.adversaries {
			a.Update(g.grid)
		}
		g.resolvePickups()
		g.resolveEating()
	}
	for _, a := range g.adversaries {
		a.ResolveAppearance(g.player.Power)
	}

	rebuild, inTransition := g.match.Tick()
	if rebuild {
		_ = g.buildLevel(g.match.Level)
	}
	if !inTransition && g.match.Phase() == PhaseRunning {
		g.checkCapture()
		g.checkLevelCleared()
	}

	if g.clock%g.cfg.Timing.PowerBlinkPeriod == 0 {
		g.powerBlink = !g.powerBlink
	}

	return g.result()
}

// applyInput turns directional actions into a player request. The most
// recent direction of the frame wins.
func (g *Game) applyInput(in core.InputFrame) {
	if dir := directionFor(in.Last); dir != DirNone && in.Has(in.Last) {
		g.player.Request(dir)
		return
	}
	for _, a := range [...]core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		if in.Has(a) {
			g.player.Request(directionFor(a))
		}
	}
}

// live reports whether entities move this tick: after the first move and
// outside transitions and terminal states.
func (g *Game) live() bool {
	return g.player.MadeFirstMove && g.match.Phase() == PhaseRunning
}

func (g *Game) resolvePickups() {
	kind := g.grid.ConsumePickupAt(g.player.Pos.X, g.player.Pos.Y)
	if kind == PickupNone {
		return
	}
	points := g.player.OnPickupConsumed(kind, g.clock)
	g.match.AddScore(points)

	ev := core.EventPickup
	if kind == PickupPower {
		ev = core.EventPowerPickup
	}
	g.emit(core.Event{Kind: ev, Points: points})
}

func (g *Game) resolveEating() {
	survivors, points, eaten := g.player.ResolveAdversaryContact(g.adversaries)
	if eaten == 0 {
		return
	}
	g.adversaries = survivors
	g.match.AddScore(points)
	for i := 0; i < eaten; i++ {
		g.emit(core.Event{Kind: core.EventAdversaryEaten, Points: points / eaten})
	}
}

// checkCapture takes a life when an adversary touches the player outside
// the power window and the invincibility grace. At most one life per tick.
func (g *Game) checkCapture() {
	if g.player.Power.Active || g.match.Invincibility > 0 {
		return
	}
	captured := false
	for _, a := range g.adversaries {
		if a.Overlaps(g.player) {
			captured = true
			break
		}
	}
	if !captured {
		return
	}

	if g.match.OnLifeLost() {
		g.player.Reset(g.playerSpawn)
		g.emit(core.Event{Kind: core.EventCapture, Level: g.match.Level})
		return
	}
	g.emit(core.Event{Kind: core.EventGameLost, Points: g.match.Score, Level: g.match.Level})
}

func (g *Game) checkLevelCleared() {
	if g.match.Phase() != PhaseRunning || !g.grid.HasWon() {
		return
	}
	cleared := g.match.Level
	if g.match.OnLevelCleared() {
		g.emit(core.Event{Kind: core.EventGameWon, Points: g.match.Bonus, Level: cleared})
		return
	}
	g.emit(core.Event{Kind: core.EventLevelCleared, Level: cleared})
}

func (g *Game) emit(ev core.Event) {
	g.events = append(g.events, ev)
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// TogglePause flips the pause flag outside Step and returns the new state.
func (g *Game) TogglePause() bool {
	return g.match.TogglePause()
}

// SubmitName records the leaderboard name for a finished run.
func (g *Game) SubmitName(name string) (string, bool) {
	return g.match.SubmitName(name)
}

// TickRate is the simulation rate all tick-based timings are measured in.
func (g *Game) TickRate() int {
	return g.cfg.Timing.TickRate
}

// LevelNames returns the names of all levels in order.
func (g *Game) LevelNames() []string {
	names := make([]string, len(g.levels))
	for i, lvl := range g.levels {
		names[i] = lvl.Name
	}
	return names
}

// Config returns the effective configuration.
func (g *Game) Config() config.MazeConfig {
	return g.cfg
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:        g.match.Score,
		Lives:        g.match.Lives,
		Level:        g.match.Level,
		GameOver:     g.match.Over(),
		Won:          g.match.Won(),
		Paused:       g.match.Paused(),
		AwaitingName: g.match.ReadyToSubmit(),
	}
}
