package maze

import (
	"strings"

	"github.com/vovakirdan/mazechase/internal/config"
)

// DefaultPlayerName is used when a run ends and no name is given.
const DefaultPlayerName = "Player"

// Phase is the match lifecycle state.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhasePaused
	PhaseTransition
	PhaseLost
	PhaseWon
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseTransition:
		return "transition"
	case PhaseLost:
		return "lost"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name for snapshots.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Match tracks score, lives, level and the end-of-run statistics.
// Pause is a flag on top of the phase, so resuming returns to whatever the
// match was doing.
type Match struct {
	Level      int
	LevelCount int
	Score      int
	Lives      int

	Elapsed        int // ticks of live play
	Invincibility  int
	TransitionLeft int

	RollUp        int
	AnimatedScore int
	FinalSeconds  int
	Bonus         int

	PlayerName string
	Submitted  bool

	phase  Phase
	paused bool
	cfg    config.MazeConfig
}

// NewMatch creates a match over levelCount levels.
func NewMatch(cfg config.MazeConfig, levelCount int) *Match {
	m := &Match{LevelCount: levelCount, cfg: cfg}
	m.ResetForNewGame()
	return m
}

// Phase returns the current state, reporting PhasePaused while paused.
func (m *Match) Phase() Phase {
	if m.paused {
		return PhasePaused
	}
	return m.phase
}

// Started reports whether a level has been started.
func (m *Match) Started() bool { return m.phase != PhaseNotStarted }

// Paused reports whether stepping is suspended.
func (m *Match) Paused() bool { return m.paused }

// Over reports whether the run has ended, lost or won.
func (m *Match) Over() bool { return m.phase == PhaseLost || m.phase == PhaseWon }

// Won reports whether the last level was cleared.
func (m *Match) Won() bool { return m.phase == PhaseWon }

// ResolveLevel maps a requested level to a playable one. Anything outside
// 1..LevelCount falls back to level 1.
func (m *Match) ResolveLevel(n int) int {
	if n < 1 || n > m.LevelCount {
		return 1
	}
	return n
}

// Start begins play on level n and returns the level actually used.
func (m *Match) Start(n int) int {
	m.Level = m.ResolveLevel(n)
	m.phase = PhaseRunning
	m.paused = false
	m.Invincibility = 0
	m.TransitionLeft = 0
	return m.Level
}

// AddScore adds points. Non-positive values are ignored, so the score never
// decreases.
func (m *Match) AddScore(points int) {
	if points > 0 {
		m.Score += points
	}
}

// OnLifeLost takes one life. With lives left it starts the invincibility
// grace and reports true so the caller respawns the player. On the last life
// the match is lost and the final time is frozen.
func (m *Match) OnLifeLost() bool {
	if m.Lives > 0 {
		m.Lives--
	}
	if m.Lives > 0 {
		m.Invincibility = m.cfg.Timing.Invincibility
		return true
	}
	m.FinalSeconds = m.Elapsed / m.cfg.Timing.TickRate
	m.AnimatedScore = m.Score
	m.phase = PhaseLost
	return false
}

// OnLevelCleared advances to the next level through a transition, or wins
// the match after the last level. It reports whether the match was won.
func (m *Match) OnLevelCleared() bool {
	if m.Level < m.LevelCount {
		m.Level++
		m.TransitionLeft = m.cfg.Timing.Transition
		m.phase = PhaseTransition
		return false
	}

	m.FinalSeconds = m.Elapsed / m.cfg.Timing.TickRate
	m.Bonus = max(m.cfg.Scoring.BonusBase-m.FinalSeconds*m.cfg.Scoring.BonusPerSecond, 0)
	m.Score += m.Bonus
	m.AnimatedScore = m.Score - m.Bonus
	m.RollUp = m.cfg.Timing.RollUp
	m.phase = PhaseWon
	return true
}

// Tick advances the match counters by one step. rebuild is true on the
// transition midpoint, when the caller must load the next level. inTransition
// is true on every tick spent in the transition, including the last one, so
// the caller skips capture and win checks on those ticks.
func (m *Match) Tick() (rebuild, inTransition bool) {
	if m.Invincibility > 0 {
		m.Invincibility--
	}
	if m.phase == PhaseRunning {
		m.Elapsed++
	}

	if m.phase == PhaseWon && m.RollUp > 0 {
		m.RollUp--
		step := (m.Bonus + m.cfg.Timing.RollUp - 1) / m.cfg.Timing.RollUp
		m.AnimatedScore = min(m.AnimatedScore+step, m.Score)
		if m.RollUp == 0 {
			m.AnimatedScore = m.Score
		}
	}

	if m.phase != PhaseTransition {
		return false, false
	}
	m.TransitionLeft--
	if m.TransitionLeft == m.cfg.Timing.Transition/2 {
		rebuild = true
	}
	if m.TransitionLeft <= 0 {
		m.TransitionLeft = 0
		m.phase = PhaseRunning
	}
	return rebuild, true
}

// TogglePause flips the pause flag. It has no effect before the match
// starts. It returns the new pause state.
func (m *Match) TogglePause() bool {
	if !m.Started() {
		return false
	}
	m.paused = !m.paused
	return m.paused
}

// PlayerVisible reports whether the player sprite is drawn this tick. During
// the invincibility grace it is hidden for the first half of every blink
// period.
func (m *Match) PlayerVisible() bool {
	blink := m.cfg.Timing.InvincibilityBlink
	return m.Invincibility <= 0 || m.Invincibility%blink >= blink/2
}

// ReadyToSubmit reports whether the run is over, the score display has
// settled and no name has been submitted yet.
func (m *Match) ReadyToSubmit() bool {
	if m.Submitted {
		return false
	}
	return m.phase == PhaseLost || (m.phase == PhaseWon && m.RollUp == 0)
}

// SubmitName records the leaderboard name once per run. Blank names become
// DefaultPlayerName. It returns false if the run is not over or a name was
// already taken.
func (m *Match) SubmitName(name string) (string, bool) {
	if !m.Over() || m.Submitted {
		return "", false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPlayerName
	}
	m.PlayerName = name
	m.Submitted = true
	return name, true
}

// ResetForNewGame restores new-game defaults. The level count is kept.
func (m *Match) ResetForNewGame() {
	*m = Match{
		Level:      1,
		LevelCount: m.LevelCount,
		Lives:      m.cfg.Gameplay.Lives,
		cfg:        m.cfg,
	}
}
