package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/logging"
	"github.com/vovakirdan/mazechase/internal/registry"
	"github.com/vovakirdan/mazechase/internal/storage"
)

const storeTimeout = 3 * time.Second

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// SoundPlayer plays cues for simulation events.
type SoundPlayer interface {
	PlayEvents(events []core.Event) error
	ToggleMute() bool
}

// Deps bundles the collaborators a game model reports to. Any field may be
// nil; the game still runs.
type Deps struct {
	Store  storage.Leaderboard
	Sounds SoundPlayer
	Logger *log.Logger
}

func discardLogger() *log.Logger { return logging.Discard() }

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	deps       Deps
	config     core.RuntimeConfig
	keys       GameKeyMap
	help       help.Model
	prompt     NamePrompt
	inputFrame core.InputFrame
	gameState  core.GameState
	tickGen    int
	ticking    bool
	lastEntry  *storage.ScoreEntry
	status     string
	embedded   bool // back returns to the session menu instead of quitting
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, deps Deps, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if deps.Logger == nil {
		deps.Logger = discardLogger()
	}
	// Drive ticks at the rate the game measures its timers in.
	if cfg.TickRate <= 0 {
		if tr, ok := game.(registry.TickRater); ok {
			cfg.TickRate = tr.TickRate()
		}
	}

	h := help.New()
	h.Width = cfg.ScreenW

	// Reset before the first View; Init has a value receiver and cannot
	// record state.
	game.Reset(cfg)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH)),
		deps:       deps,
		config:     cfg,
		keys:       DefaultGameKeyMap(),
		help:       h,
		prompt:     NewNamePrompt(),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		ticking:    true,
	}
}

// playfieldHeight leaves the bottom row for help or the name prompt.
func playfieldHeight(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.tickGen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompt.Active() {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Gen != m.tickGen || !m.ticking {
			return m, nil
		}
		return m.handleTick()
	}

	if m.prompt.Active() {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionPause:
		return m.togglePause()

	case core.ActionToggleSound:
		if m.deps.Sounds != nil {
			if m.deps.Sounds.ToggleMute() {
				m.status = "sound off"
			} else {
				m.status = "sound on"
			}
		}

	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
			m.lastEntry = nil
			m.status = ""
		}

	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			if m.embedded {
				m.backToMenu = true
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		}

	case core.ActionNone:

	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// togglePause flips the pause flag immediately and stops or restarts the tick
// chain so no step is queued while paused.
func (m Model) togglePause() (tea.Model, tea.Cmd) {
	p, ok := m.game.(registry.Pausable)
	if !ok {
		m.inputFrame.Set(core.ActionPause)
		return m, nil
	}

	was := m.gameState.Paused
	paused := p.TogglePause()
	m.gameState = m.game.State()
	if paused == was {
		return m, nil
	}

	m.tickGen++
	if paused {
		m.ticking = false
		return m, nil
	}
	m.ticking = true
	return m, tickCmd(m.config.TickRate, m.tickGen)
}

// handlePromptKey routes keys to the name prompt.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter, tea.KeyEsc:
		// Esc keeps the default name rather than skipping the entry.
		name := m.prompt.Value()
		if msg.Type == tea.KeyEsc {
			name = ""
		}
		m.prompt.Close()
		m.submitName(name)
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) submitName(name string) {
	ns, ok := m.game.(registry.NameSubmitter)
	if !ok {
		return
	}
	stored, ok := ns.SubmitName(name)
	if !ok {
		return
	}
	m.gameState = m.game.State()
	m.saveScore(stored, m.gameState.Score)
}

func (m *Model) saveScore(name string, score int) {
	if m.deps.Store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	entry, err := m.deps.Store.SubmitScore(ctx, m.game.ID(), name, score)
	if err != nil {
		m.deps.Logger.Error("could not save score", "error", err)
		m.status = "score not saved"
		return
	}
	m.lastEntry = &entry
	if entry.Rank > 0 {
		m.status = fmt.Sprintf("saved as #%d", entry.Rank)
	} else {
		m.status = "saved"
	}
	m.deps.Logger.Info("score saved", "name", entry.Name, "score", entry.Score, "rank", entry.Rank)
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	prev := m.gameState
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	m.reportEvents(result.Events)

	var cmds []tea.Cmd
	if m.gameState.AwaitingName && !m.prompt.Active() {
		cmds = append(cmds, m.prompt.Open())
	}
	// Games without a name step save as soon as the run ends.
	if _, ok := m.game.(registry.NameSubmitter); !ok && m.gameState.GameOver && !prev.GameOver {
		m.saveScore(storage.DefaultName, m.gameState.Score)
	}

	cmds = append(cmds, tickCmd(m.config.TickRate, m.tickGen))
	return m, tea.Batch(cmds...)
}

func (m *Model) reportEvents(events []core.Event) {
	if len(events) == 0 {
		return
	}
	if m.deps.Sounds != nil {
		if err := m.deps.Sounds.PlayEvents(events); err != nil {
			m.deps.Logger.Warn("sound playback failed", "error", err)
		}
	}

	for _, ev := range events {
		switch ev.Kind {
		case core.EventCapture:
			m.deps.Logger.Info("life lost", "lives", m.gameState.Lives, "level", ev.Level)
		case core.EventLevelCleared:
			m.deps.Logger.Info("level cleared", "level", ev.Level, "score", m.gameState.Score)
		case core.EventGameWon:
			m.deps.Logger.Info("game won", "score", m.gameState.Score, "bonus", ev.Points)
		case core.EventGameLost:
			m.deps.Logger.Info("game lost", "score", m.gameState.Score, "level", ev.Level)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".mazechase", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.deps.Logger.Warn("screenshot failed", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.deps.Logger.Warn("screenshot failed", "error", err)
		return
	}
	m.status = "screenshot saved"
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	bottom := m.help.View(m.keys)
	if m.prompt.Active() {
		bottom = m.prompt.View()
	} else if m.status != "" {
		bottom = statusStyle.Render(m.status+"  ") + bottom
	}
	return RenderScreen(m.screen) + "\n" + bottom
}

// State returns the last observed game state.
func (m Model) State() core.GameState { return m.gameState }

// LastEntry returns the leaderboard entry saved for the latest run, if any.
func (m Model) LastEntry() *storage.ScoreEntry { return m.lastEntry }

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if the user requested to go back to the menu.
func (m Model) BackToMenu() bool { return m.backToMenu }

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, deps Deps, cfg core.RuntimeConfig) error {
	model := NewModel(game, deps, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
