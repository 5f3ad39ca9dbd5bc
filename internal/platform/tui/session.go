package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/registry"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionConfig describes which game a session plays and how to build it.
type SessionConfig struct {
	GameID  string
	Title   string
	Levels  []string
	Options registry.Options
	Runtime core.RuntimeConfig
}

// SessionModel manages the full session flow: level select, game and
// scoreboard, looping back to the menu. It backs both the local menu command
// and every SSH session.
type SessionModel struct {
	cfg        SessionConfig
	deps       Deps
	screen     sessionScreen
	menu       MenuModel
	game       *Model
	scoreboard ScoreboardModel
	err        error
	quitting   bool
}

// NewSessionModel creates a session that starts on the level select screen.
func NewSessionModel(cfg SessionConfig, deps Deps) SessionModel {
	if deps.Logger == nil {
		deps.Logger = discardLogger()
	}
	var err error
	if len(cfg.Levels) == 0 {
		cfg.Levels, err = LevelNames(cfg)
		if err != nil {
			deps.Logger.Error("could not list levels", "error", err)
		}
	}
	return SessionModel{
		cfg:  cfg,
		deps: deps,
		menu: NewMenuModel(cfg.Title, cfg.Levels, cfg.Runtime),
		err:  err,
	}
}

// LevelNames asks a fresh instance of the session's game for its levels.
// Games without selectable levels return nil.
func LevelNames(cfg SessionConfig) ([]string, error) {
	game, err := registry.Create(cfg.GameID, cfg.Options)
	if err != nil {
		return nil, err
	}
	if ll, ok := game.(registry.LevelLister); ok {
		return ll.LevelNames(), nil
	}
	return nil, nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.cfg.Runtime.ScreenW = wsm.Width
		m.cfg.Runtime.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// The child models return tea.Quit when they finish; inside a session that
// only means "leave this screen", so their commands are dropped at that point.

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.openScores("")
		return m, nil

	case m.menu.Selected() != nil:
		return m.startGame(m.menu.Selected().Level)
	}

	return m, cmd
}

func (m SessionModel) startGame(level int) (tea.Model, tea.Cmd) {
	opts := m.cfg.Options
	opts.StartLevel = level

	game, err := registry.Create(m.cfg.GameID, opts)
	if err != nil {
		m.err = err
		m.deps.Logger.Error("could not create game", "error", err)
		m.resetMenu()
		return m, nil
	}

	rc := m.cfg.Runtime
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	gm := NewModel(game, m.deps, rc)
	gm.embedded = true
	m.game = &gm
	m.screen = screenGame
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(Model); ok {
		m.game = &gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		var runID string
		if e := m.game.LastEntry(); e != nil {
			runID = e.RunID
		}
		m.game = nil
		if runID != "" {
			m.openScores(runID)
			return m, nil
		}
		m.resetMenu()
		return m, nil
	}

	return m, cmd
}

func (m *SessionModel) openScores(highlight string) {
	m.scoreboard = NewScoreboardModel(m.deps.Store, m.cfg.GameID, m.cfg.Title, m.cfg.Runtime.ScreenW, m.cfg.Runtime.ScreenH)
	if highlight != "" {
		m.scoreboard.Highlight(highlight)
	}
	m.screen = screenScores
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sm
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		m.resetMenu()
		return m, nil
	}
	return m, cmd
}

func (m *SessionModel) resetMenu() {
	m.menu = NewMenuModel(m.cfg.Title, m.cfg.Levels, m.cfg.Runtime)
	m.screen = screenMenu
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	}

	view := m.menu.View()
	if m.err != nil {
		view += "\n" + centerText(statusStyle.Render(m.err.Error()), m.cfg.Runtime.ScreenW)
	}
	return view
}

// RunSession runs the menu flow in the local terminal.
func RunSession(cfg SessionConfig, deps Deps) error {
	p := tea.NewProgram(NewSessionModel(cfg, deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunScoreboard shows the leaderboard on its own.
func RunScoreboard(cfg SessionConfig, deps Deps) error {
	m := NewScoreboardModel(deps.Store, cfg.GameID, cfg.Title, cfg.Runtime.ScreenW, cfg.Runtime.ScreenH)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
