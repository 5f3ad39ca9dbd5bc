package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxNameLength = 16

var promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)

// NamePrompt collects the leaderboard name once a run is over.
type NamePrompt struct {
	input  textinput.Model
	active bool
}

// NewNamePrompt returns an inactive prompt.
func NewNamePrompt() NamePrompt {
	ti := textinput.New()
	ti.Placeholder = "Player"
	ti.Prompt = "Name: "
	ti.CharLimit = maxNameLength
	ti.Width = maxNameLength + 1
	return NamePrompt{input: ti}
}

// Open focuses the prompt with an empty value.
func (p *NamePrompt) Open() tea.Cmd {
	p.active = true
	p.input.SetValue("")
	return p.input.Focus()
}

// Close blurs the prompt.
func (p *NamePrompt) Close() {
	p.active = false
	p.input.Blur()
}

// Active reports whether the prompt is taking keystrokes.
func (p NamePrompt) Active() bool { return p.active }

// Value returns the typed name.
func (p NamePrompt) Value() string { return p.input.Value() }

// Update forwards a message to the text input.
func (p NamePrompt) Update(msg tea.Msg) (NamePrompt, tea.Cmd) {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View renders the prompt line.
func (p NamePrompt) View() string {
	return promptStyle.Render("New score! ") + p.input.View() + "  (enter to save)"
}
