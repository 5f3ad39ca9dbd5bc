package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mazechase/internal/core"
)

// colorStyles maps semantic cell colors to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorWall:          lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorPickup:        lipgloss.NewStyle().Foreground(lipgloss.Color("223")),
	core.ColorPower:         lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorPowerAlt:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorPlayer:        lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorAdversary:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorVulnerable:    lipgloss.NewStyle().Foreground(lipgloss.Color("21")),
	core.ColorVulnerableAlt: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorHUD:           lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	core.ColorDim:           lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorAlert:         lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	core.ColorSuccess:       lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// styleFor falls back to the unstyled default for colors without an entry.
func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}
