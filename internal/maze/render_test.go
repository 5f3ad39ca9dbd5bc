package maze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/mazechase/internal/core"
)

func TestRenderDrawsHUDAndMaze(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	assert.Contains(t, screen.Row(0), "Score: 0")
	assert.Contains(t, screen.Row(0), "Level: 1/3")
	assert.Contains(t, out, "██")
	assert.Contains(t, out, "Press an arrow key to start")
	assert.Equal(t, 3, strings.Count(out, "Ω"))
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(20, 8)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Window too small")
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)

	g.TogglePause()
	g.Render(screen)
	assert.Contains(t, screen.String(), "Paused")
	g.TogglePause()

	g.match.Lives = 1
	g.adversaries[0].Pos = g.player.Pos
	g.Step(idle())
	g.Render(screen)
	assert.Contains(t, screen.String(), "Game Over")
}

func TestPlayerGlyphs(t *testing.T) {
	assert.Equal(t, 'O', playerGlyph(DirLeft, 0))
	assert.Equal(t, 'C', playerGlyph(DirRight, 2))
	assert.Equal(t, 'c', playerGlyph(DirRight, 1))
	assert.Equal(t, 'Ɔ', playerGlyph(DirLeft, 2))
	assert.Equal(t, 'U', playerGlyph(DirUp, 2))
	assert.Equal(t, 'n', playerGlyph(DirDown, 1))
}

func TestTransitionFade(t *testing.T) {
	assert.Equal(t, float32(1), transitionFade(0, 150))
	assert.InDelta(t, 1, transitionFade(150, 150), 0.01)
	assert.InDelta(t, 0, transitionFade(75, 150), 0.01)
	assert.InDelta(t, 1, transitionFade(1, 150), 0.05)
}
