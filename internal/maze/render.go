package maze

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/mazechase/internal/core"
)

const (
	hudHeight = 2 // status line and separator
	tileCols  = 2 // terminal columns per tile
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.grid == nil {
		return
	}
	s := g.Snapshot()

	g.renderHUD(dst, s)

	mapW := s.Grid.Cols * tileCols
	mapH := s.Grid.Rows
	if dst.Width() < mapW || dst.Height() < mapH+hudHeight {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", mapW, mapH+hudHeight))
		return
	}
	offX := (dst.Width() - mapW) / 2
	offY := hudHeight + (dst.Height()-hudHeight-mapH)/2

	fade := transitionFade(s.TransitionLeft, g.cfg.Timing.Transition)
	if fade > 0.2 {
		dim := fade < 0.6
		renderGrid(dst, s, offX, offY, dim)
		if !dim {
			renderEntities(dst, s, offX, offY)
		}
	}

	// Draw overlays
	switch s.Phase {
	case PhaseTransition:
		renderOverlay(dst, fmt.Sprintf("Level %d", s.Level), s.LevelName)
	case PhaseWon:
		renderOverlay(dst, "You Win!",
			fmt.Sprintf("Score %d | Bonus %d | Time %ds", s.AnimatedScore, s.Bonus, s.FinalSeconds),
			"Press R to play again")
	case PhaseLost:
		renderOverlay(dst, "Game Over",
			fmt.Sprintf("Score %d | Time %ds", s.Score, s.FinalSeconds),
			"Press R to restart")
	case PhasePaused:
		renderOverlay(dst, "Paused", "Press P to continue")
	case PhaseRunning:
		if !s.Player.MadeFirstMove && offY+mapH < dst.Height() {
			dst.DrawTextCentered(offY+mapH, "Press an arrow key to start", core.ColorDim)
		}
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen, s Snapshot) {
	score := s.Score
	if s.Phase == PhaseWon {
		score = s.AnimatedScore
	}
	hud := fmt.Sprintf(" %s | Score: %d  Lives: %s  Level: %d/%d  Time: %ds",
		Title, score, strings.Repeat("♥", s.Lives), s.Level, s.LevelCount, s.ElapsedSeconds)
	dst.DrawTextColored(0, 0, hud, core.ColorHUD)

	if s.Power.Active {
		secs := (s.Power.RemainingTicks + g.cfg.Timing.TickRate - 1) / g.cfg.Timing.TickRate
		label := fmt.Sprintf("POWER %ds ", secs)
		color := core.ColorPower
		if s.Power.AboutToExpire {
			color = core.ColorAlert
		}
		dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(label), 0, label, color)
	}

	// Draw separator
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorDim)
}

// transitionFade returns the map brightness in [0, 1] for a transition
// countdown: easing out over the first half, back in over the second.
func transitionFade(left, total int) float32 {
	if left <= 0 || total <= 0 {
		return 1
	}
	half := float32(total) / 2
	elapsed := float32(total - left)

	if elapsed < half {
		v, _ := gween.New(1, 0, half, ease.InOutQuad).Update(elapsed)
		return v
	}
	v, _ := gween.New(0, 1, half, ease.InOutQuad).Update(elapsed - half)
	return v
}

func renderGrid(dst *core.Screen, s Snapshot, offX, offY int, dim bool) {
	for y, row := range s.Grid.Cells {
		x := 0
		for _, r := range row {
			sx := offX + x*tileCols
			sy := offY + y
			switch r {
			case glyphWall:
				c := core.ColorWall
				if dim {
					c = core.ColorDim
				}
				dst.SetColored(sx, sy, '█', c)
				dst.SetColored(sx+1, sy, '█', c)
			case glyphPickup:
				c := core.ColorPickup
				if dim {
					c = core.ColorDim
				}
				dst.SetColored(sx, sy, '·', c)
			case glyphPowerPickup:
				glyph, c := '●', core.ColorPower
				if s.PowerBlink {
					glyph, c = '○', core.ColorPowerAlt
				}
				if dim {
					c = core.ColorDim
				}
				dst.SetColored(sx, sy, glyph, c)
			}
			x++
		}
	}
}

func renderEntities(dst *core.Screen, s Snapshot, offX, offY int) {
	ts := s.Grid.TileSize

	for _, a := range s.Adversaries {
		sx, sy := toScreen(a.X, a.Y, ts, offX, offY)
		glyph, c := 'Ω', core.ColorAdversary
		switch a.Appearance {
		case AppearanceVulnerable:
			glyph, c = 'ω', core.ColorVulnerable
		case AppearanceVulnerableAlt:
			glyph, c = 'ω', core.ColorVulnerableAlt
		}
		dst.SetColored(sx, sy, glyph, c)
	}

	if s.PlayerVisible {
		sx, sy := toScreen(s.Player.X, s.Player.Y, ts, offX, offY)
		dst.SetColored(sx, sy, playerGlyph(s.Player.Facing, s.Player.Frame), core.ColorPlayer)
	}
}

// toScreen maps pixel coordinates to the nearest terminal cell. Horizontal
// movement has half-tile resolution because tiles are two columns wide.
func toScreen(x, y, tileSize, offX, offY int) (int, int) {
	sx := offX + core.FloorDiv(x*tileCols+tileSize/2, tileSize)
	sy := offY + core.FloorDiv(y+tileSize/2, tileSize)
	return sx, sy
}

// playerGlyph picks the sprite for a facing and mouth frame.
func playerGlyph(facing Direction, frame int) rune {
	if frame == 0 {
		return 'O'
	}
	open := frame == 2
	switch facing {
	case DirLeft:
		if open {
			return 'Ɔ'
		}
		return 'ɔ'
	case DirUp:
		if open {
			return 'U'
		}
		return 'u'
	case DirDown:
		if open {
			return '∩'
		}
		return 'n'
	default:
		if open {
			return 'C'
		}
		return 'c'
	}
}

// renderOverlay draws a centered box with one line per message.
func renderOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(l))
	}
	boxW := maxLen + 4
	boxH := len(lines)*2 + 1
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.DrawBox(box, core.ColorHUD)

	for i, l := range lines {
		c := core.ColorDefault
		if i == 0 {
			c = core.ColorSuccess
		}
		dst.DrawTextCentered(box.Y+1+i*2, l, c)
	}
}
