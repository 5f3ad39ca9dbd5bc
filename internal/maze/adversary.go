package maze

import (
	"math/rand"

	"github.com/vovakirdan/mazechase/internal/config"
	"github.com/vovakirdan/mazechase/internal/core"
)

// Appearance selects how an adversary is drawn.
type Appearance int

const (
	AppearanceNormal Appearance = iota
	AppearanceVulnerable
	AppearanceVulnerableAlt
)

func (a Appearance) String() string {
	switch a {
	case AppearanceVulnerable:
		return "vulnerable"
	case AppearanceVulnerableAlt:
		return "vulnerable_alt"
	default:
		return "normal"
	}
}

// MarshalText encodes the appearance by name for snapshots.
func (a Appearance) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Adversary patrols the maze on random decisions. It does no path search.
type Adversary struct {
	Entity

	Appearance Appearance

	countdown    int
	countdownMax int // drawn once per adversary
	flash        int
	flashPeriod  int
	rng          *rand.Rand
}

// NewAdversary creates an adversary at spawn with a random direction and a
// random decision period in [DirectionMin, DirectionMax].
func NewAdversary(spawn core.Point, cfg config.MazeConfig, rng *rand.Rand) *Adversary {
	lo, hi := cfg.Gameplay.DirectionMin, cfg.Gameplay.DirectionMax
	a := &Adversary{
		Entity:       newEntity(spawn, cfg.Grid.TileSize, cfg.Grid.Velocity),
		countdownMax: lo + rng.Intn(hi-lo+1),
		flashPeriod:  cfg.Timing.FlashPeriod,
		rng:          rng,
	}
	a.Dir = cardinals[rng.Intn(len(cardinals))]
	a.countdown = a.countdownMax
	a.flash = a.flashPeriod
	return a
}

// Update advances the adversary one tick. When its countdown runs out it
// draws a new direction and adopts it only if it differs, the adversary is
// aligned, and the way is open. It then moves if the current way is open,
// otherwise it waits for the next decision.
func (a *Adversary) Update(g *Grid) bool {
	a.countdown--
	if a.countdown <= 0 {
		a.countdown = a.countdownMax
		next := cardinals[a.rng.Intn(len(cardinals))]
		if next != a.Dir && a.Aligned() && !g.CollidesAhead(a.Pos.X, a.Pos.Y, next) {
			a.Dir = next
		}
	}

	if g.CollidesAhead(a.Pos.X, a.Pos.Y, a.Dir) {
		return false
	}
	a.Advance()
	return true
}

// ResolveAppearance picks the visual for the current power state. Near
// expiry it toggles between the two vulnerable variants every flash period.
func (a *Adversary) ResolveAppearance(power PowerState) {
	switch {
	case !power.Active:
		a.Appearance = AppearanceNormal
		a.flash = a.flashPeriod
	case !power.AboutToExpire:
		a.Appearance = AppearanceVulnerable
		a.flash = a.flashPeriod
	default:
		a.flash--
		if a.flash <= 0 {
			a.flash = a.flashPeriod
			if a.Appearance == AppearanceVulnerable {
				a.Appearance = AppearanceVulnerableAlt
			} else {
				a.Appearance = AppearanceVulnerable
			}
		}
	}
}

// Overlaps reports whether the adversary touches the player. The same test
// decides both capture and being eaten.
func (a *Adversary) Overlaps(p *Player) bool {
	return a.Entity.Overlaps(p.Entity)
}
