package maze

import (
	"github.com/vovakirdan/mazechase/internal/config"
	"github.com/vovakirdan/mazechase/internal/core"
)

// animationFrames is the mouth cycle: closed, half, open, half.
var animationFrames = [...]int{0, 1, 2, 1}

// neutralStep indexes the half-open frame shown while halted.
const neutralStep = 1

// Player is the user-controlled entity.
type Player struct {
	Entity

	Requested     Direction
	Facing        Direction
	MadeFirstMove bool
	Power         PowerState

	animStep   int
	animTimer  int // 0 while not animating
	animPeriod int

	pickupPoints    int
	powerPoints     int
	adversaryPoints int
}

// NewPlayer creates a player standing at spawn.
func NewPlayer(spawn core.Point, cfg config.MazeConfig) *Player {
	p := &Player{
		Entity:          newEntity(spawn, cfg.Grid.TileSize, cfg.Grid.Velocity),
		Power:           NewPowerState(cfg.WarningTicks(), cfg.PowerTicks()),
		animPeriod:      cfg.Timing.AnimationPeriod,
		pickupPoints:    cfg.Scoring.Pickup,
		powerPoints:     cfg.Scoring.PowerPickup,
		adversaryPoints: cfg.Scoring.Adversary,
	}
	p.Reset(spawn)
	return p
}

// Request records a direction intent. A request that reverses the current
// direction applies at once, since turning back never leaves the lane.
// Any request counts as the first move.
func (p *Player) Request(dir Direction) {
	if dir == DirNone {
		return
	}
	if p.Dir != DirNone && dir == p.Dir.Opposite() {
		p.Dir = dir
		p.Facing = dir
	}
	p.Requested = dir
	p.MadeFirstMove = true
}

// Update moves the player one tick. At an alignment point it turns to the
// requested direction when that way is open. It halts at walls with the
// animation frozen on the neutral frame. It reports whether it moved.
func (p *Player) Update(g *Grid) bool {
	if p.Requested != DirNone && p.Requested != p.Dir && p.Aligned() &&
		!g.CollidesAhead(p.Pos.X, p.Pos.Y, p.Requested) {
		p.Dir = p.Requested
	}

	if p.Dir == DirNone {
		return false
	}
	if g.CollidesAhead(p.Pos.X, p.Pos.Y, p.Dir) {
		p.animTimer = 0
		p.animStep = neutralStep
		return false
	}

	if p.animTimer == 0 {
		p.animTimer = p.animPeriod
		p.MadeFirstMove = true
	}
	p.Advance()
	p.Facing = p.Dir
	p.animate()
	return true
}

func (p *Player) animate() {
	p.animTimer--
	if p.animTimer == 0 {
		p.animTimer = p.animPeriod
		p.animStep = (p.animStep + 1) % len(animationFrames)
	}
}

// Frame returns the visual frame: 0 closed, 1 half open, 2 open.
func (p *Player) Frame() int {
	return animationFrames[p.animStep]
}

// OnPickupConsumed applies the effect of an eaten pickup at tick now and
// returns the points it is worth. A power pickup restarts the power window.
func (p *Player) OnPickupConsumed(kind PickupKind, now int) int {
	switch kind {
	case PickupPlain:
		return p.pickupPoints
	case PickupPower:
		p.Power.Activate(now)
		return p.powerPoints
	default:
		return 0
	}
}

// ResolveAdversaryContact removes every adversary touching the player while
// the power window is active. It returns the survivors, the points earned and
// the number eaten. Outside the window the slice is returned unchanged.
func (p *Player) ResolveAdversaryContact(advs []*Adversary) ([]*Adversary, int, int) {
	if !p.Power.Active {
		return advs, 0, 0
	}
	survivors := advs[:0:0]
	eaten := 0
	for _, a := range advs {
		if a.Overlaps(p) {
			eaten++
			continue
		}
		survivors = append(survivors, a)
	}
	return survivors, eaten * p.adversaryPoints, eaten
}

// Reset returns the player to spawn and clears direction, animation, power
// and the first-move flag.
func (p *Player) Reset(spawn core.Point) {
	p.Pos = spawn
	p.Dir = DirNone
	p.Requested = DirNone
	p.Facing = DirRight
	p.MadeFirstMove = false
	p.animStep = neutralStep
	p.animTimer = 0
	p.Power.Clear()
}
