package maze

import "fmt"

// Cell is the content of one grid tile. Spawn markers and eaten pickups are
// distinct variants so "never had a pickup" and "pickup was eaten" never
// share a code.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellWall
	CellPickup
	CellPowerPickup
	CellPlayerSpawn
	CellAdversarySpawn
	CellConsumed
)

// Level file glyphs.
const (
	glyphEmpty          = ' '
	glyphWall           = '#'
	glyphPickup         = '.'
	glyphPowerPickup    = 'o'
	glyphPlayerSpawn    = 'P'
	glyphAdversarySpawn = 'G'
)

// ParseCell converts a level glyph into a Cell.
func ParseCell(r rune) (Cell, error) {
	switch r {
	case glyphEmpty:
		return CellEmpty, nil
	case glyphWall:
		return CellWall, nil
	case glyphPickup:
		return CellPickup, nil
	case glyphPowerPickup:
		return CellPowerPickup, nil
	case glyphPlayerSpawn:
		return CellPlayerSpawn, nil
	case glyphAdversarySpawn:
		return CellAdversarySpawn, nil
	default:
		return CellEmpty, fmt.Errorf("%w: unknown glyph %q", ErrMalformedLevel, r)
	}
}

// Glyph returns the level-file rune for the cell. Consumed cells print as
// empty floor.
func (c Cell) Glyph() rune {
	switch c {
	case CellWall:
		return glyphWall
	case CellPickup:
		return glyphPickup
	case CellPowerPickup:
		return glyphPowerPickup
	case CellPlayerSpawn:
		return glyphPlayerSpawn
	case CellAdversarySpawn:
		return glyphAdversarySpawn
	default:
		return glyphEmpty
	}
}

func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellWall:
		return "wall"
	case CellPickup:
		return "pickup"
	case CellPowerPickup:
		return "power_pickup"
	case CellPlayerSpawn:
		return "player_spawn"
	case CellAdversarySpawn:
		return "adversary_spawn"
	case CellConsumed:
		return "consumed"
	default:
		return "unknown"
	}
}

// PickupKind reports what ConsumePickupAt ate.
type PickupKind uint8

const (
	PickupNone PickupKind = iota
	PickupPlain
	PickupPower
)
