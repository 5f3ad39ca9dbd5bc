package maze

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/mazechase/internal/core"
)

var (
	// ErrMalformedLevel is returned for level data the simulation cannot run:
	// ragged rows, unknown glyphs, or missing spawns.
	ErrMalformedLevel = errors.New("malformed level")

	// ErrSpawnsTaken is returned by a second call to SpawnPositions.
	ErrSpawnsTaken = errors.New("spawn positions already extracted")
)

// Grid is the tile matrix of one level instance. Pixel coordinates map to
// tiles by dividing by the tile size.
type Grid struct {
	cells    [][]Cell
	cols     int
	rows     int
	tileSize int

	remaining int // plain pickups left
	spawned   bool
}

// NewGrid parses level rows into a Grid. Rows must be non-empty and equally
// long, with exactly one player spawn and at least one adversary spawn.
func NewGrid(rows []string, tileSize int) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedLevel)
	}
	if tileSize <= 0 {
		return nil, fmt.Errorf("maze: tile size %d must be positive", tileSize)
	}

	g := &Grid{
		cols:     utf8.RuneCountInString(rows[0]),
		rows:     len(rows),
		tileSize: tileSize,
		cells:    make([][]Cell, len(rows)),
	}
	if g.cols == 0 {
		return nil, fmt.Errorf("%w: empty first row", ErrMalformedLevel)
	}

	players, adversaries := 0, 0
	for y, row := range rows {
		if n := utf8.RuneCountInString(row); n != g.cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrMalformedLevel, y, n, g.cols)
		}
		g.cells[y] = make([]Cell, 0, g.cols)
		for _, r := range row {
			c, err := ParseCell(r)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", y, err)
			}
			switch c {
			case CellPickup:
				g.remaining++
			case CellPlayerSpawn:
				players++
			case CellAdversarySpawn:
				adversaries++
			}
			g.cells[y] = append(g.cells[y], c)
		}
	}

	if players != 1 {
		return nil, fmt.Errorf("%w: %d player spawns, expected exactly one", ErrMalformedLevel, players)
	}
	if adversaries == 0 {
		return nil, fmt.Errorf("%w: no adversary spawn", ErrMalformedLevel)
	}
	return g, nil
}

// Cols returns the grid width in tiles.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the grid height in tiles.
func (g *Grid) Rows() int { return g.rows }

// TileSize returns the tile side in pixels.
func (g *Grid) TileSize() int { return g.tileSize }

// Cell returns the cell at tile (col, row). Out-of-range tiles read as empty.
func (g *Grid) Cell(col, row int) Cell {
	if !g.inBounds(col, row) {
		return CellEmpty
	}
	return g.cells[row][col]
}

func (g *Grid) inBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// Aligned reports whether a pixel position sits exactly on a tile corner.
func (g *Grid) Aligned(x, y int) bool {
	return x%g.tileSize == 0 && y%g.tileSize == 0
}

// CollidesAhead reports whether an entity at aligned (x, y) would enter a
// wall by moving one tile in dir. It is false for DirNone, for positions
// that are not aligned, and for targets outside the grid.
func (g *Grid) CollidesAhead(x, y int, dir Direction) bool {
	if dir == DirNone || !g.Aligned(x, y) {
		return false
	}
	d := dir.Delta()
	col := core.FloorDiv(x, g.tileSize) + d.X
	row := core.FloorDiv(y, g.tileSize) + d.Y
	if !g.inBounds(col, row) {
		return false
	}
	return g.cells[row][col] == CellWall
}

// ConsumePickupAt eats whatever pickup the entity at (x, y) is on.
//
// A plain pickup is eaten as soon as the entity's center point enters its
// tile. A power pickup is eaten only when the entity is exactly aligned on
// its tile. The eaten cell becomes CellConsumed.
func (g *Grid) ConsumePickupAt(x, y int) PickupKind {
	cx, cy := core.NewRect(x, y, g.tileSize, g.tileSize).Center()
	col := core.FloorDiv(cx, g.tileSize)
	row := core.FloorDiv(cy, g.tileSize)
	if g.inBounds(col, row) && g.cells[row][col] == CellPickup {
		g.cells[row][col] = CellConsumed
		g.remaining--
		return PickupPlain
	}

	if !g.Aligned(x, y) {
		return PickupNone
	}
	col, row = core.FloorDiv(x, g.tileSize), core.FloorDiv(y, g.tileSize)
	if g.inBounds(col, row) && g.cells[row][col] == CellPowerPickup {
		g.cells[row][col] = CellConsumed
		return PickupPower
	}
	return PickupNone
}

// RemainingPickups counts plain pickups not yet eaten. Power pickups do not
// count toward clearing a level.
func (g *Grid) RemainingPickups() int {
	return g.remaining
}

// HasWon reports whether every plain pickup has been eaten.
func (g *Grid) HasWon() bool {
	return g.remaining == 0
}

// SpawnPositions extracts the player spawn and the adversary spawns, in
// row-major order, as pixel positions. The spawn cells become CellEmpty. It
// may be called once per Grid.
func (g *Grid) SpawnPositions() (core.Point, []core.Point, error) {
	if g.spawned {
		return core.Point{}, nil, ErrSpawnsTaken
	}

	var (
		player      core.Point
		foundPlayer bool
		adversaries []core.Point
	)
	for row := range g.cells {
		for col, c := range g.cells[row] {
			pos := core.Point{X: col * g.tileSize, Y: row * g.tileSize}
			switch c {
			case CellPlayerSpawn:
				player, foundPlayer = pos, true
				g.cells[row][col] = CellEmpty
			case CellAdversarySpawn:
				adversaries = append(adversaries, pos)
				g.cells[row][col] = CellEmpty
			}
		}
	}
	if !foundPlayer || len(adversaries) == 0 {
		return core.Point{}, nil, fmt.Errorf("%w: missing spawns", ErrMalformedLevel)
	}

	g.spawned = true
	return player, adversaries, nil
}
