package maze

import "github.com/vovakirdan/mazechase/internal/core"

// Entity is the moving body shared by the player and the adversaries.
// Positions are integer pixels. Because velocity divides the tile size, an
// entity moving along one axis always lands exactly on every alignment point.
type Entity struct {
	Pos core.Point
	Dir Direction

	tileSize int
	velocity int
}

func newEntity(pos core.Point, tileSize, velocity int) Entity {
	return Entity{Pos: pos, tileSize: tileSize, velocity: velocity}
}

// Aligned reports whether both coordinates are multiples of the tile size.
func (e Entity) Aligned() bool {
	return e.Pos.X%e.tileSize == 0 && e.Pos.Y%e.tileSize == 0
}

// Tile returns the tile holding the entity's top-left corner.
func (e Entity) Tile() core.Point {
	return core.Point{
		X: core.FloorDiv(e.Pos.X, e.tileSize),
		Y: core.FloorDiv(e.Pos.Y, e.tileSize),
	}
}

// Advance moves the entity one step along its current direction.
func (e *Entity) Advance() {
	d := e.Dir.Delta()
	e.Pos = e.Pos.Add(core.Point{X: d.X * e.velocity, Y: d.Y * e.velocity})
}

// Box is the collision box: half a tile square, anchored at the top-left
// position.
func (e Entity) Box() core.Rect {
	half := e.tileSize / 2
	return core.NewRect(e.Pos.X, e.Pos.Y, half, half)
}

// Overlaps reports whether two collision boxes intersect.
func (e Entity) Overlaps(other Entity) bool {
	return e.Box().Intersects(other.Box())
}
