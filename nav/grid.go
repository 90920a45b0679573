package nav

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Cell is an integer grid coordinate.
type Cell struct {
	X int
	Y int
}

// TileSet answers whether a cell holds a tile on some layer.
type TileSet interface {
	HasTile(c Cell) bool
}

// TileSetFunc adapts a plain function to TileSet.
type TileSetFunc func(c Cell) bool

func (f TileSetFunc) HasTile(c Cell) bool {
	if f == nil {
		return false
	}
	return f(c)
}

// Grid maps world positions onto a tile grid and answers walkability
// from a drivable layer and an obstacle layer.
type Grid struct {
	CellSize float64
	Origin   cp.Vector
	Road     TileSet
	Walls    TileSet
}

func NewGrid(cellSize float64, origin cp.Vector, road, walls TileSet) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid{CellSize: cellSize, Origin: origin, Road: road, Walls: walls}
}

func (g *Grid) ToGrid(p cp.Vector) Cell {
	size := g.cellSize()
	return Cell{
		X: int(math.Floor((p.X - g.Origin.X) / size)),
		Y: int(math.Floor((p.Y - g.Origin.Y) / size)),
	}
}

// ToWorld returns the center of c.
func (g *Grid) ToWorld(c Cell) cp.Vector {
	size := g.cellSize()
	half := size * 0.5
	return cp.Vector{
		X: g.Origin.X + float64(c.X)*size + half,
		Y: g.Origin.Y + float64(c.Y)*size + half,
	}
}

func (g *Grid) IsWalkable(c Cell) bool {
	if g == nil || g.Road == nil || !g.Road.HasTile(c) {
		return false
	}
	return g.Walls == nil || !g.Walls.HasTile(c)
}

func (g *Grid) cellSize() float64 {
	if g == nil || g.CellSize <= 0 {
		return 1
	}
	return g.CellSize
}
