package core

// Grid is the static level geometry. Cells are stored in row-major order:
// index = y*W + x. A grid is never modified after parsing; goal occupancy
// lives on the blocks.
type Grid struct {
	W     int    // Columns
	H     int    // Rows
	Tiles []Tile // Flat array of tiles, length W*H
}

// NewGrid creates a grid with every cell undefined.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{
		W:     w,
		H:     h,
		Tiles: make([]Tile, w*h),
	}
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// At returns the tile at the given coordinate, TileNone when out of bounds.
func (g *Grid) At(c Coord) Tile {
	if !g.InBounds(c) {
		return TileNone
	}
	return g.Tiles[g.index(c)]
}

// set is only used by the parser.
func (g *Grid) set(c Coord, t Tile) {
	if g.InBounds(c) {
		g.Tiles[g.index(c)] = t
	}
}

// rowEmpty reports whether every cell of row y is still undefined.
func (g *Grid) rowEmpty(y int) bool {
	for x := 0; x < g.W; x++ {
		if g.Tiles[g.index(C(x, y))] != TileNone {
			return false
		}
	}
	return true
}

// Goals returns every goal coordinate, ordered by row then column.
func (g *Grid) Goals() []Coord {
	goals := make([]Coord, 0)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.At(C(x, y)) == TileGoal {
				goals = append(goals, C(x, y))
			}
		}
	}
	return goals
}

// Count returns the number of cells classified as t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, tile := range g.Tiles {
		if tile == t {
			n++
		}
	}
	return n
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, t := range g.Tiles {
		if t != other.Tiles[i] {
			return false
		}
	}
	return true
}
