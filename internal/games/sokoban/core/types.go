// Package core provides the rules engine for Sokoban levels: grid parsing,
// move resolution, block/player interpolation, undo and win detection.
// This package is UI-agnostic and deterministic.
package core

// Tile is the static classification of a grid cell.
type Tile uint8

const (
	TileNone Tile = iota // Undefined cell (outside the level outline)
	TileWall
	TileFloor
	TileGoal
)

// String returns the string representation of a tile.
func (t Tile) String() string {
	switch t {
	case TileNone:
		return "None"
	case TileWall:
		return "Wall"
	case TileFloor:
		return "Floor"
	case TileGoal:
		return "Goal"
	default:
		return "Unknown"
	}
}

// Passable reports whether the player or a block may stand on the tile.
func (t Tile) Passable() bool {
	return t == TileFloor || t == TileGoal
}

// Dir represents one of the four cardinal move directions.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// Dirs lists every direction in evaluation order.
var Dirs = [...]Dir{DirUp, DirRight, DirDown, DirLeft}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Code returns the single-letter replay code for the direction.
func (d Dir) Code() rune {
	switch d {
	case DirUp:
		return 'U'
	case DirRight:
		return 'R'
	case DirDown:
		return 'D'
	case DirLeft:
		return 'L'
	default:
		return '?'
	}
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirUp:
		return DirDown
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return d
	}
}

// ParseDir converts a replay code (U, D, L, R in either case) to a direction.
func ParseDir(r rune) (Dir, bool) {
	switch r {
	case 'U', 'u':
		return DirUp, true
	case 'R', 'r':
		return DirRight, true
	case 'D', 'd':
		return DirDown, true
	case 'L', 'l':
		return DirLeft, true
	default:
		return 0, false
	}
}
