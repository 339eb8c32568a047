package core

import "time"

// Target is a moving piece: a fractional current position that travels
// toward an integer destination. Prev holds the settled cell restored by Undo.
type Target struct {
	Col  float64 // Current column
	Row  float64 // Current row
	Dest Coord   // Destination cell
	Prev Coord   // Settled cell before the last move
	Goal bool    // Settled on a goal tile
}

// NewTarget creates a target settled at c.
func NewTarget(c Coord) *Target {
	t := &Target{}
	t.Place(c)
	return t
}

// Place puts the target at c with no pending move and no undo history.
func (t *Target) Place(c Coord) {
	t.Col = float64(c.X)
	t.Row = float64(c.Y)
	t.Dest = c
	t.Prev = c
	t.Goal = false
}

// Settled reports whether the current position equals the destination.
func (t *Target) Settled() bool {
	return t.Col == float64(t.Dest.X) && t.Row == float64(t.Dest.Y)
}

// Cell returns the integer cell of the current position.
// Only meaningful while settled.
func (t *Target) Cell() Coord {
	return C(int(t.Col), int(t.Row))
}

// SetDestination assigns a new destination cell.
func (t *Target) SetDestination(c Coord) {
	t.Dest = c
}

// Remember records the destination as the undo point.
func (t *Target) Remember() {
	t.Prev = t.Dest
}

// Undo jumps back to the remembered cell.
func (t *Target) Undo() {
	t.Col = float64(t.Prev.X)
	t.Row = float64(t.Prev.Y)
	t.Dest = t.Prev
}

// Advance moves the current position toward the destination by velocity
// along a single axis, columns before rows, clamping at the destination.
// A non-positive velocity completes the move at once.
// Returns true if this call made the target settle.
func (t *Target) Advance(velocity float64) bool {
	if t.Settled() {
		return false
	}
	if velocity <= 0 {
		t.Col = float64(t.Dest.X)
		t.Row = float64(t.Dest.Y)
		return true
	}

	destCol := float64(t.Dest.X)
	destRow := float64(t.Dest.Y)

	switch {
	case t.Col < destCol:
		t.Col = min(t.Col+velocity, destCol)
	case t.Col > destCol:
		t.Col = max(t.Col-velocity, destCol)
	case t.Row < destRow:
		t.Row = min(t.Row+velocity, destRow)
	case t.Row > destRow:
		t.Row = max(t.Row-velocity, destRow)
	}

	return t.Settled()
}

// updateGoal recomputes goal occupancy against the grid.
func (t *Target) updateGoal(g *Grid) {
	t.Goal = t.Settled() && g.At(t.Cell()) == TileGoal
}

// Player is the pusher. Selected is set while an accepted move is in
// transit; Moves and Elapsed are per-attempt counters.
type Player struct {
	Target
	Selected bool
	Moves    int
	Elapsed  time.Duration
}
