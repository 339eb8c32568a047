package core

import "time"

// Level owns the grid, the blocks and the player of one puzzle attempt.
// It is the only mutator of its entities and is not safe for concurrent use;
// a single game loop drives it.
type Level struct {
	layout Layout
	grid   *Grid
	blocks []*Target
	player *Player
}

// TickResult reports what happened during one Tick.
type TickResult struct {
	PlayerSettled bool  // Player reached its destination this tick
	BlocksSettled []int // Indices of blocks that reached their destination this tick
	Solved        bool  // The level became solved on this tick
}

// NewLevel creates a level from a parsed layout.
func NewLevel(layout Layout) *Level {
	lv := &Level{
		layout: layout,
		grid:   layout.Grid,
		player: &Player{},
	}
	lv.Reset()
	return lv
}

// Reset puts every piece back on its start cell and clears the counters.
func (lv *Level) Reset() {
	lv.blocks = make([]*Target, len(lv.layout.Blocks))
	for i, c := range lv.layout.Blocks {
		lv.blocks[i] = NewTarget(c)
		lv.blocks[i].updateGoal(lv.grid)
	}
	lv.player.Place(lv.layout.Player)
	lv.player.updateGoal(lv.grid)
	lv.player.Selected = false
	lv.player.Moves = 0
	lv.player.Elapsed = 0
}

// Grid returns the static level geometry.
func (lv *Level) Grid() *Grid {
	return lv.grid
}

// Layout returns the layout the level was built from.
func (lv *Level) Layout() Layout {
	return lv.layout
}

// Player returns the player.
func (lv *Level) Player() *Player {
	return lv.player
}

// Blocks returns the blocks. Callers must treat them as read-only.
func (lv *Level) Blocks() []*Target {
	return lv.blocks
}

// BlockCells returns the destination cell of every block.
func (lv *Level) BlockCells() []Coord {
	cells := make([]Coord, len(lv.blocks))
	for i, b := range lv.blocks {
		cells[i] = b.Dest
	}
	return cells
}

// BlockAt returns the index of the block headed to c, or -1.
func (lv *Level) BlockAt(c Coord) int {
	for i, b := range lv.blocks {
		if b.Dest == c {
			return i
		}
	}
	return -1
}

// Moves returns the number of accepted moves.
func (lv *Level) Moves() int {
	return lv.player.Moves
}

// Elapsed returns the accumulated play time.
func (lv *Level) Elapsed() time.Duration {
	return lv.player.Elapsed
}

// AddElapsed accumulates play time. It has no effect on the rules.
func (lv *Level) AddElapsed(d time.Duration) {
	if d > 0 {
		lv.player.Elapsed += d
	}
}

// Settled reports whether the player and every block are at rest.
func (lv *Level) Settled() bool {
	if !lv.player.Settled() {
		return false
	}
	for _, b := range lv.blocks {
		if !b.Settled() {
			return false
		}
	}
	return true
}

// TryMove resolves and applies one player move.
// Requests while anything is in transit are rejected as busy. Otherwise
// every piece remembers its current cell as the undo point, whatever the
// outcome, and the player and pushed block get their destinations together.
func (lv *Level) TryMove(d Dir) MoveOutcome {
	from := lv.player.Dest
	if !lv.Settled() {
		return rejected(from, d, RejectBusy)
	}

	for _, b := range lv.blocks {
		b.Remember()
	}
	lv.player.Remember()

	out := Resolve(lv.grid, lv.BlockCells(), from, d)
	lv.apply(out)
	return out
}

func (lv *Level) apply(out MoveOutcome) {
	if !out.Accepted() {
		return
	}
	if out.Kind == OutcomePushed {
		block := lv.blocks[out.Block]
		block.SetDestination(out.BlockTo)
		block.updateGoal(lv.grid)
	}
	lv.player.SetDestination(out.To)
	lv.player.updateGoal(lv.grid)
	lv.player.Selected = true
	lv.player.Moves++
}

// Tick advances the player and every block by velocity and re-evaluates
// goal occupancy. Solved is reported on the tick the last piece settles
// into a winning position.
func (lv *Level) Tick(velocity float64) TickResult {
	var res TickResult

	if lv.player.Advance(velocity) {
		res.PlayerSettled = true
		lv.player.Selected = false
	}
	lv.player.updateGoal(lv.grid)

	for i, b := range lv.blocks {
		if b.Advance(velocity) {
			res.BlocksSettled = append(res.BlocksSettled, i)
		}
		b.updateGoal(lv.grid)
	}

	if res.PlayerSettled || len(res.BlocksSettled) > 0 {
		res.Solved = lv.IsSolved()
	}
	return res
}

// Undo restores every block and the player to the cells they held before
// the last move. Only one step is kept: calling Undo again changes nothing.
// Returns true if any piece moved.
func (lv *Level) Undo() bool {
	changed := false

	for _, b := range lv.blocks {
		if b.Dest != b.Prev || !b.Settled() {
			changed = true
		}
		b.Undo()
		b.updateGoal(lv.grid)
	}

	p := lv.player
	if p.Dest != p.Prev || !p.Settled() {
		changed = true
	}
	p.Undo()
	p.updateGoal(lv.grid)
	p.Selected = false

	return changed
}

// IsSolved reports whether every block is settled on a goal tile.
// Blocks still in transit never count, so an animation passing over a goal
// cannot trigger a win.
func (lv *Level) IsSolved() bool {
	for _, b := range lv.blocks {
		if !b.Settled() || lv.grid.At(b.Cell()) != TileGoal {
			return false
		}
	}
	return true
}

// GoalsFilled returns how many blocks currently sit on a goal.
func (lv *Level) GoalsFilled() int {
	n := 0
	for _, b := range lv.blocks {
		if b.Goal {
			n++
		}
	}
	return n
}
