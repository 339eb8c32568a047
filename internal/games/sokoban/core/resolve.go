package core

import "fmt"

// OutcomeKind classifies the result of a move request.
type OutcomeKind uint8

const (
	OutcomeRejected OutcomeKind = iota
	OutcomeMoved                // Player stepped onto an empty cell
	OutcomePushed               // Player stepped and pushed a block
)

// String returns the string representation of an outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeRejected:
		return "Rejected"
	case OutcomeMoved:
		return "Moved"
	case OutcomePushed:
		return "Pushed"
	default:
		return "Unknown"
	}
}

// RejectReason explains why a move was rejected.
type RejectReason uint8

const (
	RejectNone    RejectReason = iota
	RejectWall                 // Next cell is not walkable
	RejectBlocked              // Block cannot be pushed: wall or block behind it
	RejectBusy                 // A previous move is still in transit
)

// String returns the string representation of a reject reason.
func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "None"
	case RejectWall:
		return "Wall"
	case RejectBlocked:
		return "Blocked"
	case RejectBusy:
		return "Busy"
	default:
		return "Unknown"
	}
}

// MoveOutcome is the resolver's verdict for one move request.
type MoveOutcome struct {
	Kind    OutcomeKind
	Reason  RejectReason // Set when Kind is OutcomeRejected
	Dir     Dir
	From    Coord // Player cell before the move
	To      Coord // Player destination; equals From when rejected
	Block   int   // Index of the pushed block, -1 if none
	BlockTo Coord // Destination of the pushed block
}

// Accepted reports whether the player moves.
func (o MoveOutcome) Accepted() bool {
	return o.Kind != OutcomeRejected
}

// String returns a compact description of the outcome.
func (o MoveOutcome) String() string {
	switch o.Kind {
	case OutcomeMoved:
		return fmt.Sprintf("Moved %s %v->%v", o.Dir, o.From, o.To)
	case OutcomePushed:
		return fmt.Sprintf("Pushed %s %v->%v block#%d->%v", o.Dir, o.From, o.To, o.Block, o.BlockTo)
	default:
		return fmt.Sprintf("Rejected %s at %v (%s)", o.Dir, o.From, o.Reason)
	}
}

func rejected(from Coord, d Dir, reason RejectReason) MoveOutcome {
	return MoveOutcome{
		Kind:   OutcomeRejected,
		Reason: reason,
		Dir:    d,
		From:   from,
		To:     from,
		Block:  -1,
	}
}

// Resolve decides a single move of the player at from in direction d.
// blocks holds the settled cell of every block. Resolve does not mutate
// anything; the caller applies the outcome.
//
// Rules:
//  1. N1 = from + d. If N1 is not walkable the move is rejected.
//  2. If a block sits on N1, N2 = N1 + d must be walkable and free of
//     blocks, otherwise the move is rejected. The player goes to N1 and
//     the block to N2.
//  3. Otherwise the player goes to N1.
//
// Cells outside the level outline count as walls.
func Resolve(g *Grid, blocks []Coord, from Coord, d Dir) MoveOutcome {
	n1 := from.Step(d)
	if !g.At(n1).Passable() {
		return rejected(from, d, RejectWall)
	}

	idx := indexOf(blocks, n1)
	if idx < 0 {
		return MoveOutcome{
			Kind:  OutcomeMoved,
			Dir:   d,
			From:  from,
			To:    n1,
			Block: -1,
		}
	}

	n2 := n1.Step(d)
	if !g.At(n2).Passable() || indexOf(blocks, n2) >= 0 {
		return rejected(from, d, RejectBlocked)
	}

	return MoveOutcome{
		Kind:    OutcomePushed,
		Dir:     d,
		From:    from,
		To:      n1,
		Block:   idx,
		BlockTo: n2,
	}
}

func indexOf(cells []Coord, c Coord) int {
	for i, cell := range cells {
		if cell == c {
			return i
		}
	}
	return -1
}
