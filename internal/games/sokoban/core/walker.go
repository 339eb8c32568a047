package core

import "unicode"

// Walker replays a scripted solution: a string of U/D/L/R codes, one code
// per settle event. Codes are case-insensitive. Whitespace and unknown
// codes are dropped when the walker is built.
type Walker struct {
	steps   []Dir
	pos     int
	skipped int
}

// ReplayResult summarizes a complete replay.
type ReplayResult struct {
	Ticks     int  // Ticks spent
	Moves     int  // Accepted moves
	Rejected  int  // Codes the level rejected
	Solved    bool // Level ended solved
	Exhausted bool // Tick budget ran out before the script finished
}

// NewWalker builds a walker over the given script.
func NewWalker(script string) *Walker {
	w := &Walker{}
	for _, r := range script {
		if unicode.IsSpace(r) {
			continue
		}
		d, ok := ParseDir(r)
		if !ok {
			w.skipped++
			continue
		}
		w.steps = append(w.steps, d)
	}
	return w
}

// Len returns the number of playable codes.
func (w *Walker) Len() int {
	return len(w.steps)
}

// Skipped returns how many codes were not recognized.
func (w *Walker) Skipped() int {
	return w.skipped
}

// Pos returns the index of the next code to play.
func (w *Walker) Pos() int {
	return w.pos
}

// Done reports whether every code has been played.
func (w *Walker) Done() bool {
	return w.pos >= len(w.steps)
}

// Rewind restarts the script from the first code.
func (w *Walker) Rewind() {
	w.pos = 0
}

// Step plays the next code if the level is settled.
// ok is false when nothing was played: the script is finished or a previous
// move is still in transit.
func (w *Walker) Step(lv *Level) (out MoveOutcome, ok bool) {
	if w.Done() || !lv.Settled() {
		return MoveOutcome{}, false
	}
	d := w.steps[w.pos]
	w.pos++
	return lv.TryMove(d), true
}

// Run drives lv until the script is finished and everything has settled,
// or until maxTicks ticks have elapsed. maxTicks <= 0 means no limit.
func (w *Walker) Run(lv *Level, velocity float64, maxTicks int) ReplayResult {
	var res ReplayResult
	for {
		if out, ok := w.Step(lv); ok {
			if out.Accepted() {
				res.Moves++
			} else {
				res.Rejected++
			}
		}
		if w.Done() && lv.Settled() {
			break
		}
		if maxTicks > 0 && res.Ticks >= maxTicks {
			res.Exhausted = true
			break
		}
		lv.Tick(velocity)
		res.Ticks++
	}
	res.Solved = lv.IsSolved()
	return res
}
