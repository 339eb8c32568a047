package sokoban

import (
	"hash/fnv"
	"time"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// Snapshot captures the game state for determinism tests and screenshots.
type Snapshot struct {
	Tick    uint64
	LevelID string
	Index   int // 1-based position in the session
	Moves   int
	Elapsed time.Duration
	Solved  bool
	Board   string // Settled board in level text symbols
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:   g.tick,
		Index:  g.index + 1,
		Solved: g.solved,
	}
	if g.level != nil {
		s.LevelID = g.current.ID
		s.Moves = g.level.Moves()
		s.Elapsed = g.level.Elapsed()
		s.Board = core.RenderASCII(g.level)
	}
	return s
}

// Hash returns a fingerprint of the board and counters.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(s.LevelID))
	h.Write([]byte(s.Board))
	h.Write([]byte{byte(s.Moves), byte(s.Moves >> 8), byte(s.Index)})
	return h.Sum64()
}
