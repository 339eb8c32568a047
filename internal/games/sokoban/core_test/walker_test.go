package core_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

func TestWalkerSkipsUnknownCodes(t *testing.T) {
	w := core.NewWalker("r R\nx?u")
	assert.Equal(t, 3, w.Len())
	assert.Equal(t, 2, w.Skipped())
	assert.False(t, w.Done())
}

func TestWalkerRunSolves(t *testing.T) {
	lv := newLevel(t,
		"######",
		"#@$ .#",
		"######",
	)

	res := core.NewWalker("rr").Run(lv, 0.25, 0)
	assert.True(t, res.Solved)
	assert.Equal(t, 2, res.Moves)
	assert.Equal(t, 0, res.Rejected)
	assert.False(t, res.Exhausted)
	assert.Equal(t, 8, res.Ticks)
}

func TestWalkerWaitsForSettle(t *testing.T) {
	lv := newLevel(t,
		"#####",
		"#@  #",
		"#####",
	)
	w := core.NewWalker("RR")

	_, ok := w.Step(lv)
	require.True(t, ok)

	_, ok = w.Step(lv)
	assert.False(t, ok, "player still in transit")
	assert.Equal(t, 1, w.Pos())

	lv.Tick(0)
	out, ok := w.Step(lv)
	assert.True(t, ok)
	assert.Equal(t, core.OutcomeMoved, out.Kind)
	assert.True(t, w.Done())
}

func TestWalkerCountsRejections(t *testing.T) {
	lv := newLevel(t,
		"#####",
		"#@$.#",
		"#####",
	)

	res := core.NewWalker("ULR").Run(lv, 0, 0)
	assert.Equal(t, 2, res.Rejected)
	assert.Equal(t, 1, res.Moves)
	assert.True(t, res.Solved)
}

func TestWalkerTickBudget(t *testing.T) {
	lv := newLevel(t,
		"#######",
		"#@$  .#",
		"#######",
	)

	res := core.NewWalker(strings.Repeat("R", 3)).Run(lv, 0.01, 10)
	assert.True(t, res.Exhausted)
	assert.Equal(t, 10, res.Ticks)
	assert.Equal(t, 1, res.Moves)
	assert.False(t, res.Solved)
}

func TestWalkerRewind(t *testing.T) {
	w := core.NewWalker("R")
	lv := newLevel(t,
		"####",
		"#@ #",
		"####",
	)
	w.Run(lv, 0, 0)
	require.True(t, w.Done())

	w.Rewind()
	assert.Equal(t, 0, w.Pos())
	assert.False(t, w.Done())
}
