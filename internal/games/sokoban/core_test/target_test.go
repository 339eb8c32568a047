package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

func TestTargetAdvanceColumnThenRow(t *testing.T) {
	tg := core.NewTarget(core.C(0, 0))
	tg.SetDestination(core.C(2, 1))

	type pos struct{ col, row float64 }
	want := []pos{
		{0.5, 0}, {1, 0}, {1.5, 0}, {2, 0},
		{2, 0.5}, {2, 1},
	}
	for i, w := range want {
		settled := tg.Advance(0.5)
		assert.Equal(t, w.col, tg.Col, "step %d col", i)
		assert.Equal(t, w.row, tg.Row, "step %d row", i)
		assert.Equal(t, i == len(want)-1, settled, "step %d settled", i)
	}

	assert.False(t, tg.Advance(0.5), "settled target does not report again")
}

func TestTargetAdvanceClamps(t *testing.T) {
	tg := core.NewTarget(core.C(3, 3))
	tg.SetDestination(core.C(2, 3))

	assert.True(t, tg.Advance(0.75+0.75))
	assert.Equal(t, 2.0, tg.Col)
	assert.Equal(t, core.C(2, 3), tg.Cell())
}

func TestTargetAdvanceNonPositiveSnaps(t *testing.T) {
	tg := core.NewTarget(core.C(1, 1))
	tg.SetDestination(core.C(1, 4))

	assert.True(t, tg.Advance(0))
	assert.True(t, tg.Settled())
	assert.Equal(t, core.C(1, 4), tg.Cell())
}

func TestTargetUndo(t *testing.T) {
	tg := core.NewTarget(core.C(1, 1))
	tg.Remember()
	tg.SetDestination(core.C(2, 1))
	tg.Advance(0.5)

	tg.Undo()
	assert.True(t, tg.Settled())
	assert.Equal(t, core.C(1, 1), tg.Cell())
	assert.Equal(t, core.C(1, 1), tg.Dest)
}
