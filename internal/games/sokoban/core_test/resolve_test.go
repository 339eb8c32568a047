package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

func TestResolve(t *testing.T) {
	// Blocks in parse order: 0=(3,2) 1=(4,2) 2=(2,3).
	layout := core.ParseLevel([]string{
		"#######",
		"#     #",
		"#  $$ #",
		"#@$# .#",
		"#######",
	})
	g := layout.Grid

	tests := []struct {
		name    string
		from    core.Coord
		dir     core.Dir
		kind    core.OutcomeKind
		reason  core.RejectReason
		to      core.Coord
		block   int
		blockTo core.Coord
	}{
		{"walk up", core.C(1, 3), core.DirUp, core.OutcomeMoved, core.RejectNone, core.C(1, 2), -1, core.Coord{}},
		{"walk into left wall", core.C(1, 3), core.DirLeft, core.OutcomeRejected, core.RejectWall, core.C(1, 3), -1, core.Coord{}},
		{"walk into bottom wall", core.C(1, 3), core.DirDown, core.OutcomeRejected, core.RejectWall, core.C(1, 3), -1, core.Coord{}},
		{"push against wall", core.C(1, 3), core.DirRight, core.OutcomeRejected, core.RejectBlocked, core.C(1, 3), -1, core.Coord{}},
		{"push down into wall", core.C(3, 1), core.DirDown, core.OutcomeRejected, core.RejectBlocked, core.C(3, 1), -1, core.Coord{}},
		{"push into block from left", core.C(2, 2), core.DirRight, core.OutcomeRejected, core.RejectBlocked, core.C(2, 2), -1, core.Coord{}},
		{"push into block from right", core.C(5, 2), core.DirLeft, core.OutcomeRejected, core.RejectBlocked, core.C(5, 2), -1, core.Coord{}},
		{"push down onto floor", core.C(4, 1), core.DirDown, core.OutcomePushed, core.RejectNone, core.C(4, 2), 1, core.C(4, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := core.Resolve(g, layout.Blocks, tt.from, tt.dir)
			assert.Equal(t, tt.kind, out.Kind)
			assert.Equal(t, tt.reason, out.Reason)
			assert.Equal(t, tt.from, out.From)
			assert.Equal(t, tt.to, out.To)
			assert.Equal(t, tt.block, out.Block)
			assert.Equal(t, tt.dir, out.Dir)
			if tt.kind == core.OutcomePushed {
				assert.Equal(t, tt.blockTo, out.BlockTo)
			}
			assert.Equal(t, tt.kind != core.OutcomeRejected, out.Accepted())
		})
	}
}

func TestResolveDoesNotMutateInputs(t *testing.T) {
	layout := core.ParseLevel([]string{
		"#####",
		"#@$ #",
		"#####",
	})
	blocks := []core.Coord{core.C(2, 1)}
	tiles := append([]core.Tile(nil), layout.Grid.Tiles...)

	out := core.Resolve(layout.Grid, blocks, core.C(1, 1), core.DirRight)

	assert.Equal(t, core.OutcomePushed, out.Kind)
	assert.Equal(t, []core.Coord{core.C(2, 1)}, blocks)
	assert.Equal(t, tiles, layout.Grid.Tiles)
}

func TestResolveOutOfBoundsIsWall(t *testing.T) {
	layout := core.ParseLevel([]string{"@"})
	for _, d := range core.Dirs {
		out := core.Resolve(layout.Grid, nil, core.C(0, 0), d)
		assert.Equal(t, core.OutcomeRejected, out.Kind, d.String())
		assert.Equal(t, core.RejectWall, out.Reason, d.String())
	}
}

func TestMoveOutcomeString(t *testing.T) {
	layout := core.ParseLevel([]string{
		"####",
		"#@$#",
		"####",
	})
	out := core.Resolve(layout.Grid, layout.Blocks, layout.Player, core.DirRight)
	assert.Equal(t, "Rejected Right at (1,1) (Blocked)", out.String())
}
