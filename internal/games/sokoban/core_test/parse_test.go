package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

func TestParseLevelSymbols(t *testing.T) {
	layout := core.ParseLevel([]string{
		"#######",
		"#@$.*+#",
		"#######",
	})

	g := layout.Grid
	require.Equal(t, 7, g.W)
	require.Equal(t, 3, g.H)

	tests := []struct {
		at   core.Coord
		want core.Tile
	}{
		{core.C(0, 1), core.TileWall},
		{core.C(1, 1), core.TileFloor},
		{core.C(2, 1), core.TileFloor},
		{core.C(3, 1), core.TileGoal},
		{core.C(4, 1), core.TileGoal},
		{core.C(5, 1), core.TileGoal},
		{core.C(6, 1), core.TileWall},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, g.At(tt.at), "tile at %v", tt.at)
	}

	// '+' comes after '@' on the row, so it wins the player position.
	assert.True(t, layout.HasPlayer)
	assert.Equal(t, core.C(5, 1), layout.Player)
	assert.Equal(t, []core.Coord{core.C(2, 1), core.C(4, 1)}, layout.Blocks)
}

func TestParseLevelPaddingBeforeFirstWall(t *testing.T) {
	layout := core.ParseLevel([]string{
		"  #####",
		"###   #",
		"#@  $.#",
		"#######",
	})
	g := layout.Grid

	assert.Equal(t, core.TileNone, g.At(core.C(0, 0)))
	assert.Equal(t, core.TileNone, g.At(core.C(1, 0)))
	assert.Equal(t, core.TileWall, g.At(core.C(2, 0)))
	assert.Equal(t, core.TileFloor, g.At(core.C(3, 1)))
	assert.Equal(t, core.TileFloor, g.At(core.C(2, 2)))
}

func TestParseLevelEdgeRowsNeverFloor(t *testing.T) {
	layout := core.ParseLevel([]string{
		"# #",
		"# #",
		"#@#",
		"# #",
	})
	g := layout.Grid

	assert.Equal(t, core.TileNone, g.At(core.C(1, 0)), "first row")
	assert.Equal(t, core.TileFloor, g.At(core.C(1, 1)))
	assert.Equal(t, core.TileNone, g.At(core.C(1, 3)), "last row")
	assert.False(t, g.At(core.C(1, 0)).Passable())
}

func TestParseLevelUnknownSymbolsSkipped(t *testing.T) {
	layout := core.ParseLevel([]string{
		"#####",
		"#@x.#",
		"#####",
	})
	assert.Equal(t, core.TileNone, layout.Grid.At(core.C(2, 1)))
	assert.Empty(t, layout.Blocks)
}

func TestParserFillsEachRowOnce(t *testing.T) {
	p := core.NewParser(2, 3)
	p.Feed("###")
	p.Feed("#.#")
	p.Feed("$$$") // no empty row left

	layout := p.Layout()
	g := layout.Grid
	assert.Equal(t, core.TileWall, g.At(core.C(1, 0)))
	assert.Equal(t, core.TileGoal, g.At(core.C(1, 1)))
	assert.Empty(t, layout.Blocks)
}

func TestParserSplitFeedMatchesParseLevel(t *testing.T) {
	lines := []string{
		"#####",
		"#@$.#",
		"#####",
	}
	p := core.NewParser(len(lines), 5)
	for _, line := range lines {
		p.Feed(line)
	}

	want := core.ParseLevel(lines)
	got := p.Layout()
	assert.True(t, want.Grid.Equal(got.Grid))
	assert.Equal(t, want.Player, got.Player)
	assert.Equal(t, want.Blocks, got.Blocks)
}

func TestParseLevelLongestLineSetsColumns(t *testing.T) {
	layout := core.ParseLevel([]string{
		"####",
		"#@.####",
		"#######",
	})
	assert.Equal(t, 7, layout.Grid.W)
	assert.Equal(t, core.TileNone, layout.Grid.At(core.C(5, 0)))
}

func TestParseDir(t *testing.T) {
	tests := []struct {
		in   rune
		want core.Dir
		ok   bool
	}{
		{'U', core.DirUp, true},
		{'u', core.DirUp, true},
		{'D', core.DirDown, true},
		{'l', core.DirLeft, true},
		{'R', core.DirRight, true},
		{'x', 0, false},
		{' ', 0, false},
	}
	for _, tt := range tests {
		got, ok := core.ParseDir(tt.in)
		assert.Equal(t, tt.ok, ok, "ParseDir(%q)", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "ParseDir(%q)", tt.in)
			assert.Equal(t, tt.in|0x20, got.Code()|0x20)
		}
	}
}

func TestDirOpposite(t *testing.T) {
	for _, d := range core.Dirs {
		assert.Equal(t, d, d.Opposite().Opposite())
		c := core.C(3, 3)
		assert.Equal(t, c, c.Step(d).Step(d.Opposite()))
	}
}
