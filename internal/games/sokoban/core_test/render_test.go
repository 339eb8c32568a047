package core_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

func TestRenderASCIIInitial(t *testing.T) {
	lines := []string{
		"  #####",
		"###   #",
		"#.@$  #",
		"### $.#",
		"#.##$ #",
		"# # . ##",
		"#$ *$$.#",
		"#   .  #",
		"########",
	}
	lv := core.NewLevel(core.ParseLevel(lines))
	assert.Equal(t, strings.Join(lines, "\n"), core.RenderASCII(lv))
}

func TestRenderASCIIAfterPush(t *testing.T) {
	lv := newLevel(t,
		"#####",
		"#@$.#",
		"#####",
	)
	lv.TryMove(core.DirRight)

	got := core.RenderASCII(lv)
	assert.Equal(t, "#####\n# @*#\n#####", got)
}

func TestRenderASCIIRoundTrip(t *testing.T) {
	lv := newLevel(t,
		"#######",
		"#@ $ .#",
		"#  $ .#",
		"#######",
	)
	lv.TryMove(core.DirRight)
	settle(lv)
	lv.TryMove(core.DirRight)
	settle(lv)

	text := core.RenderASCII(lv)
	again := core.ParseLevel(strings.Split(text, "\n"))

	assert.True(t, lv.Grid().Equal(again.Grid))
	assert.Equal(t, lv.Player().Dest, again.Player)
	assert.ElementsMatch(t, lv.BlockCells(), again.Blocks)
}
