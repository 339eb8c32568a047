package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// newLevel parses lines into a fresh level.
func newLevel(t *testing.T, lines ...string) *core.Level {
	t.Helper()
	layout := core.ParseLevel(lines)
	require.True(t, layout.HasPlayer, "test level has no player")
	return core.NewLevel(layout)
}

// settle ticks lv with an instant velocity until nothing is in transit.
func settle(lv *core.Level) core.TickResult {
	return lv.Tick(0)
}
