// Package levels provides level pack loading for Sokoban.
// This package depends on core but core does not depend on levels.
package levels

import (
	"fmt"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// Level is one puzzle of a pack.
type Level struct {
	ID       string   // Stable identifier, "<pack>-<nnn>"
	Pack     string   // Pack name
	Index    int      // 1-based position within the pack
	Name     string   // Display name
	Lines    []string // Level text, one entry per grid row
	Cols     int      // Longest line
	Solution string   // Known U/D/L/R solution, may be empty
	FilePath string
}

// Layout parses the level text.
func (l *Level) Layout() core.Layout {
	p := core.NewParser(len(l.Lines), l.Cols)
	for _, line := range l.Lines {
		p.Feed(line)
	}
	return p.Layout()
}

// NewLevel parses the level text into a playable level.
func (l *Level) NewLevel() *core.Level {
	return core.NewLevel(l.Layout())
}

// Title returns the display name, falling back to the ID.
func (l *Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// Validate checks that the level can be played and won.
func (l *Level) Validate() error {
	layout := l.Layout()
	if !layout.HasPlayer {
		return fmt.Errorf("%s: %w", l.ID, ErrNoPlayer)
	}
	if len(layout.Blocks) == 0 {
		return fmt.Errorf("%s: %w", l.ID, ErrNoBlocks)
	}
	if goals := layout.Grid.Count(core.TileGoal); goals < len(layout.Blocks) {
		return fmt.Errorf("%s: %d goals for %d blocks: %w", l.ID, goals, len(layout.Blocks), ErrTooFewGoals)
	}
	for _, b := range layout.Blocks {
		if layout.Grid.At(b) != core.TileGoal {
			return nil
		}
	}
	return fmt.Errorf("%s: %w", l.ID, ErrAlreadySolved)
}

// LevelID builds the identifier of the index-th level of a pack.
func LevelID(pack string, index int) string {
	return fmt.Sprintf("%s-%03d", pack, index)
}
