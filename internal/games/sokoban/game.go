// Package sokoban adapts the Sokoban rules engine to the platform Game
// interface: it turns actions into moves, drives the motion ticks and
// draws the board.
package sokoban

import (
	"time"

	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

// DefaultVelocity is the distance in cells a piece travels per tick.
const DefaultVelocity = 0.25

var _ platformcore.Game = (*Game)(nil)

// Game implements the platform Game interface for a list of levels.
type Game struct {
	all      []levels.Level
	index    int
	current  levels.Level
	level    *core.Level
	velocity float64

	tickDur time.Duration
	tick    uint64

	screenW int
	screenH int

	paused   bool
	solved   bool
	finished bool
	last     core.MoveOutcome
	hasLast  bool
}

// New creates a game over the given levels. Levels that fail Validate are
// left out. velocity <= 0 makes every move complete on the next tick.
func New(all []levels.Level, velocity float64) *Game {
	return &Game{
		all:      playable(all),
		velocity: velocity,
	}
}

func playable(all []levels.Level) []levels.Level {
	kept := make([]levels.Level, 0, len(all))
	for i := range all {
		if all[i].Validate() == nil {
			kept = append(kept, all[i])
		}
	}
	return kept
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "sokoban"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Sokoban"
}

// Reset starts the session over from the selected level.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickDur = cfg.TickDuration()
	g.tick = 0
	g.paused = false
	g.finished = false
	g.load(g.index)
}

// Resize records new screen dimensions. Level state is kept.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// SelectLevel makes the level with the given ID current.
func (g *Game) SelectLevel(id string) error {
	for i, lvl := range g.all {
		if lvl.ID == id {
			g.load(i)
			return nil
		}
	}
	return levels.ErrLevelNotFound
}

// load makes the i-th level current.
func (g *Game) load(i int) {
	g.solved = false
	g.hasLast = false
	if len(g.all) == 0 {
		g.level = nil
		g.finished = true
		return
	}

	g.index = platformcore.Clamp(i, 0, len(g.all)-1)
	g.current = g.all[g.index]
	g.level = g.current.NewLevel()
}

// Step advances the simulation by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.level == nil {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) && !g.solved {
		g.paused = !g.paused
	}

	// Level changes take the whole tick.
	switch {
	case in.Has(platformcore.ActionRestart):
		g.level.Reset()
		g.solved = false
		g.hasLast = false
		g.paused = false
		g.finished = false
		return platformcore.StepResult{State: g.State()}
	case in.Has(platformcore.ActionNext):
		g.advance(1)
		return platformcore.StepResult{State: g.State()}
	case in.Has(platformcore.ActionPrev):
		g.advance(-1)
		return platformcore.StepResult{State: g.State()}
	case in.Has(platformcore.ActionConfirm) && g.solved:
		if g.index == len(g.all)-1 {
			g.finished = true
		} else {
			g.advance(1)
		}
		return platformcore.StepResult{State: g.State()}
	}

	if g.paused || g.finished {
		return platformcore.StepResult{State: g.State()}
	}

	if !g.solved {
		g.applyInput(in)
	}

	var result platformcore.StepResult
	res := g.level.Tick(g.velocity)
	if !g.solved {
		g.level.AddElapsed(g.tickDur)
		if res.Solved {
			g.solved = true
			result.Completed = &platformcore.Completion{
				LevelID: g.current.ID,
				Moves:   g.level.Moves(),
				Elapsed: g.level.Elapsed(),
			}
		}
	}

	result.State = g.State()
	return result
}

func (g *Game) advance(delta int) {
	next := g.index + delta
	if next < 0 || next >= len(g.all) {
		return
	}
	g.paused = false
	g.load(next)
}

// applyInput handles undo and at most one direction per tick.
func (g *Game) applyInput(in platformcore.InputFrame) {
	for _, a := range in.Actions {
		if a == platformcore.ActionUndo {
			g.level.Undo()
			g.hasLast = false
			return
		}
		if d, ok := actionDir(a); ok {
			g.last = g.level.TryMove(d)
			g.hasLast = true
			return
		}
	}
}

func actionDir(a platformcore.Action) (core.Dir, bool) {
	switch a {
	case platformcore.ActionUp:
		return core.DirUp, true
	case platformcore.ActionRight:
		return core.DirRight, true
	case platformcore.ActionDown:
		return core.DirDown, true
	case platformcore.ActionLeft:
		return core.DirLeft, true
	default:
		return 0, false
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		Solved:   g.solved,
		Finished: g.finished,
		Paused:   g.paused,
	}
	if g.level != nil {
		st.LevelID = g.current.ID
		st.Moves = g.level.Moves()
		st.Elapsed = g.level.Elapsed()
	}
	return st
}

// Level returns the level being played, nil when there are no levels.
func (g *Game) Level() *core.Level {
	return g.level
}

// Current returns the definition of the level being played.
func (g *Game) Current() levels.Level {
	return g.current
}

// LastOutcome returns the result of the most recent move request.
func (g *Game) LastOutcome() (core.MoveOutcome, bool) {
	return g.last, g.hasLast
}
