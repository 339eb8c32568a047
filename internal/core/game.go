package core

// Game is the interface the platform drives.
// Games contain pure logic with no terminal dependencies; the platform
// handles input mapping, timing and display.
type Game interface {
	// ID returns a stable identifier used for storage and screenshots.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	Reset(cfg RuntimeConfig)

	// Resize adapts the layout to new screen dimensions without losing state.
	Resize(w, h int)

	// Step advances the simulation by one fixed tick.
	Step(in InputFrame) StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *Screen)

	// State returns the current game state.
	State() GameState
}
