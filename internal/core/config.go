package core

// RuntimeConfig contains configuration passed to games at reset.
// Sokoban is turn-based, so only the drawable area is needed.
type RuntimeConfig struct {
	ScreenW int // Screen width in characters
	ScreenH int // Screen height in characters
}

// DefaultConfig returns a RuntimeConfig sized for a classic 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// GameState is the platform-facing summary of a game.
// Returned by Game.State() so the UI can decide what to show and what to save.
type GameState struct {
	Steps    int  // Accepted moves so far
	MaxSteps int  // Step budget, 0 when unlimited
	Won      bool // Level cleared
	GameOver bool // No further moves are accepted (cleared or out of steps)
}

// StepResult is returned by Game.Step() after each input frame.
type StepResult struct {
	State GameState
	Moved bool // Whether the frame changed the board
}
