package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and to derive the fixed tick.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// FixedDelta returns the duration of one simulation tick in seconds.
func (c RuntimeConfig) FixedDelta() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Frame      uint64 // Completed simulation frames
	RideFrames int    // Frames the player spent carried by a platform
	Jumps      int    // Jump impulses applied
	Flips      int    // Platform direction reversals
	Carried    bool   // Whether the player was carried on the last frame
	Paused     bool   // Whether the game is paused
	Script     string // Name of the running script
	ScriptHash uint64 // Fingerprint of the running script source
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Err is set when the tick failed fatally (for example a script fault).
	// The platform must stop the run; the game is in an undefined state.
	Err error
}
