package core

// RuntimeConfig contains configuration passed to a scene at reset.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Target frames per second
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// SimState is a snapshot of the running simulation, returned by
// Scene.State() for the HUD and for run history.
type SimState struct {
	Frames     int     // Frames simulated since the last reset
	Elapsed    float64 // Wall-clock seconds of unpaused frames since the last reset
	Jumps      int     // Jumps started
	BoxEntries int     // Times the body entered a detection box
	MaxHeight  float64 // Highest P1.Y reached
	FPS        int     // Frames counted during the last full second

	Grounded     bool
	InBox        bool
	TouchingLine bool
	Paused       bool
	Wireframe    bool
}

// AvgFPS returns frames per second of unpaused play, or 0 before any time passed.
func (s SimState) AvgFPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed
}

// StepResult is returned by Scene.Step() after each frame.
type StepResult struct {
	State SimState
	// Finished carries the state of a run that was ended by a reset during
	// this step. Nil when no run ended.
	Finished *SimState
}
