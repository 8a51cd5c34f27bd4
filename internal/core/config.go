package core

// RuntimeConfig contains configuration passed to the game at initialization.
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

// TicksToSeconds converts a tick count to seconds at 60 ticks per second,
// rounded to two places. Scores are stored as ticks and shown as seconds.
func TicksToSeconds(ticks int) float64 {
	return Round(float64(ticks)/60.0, 2)
}
