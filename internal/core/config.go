package core

// RuntimeConfig contains host-side settings passed to a session at start.
// The simulation itself is configured separately (config.BreakoutConfig).
type RuntimeConfig struct {
	ScreenW     int   // Screen width in characters
	ScreenH     int   // Screen height in characters
	RefreshRate int   // Display refresh callbacks per second
	Seed        int64 // RNG seed for the brick colors
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:     80,
		ScreenH:     24,
		RefreshRate: 120,
		Seed:        0, // 0 means use current time in platform layer
	}
}
