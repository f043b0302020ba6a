// Package core holds the runtime settings and semantic input actions
// shared by the terminal front-ends.
package core

// RuntimeConfig contains the per-session settings passed to the play screen.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	FPS        int    // Redraw rate of the turn timer bar
	Seed       int64  // RNG seed, 0 means time-based
	Variant    string // Registered variant ID
	ConfigPath string // Optional custom tuning file
	Difficulty string // Preset name: easy, normal, hard
	Player     string // Name used for saved runs and the leaderboard
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		FPS:     30,
		Variant: "mindgrind",
	}
}

// Normalize fills zero values from DefaultConfig.
func (c RuntimeConfig) Normalize() RuntimeConfig {
	d := DefaultConfig()
	if c.ScreenW <= 0 {
		c.ScreenW = d.ScreenW
	}
	if c.ScreenH <= 0 {
		c.ScreenH = d.ScreenH
	}
	if c.FPS <= 0 {
		c.FPS = d.FPS
	}
	if c.Variant == "" {
		c.Variant = d.Variant
	}
	return c
}

// PlayerKey returns the name saved runs are filed under.
func (c RuntimeConfig) PlayerKey() string {
	if c.Player != "" {
		return c.Player
	}
	return "guest"
}
