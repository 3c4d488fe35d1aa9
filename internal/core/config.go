package core

// ViewConfig holds the viewer defaults: terminal size and redraw rate.
// Gameplay tunables live in the config package.
type ViewConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Redraws and simulation steps per second
}

// DefaultConfig returns a ViewConfig sized for a common terminal.
func DefaultConfig() ViewConfig {
	return ViewConfig{
		ScreenW:  120,
		ScreenH:  40,
		TickRate: 30,
	}
}
