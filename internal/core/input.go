package core

// Action represents a semantic control action, abstracted from physical key
// presses, used by the manually piloted lander.
type Action int

const (
	ActionNone        Action = iota
	ActionMainThrust         // Up, W - fire the main engine
	ActionRotateLeft         // Left, A - counter-clockwise rotation thruster
	ActionRotateRight        // Right, D - clockwise rotation thruster
	ActionPause              // P - pause/unpause the match
	ActionQuit               // Q, Ctrl+C - leave the viewer
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMainThrust:
		return "MainThrust"
	case ActionRotateLeft:
		return "RotateLeft"
	case ActionRotateRight:
		return "RotateRight"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the actions triggered during one scheduler tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}
