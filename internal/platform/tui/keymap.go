package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/moonlander/internal/core"
	"github.com/vovakirdan/moonlander/internal/games/lander"
)

// PulseDuration is how long one key press holds a thruster. Terminals
// report key repeats but never key releases.
const PulseDuration = 300 * time.Millisecond

// KeyMap defines the viewer key bindings.
type KeyMap struct {
	Main  key.Binding
	Left  key.Binding
	Right key.Binding
	Pause key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Main, k.Left, k.Right, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Main, k.Left, k.Right},
		{k.Pause, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Main: key.NewBinding(
			key.WithKeys("up", "w", " "),
			key.WithHelp("up/w", "main engine"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("left/a", "rotate left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("right/d", "rotate right"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a control action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Main):
		return core.ActionMainThrust
	case key.Matches(msg, k.Left):
		return core.ActionRotateLeft
	case key.Matches(msg, k.Right):
		return core.ActionRotateRight
	}
	return core.ActionNone
}

// Pilot turns discrete key presses into held thrusters.
type Pilot struct {
	until map[core.Action]time.Time
}

// NewPilot creates a pilot with every thruster released.
func NewPilot() *Pilot {
	return &Pilot{until: make(map[core.Action]time.Time)}
}

// Press holds the thruster for action until now+PulseDuration.
func (p *Pilot) Press(action core.Action, now time.Time) {
	switch action {
	case core.ActionMainThrust, core.ActionRotateLeft, core.ActionRotateRight:
		p.until[action] = now.Add(PulseDuration)
	}
}

// Frame returns the actions held at now.
func (p *Pilot) Frame(now time.Time) core.InputFrame {
	frame := core.NewInputFrame()
	for action, until := range p.until {
		if now.Before(until) {
			frame.Set(action)
		}
	}
	return frame
}

// Instructions returns the thrusters held at now.
func (p *Pilot) Instructions(now time.Time) lander.Instructions {
	frame := p.Frame(now)
	return lander.Instructions{
		Main:  frame.Has(core.ActionMainThrust),
		Left:  frame.Has(core.ActionRotateLeft),
		Right: frame.Has(core.ActionRotateRight),
	}
}
