package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/moonlander/internal/core"
	"github.com/vovakirdan/moonlander/internal/games/lander"
)

// Options configures the match viewer.
type Options struct {
	TickRate int // Ticks per second, default 30
	Width    int
	Height   int
}

// Model is the Bubble Tea model that owns and drives one match.
// The match is only touched from Update, so it needs no locking.
type Model struct {
	match    *lander.Match
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	pilot    *Pilot
	tickRate int
	width    int
	height   int
	lastTick time.Time
	err      error
	quitting bool
}

// NewModel creates a viewer for m. If the match has a manual team, the
// keyboard steers it.
func NewModel(m *lander.Match, opts Options) Model {
	cfg := core.DefaultConfig()
	if opts.TickRate > 0 {
		cfg.TickRate = opts.TickRate
	}
	if opts.Width > 0 {
		cfg.ScreenW = opts.Width
	}
	if opts.Height > 0 {
		cfg.ScreenH = opts.Height
	}

	model := Model{
		match:    m,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		pilot:    NewPilot(),
		tickRate: cfg.TickRate,
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
	}
	model.screen = core.NewScreen(model.fieldSize())
	return model
}

// fieldSize returns the playfield size, leaving room for the sidebar and
// the help line.
func (m Model) fieldSize() (int, int) {
	w := m.width
	if m.width >= minWidthForSidebar {
		w -= sidebarWidth + 2
	}
	return max(w, 1), max(m.height-1, 2)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and advances the match on ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.screen.Resize(m.fieldSize())
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionPause:
		m.match.SetPaused(!m.match.Paused())
	case core.ActionNone:
	default:
		if m.match.ManualTeam() != "" {
			m.pilot.Press(action, now)
		}
	}
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := time.Second / time.Duration(m.tickRate)
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now

	if team := m.match.ManualTeam(); team != "" {
		// The manual team always has a lander, so this cannot fail.
		_ = m.match.SetThrusters(team, m.pilot.Instructions(now))
	}

	if _, err := m.match.Update(dt); err != nil {
		m.err = err
		return m, tea.Quit
	}
	return m, tickCmd(m.tickRate)
}

// Err returns the error that stopped the match, if any.
func (m Model) Err() error {
	return m.err
}

// View renders the playfield, sidebar and help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	frame := m.match.Frame()
	DrawFrame(m.screen, frame, m.match.Config().World.Height)
	view := RenderScreen(m.screen)
	if m.width >= minWidthForSidebar {
		view = lipgloss.JoinHorizontal(lipgloss.Top, view, " ", RenderSidebar(frame, m.match.ManualTeam(), m.screen.Height()))
	}

	footer := m.help.View(m.keys)
	if frame.State != lander.StateRunning {
		footer = "match over - q to quit"
	}
	return view + "\n" + dimStyle.Render(footer)
}

// Run plays the match in the terminal until it is quit.
func Run(m *lander.Match, opts Options) error {
	p := tea.NewProgram(NewModel(m, opts), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
