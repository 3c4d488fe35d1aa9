package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/moonlander/internal/core"
	"github.com/vovakirdan/moonlander/internal/games/lander"
	"github.com/vovakirdan/moonlander/internal/scores"
	"github.com/vovakirdan/moonlander/internal/storage"
)

// Layout constants
const (
	minWidthForSidebar = 72 // Minimum width to show the match sidebar
	sidebarWidth       = 26
	maxStandings       = 100
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// RenderSidebar lists every lander of the frame, best score first. The
// manual team is marked with '>'.
func RenderSidebar(f lander.Frame, manualTeam string, height int) string {
	players := append([]lander.PlayerInfo(nil), f.Players...)
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Score != players[j].Score {
			return players[i].Score > players[j].Score
		}
		return players[i].Team < players[j].Team
	})

	inner := sidebarWidth - 4
	var b strings.Builder
	b.WriteString(titleStyle.Render("Landers"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", inner))
	b.WriteString("\n")

	for _, p := range players {
		marker := "  "
		if p.Team == manualTeam {
			marker = "> "
		}
		name := p.Team
		if len(name) > inner-8 {
			name = name[:inner-9] + "."
		}
		color := colorStyles[core.TeamColor(p.Team)]
		if p.State == lander.Crashed {
			color = colorStyles[core.ColorRed]
		}
		b.WriteString(color.Render(fmt.Sprintf("%s%-*s%6d", marker, inner-8, name, p.Score)))
		b.WriteString("\n")

		detail := fmt.Sprintf("  %-7s fuel %4.0f", p.State, p.Fuel)
		if p.State == lander.Crashed && p.CrashReason != "" {
			detail = "  " + p.CrashReason
		}
		if len(detail) > inner {
			detail = detail[:inner]
		}
		b.WriteString(dimStyle.Render(detail))
		b.WriteString("\n")
	}

	return boxStyle.Width(sidebarWidth).Height(max(height-2, 1)).Render(b.String())
}

// StandingsKeyMap defines the key bindings for the standings viewer.
type StandingsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StandingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StandingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.NextTab, k.Quit}}
}

// DefaultStandingsKeyMap returns default key bindings.
func DefaultStandingsKeyMap() StandingsKeyMap {
	return StandingsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "left", "right"),
			key.WithHelp("tab", "switch table"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type standingsTab int

const (
	tabHistory standingsTab = iota // Aggregated SQLite history
	tabLedger                      // Running score file
)

// StandingsModel shows stored standings and the running score ledger.
type StandingsModel struct {
	store    *storage.Store
	ledger   *scores.Ledger
	tab      standingsTab
	table    table.Model
	help     help.Model
	keys     StandingsKeyMap
	width    int
	height   int
	err      error
	quitting bool
}

// NewStandingsModel creates a standings viewer. Either source may be nil.
func NewStandingsModel(store *storage.Store, ledger *scores.Ledger, width, height int) StandingsModel {
	m := StandingsModel{
		store:  store,
		ledger: ledger,
		help:   help.New(),
		keys:   DefaultStandingsKeyMap(),
		width:  width,
		height: height,
	}
	if store == nil {
		m.tab = tabLedger
	}
	m.reload()
	return m
}

// reload rebuilds the table for the current tab.
func (m *StandingsModel) reload() {
	var columns []table.Column
	var rows []table.Row
	m.err = nil

	switch m.tab {
	case tabHistory:
		columns = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Team", Width: 18},
			{Title: "Played", Width: 7},
			{Title: "Landed", Width: 7},
			{Title: "Crashed", Width: 8},
			{Title: "Best", Width: 6},
			{Title: "Total", Width: 8},
		}
		if m.store != nil {
			standings, err := m.store.Standings(maxStandings)
			m.err = err
			for i, s := range standings {
				rows = append(rows, table.Row{
					fmt.Sprintf("#%d", i+1), s.Team,
					fmt.Sprint(s.Matches), fmt.Sprint(s.Landings), fmt.Sprint(s.Crashes),
					fmt.Sprint(s.BestScore), fmt.Sprint(s.TotalScore),
				})
			}
		}
	case tabLedger:
		columns = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Team", Width: 24},
			{Title: "Score", Width: 10},
		}
		if m.ledger != nil {
			for i, e := range m.ledger.Ranked() {
				rows = append(rows, table.Row{fmt.Sprintf("#%d", i+1), e.Team, fmt.Sprint(e.Score)})
			}
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	m.table = t
}

// Rows returns the number of rows in the current table.
func (m StandingsModel) Rows() int {
	return len(m.table.Rows())
}

// Init initializes the model.
func (m StandingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the standings viewer.
func (m StandingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextTab):
			if m.store != nil && m.ledger != nil {
				m.tab = 1 - m.tab
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the standings.
func (m StandingsModel) View() string {
	if m.quitting {
		return ""
	}

	title := "STANDINGS - match history"
	if m.tab == tabLedger {
		title = "STANDINGS - score ledger"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(boxStyle.Render("Could not load standings:\n" + m.err.Error()))
	case m.Rows() == 0:
		empty := dimStyle.Italic(true).Padding(2, 4)
		b.WriteString(boxStyle.Render(empty.Render("No matches recorded yet.")))
	default:
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunStandings runs the standings viewer.
func RunStandings(store *storage.Store, ledger *scores.Ledger, width, height int) error {
	p := tea.NewProgram(NewStandingsModel(store, ledger, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// centerText pads text to centre it within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
