package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/moonlander/internal/core"
	"github.com/vovakirdan/moonlander/internal/games/lander"
)

// Glyphs
const (
	glyphFlying   = 'A'
	glyphLanded   = 'Λ'
	glyphCrashed  = 'x'
	glyphFlame    = '\''
	glyphAsteroid = '*'
	glyphGround   = '█'
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Viewport maps world coordinates onto a character grid. Row 0 is the top
// of the grid, world y grows upwards.
type Viewport struct {
	Cols, Rows int
	WorldW     float64
	WorldH     float64
}

// Col returns the grid column of world x.
func (v Viewport) Col(x float64) int {
	if v.WorldW <= 0 {
		return 0
	}
	return core.Clamp(int(x/v.WorldW*float64(v.Cols)), 0, v.Cols-1)
}

// Row returns the grid row of world y. Heights outside the world clamp to
// the edge rows.
func (v Viewport) Row(y float64) int {
	if v.WorldH <= 0 {
		return 0
	}
	return core.Clamp(v.Rows-1-int(y/v.WorldH*float64(v.Rows)), 0, v.Rows-1)
}

// DrawFrame draws terrain, landers and asteroids into s. The top row is
// reserved for the status line.
func DrawFrame(s *core.Screen, f lander.Frame, worldH float64) {
	s.Clear()
	if s.Width() == 0 || s.Height() < 2 {
		return
	}
	vp := Viewport{Cols: s.Width(), Rows: s.Height() - 1, WorldW: float64(f.Terrain.Width()), WorldH: worldH}
	const top = 1

	// Terrain: tallest world column under each grid column.
	n := f.Terrain.Width()
	for c := 0; c < vp.Cols && n > 0; c++ {
		from := c * n / vp.Cols
		to := max((c+1)*n/vp.Cols, from+1)
		h := math.Inf(-1)
		for i := from; i < to; i++ {
			h = math.Max(h, f.Terrain.At(i))
		}
		row := vp.Row(h)
		s.DrawVLine(c, top+row, vp.Rows-row, glyphGround, core.ColorGray)
	}

	for _, a := range f.Asteroids {
		s.SetColored(vp.Col(core.Wrap(a.Position.X, vp.WorldW)), top+vp.Row(a.Position.Y), glyphAsteroid, core.ColorBrightWhite)
	}

	for _, p := range f.Players {
		col, row := vp.Col(p.Position.X), top+vp.Row(p.Position.Y)
		switch p.State {
		case lander.Flying:
			if p.Thrusters.Main {
				s.SetColored(col, row+1, glyphFlame, core.ColorOrange)
			}
			s.SetColored(col, row, glyphFlying, core.TeamColor(p.Team))
		case lander.Landed:
			s.SetColored(col, row, glyphLanded, core.TeamColor(p.Team))
		case lander.Crashed:
			s.SetColored(col, row, glyphCrashed, core.ColorRed)
		}
	}

	s.DrawTextColored(0, 0, StatusLine(f), core.ColorBrightWhite)
}

// StatusLine summarises the match clock and state.
func StatusLine(f lander.Frame) string {
	status := fmt.Sprintf(" T %6.1f  left %6.1f  hazard %3.0f%%", f.T, f.Remaining, f.Hazard*100)
	switch {
	case f.Paused:
		status += "  [PAUSED]"
	case f.State != lander.StateRunning:
		status += "  " + strings.ToUpper(f.Reason)
	}
	return status
}
