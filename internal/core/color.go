package core

import "crypto/md5"

// Color represents a foreground colour for a screen cell.
type Color uint8

// Palette entries, mapped to ANSI codes by the platform layer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// teamPalette holds the colours a team can be assigned. Red and gray are
// reserved for crashes and terrain.
var teamPalette = []Color{
	ColorGreen,
	ColorYellow,
	ColorBlue,
	ColorMagenta,
	ColorCyan,
	ColorBrightGreen,
	ColorBrightYellow,
	ColorBrightBlue,
	ColorBrightMagenta,
	ColorBrightCyan,
	ColorOrange,
}

// TeamColor derives a stable colour from a team name via its MD5 digest, so a
// team keeps its colour across matches and renderers.
func TeamColor(team string) Color {
	sum := md5.Sum([]byte(team))
	return teamPalette[int(sum[0])%len(teamPalette)]
}
