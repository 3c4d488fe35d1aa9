package lander

import "github.com/vovakirdan/moonlander/internal/core"

// PlayerInfo is the public state of a lander.
type PlayerInfo struct {
	Team        string
	Flag        string
	Position    core.Vec2
	Velocity    core.Vec2
	Heading     float64
	Fuel        float64
	Thrusters   Instructions
	State       PlayerState
	CrashReason string
	Score       int
}

// Speed returns the velocity magnitude.
func (p PlayerInfo) Speed() float64 {
	return p.Velocity.Len()
}

// AsteroidInfo is the public state of an asteroid.
type AsteroidInfo struct {
	ID       string
	Position core.Vec2
	Tip      core.Vec2
	Speed    float64
	Heading  float64 // Degrees, 0 = +X, 270 = straight down
	Size     float64
}

// Snapshot is the world as seen by one bot on one tick. It is built fresh
// for every call; changing it has no effect on the match.
type Snapshot struct {
	T         float64 // Seconds since the match started
	DT        float64 // Seconds covered by this tick
	Remaining float64 // Seconds until the time limit
	Me        PlayerInfo
	Terrain   TerrainView
	Players   map[string]PlayerInfo // Every other team
	Asteroids []AsteroidInfo
}

// Frame is the full read-only state handed to renderers.
type Frame struct {
	Tick      uint64
	T         float64
	Remaining float64
	Hazard    float64 // Asteroid pressure, 0 at the start to 1 at the time limit
	State     MatchState
	Paused    bool
	Reason    string
	Terrain   TerrainView
	Players   []PlayerInfo
	Asteroids []AsteroidInfo
}
