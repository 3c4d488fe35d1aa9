package bots

import (
	"math"

	"github.com/vovakirdan/moonlander/internal/config"
	"github.com/vovakirdan/moonlander/internal/core"
	"github.com/vovakirdan/moonlander/internal/games/lander"
)

// Autopilot control gains and limits.
const (
	cruiseAltitude  = 120.0 // Height kept while travelling to the site
	approachRadius  = 15.0  // Horizontal distance at which descent starts
	flareAltitude   = 15.0  // Below this the lander is held upright
	maxTilt         = 30.0  // Degrees
	headingBand     = 1.0   // Degrees of heading error tolerated
	lateralGain     = 0.08
	velocityGain    = 0.5
	distancePenalty = 0.002 // Site cost per unit of travel
)

// Autopilot flies to the flattest reachable stretch of ground and lets
// itself down on it. It re-plans whenever a crater changes the terrain.
type Autopilot struct {
	team    string
	thrust  float64
	avatarW float64
	avatarH float64

	target        float64
	targetVersion uint64
	planned       bool
}

// NewAutopilot creates an autopilot tuned for the default physics.
func NewAutopilot(team string) *Autopilot {
	return NewAutopilotFor(team, config.DefaultLanderConfig())
}

// NewAutopilotFor creates an autopilot tuned for cfg.
func NewAutopilotFor(team string, cfg config.LanderConfig) *Autopilot {
	a := &Autopilot{team: team}
	a.Tune(cfg)
	return a
}

// Tune adopts the physics and footprint of cfg.
func (a *Autopilot) Tune(cfg config.LanderConfig) {
	a.thrust = cfg.Physics.Thrust
	a.avatarW = cfg.Landing.AvatarWidth
	a.avatarH = cfg.Landing.AvatarHeight
}

// Team returns the team name.
func (a *Autopilot) Team() string { return a.team }

// Flag returns the avatar hint.
func (a *Autopilot) Flag() string { return "AP" }

// Target returns the planned landing x, if any.
func (a *Autopilot) Target() (float64, bool) {
	return a.target, a.planned
}

// Decide steers towards the target site.
func (a *Autopilot) Decide(s *lander.Snapshot) (*lander.Instructions, error) {
	me := s.Me
	if !a.planned || s.Terrain.Version() != a.targetVersion {
		a.target = FlattestSite(s.Terrain, me.Position.X, int(a.avatarW))
		a.targetVersion = s.Terrain.Version()
		a.planned = true
	}

	width := float64(s.Terrain.Width())
	dx := wrappedDelta(me.Position.X, a.target, width)
	ground := footprintTop(s.Terrain, me.Position.X, a.avatarW)
	alt := me.Position.Y - a.avatarH/2 - ground

	vxWant := core.ClampF(dx*lateralGain, -20, 20)
	var vyWant float64
	if math.Abs(dx) > approachRadius {
		vyWant = core.ClampF((cruiseAltitude-alt)*0.2, -6, 6)
	} else {
		vyWant = -core.ClampF(alt*0.1, 0.8, 6)
	}

	// Thrust pushes along heading+90, so its x component is -thrust*sin(h).
	tilt := 0.0
	if alt > flareAltitude && a.thrust > 0 {
		ax := (vxWant - me.Velocity.X) * velocityGain
		tilt = math.Asin(core.ClampF(-ax/a.thrust, -1, 1)) * 180 / math.Pi
		tilt = core.ClampF(tilt, -maxTilt, maxTilt)
	}

	var ins lander.Instructions
	heading := core.SignedHeading(me.Heading)
	switch {
	case heading < tilt-headingBand:
		ins.Left = true
	case heading > tilt+headingBand:
		ins.Right = true
	}
	ins.Main = me.Velocity.Y < vyWant
	return &ins, nil
}

// FlattestSite returns the centre x of the footprint-wide window with the
// smallest height range, lightly penalising distance from x.
func FlattestSite(t lander.TerrainView, x float64, footprint int) float64 {
	n := t.Width()
	if n == 0 || footprint <= 0 {
		return x
	}
	half := float64(footprint) / 2

	best, bestCost := x, math.Inf(1)
	for c := 0; c < n; c++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := c; i < c+footprint; i++ {
			h := t.At(i)
			lo = math.Min(lo, h)
			hi = math.Max(hi, h)
		}
		centre := float64(c) + half
		cost := (hi - lo) + distancePenalty*math.Abs(wrappedDelta(x, centre, float64(n)))
		if cost < bestCost {
			best, bestCost = centre, cost
		}
	}
	return core.Wrap(best, float64(n))
}

// wrappedDelta returns the shortest signed distance from a to b on a ring.
func wrappedDelta(a, b, period float64) float64 {
	d := core.Wrap(b-a, period)
	if d >= period/2 {
		d -= period
	}
	return d
}

// footprintTop returns the highest terrain sample under a lander at x.
func footprintTop(t lander.TerrainView, x, width float64) float64 {
	lo := int(math.Floor(x - width/2))
	hi := int(math.Floor(x+width/2)) - 1
	top := math.Inf(-1)
	for i := lo; i <= hi; i++ {
		top = math.Max(top, t.At(i))
	}
	return top
}
