package lander

import (
	"github.com/vovakirdan/moonlander/internal/config"
	"github.com/vovakirdan/moonlander/internal/core"
)

// PlayerState is the lifecycle of a lander.
type PlayerState int

const (
	Flying PlayerState = iota
	Landed
	Crashed
)

// String returns the lowercase state name.
func (s PlayerState) String() string {
	switch s {
	case Flying:
		return "flying"
	case Landed:
		return "landed"
	case Crashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// Instructions is the thruster command a bot produces for one tick.
// A returned value replaces all three thruster flags.
type Instructions struct {
	Main  bool
	Left  bool
	Right bool
}

// Any reports whether at least one thruster is requested.
func (i Instructions) Any() bool {
	return i.Main || i.Left || i.Right
}

// Player is one team's lander. Only the match mutates it.
type Player struct {
	Team        string
	Flag        string
	Position    core.Vec2
	Velocity    core.Vec2
	Heading     float64 // Degrees, 0 = upright, counter-clockwise positive
	Fuel        float64
	Thrusters   Instructions
	State       PlayerState
	CrashReason string
	Score       int
}

// Active reports whether the player still takes part in physics.
func (p *Player) Active() bool {
	return p.State == Flying
}

// Apply replaces the thruster flags.
func (p *Player) Apply(ins Instructions) {
	p.Thrusters = ins
}

// Integrate advances a flying player by dt seconds. Landed and crashed
// players are left untouched.
func (p *Player) Integrate(dt, width float64, phys config.PhysicsConfig, fuel config.FuelConfig) {
	if !p.Active() {
		return
	}

	acc := core.V(0, -phys.Gravity)
	if p.Thrusters.Main && p.Fuel > 0 {
		acc = acc.Add(core.FromHeading(p.Heading+90, phys.Thrust))
	}
	p.Velocity = p.Velocity.Add(acc.Scale(dt))
	p.Position = p.Position.Add(p.Velocity.Scale(dt))
	p.Position.X = core.Wrap(p.Position.X, width)

	if p.Fuel > 0 {
		if p.Thrusters.Left {
			p.Heading += phys.RotationSpeed * dt
		}
		if p.Thrusters.Right {
			p.Heading -= phys.RotationSpeed * dt
		}
	}
	p.Heading = core.WrapHeading(p.Heading)

	var burn float64
	if p.Thrusters.Main {
		burn += fuel.MainBurnRate * dt
	}
	if p.Thrusters.Left || p.Thrusters.Right {
		burn += fuel.RotationBurnRate * dt
	}
	p.Fuel = max(p.Fuel-burn, 0)
}

// crash freezes the player with the given reason.
func (p *Player) crash(reason string) {
	p.State = Crashed
	p.CrashReason = reason
	p.Thrusters = Instructions{}
}

// land freezes the player on the ground at groundY with the given score.
func (p *Player) land(groundY, avatarHeight float64, score int) {
	p.State = Landed
	p.Score = score
	p.Position.Y = groundY + avatarHeight/2
	p.Velocity = core.Vec2{}
	p.Thrusters = Instructions{}
}

// Info returns a detached copy of the public player state.
func (p *Player) Info() PlayerInfo {
	return PlayerInfo{
		Team:        p.Team,
		Flag:        p.Flag,
		Position:    p.Position,
		Velocity:    p.Velocity,
		Heading:     p.Heading,
		Fuel:        p.Fuel,
		Thrusters:   p.Thrusters,
		State:       p.State,
		CrashReason: p.CrashReason,
		Score:       p.Score,
	}
}
