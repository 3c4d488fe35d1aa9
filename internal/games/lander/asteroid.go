package lander

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/vovakirdan/moonlander/internal/config"
	"github.com/vovakirdan/moonlander/internal/core"
)

// Asteroid is a falling projectile.
type Asteroid struct {
	ID       string
	Position core.Vec2
	Speed    float64
	Heading  float64 // Degrees, 0 = +X, 270 = straight down
	Size     float64
}

// Tip returns the leading point of the asteroid along its heading.
func (a *Asteroid) Tip() core.Vec2 {
	return a.Position.Add(core.FromHeading(a.Heading, a.Size/2))
}

// Info returns a detached copy of the asteroid state.
func (a *Asteroid) Info() AsteroidInfo {
	return AsteroidInfo{
		ID:       a.ID,
		Position: a.Position,
		Tip:      a.Tip(),
		Speed:    a.Speed,
		Heading:  a.Heading,
		Size:     a.Size,
	}
}

// AsteroidField spawns, moves and retires asteroids.
type AsteroidField struct {
	cfg       config.AsteroidConfig
	ramp      config.HazardRamp
	width     float64
	height    float64
	rng       *rand.Rand
	live      []*Asteroid
	nextSpawn float64
}

// NewAsteroidField creates an empty field. The first asteroid arrives after
// the initial delay.
func NewAsteroidField(cfg config.LanderConfig, rng *rand.Rand) *AsteroidField {
	ramp := config.NewHazardRamp(cfg)
	return &AsteroidField{
		cfg:       cfg.Asteroids,
		ramp:      ramp,
		width:     float64(cfg.World.Width),
		height:    cfg.World.Height,
		rng:       rng,
		nextSpawn: ramp.SpawnDelay(0),
	}
}

// Inject adds an asteroid directly. A missing ID is filled in.
func (f *AsteroidField) Inject(a Asteroid) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	f.live = append(f.live, &a)
}

// Live returns copies of the live asteroids.
func (f *AsteroidField) Live() []AsteroidInfo {
	out := make([]AsteroidInfo, len(f.live))
	for i, a := range f.live {
		out[i] = a.Info()
	}
	return out
}

// Len returns the number of live asteroids.
func (f *AsteroidField) Len() int {
	return len(f.live)
}

// spawn creates an asteroid above the play area.
func (f *AsteroidField) spawn() *Asteroid {
	a := &Asteroid{
		ID:       uuid.NewString(),
		Position: core.V(f.rng.Float64()*f.width, f.height+f.cfg.Size),
		Heading:  270 + (2*f.rng.Float64()-1)*f.cfg.HeadingSpread,
		Speed:    f.cfg.SpeedMin + f.rng.Float64()*(f.cfg.SpeedMax-f.cfg.SpeedMin),
		Size:     f.cfg.Size,
	}
	f.live = append(f.live, a)
	return a
}

// Update spawns on schedule, advances every asteroid by dt, crashes players
// hit by a tip when hitPlayers is set, and carves craters where tips reach
// the ground.
func (f *AsteroidField) Update(t, dt float64, players []*Player, terrain *Terrain, hitPlayers bool) []Event {
	var events []Event

	if t >= f.nextSpawn {
		a := f.spawn()
		f.nextSpawn = t + f.ramp.SpawnDelay(t)
		events = append(events, AsteroidSpawned{ID: a.ID})
	}

	kept := f.live[:0]
	for _, a := range f.live {
		a.Position = a.Position.Add(core.FromHeading(a.Heading, a.Speed*dt))
		a.Position.X = core.Wrap(a.Position.X, f.width)
		tip := a.Tip()

		if hitPlayers {
			reach := f.cfg.HitFraction * a.Size
			for _, p := range players {
				if p.Active() && tip.Dist(p.Position) < reach {
					p.crash("asteroid collision")
					events = append(events, PlayerCrashed{Team: p.Team, Reason: p.CrashReason})
				}
			}
		}

		if tip.Y <= terrain.HeightAt(tip.X) {
			r := f.ramp.CraterRadius()
			x := core.Wrap(tip.X, f.width)
			terrain.CarveCrater(x, r)
			events = append(events, AsteroidImpact{ID: a.ID, X: x, Radius: r})
			continue
		}
		if a.Position.Y < -a.Size || a.Position.Y > f.height+4*a.Size {
			continue
		}
		kept = append(kept, a)
	}
	// Drop references held past the new length.
	for i := len(kept); i < len(f.live); i++ {
		f.live[i] = nil
	}
	f.live = kept

	return events
}
