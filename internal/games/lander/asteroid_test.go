package lander

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/moonlander/internal/core"
)

func TestAsteroidTip(t *testing.T) {
	a := Asteroid{Position: core.V(100, 200), Heading: 270, Size: 50}
	tip := a.Tip()
	if math.Abs(tip.X-100) > 1e-9 || math.Abs(tip.Y-175) > 1e-9 {
		t.Errorf("Tip() = %+v, expected (100, 175)", tip)
	}
}

func TestAsteroidCratersTerrain(t *testing.T) {
	cfg := quietConfig()
	field := NewAsteroidField(cfg, rand.New(rand.NewSource(1)))
	terrain := sloped(cfg.World.Width)

	field.Inject(Asteroid{ID: "rock", Position: core.V(500, 200), Speed: 100, Heading: 270, Size: 50})

	var impact AsteroidImpact
	var hit bool
	for i := 0; i < 20 && !hit; i++ {
		events := field.Update(float64(i)*0.1, 0.1, nil, terrain, true)
		impact, hit = hasEvent[AsteroidImpact](events)
	}

	if !hit {
		t.Fatal("asteroid never reached the ground")
	}
	if impact.ID != "rock" {
		t.Errorf("impact ID = %q, expected rock", impact.ID)
	}
	if math.Abs(impact.X-500) > 1e-6 {
		t.Errorf("impact X = %g, expected 500", impact.X)
	}
	if field.Len() != 0 {
		t.Errorf("Len() = %d, expected the asteroid to be retired", field.Len())
	}
	for i := 489; i <= 511; i++ {
		if h := terrain.At(i); h != 100 {
			t.Errorf("column %d = %g, expected crater floor 100", i, h)
		}
	}
	if terrain.At(488) != 105 || terrain.At(512) != 101 {
		t.Errorf("crater leaked past its radius: %g, %g", terrain.At(488), terrain.At(512))
	}
}

func TestAsteroidCraterScaling(t *testing.T) {
	cfg := quietConfig()
	cfg.Asteroids.CraterScaling = 2
	field := NewAsteroidField(cfg, rand.New(rand.NewSource(1)))
	terrain := NewFlatTerrain(cfg.World.Width, cfg.World.Height, 100)

	field.Inject(Asteroid{Position: core.V(900, 130), Speed: 100, Heading: 270, Size: 50})
	events := field.Update(0, 0.1, nil, terrain, true)

	impact, ok := hasEvent[AsteroidImpact](events)
	if !ok {
		t.Fatal("expected an impact")
	}
	if impact.Radius != 22 {
		t.Errorf("Radius = %g, expected 22", impact.Radius)
	}
	if impact.ID == "" {
		t.Error("injected asteroid should get an ID")
	}
}

func TestAsteroidHitsPlayer(t *testing.T) {
	cfg := quietConfig()
	terrain := NewFlatTerrain(cfg.World.Width, cfg.World.Height, 100)

	tests := []struct {
		name    string
		enabled bool
		state   PlayerState
	}{
		{"enabled", true, Crashed},
		{"disabled", false, Flying},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			field := NewAsteroidField(cfg, rand.New(rand.NewSource(1)))
			p := &Player{Team: "apollo", Position: core.V(300, 600), Fuel: 100}
			// Tip lands 5 units above the lander after one tick
			field.Inject(Asteroid{Position: core.V(300, 640), Speed: 100, Heading: 270, Size: 50})

			events := field.Update(0, 0.1, []*Player{p}, terrain, tc.enabled)

			if p.State != tc.state {
				t.Fatalf("State = %s, expected %s", p.State, tc.state)
			}
			crash, crashed := hasEvent[PlayerCrashed](events)
			if crashed != tc.enabled {
				t.Fatalf("crash event present = %v, expected %v", crashed, tc.enabled)
			}
			if crashed && crash.Reason != "asteroid collision" {
				t.Errorf("Reason = %q, expected asteroid collision", crash.Reason)
			}
		})
	}
}

func TestAsteroidSchedule(t *testing.T) {
	cfg := quietConfig()
	cfg.Asteroids.InitialDelay = 5
	cfg.Asteroids.MinDelay = 1
	cfg.Match.TimeLimit = 100
	field := NewAsteroidField(cfg, rand.New(rand.NewSource(9)))
	terrain := NewFlatTerrain(cfg.World.Width, cfg.World.Height, 0)

	var spawnTimes []float64
	for i := 0; i <= 1000; i++ {
		now := float64(i) * 0.1
		events := field.Update(now, 0.1, nil, terrain, true)
		if _, ok := hasEvent[AsteroidSpawned](events); ok {
			spawnTimes = append(spawnTimes, now)
		}
	}

	if len(spawnTimes) < 3 {
		t.Fatalf("expected several spawns, got %v", spawnTimes)
	}
	if math.Abs(spawnTimes[0]-5) > 0.11 {
		t.Errorf("first spawn at %g, expected about 5", spawnTimes[0])
	}
	first := spawnTimes[1] - spawnTimes[0]
	last := spawnTimes[len(spawnTimes)-1] - spawnTimes[len(spawnTimes)-2]
	if last >= first {
		t.Errorf("spawn gaps should shrink: first %g, last %g", first, last)
	}
}

func TestAsteroidSpawnShape(t *testing.T) {
	cfg := quietConfig()
	field := NewAsteroidField(cfg, rand.New(rand.NewSource(5)))

	for i := 0; i < 100; i++ {
		a := field.spawn()
		if a.Position.X < 0 || a.Position.X >= float64(cfg.World.Width) {
			t.Fatalf("spawn x = %g outside the world", a.Position.X)
		}
		if a.Position.Y != cfg.World.Height+cfg.Asteroids.Size {
			t.Fatalf("spawn y = %g, expected %g", a.Position.Y, cfg.World.Height+cfg.Asteroids.Size)
		}
		if a.Heading < 225 || a.Heading > 315 {
			t.Fatalf("spawn heading = %g outside [225, 315]", a.Heading)
		}
		if a.Speed < cfg.Asteroids.SpeedMin || a.Speed > cfg.Asteroids.SpeedMax {
			t.Fatalf("spawn speed = %g outside range", a.Speed)
		}
		if a.ID == "" {
			t.Fatal("spawned asteroid has no ID")
		}
	}
}

func TestAsteroidLeavesPlayArea(t *testing.T) {
	cfg := quietConfig()
	field := NewAsteroidField(cfg, rand.New(rand.NewSource(1)))
	terrain := NewFlatTerrain(cfg.World.Width, cfg.World.Height, 0)

	field.Inject(Asteroid{Position: core.V(10, cfg.World.Height+190), Speed: 200, Heading: 90, Size: 50})
	field.Update(0, 0.1, nil, terrain, true)

	if field.Len() != 0 {
		t.Errorf("asteroid flying off the top should be retired")
	}
	if terrain.Version() != 0 {
		t.Errorf("leaving the area must not carve a crater")
	}
}
