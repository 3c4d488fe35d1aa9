package bots

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/moonlander/internal/config"
	"github.com/vovakirdan/moonlander/internal/core"
	"github.com/vovakirdan/moonlander/internal/games/lander"
	"github.com/vovakirdan/moonlander/internal/registry"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time { return c.now }

func snapshotAt(terrain lander.TerrainView, pos, vel core.Vec2, heading float64) *lander.Snapshot {
	return &lander.Snapshot{
		DT:        0.1,
		Remaining: 300,
		Me: lander.PlayerInfo{
			Team:     "ap",
			Position: pos,
			Velocity: vel,
			Heading:  heading,
			Fuel:     3000,
		},
		Terrain: terrain,
	}
}

func flatView() lander.TerrainView {
	return lander.NewFlatTerrain(1720, 1080, 100).View()
}

func TestBuiltinsRegistered(t *testing.T) {
	for _, kind := range []string{"autopilot", "idle", "chaos"} {
		if !registry.Exists(kind) {
			t.Errorf("Exists(%q) = false, expected true", kind)
			continue
		}
		b, err := registry.Create(kind, "team-"+kind)
		if err != nil {
			t.Fatalf("Create(%q) error: %v", kind, err)
		}
		if b.Team() != "team-"+kind {
			t.Errorf("Team() = %q, expected %q", b.Team(), "team-"+kind)
		}
	}
}

func TestIdleNeverFires(t *testing.T) {
	ins, err := NewIdle("i").Decide(snapshotAt(flatView(), core.V(10, 500), core.Vec2{}, 0))
	if ins != nil || err != nil {
		t.Errorf("Decide() = %v, %v, expected nil, nil", ins, err)
	}
}

func TestChaosSeeded(t *testing.T) {
	decide := func(b *Chaos) (ins *lander.Instructions, err error, panicked bool) {
		defer func() {
			if r := recover(); r != nil {
				panicked = true
			}
		}()
		ins, err = b.Decide(nil)
		return ins, err, false
	}

	a, b := NewChaos("a", 42), NewChaos("b", 42)
	for i := 0; i < 500; i++ {
		ia, ea, pa := decide(a)
		ib, eb, pb := decide(b)
		if pa != pb || (ea == nil) != (eb == nil) || (ia == nil) != (ib == nil) {
			t.Fatalf("call %d diverged", i)
		}
		if ia != nil && *ia != *ib {
			t.Fatalf("call %d: %+v != %+v", i, *ia, *ib)
		}
	}
}

func TestChaosFaultRate(t *testing.T) {
	calm := NewChaos("c", 7)
	calm.FaultRate = 0
	for i := 0; i < 200; i++ {
		if _, err := calm.Decide(nil); err != nil {
			t.Fatalf("Decide() error with FaultRate 0: %v", err)
		}
	}

	broken := NewChaos("c", 7)
	broken.FaultRate = 1
	for i := 0; i < 50; i++ {
		func() {
			defer func() { _ = recover() }()
			if _, err := broken.Decide(nil); err == nil {
				t.Fatal("Decide() succeeded with FaultRate 1")
			}
		}()
	}
}

func TestFlattestSite(t *testing.T) {
	heights := make([]float64, 200)
	for i := range heights {
		heights[i] = 100 + float64(i%5)*3
	}
	for i := 120; i < 150; i++ {
		heights[i] = 90
	}
	view := lander.NewTerrainFromHeights(heights, 1080).View()

	x := FlattestSite(view, 20, 25)
	if x < 120+12.5 || x > 150-12.5 {
		t.Errorf("FlattestSite() = %f, expected a centre inside the plateau", x)
	}
}

func TestFlattestSitePrefersNearby(t *testing.T) {
	x := FlattestSite(flatView(), 400, 25)
	if math.Abs(x-400) > 1 {
		t.Errorf("FlattestSite() on flat ground = %f, expected about 400", x)
	}
}

func TestWrappedDelta(t *testing.T) {
	tests := []struct {
		a, b, expected float64
	}{
		{10, 20, 10},
		{20, 10, -10},
		{1710, 10, 20},
		{10, 1710, -20},
	}
	for _, tc := range tests {
		if got := wrappedDelta(tc.a, tc.b, 1720); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("wrappedDelta(%g, %g) = %g, expected %g", tc.a, tc.b, got, tc.expected)
		}
	}
}

func TestAutopilotDecisions(t *testing.T) {
	tests := []struct {
		name    string
		pos     core.Vec2
		vel     core.Vec2
		heading float64
		main    bool
		left    bool
		right   bool
	}{
		{"falling fast above site", core.V(860, 400), core.V(0, -20), 0, true, false, false},
		{"rising above site", core.V(860, 400), core.V(0, 5), 0, false, false, false},
		{"drifting right tilts left", core.V(860, 400), core.V(10, -20), 0, true, true, false},
		{"drifting left tilts right", core.V(860, 400), core.V(-10, -20), 0, true, false, true},
		{"uprights near ground", core.V(860, 120), core.V(0, -0.5), 20, false, false, true},
		{"uprights from the other side", core.V(860, 120), core.V(0, -0.5), 340, false, true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ap := NewAutopilot("ap")
			ins, err := ap.Decide(snapshotAt(flatView(), tc.pos, tc.vel, tc.heading))
			if err != nil {
				t.Fatalf("Decide() error: %v", err)
			}
			if ins.Main != tc.main || ins.Left != tc.left || ins.Right != tc.right {
				t.Errorf("Decide() = %+v, expected main=%v left=%v right=%v", *ins, tc.main, tc.left, tc.right)
			}
		})
	}
}

func TestAutopilotReplansOnCrater(t *testing.T) {
	terrain := lander.NewFlatTerrain(1720, 1080, 100)
	ap := NewAutopilot("ap")
	if _, err := ap.Decide(snapshotAt(terrain.View(), core.V(860, 400), core.Vec2{}, 0)); err != nil {
		t.Fatal(err)
	}
	first, ok := ap.Target()
	if !ok {
		t.Fatal("Target() not planned after Decide")
	}

	terrain.CarveCrater(first, 40)
	if _, err := ap.Decide(snapshotAt(terrain.View(), core.V(860, 400), core.Vec2{}, 0)); err != nil {
		t.Fatal(err)
	}
	if ap.targetVersion != terrain.Version() {
		t.Errorf("targetVersion = %d, expected %d", ap.targetVersion, terrain.Version())
	}
}

func TestAutopilotLandsOnFlatGround(t *testing.T) {
	cfg := config.DefaultLanderConfig()
	cfg.Physics.SpawnVX = 0
	cfg.Physics.SpawnAltitude = 780
	cfg.Asteroids.InitialDelay = 1e6
	cfg.Asteroids.MinDelay = 1e6

	clock := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m, err := lander.NewMatch(cfg, []lander.Bot{NewAutopilotFor("ap", cfg)}, lander.MatchOptions{
		Seed:    1,
		Clock:   clock,
		Terrain: lander.NewFlatTerrain(cfg.World.Width, cfg.World.Height, 100),
	})
	if err != nil {
		t.Fatalf("NewMatch() error: %v", err)
	}

	const dt = 50 * time.Millisecond
	for i := 0; i < 5000 && m.State() == lander.StateRunning; i++ {
		clock.now = clock.now.Add(dt)
		if _, err := m.Update(dt); err != nil {
			t.Fatalf("Update() error: %v", err)
		}
	}

	p, _ := m.Player("ap")
	if p.State != lander.Landed {
		t.Fatalf("State = %v (%s), expected landed", p.State, p.CrashReason)
	}
	if p.Score <= 0 {
		t.Errorf("Score = %d, expected a positive score", p.Score)
	}
}

func TestTuneAll(t *testing.T) {
	cfg := config.DefaultLanderConfig()
	cfg.Physics.Thrust = 9
	cfg.Landing.AvatarWidth = 40

	ap := NewAutopilot("ap")
	TuneAll([]lander.Bot{ap, NewIdle("i")}, cfg)
	if ap.thrust != 9 || ap.avatarW != 40 {
		t.Errorf("Tune() gave thrust %g width %g, expected 9 and 40", ap.thrust, ap.avatarW)
	}
}
