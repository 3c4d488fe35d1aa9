package lander

import (
	"strings"
	"testing"

	"github.com/vovakirdan/moonlander/internal/config"
	"github.com/vovakirdan/moonlander/internal/core"
)

// touching places a lander so its floor sits just below ground level.
func touching(x, ground float64, v core.Vec2, heading float64) *Player {
	return &Player{
		Position: core.V(x, ground+12.5-0.01),
		Velocity: v,
		Heading:  heading,
		Fuel:     1500,
	}
}

func TestEvaluateNoContact(t *testing.T) {
	judge := NewLandingJudge(config.DefaultLanderConfig())
	terrain := NewFlatTerrain(1720, 1080, 100)
	p := &Player{Position: core.V(500, 113), Velocity: core.V(0, -50)}

	if v := judge.Evaluate(p, terrain, 1); v.Contact {
		t.Errorf("Evaluate() reported contact for a lander above ground: %+v", v)
	}
}

func TestLandingDeterminism(t *testing.T) {
	judge := NewLandingJudge(config.DefaultLanderConfig())
	terrain := NewFlatTerrain(1720, 1080, 100)

	tests := []struct {
		name    string
		x       float64
		v       core.Vec2
		heading float64
	}{
		{"gentle", 500, core.V(0, -1), 0},
		{"at speed limit", 500, core.V(3, -4), 0},
		{"tilted left", 500, core.V(0, -2), 5},
		{"tilted right", 500, core.V(0, -2), 355},
		{"across seam", 3, core.V(0.5, -2), 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := judge.Evaluate(touching(tc.x, 100, tc.v, tc.heading), terrain, 0.5)
			if !v.Landed() {
				t.Fatalf("expected landing, got reasons %q", v.Reason())
			}
			if v.Score <= 0 {
				t.Errorf("Score = %d, expected > 0", v.Score)
			}
		})
	}
}

func TestCrashDeterminism(t *testing.T) {
	judge := NewLandingJudge(config.DefaultLanderConfig())
	flat := NewFlatTerrain(1720, 1080, 100)

	step := make([]float64, 1720)
	for i := range step {
		step[i] = 100
		if i >= 500 {
			step[i] = 80
		}
	}
	cliff := NewTerrainFromHeights(step, 1080)

	tests := []struct {
		name    string
		terrain *Terrain
		heading float64
	}{
		{"flat upright", flat, 0},
		{"flat tilted", flat, 40},
		{"cliff upright", cliff, 0},
		{"cliff tilted", cliff, 300},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := judge.Evaluate(touching(500, 100, core.V(4, -6), tc.heading), tc.terrain, 1)
			if !v.Contact || v.Landed() {
				t.Fatalf("expected crash, got %+v", v)
			}
			if !strings.Contains(v.Reason(), "velocity") {
				t.Errorf("Reason() = %q, expected a velocity mention", v.Reason())
			}
			if v.Score != 0 {
				t.Errorf("crash Score = %d, expected 0", v.Score)
			}
		})
	}
}

func TestCrashReasons(t *testing.T) {
	judge := NewLandingJudge(config.DefaultLanderConfig())

	step := make([]float64, 1720)
	for i := range step {
		step[i] = 100
		if i >= 500 {
			step[i] = 80
		}
	}
	cliff := NewTerrainFromHeights(step, 1080)

	v := judge.Evaluate(touching(500, 100, core.V(0, -10), 20), cliff, 1)
	expected := []string{"uneven terrain", "velocity too high", "bad angle"}
	for _, want := range expected {
		if !strings.Contains(v.Reason(), want) {
			t.Errorf("Reason() = %q, missing %q", v.Reason(), want)
		}
	}
	if len(v.Reasons) != 3 {
		t.Errorf("len(Reasons) = %d, expected 3", len(v.Reasons))
	}
	if !strings.HasPrefix(v.Reason(), "uneven terrain, velocity too high (10.00 > 5)") {
		t.Errorf("Reason() = %q, unexpected format", v.Reason())
	}
}

func TestFootprint(t *testing.T) {
	judge := NewLandingJudge(config.DefaultLanderConfig())

	tests := []struct {
		x         float64
		lo, count int
	}{
		{500, 487, 25},
		{500.6, 488, 25},
		{0, -13, 25},
	}

	for _, tc := range tests {
		lo, count := judge.footprint(tc.x)
		if lo != tc.lo || count != tc.count {
			t.Errorf("footprint(%g) = (%d, %d), expected (%d, %d)", tc.x, lo, count, tc.lo, tc.count)
		}
	}
}

func TestSiteWidthRewardsNarrowSites(t *testing.T) {
	cfg := config.DefaultLanderConfig()
	judge := NewLandingJudge(cfg)

	heights := make([]float64, 1720)
	for i := range heights {
		heights[i] = 50
	}
	for i := 480; i < 520; i++ {
		heights[i] = 100 // 40 columns of plateau
	}
	plateau := NewTerrainFromHeights(heights, 1080)
	flat := NewFlatTerrain(1720, 1080, 100)

	narrow := judge.Evaluate(touching(500, 100, core.V(0, -1), 0), plateau, 0)
	wide := judge.Evaluate(touching(500, 100, core.V(0, -1), 0), flat, 0)

	if narrow.SiteWidth != 40 {
		t.Errorf("plateau SiteWidth = %d, expected 40", narrow.SiteWidth)
	}
	if wide.SiteWidth != 1720 {
		t.Errorf("flat SiteWidth = %d, expected 1720", wide.SiteWidth)
	}
	if narrow.Score <= wide.Score {
		t.Errorf("narrow site score %d should beat wide site score %d", narrow.Score, wide.Score)
	}
}

func TestLandingScore(t *testing.T) {
	cfg := config.DefaultLanderConfig()
	judge := NewLandingJudge(cfg)

	// 100 + 100*25/25 + 100*0.5 + 100*1500/3000
	if got := judge.score(25, 25, 0.5, 1500); got != 300 {
		t.Errorf("score() = %d, expected 300", got)
	}
	// 100 + 100*25/100 + 0 + 0
	if got := judge.score(25, 100, 0, 0); got != 125 {
		t.Errorf("score() = %d, expected 125", got)
	}
}

func TestFlatnessTolerance(t *testing.T) {
	heights := make([]float64, 1720)
	for i := range heights {
		heights[i] = 100 - 0.02*float64(i-500) // gentle slope
	}
	slope := NewTerrainFromHeights(heights, 1080)
	// Highest sample under a lander at 500 is column 487
	ground := slope.At(487)

	cfg := config.DefaultLanderConfig()
	v := NewLandingJudge(cfg).Evaluate(touching(500, ground, core.V(0, -1), 0), slope, 1)
	if !v.Landed() {
		t.Errorf("0.5 units of slope should be within tolerance, got %q", v.Reason())
	}

	cfg.Landing.Flatness = 0
	v = NewLandingJudge(cfg).Evaluate(touching(500, ground, core.V(0, -1), 0), slope, 1)
	if v.Landed() || !strings.Contains(v.Reason(), "uneven terrain") {
		t.Errorf("zero tolerance should reject any slope, got %+v", v)
	}
}
