package lander

import (
	"time"

	"github.com/vovakirdan/moonlander/internal/config"
)

// fakeClock is a manually advanced Clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// funcBot adapts a function to the Bot interface.
type funcBot struct {
	team   string
	decide func(*Snapshot) (*Instructions, error)
	calls  int
}

func (b *funcBot) Team() string { return b.team }

func (b *funcBot) Decide(s *Snapshot) (*Instructions, error) {
	b.calls++
	if b.decide == nil {
		return nil, nil
	}
	return b.decide(s)
}

func idle(team string) *funcBot {
	return &funcBot{team: team}
}

func constant(team string, ins Instructions) *funcBot {
	return &funcBot{team: team, decide: func(*Snapshot) (*Instructions, error) {
		out := ins
		return &out, nil
	}}
}

// recorder captures results passed to SaveMatchResult.
type recorder struct {
	results []MatchResult
}

func (r *recorder) SaveMatchResult(res MatchResult) error {
	r.results = append(r.results, res)
	return nil
}

// quietConfig returns defaults with asteroids pushed past the time limit.
func quietConfig() config.LanderConfig {
	cfg := config.DefaultLanderConfig()
	cfg.Asteroids.InitialDelay = 1e6
	cfg.Asteroids.MinDelay = 1e6
	return cfg
}

const tick = 100 * time.Millisecond

// newTestMatch builds a match over flat ground at level 100.
func newTestMatch(cfg config.LanderConfig, bots []Bot, opts MatchOptions) (*Match, *fakeClock) {
	clock := newFakeClock()
	opts.Clock = clock
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	if opts.Terrain == nil {
		opts.Terrain = NewFlatTerrain(cfg.World.Width, cfg.World.Height, 100)
	}
	m, err := NewMatch(cfg, bots, opts)
	if err != nil {
		panic(err)
	}
	return m, clock
}

// step advances the clock and the match by one tick.
func step(m *Match, clock *fakeClock) StepResult {
	clock.Advance(tick)
	res, _ := m.Update(tick)
	return res
}

func hasEvent[T Event](events []Event) (T, bool) {
	for _, e := range events {
		if ev, ok := e.(T); ok {
			return ev, true
		}
	}
	var zero T
	return zero, false
}
