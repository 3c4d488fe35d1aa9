package runner

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/moonlander/internal/config"
	"github.com/vovakirdan/moonlander/internal/games/lander"
)

type testBot struct {
	team string
	err  error
}

func (b testBot) Team() string { return b.team }

func (b testBot) Decide(*lander.Snapshot) (*lander.Instructions, error) {
	return nil, b.err
}

func shortConfig() config.LanderConfig {
	cfg := config.DefaultLanderConfig()
	cfg.Match.TimeLimit = 0.2
	cfg.Match.ExitDelay = 0.05
	cfg.Asteroids.InitialDelay = 1e6
	cfg.Asteroids.MinDelay = 1e6
	return cfg
}

func newMatch(t *testing.T, cfg config.LanderConfig, bots ...lander.Bot) *lander.Match {
	t.Helper()
	m, err := lander.NewMatch(cfg, bots, lander.MatchOptions{
		Seed:    1,
		Terrain: lander.NewFlatTerrain(cfg.World.Width, cfg.World.Height, 100),
	})
	if err != nil {
		t.Fatalf("NewMatch() error: %v", err)
	}
	return m
}

func quiet() *log.Logger { return log.New(io.Discard) }

func TestRunUntilTerminated(t *testing.T) {
	m := newMatch(t, shortConfig(), testBot{team: "a"})

	var steps int
	var last lander.StepResult
	sink := SinkFunc(func(step lander.StepResult, frame lander.Frame) {
		steps++
		last = step
		if frame.Tick != step.Tick {
			t.Errorf("frame.Tick = %d, expected %d", frame.Tick, step.Tick)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := Run(ctx, m, Options{TickRate: 100, Sinks: []Sink{sink}, Logger: quiet()})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.Reason != lander.ReasonTimeLimit {
		t.Errorf("Reason = %q, expected %q", res.Reason, lander.ReasonTimeLimit)
	}
	if steps == 0 {
		t.Fatal("sink never called")
	}
	if last.State != lander.StateTerminated {
		t.Errorf("last state = %v, expected terminated", last.State)
	}
}

func TestRunCancelled(t *testing.T) {
	cfg := shortConfig()
	cfg.Match.TimeLimit = 300
	m := newMatch(t, cfg, testBot{team: "a"})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Run(ctx, m, Options{TickRate: 100, Logger: quiet()})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() error = %v, expected deadline exceeded", err)
	}
	if m.State() != lander.StateRunning {
		t.Errorf("State = %v, expected running", m.State())
	}
}

func TestRunUnsafeFault(t *testing.T) {
	cfg := shortConfig()
	cfg.Match.TimeLimit = 300
	cfg.Match.SafeMode = false
	m := newMatch(t, cfg, testBot{team: "a", err: errors.New("boom")})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := Run(ctx, m, Options{TickRate: 100, Logger: quiet()})
	if !errors.Is(err, lander.ErrBotFault) {
		t.Errorf("Run() error = %v, expected a bot fault", err)
	}
}
