// Package runner drives a match at a fixed rate outside of any UI.
package runner

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/moonlander/internal/games/lander"
)

// DefaultTickRate is used when Options.TickRate is not positive.
const DefaultTickRate = 30

// ErrNotFinished is returned when a run stops before the match has a result.
var ErrNotFinished = errors.New("runner: match did not finish")

// Sink receives every step of a running match. Consume is called on the
// runner goroutine and must not block for long.
type Sink interface {
	Consume(step lander.StepResult, frame lander.Frame)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(step lander.StepResult, frame lander.Frame)

// Consume calls f.
func (f SinkFunc) Consume(step lander.StepResult, frame lander.Frame) { f(step, frame) }

// Options configures a run.
type Options struct {
	TickRate int
	Sinks    []Sink
	Logger   *log.Logger
}

// Run advances m once per tick until it terminates, ctx is cancelled, or a
// bot fault halts it. The dt passed to the match is the measured wall time
// since the previous tick.
func Run(ctx context.Context, m *lander.Match, opts Options) (lander.MatchResult, error) {
	rate := opts.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	logger.Debug("runner started", "match", m.ID(), "rate", rate)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			logger.Debug("runner cancelled", "match", m.ID())
			res, _ := m.Result()
			return res, ctx.Err()

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now

			step, err := m.Update(dt)
			frame := m.Frame()
			for _, s := range opts.Sinks {
				s.Consume(step, frame)
			}
			if err != nil {
				res, _ := m.Result()
				return res, err
			}
			if step.State == lander.StateTerminated {
				res, ok := m.Result()
				if !ok {
					return res, ErrNotFinished
				}
				return res, nil
			}
		}
	}
}
