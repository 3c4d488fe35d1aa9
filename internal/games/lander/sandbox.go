package lander

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/moonlander/internal/config"
)

// Bot decides a lander's thrusters once per tick.
// Decide may return nil to leave the thrusters as they are.
type Bot interface {
	Team() string
	Decide(snap *Snapshot) (*Instructions, error)
}

// Flagged is implemented by bots that carry an avatar hint for renderers.
type Flagged interface {
	Flag() string
}

var (
	// ErrBotFault is matched by every BotFault.
	ErrBotFault = errors.New("lander: bot fault")
	// ErrBotTimeout is wrapped by faults from bots that overran their budget.
	ErrBotTimeout = errors.New("lander: bot exceeded its time budget")
)

// BotFault describes a failed decision call.
type BotFault struct {
	Team  string
	Tick  uint64
	Err   error
	Stack []byte // Set when the bot panicked
}

func (f *BotFault) Error() string {
	return fmt.Sprintf("lander: bot %q faulted on tick %d: %v", f.Team, f.Tick, f.Err)
}

// Unwrap exposes both ErrBotFault and the underlying cause.
func (f *BotFault) Unwrap() []error {
	return []error{ErrBotFault, f.Err}
}

// Outcome is the result of one sandboxed decision call. Exactly one of
// Fault and Instructions may be set; both nil means "no instructions".
type Outcome struct {
	Instructions *Instructions
	Fault        *BotFault
}

// Sandbox invokes bots behind a recover boundary and an optional time budget.
type Sandbox struct {
	SafeMode bool
	Timeout  time.Duration
	logger   *log.Logger

	// Calls that overran their budget and have not returned yet, by team.
	// A team is not called again until its previous call finishes.
	pending map[string]chan decision
}

// NewSandbox creates a sandbox from the match config.
func NewSandbox(cfg config.MatchConfig, logger *log.Logger) *Sandbox {
	return &Sandbox{
		SafeMode: cfg.SafeMode,
		Timeout:  time.Duration(cfg.BotTimeout * float64(time.Second)),
		logger:   logger,
		pending:  make(map[string]chan decision),
	}
}

type decision struct {
	ins   *Instructions
	err   error
	stack []byte
}

// Invoke runs one decision call. It never panics.
func (s *Sandbox) Invoke(bot Bot, snap *Snapshot, tick uint64) Outcome {
	var d decision
	if s.Timeout > 0 {
		d = s.invokeWithBudget(bot, snap, snap.Me.Team)
	} else {
		d = decide(bot, snap)
	}

	if d.err == nil {
		return Outcome{Instructions: d.ins}
	}

	fault := &BotFault{Team: snap.Me.Team, Tick: tick, Err: d.err, Stack: d.stack}
	if s.logger != nil {
		s.logger.Warn("bot fault", "team", fault.Team, "tick", tick, "err", d.err)
	}
	return Outcome{Fault: fault}
}

// invokeWithBudget runs the call on its own goroutine. A late answer is
// dropped; the goroutine itself cannot be stopped.
func (s *Sandbox) invokeWithBudget(bot Bot, snap *Snapshot, team string) decision {
	if prev, ok := s.pending[team]; ok {
		select {
		case <-prev:
			delete(s.pending, team)
		default:
			return decision{err: fmt.Errorf("%w: previous call still running", ErrBotTimeout)}
		}
	}

	done := make(chan decision, 1)
	go func() {
		done <- decide(bot, snap)
	}()

	timer := time.NewTimer(s.Timeout)
	defer timer.Stop()

	select {
	case d := <-done:
		return d
	case <-timer.C:
		if s.pending == nil {
			s.pending = make(map[string]chan decision)
		}
		s.pending[team] = done
		return decision{err: fmt.Errorf("%w after %s", ErrBotTimeout, s.Timeout)}
	}
}

func decide(bot Bot, snap *Snapshot) (d decision) {
	defer func() {
		if r := recover(); r != nil {
			d = decision{err: fmt.Errorf("panic: %v", r), stack: debug.Stack()}
		}
	}()

	ins, err := bot.Decide(snap)
	if err != nil {
		return decision{err: err}
	}
	if ins != nil {
		copied := *ins
		ins = &copied
	}
	return decision{ins: ins}
}
