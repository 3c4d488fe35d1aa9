// Package bots contains the built-in lander pilots.
package bots

import (
	"github.com/vovakirdan/moonlander/internal/config"
	"github.com/vovakirdan/moonlander/internal/games/lander"
	"github.com/vovakirdan/moonlander/internal/registry"
)

func init() {
	registry.Register("autopilot", "seeks the flattest nearby site and descends on it", func(team string) lander.Bot {
		return NewAutopilot(team)
	})
	registry.Register("idle", "never fires a thruster", func(team string) lander.Bot {
		return NewIdle(team)
	})
	registry.Register("chaos", "random thrusters, occasionally faults", func(team string) lander.Bot {
		return NewChaos(team, 0)
	})
}

// Tunable is implemented by bots that adapt to the match configuration.
type Tunable interface {
	Tune(cfg config.LanderConfig)
}

// TuneAll tunes every bot in roster that supports it.
func TuneAll(roster []lander.Bot, cfg config.LanderConfig) {
	for _, b := range roster {
		if t, ok := b.(Tunable); ok {
			t.Tune(cfg)
		}
	}
}
