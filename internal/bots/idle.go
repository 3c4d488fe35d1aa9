package bots

import "github.com/vovakirdan/moonlander/internal/games/lander"

// Idle falls without touching the controls.
type Idle struct {
	team string
}

// NewIdle creates an idle bot.
func NewIdle(team string) *Idle {
	return &Idle{team: team}
}

// Team returns the team name.
func (b *Idle) Team() string { return b.team }

// Decide returns no instructions.
func (b *Idle) Decide(*lander.Snapshot) (*lander.Instructions, error) {
	return nil, nil
}
