package bots

import (
	"errors"
	"math/rand"
	"time"

	"github.com/vovakirdan/moonlander/internal/games/lander"
)

// errChaos is the fault chaos bots report on purpose.
var errChaos = errors.New("chaos: gremlins in the guidance computer")

// Chaos flips thrusters at random and sometimes fails, which makes it handy
// for exercising the sandbox.
type Chaos struct {
	team      string
	rng       *rand.Rand
	FaultRate float64 // Probability of a fault per call
}

// NewChaos creates a chaos bot. A zero seed derives one from the clock.
func NewChaos(team string, seed int64) *Chaos {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Chaos{
		team:      team,
		rng:       rand.New(rand.NewSource(seed)),
		FaultRate: 0.01,
	}
}

// Team returns the team name.
func (b *Chaos) Team() string { return b.team }

// Decide returns random instructions. Faults alternate between returned
// errors and panics.
func (b *Chaos) Decide(*lander.Snapshot) (*lander.Instructions, error) {
	if b.rng.Float64() < b.FaultRate {
		if b.rng.Intn(2) == 0 {
			panic(errChaos)
		}
		return nil, errChaos
	}
	if b.rng.Intn(4) == 0 {
		return nil, nil
	}
	return &lander.Instructions{
		Main:  b.rng.Intn(2) == 0,
		Left:  b.rng.Intn(3) == 0,
		Right: b.rng.Intn(3) == 0,
	}, nil
}
