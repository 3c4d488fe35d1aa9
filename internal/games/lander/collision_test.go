package lander

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/moonlander/internal/core"
)

func momentum(players []*Player) core.Vec2 {
	var sum core.Vec2
	for _, p := range players {
		sum = sum.Add(p.Velocity)
	}
	return sum
}

func TestCollisionHeadOn(t *testing.T) {
	a := &Player{Team: "a", Position: core.V(500, 500), Velocity: core.V(3, 0)}
	b := &Player{Team: "b", Position: core.V(505, 500), Velocity: core.V(-3, 0)}

	events := resolveCollisions([]*Player{a, b}, 25)

	if math.Abs(a.Velocity.X+3) > 1e-9 || math.Abs(b.Velocity.X-3) > 1e-9 {
		t.Errorf("velocities = %+v / %+v, expected reflected", a.Velocity, b.Velocity)
	}
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, expected 1", len(events))
	}
}

func TestCollisionMomentumConserved(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 200; trial++ {
		players := make([]*Player, 2+rng.Intn(4))
		for i := range players {
			players[i] = &Player{
				Position: core.V(500+rng.Float64()*30, 500+rng.Float64()*30),
				Velocity: core.V(rng.NormFloat64()*5, rng.NormFloat64()*5),
			}
		}
		before := momentum(players)
		resolveCollisions(players, 25)
		after := momentum(players)

		if before.Sub(after).Len() > 1e-9 {
			t.Fatalf("trial %d: momentum %+v -> %+v", trial, before, after)
		}
	}
}

func TestCollisionIgnoresDistantAndCoincident(t *testing.T) {
	far := []*Player{
		{Position: core.V(0, 0), Velocity: core.V(1, 0)},
		{Position: core.V(25, 0), Velocity: core.V(-1, 0)},
	}
	if events := resolveCollisions(far, 25); len(events) != 0 {
		t.Errorf("players exactly one radius apart should not collide")
	}

	same := []*Player{
		{Position: core.V(10, 10), Velocity: core.V(1, 0)},
		{Position: core.V(10, 10), Velocity: core.V(-1, 0)},
	}
	resolveCollisions(same, 25)
	if same[0].Velocity != core.V(1, 0) {
		t.Errorf("coincident players should be skipped, got %+v", same[0].Velocity)
	}
}

func TestCollisionNotWrappedAtSeam(t *testing.T) {
	a := &Player{Position: core.V(2, 500), Velocity: core.V(-1, 0)}
	b := &Player{Position: core.V(1718, 500), Velocity: core.V(1, 0)}

	if events := resolveCollisions([]*Player{a, b}, 25); len(events) != 0 {
		t.Errorf("seam pairs are measured on the plane and should not collide")
	}
}
