package config

import "math"

// HazardRamp calculates the asteroid spawn schedule based on elapsed match time.
// The hazard level rises linearly from 0 at the start of the match to 1 at the
// time limit, and the delay between spawns shrinks with it.
type HazardRamp struct {
	asteroids AsteroidConfig
	timeLimit float64
}

// NewHazardRamp creates a hazard ramp for the given config.
func NewHazardRamp(cfg LanderConfig) HazardRamp {
	return HazardRamp{
		asteroids: cfg.Asteroids,
		timeLimit: cfg.Match.TimeLimit,
	}
}

// Remaining returns the fraction of the time limit still left at elapsed
// time t, in [0, 1].
func (h HazardRamp) Remaining(t float64) float64 {
	if h.timeLimit <= 0 {
		return 0
	}
	return clampF((h.timeLimit-t)/h.timeLimit, 0.0, 1.0)
}

// Level returns the current hazard level (0.0 to 1.0).
func (h HazardRamp) Level(t float64) float64 {
	return 1 - h.Remaining(t)
}

// SpawnDelay returns the seconds until the next asteroid when one spawns at
// elapsed time t. It falls from InitialDelay to MinDelay over the match.
func (h HazardRamp) SpawnDelay(t float64) float64 {
	span := h.asteroids.InitialDelay - h.asteroids.MinDelay
	return span*h.Remaining(t) + h.asteroids.MinDelay
}

// CraterRadius returns the carved radius after scaling.
func (h HazardRamp) CraterRadius() float64 {
	return h.asteroids.CraterRadius * h.asteroids.CraterScaling
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
