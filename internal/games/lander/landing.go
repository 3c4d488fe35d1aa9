package lander

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/moonlander/internal/config"
	"github.com/vovakirdan/moonlander/internal/core"
)

// Verdict is the LandingJudge's decision for one player on one tick.
type Verdict struct {
	Contact   bool     // The footprint reached the ground
	Reasons   []string // Crash reasons; empty on a clean landing
	Ground    float64  // Highest terrain sample under the footprint
	SiteWidth int      // Columns of level ground around the touchdown point
	Score     int      // Landing score, zero on a crash
}

// Landed reports a clean touchdown.
func (v Verdict) Landed() bool {
	return v.Contact && len(v.Reasons) == 0
}

// Reason joins every crash reason.
func (v Verdict) Reason() string {
	return strings.Join(v.Reasons, ", ")
}

// LandingJudge decides touchdowns and scores them.
type LandingJudge struct {
	landing      config.LandingConfig
	scoring      config.ScoringConfig
	fuelCapacity float64
}

// NewLandingJudge creates a judge for the given config.
func NewLandingJudge(cfg config.LanderConfig) LandingJudge {
	return LandingJudge{
		landing:      cfg.Landing,
		scoring:      cfg.Scoring,
		fuelCapacity: cfg.Fuel.Capacity,
	}
}

// footprint returns the first column and the number of columns under a
// lander centred at x.
func (j LandingJudge) footprint(x float64) (int, int) {
	half := j.landing.AvatarWidth / 2
	lo := int(math.Floor(x - half))
	hi := int(math.Floor(x+half)) - 1
	return lo, max(hi-lo+1, 1)
}

// Evaluate checks p against the terrain. remaining is the fraction of the
// time limit left, in [0, 1].
func (j LandingJudge) Evaluate(p *Player, terrain *Terrain, remaining float64) Verdict {
	lo, count := j.footprint(p.Position.X)
	lemFloor := p.Position.Y - j.landing.AvatarHeight/2

	var v Verdict
	v.Ground = math.Inf(-1)
	touching, hanging := 0, 0
	for i := 0; i < count; i++ {
		h := terrain.At(lo + i)
		if h >= lemFloor {
			touching++
		} else if h < lemFloor-j.landing.Flatness {
			hanging++
		}
		v.Ground = math.Max(v.Ground, h)
	}
	if touching == 0 {
		return Verdict{}
	}
	v.Contact = true

	if hanging > 0 {
		v.Reasons = append(v.Reasons, "uneven terrain")
	}
	if speed := p.Velocity.Len(); speed > j.landing.MaxSpeed {
		v.Reasons = append(v.Reasons, fmt.Sprintf("velocity too high (%.2f > %g)", speed, j.landing.MaxSpeed))
	}
	if angle := math.Abs(core.SignedHeading(p.Heading)); angle > j.landing.MaxAngle {
		v.Reasons = append(v.Reasons, fmt.Sprintf("bad angle (%.2f > %g)", angle, j.landing.MaxAngle))
	}
	if len(v.Reasons) > 0 {
		return v
	}

	v.SiteWidth = j.siteWidth(terrain, lo, count, v.Ground)
	v.Score = j.score(count, v.SiteWidth, remaining, p.Fuel)
	return v
}

// siteWidth counts the contiguous columns around the footprint that sit
// within the tolerance of ground. It is never less than the footprint.
func (j LandingJudge) siteWidth(terrain *Terrain, lo, count int, ground float64) int {
	n := terrain.Width()
	level := func(i int) bool {
		return math.Abs(terrain.At(i)-ground) <= j.scoring.SiteTolerance
	}

	centre := lo + count/2
	if !level(centre) {
		return count
	}
	width := 1
	for i := centre - 1; width < n && level(i); i-- {
		width++
	}
	for i := centre + 1; width < n && level(i); i++ {
		width++
	}
	return max(width, count)
}

func (j LandingJudge) score(footprint, site int, remaining, fuel float64) int {
	s := j.scoring.LandingBonus
	if site > 0 {
		s += j.scoring.SiteBonus * float64(footprint) / float64(site)
	}
	s += j.scoring.TimeBonus * core.ClampF(remaining, 0, 1)
	if j.fuelCapacity > 0 {
		s += j.scoring.FuelBonus * core.ClampF(fuel/j.fuelCapacity, 0, 1)
	}
	return int(math.Round(s))
}
