package lander

import (
	"sort"
	"time"
)

// TeamResult is one team's line in a finished match.
type TeamResult struct {
	Team   string
	State  PlayerState
	Score  int
	Reason string // Crash reason, if any
	Fuel   float64
}

// MatchResult is the finalized outcome handed to recorders.
type MatchResult struct {
	MatchID   string
	Seed      int64
	StartedAt time.Time
	EndedAt   time.Time
	Elapsed   float64 // Match seconds
	Reason    string
	Teams     []TeamResult // Ranked, best first
}

// Scores returns the per-team score mapping.
func (r MatchResult) Scores() map[string]int {
	out := make(map[string]int, len(r.Teams))
	for _, t := range r.Teams {
		out[t.Team] = t.Score
	}
	return out
}

// Winner returns the top-ranked team with a positive score.
func (r MatchResult) Winner() (string, bool) {
	if len(r.Teams) == 0 || r.Teams[0].Score <= 0 {
		return "", false
	}
	return r.Teams[0].Team, true
}

// ResultRecorder persists finished matches.
// This keeps the match independent of any storage package.
type ResultRecorder interface {
	SaveMatchResult(result MatchResult) error
}

// rankTeams orders results by score, then landed before flying before
// crashed, then by name.
func rankTeams(teams []TeamResult) {
	order := map[PlayerState]int{Landed: 0, Flying: 1, Crashed: 2}
	sort.SliceStable(teams, func(i, j int) bool {
		a, b := teams[i], teams[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if order[a.State] != order[b.State] {
			return order[a.State] < order[b.State]
		}
		return a.Team < b.Team
	})
}
