// Package scores keeps the running per-team score file.
//
// The file holds one "team: score" line per team. It is read once when the
// ledger opens and rewritten after every finished match.
package scores

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/vovakirdan/moonlander/internal/games/lander"
)

// DefaultFile is the ledger file name used when none is configured.
const DefaultFile = "scores.txt"

// Entry is one team's running total.
type Entry struct {
	Team  string
	Score int
}

// Ledger accumulates match scores across runs.
type Ledger struct {
	mu       sync.Mutex
	path     string
	testMode bool
	totals   map[string]int
}

var _ lander.ResultRecorder = (*Ledger)(nil)

// Open loads the ledger at path. A missing file starts an empty ledger.
// In test mode the file is neither read nor written.
func Open(path string, testMode bool) (*Ledger, error) {
	if path == "" {
		path = DefaultFile
	}
	l := &Ledger{path: path, testMode: testMode, totals: make(map[string]int)}
	if testMode {
		return l, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scores: cannot read %s: %w", path, err)
	}
	totals, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scores: malformed %s: %w", path, err)
	}
	l.totals = totals
	return l, nil
}

// Parse decodes "team: score" lines. The score follows the last colon, so
// team names may contain colons. Blank lines are skipped.
func Parse(data []byte) (map[string]int, error) {
	totals := make(map[string]int)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		i := strings.LastIndexByte(line, ':')
		if i < 0 {
			return nil, fmt.Errorf("line %d: missing ':' in %q", n, line)
		}
		team := strings.TrimSpace(line[:i])
		score, err := strconv.Atoi(strings.TrimSpace(line[i+1:]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad score for %q: %w", n, team, err)
		}
		totals[team] = score
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return totals, nil
}

// Format encodes entries as "team: score" lines in the given order.
func Format(entries []Entry) []byte {
	var b bytes.Buffer
	for _, e := range entries {
		fmt.Fprintf(&b, "%s: %d\n", e.Team, e.Score)
	}
	return b.Bytes()
}

// Path returns the ledger file location.
func (l *Ledger) Path() string { return l.path }

// TestMode reports whether persistence is suppressed.
func (l *Ledger) TestMode() bool { return l.testMode }

// Total returns a team's running score.
func (l *Ledger) Total(team string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totals[team]
}

// Ranked returns every team's total, best first.
func (l *Ledger) Ranked() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ranked()
}

func (l *Ledger) ranked() []Entry {
	entries := make([]Entry, 0, len(l.totals))
	for team, score := range l.totals {
		entries = append(entries, Entry{Team: team, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Team < entries[j].Team
	})
	return entries
}

// SaveMatchResult adds the match's scores to the totals and rewrites the
// file. Every team in the match gets a line, even with a zero score.
func (l *Ledger) SaveMatchResult(res lander.MatchResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, t := range res.Teams {
		l.totals[t.Team] += t.Score
	}
	return l.save()
}

// Save writes the totals to disk.
func (l *Ledger) Save() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.save()
}

func (l *Ledger) save() error {
	if l.testMode {
		return nil
	}

	data := Format(l.ranked())

	// Write next to the target and rename so readers never see a torn file.
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("scores: cannot create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".scores-*")
	if err != nil {
		return fmt.Errorf("scores: cannot create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("scores: cannot write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("scores: cannot write: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("scores: cannot replace %s: %w", l.path, err)
	}
	return nil
}
