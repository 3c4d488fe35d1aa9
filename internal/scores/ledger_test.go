package scores

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/moonlander/internal/games/lander"
)

func matchWith(teams ...lander.TeamResult) lander.MatchResult {
	return lander.MatchResult{MatchID: "m", Teams: teams}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected map[string]int
		wantErr  bool
	}{
		{"empty", "", map[string]int{}, false},
		{"lines", "apollo: 300\nluna: 0\n", map[string]int{"apollo": 300, "luna": 0}, false},
		{"spaces", "apollo:   12  \n", map[string]int{"apollo": 12}, false},
		{"blank lines", "\napollo: 1\n\n", map[string]int{"apollo": 1}, false},
		{"yaml-looking names", "[bot]: 5\n*star: 3\nyes: 1\n42: 2\nnull: 0\n",
			map[string]int{"[bot]": 5, "*star": 3, "yes": 1, "42": 2, "null": 0}, false},
		{"colon in name", "team:b: 7\n", map[string]int{"team:b": 7}, false},
		{"negative", "apollo: -3\n", map[string]int{"apollo": -3}, false},
		{"not a number", "apollo: many\n", nil, true},
		{"no colon", "apollo 5\n", nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse([]byte(tc.data))
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}
			if len(got) != len(tc.expected) {
				t.Fatalf("Parse() = %v, expected %v", got, tc.expected)
			}
			for k, v := range tc.expected {
				if got[k] != v {
					t.Errorf("Parse()[%q] = %d, expected %d", k, got[k], v)
				}
			}
		})
	}
}

func TestLedgerMissingFile(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "scores.txt"), false)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if len(l.Ranked()) != 0 {
		t.Errorf("Ranked() = %v, expected empty", l.Ranked())
	}
}

func TestLedgerAccumulates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.txt")
	if err := os.WriteFile(path, []byte("apollo: 100\nzeta: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := Open(path, false)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	err = l.SaveMatchResult(matchWith(
		lander.TeamResult{Team: "apollo", Score: 250},
		lander.TeamResult{Team: "luna", Score: 0},
	))
	if err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	if l.Total("apollo") != 350 {
		t.Errorf("Total(apollo) = %d, expected 350", l.Total("apollo"))
	}

	reopened, err := Open(path, false)
	if err != nil {
		t.Fatalf("Open() after save failed: %v", err)
	}
	expected := []Entry{{"apollo", 350}, {"zeta", 5}, {"luna", 0}}
	got := reopened.Ranked()
	if len(got) != len(expected) {
		t.Fatalf("Ranked() = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Ranked()[%d] = %+v, expected %+v", i, got[i], expected[i])
		}
	}

	data, _ := os.ReadFile(path)
	if string(data) != "apollo: 350\nzeta: 5\nluna: 0\n" {
		t.Errorf("file = %q, expected ranked team: score lines", data)
	}
}

func TestLedgerTestMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.txt")
	if err := os.WriteFile(path, []byte("apollo: 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := Open(path, true)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if l.Total("apollo") != 0 {
		t.Errorf("test mode should not load totals, got %d", l.Total("apollo"))
	}
	if err := l.SaveMatchResult(matchWith(lander.TeamResult{Team: "apollo", Score: 5})); err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "apollo: 100\n" {
		t.Errorf("test mode rewrote the file: %q", data)
	}
}

func TestLedgerMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.txt")
	if err := os.WriteFile(path, []byte("apollo: 1, 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path, false); err == nil {
		t.Error("Open() should fail on a malformed file")
	}
}

func TestLedgerKeepsNamesVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.txt")
	l, err := Open(path, false)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	err = l.SaveMatchResult(matchWith(
		lander.TeamResult{Team: "[x]", Score: 4},
		lander.TeamResult{Team: "null", Score: 3},
		lander.TeamResult{Team: "42", Score: 2},
		lander.TeamResult{Team: "yes", Score: 1},
	))
	if err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	expected := "[x]: 4\nnull: 3\n42: 2\nyes: 1\n"
	if string(data) != expected {
		t.Errorf("file = %q, expected %q", data, expected)
	}

	reopened, err := Open(path, false)
	if err != nil {
		t.Fatalf("Open() after save failed: %v", err)
	}
	for team, score := range map[string]int{"[x]": 4, "null": 3, "42": 2, "yes": 1} {
		if reopened.Total(team) != score {
			t.Errorf("Total(%q) = %d, expected %d", team, reopened.Total(team), score)
		}
	}
}
