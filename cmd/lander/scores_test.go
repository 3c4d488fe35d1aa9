package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/moonlander/internal/games/lander"
	"github.com/vovakirdan/moonlander/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "matches.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func saveMatch(t *testing.T, store *storage.Store, id string, teams ...lander.TeamResult) {
	t.Helper()
	err := store.SaveMatchResult(lander.MatchResult{
		MatchID: id,
		Seed:    7,
		EndedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Elapsed: 42.5,
		Reason:  lander.ReasonAllInactive,
		Teams:   teams,
	})
	if err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}
}

func TestPrintRecent(t *testing.T) {
	store := openStore(t)

	var buf bytes.Buffer
	if err := printRecent(&buf, store, 5); err != nil {
		t.Fatalf("printRecent() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No matches recorded yet.") {
		t.Errorf("empty store output = %q", buf.String())
	}

	saveMatch(t, store, "m-1", lander.TeamResult{Team: "apollo", State: lander.Landed, Score: 300})
	saveMatch(t, store, "m-2",
		lander.TeamResult{Team: "luna", State: lander.Landed, Score: 150},
		lander.TeamResult{Team: "gremlin", State: lander.Crashed})

	buf.Reset()
	if err := printRecent(&buf, store, 5); err != nil {
		t.Fatalf("printRecent() failed: %v", err)
	}
	out := buf.String()
	first, second := strings.Index(out, "m-2"), strings.Index(out, "m-1")
	if first < 0 || second < 0 || first > second {
		t.Errorf("expected m-2 listed before m-1, got:\n%s", out)
	}
	if !strings.Contains(out, "luna") {
		t.Errorf("expected winner luna in output, got:\n%s", out)
	}
}

func TestPrintMatch(t *testing.T) {
	store := openStore(t)
	saveMatch(t, store, "m-1",
		lander.TeamResult{Team: "apollo", State: lander.Landed, Score: 300},
		lander.TeamResult{Team: "luna", State: lander.Crashed})

	var buf bytes.Buffer
	if err := printMatch(&buf, store, "m-1"); err != nil {
		t.Fatalf("printMatch() failed: %v", err)
	}
	for _, want := range []string{"Match m-1", "Winner:  apollo", "Teams:   2", "Seed:    7", "42.5s"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("printMatch() output missing %q:\n%s", want, buf.String())
		}
	}

	if err := printMatch(&buf, store, "missing"); err == nil {
		t.Error("printMatch() should fail for an unknown match")
	}
}
