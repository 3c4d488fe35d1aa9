package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/moonlander/internal/bots"
	"github.com/vovakirdan/moonlander/internal/config"
	"github.com/vovakirdan/moonlander/internal/games/lander"
	"github.com/vovakirdan/moonlander/internal/registry"
	"github.com/vovakirdan/moonlander/internal/scores"
	"github.com/vovakirdan/moonlander/internal/storage"
)

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "lander",
	})
	logger.SetLevel(level)
	return logger, nil
}

// loadConfig applies file, then preset, then validates.
func loadConfig() (config.LanderConfig, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return config.LanderConfig{}, err
	}
	if flagPreset != "" {
		preset := config.ParsePreset(flagPreset)
		if preset == "" {
			return config.LanderConfig{}, fmt.Errorf("unknown preset %q", flagPreset)
		}
		config.ApplyPreset(&cfg, preset)
	}
	if err := cfg.Validate(); err != nil {
		return config.LanderConfig{}, err
	}
	return cfg, nil
}

// recorders holds everything a finished match is written to.
type recorders struct {
	ledger *scores.Ledger
	store  *storage.Store
}

// openRecorders opens the score ledger and, outside test mode, the match
// database. A database that cannot be opened is logged and skipped.
func openRecorders(logger *log.Logger) (*recorders, error) {
	ledger, err := scores.Open(flagScoresPath, flagTestMode)
	if err != nil {
		return nil, err
	}
	r := &recorders{ledger: ledger}
	if flagTestMode {
		return r, nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("match history disabled", "db", flagDBPath, "err", err)
		return r, nil
	}
	r.store = store
	return r, nil
}

func (r *recorders) list() []lander.ResultRecorder {
	out := []lander.ResultRecorder{r.ledger}
	if r.store != nil {
		out = append(out, r.store)
	}
	return out
}

func (r *recorders) Close() {
	if r.store != nil {
		r.store.Close()
	}
}

// newMatch builds a match from bot specs of the form kind:team.
func newMatch(cfg config.LanderConfig, specs []string, manualTeam string, recs *recorders, logger *log.Logger) (*lander.Match, error) {
	roster, err := registry.Roster(specs)
	if err != nil {
		return nil, err
	}
	bots.TuneAll(roster, cfg)
	return lander.NewMatch(cfg, roster, lander.MatchOptions{
		Seed:       flagSeed,
		ManualTeam: manualTeam,
		Logger:     logger,
		Recorders:  recs.list(),
	})
}

func printResult(res lander.MatchResult) {
	fmt.Printf("Match %s - %s after %.1fs (seed %d)\n", res.MatchID, res.Reason, res.Elapsed, res.Seed)
	fmt.Println()
	fmt.Printf("%-4s %-16s %-10s %8s %8s  %s\n", "Rank", "Team", "State", "Score", "Fuel", "Reason")
	fmt.Println("-------------------------------------------------------------")
	for i, t := range res.Teams {
		fmt.Printf("%-4d %-16s %-10s %8d %8.1f  %s\n", i+1, t.Team, t.State, t.Score, t.Fuel, t.Reason)
	}
}
