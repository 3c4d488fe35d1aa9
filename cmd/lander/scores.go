package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/moonlander/internal/platform/tui"
	"github.com/vovakirdan/moonlander/internal/scores"
	"github.com/vovakirdan/moonlander/internal/storage"
)

var (
	flagScoresPlain  bool
	flagScoresClear  bool
	flagScoresRecent int
	flagScoresMatch  string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [team]",
	Short: "Show standings or a team's history",
	Long: `Without a team, display the standings from the match database and the
cumulative totals of the score ledger. On a terminal this opens an
interactive table unless --plain is given.

With a team, display its recent matches. --recent lists the latest
matches of every team and --match shows a single match by its ID.

Examples:
  lander scores
  lander scores --plain
  lander scores --recent 20
  lander scores --match 1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed
  lander scores apollo
  lander scores apollo --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print plain text instead of the interactive table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the stored history of the given team")
	scoresCmd.Flags().IntVar(&flagScoresRecent, "recent", 0, "List the N most recent matches")
	scoresCmd.Flags().StringVar(&flagScoresMatch, "match", "", "Show one match by ID")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening match database: %v", err)
	}
	defer store.Close()

	switch {
	case flagScoresMatch != "":
		err = printMatch(os.Stdout, store, flagScoresMatch)
	case flagScoresRecent > 0:
		err = printRecent(os.Stdout, store, flagScoresRecent)
	}
	if err != nil {
		store.Close()
		fail("%v", err)
	}
	if flagScoresMatch != "" || flagScoresRecent > 0 {
		return
	}

	if len(args) == 1 {
		if err := teamScores(store, args[0]); err != nil {
			store.Close()
			fail("%v", err)
		}
		return
	}

	ledger, err := scores.Open(flagScoresPath, false)
	if err != nil {
		store.Close()
		fail("opening scores: %v", err)
	}

	fd := int(os.Stdout.Fd())
	if !flagScoresPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
		if err := tui.RunStandings(store, ledger, width, height); err != nil {
			store.Close()
			fail("%v", err)
		}
		return
	}

	if err := printStandings(store, ledger); err != nil {
		store.Close()
		fail("%v", err)
	}
}

func teamScores(store *storage.Store, team string) error {
	if flagScoresClear {
		if err := store.ClearTeam(team); err != nil {
			return err
		}
		fmt.Printf("Cleared history for %s\n", team)
		return nil
	}

	history, err := store.TeamHistory(team, 20)
	if err != nil {
		return fmt.Errorf("retrieving history: %w", err)
	}

	fmt.Printf("Recent matches - %s\n", team)
	fmt.Println()

	if len(history) == 0 {
		fmt.Println("No matches recorded yet.")
		return nil
	}

	fmt.Printf("%-36s  %4s  %-8s  %6s  %6s  %-16s  %s\n", "Match", "Rank", "State", "Score", "Fuel", "Date", "Reason")
	fmt.Println("--------------------------------------------------------------------------------------------")
	for _, r := range history {
		fmt.Printf("%-36s  %4d  %-8s  %6d  %6.1f  %-16s  %s\n",
			r.MatchID, r.Rank, r.State, r.Score, r.Fuel,
			r.EndedAt.Local().Format("2006-01-02 15:04"), r.Reason)
	}
	return nil
}

func printStandings(store *storage.Store, ledger *scores.Ledger) error {
	standings, err := store.Standings(10)
	if err != nil {
		return fmt.Errorf("retrieving standings: %w", err)
	}

	fmt.Println("Standings")
	fmt.Println()
	if len(standings) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Run 'lander run' to play the first match!")
	} else {
		fmt.Printf("%-4s  %-16s  %7s  %8s  %7s  %8s  %6s\n", "Rank", "Team", "Matches", "Landings", "Crashes", "Total", "Best")
		fmt.Println("-----------------------------------------------------------------------")
		for i, s := range standings {
			fmt.Printf("%-4d  %-16s  %7d  %8d  %7d  %8d  %6d\n",
				i+1, s.Team, s.Matches, s.Landings, s.Crashes, s.TotalScore, s.BestScore)
		}
	}

	totals := ledger.Ranked()
	if len(totals) == 0 {
		return nil
	}
	fmt.Println()
	fmt.Printf("Ledger totals (%s)\n", ledger.Path())
	fmt.Println()
	for i, e := range totals {
		fmt.Printf("%-4d  %-16s  %8d\n", i+1, e.Team, e.Score)
	}
	return nil
}

func printRecent(w io.Writer, store *storage.Store, limit int) error {
	matches, err := store.RecentMatches(limit)
	if err != nil {
		return fmt.Errorf("retrieving recent matches: %w", err)
	}

	fmt.Fprintln(w, "Recent matches")
	fmt.Fprintln(w)
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-16s  %5s  %7s  %-16s  %s\n", "Match", "Winner", "Teams", "Elapsed", "Date", "Reason")
	fmt.Fprintln(w, "------------------------------------------------------------------------------------------------")
	for _, m := range matches {
		winner := m.Winner
		if winner == "" {
			winner = "-"
		}
		fmt.Fprintf(w, "%-36s  %-16s  %5d  %6.1fs  %-16s  %s\n",
			m.MatchID, winner, m.Teams, m.Elapsed,
			m.EndedAt.Local().Format("2006-01-02 15:04"), m.Reason)
	}
	return nil
}

func printMatch(w io.Writer, store *storage.Store, matchID string) error {
	m, err := store.MatchByID(matchID)
	if err != nil {
		return fmt.Errorf("retrieving match: %w", err)
	}
	if m == nil {
		return fmt.Errorf("no match %q", matchID)
	}

	winner := m.Winner
	if winner == "" {
		winner = "nobody"
	}
	fmt.Fprintf(w, "Match %s\n", m.MatchID)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Ended:   %s\n", m.EndedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Reason:  %s\n", m.Reason)
	fmt.Fprintf(w, "  Elapsed: %.1fs\n", m.Elapsed)
	fmt.Fprintf(w, "  Seed:    %d\n", m.Seed)
	fmt.Fprintf(w, "  Teams:   %d\n", m.Teams)
	fmt.Fprintf(w, "  Winner:  %s\n", winner)
	return nil
}
