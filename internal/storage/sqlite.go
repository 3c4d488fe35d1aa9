// Package storage provides SQLite-based persistence for match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/moonlander/internal/games/lander"
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

var _ lander.ResultRecorder = (*Store)(nil)

// MatchRecord is one stored match.
type MatchRecord struct {
	ID        int64
	MatchID   string
	Seed      int64
	Reason    string
	Elapsed   float64 // Match seconds
	Winner    string  // Empty if nobody scored
	Teams     int
	EndedAt   time.Time
	CreatedAt time.Time
}

// TeamRecord is one team's line in a stored match.
type TeamRecord struct {
	MatchID string
	Rank    int
	Team    string
	State   string
	Score   int
	Reason  string
	Fuel    float64
	EndedAt time.Time
}

// Standing aggregates a team's stored results.
type Standing struct {
	Team       string
	Matches    int
	Landings   int
	Crashes    int
	TotalScore int
	BestScore  int
}

const timeLayout = "2006-01-02 15:04:05"

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			seed INTEGER NOT NULL,
			reason TEXT NOT NULL,
			elapsed_secs REAL NOT NULL DEFAULT 0,
			winner TEXT,
			ended_at TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL REFERENCES matches(match_id),
			rank INTEGER NOT NULL,
			team TEXT NOT NULL,
			state TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			reason TEXT,
			fuel REAL NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_results_team ON results(team);
		CREATE INDEX IF NOT EXISTS idx_results_match ON results(match_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatchResult records a finished match and every team's line in one
// transaction.
func (s *Store) SaveMatchResult(res lander.MatchResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	winner, _ := res.Winner()
	endedAt := res.EndedAt
	if endedAt.IsZero() {
		endedAt = time.Now()
	}
	_, err = tx.Exec(
		`INSERT INTO matches (match_id, seed, reason, elapsed_secs, winner, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		res.MatchID, res.Seed, res.Reason, res.Elapsed, winner, endedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save match: %w", err)
	}

	for i, t := range res.Teams {
		_, err := tx.Exec(
			`INSERT INTO results (match_id, rank, team, state, score, reason, fuel)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			res.MatchID, i+1, t.Team, t.State.String(), t.Score, t.Reason, t.Fuel,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save result for %s: %w", t.Team, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return nil
}

// Standings aggregates every stored result per team, best total first.
func (s *Store) Standings(limit int) ([]Standing, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT team,
		        COUNT(*),
		        SUM(CASE WHEN state = 'landed' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN state = 'crashed' THEN 1 ELSE 0 END),
		        SUM(score),
		        MAX(score)
		 FROM results
		 GROUP BY team
		 ORDER BY SUM(score) DESC, team ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query standings: %w", err)
	}
	defer rows.Close()

	var standings []Standing
	for rows.Next() {
		var st Standing
		if err := rows.Scan(&st.Team, &st.Matches, &st.Landings, &st.Crashes, &st.TotalScore, &st.BestScore); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		standings = append(standings, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return standings, nil
}

// TeamHistory retrieves a team's most recent results.
func (s *Store) TeamHistory(team string, limit int) ([]TeamRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.match_id, r.rank, r.team, r.state, r.score, r.reason, r.fuel, m.ended_at
		 FROM results r
		 JOIN matches m ON m.match_id = r.match_id
		 WHERE r.team = ?
		 ORDER BY m.id DESC
		 LIMIT ?`,
		team, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query team history: %w", err)
	}
	defer rows.Close()

	var records []TeamRecord
	for rows.Next() {
		var r TeamRecord
		var reason sql.NullString
		var endedAt any
		if err := rows.Scan(&r.MatchID, &r.Rank, &r.Team, &r.State, &r.Score, &reason, &r.Fuel, &endedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Reason = reason.String
		r.EndedAt = parseTime(endedAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// RecentMatches retrieves the most recently stored matches.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT m.id, m.match_id, m.seed, m.reason, m.elapsed_secs, m.winner, m.ended_at, m.created_at,
		        (SELECT COUNT(*) FROM results r WHERE r.match_id = m.match_id)
		 FROM matches m
		 ORDER BY m.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var m MatchRecord
		var winner sql.NullString
		var endedAt, createdAt any
		if err := rows.Scan(&m.ID, &m.MatchID, &m.Seed, &m.Reason, &m.Elapsed, &winner, &endedAt, &createdAt, &m.Teams); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.Winner = winner.String
		m.EndedAt = parseTime(endedAt)
		m.CreatedAt = parseTime(createdAt)
		records = append(records, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// MatchByID retrieves a stored match by its match ID.
// Returns nil without an error when the match is unknown.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	var m MatchRecord
	var winner sql.NullString
	var endedAt, createdAt any

	err := s.db.QueryRow(
		`SELECT m.id, m.match_id, m.seed, m.reason, m.elapsed_secs, m.winner, m.ended_at, m.created_at,
		        (SELECT COUNT(*) FROM results r WHERE r.match_id = m.match_id)
		 FROM matches m
		 WHERE m.match_id = ?`,
		matchID,
	).Scan(&m.ID, &m.MatchID, &m.Seed, &m.Reason, &m.Elapsed, &winner, &endedAt, &createdAt, &m.Teams)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}

	m.Winner = winner.String
	m.EndedAt = parseTime(endedAt)
	m.CreatedAt = parseTime(createdAt)
	return &m, nil
}

// ClearTeam deletes every stored result of the given team.
func (s *Store) ClearTeam(team string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE team = ?", team)
	if err != nil {
		return fmt.Errorf("storage: cannot clear team: %w", err)
	}
	return nil
}

// parseTime handles both driver-decoded times and stored strings.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
