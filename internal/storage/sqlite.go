// Package storage provides SQLite-based persistence for played rounds.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Round outcomes.
const (
	OutcomeWon  = "won"
	OutcomeLost = "lost"
)

const (
	timeLayout   = "2006-01-02 15:04:05"
	defaultLimit = 20
)

// Store manages the SQLite database connection for the round history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Round is a single finished round.
type Round struct {
	ID         string
	Difficulty string
	Expression string
	Answer     int64
	Collected  string
	Outcome    string
	Cause      string // Empty for won rounds
	Ticks      int
	CreatedAt  time.Time
}

// Won reports whether the round was solved.
func (r Round) Won() bool {
	return r.Outcome == OutcomeWon
}

// DifficultyStats aggregates the rounds of one difficulty.
type DifficultyStats struct {
	Difficulty string
	Played     int
	Wins       int
	AvgTicks   float64
	LastPlayed time.Time
}

// WinRate returns the fraction of won rounds, 0 when nothing was played.
func (s DifficultyStats) WinRate() float64 {
	if s.Played == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Played)
}

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

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			difficulty TEXT NOT NULL,
			expression TEXT NOT NULL,
			answer INTEGER NOT NULL,
			collected TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			cause TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_difficulty ON rounds(difficulty);
		CREATE INDEX IF NOT EXISTS idx_rounds_recent ON rounds(difficulty, created_at DESC);
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

// SaveRound records a finished round and returns its ID.
// A missing ID is generated, a zero CreatedAt means now.
func (s *Store) SaveRound(r Round) (string, error) {
	if r.Outcome != OutcomeWon && r.Outcome != OutcomeLost {
		return "", fmt.Errorf("storage: unknown outcome %q", r.Outcome)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}

	_, err := s.db.Exec(
		`INSERT INTO rounds
		 (id, difficulty, expression, answer, collected, outcome, cause, ticks, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.Difficulty,
		r.Expression,
		r.Answer,
		r.Collected,
		r.Outcome,
		r.Cause,
		r.Ticks,
		r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save round: %w", err)
	}
	return r.ID, nil
}

// RoundByID retrieves a round by its ID. Returns nil if it does not exist.
func (s *Store) RoundByID(id string) (*Round, error) {
	row := s.db.QueryRow(
		`SELECT id, difficulty, expression, answer, collected, outcome, cause, ticks, created_at
		 FROM rounds
		 WHERE id = ?`,
		id,
	)
	r, err := scanRound(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query round: %w", err)
	}
	return &r, nil
}

// RecentRounds retrieves the most recent rounds, newest first.
// An empty difficulty matches every difficulty.
func (s *Store) RecentRounds(difficulty string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.Query(
		`SELECT id, difficulty, expression, answer, collected, outcome, cause, ticks, created_at
		 FROM rounds
		 WHERE ? = '' OR difficulty = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		difficulty, difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		r, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rounds = append(rounds, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rounds, nil
}

// Stats returns the aggregate for one difficulty, or for all rounds when
// difficulty is empty. Nothing played yields zero counts.
func (s *Store) Stats(difficulty string) (DifficultyStats, error) {
	stats := DifficultyStats{Difficulty: difficulty}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(ticks), 0),
		        MAX(created_at)
		 FROM rounds WHERE ? = '' OR difficulty = ?`,
		OutcomeWon, difficulty, difficulty,
	).Scan(&stats.Played, &stats.Wins, &stats.AvgTicks, &lastPlayed)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get difficulty stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllStats retrieves statistics for every difficulty that has been played.
func (s *Store) AllStats() (map[string]DifficultyStats, error) {
	rows, err := s.db.Query(
		`SELECT difficulty, COUNT(*),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        AVG(ticks), MAX(created_at)
		 FROM rounds
		 GROUP BY difficulty`,
		OutcomeWon,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all difficulty stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]DifficultyStats)
	for rows.Next() {
		var st DifficultyStats
		var lastPlayed any
		if err := rows.Scan(&st.Difficulty, &st.Played, &st.Wins, &st.AvgTicks, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Difficulty] = st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearRounds deletes the rounds of one difficulty, or all rounds when difficulty is empty.
func (s *Store) ClearRounds(difficulty string) error {
	_, err := s.db.Exec("DELETE FROM rounds WHERE ? = '' OR difficulty = ?", difficulty, difficulty)
	if err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRound(row rowScanner) (Round, error) {
	var r Round
	var createdAt any
	err := row.Scan(
		&r.ID,
		&r.Difficulty,
		&r.Expression,
		&r.Answer,
		&r.Collected,
		&r.Outcome,
		&r.Cause,
		&r.Ticks,
		&createdAt,
	)
	if err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed.UTC()
		}
	case []byte:
		return parseTime(string(t))
	}
	return time.Time{}
}
