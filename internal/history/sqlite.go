// Package history keeps a log of finished flappy runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where the run log lives unless configured otherwise.
const DefaultPath = "~/.flappy/history.db"

// Store manages the SQLite connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished run.
type Run struct {
	ID        int64
	Username  string
	Score     float64
	Stage     int
	Ticks     int
	CreatedAt time.Time
}

// UserStats aggregates every run of one user.
type UserStats struct {
	Username string
	Runs     int
	Best     float64
	Average  float64
	LastRun  time.Time
}

// Open creates or opens the run log at dbPath, creating parent directories
// and the schema as needed.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("history: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("history: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			score REAL NOT NULL,
			stage INTEGER NOT NULL DEFAULT 1,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_username ON runs(username);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
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

// SaveRun records a finished run and returns its row ID.
func (s *Store) SaveRun(run Run) (int64, error) {
	if run.Username == "" {
		return 0, errors.New("history: run without username")
	}
	result, err := s.db.Exec(
		"INSERT INTO runs (username, score, stage, ticks) VALUES (?, ?, ?, ?)",
		run.Username, run.Score, run.Stage, run.Ticks,
	)
	if err != nil {
		return 0, fmt.Errorf("history: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns returns the best runs across all users, highest score first.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, username, score, stage, ticks, created_at
		 FROM runs
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// RecentRuns returns the latest runs of username, newest first.
func (s *Store) RecentRuns(username string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, username, score, stage, ticks, created_at
		 FROM runs
		 WHERE username = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		username, limit,
	)
}

// Stats aggregates the runs of username. A user without runs yields zero stats.
func (s *Store) Stats(username string) (UserStats, error) {
	stats := UserStats{Username: username}

	var best, avg sql.NullFloat64
	var last any
	err := s.db.QueryRow(
		`SELECT COUNT(*), MAX(score), AVG(score), MAX(created_at)
		 FROM runs
		 WHERE username = ?`,
		username,
	).Scan(&stats.Runs, &best, &avg, &last)
	if err != nil {
		return stats, fmt.Errorf("history: cannot query stats: %w", err)
	}

	if best.Valid {
		stats.Best = best.Float64
	}
	if avg.Valid {
		stats.Average = avg.Float64
	}
	stats.LastRun = parseTime(last)
	return stats, nil
}

// ClearUser deletes every run of username.
func (s *Store) ClearUser(username string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE username = ?", username); err != nil {
		return fmt.Errorf("history: cannot clear runs: %w", err)
	}
	return nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Username, &r.Score, &r.Stage, &r.Ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("history: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTime handles both driver-decoded times and raw SQLite text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
