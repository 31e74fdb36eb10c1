// Package storage provides SQLite-based persistence for Sokoban level results.
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

// ResultStatus is how a play session on a level ended.
type ResultStatus string

const (
	ResultCleared   ResultStatus = "cleared"    // Every block on a goal
	ResultStepLimit ResultStatus = "step_limit" // Step budget used up first
	ResultAbandoned ResultStatus = "abandoned"  // Player left mid-level
)

// Valid reports whether s is a known status.
func (s ResultStatus) Valid() bool {
	switch s {
	case ResultCleared, ResultStepLimit, ResultAbandoned:
		return true
	}
	return false
}

// ErrInvalidResult is returned when a result is missing required fields.
var ErrInvalidResult = errors.New("storage: invalid result")

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// LevelResult is one finished (or abandoned) attempt at a level.
type LevelResult struct {
	ID        int64
	RunID     string // Groups the attempts of one play session
	LevelID   string
	Player    string
	Steps     int
	MaxSteps  int // 0 = unlimited
	Rejected  int // Moves that did not change the board
	Status    ResultStatus
	CreatedAt time.Time
}

// LevelStats aggregates all attempts at one level.
type LevelStats struct {
	LevelID   string
	Attempts  int
	Cleared   int
	BestSteps int // 0 when never cleared
	AvgSteps  float64
}

// NewRunID returns a fresh identifier for a play session.
func NewRunID() string {
	return uuid.NewString()
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
		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			steps INTEGER NOT NULL,
			max_steps INTEGER NOT NULL DEFAULT 0,
			rejected INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_level ON level_results(level_id);
		CREATE INDEX IF NOT EXISTS idx_level_results_best ON level_results(level_id, status, steps);
		CREATE INDEX IF NOT EXISTS idx_level_results_run ON level_results(run_id);
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

// SaveResult records an attempt and returns the ID of the inserted record.
// An empty RunID gets a fresh one.
func (s *Store) SaveResult(r LevelResult) (int64, error) {
	if r.LevelID == "" {
		return 0, fmt.Errorf("%w: empty level id", ErrInvalidResult)
	}
	if !r.Status.Valid() {
		return 0, fmt.Errorf("%w: unknown status %q", ErrInvalidResult, r.Status)
	}
	if r.Steps < 0 {
		return 0, fmt.Errorf("%w: negative steps", ErrInvalidResult)
	}
	if r.RunID == "" {
		r.RunID = NewRunID()
	}

	result, err := s.db.Exec(
		`INSERT INTO level_results (run_id, level_id, player, steps, max_steps, rejected, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.LevelID, r.Player, r.Steps, r.MaxSteps, r.Rejected, string(r.Status),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const resultColumns = `id, run_id, level_id, player, steps, max_steps, rejected, status, created_at`

// BestResults retrieves the best cleared runs for a level.
// Results are ordered by steps ascending, earlier runs first on ties.
func (s *Store) BestResults(levelID string, limit int) ([]LevelResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM level_results
		 WHERE level_id = ? AND status = ?
		 ORDER BY steps ASC, id ASC
		 LIMIT ?`,
		levelID, string(ResultCleared), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return scanResults(rows)
}

// RecentResults retrieves the most recent attempts across all levels.
func (s *Store) RecentResults(limit int) ([]LevelResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM level_results
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return scanResults(rows)
}

// RunResults retrieves every attempt of one play session in the order played.
func (s *Store) RunResults(runID string) ([]LevelResult, error) {
	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM level_results
		 WHERE run_id = ?
		 ORDER BY id ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return scanResults(rows)
}

func scanResults(rows *sql.Rows) ([]LevelResult, error) {
	defer rows.Close()

	var results []LevelResult
	for rows.Next() {
		var r LevelResult
		var status string
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.RunID,
			&r.LevelID,
			&r.Player,
			&r.Steps,
			&r.MaxSteps,
			&r.Rejected,
			&status,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Status = ResultStatus(status)
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// parseTime handles both time.Time and string datetime values.
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

// BestSteps returns the fewest steps any cleared run of the level needed.
// ok is false when the level was never cleared.
func (s *Store) BestSteps(levelID string) (steps int, ok bool, err error) {
	var best sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MIN(steps) FROM level_results WHERE level_id = ? AND status = ?",
		levelID, string(ResultCleared),
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best steps: %w", err)
	}

	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}

// LevelStats aggregates all attempts at a level.
func (s *Store) LevelStats(levelID string) (LevelStats, error) {
	stats := LevelStats{LevelID: levelID}

	var best sql.NullInt64
	var avg sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
		        MIN(CASE WHEN status = ? THEN steps END),
		        AVG(steps)
		 FROM level_results
		 WHERE level_id = ?`,
		string(ResultCleared), string(ResultCleared), levelID,
	).Scan(&stats.Attempts, &stats.Cleared, &best, &avg)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot query level stats: %w", err)
	}

	if best.Valid {
		stats.BestSteps = int(best.Int64)
	}
	if avg.Valid {
		stats.AvgSteps = avg.Float64
	}
	return stats, nil
}

// PlayedLevels returns the IDs of levels with at least one recorded attempt.
func (s *Store) PlayedLevels() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT level_id FROM level_results ORDER BY level_id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return ids, nil
}

// ClearResults deletes all results for the given level.
func (s *Store) ClearResults(levelID string) error {
	_, err := s.db.Exec("DELETE FROM level_results WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}
