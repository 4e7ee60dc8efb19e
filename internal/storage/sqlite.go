// Package storage keeps a SQLite history of completed coral runs.
// Uses the pure-Go modernc.org/sqlite driver so the CLI builds without CGO.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoRun is returned when a run id is not in the history.
var ErrNoRun = errors.New("storage: run not found")

const sqliteTime = "2006-01-02 15:04:05"

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Run is one completed simulation.
type Run struct {
	ID          int64
	Preset      string
	Seed        int64
	Rows        int
	Cols        int
	HueDiff     int
	PBrightness float64
	DownBias    float64
	RightBias   float64
	Steps       int
	Settled     int
	Seeded      int
	DurationMS  int64
	Output      string // image path, empty when nothing was saved
	CreatedAt   time.Time
}

// PresetStats aggregates the runs of one preset.
type PresetStats struct {
	Preset   string
	Runs     int
	MinSteps int
	MaxSteps int
	AvgSteps float64
}

// Open creates or opens the database at dbPath. A leading ~ expands to the
// home directory and missing parent directories are created.
func Open(dbPath string) (*Store, error) {
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

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			preset TEXT NOT NULL,
			seed INTEGER NOT NULL,
			nb_rows INTEGER NOT NULL,
			nb_cols INTEGER NOT NULL,
			hue_diff INTEGER NOT NULL,
			p_brightness REAL NOT NULL,
			down_bias REAL NOT NULL,
			right_bias REAL NOT NULL,
			steps INTEGER NOT NULL,
			settled INTEGER NOT NULL DEFAULT 0,
			seeded INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			output TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_preset ON runs(preset);
	`)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records r and returns its id. ID and CreatedAt are ignored.
func (s *Store) SaveRun(r Run) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs
		 (preset, seed, nb_rows, nb_cols, hue_diff, p_brightness, down_bias, right_bias,
		  steps, settled, seeded, duration_ms, output)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Preset, r.Seed, r.Rows, r.Cols, r.HueDiff, r.PBrightness, r.DownBias, r.RightBias,
		r.Steps, r.Settled, r.Seeded, r.DurationMS, r.Output,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const runColumns = `id, preset, seed, nb_rows, nb_cols, hue_diff, p_brightness, down_bias, right_bias,
	steps, settled, seeded, duration_ms, output, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var createdAt any
	err := sc.Scan(&r.ID, &r.Preset, &r.Seed, &r.Rows, &r.Cols, &r.HueDiff,
		&r.PBrightness, &r.DownBias, &r.RightBias,
		&r.Steps, &r.Settled, &r.Seeded, &r.DurationMS, &r.Output, &createdAt)
	if err != nil {
		return r, err
	}
	switch v := createdAt.(type) {
	case time.Time:
		r.CreatedAt = v
	case string:
		if parsed, err := time.Parse(sqliteTime, v); err == nil {
			r.CreatedAt = parsed
		}
	}
	return r, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

// RunsForPreset returns the most recent runs of one preset, newest first.
func (s *Store) RunsForPreset(preset string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE preset = ? ORDER BY id DESC LIMIT ?`,
		preset, limit,
	)
}

// RunByID returns one run or ErrNoRun.
func (s *Store) RunByID(id int64) (Run, error) {
	r, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %d", ErrNoRun, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run %d: %w", id, err)
	}
	return r, nil
}

// Stats aggregates step counts per preset, ordered by preset name.
func (s *Store) Stats() ([]PresetStats, error) {
	rows, err := s.db.Query(
		`SELECT preset, COUNT(*), MIN(steps), MAX(steps), AVG(steps)
		 FROM runs
		 GROUP BY preset
		 ORDER BY preset`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get preset stats: %w", err)
	}
	defer rows.Close()

	var stats []PresetStats
	for rows.Next() {
		var ps PresetStats
		if err := rows.Scan(&ps.Preset, &ps.Runs, &ps.MinSteps, &ps.MaxSteps, &ps.AvgSteps); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats = append(stats, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// Clear deletes every recorded run.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
