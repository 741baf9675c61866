// Package storage provides SQLite-based persistence for recorded runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	// ErrRunNotFound is returned when a run ID does not exist.
	ErrRunNotFound = errors.New("storage: run not found")

	// ErrAmbiguousID is returned when an ID prefix matches several runs.
	ErrAmbiguousID = errors.New("storage: ambiguous run ID")
)

const timeLayout = time.RFC3339Nano

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// Run is the summary of one recorded game, from start to game over.
type Run struct {
	ID         string
	Player     string // "local" or the SSH username
	Score      int
	Ticks      int
	Frames     int
	Cause      string
	DurationMs int64
	Config     string // YAML snapshot of the game configuration
	CreatedAt  time.Time
}

// Frame is one recorded tick: the delta in milliseconds and the encoded
// input events handled during it.
type Frame struct {
	DT     float64
	Events string
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
	// One connection serializes writers from concurrent SSH sessions.
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			frames INTEGER NOT NULL,
			cause TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			config TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);

		CREATE TABLE IF NOT EXISTS frames (
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			dt REAL NOT NULL,
			events TEXT NOT NULL,
			PRIMARY KEY (run_id, seq)
		);

		CREATE TABLE IF NOT EXISTS gaps (
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			gap_top INTEGER NOT NULL,
			PRIMARY KEY (run_id, seq)
		);
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

// SaveRun stores a run with its frames and gap draws in one transaction.
// A zero CreatedAt is set to the current time.
func (s *Store) SaveRun(run Run, frames []Frame, gaps []int) error {
	if run.ID == "" {
		return errors.New("storage: run has no ID")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.Frames = len(frames)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, player, score, ticks, frames, cause, duration_ms, config, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Player, run.Score, run.Ticks, run.Frames, run.Cause,
		run.DurationMs, run.Config, run.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}

	frameStmt, err := tx.Prepare("INSERT INTO frames (run_id, seq, dt, events) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare frame insert: %w", err)
	}
	defer frameStmt.Close()

	for i, f := range frames {
		if _, err := frameStmt.Exec(run.ID, i, f.DT, f.Events); err != nil {
			return fmt.Errorf("storage: cannot save frame %d: %w", i, err)
		}
	}

	gapStmt, err := tx.Prepare("INSERT INTO gaps (run_id, seq, gap_top) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare gap insert: %w", err)
	}
	defer gapStmt.Close()

	for i, g := range gaps {
		if _, err := gapStmt.Exec(run.ID, i, g); err != nil {
			return fmt.Errorf("storage: cannot save gap %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return nil
}

const runColumns = `id, player, score, ticks, frames, cause, duration_ms, config, created_at`

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var createdAt any
	err := sc.Scan(&r.ID, &r.Player, &r.Score, &r.Ticks, &r.Frames, &r.Cause, &r.DurationMs, &r.Config, &createdAt)
	if err != nil {
		return Run{}, err
	}
	r.CreatedAt = parseTimestamp(createdAt)
	return r, nil
}

// parseTimestamp handles both time.Time and string column values.
func parseTimestamp(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Run retrieves one run summary by ID.
func (s *Store) Run(id string) (Run, error) {
	row := s.db.QueryRow("SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return r, nil
}

// FindRun retrieves a run by its full ID or a unique ID prefix.
func (s *Store) FindRun(prefix string) (Run, error) {
	if prefix == "" {
		return Run{}, ErrRunNotFound
	}
	if r, err := s.Run(prefix); !errors.Is(err, ErrRunNotFound) {
		return r, err
	}

	escaped := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(prefix)
	runs, err := s.queryRuns(
		"SELECT "+runColumns+` FROM runs WHERE id LIKE ? ESCAPE '\' LIMIT 2`,
		escaped+"%",
	)
	if err != nil {
		return Run{}, err
	}
	switch len(runs) {
	case 0:
		return Run{}, ErrRunNotFound
	case 1:
		return runs[0], nil
	default:
		return Run{}, fmt.Errorf("%w: %q", ErrAmbiguousID, prefix)
	}
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		"SELECT "+runColumns+" FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
}

// PlayerRuns retrieves the most recent runs of one player, newest first.
func (s *Store) PlayerRuns(player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		"SELECT "+runColumns+" FROM runs WHERE player = ? ORDER BY created_at DESC, rowid DESC LIMIT ?",
		player, limit,
	)
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

// Frames retrieves a run's frames in recorded order.
func (s *Store) Frames(id string) ([]Frame, error) {
	if err := s.exists(id); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT dt, events FROM frames WHERE run_id = ? ORDER BY seq", id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var f Frame
		if err := rows.Scan(&f.DT, &f.Events); err != nil {
			return nil, fmt.Errorf("storage: cannot scan frame: %w", err)
		}
		frames = append(frames, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return frames, nil
}

// Gaps retrieves a run's gap draws in recorded order.
func (s *Store) Gaps(id string) ([]int, error) {
	if err := s.exists(id); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT gap_top FROM gaps WHERE run_id = ? ORDER BY seq", id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query gaps: %w", err)
	}
	defer rows.Close()

	var gaps []int
	for rows.Next() {
		var g int
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("storage: cannot scan gap: %w", err)
		}
		gaps = append(gaps, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return gaps, nil
}

func (s *Store) exists(id string) error {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs WHERE id = ?", id).Scan(&n); err != nil {
		return fmt.Errorf("storage: cannot query run: %w", err)
	}
	if n == 0 {
		return ErrRunNotFound
	}
	return nil
}

// DeleteRun removes a run and its journal.
func (s *Store) DeleteRun(id string) error {
	if err := s.exists(id); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM frames WHERE run_id = ?",
		"DELETE FROM gaps WHERE run_id = ?",
		"DELETE FROM runs WHERE id = ?",
	} {
		if _, err := tx.Exec(q, id); err != nil {
			return fmt.Errorf("storage: cannot delete run: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// PruneRuns keeps the newest keep runs and deletes the rest.
// Returns the number of runs deleted.
func (s *Store) PruneRuns(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	rows, err := s.db.Query(
		"SELECT id FROM runs ORDER BY created_at DESC, rowid DESC LIMIT -1 OFFSET ?",
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query runs: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("storage: row iteration error: %w", err)
	}

	for _, id := range ids {
		if err := s.DeleteRun(id); err != nil {
			return 0, err
		}
	}
	return len(ids), nil
}
