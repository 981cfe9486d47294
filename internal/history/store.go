// Package history persists suite results to a SQLite database so pass rates
// can be compared across runs. Persistence is opt-in; a single playcheck run
// keeps everything in memory unless history is enabled.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/playcheck/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// RunRecord is one persisted suite run.
type RunRecord struct {
	RunID     string
	StartedAt time.Time
	Total     int
	Passed    int
	Failed    int
	Elapsed   time.Duration
	Scenarios []models.ScenarioResult // Populated by LoadRun, empty in listings
}

// PassRate returns the run's pass percentage.
func (r RunRecord) PassRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Passed) / float64(r.Total) * 100
}

// Store manages the SQLite database holding run history. Writes are guarded
// by a file lock next to the database so concurrent playcheck processes do
// not interleave.
type Store struct {
	db     *sql.DB
	dbPath string
	lock   *flock.Flock
}

// NewStore creates a Store and initializes the database schema. The parent
// directory is created for file-based databases; ":memory:" is supported for
// tests and skips file locking.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so subsequent statements wait on locks instead of
	// failing immediately.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("configure database: %w", err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	store := &Store{db: db, dbPath: dbPath}
	if dbPath != ":memory:" {
		store.lock = flock.New(dbPath + ".lock")
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun persists a suite result and its per-scenario rows, then prunes the
// table to keepRuns entries when keepRuns is positive.
func (s *Store) SaveRun(ctx context.Context, result models.SuiteResult, keepRuns int) error {
	if s.lock != nil {
		if err := s.lock.Lock(); err != nil {
			return fmt.Errorf("acquire history lock: %w", err)
		}
		defer s.lock.Unlock()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO suite_runs (run_id, started_at, total, passed, failed, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		result.RunID, result.StartedAt, result.Total, result.Passed, result.Failed,
		result.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, r := range result.Results {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO scenario_results (run_id, position, scenario, status, tier, message, detail, elapsed_ms)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			result.RunID, i, r.Scenario, r.Status, r.Tier, r.Message, r.Detail,
			r.Elapsed.Milliseconds(),
		)
		if err != nil {
			return fmt.Errorf("insert scenario result: %w", err)
		}
	}

	if keepRuns > 0 {
		if err := pruneTx(ctx, tx, keepRuns); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// pruneTx deletes the oldest runs beyond the keep limit, including their
// scenario rows.
func pruneTx(ctx context.Context, tx *sql.Tx, keep int) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM scenario_results WHERE run_id IN (
		   SELECT run_id FROM suite_runs
		   ORDER BY started_at DESC, id DESC LIMIT -1 OFFSET ?
		 )`, keep)
	if err != nil {
		return fmt.Errorf("prune scenario results: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM suite_runs WHERE run_id IN (
		   SELECT run_id FROM suite_runs
		   ORDER BY started_at DESC, id DESC LIMIT -1 OFFSET ?
		 )`, keep)
	if err != nil {
		return fmt.Errorf("prune runs: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first, without scenario rows.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, started_at, total, passed, failed, elapsed_ms
		 FROM suite_runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var elapsedMS int64
		if err := rows.Scan(&rec.RunID, &rec.StartedAt, &rec.Total, &rec.Passed, &rec.Failed, &elapsedMS); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LoadRun returns one run with its scenario rows, or sql.ErrNoRows when the
// run id is unknown.
func (s *Store) LoadRun(ctx context.Context, runID string) (*RunRecord, error) {
	var rec RunRecord
	var elapsedMS int64
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id, started_at, total, passed, failed, elapsed_ms
		 FROM suite_runs WHERE run_id = ?`, runID).
		Scan(&rec.RunID, &rec.StartedAt, &rec.Total, &rec.Passed, &rec.Failed, &elapsedMS)
	if err != nil {
		return nil, err
	}
	rec.Elapsed = time.Duration(elapsedMS) * time.Millisecond

	rows, err := s.db.QueryContext(ctx,
		`SELECT scenario, status, tier, message, detail, elapsed_ms
		 FROM scenario_results WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query scenario results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.ScenarioResult
		var ms int64
		if err := rows.Scan(&r.Scenario, &r.Status, &r.Tier, &r.Message, &r.Detail, &ms); err != nil {
			return nil, fmt.Errorf("scan scenario result: %w", err)
		}
		r.Elapsed = time.Duration(ms) * time.Millisecond
		rec.Scenarios = append(rec.Scenarios, r)
	}
	return &rec, rows.Err()
}
