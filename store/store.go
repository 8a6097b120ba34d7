// Package store keeps a SQLite history of solver runs.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"

	"github.com/katalvlaran/metatsp/tsp"
)

const schemaVersion = 1

// ErrNotFound is returned when no run matches a query.
var ErrNotFound = errors.New("store: run not found")

// Record is one persisted solver run.
type Record struct {
	ID           string
	Instance     string
	Algo         string
	Seed         int64
	Cost         float64
	BestKnown    float64 // valid when HasBestKnown
	HasBestKnown bool
	Iterations   int
	Elapsed      time.Duration
	Stop         string
	Tour         []int
	CreatedAt    time.Time
}

// NewRecord builds a Record from a finished run.
func NewRecord(instance string, seed int64, dm tsp.DistanceModel, res tsp.TSResult) Record {
	rec := Record{
		Instance:   instance,
		Algo:       res.Algo.String(),
		Seed:       seed,
		Cost:       res.Cost,
		Iterations: res.Iterations,
		Elapsed:    res.Elapsed,
		Stop:       res.Stop.String(),
		Tour:       tsp.CopyTour(res.Tour),
	}
	if dm != nil {
		rec.BestKnown, rec.HasBestKnown = dm.BestKnownLength()
	}
	return rec
}

// Store is a SQLite-backed run history.
type Store struct {
	db     *sql.DB
	dbPath string
}

// New opens (and if needed creates) the database at dbPath.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.dbPath }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) initSchema() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return s.createSchema()
	}
	if version > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported %d", version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		instance TEXT NOT NULL,
		algo TEXT NOT NULL,
		seed INTEGER NOT NULL,
		cost REAL NOT NULL,
		best_known REAL,
		iterations INTEGER NOT NULL,
		elapsed_ns INTEGER NOT NULL,
		stop TEXT NOT NULL,
		tour TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_instance ON runs(instance, created_at);
	CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(instance, algo, cost);
	`
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return tx.Commit()
}

// SaveRun stores rec. An empty ID gets a fresh UUID and a zero CreatedAt gets
// the current time; the stored record is returned.
func (s *Store) SaveRun(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	tour, err := json.Marshal(rec.Tour)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode tour: %w", err)
	}
	var best sql.NullFloat64
	if rec.HasBestKnown {
		best = sql.NullFloat64{Float64: rec.BestKnown, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, instance, algo, seed, cost, best_known, iterations, elapsed_ns, stop, tour, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Instance, rec.Algo, rec.Seed, rec.Cost, best,
		rec.Iterations, int64(rec.Elapsed), rec.Stop, string(tour), rec.CreatedAt.UnixNano(),
	)
	if err != nil {
		return Record{}, fmt.Errorf("failed to save run: %w", err)
	}
	return rec, nil
}

const selectRuns = `
	SELECT id, instance, algo, seed, cost, best_known, iterations, elapsed_ns, stop, tour, created_at
	FROM runs`

// ListRuns returns the newest runs first. An empty instance lists every
// instance; limit ≤ 0 means no limit.
func (s *Store) ListRuns(ctx context.Context, instance string, limit int) ([]Record, error) {
	query := selectRuns
	var args []any
	if instance != "" {
		query += " WHERE instance = ?"
		args = append(args, instance)
	}
	query += " ORDER BY created_at DESC, id"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// BestRun returns the cheapest run of algo on instance. An empty algo matches
// every algorithm.
func (s *Store) BestRun(ctx context.Context, instance, algo string) (Record, error) {
	query := selectRuns + " WHERE instance = ?"
	args := []any{instance}
	if algo != "" {
		query += " AND algo = ?"
		args = append(args, algo)
	}
	query += " ORDER BY cost, created_at LIMIT 1"

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		rec     Record
		best    sql.NullFloat64
		elapsed int64
		tour    string
		created int64
	)
	err := sc.Scan(&rec.ID, &rec.Instance, &rec.Algo, &rec.Seed, &rec.Cost, &best,
		&rec.Iterations, &elapsed, &rec.Stop, &tour, &created)
	if err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(tour), &rec.Tour); err != nil {
		return Record{}, fmt.Errorf("failed to decode tour of run %s: %w", rec.ID, err)
	}
	rec.BestKnown, rec.HasBestKnown = best.Float64, best.Valid
	rec.Elapsed = time.Duration(elapsed)
	rec.CreatedAt = time.Unix(0, created).UTC()
	return rec, nil
}
