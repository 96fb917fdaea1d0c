// Package state persists migration run history in a local SQLite
// database. Each run records per-file content hashes and annotation
// counts, letting a later run skip files that have not changed since
// they were last converted.
package state

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/testshift/core/pkg/domain"
)

// File statuses recorded per run.
const (
	StatusConverted = "converted"
	StatusFailed    = "failed"
)

// ErrNoRuns is returned when no run exists for a query.
var ErrNoRuns = errors.New("state: no runs recorded")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id              TEXT PRIMARY KEY,
	root            TEXT NOT NULL,
	source          TEXT NOT NULL,
	target          TEXT NOT NULL,
	started_at      INTEGER NOT NULL,
	finished_at     INTEGER,
	files_converted INTEGER NOT NULL DEFAULT 0,
	files_failed    INTEGER NOT NULL DEFAULT 0,
	todos           INTEGER NOT NULL DEFAULT 0,
	warnings        INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_files (
	run_id       TEXT NOT NULL REFERENCES runs(id),
	path         TEXT NOT NULL,
	content_hash TEXT NOT NULL,
	source       TEXT NOT NULL,
	status       TEXT NOT NULL,
	todos        INTEGER NOT NULL DEFAULT 0,
	warnings     INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (run_id, path)
);

CREATE INDEX IF NOT EXISTS idx_run_files_path ON run_files(path);
`

// Run is one recorded migration run.
type Run struct {
	ID             string
	Root           string
	Source         domain.Dialect
	Target         domain.Dialect
	StartedAt      time.Time
	FinishedAt     time.Time
	FilesConverted int
	FilesFailed    int
	Todos          int
	Warnings       int
}

// FileRecord is one file's outcome within a run.
type FileRecord struct {
	RunID       string
	Path        string
	ContentHash string
	Source      domain.Dialect
	Status      string
	Todos       int
	Warnings    int
}

// Store wraps the SQLite database holding run history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the state database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state db %s: %w", path, err)
	}
	// The driver is file-backed; concurrent writers need serialization.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply state schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// HashContent computes the content hash recorded per file.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// BeginRun inserts a new run row and returns it with a fresh ID.
func (s *Store) BeginRun(ctx context.Context, root string, source, target domain.Dialect) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Root:      root,
		Source:    source,
		Target:    target,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, root, source, target, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Root, string(run.Source), string(run.Target), run.StartedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("begin run: %w", err)
	}

	return run, nil
}

// FinishRun stamps the run's end time and totals.
func (s *Store) FinishRun(ctx context.Context, runID string, converted, failed, todos, warnings int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs
		 SET finished_at = ?, files_converted = ?, files_failed = ?, todos = ?, warnings = ?
		 WHERE id = ?`,
		time.Now().UTC().Unix(), converted, failed, todos, warnings, runID)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", runID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("finish run: unknown run %s", runID)
	}
	return nil
}

// RecordFile upserts one file outcome for a run.
func (s *Store) RecordFile(ctx context.Context, rec FileRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_files (run_id, path, content_hash, source, status, todos, warnings)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (run_id, path) DO UPDATE SET
		   content_hash = excluded.content_hash,
		   source = excluded.source,
		   status = excluded.status,
		   todos = excluded.todos,
		   warnings = excluded.warnings`,
		rec.RunID, rec.Path, rec.ContentHash, string(rec.Source), rec.Status, rec.Todos, rec.Warnings)
	if err != nil {
		return fmt.Errorf("record file %s: %w", rec.Path, err)
	}
	return nil
}

// LastRun returns the most recently started run for a root.
func (s *Store) LastRun(ctx context.Context, root string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, root, source, target, started_at, COALESCE(finished_at, 0),
		        files_converted, files_failed, todos, warnings
		 FROM runs WHERE root = ? ORDER BY started_at DESC, rowid DESC LIMIT 1`, root)

	var (
		run                   Run
		source, target        string
		startedAt, finishedAt int64
	)
	err := row.Scan(&run.ID, &run.Root, &source, &target, &startedAt, &finishedAt,
		&run.FilesConverted, &run.FilesFailed, &run.Todos, &run.Warnings)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("last run for %s: %w", root, err)
	}

	run.Source = domain.Dialect(source)
	run.Target = domain.Dialect(target)
	run.StartedAt = time.Unix(startedAt, 0).UTC()
	if finishedAt > 0 {
		run.FinishedAt = time.Unix(finishedAt, 0).UTC()
	}
	return &run, nil
}

// FileHashes returns the recorded content hash per converted path for a
// run. Failed files are excluded so they are always retried.
func (s *Store) FileHashes(ctx context.Context, runID string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, content_hash FROM run_files WHERE run_id = ? AND status = ?`,
		runID, StatusConverted)
	if err != nil {
		return nil, fmt.Errorf("file hashes for run %s: %w", runID, err)
	}
	defer func() { _ = rows.Close() }()

	hashes := make(map[string]string)
	for rows.Next() {
		var path, hash string
		if err := rows.Scan(&path, &hash); err != nil {
			return nil, err
		}
		hashes[path] = hash
	}
	return hashes, rows.Err()
}

// Changed filters current path->hash pairs down to the paths that are
// new or modified relative to a previous run's hashes.
func Changed(previous, current map[string]string) []string {
	var changed []string
	for path, hash := range current {
		if previous[path] != hash {
			changed = append(changed, path)
		}
	}
	return changed
}
