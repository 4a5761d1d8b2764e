// Package journal keeps an optional SQLite record of publish attempts so an
// operator can see what an interrupted run had already pushed to the
// registry. It is written only by the publish command and never consulted
// by checks; the registry stays the source of truth.
package journal

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/cratepub/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// FileName is the database file created in the journal directory.
const FileName = "cratepub.db"

// Outcomes recorded per package.
const (
	OutcomePublished = "published"
	OutcomeDryRun    = "dry-run"
	OutcomeFailed    = "failed"
)

// ErrClosed is returned by operations on a closed Journal.
var ErrClosed = errors.New("journal is closed")

// Entry is one recorded publish outcome.
type Entry struct {
	RunID      string
	Package    string
	Version    string
	DryRun     bool
	Outcome    string
	Error      string
	RecordedAt time.Time
}

// Journal is an open publish journal.
type Journal struct {
	mu  sync.Mutex
	db  *sql.DB
	now func() time.Time
}

// Open creates dir if needed and opens (or creates) the journal database.
func Open(dir string) (*Journal, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, FileName))
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	return &Journal{db: db, now: time.Now}, nil
}

// Close releases the database. Close is idempotent.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

// Begin starts a new run. The returned Run records outcomes as a
// workspace.PublishObserver.
func (j *Journal) Begin() *Run {
	return &Run{journal: j, ID: newRunID()}
}

func (j *Journal) insert(e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return ErrClosed
	}
	var errText sql.NullString
	if e.Error != "" {
		errText = sql.NullString{String: e.Error, Valid: true}
	}
	_, err := j.db.Exec(
		`INSERT INTO publish_events (run_id, package, version, dry_run, outcome, error, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Package, e.Version, e.DryRun, e.Outcome, errText, e.RecordedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record %s: %w", e.Package, err)
	}
	return nil
}

// Entries returns up to limit entries, newest first. A limit of zero or
// less returns every entry.
func (j *Journal) Entries(limit int) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return nil, ErrClosed
	}

	query := `SELECT run_id, package, version, dry_run, outcome, error, recorded_at
		FROM publish_events ORDER BY event_id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			errText  sql.NullString
			recorded string
		)
		if err := rows.Scan(&e.RunID, &e.Package, &e.Version, &e.DryRun, &e.Outcome, &errText, &recorded); err != nil {
			return nil, fmt.Errorf("scan journal: %w", err)
		}
		e.Error = errText.String
		t, err := time.Parse(time.RFC3339Nano, recorded)
		if err != nil {
			return nil, fmt.Errorf("scan journal: event of run %s: recorded_at: %w", e.RunID, err)
		}
		e.RecordedAt = t
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Run records the outcomes of one publish invocation.
type Run struct {
	journal *Journal
	ID      string

	mu  sync.Mutex
	err error
}

// Published records a successful publish (or dry run) of pkg.
func (r *Run) Published(pkg types.Package, dryRun bool) {
	outcome := OutcomePublished
	if dryRun {
		outcome = OutcomeDryRun
	}
	r.record(pkg, dryRun, outcome, "")
}

// Failed records a failed publish of pkg.
func (r *Run) Failed(pkg types.Package, dryRun bool, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	r.record(pkg, dryRun, OutcomeFailed, msg)
}

// Err returns the first error hit while recording, if any.
func (r *Run) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Run) record(pkg types.Package, dryRun bool, outcome, errText string) {
	err := r.journal.insert(Entry{
		RunID:      r.ID,
		Package:    pkg.Name,
		Version:    pkg.Version,
		DryRun:     dryRun,
		Outcome:    outcome,
		Error:      errText,
		RecordedAt: r.journal.now(),
	})
	if err != nil {
		r.mu.Lock()
		if r.err == nil {
			r.err = err
		}
		r.mu.Unlock()
	}
}

// newRunID generates a UUID v7 so run IDs sort by start time.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
