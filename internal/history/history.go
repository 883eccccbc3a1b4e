// Package history keeps a local record of completed scans in SQLite.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// ErrEmptyPath is returned when no database path is provided.
var ErrEmptyPath = errors.New("history: database path is empty")

const schema = `
CREATE TABLE IF NOT EXISTS scans (
	id              TEXT PRIMARY KEY,
	created_at      TIMESTAMP NOT NULL,
	source_url      TEXT NOT NULL DEFAULT '',
	resume_filename TEXT NOT NULL DEFAULT '',
	ats_score       REAL,
	jd_chars        INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_scans_created_at ON scans(created_at DESC);
`

// Entry is one recorded scan.
type Entry struct {
	ID             uuid.UUID
	CreatedAt      time.Time
	SourceURL      string
	ResumeFilename string
	ATSScore       *float64 // nil when the backend returned no score
	JDChars        int
}

// Store is a SQLite-backed scan log.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one scan. A zero ID or timestamp is filled in.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scans (id, created_at, source_url, resume_filename, ats_score, jd_chars)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID.String(), e.CreatedAt, e.SourceURL, e.ResumeFilename, nullable(e.ATSScore), e.JDChars,
	)
	if err != nil {
		return fmt.Errorf("failed to record scan: %w", err)
	}
	return nil
}

// Recent returns up to limit scans, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, source_url, resume_filename, ats_score, jd_chars
		 FROM scans ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e     Entry
			id    string
			score sql.NullFloat64
		)
		if err := rows.Scan(&id, &e.CreatedAt, &e.SourceURL, &e.ResumeFilename, &score, &e.JDChars); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("corrupt scan id %q: %w", id, err)
		}
		if score.Valid {
			v := score.Float64
			e.ATSScore = &v
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullable(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
