// Package archive keeps a browsable sqlite record of every posting that was
// reported. It is best-effort bookkeeping: failures are logged by the caller
// and never block the pipeline, and it plays no part in deduplication.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobwatch-engine/internal/domain"

	_ "modernc.org/sqlite"
)

type Archive struct {
	db *sql.DB
}

type Entry struct {
	Source      string
	Title       string
	Location    string
	URL         string
	Fingerprint string
	FoundAt     time.Time
}

func Open(path string) (*Archive, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite wants a single writer
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Archive{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS postings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source TEXT NOT NULL,
  title TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT '',
  fingerprint TEXT NOT NULL UNIQUE,
  found_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_postings_found_at ON postings(found_at DESC);
`)
	return err
}

// Record stores one reported posting. Re-recording the same fingerprint is a
// no-op.
func (a *Archive) Record(ctx context.Context, rec domain.JobRecord, fingerprint string) error {
	_, err := a.db.ExecContext(ctx, `
INSERT OR IGNORE INTO postings(source, title, location, url, fingerprint, found_at)
VALUES(?,?,?,?,?,?);`,
		rec.SourceName,
		rec.Title,
		rec.Location,
		rec.URL,
		fingerprint,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Recent returns the most recently found postings, newest first.
func (a *Archive) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := a.db.QueryContext(ctx, `
SELECT source, title, location, url, fingerprint, found_at
FROM postings
ORDER BY found_at DESC, id DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var foundAt string
		if err := rows.Scan(&e.Source, &e.Title, &e.Location, &e.URL, &e.Fingerprint, &foundAt); err != nil {
			return nil, err
		}
		e.FoundAt, _ = time.Parse(time.RFC3339, foundAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (a *Archive) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}
