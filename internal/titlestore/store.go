// Package titlestore persists standardized job titles in SQLite. It backs
// the analyzer's title lookups and learns new titles from repeated
// observations.
package titlestore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"atsblitz/internal/errors"
	"atsblitz/internal/types"
)

// promotionThreshold is how many times an unknown title must be observed
// before it is promoted to a standardized entry.
const promotionThreshold = 3

const schema = `
CREATE TABLE IF NOT EXISTS standardised_job_titles (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	original_code      TEXT NOT NULL UNIQUE,
	original_title     TEXT NOT NULL,
	standardised_title TEXT NOT NULL,
	lookup_key         TEXT NOT NULL,
	created_at         TEXT NOT NULL DEFAULT (datetime('now')),
	updated_at         TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_titles_lookup_key ON standardised_job_titles (lookup_key);

CREATE TABLE IF NOT EXISTS observed_titles (
	title       TEXT PRIMARY KEY,
	occurrences INTEGER NOT NULL DEFAULT 1,
	first_seen  TEXT NOT NULL DEFAULT (datetime('now')),
	last_seen   TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// Store wraps the SQLite connection pool.
type Store struct {
	db     *sql.DB
	logger *errors.Logger
}

// Open opens (and migrates) the title database at path.
func Open(path string, logger *errors.Logger) (*Store, error) {
	// modernc sqlite DSN: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewExternalError(errors.ErrCodeStoreFailed, "Failed to open title database", err)
	}

	// sqlite typically wants a single writer
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.NewExternalError(errors.ErrCodeStoreFailed, "Title database unreachable", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, errors.NewExternalError(errors.ErrCodeStoreFailed, "Failed to migrate title database", err)
	}

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Lookup finds a standardized title by its lowercase lookup key, falling
// back to a case-insensitive match on the original title. Returns nil when
// the title is unknown.
func (s *Store) Lookup(ctx context.Context, title string) (*types.StandardizedTitle, error) {
	key := strings.ToLower(strings.TrimSpace(title))
	if key == "" {
		return nil, nil
	}

	var st types.StandardizedTitle
	err := s.db.QueryRowContext(ctx, `
SELECT original_code, original_title, standardised_title
FROM standardised_job_titles
WHERE lookup_key = ?1 OR lower(original_title) = ?1
LIMIT 1;`, key).Scan(&st.OriginalCode, &st.OriginalTitle, &st.StandardizedTitle)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewExternalError(errors.ErrCodeStoreFailed, "Title lookup failed", err)
	}
	return &st, nil
}

// RecordObservation bumps the occurrence counter for an unknown title and
// promotes it to a standardized entry once it crosses the threshold.
func (s *Store) RecordObservation(ctx context.Context, title string) error {
	key := strings.ToLower(strings.TrimSpace(title))
	if key == "" {
		return nil
	}

	var occurrences int
	err := s.db.QueryRowContext(ctx, `
INSERT INTO observed_titles (title) VALUES (?1)
ON CONFLICT(title) DO UPDATE SET
	occurrences = occurrences + 1,
	last_seen   = datetime('now')
RETURNING occurrences;`, key).Scan(&occurrences)
	if err != nil {
		return errors.NewExternalError(errors.ErrCodeStoreFailed, "Failed to record title observation", err)
	}

	if occurrences < promotionThreshold {
		return nil
	}

	promoted := types.StandardizedTitle{
		OriginalCode:      "learned:" + key,
		OriginalTitle:     title,
		StandardizedTitle: CleanTitle(title),
	}
	if err := s.Upsert(ctx, promoted); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Info("Promoted observed title", "title", key, "occurrences", occurrences)
	}
	return nil
}

// Upsert inserts or refreshes a standardized title, keyed on original_code.
func (s *Store) Upsert(ctx context.Context, st types.StandardizedTitle) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO standardised_job_titles (original_code, original_title, standardised_title, lookup_key)
VALUES (?, ?, ?, ?)
ON CONFLICT(original_code) DO UPDATE SET
	original_title     = excluded.original_title,
	standardised_title = excluded.standardised_title,
	lookup_key         = excluded.lookup_key,
	updated_at         = datetime('now');`,
		st.OriginalCode, st.OriginalTitle, st.StandardizedTitle, strings.ToLower(st.StandardizedTitle))
	if err != nil {
		return errors.NewExternalError(errors.ErrCodeStoreFailed, "Failed to upsert standardized title", err)
	}
	return nil
}

// Stats summarizes the store contents.
type Stats struct {
	StandardizedTitles int `json:"standardized_titles"`
	ObservedTitles     int `json:"observed_titles"`
	LearnedTitles      int `json:"learned_titles"`
}

// Stats counts stored and observed titles.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	row := s.db.QueryRowContext(ctx, `
SELECT
	(SELECT count(*) FROM standardised_job_titles),
	(SELECT count(*) FROM observed_titles),
	(SELECT count(*) FROM standardised_job_titles WHERE original_code LIKE 'learned:%');`)
	if err := row.Scan(&st.StandardizedTitles, &st.ObservedTitles, &st.LearnedTitles); err != nil {
		return Stats{}, errors.NewExternalError(errors.ErrCodeStoreFailed, "Failed to read store stats", err)
	}
	return st, nil
}

// Verify checks the store for entries that would break analysis lookups:
// empty standardized titles and lookup keys that drifted from their
// standardized form. It returns the offending original codes.
func (s *Store) Verify(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT original_code
FROM standardised_job_titles
WHERE trim(standardised_title) = '' OR lookup_key != lower(standardised_title)
ORDER BY original_code;`)
	if err != nil {
		return nil, errors.NewExternalError(errors.ErrCodeStoreFailed, "Store verification failed", err)
	}
	defer rows.Close()

	var bad []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, errors.NewExternalError(errors.ErrCodeStoreFailed, "Store verification failed", err)
		}
		bad = append(bad, code)
	}
	return bad, rows.Err()
}
