// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/typedrill/typedrill/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for local app data: a namespaced key-value table
// for settings/results/stats blobs and a word_progress table for the
// adaptive vocabulary scheduler.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS word_progress (
			user_id TEXT NOT NULL,
			word TEXT NOT NULL,
			status TEXT NOT NULL,
			last_practiced TEXT NOT NULL,
			next_review TEXT NOT NULL,
			correct_count INTEGER NOT NULL,
			incorrect_count INTEGER NOT NULL,
			PRIMARY KEY (user_id, word)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_word_progress_review ON word_progress(user_id, next_review);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// GetValue reads one kv entry. The bool reports whether the key exists.
func (s *Store) GetValue(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// PutValue writes one kv entry, replacing any previous value.
func (s *Store) PutValue(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// DeleteValue removes one kv entry. Missing keys are not an error.
func (s *Store) DeleteValue(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

// GetProgress loads one word's progress for a user.
func (s *Store) GetProgress(ctx context.Context, userID, word string) (model.WordProgress, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT word, status, last_practiced, next_review, correct_count, incorrect_count
		 FROM word_progress WHERE user_id = ? AND word = ?`, userID, word)
	p, err := scanProgress(row)
	if err == sql.ErrNoRows {
		return model.WordProgress{}, false, nil
	}
	if err != nil {
		return model.WordProgress{}, false, err
	}
	return p, true, nil
}

// UpsertProgress inserts or replaces a word's progress record.
func (s *Store) UpsertProgress(ctx context.Context, userID string, p model.WordProgress) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO word_progress (user_id, word, status, last_practiced, next_review, correct_count, incorrect_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, word) DO UPDATE SET
			status = excluded.status,
			last_practiced = excluded.last_practiced,
			next_review = excluded.next_review,
			correct_count = excluded.correct_count,
			incorrect_count = excluded.incorrect_count`,
		userID, p.Word, string(p.Status),
		p.LastPracticed.UTC().Format(time.RFC3339Nano),
		p.NextReview.UTC().Format(time.RFC3339Nano),
		p.CorrectCount, p.IncorrectCount)
	return err
}

// NextDueProgress returns the earliest-due learning/review word at or before
// now, if any.
func (s *Store) NextDueProgress(ctx context.Context, userID string, now time.Time) (model.WordProgress, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT word, status, last_practiced, next_review, correct_count, incorrect_count
		 FROM word_progress
		 WHERE user_id = ? AND status IN (?, ?) AND next_review <= ?
		 ORDER BY next_review ASC
		 LIMIT 1`,
		userID, string(model.StatusLearning), string(model.StatusReview),
		now.UTC().Format(time.RFC3339Nano))
	p, err := scanProgress(row)
	if err == sql.ErrNoRows {
		return model.WordProgress{}, false, nil
	}
	if err != nil {
		return model.WordProgress{}, false, err
	}
	return p, true, nil
}

// FirstNewProgress returns any word still in the new status.
func (s *Store) FirstNewProgress(ctx context.Context, userID string) (model.WordProgress, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT word, status, last_practiced, next_review, correct_count, incorrect_count
		 FROM word_progress
		 WHERE user_id = ? AND status = ?
		 LIMIT 1`, userID, string(model.StatusNew))
	p, err := scanProgress(row)
	if err == sql.ErrNoRows {
		return model.WordProgress{}, false, nil
	}
	if err != nil {
		return model.WordProgress{}, false, err
	}
	return p, true, nil
}

// ListProgress returns all progress records for a user ordered by next
// review time.
func (s *Store) ListProgress(ctx context.Context, userID string) ([]model.WordProgress, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word, status, last_practiced, next_review, correct_count, incorrect_count
		 FROM word_progress WHERE user_id = ?
		 ORDER BY next_review ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.WordProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgress(row rowScanner) (model.WordProgress, error) {
	var p model.WordProgress
	var status, lastPracticed, nextReview string
	if err := row.Scan(&p.Word, &status, &lastPracticed, &nextReview, &p.CorrectCount, &p.IncorrectCount); err != nil {
		return model.WordProgress{}, err
	}
	p.Status = model.WordStatus(status)
	parsed, err := time.Parse(time.RFC3339Nano, lastPracticed)
	if err != nil {
		return model.WordProgress{}, err
	}
	p.LastPracticed = parsed
	parsed, err = time.Parse(time.RFC3339Nano, nextReview)
	if err != nil {
		return model.WordProgress{}, err
	}
	p.NextReview = parsed
	return p, nil
}
