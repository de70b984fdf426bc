// Package library handles ingestion and SQLite persistence of the play
// history.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/willbradshaw/gameplot/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

const metaLastImportedAt = "last_imported_at"

// Store wraps SQLite access for the game library.
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
		`CREATE TABLE IF NOT EXISTS games (
			title TEXT PRIMARY KEY,
			platforms TEXT NOT NULL,
			hours_per_platform TEXT NOT NULL,
			hours_total REAL NOT NULL,
			tags TEXT NOT NULL,
			status TEXT NOT NULL,
			rating REAL,
			first_played TEXT NOT NULL,
			last_played TEXT NOT NULL,
			notes TEXT NOT NULL,
			display_url TEXT NOT NULL,
			urls TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_last_played ON games(last_played);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceAll swaps the stored library for the given records in one
// transaction and stamps the import time.
func (s *Store) ReplaceAll(ctx context.Context, records []model.GameRecord, importedAt time.Time) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM games`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO games (title, platforms, hours_per_platform, hours_total, tags, status, rating, first_played, last_played, notes, display_url, urls)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	for _, rec := range records {
		platforms, merr := marshalStrings(rec.Platforms)
		if merr != nil {
			return fmt.Errorf("encode platforms for %q: %w", rec.Title, merr)
		}
		hours, merr := marshalFloats(rec.HoursPerPlatform)
		if merr != nil {
			return fmt.Errorf("encode hours for %q: %w", rec.Title, merr)
		}
		tags, merr := marshalStrings(rec.Tags)
		if merr != nil {
			return fmt.Errorf("encode tags for %q: %w", rec.Title, merr)
		}
		urls, merr := marshalStrings(rec.URLs)
		if merr != nil {
			return fmt.Errorf("encode urls for %q: %w", rec.Title, merr)
		}
		var rating any
		if rec.Rating != nil {
			rating = *rec.Rating
		}
		if _, err = stmt.ExecContext(ctx,
			rec.Title, platforms, hours, rec.HoursTotal, tags, rec.Status, rating,
			rec.FirstPlayed, rec.LastPlayed, rec.Notes, rec.DisplayURL, urls,
		); err != nil {
			return fmt.Errorf("insert %q: %w", rec.Title, err)
		}
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		metaLastImportedAt, importedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return err
	}

	return tx.Commit()
}

// LoadAll returns every stored record ordered by title.
func (s *Store) LoadAll(ctx context.Context) ([]model.GameRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, platforms, hours_per_platform, hours_total, tags, status, rating, first_played, last_played, notes, display_url, urls
		 FROM games ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.GameRecord
	for rows.Next() {
		var rec model.GameRecord
		var platforms, hours, tags, urls string
		var rating sql.NullFloat64
		if err := rows.Scan(&rec.Title, &platforms, &hours, &rec.HoursTotal, &tags, &rec.Status, &rating,
			&rec.FirstPlayed, &rec.LastPlayed, &rec.Notes, &rec.DisplayURL, &urls); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(platforms), &rec.Platforms); err != nil {
			return nil, fmt.Errorf("decode platforms for %q: %w", rec.Title, err)
		}
		if err := json.Unmarshal([]byte(hours), &rec.HoursPerPlatform); err != nil {
			return nil, fmt.Errorf("decode hours for %q: %w", rec.Title, err)
		}
		if err := json.Unmarshal([]byte(tags), &rec.Tags); err != nil {
			return nil, fmt.Errorf("decode tags for %q: %w", rec.Title, err)
		}
		if err := json.Unmarshal([]byte(urls), &rec.URLs); err != nil {
			return nil, fmt.Errorf("decode urls for %q: %w", rec.Title, err)
		}
		if rating.Valid {
			v := rating.Float64
			rec.Rating = &v
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// LastImportedAt returns the timestamp of the most recent import, if any.
func (s *Store) LastImportedAt(ctx context.Context) (time.Time, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = ?`, metaLastImportedAt).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse %s: %w", metaLastImportedAt, err)
	}
	return parsed, true, nil
}

func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	return string(data), err
}

func marshalFloats(values []float64) (string, error) {
	if values == nil {
		values = []float64{}
	}
	data, err := json.Marshal(values)
	return string(data), err
}
