package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"streacs/internal/store"
)

type Store struct {
	db *sql.DB
}

func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Put(ctx context.Context, source string, body []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO source_snapshots (source, body, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(source) DO UPDATE SET
			body = excluded.body,
			fetched_at = excluded.fetched_at
	`, source, body, time.Now().UTC().Unix())
	if err != nil {
		return fmt.Errorf("sqlite: store %s: %w", source, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, source string) (store.Entry, bool, error) {
	var (
		body      []byte
		fetchedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT body, fetched_at FROM source_snapshots WHERE source = ?`, source,
	).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Entry{}, false, nil
	}
	if err != nil {
		return store.Entry{}, false, fmt.Errorf("sqlite: load %s: %w", source, err)
	}
	return store.Entry{Body: body, FetchedAt: time.Unix(fetchedAt, 0).UTC()}, true, nil
}

func (s *Store) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS source_snapshots (
			source TEXT PRIMARY KEY,
			body BLOB NOT NULL,
			fetched_at INTEGER NOT NULL
		);`,
	}

	for _, statement := range statements {
		if _, err := s.db.Exec(statement); err != nil {
			return err
		}
	}

	return nil
}
