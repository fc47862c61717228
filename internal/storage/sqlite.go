package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"nuggetube-backend/internal/model"
)

// SQLiteCounterStore keeps the per-user counters in a single sqlite table.
type SQLiteCounterStore struct {
	db *sql.DB
}

func NewSQLiteCounterStore(dbPath string) (*SQLiteCounterStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create db dir: %v", ErrStorageInit, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: open db: %v", ErrStorageInit, err)
	}

	s := &SQLiteCounterStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrate: %v", ErrStorageInit, err)
	}

	return s, nil
}

func (s *SQLiteCounterStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		user_id       TEXT PRIMARY KEY,
		display_name  TEXT NOT NULL DEFAULT '',
		photo_url     TEXT NOT NULL DEFAULT '',
		chicken_count INTEGER NOT NULL DEFAULT 0,
		chick_count   INTEGER NOT NULL DEFAULT 0,
		updated_at    TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_users_chicken_count ON users(chicken_count DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

const userColumns = `user_id, display_name, photo_url, chicken_count, chick_count, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.UserRecord, error) {
	var (
		record    model.UserRecord
		updatedAt string
	)
	if err := row.Scan(&record.UserID, &record.DisplayName, &record.PhotoURL,
		&record.ChickenCount, &record.ChickCount, &updatedAt); err != nil {
		return nil, err
	}

	t, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: updated_at %q", ErrInvalidData, updatedAt)
	}
	record.UpdatedAt = t
	return &record, nil
}

func (s *SQLiteCounterStore) GetUser(ctx context.Context, userID string) (*model.UserRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, userID)

	record, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return record, nil
}

// Increment upserts the record and adds to both counters in one statement.
func (s *SQLiteCounterStore) Increment(ctx context.Context, profile model.UserProfile, chickens, chicks int) (*model.UserRecord, error) {
	if profile.UserID == "" {
		return nil, ErrInvalidData
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (user_id, display_name, photo_url, chicken_count, chick_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			display_name  = excluded.display_name,
			photo_url     = excluded.photo_url,
			chicken_count = users.chicken_count + excluded.chicken_count,
			chick_count   = users.chick_count + excluded.chick_count,
			updated_at    = excluded.updated_at
		RETURNING `+userColumns,
		profile.UserID, profile.DisplayName, profile.PhotoURL, chickens, chicks, now)

	record, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("%w: increment %s: %v", ErrQuery, profile.UserID, err)
	}
	return record, nil
}

func (s *SQLiteCounterStore) TopUsers(ctx context.Context, limit int) ([]model.UserRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY chicken_count DESC, user_id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	defer rows.Close()

	var records []model.UserRecord
	for rows.Next() {
		record, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQuery, err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return records, nil
}

func (s *SQLiteCounterStore) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return n, nil
}

func (s *SQLiteCounterStore) Close() error {
	return s.db.Close()
}
