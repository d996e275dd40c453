// Package cache persists the last fetched board snapshot to a local SQLite
// database so the client can render immediately on startup and survive an
// offline launch. The cache is read only as a fetch fallback; writes always
// go through the remote store.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/thenoetrevino/tavla/internal/remote"
)

const schema = `
CREATE TABLE IF NOT EXISTS board_snapshots (
	board_id   TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	fetched_at TIMESTAMP NOT NULL
);`

// Store is the snapshot cache over one SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the snapshot cache at the given path.
// An empty path uses ~/.tavla/cache.db.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir := filepath.Join(home, ".tavla")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		path = filepath.Join(dir, "cache.db")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// Single writer connection; the TUI is the only user.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSnapshot stores the fetched payload for the board, replacing any
// previous snapshot.
func (s *Store) SaveSnapshot(boardID string, payload *remote.BoardPayload) error {
	blob, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO board_snapshots (board_id, payload, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(board_id) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		boardID, blob, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the last saved payload for the board, or (nil, nil)
// when no snapshot exists.
func (s *Store) LoadSnapshot(boardID string) (*remote.BoardPayload, error) {
	var blob []byte
	err := s.db.QueryRow(
		"SELECT payload FROM board_snapshots WHERE board_id = ?", boardID,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	var payload remote.BoardPayload
	if err := json.Unmarshal(blob, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &payload, nil
}
