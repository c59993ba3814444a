package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS blobs (
	namespace TEXT NOT NULL,
	tag INTEGER NOT NULL,
	data BLOB NOT NULL,
	updated_at DATETIME NOT NULL,
	PRIMARY KEY (namespace, tag)
);`

// SQLiteStore persists blobs in a single sqlite database file.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (or creates) the database at dbPath.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps sqlite writes serialized.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Debug("opened fold store", "path", dbPath)

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Put replaces the blob stored under namespace/tag.
func (s *SQLiteStore) Put(ctx context.Context, namespace string, tag byte, blob []byte) error {
	if blob == nil {
		blob = []byte{}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blobs (namespace, tag, data, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (namespace, tag) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		namespace, int(tag), blob, time.Now().UTC())
	if err != nil {
		slog.Error("failed to put blob", "namespace", namespace, "tag", string(tag), "error", err)
		return fmt.Errorf("failed to put blob %s/%c: %w", namespace, tag, err)
	}

	return nil
}

// Get returns the blob stored under namespace/tag or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, namespace string, tag byte) ([]byte, error) {
	var blob []byte

	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM blobs WHERE namespace = ? AND tag = ?`, namespace, int(tag)).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get blob %s/%c: %w", namespace, tag, err)
	}

	return blob, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
