package state

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "tablib"
	dbFileName = "tablib.db"
)

// Manager is the SQLite-backed store.
type Manager struct {
	db *sql.DB
}

// Open opens the database at path, creating it and its directory if needed.
// An empty path selects the default location under the XDG data directory.
func Open(ctx context.Context, path string) (*Manager, error) {
	if path == "" {
		var err error
		path, err = DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases coherent and serializes writers.
	db.SetMaxOpenConns(1)

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

// DefaultDBPath returns the database location under the XDG data directory.
func DefaultDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

func (m *Manager) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.db == nil {
		return nil, false, ErrClosed
	}
	var value []byte
	err := m.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (m *Manager) Set(ctx context.Context, key string, value []byte) error {
	if m.db == nil {
		return ErrClosed
	}
	if value == nil {
		value = []byte{}
	}
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now().UnixMilli())
	return err
}

func (m *Manager) Delete(ctx context.Context, key string) error {
	if m.db == nil {
		return ErrClosed
	}
	_, err := m.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

func (m *Manager) Close() error {
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}
