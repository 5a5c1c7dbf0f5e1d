// Package storage provides SQLite implementations of the storage ports.
// All state lives in a single key-value table; each slot holds one
// serialized value.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
	"modernc.org/sqlite"
)

// sqliteStorage implements the ports.Storage interface using SQLite.
type sqliteStorage struct {
	db           *sql.DB
	kv           ports.KVStore
	settingsRepo ports.SettingsRepository
	taskRepo     ports.TaskRepository
	liquidRepo   ports.LiquidTimeRepository
}

// Ensure sqliteStorage implements ports.Storage.
var _ ports.Storage = (*sqliteStorage)(nil)

// New creates a new SQLite storage instance.
func New(dbPath string) (ports.Storage, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: is its own database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	kv := &kvStore{db: db}
	storage := &sqliteStorage{
		db:           db,
		kv:           kv,
		settingsRepo: newSettingsRepository(kv),
		taskRepo:     newTaskRepository(kv),
		liquidRepo:   newLiquidTimeRepository(kv),
	}

	if err := storage.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return storage, nil
}

// dsn attaches the connection pragmas to the path. The driver runs them on
// every new connection in the pool; a PRAGMA sent through db.Exec would only
// reach one of them.
func dsn(dbPath string) string {
	return dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// NewMemory creates a new in-memory SQLite storage instance for testing.
func NewMemory() (ports.Storage, error) {
	return New(":memory:")
}

// KV returns the raw key-value store.
func (s *sqliteStorage) KV() ports.KVStore {
	return s.kv
}

// Settings returns the settings repository.
func (s *sqliteStorage) Settings() ports.SettingsRepository {
	return s.settingsRepo
}

// Tasks returns the task repository.
func (s *sqliteStorage) Tasks() ports.TaskRepository {
	return s.taskRepo
}

// LiquidTime returns the liquid time repository.
func (s *sqliteStorage) LiquidTime() ports.LiquidTimeRepository {
	return s.liquidRepo
}

// Close closes the database connection.
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
func (s *sqliteStorage) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// kvStore implements ports.KVStore on the kv table.
type kvStore struct {
	db *sql.DB
}

// Get returns the value stored under key.
func (k *kvStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := k.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

const upsertQuery = `
	INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`

// Set upserts value under key.
func (k *kvStore) Set(ctx context.Context, key, value string) error {
	if _, err := k.db.ExecContext(ctx, upsertQuery, key, value, time.Now().UTC()); err != nil {
		return writeError(key, err)
	}
	return nil
}

// Update runs fn inside a BEGIN IMMEDIATE transaction on a dedicated
// connection, so the write lock is held from the read to the commit.
func (k *kvStore) Update(ctx context.Context, key string, fn func(string, bool) (string, error)) (err error) {
	conn, err := k.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", key, err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return writeError(key, err)
	}
	defer func() {
		if err != nil {
			_, _ = conn.ExecContext(context.Background(), "ROLLBACK")
		}
	}()

	var current string
	ok := true
	switch scanErr := conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&current); {
	case errors.Is(scanErr, sql.ErrNoRows):
		ok = false
	case scanErr != nil:
		return fmt.Errorf("failed to read %s: %w", key, scanErr)
	}

	next, err := fn(current, ok)
	if err != nil {
		return err
	}
	if _, err = conn.ExecContext(ctx, upsertQuery, key, next, time.Now().UTC()); err != nil {
		return writeError(key, err)
	}
	if _, err = conn.ExecContext(ctx, "COMMIT"); err != nil {
		return writeError(key, err)
	}
	return nil
}

// Delete removes key.
func (k *kvStore) Delete(ctx context.Context, key string) error {
	if _, err := k.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func writeError(key string, err error) error {
	if isBusyError(err) {
		return fmt.Errorf("failed to write %s: database is locked by another study process: %w", key, err)
	}
	return fmt.Errorf("failed to write %s: %w", key, err)
}

// isBusyError checks if an error is a lock contention error.
func isBusyError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code() & 0xff
	return code == 5 || code == 6 // SQLITE_BUSY, SQLITE_LOCKED
}
