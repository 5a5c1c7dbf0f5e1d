// Package ports defines the interfaces (driven and driving ports)
// for the study application following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"
	"errors"

	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
)

// Keys of the three persisted slots.
const (
	KeySettings   = "pomodoro-settings"
	KeyTasks      = "pomodoro-tasks"
	KeyLiquidTime = "pomodoro-liquid-time"
)

// ErrCorruptValue is returned alongside a default value when a stored slot
// exists but cannot be decoded.
var ErrCorruptValue = errors.New("stored value is corrupt")

// KVStore is a flat string-keyed store.
// This is a driven port (implemented by adapters).
type KVStore interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Update reads key and stores what fn returns, with no other writer
	// in between, even from another process. ok is false when key is
	// missing. An error from fn aborts the write and is returned as is.
	Update(ctx context.Context, key string, fn func(value string, ok bool) (string, error)) error
}

// SettingsRepository persists the user settings.
type SettingsRepository interface {
	// Load returns the stored settings. Missing data yields the defaults;
	// undecodable data yields the defaults and ErrCorruptValue.
	Load(ctx context.Context) (domain.Settings, error)

	// Save replaces the stored settings.
	Save(ctx context.Context, settings domain.Settings) error

	// Update applies fn to the stored settings and saves the result
	// atomically. Missing or undecodable data is passed in as the defaults.
	Update(ctx context.Context, fn func(domain.Settings) domain.Settings) (domain.Settings, error)
}

// TaskRepository persists the ordered task ledger as a whole.
type TaskRepository interface {
	// Load returns the stored tasks, newest first. Missing data yields an
	// empty list; undecodable data yields an empty list and ErrCorruptValue.
	Load(ctx context.Context) ([]*domain.Task, error)

	// Save replaces the stored ledger.
	Save(ctx context.Context, tasks []*domain.Task) error

	// Update applies fn to the stored ledger and saves the result
	// atomically. Missing or undecodable data is passed in as an empty list.
	Update(ctx context.Context, fn func([]*domain.Task) ([]*domain.Task, error)) ([]*domain.Task, error)
}

// LiquidTimeRepository persists the liquid study time counter.
type LiquidTimeRepository interface {
	// Load returns the stored seconds, or 0 when missing or undecodable.
	Load(ctx context.Context) (domain.LiquidTime, error)

	// Save replaces the stored value.
	Save(ctx context.Context, value domain.LiquidTime) error

	// Add increments the stored value by n seconds and returns the new total.
	Add(ctx context.Context, n int64) (domain.LiquidTime, error)
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// KV gives raw access to the key-value slots.
	KV() KVStore

	// Settings provides access to the settings slot.
	Settings() SettingsRepository

	// Tasks provides access to the task ledger slot.
	Tasks() TaskRepository

	// LiquidTime provides access to the liquid time slot.
	LiquidTime() LiquidTimeRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
