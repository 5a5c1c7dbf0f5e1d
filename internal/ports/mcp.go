package ports

import (
	"context"

	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// StateProvider exposes the application state to the MCP and HTTP
// surfaces. This is a driven port (implemented by the services layer).
type StateProvider interface {
	// Summary returns the daily summary including the timer snapshot.
	Summary(ctx context.Context) (domain.DailySummary, error)

	// TimerState returns the current timer snapshot.
	TimerState() domain.TimerState

	// ToggleTimer starts or pauses the countdown.
	ToggleTimer(ctx context.Context) domain.TimerState

	// SkipPhase completes the current phase.
	SkipPhase(ctx context.Context) domain.Transition

	// ResetTimer stops the countdown and clears the focus counter.
	ResetTimer(ctx context.Context) domain.TimerState

	// SelectMode switches the timer phase.
	SelectMode(ctx context.Context, mode domain.TimerMode) (domain.TimerState, error)

	// ListTasks returns the ledger, newest first.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// AddTask creates a task.
	AddTask(ctx context.Context, title string, total int) (*domain.Task, error)

	// ToggleTask flips a task's completed flag.
	ToggleTask(ctx context.Context, id string) (*domain.Task, error)

	// AdjustTask moves a task's completed count.
	AdjustTask(ctx context.Context, id string, delta int) (*domain.Task, error)

	// DeleteTask removes a task; missing ids are ignored.
	DeleteTask(ctx context.Context, id string) error

	// Settings returns the current settings.
	Settings(ctx context.Context) domain.Settings

	// UpdateSettings applies a partial update.
	UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error)

	// Tip returns a study tip.
	Tip(ctx context.Context, hint string) string
}
