package services

import (
	"context"

	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
)

// StateService implements ports.StateProvider on top of an App.
type StateService struct {
	app *App
}

// NewStateService creates a new state service.
func NewStateService(app *App) *StateService {
	return &StateService{app: app}
}

// Summary implements ports.StateProvider.
func (s *StateService) Summary(ctx context.Context) (domain.DailySummary, error) {
	if s.app == nil {
		return domain.DailySummary{}, errNoApp
	}
	return s.app.Summary(ctx), nil
}

// TimerState implements ports.StateProvider.
func (s *StateService) TimerState() domain.TimerState {
	return s.app.Timer.State()
}

// ToggleTimer implements ports.StateProvider.
func (s *StateService) ToggleTimer(ctx context.Context) domain.TimerState {
	s.app.Timer.Toggle()
	return s.app.Timer.State()
}

// SkipPhase implements ports.StateProvider.
func (s *StateService) SkipPhase(ctx context.Context) domain.Transition {
	return s.app.Timer.Skip()
}

// ResetTimer implements ports.StateProvider.
func (s *StateService) ResetTimer(ctx context.Context) domain.TimerState {
	s.app.Timer.Reset()
	return s.app.Timer.State()
}

// SelectMode implements ports.StateProvider.
func (s *StateService) SelectMode(ctx context.Context, mode domain.TimerMode) (domain.TimerState, error) {
	if err := s.app.Timer.SelectMode(mode); err != nil {
		return s.app.Timer.State(), err
	}
	return s.app.Timer.State(), nil
}

// ListTasks implements ports.StateProvider.
func (s *StateService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	return s.app.Tasks.ListTasks(ctx), nil
}

// AddTask implements ports.StateProvider.
func (s *StateService) AddTask(ctx context.Context, title string, total int) (*domain.Task, error) {
	return s.app.Tasks.AddTask(ctx, AddTaskRequest{Title: title, TotalQuestions: total})
}

// ToggleTask implements ports.StateProvider.
func (s *StateService) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.app.Tasks.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.app.Tasks.ToggleTask(ctx, task.ID)
}

// AdjustTask implements ports.StateProvider.
func (s *StateService) AdjustTask(ctx context.Context, id string, delta int) (*domain.Task, error) {
	task, err := s.app.Tasks.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.app.Tasks.AdjustTask(ctx, task.ID, delta)
}

// DeleteTask implements ports.StateProvider.
func (s *StateService) DeleteTask(ctx context.Context, id string) error {
	return s.app.Tasks.DeleteTask(ctx, id)
}

// Settings implements ports.StateProvider.
func (s *StateService) Settings(ctx context.Context) domain.Settings {
	return s.app.Settings.Current()
}

// UpdateSettings implements ports.StateProvider.
func (s *StateService) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	return s.app.Settings.Update(ctx, patch)
}

// Tip implements ports.StateProvider.
func (s *StateService) Tip(ctx context.Context, hint string) string {
	return s.app.Tips.Tip(ctx, hint)
}

// Ensure StateService implements StateProvider.
var _ ports.StateProvider = (*StateService)(nil)
