package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
)

// SettingsService owns the persisted user settings.
type SettingsService struct {
	mu        sync.Mutex
	repo      ports.SettingsRepository
	current   domain.Settings
	observers []func(domain.Settings)
	logger    *slog.Logger
}

// NewSettingsService creates a service holding the default settings.
func NewSettingsService(repo ports.SettingsRepository, logger *slog.Logger) *SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsService{repo: repo, current: domain.DefaultSettings(), logger: logger}
}

// Load reads the stored settings. Corrupt data is replaced by defaults.
func (s *SettingsService) Load(ctx context.Context) error {
	settings, err := s.repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, ports.ErrCorruptValue) {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		s.logger.Warn("stored settings are unreadable, using defaults", "error", err)
	}

	s.mu.Lock()
	s.current = settings
	s.mu.Unlock()
	return nil
}

// Current returns the settings in effect.
func (s *SettingsService) Current() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// OnChange registers fn to be called after every successful update.
func (s *SettingsService) OnChange(fn func(domain.Settings)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Update merges patch into the settings as stored, clamps it, persists it
// and notifies observers.
func (s *SettingsService) Update(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	if patch.BackgroundImage != nil {
		if err := domain.ValidateURL(*patch.BackgroundImage); err != nil {
			return s.Current(), err
		}
	}
	if patch.AlarmSound != nil {
		if err := domain.ValidateURL(*patch.AlarmSound); err != nil {
			return s.Current(), err
		}
	}

	s.mu.Lock()
	next, err := s.repo.Update(ctx, func(stored domain.Settings) domain.Settings {
		return stored.Apply(patch)
	})
	if err != nil {
		s.mu.Unlock()
		return s.Current(), fmt.Errorf("failed to save settings: %w", err)
	}
	s.current = next
	observers := append([]func(domain.Settings){}, s.observers...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(next)
	}
	return next, nil
}

// Sync reloads the stored settings and notifies observers when another
// process changed them.
func (s *SettingsService) Sync(ctx context.Context) error {
	settings, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, ports.ErrCorruptValue) {
			return nil
		}
		return fmt.Errorf("failed to load settings: %w", err)
	}

	s.mu.Lock()
	changed := settings != s.current
	s.current = settings
	observers := append([]func(domain.Settings){}, s.observers...)
	s.mu.Unlock()

	if changed {
		for _, fn := range observers {
			fn(settings)
		}
	}
	return nil
}
