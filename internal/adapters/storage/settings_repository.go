package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
)

// settingsRepository implements ports.SettingsRepository as a JSON object.
type settingsRepository struct {
	kv ports.KVStore
}

func newSettingsRepository(kv ports.KVStore) ports.SettingsRepository {
	return &settingsRepository{kv: kv}
}

// Load returns the stored settings, or the defaults when there are none.
func (r *settingsRepository) Load(ctx context.Context) (domain.Settings, error) {
	defaults := domain.DefaultSettings()

	raw, ok, err := r.kv.Get(ctx, ports.KeySettings)
	if err != nil {
		return defaults, err
	}
	if !ok {
		return defaults, nil
	}
	return decodeSettings(raw)
}

// Save replaces the stored settings.
func (r *settingsRepository) Save(ctx context.Context, settings domain.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := r.kv.Set(ctx, ports.KeySettings, string(data)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Update applies fn to the stored settings and saves the result.
func (r *settingsRepository) Update(ctx context.Context, fn func(domain.Settings) domain.Settings) (domain.Settings, error) {
	var saved domain.Settings
	err := r.kv.Update(ctx, ports.KeySettings, func(raw string, ok bool) (string, error) {
		current := domain.DefaultSettings()
		if ok {
			current, _ = decodeSettings(raw)
		}
		saved = fn(current).Normalize()
		data, err := json.Marshal(saved)
		if err != nil {
			return "", fmt.Errorf("failed to encode settings: %w", err)
		}
		return string(data), nil
	})
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return saved, nil
}

// decodeSettings decodes over the defaults, so fields missing from older
// data keep their default value.
func decodeSettings(raw string) (domain.Settings, error) {
	defaults := domain.DefaultSettings()
	settings := defaults
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return defaults, fmt.Errorf("%w: %s: %v", ports.ErrCorruptValue, ports.KeySettings, err)
	}
	return settings.Normalize(), nil
}
