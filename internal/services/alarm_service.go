package services

import (
	"log/slog"

	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
)

// SettingsReader gives read access to the current settings.
type SettingsReader interface {
	Current() domain.Settings
}

// AlarmService plays the phase-completion sound. Playback failures are
// logged and exposed through State, never returned to the timer.
type AlarmService struct {
	settings SettingsReader
	playback *playback
}

// NewAlarmService creates an alarm emitter.
func NewAlarmService(player ports.AudioPlayer, settings SettingsReader, logger *slog.Logger) *AlarmService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AlarmService{
		settings: settings,
		playback: newPlayback("alarm", player, logger),
	}
}

// Trigger plays the configured alarm if alarms are enabled.
func (s *AlarmService) Trigger() {
	st := s.settings.Current()
	if !st.AlarmEnabled || st.AlarmSound == "" {
		return
	}
	s.playback.start(st.AlarmSound, 1)
}

// Preview plays url whether or not alarms are enabled.
func (s *AlarmService) Preview(url string) {
	s.playback.start(url, 1)
}

// Stop silences the alarm.
func (s *AlarmService) Stop() {
	s.playback.stop()
}

// State returns the loading/error indicator.
func (s *AlarmService) State() PlaybackState {
	return s.playback.snapshot()
}

// Wait blocks until the current sound has finished.
func (s *AlarmService) Wait() {
	s.playback.wait()
}
