// Package notification provides desktop notification utilities.
package notification

import (
	"github.com/gen2brain/beeep"
	"github.com/thalesaraujo16/pomodoro-teste/internal/config"
	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg    *config.NotificationConfig
	notify func(title, message, icon string) error
	beep   func(freq float64, duration int) error
}

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{
		cfg:    cfg,
		notify: func(title, message, icon string) error { return beeep.Notify(title, message, icon) },
		beep:   beeep.Beep,
	}
}

// Notify displays a desktop notification if enabled. With sound enabled a
// short terminal beep accompanies it, so a completed phase is noticed even
// when no audio player is installed.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}

	if err := n.notify(title, message, ""); err != nil {
		return err
	}
	if n.cfg.Sound {
		return n.beep(beeep.DefaultFreq, beeep.DefaultDuration)
	}
	return nil
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
