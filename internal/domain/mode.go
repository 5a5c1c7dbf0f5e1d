package domain

import "fmt"

// TimerMode identifies one of the three timer phases.
type TimerMode string

const (
	ModeFocus      TimerMode = "focus"
	ModeShortBreak TimerMode = "short_break"
	ModeLongBreak  TimerMode = "long_break"
)

// ValidModes lists the timer modes in display order.
var ValidModes = []TimerMode{ModeFocus, ModeShortBreak, ModeLongBreak}

// ParseMode validates a mode string. The camelCase spellings used by the
// persisted settings of earlier versions are accepted as well.
func ParseMode(s string) (TimerMode, error) {
	switch s {
	case "focus":
		return ModeFocus, nil
	case "short_break", "shortBreak", "short":
		return ModeShortBreak, nil
	case "long_break", "longBreak", "long":
		return ModeLongBreak, nil
	}
	return "", fmt.Errorf("%w %q: must be one of focus, short_break, long_break", ErrInvalidMode, s)
}

// Label returns a human-readable label.
func (m TimerMode) Label() string {
	switch m {
	case ModeFocus:
		return "Focus"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// IsBreak returns true for both break phases.
func (m TimerMode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}
