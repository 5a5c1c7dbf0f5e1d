package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// AlarmSound is a named alarm audio resource.
type AlarmSound struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// AlarmSounds is the built-in alarm catalog. Bell is the default.
var AlarmSounds = []AlarmSound{
	{Name: "beep", URL: "https://actions.google.com/sounds/v1/alarms/beep_short.ogg"},
	{Name: "bell", URL: "https://actions.google.com/sounds/v1/alarms/mechanical_clock_ring.ogg"},
	{Name: "digital", URL: "https://actions.google.com/sounds/v1/alarms/digital_watch_alarm_long.ogg"},
	{Name: "meditation", URL: "https://assets.mixkit.co/active_storage/sfx/2568/2568-preview.mp3"},
}

// Stream is a named internet radio station.
type Stream struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Streams is the ambient radio catalog.
var Streams = []Stream{
	{Name: "Lofi Chill Radio", URL: "https://stream.zeno.fm/f3v528z15m0uv"},
	{Name: "Study Beats", URL: "https://stream.zeno.fm/0r0xa792kwzuv"},
	{Name: "Coffee Shop Lofi", URL: "https://stream.zeno.fm/05axm672kwzuv"},
	{Name: "Synthwave Focus", URL: "https://stream.zeno.fm/99863r6v68zuv"},
}

// DefaultVolume is the initial radio volume.
const DefaultVolume = 0.4

// BackgroundPresets are the built-in background images.
var BackgroundPresets = []string{
	"https://images.unsplash.com/photo-1519681393784-d120267933ba?auto=format&fit=crop&q=80&w=2070",
	"https://images.unsplash.com/photo-1464822759023-fed622ff2c3b?auto=format&fit=crop&q=80&w=2070",
	"https://images.unsplash.com/photo-1501785888041-af3ef285b470?auto=format&fit=crop&q=80&w=2070",
	"https://images.unsplash.com/photo-1470071459604-3b5ec3a7fe05?auto=format&fit=crop&q=80&w=2074",
	"https://images.unsplash.com/photo-1441974231531-c6227db76b6e?auto=format&fit=crop&q=80&w=2071",
	"https://images.unsplash.com/photo-1506744038136-46273834b3fb?auto=format&fit=crop&q=80&w=2070",
}

// Tips is the local advisory table.
var Tips = []string{
	"Split the questions into short blocks and review after every cycle.",
	"Prioritize mistakes: redo the questions you got wrong recently.",
	"Use the Pomodoro technique: intense focus and scheduled breaks.",
	"Explain the solution out loud; teaching is learning.",
	"Start with the hardest questions while you are fresh.",
}

// DefaultTip is shown before any tip has been requested.
const DefaultTip = "Ready for the next block?"

// FindAlarmSound resolves an alarm by name or URL.
func FindAlarmSound(ref string) (AlarmSound, error) {
	for _, s := range AlarmSounds {
		if strings.EqualFold(s.Name, ref) || s.URL == ref {
			return s, nil
		}
	}
	return AlarmSound{}, fmt.Errorf("%w: alarm sound %q", ErrUnknownPreset, ref)
}

// AlarmSoundName returns the catalog name for url, or the url itself when it
// is not one of the built-in sounds.
func AlarmSoundName(url string) string {
	for _, s := range AlarmSounds {
		if s.URL == url {
			return s.Name
		}
	}
	return url
}

// FindStream resolves a station by 1-based index, name or URL.
func FindStream(ref string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(ref, "%d", &n); err == nil && fmt.Sprint(n) == ref {
		if n >= 1 && n <= len(Streams) {
			return n - 1, nil
		}
	}
	for i, s := range Streams {
		if strings.EqualFold(s.Name, ref) || s.URL == ref {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: stream %q", ErrUnknownPreset, ref)
}

// ResolveBackground accepts a 1-based preset number or an http(s) URL.
func ResolveBackground(ref string) (string, error) {
	var n int
	if _, err := fmt.Sscanf(ref, "%d", &n); err == nil && fmt.Sprint(n) == ref {
		if n >= 1 && n <= len(BackgroundPresets) {
			return BackgroundPresets[n-1], nil
		}
		return "", fmt.Errorf("%w: background %d", ErrUnknownPreset, n)
	}
	if err := ValidateURL(ref); err != nil {
		return "", err
	}
	return ref, nil
}

// ValidateURL checks that s is an absolute http or https URL.
func ValidateURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidURL, s)
	}
	return nil
}
