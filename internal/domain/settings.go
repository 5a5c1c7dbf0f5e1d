package domain

// Settings holds the user-configured durations and preferences. Durations are
// whole seconds. JSON names match the stored format of the browser version so
// existing exports stay readable.
type Settings struct {
	FocusTime         int    `json:"focusTime"`
	ShortBreakTime    int    `json:"shortBreakTime"`
	LongBreakTime     int    `json:"longBreakTime"`
	BackgroundImage   string `json:"backgroundImage"`
	DailyQuestionGoal int    `json:"dailyQuestionGoal"`
	AlarmEnabled      bool   `json:"alarmEnabled"`
	AlarmSound        string `json:"alarmSound"`
}

// MinDurationSeconds is the lower bound for every phase duration.
const MinDurationSeconds = 1

// DefaultSettings returns the first-run settings.
func DefaultSettings() Settings {
	return Settings{
		FocusTime:         25 * 60,
		ShortBreakTime:    5 * 60,
		LongBreakTime:     15 * 60,
		BackgroundImage:   BackgroundPresets[0],
		DailyQuestionGoal: 50,
		AlarmEnabled:      true,
		AlarmSound:        AlarmSounds[1].URL,
	}
}

// DurationFor returns the configured duration in seconds for a mode.
func (s Settings) DurationFor(mode TimerMode) int {
	switch mode {
	case ModeShortBreak:
		return s.ShortBreakTime
	case ModeLongBreak:
		return s.LongBreakTime
	default:
		return s.FocusTime
	}
}

// Normalize clamps numeric fields into their valid ranges.
func (s Settings) Normalize() Settings {
	s.FocusTime = max(s.FocusTime, MinDurationSeconds)
	s.ShortBreakTime = max(s.ShortBreakTime, MinDurationSeconds)
	s.LongBreakTime = max(s.LongBreakTime, MinDurationSeconds)
	s.DailyQuestionGoal = max(s.DailyQuestionGoal, 0)
	return s
}

// SettingsPatch is a partial update. Nil fields are left untouched.
type SettingsPatch struct {
	FocusTime         *int    `json:"focusTime,omitempty"`
	ShortBreakTime    *int    `json:"shortBreakTime,omitempty"`
	LongBreakTime     *int    `json:"longBreakTime,omitempty"`
	BackgroundImage   *string `json:"backgroundImage,omitempty"`
	DailyQuestionGoal *int    `json:"dailyQuestionGoal,omitempty"`
	AlarmEnabled      *bool   `json:"alarmEnabled,omitempty"`
	AlarmSound        *string `json:"alarmSound,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p SettingsPatch) IsEmpty() bool {
	return p == SettingsPatch{}
}

// Apply returns s with the patch merged in and clamped.
func (s Settings) Apply(p SettingsPatch) Settings {
	if p.FocusTime != nil {
		s.FocusTime = *p.FocusTime
	}
	if p.ShortBreakTime != nil {
		s.ShortBreakTime = *p.ShortBreakTime
	}
	if p.LongBreakTime != nil {
		s.LongBreakTime = *p.LongBreakTime
	}
	if p.BackgroundImage != nil {
		s.BackgroundImage = *p.BackgroundImage
	}
	if p.DailyQuestionGoal != nil {
		s.DailyQuestionGoal = *p.DailyQuestionGoal
	}
	if p.AlarmEnabled != nil {
		s.AlarmEnabled = *p.AlarmEnabled
	}
	if p.AlarmSound != nil {
		s.AlarmSound = *p.AlarmSound
	}
	return s.Normalize()
}
