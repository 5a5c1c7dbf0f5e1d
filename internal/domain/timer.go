package domain

// LongBreakEvery is the number of focus completions per long break.
const LongBreakEvery = 4

// Notices shown when a phase completes.
const (
	NoticeCycleComplete = "4-block cycle complete! Long break started."
	NoticeFocusComplete = "Focus complete! Short break started."
	NoticeBreakComplete = "Break over! Back to focus."
)

// TimerState is a snapshot of the interval timer. It is never persisted.
type TimerState struct {
	Mode             TimerMode `json:"mode" yaml:"mode"`
	Remaining        int       `json:"remaining" yaml:"remaining"`
	Running          bool      `json:"running" yaml:"running"`
	FocusCompletions int       `json:"focusCompletions" yaml:"focus_completions"`
}

// Badge returns the block counter shown next to the focus label: 0 means no
// badge, otherwise 1..4.
func (s TimerState) Badge() int {
	if s.FocusCompletions <= 0 {
		return 0
	}
	if r := s.FocusCompletions % LongBreakEvery; r != 0 {
		return r
	}
	return LongBreakEvery
}

// Transition describes a completed phase.
type Transition struct {
	From             TimerMode `json:"from"`
	To               TimerMode `json:"to"`
	FocusCompletions int       `json:"focusCompletions"`
	Notice           string    `json:"notice"`
}

// TickResult reports what a single tick did.
type TickResult struct {
	// Advanced is false when the tick was ignored (paused or already at zero).
	Advanced bool
	// FocusSecond is true when the tick counted toward liquid study time.
	FocusSecond bool
	// Transition is set when the tick finished the phase.
	Transition *Transition
}

// IntervalTimer is the focus/break state machine. It knows nothing about
// clocks: a driver calls Tick once per elapsed second while Running is true.
// IntervalTimer is not safe for concurrent use.
type IntervalTimer struct {
	settings Settings
	state    TimerState
}

// NewIntervalTimer returns a paused timer in focus mode.
func NewIntervalTimer(settings Settings) *IntervalTimer {
	settings = settings.Normalize()
	return &IntervalTimer{
		settings: settings,
		state: TimerState{
			Mode:      ModeFocus,
			Remaining: settings.FocusTime,
		},
	}
}

// State returns the current snapshot.
func (t *IntervalTimer) State() TimerState {
	return t.state
}

// Settings returns the durations the timer currently works with.
func (t *IntervalTimer) Settings() Settings {
	return t.settings
}

// Badge is shorthand for State().Badge().
func (t *IntervalTimer) Badge() int {
	return t.state.Badge()
}

// SelectMode switches to mode, stops the countdown and loads the mode's full
// duration. The focus counter is left alone.
func (t *IntervalTimer) SelectMode(mode TimerMode) error {
	m, err := ParseMode(string(mode))
	if err != nil {
		return err
	}
	t.state.Mode = m
	t.state.Running = false
	t.state.Remaining = t.settings.DurationFor(m)
	return nil
}

// Toggle flips the running flag and returns the new value.
func (t *IntervalTimer) Toggle() bool {
	t.state.Running = !t.state.Running
	return t.state.Running
}

// SetRunning sets the running flag and reports whether it changed.
func (t *IntervalTimer) SetRunning(running bool) bool {
	if t.state.Running == running {
		return false
	}
	t.state.Running = running
	return true
}

// Reset stops the countdown, clears the focus counter and reloads the
// current mode's duration.
func (t *IntervalTimer) Reset() {
	t.state.Running = false
	t.state.FocusCompletions = 0
	t.state.Remaining = t.settings.DurationFor(t.state.Mode)
}

// Tick advances the countdown by one second. It is a no-op unless the timer
// is running with time left. Reaching zero completes the phase.
func (t *IntervalTimer) Tick() TickResult {
	if !t.state.Running || t.state.Remaining <= 0 {
		return TickResult{}
	}

	res := TickResult{
		Advanced:    true,
		FocusSecond: t.state.Mode == ModeFocus,
	}
	t.state.Remaining--
	if t.state.Remaining == 0 {
		tr := t.Complete()
		res.Transition = &tr
	}
	return res
}

// Skip completes the current phase immediately.
func (t *IntervalTimer) Skip() Transition {
	return t.Complete()
}

// Complete moves to the next phase. Focus goes to a long break on every
// fourth completion and to a short break otherwise; breaks go back to focus.
// The focus counter is only cleared by Reset. The running flag carries over.
func (t *IntervalTimer) Complete() Transition {
	tr := Transition{From: t.state.Mode}

	if t.state.Mode == ModeFocus {
		t.state.FocusCompletions++
		if t.state.FocusCompletions%LongBreakEvery == 0 {
			tr.To = ModeLongBreak
			tr.Notice = NoticeCycleComplete
		} else {
			tr.To = ModeShortBreak
			tr.Notice = NoticeFocusComplete
		}
	} else {
		tr.To = ModeFocus
		tr.Notice = NoticeBreakComplete
	}

	t.state.Mode = tr.To
	t.state.Remaining = t.settings.DurationFor(tr.To)
	tr.FocusCompletions = t.state.FocusCompletions
	return tr
}

// ApplySettings swaps in new durations. While paused, a change to the current
// mode's duration is shown right away; a running countdown keeps going and the
// new value applies the next time the mode is entered or reset.
func (t *IntervalTimer) ApplySettings(settings Settings) {
	settings = settings.Normalize()
	prev := t.settings.DurationFor(t.state.Mode)
	t.settings = settings
	if t.state.Running {
		return
	}
	if next := settings.DurationFor(t.state.Mode); next != prev {
		t.state.Remaining = next
	}
}
