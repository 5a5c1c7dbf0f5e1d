package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
)

// TimerEventType identifies a timer event.
type TimerEventType string

const (
	EventTick        TimerEventType = "tick"
	EventStateChange TimerEventType = "state_change"
	EventTransition  TimerEventType = "transition"
)

// TimerEvent is sent to subscribers after every change.
type TimerEvent struct {
	Type       TimerEventType
	State      domain.TimerState
	Transition *domain.Transition
	At         time.Time
}

// TickSource starts a periodic clock and returns its channel plus a stop
// function. The default is a one second time.Ticker.
type TickSource func() (<-chan time.Time, func())

// SecondTicker is the production tick source.
func SecondTicker() (<-chan time.Time, func()) {
	t := time.NewTicker(time.Second)
	return t.C, t.Stop
}

// FocusRecorder is told about every second ticked in focus.
type FocusRecorder interface {
	AddFocusSecond(ctx context.Context) error
}

// Alarm is fired when a phase completes.
type Alarm interface {
	Trigger()
}

// PhaseNotifier is told about completed phases, e.g. to raise a desktop
// notification.
type PhaseNotifier interface {
	Notify(title, message string) error
}

// TimerOption configures a TimerService.
type TimerOption func(*TimerService)

// WithTickSource replaces the one second ticker.
func WithTickSource(src TickSource) TimerOption {
	return func(s *TimerService) { s.tickSource = src }
}

// WithClock sets the clock used for notices and event timestamps.
func WithClock(now func() time.Time) TimerOption {
	return func(s *TimerService) { s.now = now }
}

// WithFocusRecorder wires the liquid time accumulator.
func WithFocusRecorder(r FocusRecorder) TimerOption {
	return func(s *TimerService) { s.recorder = r }
}

// WithAlarm wires the completion alarm.
func WithAlarm(a Alarm) TimerOption {
	return func(s *TimerService) { s.alarm = a }
}

// WithPhaseNotifier wires desktop notifications.
func WithPhaseNotifier(n PhaseNotifier) TimerOption {
	return func(s *TimerService) { s.notifier = n }
}

// WithTimerLogger sets the logger.
func WithTimerLogger(l *slog.Logger) TimerOption {
	return func(s *TimerService) { s.logger = l }
}

// driver is the goroutine advancing the timer while it runs.
type driver struct {
	stop chan struct{}
}

// TimerService owns the interval timer and its driver. All state changes
// happen under one mutex; a driver goroutine exists exactly while the timer
// is running.
type TimerService struct {
	mu         sync.Mutex
	timer      *domain.IntervalTimer
	notices    *domain.NoticeBoard
	driver     *driver
	events     []chan TimerEvent
	closed     bool
	tickSource TickSource
	now        func() time.Time
	recorder   FocusRecorder
	alarm      Alarm
	notifier   PhaseNotifier
	logger     *slog.Logger
}

// NewTimerService creates a paused timer in focus mode.
func NewTimerService(settings domain.Settings, opts ...TimerOption) *TimerService {
	s := &TimerService{
		timer:      domain.NewIntervalTimer(settings),
		tickSource: SecondTicker,
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.notices = domain.NewNoticeBoard(s.now)
	return s
}

// Subscribe registers a new observer channel. Slow observers miss events
// rather than block the timer.
func (s *TimerService) Subscribe(buffer int) <-chan TimerEvent {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan TimerEvent, buffer)
	s.mu.Lock()
	if s.closed {
		close(ch)
	} else {
		s.events = append(s.events, ch)
	}
	s.mu.Unlock()
	return ch
}

// State returns the current snapshot.
func (s *TimerService) State() domain.TimerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.State()
}

// Badge returns the focus block badge (0 for none, else 1..4).
func (s *TimerService) Badge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.Badge()
}

// Settings returns the durations in use.
func (s *TimerService) Settings() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.Settings()
}

// Notice returns the visible notice, if any.
func (s *TimerService) Notice() (domain.Notice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notices.Current()
}

// DismissNotice hides the current notice.
func (s *TimerService) DismissNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices.Dismiss()
}

// ShowNotice puts an arbitrary message on the notice board.
func (s *TimerService) ShowNotice(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices.Show(text)
}

// DriverActive reports whether a driver goroutine is attached.
func (s *TimerService) DriverActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.driver != nil
}

// SelectMode switches phase and stops the countdown.
func (s *TimerService) SelectMode(mode domain.TimerMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.timer.SelectMode(mode); err != nil {
		return err
	}
	s.syncDriverLocked()
	s.emitLocked(EventStateChange, nil)
	return nil
}

// Toggle starts or pauses the countdown and returns the new running flag.
func (s *TimerService) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	running := s.timer.Toggle()
	s.syncDriverLocked()
	s.emitLocked(EventStateChange, nil)
	return running
}

// Start resumes the countdown if it is paused.
func (s *TimerService) Start() {
	s.setRunning(true)
}

// Pause stops the countdown if it is running.
func (s *TimerService) Pause() {
	s.setRunning(false)
}

func (s *TimerService) setRunning(running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.timer.SetRunning(running) {
		return
	}
	s.syncDriverLocked()
	s.emitLocked(EventStateChange, nil)
}

// Reset stops the countdown, clears the focus counter and reloads the
// current phase duration.
func (s *TimerService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer.Reset()
	s.syncDriverLocked()
	s.emitLocked(EventStateChange, nil)
}

// Skip completes the current phase.
func (s *TimerService) Skip() domain.Transition {
	s.mu.Lock()
	tr := s.timer.Skip()
	s.afterTransitionLocked(tr)
	s.mu.Unlock()

	s.fireAlarm(tr)
	return tr
}

// ApplySettings pushes new durations into the timer.
func (s *TimerService) ApplySettings(settings domain.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer.ApplySettings(settings)
	s.emitLocked(EventStateChange, nil)
}

// Close stops the driver and closes all subscriber channels.
func (s *TimerService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.stopDriverLocked()
	for _, ch := range s.events {
		close(ch)
	}
	s.events = nil
}

// tick advances the timer by one second. Stale drivers are ignored.
func (s *TimerService) tick(d *driver) {
	s.mu.Lock()
	if d != nil && d != s.driver {
		s.mu.Unlock()
		return
	}
	res := s.timer.Tick()
	if !res.Advanced {
		s.mu.Unlock()
		return
	}
	if res.Transition != nil {
		s.afterTransitionLocked(*res.Transition)
	} else {
		s.emitLocked(EventTick, nil)
	}
	s.mu.Unlock()

	if res.FocusSecond && s.recorder != nil {
		if err := s.recorder.AddFocusSecond(context.Background()); err != nil {
			s.logger.Warn("failed to record focus second", "error", err)
		}
	}
	if res.Transition != nil {
		s.fireAlarm(*res.Transition)
	}
}

func (s *TimerService) afterTransitionLocked(tr domain.Transition) {
	s.notices.Show(tr.Notice)
	s.syncDriverLocked()
	s.emitLocked(EventTransition, &tr)
	s.logger.Info("phase complete", "from", tr.From, "to", tr.To, "focus_completions", tr.FocusCompletions)
}

// fireAlarm runs outside the lock; both collaborators are fire-and-forget.
func (s *TimerService) fireAlarm(tr domain.Transition) {
	if s.alarm != nil {
		s.alarm.Trigger()
	}
	if s.notifier != nil {
		go func() {
			if err := s.notifier.Notify("study", tr.Notice); err != nil {
				s.logger.Warn("desktop notification failed", "error", err)
			}
		}()
	}
}

// syncDriverLocked replaces the driver so that exactly one exists while
// running and none otherwise. A transition restarts the driver so the next
// phase gets a full first second.
func (s *TimerService) syncDriverLocked() {
	s.stopDriverLocked()
	if s.closed || !s.timer.State().Running {
		return
	}

	d := &driver{stop: make(chan struct{})}
	s.driver = d
	ticks, stop := s.tickSource()
	go func() {
		defer stop()
		for {
			select {
			case <-d.stop:
				return
			case <-ticks:
				s.tick(d)
			}
		}
	}()
}

// stopDriverLocked detaches the current driver. The goroutine may still be
// waiting for the lock; tick ignores it once it is no longer current.
func (s *TimerService) stopDriverLocked() {
	if s.driver == nil {
		return
	}
	close(s.driver.stop)
	s.driver = nil
}

func (s *TimerService) emitLocked(typ TimerEventType, tr *domain.Transition) {
	ev := TimerEvent{Type: typ, State: s.timer.State(), Transition: tr, At: s.now()}
	for _, ch := range s.events {
		select {
		case ch <- ev:
		default:
		}
	}
}
