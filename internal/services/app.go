package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
)

// AppOptions carries the adapters an App is built from.
type AppOptions struct {
	Player     ports.AudioPlayer
	Notifier   ports.Notifier
	Tips       ports.TipProvider
	// Volume is the starting radio volume; zero means domain.DefaultVolume.
	Volume     float64
	Logger     *slog.Logger
	TickSource TickSource
	Clock      func() time.Time
}

// App is the application state container. Each surface (TUI, CLI, MCP,
// HTTP) gets one App and mutates state only through its services.
type App struct {
	Storage  ports.Storage
	Settings *SettingsService
	Tasks    *TaskService
	Stats    *StatsService
	Timer    *TimerService
	Alarm    *AlarmService
	Radio    *RadioService
	Tips     ports.TipProvider

	clock  func() time.Time
	logger *slog.Logger
}

// NewApp loads persisted state and wires the services together.
func NewApp(ctx context.Context, storage ports.Storage, opts AppOptions) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	player := opts.Player
	if player == nil {
		player = silentPlayer{}
	}
	tips := opts.Tips
	if tips == nil {
		tips = defaultTip{}
	}
	volume := opts.Volume
	if volume == 0 {
		volume = domain.DefaultVolume
	}

	app := &App{
		Storage:  storage,
		Settings: NewSettingsService(storage.Settings(), logger),
		Tasks:    NewTaskService(storage.Tasks(), logger),
		Stats:    NewStatsService(storage.LiquidTime(), logger),
		Radio:    NewRadioService(player, volume, logger),
		Tips:     tips,
		clock:    clock,
		logger:   logger,
	}

	if err := app.Settings.Load(ctx); err != nil {
		return nil, err
	}
	if err := app.Tasks.Load(ctx); err != nil {
		return nil, err
	}
	if err := app.Stats.Load(ctx); err != nil {
		return nil, err
	}

	app.Alarm = NewAlarmService(player, app.Settings, logger)

	timerOpts := []TimerOption{
		WithFocusRecorder(app.Stats),
		WithAlarm(app.Alarm),
		WithClock(clock),
		WithTimerLogger(logger),
	}
	if opts.TickSource != nil {
		timerOpts = append(timerOpts, WithTickSource(opts.TickSource))
	}
	if opts.Notifier != nil {
		timerOpts = append(timerOpts, WithPhaseNotifier(opts.Notifier))
	}
	app.Timer = NewTimerService(app.Settings.Current(), timerOpts...)
	app.Settings.OnChange(app.Timer.ApplySettings)

	return app, nil
}

// Sync reloads the persisted slots so that edits made by other processes
// sharing the database (CLI, MCP, HTTP) become visible.
func (a *App) Sync(ctx context.Context) error {
	return errors.Join(
		a.Settings.Sync(ctx),
		a.Tasks.Load(ctx),
		a.Stats.Load(ctx),
	)
}

// Summary builds the daily progress panel.
func (a *App) Summary(ctx context.Context) domain.DailySummary {
	return domain.NewDailySummary(
		a.clock(),
		a.Stats.LiquidTime(),
		a.Tasks.ListTasks(ctx),
		a.Settings.Current().DailyQuestionGoal,
		a.Timer.State(),
	)
}

// Close stops the timer driver and all audio. Storage is owned by the caller.
func (a *App) Close() {
	a.Timer.Close()
	a.Alarm.Stop()
	a.Radio.Close()
}

// silentPlayer is used when no audio adapter is configured.
type silentPlayer struct{}

func (silentPlayer) Play(ctx context.Context, req ports.PlayRequest) error {
	if req.OnReady != nil {
		req.OnReady()
	}
	return nil
}

func (silentPlayer) Name() string { return "none" }

// defaultTip is used when no tip provider is configured.
type defaultTip struct{}

func (defaultTip) Tip(ctx context.Context, _ string) string { return domain.DefaultTip }

// errNoApp guards the state service against a nil container.
var errNoApp = errors.New("application not initialized")
