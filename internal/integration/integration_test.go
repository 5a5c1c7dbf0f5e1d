package integration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/thalesaraujo16/pomodoro-teste/internal/adapters/storage"
	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
	"github.com/thalesaraujo16/pomodoro-teste/internal/services"
)

// openApp opens the database at dbPath and builds an App whose timer only
// advances when the test sends on ticks.
func openApp(t *testing.T, dbPath string, ticks chan time.Time) (*services.App, ports.Storage) {
	t.Helper()

	store, err := storage.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	app, err := services.NewApp(context.Background(), store, services.AppOptions{
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		TickSource: func() (<-chan time.Time, func()) { return ticks, func() {} },
	})
	if err != nil {
		store.Close()
		t.Fatalf("failed to create app: %v", err)
	}
	return app, store
}

// tick advances the timer by one second and waits for it to be applied.
func tick(t *testing.T, ticks chan<- time.Time, events <-chan services.TimerEvent) {
	t.Helper()
	select {
	case ticks <- time.Now():
	case <-time.After(time.Second):
		t.Fatal("timer driver is not reading ticks")
	}
	deadline := time.After(time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Type == services.EventTick || ev.Type == services.EventTransition {
				return
			}
		case <-deadline:
			t.Fatal("no tick event")
		}
	}
}

// waitLiquid polls until the liquid counter reaches want.
func waitLiquid(t *testing.T, app *services.App, want domain.LiquidTime) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for app.Stats.LiquidTime() != want {
		if time.Now().After(deadline) {
			t.Fatalf("liquid time = %d, want %d", app.Stats.LiquidTime(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// TestStudyDayLifecycle runs a short study block and checks that everything
// but the timer itself survives a restart.
func TestStudyDayLifecycle(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "study.db")
	ticks := make(chan time.Time)

	app, store := openApp(t, dbPath, ticks)
	events := app.Timer.Subscribe(16)

	focus, goal := 3, 10
	if _, err := app.Settings.Update(ctx, domain.SettingsPatch{FocusTime: &focus, DailyQuestionGoal: &goal}); err != nil {
		t.Fatalf("failed to update settings: %v", err)
	}
	if got := app.Timer.State().Remaining; got != 3 {
		t.Fatalf("paused timer should pick up the new focus time, remaining = %d", got)
	}

	task, err := app.Tasks.AddTask(ctx, services.AddTaskRequest{Title: "Calculus", TotalQuestions: 8})
	if err != nil {
		t.Fatalf("failed to add task: %v", err)
	}

	app.Timer.Start()
	tick(t, ticks, events)
	tick(t, ticks, events)
	waitLiquid(t, app, 2)

	if st := app.Timer.State(); st.Remaining != 1 || !st.Running {
		t.Errorf("after two ticks state = %+v, want 1s left and running", st)
	}

	if _, err := app.Tasks.AdjustTask(ctx, task.ID, 5); err != nil {
		t.Fatalf("failed to adjust task: %v", err)
	}

	tr := app.Timer.Skip()
	if tr.To != domain.ModeShortBreak {
		t.Errorf("skip from focus went to %s, want short break", tr.To)
	}
	if !app.Timer.State().Running {
		t.Error("skipping keeps the timer running")
	}

	summary := app.Summary(ctx)
	if summary.CompletedQuestions != 5 || summary.GoalPercent != 50 {
		t.Errorf("summary = %d questions, %.0f%%, want 5 and 50%%", summary.CompletedQuestions, summary.GoalPercent)
	}

	app.Close()
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close storage: %v", err)
	}

	// Restart
	app, store = openApp(t, dbPath, make(chan time.Time))
	defer store.Close()
	defer app.Close()

	if got := app.Stats.LiquidTime(); got != 2 {
		t.Errorf("liquid time after restart = %d, want 2", got)
	}
	if got := app.Settings.Current().FocusTime; got != 3 {
		t.Errorf("focus time after restart = %d, want 3", got)
	}
	tasks := app.Tasks.ListTasks(ctx)
	if len(tasks) != 1 || tasks[0].CompletedQuestions != 5 {
		t.Fatalf("tasks after restart = %+v, want Calculus with 5 done", tasks)
	}

	st := app.Timer.State()
	if st.Mode != domain.ModeFocus || st.Running || st.Remaining != 3 || st.FocusCompletions != 0 {
		t.Errorf("timer after restart = %+v, want a fresh paused focus block", st)
	}
}

// TestConcurrentTaskEdits adds tasks from many goroutines and checks that
// none of the ledger writes is lost.
func TestConcurrentTaskEdits(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "study.db")

	app, store := openApp(t, dbPath, make(chan time.Time))

	const workers = 16
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task, err := app.Tasks.AddTask(ctx, services.AddTaskRequest{
				Title:          fmt.Sprintf("Set %d", i),
				TotalQuestions: 4,
			})
			if err != nil {
				t.Errorf("failed to add task: %v", err)
				return
			}
			if _, err := app.Tasks.AdjustTask(ctx, task.ID, 1); err != nil {
				t.Errorf("failed to adjust task: %v", err)
			}
		}()
	}
	wg.Wait()

	app.Close()
	store.Close()

	app, store = openApp(t, dbPath, make(chan time.Time))
	defer store.Close()
	defer app.Close()

	if got := len(app.Tasks.ListTasks(ctx)); got != workers {
		t.Errorf("tasks after restart = %d, want %d", got, workers)
	}
	if got := app.Tasks.CompletedQuestions(); got != workers {
		t.Errorf("completed questions = %d, want %d", got, workers)
	}
}

// TestSharedDatabase runs a dashboard and a CLI invocation side by side on
// one database file. Writes from either must not erase the other's.
func TestSharedDatabase(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "study.db")

	seed, err := storage.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	if err := seed.LiquidTime().Save(ctx, 100); err != nil {
		t.Fatalf("failed to seed liquid time: %v", err)
	}
	seed.Close()

	ticks := make(chan time.Time)
	dashboard, dashStore := openApp(t, dbPath, ticks)
	defer dashStore.Close()
	defer dashboard.Close()
	events := dashboard.Timer.Subscribe(16)

	cli, cliStore := openApp(t, dbPath, make(chan time.Time))
	if _, err := cli.Tasks.AddTask(ctx, services.AddTaskRequest{Title: "From the CLI", TotalQuestions: 3}); err != nil {
		t.Fatalf("cli add: %v", err)
	}
	if err := cli.Stats.Reset(ctx); err != nil {
		t.Fatalf("cli stats reset: %v", err)
	}
	goal := 80
	if _, err := cli.Settings.Update(ctx, domain.SettingsPatch{DailyQuestionGoal: &goal}); err != nil {
		t.Fatalf("cli settings: %v", err)
	}
	cli.Close()
	cliStore.Close()

	// The dashboard still holds the state it loaded at startup.
	if _, err := dashboard.Tasks.AddTask(ctx, services.AddTaskRequest{Title: "From the dashboard", TotalQuestions: 2}); err != nil {
		t.Fatalf("dashboard add: %v", err)
	}
	focus := 60
	if _, err := dashboard.Settings.Update(ctx, domain.SettingsPatch{FocusTime: &focus}); err != nil {
		t.Fatalf("dashboard settings: %v", err)
	}
	dashboard.Timer.Start()
	tick(t, ticks, events)
	waitLiquid(t, dashboard, 1)

	tasks, err := dashStore.Tasks().Load(ctx)
	if err != nil {
		t.Fatalf("failed to load tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("stored ledger has %d tasks, want 2", len(tasks))
	}
	if tasks[0].Title != "From the dashboard" || tasks[1].Title != "From the CLI" {
		t.Errorf("stored ledger = [%s, %s], want newest first", tasks[0].Title, tasks[1].Title)
	}

	if v, err := dashStore.LiquidTime().Load(ctx); err != nil || v != 1 {
		t.Errorf("liquid time after reset and one tick = %d, %v; want 1", v, err)
	}

	settings, err := dashStore.Settings().Load(ctx)
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	if settings.DailyQuestionGoal != 80 || settings.FocusTime != 60 {
		t.Errorf("stored settings goal %d focus %d, want 80 and 60", settings.DailyQuestionGoal, settings.FocusTime)
	}

	if err := dashboard.Sync(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if got := len(dashboard.Tasks.ListTasks(ctx)); got != 2 {
		t.Errorf("dashboard lists %d tasks after sync, want 2", got)
	}
}
