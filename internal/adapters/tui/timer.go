package tui

import (
	"context"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/thalesaraujo16/pomodoro-teste/internal/config"
	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
	"github.com/thalesaraujo16/pomodoro-teste/internal/services"
)

// Dashboard runs the full-screen dashboard for an App.
type Dashboard struct {
	app     *services.App
	theme   *config.ThemeConfig
	program *tea.Program
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	wg      sync.WaitGroup
}

// NewDashboard creates a dashboard runner.
func NewDashboard(app *services.App, theme *config.ThemeConfig) *Dashboard {
	return &Dashboard{app: app, theme: theme}
}

// Run starts the interface and blocks until the user quits or ctx is
// cancelled.
func (d *Dashboard) Run(ctx context.Context) error {
	// Create a cancellable context for this dashboard instance
	d.mu.Lock()
	d.ctx, d.cancel = context.WithCancel(ctx)
	d.program = tea.NewProgram(
		NewModel(d.ctx, d.app, d.theme),
		tea.WithAltScreen(),
		tea.WithContext(d.ctx),
	)
	program := d.program
	d.mu.Unlock()
	defer d.cancel()

	// Handle context cancellation
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		<-d.ctx.Done()
		program.Quit()
	}()

	_, err := program.Run()

	// Signal cancellation and wait for goroutines
	d.cancel()
	d.wg.Wait()

	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// ShowSummary prints the daily summary without starting interactive mode.
func ShowSummary(w io.Writer, s domain.DailySummary) {
	theme := config.DefaultThemeConfig()

	fmt.Fprintf(w, "%s Timer\n", theme.IconApp)
	label := s.Timer.Mode.Label()
	if badge := s.Timer.Badge(); badge > 0 {
		label += fmt.Sprintf(" #%d", badge)
	}
	status := "paused"
	if s.Timer.Running {
		status = "running"
	}
	fmt.Fprintf(w, "   Mode: %s (%s)\n", label, status)
	fmt.Fprintf(w, "   Remaining: %s\n", domain.FormatClock(s.Timer.Remaining))

	fmt.Fprintf(w, "\n%s Today:\n", theme.IconStats)
	fmt.Fprintf(w, "   Liquid study time: %s\n", s.LiquidFormatted)
	fmt.Fprintf(w, "   Questions: %d / %d (%.0f%%)\n", s.CompletedQuestions, s.DailyGoal, s.GoalPercent)
	fmt.Fprintf(w, "   Tasks completed: %d / %d\n", s.TasksCompleted, s.TasksTotal)
}
