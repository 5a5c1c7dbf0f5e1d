package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/thalesaraujo16/pomodoro-teste/internal/config"
	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
	"github.com/thalesaraujo16/pomodoro-teste/internal/services"
)

// InlineModel is a compact timer that renders in a few lines below the
// prompt instead of taking over the screen.
type InlineModel struct {
	timer  *services.TimerService
	events <-chan services.TimerEvent
	state  domain.TimerState
	notice string
	width  int
	theme  config.ThemeConfig
}

// getTerminalWidth returns the current terminal width, defaulting to 80.
func getTerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}

// NewInlineModel creates the compact view for timer.
func NewInlineModel(timer *services.TimerService, theme *config.ThemeConfig) InlineModel {
	return InlineModel{
		timer:  timer,
		events: timer.Subscribe(16),
		state:  timer.State(),
		width:  getTerminalWidth(),
		theme:  resolveTheme(theme),
	}
}

// Init starts the display tick and the event subscription.
func (m InlineModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitForEvent(m.events))
}

// Update handles keys and timer events.
func (m InlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "c":
			return m, tea.Quit
		case "p", " ":
			m.timer.Toggle()
		case "s":
			m.timer.Skip()
		case "r":
			m.timer.Reset()
		case "x":
			m.timer.DismissNotice()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		cmd = tickCmd()

	case timerEventMsg:
		cmd = waitForEvent(m.events)
	}

	m.state = m.timer.State()
	m.notice = ""
	if n, ok := m.timer.Notice(); ok {
		m.notice = n.Text
	}
	return m, cmd
}

// View renders the compact timer.
func (m InlineModel) View() string {
	accentColor := m.theme.ColorFocus
	if m.state.Mode.IsBreak() {
		accentColor = m.theme.ColorBreak
	}
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(accentColor)).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	pausedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorPaused)).Bold(true)

	var b strings.Builder

	// Line 1: icon + mode + time
	b.WriteString(InlineStatus(m.state, m.theme, accent, pausedStyle))
	if m.notice != "" {
		b.WriteString(dim.Render("  " + m.notice))
	}
	b.WriteString("\n")

	// Line 2: progress bar
	total := m.timer.Settings().DurationFor(m.state.Mode)
	prog := 0.0
	if total > 0 {
		prog = min(max(1-float64(m.state.Remaining)/float64(total), 0), 1)
	}
	var pbar progress.Model
	switch {
	case !m.state.Running:
		pbar = progress.New(progress.WithGradient(m.theme.PausedGradientStart, m.theme.PausedGradientEnd))
	case m.state.Mode.IsBreak():
		pbar = progress.New(progress.WithGradient(m.theme.BreakGradientStart, m.theme.BreakGradientEnd))
	default:
		pbar = progress.New(progress.WithGradient(m.theme.FocusGradientStart, m.theme.FocusGradientEnd))
	}
	pbar.Width = max(m.width-16, 20)
	b.WriteString("  " + pbar.ViewAs(prog))
	b.WriteString(dim.Render(fmt.Sprintf("  %d%%", int(prog*100))))
	b.WriteString("\n")

	// Line 3: help
	toggle := "[p]ause"
	if !m.state.Running {
		toggle = "[p]lay"
	}
	b.WriteString(dim.Render(fmt.Sprintf("  %s [s]kip [r]eset [c]lose", toggle)))
	b.WriteString("\n")

	return b.String()
}

// InlineStatus renders the one-line timer status used by the compact view
// and by non-interactive output.
func InlineStatus(state domain.TimerState, theme config.ThemeConfig, accent, paused lipgloss.Style) string {
	label := state.Mode.Label()
	if badge := state.Badge(); badge > 0 {
		label += fmt.Sprintf(" #%d", badge)
	}
	clock := domain.FormatClock(state.Remaining)
	if !state.Running {
		return paused.Render(fmt.Sprintf("  %s %s  %s  %s PAUSED", theme.IconApp, label, clock, theme.IconPaused))
	}
	return accent.Render(fmt.Sprintf("  %s %s  %s", theme.IconApp, label, clock))
}

// RunInline runs the compact timer until the user closes it. The timer is
// started first so the view opens counting down.
func RunInline(timer *services.TimerService, theme *config.ThemeConfig) error {
	timer.Start()
	p := tea.NewProgram(NewInlineModel(timer, theme))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run inline timer: %w", err)
	}
	return nil
}
