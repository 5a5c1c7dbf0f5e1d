package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
)

// getThemeColor returns the color for the current mode.
func (m Model) getThemeColor() lipgloss.Color {
	if m.timer.Mode.IsBreak() {
		return lipgloss.Color(m.theme.ColorBreak)
	}
	return lipgloss.Color(m.theme.ColorFocus)
}

// getTimerColor returns the color for the clock, accounting for pause state.
func (m Model) getTimerColor() lipgloss.Color {
	if !m.timer.Running {
		return lipgloss.Color(m.theme.ColorPaused)
	}
	return m.getThemeColor()
}

func (m Model) helpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.showingSummary {
		return m.viewFullscreenSummary()
	}

	var sections []string
	sections = append(sections, m.viewHeader())

	if m.picker != nil {
		sections = append(sections, "", m.picker.view(m.theme, "↑/↓ navigate · enter select · esc back"))
		content := lipgloss.JoinVertical(lipgloss.Left, sections...)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}

	sections = append(sections, "")
	switch m.pane {
	case paneTasks:
		sections = append(sections, m.viewTasks()...)
	case paneSettings:
		sections = append(sections, m.viewSettings()...)
	default:
		sections = append(sections, m.viewTimer()...)
	}

	sections = append(sections, "", m.viewRadio(), m.viewSummaryPanel())

	if m.inputMode != inputNone {
		sections = append(sections, "", m.helpStyle().Render(m.inputLabel()+" ")+m.input.View())
		sections = append(sections, m.helpStyle().Render("enter confirm · esc cancel"))
	} else {
		sections = append(sections, "", m.helpStyle().Render(m.helpText()))
	}

	if m.status != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))
		sections = append(sections, errStyle.Render(m.status))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	activeTab := lipgloss.NewStyle().Bold(true).Underline(true).Foreground(m.getThemeColor())

	tabs := make([]string, 0, paneCount)
	for p := pane(0); p < paneCount; p++ {
		if p == m.pane {
			tabs = append(tabs, activeTab.Render(p.String()))
		} else {
			tabs = append(tabs, m.helpStyle().Render(p.String()))
		}
	}
	return titleStyle.Render(m.theme.IconApp+" Study") + "   " + strings.Join(tabs, "  ")
}

func (m Model) viewModeTabs() string {
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(m.getThemeColor()).Padding(0, 1)
	idle := m.helpStyle().Padding(0, 1)

	var tabs []string
	for i, mode := range domain.ValidModes {
		label := fmt.Sprintf("%d %s", i+1, mode.Label())
		if mode == domain.ModeFocus && m.timer.Badge() > 0 {
			label += fmt.Sprintf(" (%d)", m.timer.Badge())
		}
		if mode == m.timer.Mode {
			tabs = append(tabs, active.Render(label))
		} else {
			tabs = append(tabs, idle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTimer() []string {
	var sections []string
	sections = append(sections, m.viewModeTabs(), "")
	sections = append(sections, renderBigTime(domain.FormatClock(m.timer.Remaining), m.getTimerColor(), m.width))

	if !m.timer.Running {
		pauseBadge := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(m.theme.ColorPaused)).
			Padding(0, 1).
			Render(fmt.Sprintf("%s PAUSED", m.theme.IconPaused))
		sections = append(sections, "", pauseBadge)
	}

	sections = append(sections, "", m.progressBar().ViewAs(m.phaseProgress()))

	if m.notice != "" {
		toast := lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(m.getThemeColor()).
			Padding(0, 2).
			Render(m.notice)
		sections = append(sections, "", toast)
	}

	tipStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(m.theme.ColorTask))
	sections = append(sections, "", tipStyle.Render("💡 "+m.tip))

	switch {
	case m.alarm.Loading:
		sections = append(sections, m.helpStyle().Render("Loading alarm..."))
	case m.alarm.Err != nil:
		sections = append(sections, m.helpStyle().Render("Alarm unavailable: "+m.alarm.Err.Error()))
	}
	return sections
}

func (m Model) progressBar() progress.Model {
	var pbar progress.Model
	switch {
	case !m.timer.Running:
		pbar = progress.New(progress.WithGradient(m.theme.PausedGradientStart, m.theme.PausedGradientEnd))
	case m.timer.Mode.IsBreak():
		pbar = progress.New(progress.WithGradient(m.theme.BreakGradientStart, m.theme.BreakGradientEnd))
	default:
		pbar = progress.New(progress.WithGradient(m.theme.FocusGradientStart, m.theme.FocusGradientEnd))
	}
	pbar.Width = max(min(m.width-4, 60), 10)
	return pbar
}

// phaseProgress is the elapsed share of the current phase.
func (m Model) phaseProgress() float64 {
	total := m.settings.DurationFor(m.timer.Mode)
	if total <= 0 {
		return 0
	}
	return min(max(1-float64(m.timer.Remaining)/float64(total), 0), 1)
}

func (m Model) viewTasks() []string {
	taskStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorTask))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(m.getThemeColor())
	doneStyle := m.helpStyle().Strikethrough(true)

	title := fmt.Sprintf("%s Tasks", m.theme.IconTask)
	if m.filter != "" {
		title += fmt.Sprintf("  /%s", m.filter)
	}
	sections := []string{taskStyle.Bold(true).Render(title), ""}

	if len(m.tasks) == 0 {
		empty := "No tasks yet. Press [a] to add one."
		if m.filter != "" {
			empty = "No tasks match."
		}
		return append(sections, m.helpStyle().Render(empty))
	}

	for i, t := range m.tasks {
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %-30s %3d/%-3d", check, shorten(t.Title, 30), t.CompletedQuestions, t.TotalQuestions)
		switch {
		case i == m.taskCursor:
			sections = append(sections, activeStyle.Render("▸ "+line))
		case t.Completed:
			sections = append(sections, "  "+doneStyle.Render(line))
		default:
			sections = append(sections, taskStyle.Render("  "+line))
		}
	}
	return sections
}

func (m Model) settingValue(row settingsRow) string {
	s := m.settings
	switch row {
	case rowFocus:
		return fmt.Sprintf("%d min", s.FocusTime/60)
	case rowShortBreak:
		return fmt.Sprintf("%d min", s.ShortBreakTime/60)
	case rowLongBreak:
		return fmt.Sprintf("%d min", s.LongBreakTime/60)
	case rowDailyGoal:
		return fmt.Sprintf("%d questions", s.DailyQuestionGoal)
	case rowAlarmEnabled:
		if s.AlarmEnabled {
			return "on"
		}
		return "off"
	case rowAlarmSound:
		return domain.AlarmSoundName(s.AlarmSound)
	case rowBackground:
		for i, url := range domain.BackgroundPresets {
			if url == s.BackgroundImage {
				return fmt.Sprintf("Preset %d", i+1)
			}
		}
		return shorten(s.BackgroundImage, 30)
	}
	return ""
}

var settingLabels = [rowCount]string{
	rowFocus:        "Focus",
	rowShortBreak:   "Short break",
	rowLongBreak:    "Long break",
	rowDailyGoal:    "Daily goal",
	rowAlarmEnabled: "Alarm",
	rowAlarmSound:   "Alarm sound",
	rowBackground:   "Background",
}

func (m Model) viewSettings() []string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorTask))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(m.getThemeColor())

	var sections []string
	for row := settingsRow(0); row < rowCount; row++ {
		line := fmt.Sprintf("%-12s %s", settingLabels[row], m.settingValue(row))
		if row == m.settingsCursor {
			sections = append(sections, activeStyle.Render("▸ "+line))
		} else {
			sections = append(sections, labelStyle.Render("  "+line))
		}
	}
	return sections
}

func (m Model) viewRadio() string {
	style := m.helpStyle()
	state := "off"
	switch {
	case m.radio.Loading:
		state = "loading..."
	case m.radio.Err != nil:
		state = "error: " + m.radio.Err.Error()
	case m.radio.On:
		state = "on"
	}
	return style.Render(fmt.Sprintf("%s %s · %s · vol %d%%",
		m.theme.IconRadio, m.radio.Station.Name, state, int(m.radio.Volume*100+0.5)))
}

func (m Model) viewSummaryPanel() string {
	s := m.summary
	statsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorTask))

	bar := progress.New(progress.WithGradient(m.theme.FocusGradientStart, m.theme.FocusGradientEnd), progress.WithoutPercentage())
	bar.Width = 20

	return statsStyle.Render(fmt.Sprintf("%s %s liquid · %d/%d questions (%.0f%%) ",
		m.theme.IconStats, s.LiquidFormatted, s.CompletedQuestions, s.DailyGoal, s.GoalPercent)) +
		bar.ViewAs(s.GoalPercent/100)
}

func (m Model) inputLabel() string {
	switch m.inputMode {
	case inputTaskTitle:
		return "New task:"
	case inputTaskTotal:
		return fmt.Sprintf("Questions for %q:", m.pendingTitle)
	case inputFilter:
		return "Filter:"
	case inputBackgroundURL:
		return "Background URL:"
	}
	return ""
}

func (m Model) helpText() string {
	toggle := "start"
	if m.timer.Running {
		toggle = "pause"
	}
	radio := "[m] radio  [ ] station  , . volume  [R] stations"

	switch m.pane {
	case paneTasks:
		return "[a]dd  [enter] toggle  +/- questions  [d]elete  [/] filter  tab next  [q]uit\n" + radio
	case paneSettings:
		return "↑/↓ select  ←/→ change  [enter] choose  tab next  [q]uit\n" + radio
	default:
		return fmt.Sprintf("[space] %s  [s]kip  [r]eset  1/2/3 mode  [t]ip  [x] dismiss  tab next  [q]uit\n%s", toggle, radio)
	}
}

func (m Model) viewFullscreenSummary() string {
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorFocus))

	sections = append(sections, titleStyle.Render(fmt.Sprintf("%s Today's Summary", m.theme.IconApp)))
	sections = append(sections, statusStyle.Render(summaryLine(m.theme.IconStats, m.summary)))
	if m.summary.TasksTotal > 0 {
		sections = append(sections, m.helpStyle().Render(fmt.Sprintf("%d of %d tasks completed", m.summary.TasksCompleted, m.summary.TasksTotal)))
	}

	sections = append(sections, "")
	sections = append(sections, m.helpStyle().Render("Press any key to exit"))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func summaryLine(icon string, s domain.DailySummary) string {
	return fmt.Sprintf("%s %s studied, %d/%d questions (%.0f%%)",
		icon, s.LiquidFormatted, s.CompletedQuestions, s.DailyGoal, s.GoalPercent)
}
