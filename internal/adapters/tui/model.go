// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/thalesaraujo16/pomodoro-teste/internal/config"
	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
	"github.com/thalesaraujo16/pomodoro-teste/internal/services"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// ThinkingTip is shown while a tip is being fetched.
const ThinkingTip = "Thinking..."

// volumeStep is how much one key press changes the radio volume.
const volumeStep = 0.1

// pane selects the lower half of the dashboard.
type pane int

const (
	paneTimer pane = iota
	paneTasks
	paneSettings
	paneCount
)

func (p pane) String() string {
	switch p {
	case paneTasks:
		return "Tasks"
	case paneSettings:
		return "Settings"
	default:
		return "Timer"
	}
}

// inputMode is the text field currently being edited, if any.
type inputMode int

const (
	inputNone inputMode = iota
	inputTaskTitle
	inputTaskTotal
	inputFilter
	inputBackgroundURL
)

// pickerKind is the overlay currently open, if any.
type pickerKind int

const (
	pickerNone pickerKind = iota
	pickerAlarm
	pickerBackground
	pickerStation
)

// settingsRow indexes the settings pane.
type settingsRow int

const (
	rowFocus settingsRow = iota
	rowShortBreak
	rowLongBreak
	rowDailyGoal
	rowAlarmEnabled
	rowAlarmSound
	rowBackground
	rowCount
)

// tickMsg is sent on every display tick.
type tickMsg time.Time

// timerEventMsg carries an event from the timer service.
type timerEventMsg services.TimerEvent

// tipMsg carries a fetched tip.
type tipMsg string

// Model is the dashboard.
type Model struct {
	ctx    context.Context
	app    *services.App
	events <-chan services.TimerEvent
	theme  config.ThemeConfig
	width  int
	height int
	pane   pane

	// Snapshots refreshed after every message.
	timer    domain.TimerState
	settings domain.Settings
	tasks    []*domain.Task
	summary  domain.DailySummary
	notice   string
	radio    services.RadioState
	alarm    services.PlaybackState

	tip        string
	tipLoading bool

	taskCursor   int
	filter       string
	input        textinput.Model
	inputMode    inputMode
	pendingTitle string
	status       string

	settingsCursor settingsRow
	picker         *listPicker
	pickerKind     pickerKind

	// Daily summary on quit
	showingSummary bool
	summaryTicks   int
}

// NewModel creates the dashboard for app and subscribes to its timer.
func NewModel(ctx context.Context, app *services.App, theme *config.ThemeConfig) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		ctx:    ctx,
		app:    app,
		events: app.Timer.Subscribe(32),
		theme:  resolveTheme(theme),
		tip:    domain.DefaultTip,
		input:  newInput("", 120),
	}
	m.input.Blur()
	m.refresh()
	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitForEvent(m.events))
}

// tickCmd creates a command that sends a tick message.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForEvent blocks on the next timer event. A closed channel ends the
// subscription.
func waitForEvent(events <-chan services.TimerEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return timerEventMsg(ev)
	}
}

func fetchTipCmd(ctx context.Context, app *services.App, hint string) tea.Cmd {
	return func() tea.Msg {
		return tipMsg(app.Tips.Tip(ctx, hint))
	}
}

// refresh copies the current application state into the model.
func (m *Model) refresh() {
	m.timer = m.app.Timer.State()
	m.settings = m.app.Settings.Current()
	m.summary = m.app.Summary(m.ctx)
	m.radio = m.app.Radio.State()
	m.alarm = m.app.Alarm.State()

	if m.filter != "" {
		m.tasks = m.app.Tasks.FindTasks(m.ctx, m.filter)
	} else {
		m.tasks = m.app.Tasks.ListTasks(m.ctx)
	}
	m.taskCursor = min(max(m.taskCursor, 0), max(len(m.tasks)-1, 0))

	m.notice = ""
	if n, ok := m.app.Timer.Notice(); ok {
		m.notice = n.Text
	}
}

func (m *Model) setErr(err error) {
	if err == nil {
		m.status = ""
		return
	}
	m.status = err.Error()
}

func (m Model) selectedTask() *domain.Task {
	if m.taskCursor < 0 || m.taskCursor >= len(m.tasks) {
		return nil
	}
	return m.tasks[m.taskCursor]
}

func (m Model) showDailySummaryOrQuit() (tea.Model, tea.Cmd) {
	if m.summary.LiquidSeconds > 0 || m.summary.CompletedQuestions > 0 {
		m.showingSummary = true
		m.summaryTicks = 3
		return m, tickCmd()
	}
	return m, tea.Quit
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Daily summary dismiss
	if m.showingSummary {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			return m, tea.Quit
		case tickMsg:
			m.summaryTicks--
			if m.summaryTicks <= 0 {
				return m, tea.Quit
			}
			return m, tickCmd()
		case tea.WindowSizeMsg:
			m.width = msg.Width
			m.height = msg.Height
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.inputMode != inputNone:
			return m.updateInput(msg)
		case m.picker != nil:
			m, cmd = m.updatePicker(msg)
		default:
			var quit bool
			m, cmd, quit = m.updateKeys(msg)
			if quit {
				return m.showDailySummaryOrQuit()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		// Pick up edits made through the CLI, MCP or HTTP surfaces.
		if err := m.app.Sync(m.ctx); err != nil {
			m.setErr(err)
		}
		cmd = tickCmd()

	case timerEventMsg:
		cmd = waitForEvent(m.events)

	case tipMsg:
		m.tip = string(msg)
		m.tipLoading = false
	}

	m.refresh()
	return m, cmd
}

// updateKeys handles keys outside inputs and overlays.
func (m Model) updateKeys(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	key := msg.String()

	// Keys that work on every pane.
	switch key {
	case "q":
		return m, nil, true
	case "tab":
		m.pane = (m.pane + 1) % paneCount
		return m, nil, false
	case "shift+tab":
		m.pane = (m.pane + paneCount - 1) % paneCount
		return m, nil, false
	case "p":
		m.app.Timer.Toggle()
		return m, nil, false
	case "m":
		m.app.Radio.Toggle()
		return m, nil, false
	case "]":
		m.app.Radio.Next()
		return m, nil, false
	case "[":
		m.app.Radio.Prev()
		return m, nil, false
	case ".":
		m.app.Radio.SetVolume(m.radio.Volume + volumeStep)
		return m, nil, false
	case ",":
		m.app.Radio.SetVolume(m.radio.Volume - volumeStep)
		return m, nil, false
	case "R":
		m.openPicker(pickerStation)
		return m, nil, false
	case "t":
		if m.tipLoading {
			return m, nil, false
		}
		m.tipLoading = true
		m.tip = ThinkingTip
		return m, fetchTipCmd(m.ctx, m.app, m.tipHint()), false
	}

	switch m.pane {
	case paneTasks:
		return m.updateTaskKeys(key)
	case paneSettings:
		return m.updateSettingsKeys(key)
	default:
		return m.updateTimerKeys(key)
	}
}

func (m Model) updateTimerKeys(key string) (Model, tea.Cmd, bool) {
	switch key {
	case " ", "enter":
		m.app.Timer.Toggle()
	case "s":
		m.app.Timer.Skip()
	case "r":
		m.app.Timer.Reset()
	case "1":
		m.setErr(m.app.Timer.SelectMode(domain.ModeFocus))
	case "2":
		m.setErr(m.app.Timer.SelectMode(domain.ModeShortBreak))
	case "3":
		m.setErr(m.app.Timer.SelectMode(domain.ModeLongBreak))
	case "x", "esc":
		m.app.Timer.DismissNotice()
	}
	return m, nil, false
}

func (m Model) updateTaskKeys(key string) (Model, tea.Cmd, bool) {
	task := m.selectedTask()

	switch key {
	case "up", "k":
		m.taskCursor = max(m.taskCursor-1, 0)
	case "down", "j":
		m.taskCursor = min(m.taskCursor+1, max(len(m.tasks)-1, 0))
	case "a":
		cmd := m.startInput(inputTaskTitle, "Task title", "")
		return m, cmd, false
	case "/":
		cmd := m.startInput(inputFilter, "Filter tasks", m.filter)
		return m, cmd, false
	case "esc":
		m.filter = ""
	case " ", "enter", "c":
		if task != nil {
			_, err := m.app.Tasks.ToggleTask(m.ctx, task.ID)
			m.setErr(err)
		}
	case "+", "=":
		if task != nil {
			_, err := m.app.Tasks.AdjustTask(m.ctx, task.ID, 1)
			m.setErr(err)
		}
	case "-":
		if task != nil {
			_, err := m.app.Tasks.AdjustTask(m.ctx, task.ID, -1)
			m.setErr(err)
		}
	case "d", "delete":
		if task != nil {
			m.setErr(m.app.Tasks.DeleteTask(m.ctx, task.ID))
		}
	}
	return m, nil, false
}

func (m Model) updateSettingsKeys(key string) (Model, tea.Cmd, bool) {
	switch key {
	case "up", "k":
		m.settingsCursor = max(m.settingsCursor-1, 0)
	case "down", "j":
		m.settingsCursor = min(m.settingsCursor+1, rowCount-1)
	case "left", "h", "-":
		m.adjustSetting(-1)
	case "right", "l", "+", "=":
		m.adjustSetting(1)
	case " ", "enter":
		switch m.settingsCursor {
		case rowAlarmEnabled:
			m.adjustSetting(1)
		case rowAlarmSound:
			m.openPicker(pickerAlarm)
		case rowBackground:
			m.openPicker(pickerBackground)
		}
	}
	return m, nil, false
}

// adjustSetting nudges the selected setting by one step in direction dir.
func (m *Model) adjustSetting(dir int) {
	s := m.settings
	var patch domain.SettingsPatch

	minutes := func(secs int) *int {
		next := max(secs/60+dir, 1) * 60
		return &next
	}

	switch m.settingsCursor {
	case rowFocus:
		patch.FocusTime = minutes(s.FocusTime)
	case rowShortBreak:
		patch.ShortBreakTime = minutes(s.ShortBreakTime)
	case rowLongBreak:
		patch.LongBreakTime = minutes(s.LongBreakTime)
	case rowDailyGoal:
		goal := max(s.DailyQuestionGoal+dir*5, 0)
		patch.DailyQuestionGoal = &goal
	case rowAlarmEnabled:
		enabled := !s.AlarmEnabled
		patch.AlarmEnabled = &enabled
	default:
		return
	}

	_, err := m.app.Settings.Update(m.ctx, patch)
	m.setErr(err)
}

func (m *Model) openPicker(kind pickerKind) {
	var items []PickerItem
	selected := 0

	switch kind {
	case pickerAlarm:
		for i, s := range domain.AlarmSounds {
			items = append(items, PickerItem{Label: s.Name})
			if s.URL == m.settings.AlarmSound {
				selected = i
			}
		}
		m.picker = newListPicker("Alarm sound", items, selected)
		m.picker.footer = "enter selects and plays a preview"
	case pickerBackground:
		for i, url := range domain.BackgroundPresets {
			items = append(items, PickerItem{Label: fmt.Sprintf("Preset %d", i+1), Desc: shorten(url, 40)})
			if url == m.settings.BackgroundImage {
				selected = i
			}
		}
		items = append(items, PickerItem{Label: "Custom...", Desc: "enter an image URL"})
		m.picker = newListPicker("Background", items, selected)
	case pickerStation:
		for _, s := range domain.Streams {
			items = append(items, PickerItem{Label: s.Name})
		}
		m.picker = newListPicker("Radio station", items, m.radio.Index)
		m.picker.footer = "enter tunes in and starts the radio"
	default:
		return
	}
	m.pickerKind = kind
}

func (m Model) updatePicker(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.picker.move(-1)
	case "down", "j":
		m.picker.move(1)
	case "esc", "q":
		m.closePicker()
	case "enter":
		return m.choosePicker(m.picker.cursor)
	}
	return m, nil
}

func (m Model) choosePicker(index int) (Model, tea.Cmd) {
	kind := m.pickerKind
	m.closePicker()

	switch kind {
	case pickerAlarm:
		sound := domain.AlarmSounds[index]
		_, err := m.app.Settings.Update(m.ctx, domain.SettingsPatch{AlarmSound: &sound.URL})
		m.setErr(err)
		m.app.Alarm.Preview(sound.URL)
	case pickerBackground:
		if index >= len(domain.BackgroundPresets) {
			cmd := m.startInput(inputBackgroundURL, "Image URL", "")
			return m, cmd
		}
		url := domain.BackgroundPresets[index]
		_, err := m.app.Settings.Update(m.ctx, domain.SettingsPatch{BackgroundImage: &url})
		m.setErr(err)
	case pickerStation:
		m.setErr(m.app.Radio.Select(index))
		m.app.Radio.Play()
	}
	return m, nil
}

func (m *Model) closePicker() {
	m.picker = nil
	m.pickerKind = pickerNone
}

func (m *Model) startInput(mode inputMode, placeholder, value string) tea.Cmd {
	m.inputMode = mode
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.status = ""
	return m.input.Focus()
}

func (m *Model) stopInput() {
	m.inputMode = inputNone
	m.input.Blur()
	m.input.Reset()
}

// updateInput routes keys to the active text field.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.inputMode == inputFilter {
			m.filter = ""
		}
		m.pendingTitle = ""
		m.stopInput()
		m.refresh()
		return m, nil
	case "enter":
		m.submitInput(strings.TrimSpace(m.input.Value()))
		m.refresh()
		if m.inputMode != inputNone {
			cmd := m.input.Focus()
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.inputMode == inputFilter {
		m.filter = strings.TrimSpace(m.input.Value())
		m.taskCursor = 0
		m.refresh()
	}
	return m, cmd
}

func (m *Model) submitInput(value string) {
	switch m.inputMode {
	case inputTaskTitle:
		if value == "" {
			m.setErr(domain.ErrEmptyTaskTitle)
			m.stopInput()
			return
		}
		m.pendingTitle = value
		m.stopInput()
		m.startInput(inputTaskTotal, "Number of questions (default 1)", "")

	case inputTaskTotal:
		total := 1
		if value != "" {
			n, err := strconv.Atoi(value)
			if err != nil {
				m.setErr(errors.New("number of questions must be a whole number"))
				return
			}
			total = n
		}
		_, err := m.app.Tasks.AddTask(m.ctx, services.AddTaskRequest{Title: m.pendingTitle, TotalQuestions: total})
		m.setErr(err)
		m.pendingTitle = ""
		m.filter = ""
		m.taskCursor = 0
		m.stopInput()

	case inputFilter:
		m.filter = value
		m.stopInput()

	case inputBackgroundURL:
		if value != "" {
			_, err := m.app.Settings.Update(m.ctx, domain.SettingsPatch{BackgroundImage: &value})
			m.setErr(err)
		}
		m.stopInput()
	}
}

// tipHint describes what the user is doing for the tip provider.
func (m Model) tipHint() string {
	hint := fmt.Sprintf("Current phase: %s.", m.timer.Mode.Label())
	for _, t := range m.tasks {
		if !t.Completed {
			hint += fmt.Sprintf(" Studying: %s (%d/%d questions).", t.Title, t.CompletedQuestions, t.TotalQuestions)
			break
		}
	}
	return hint
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
