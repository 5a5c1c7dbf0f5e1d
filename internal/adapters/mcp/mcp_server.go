// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.StateProvider
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.StateProvider) *Server {
	s := &Server{
		stateProvider: stateProvider,
	}

	s.server = server.NewMCPServer(
		"study",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_summary",
			mcp.WithDescription("Get today's study summary: liquid study time, questions done, goal progress and timer state"),
		),
		s.handleGetSummary,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_timer",
			mcp.WithDescription("Get the current timer mode, remaining time and focus block counter"),
		),
		s.handleGetTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"toggle_timer",
			mcp.WithDescription("Start the timer if paused, pause it if running"),
		),
		s.handleToggleTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"skip_phase",
			mcp.WithDescription("Finish the current phase now and move to the next one"),
		),
		s.handleSkipPhase,
	)

	s.server.AddTool(
		mcp.NewTool(
			"reset_timer",
			mcp.WithDescription("Stop the timer, clear the focus block counter and restore the full duration"),
		),
		s.handleResetTimer,
	)

	selectModeTool := mcp.NewTool(
		"select_mode",
		mcp.WithDescription("Switch the timer to a phase; the timer is paused at that phase's full duration"),
		mcp.WithString(
			"mode",
			mcp.Required(),
			mcp.Description("The phase to switch to"),
			mcp.Enum(string(domain.ModeFocus), string(domain.ModeShortBreak), string(domain.ModeLongBreak)),
		),
	)
	s.server.AddTool(selectModeTool, s.handleSelectMode)

	tasksTool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List question tasks, newest first"),
		mcp.WithString(
			"status",
			mcp.Description("Filter tasks by status"),
			mcp.Enum("open", "completed"),
		),
	)
	s.server.AddTool(tasksTool, s.handleListTasks)

	addTaskTool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Add a question-practice task"),
		mcp.WithString(
			"title",
			mcp.Required(),
			mcp.Description("The title of the task"),
		),
		mcp.WithNumber(
			"total_questions",
			mcp.Description("Number of questions to solve (default: 1)"),
		),
	)
	s.server.AddTool(addTaskTool, s.handleAddTask)

	toggleTaskTool := mcp.NewTool(
		"toggle_task",
		mcp.WithDescription("Flip a task's completed flag"),
		mcp.WithString(
			"task_id",
			mcp.Required(),
			mcp.Description("The task ID or a unique prefix of it"),
		),
	)
	s.server.AddTool(toggleTaskTool, s.handleToggleTask)

	adjustTaskTool := mcp.NewTool(
		"adjust_task",
		mcp.WithDescription("Add to or subtract from a task's solved question count"),
		mcp.WithString(
			"task_id",
			mcp.Required(),
			mcp.Description("The task ID or a unique prefix of it"),
		),
		mcp.WithNumber(
			"delta",
			mcp.Required(),
			mcp.Description("Questions to add (negative to subtract)"),
		),
	)
	s.server.AddTool(adjustTaskTool, s.handleAdjustTask)

	deleteTaskTool := mcp.NewTool(
		"delete_task",
		mcp.WithDescription("Delete a task"),
		mcp.WithString(
			"task_id",
			mcp.Required(),
			mcp.Description("The ID of the task to delete"),
		),
	)
	s.server.AddTool(deleteTaskTool, s.handleDeleteTask)

	s.server.AddTool(
		mcp.NewTool(
			"get_settings",
			mcp.WithDescription("Get durations, daily goal, alarm and background settings"),
		),
		s.handleGetSettings,
	)

	updateSettingsTool := mcp.NewTool(
		"update_settings",
		mcp.WithDescription("Change settings; omitted fields are left as they are"),
		mcp.WithNumber("focus_minutes", mcp.Description("Focus duration in minutes")),
		mcp.WithNumber("short_break_minutes", mcp.Description("Short break duration in minutes")),
		mcp.WithNumber("long_break_minutes", mcp.Description("Long break duration in minutes")),
		mcp.WithNumber("daily_goal", mcp.Description("Daily question goal")),
		mcp.WithBoolean("alarm_enabled", mcp.Description("Play the alarm when a phase ends")),
		mcp.WithString("alarm_sound", mcp.Description("Alarm sound name: beep, bell, digital or meditation")),
		mcp.WithString("background", mcp.Description("Background preset number or image URL")),
	)
	s.server.AddTool(updateSettingsTool, s.handleUpdateSettings)

	tipTool := mcp.NewTool(
		"get_tip",
		mcp.WithDescription("Get a short study tip"),
		mcp.WithString(
			"context",
			mcp.Description("Optional context for the tip, such as the subject being studied"),
		),
	)
	s.server.AddTool(tipTool, s.handleGetTip)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func timerData(state domain.TimerState) map[string]any {
	return map[string]any{
		"mode":              string(state.Mode),
		"label":             state.Mode.Label(),
		"remaining":         domain.FormatClock(state.Remaining),
		"remaining_seconds": state.Remaining,
		"running":           state.Running,
		"focus_completions": state.FocusCompletions,
		"badge":             state.Badge(),
	}
}

func taskData(task *domain.Task) map[string]any {
	return map[string]any{
		"id":                  task.ID,
		"title":               task.Title,
		"total_questions":     task.TotalQuestions,
		"completed_questions": task.CompletedQuestions,
		"completed":           task.Completed,
		"created_at":          task.CreatedAt.Format("2006-01-02T15:04:05"),
	}
}

func settingsData(settings domain.Settings) map[string]any {
	return map[string]any{
		"focus_minutes":       float64(settings.FocusTime) / 60,
		"short_break_minutes": float64(settings.ShortBreakTime) / 60,
		"long_break_minutes":  float64(settings.LongBreakTime) / 60,
		"daily_goal":          settings.DailyQuestionGoal,
		"alarm_enabled":       settings.AlarmEnabled,
		"alarm_sound":         domain.AlarmSoundName(settings.AlarmSound),
		"alarm_sound_url":     settings.AlarmSound,
		"background":          settings.BackgroundImage,
	}
}

// handleGetSummary handles the get_summary tool.
func (s *Server) handleGetSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := s.stateProvider.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	result := map[string]any{
		"date":                summary.Date.Format("2006-01-02"),
		"liquid_time":         summary.LiquidFormatted,
		"liquid_seconds":      summary.LiquidSeconds,
		"completed_questions": summary.CompletedQuestions,
		"daily_goal":          summary.DailyGoal,
		"goal_percent":        summary.GoalPercent,
		"tasks_total":         summary.TasksTotal,
		"tasks_completed":     summary.TasksCompleted,
		"timer":               timerData(summary.Timer),
	}

	return jsonResult(result)
}

// handleGetTimer handles the get_timer tool.
func (s *Server) handleGetTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(timerData(s.stateProvider.TimerState()))
}

// handleToggleTimer handles the toggle_timer tool.
func (s *Server) handleToggleTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(timerData(s.stateProvider.ToggleTimer(ctx)))
}

// handleSkipPhase handles the skip_phase tool.
func (s *Server) handleSkipPhase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tr := s.stateProvider.SkipPhase(ctx)

	result := map[string]any{
		"from":   string(tr.From),
		"to":     string(tr.To),
		"notice": tr.Notice,
		"timer":  timerData(s.stateProvider.TimerState()),
	}

	return jsonResult(result)
}

// handleResetTimer handles the reset_timer tool.
func (s *Server) handleResetTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(timerData(s.stateProvider.ResetTimer(ctx)))
}

// handleSelectMode handles the select_mode tool.
func (s *Server) handleSelectMode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("mode")
	if err != nil {
		return mcp.NewToolResultError("mode is required: " + err.Error()), nil
	}

	mode, err := domain.ParseMode(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := s.stateProvider.SelectMode(ctx, mode)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to select mode: %v", err)), nil
	}

	return jsonResult(timerData(state))
}

// handleListTasks handles the list_tasks tool.
func (s *Server) handleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := request.GetString("status", "")

	tasks, err := s.stateProvider.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	filteredTasks := make([]map[string]any, 0, len(tasks))
	for _, task := range tasks {
		if status == "open" && task.Completed {
			continue
		}
		if status == "completed" && !task.Completed {
			continue
		}
		filteredTasks = append(filteredTasks, taskData(task))
	}

	result := map[string]any{
		"tasks":       filteredTasks,
		"total_count": len(filteredTasks),
	}

	if status != "" {
		result["filter_status"] = status
	}

	return jsonResult(result)
}

// handleAddTask handles the add_task tool.
func (s *Server) handleAddTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title is required: " + err.Error()), nil
	}

	total := int(request.GetFloat("total_questions", 1))

	task, err := s.stateProvider.AddTask(ctx, title, total)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add task: %v", err)), nil
	}

	return jsonResult(taskData(task))
}

// handleToggleTask handles the toggle_task tool.
func (s *Server) handleToggleTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError("task_id is required: " + err.Error()), nil
	}

	task, err := s.stateProvider.ToggleTask(ctx, taskID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to toggle task: %v", err)), nil
	}

	return jsonResult(taskData(task))
}

// handleAdjustTask handles the adjust_task tool.
func (s *Server) handleAdjustTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError("task_id is required: " + err.Error()), nil
	}

	delta, err := request.RequireFloat("delta")
	if err != nil {
		return mcp.NewToolResultError("delta is required: " + err.Error()), nil
	}

	task, err := s.stateProvider.AdjustTask(ctx, taskID, int(delta))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to adjust task: %v", err)), nil
	}

	return jsonResult(taskData(task))
}

// handleDeleteTask handles the delete_task tool.
func (s *Server) handleDeleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError("task_id is required: " + err.Error()), nil
	}

	if err := s.stateProvider.DeleteTask(ctx, taskID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete task: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"task_id": taskID,
		"deleted": true,
	})
}

// handleGetSettings handles the get_settings tool.
func (s *Server) handleGetSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(settingsData(s.stateProvider.Settings(ctx)))
}

// handleUpdateSettings handles the update_settings tool.
func (s *Server) handleUpdateSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	patch, err := settingsPatch(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if patch.IsEmpty() {
		return mcp.NewToolResultError("no settings to update"), nil
	}

	settings, err := s.stateProvider.UpdateSettings(ctx, patch)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update settings: %v", err)), nil
	}

	return jsonResult(settingsData(settings))
}

// settingsPatch builds a patch from the arguments that are present.
func settingsPatch(request mcp.CallToolRequest) (domain.SettingsPatch, error) {
	var patch domain.SettingsPatch
	args := request.GetArguments()

	minutes := func(key string) *int {
		if _, ok := args[key]; !ok {
			return nil
		}
		secs := int(request.GetFloat(key, 0) * 60)
		return &secs
	}
	patch.FocusTime = minutes("focus_minutes")
	patch.ShortBreakTime = minutes("short_break_minutes")
	patch.LongBreakTime = minutes("long_break_minutes")

	if _, ok := args["daily_goal"]; ok {
		goal := int(request.GetFloat("daily_goal", 0))
		patch.DailyQuestionGoal = &goal
	}
	if _, ok := args["alarm_enabled"]; ok {
		enabled := request.GetBool("alarm_enabled", true)
		patch.AlarmEnabled = &enabled
	}
	if ref := request.GetString("alarm_sound", ""); ref != "" {
		sound, err := domain.FindAlarmSound(ref)
		if err != nil {
			return patch, fmt.Errorf("alarm_sound: %w", err)
		}
		patch.AlarmSound = &sound.URL
	}
	if ref := request.GetString("background", ""); ref != "" {
		bg, err := domain.ResolveBackground(ref)
		if err != nil {
			return patch, fmt.Errorf("background: %w", err)
		}
		patch.BackgroundImage = &bg
	}
	return patch, nil
}

// handleGetTip handles the get_tip tool.
func (s *Server) handleGetTip(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hint := request.GetString("context", "")
	return jsonResult(map[string]any{"tip": s.stateProvider.Tip(ctx, hint)})
}
