package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thalesaraujo16/pomodoro-teste/internal/adapters/httpapi"
	"github.com/thalesaraujo16/pomodoro-teste/internal/adapters/storage"
	"github.com/thalesaraujo16/pomodoro-teste/internal/services"
)

type timerEnvelope struct {
	Timer struct {
		Mode             string `json:"mode"`
		Remaining        int    `json:"remaining"`
		Running          bool   `json:"running"`
		FocusCompletions int    `json:"focusCompletions"`
	} `json:"timer"`
	Clock      string `json:"clock"`
	Badge      int    `json:"badge"`
	Transition struct {
		To     string `json:"to"`
		Notice string `json:"notice"`
	} `json:"transition"`
}

type taskEnvelope struct {
	Task struct {
		ID                 string `json:"id"`
		Title              string `json:"title"`
		TotalQuestions     int    `json:"totalQuestions"`
		CompletedQuestions int    `json:"completedQuestions"`
		Completed          bool   `json:"completed"`
	} `json:"task"`
}

type apiErrorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestHealth(t *testing.T) {
	engine := setupTestEngine(t)

	status, _ := requestJSON(t, engine, http.MethodGet, "/health", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
}

func TestTimerRoutes(t *testing.T) {
	engine := setupTestEngine(t)

	var timer timerEnvelope
	status, raw := requestJSON(t, engine, http.MethodGet, "/api/timer", nil)
	decode(t, status, http.StatusOK, raw, &timer)
	if timer.Timer.Mode != "focus" || timer.Clock != "25:00" || timer.Badge != 0 {
		t.Fatalf("unexpected initial timer: %+v", timer)
	}

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/timer/toggle", nil)
	decode(t, status, http.StatusOK, raw, &timer)
	if !timer.Timer.Running {
		t.Fatal("expected timer to be running after toggle")
	}

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/timer/skip", nil)
	timer = timerEnvelope{}
	decode(t, status, http.StatusOK, raw, &timer)
	if timer.Transition.To != "short_break" || timer.Timer.FocusCompletions != 1 || timer.Badge != 1 {
		t.Fatalf("unexpected skip result: %+v", timer)
	}
	if !timer.Timer.Running {
		t.Fatal("skip should keep a running timer running")
	}

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/timer/mode", map[string]string{"mode": "long_break"})
	decode(t, status, http.StatusOK, raw, &timer)
	if timer.Timer.Mode != "long_break" || timer.Timer.Running || timer.Clock != "15:00" {
		t.Fatalf("unexpected mode switch: %+v", timer)
	}
	if timer.Timer.FocusCompletions != 1 {
		t.Fatalf("mode switch must not touch the counter, got %d", timer.Timer.FocusCompletions)
	}

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/timer/reset", nil)
	decode(t, status, http.StatusOK, raw, &timer)
	if timer.Timer.FocusCompletions != 0 || timer.Timer.Remaining != 900 {
		t.Fatalf("unexpected reset: %+v", timer)
	}

	var apiErr apiErrorEnvelope
	status, raw = requestJSON(t, engine, http.MethodPost, "/api/timer/mode", map[string]string{"mode": "nap"})
	decode(t, status, http.StatusBadRequest, raw, &apiErr)
	if apiErr.Error.Code != "invalid_mode" {
		t.Fatalf("expected invalid_mode, got %q", apiErr.Error.Code)
	}
}

func TestTaskRoutes(t *testing.T) {
	engine := setupTestEngine(t)

	var created taskEnvelope
	status, raw := requestJSON(t, engine, http.MethodPost, "/api/tasks", map[string]any{
		"title":          "Physics",
		"totalQuestions": 4,
	})
	decode(t, status, http.StatusCreated, raw, &created)
	id := created.Task.ID
	if id == "" || created.Task.TotalQuestions != 4 {
		t.Fatalf("unexpected created task: %+v", created)
	}

	var adjusted taskEnvelope
	status, raw = requestJSON(t, engine, http.MethodPost, "/api/tasks/"+id+"/adjust", map[string]int{"delta": 10})
	decode(t, status, http.StatusOK, raw, &adjusted)
	if adjusted.Task.CompletedQuestions != 4 || !adjusted.Task.Completed {
		t.Fatalf("adjust should clamp and complete: %+v", adjusted)
	}

	var toggled taskEnvelope
	status, raw = requestJSON(t, engine, http.MethodPost, "/api/tasks/"+id+"/toggle", nil)
	decode(t, status, http.StatusOK, raw, &toggled)
	if toggled.Task.Completed {
		t.Fatal("toggle should clear the completed flag")
	}

	var summary struct {
		Summary struct {
			CompletedQuestions int     `json:"completedQuestions"`
			GoalPercent        float64 `json:"goalPercent"`
		} `json:"summary"`
	}
	status, raw = requestJSON(t, engine, http.MethodGet, "/api/summary", nil)
	decode(t, status, http.StatusOK, raw, &summary)
	if summary.Summary.CompletedQuestions != 4 || summary.Summary.GoalPercent != 8 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	status, _ = requestJSON(t, engine, http.MethodDelete, "/api/tasks/"+id, nil)
	if status != http.StatusNoContent {
		t.Fatalf("expected 204 on delete, got %d", status)
	}

	// Deleting again is a no-op.
	status, _ = requestJSON(t, engine, http.MethodDelete, "/api/tasks/"+id, nil)
	if status != http.StatusNoContent {
		t.Fatalf("expected 204 on repeated delete, got %d", status)
	}

	var apiErr apiErrorEnvelope
	status, raw = requestJSON(t, engine, http.MethodPost, "/api/tasks/"+id+"/toggle", nil)
	decode(t, status, http.StatusNotFound, raw, &apiErr)
	if apiErr.Error.Code != "task_not_found" {
		t.Fatalf("expected task_not_found, got %q", apiErr.Error.Code)
	}

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/tasks", map[string]any{"title": "  "})
	decode(t, status, http.StatusBadRequest, raw, &apiErr)
	if apiErr.Error.Code != "empty_title" {
		t.Fatalf("expected empty_title, got %q", apiErr.Error.Code)
	}
}

func TestSettingsRoutes(t *testing.T) {
	engine := setupTestEngine(t)

	var body struct {
		Settings struct {
			FocusTime         int    `json:"focusTime"`
			ShortBreakTime    int    `json:"shortBreakTime"`
			DailyQuestionGoal int    `json:"dailyQuestionGoal"`
			BackgroundImage   string `json:"backgroundImage"`
		} `json:"settings"`
	}
	status, raw := requestJSON(t, engine, http.MethodPatch, "/api/settings", map[string]any{
		"focusTime":         0,
		"dailyQuestionGoal": -3,
	})
	decode(t, status, http.StatusOK, raw, &body)
	if body.Settings.FocusTime != 1 || body.Settings.DailyQuestionGoal != 0 {
		t.Fatalf("expected clamped settings, got %+v", body.Settings)
	}
	if body.Settings.ShortBreakTime != 300 {
		t.Fatalf("untouched field changed: %+v", body.Settings)
	}

	var timer timerEnvelope
	status, raw = requestJSON(t, engine, http.MethodGet, "/api/timer", nil)
	decode(t, status, http.StatusOK, raw, &timer)
	if timer.Timer.Remaining != 1 {
		t.Fatalf("paused timer should pick up the new focus time, got %d", timer.Timer.Remaining)
	}

	var apiErr apiErrorEnvelope
	status, raw = requestJSON(t, engine, http.MethodPatch, "/api/settings", map[string]any{
		"backgroundImage": "javascript:alert(1)",
	})
	decode(t, status, http.StatusBadRequest, raw, &apiErr)
	if apiErr.Error.Code != "invalid_url" {
		t.Fatalf("expected invalid_url, got %q", apiErr.Error.Code)
	}

	status, raw = requestJSON(t, engine, http.MethodPatch, "/api/settings", map[string]any{})
	decode(t, status, http.StatusBadRequest, raw, &apiErr)
	if apiErr.Error.Code != "empty_patch" {
		t.Fatalf("expected empty_patch, got %q", apiErr.Error.Code)
	}
}

func TestTipRoute(t *testing.T) {
	engine := setupTestEngine(t)

	var body struct {
		Tip string `json:"tip"`
	}
	status, raw := requestJSON(t, engine, http.MethodGet, "/api/tip?context=chemistry", nil)
	decode(t, status, http.StatusOK, raw, &body)
	if body.Tip == "" {
		t.Fatal("expected a tip")
	}
}

func setupTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ticks := make(chan time.Time)
	app, err := services.NewApp(context.Background(), store, services.AppOptions{
		Logger:     logger,
		TickSource: func() (<-chan time.Time, func()) { return ticks, func() {} },
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(app.Close)

	return httpapi.NewRouter(httpapi.NewHandler(services.NewStateService(app), logger))
}

func requestJSON(t *testing.T, engine *gin.Engine, method, path string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec.Code, rec.Body.Bytes()
}

func decode(t *testing.T, status, want int, raw []byte, out any) {
	t.Helper()
	if status != want {
		t.Fatalf("expected %d, got %d: %s", want, status, raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("unmarshal %s: %v", raw, err)
	}
}
