// Package httpapi serves the local JSON API used by `study serve`.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
)

// Handler adapts a ports.StateProvider to gin handlers.
type Handler struct {
	state  ports.StateProvider
	logger *slog.Logger
}

type selectModeRequest struct {
	Mode string `json:"mode"`
}

type addTaskRequest struct {
	Title          string `json:"title"`
	TotalQuestions int    `json:"totalQuestions"`
}

type adjustTaskRequest struct {
	Delta int `json:"delta"`
}

// NewHandler creates a handler. A nil logger falls back to slog.Default.
func NewHandler(state ports.StateProvider, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{state: state, logger: logger}
}

func (h *Handler) fail(c *gin.Context, err error) {
	apiErr := fromDomain(err)
	if apiErr == nil {
		h.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	writeError(c, apiErr)
}

func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.state.Summary(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (h *Handler) GetTimer(c *gin.Context) {
	c.JSON(http.StatusOK, timerBody(h.state.TimerState()))
}

func (h *Handler) ToggleTimer(c *gin.Context) {
	c.JSON(http.StatusOK, timerBody(h.state.ToggleTimer(c.Request.Context())))
}

func (h *Handler) SkipPhase(c *gin.Context) {
	tr := h.state.SkipPhase(c.Request.Context())
	body := timerBody(h.state.TimerState())
	body["transition"] = tr
	c.JSON(http.StatusOK, body)
}

func (h *Handler) ResetTimer(c *gin.Context) {
	c.JSON(http.StatusOK, timerBody(h.state.ResetTimer(c.Request.Context())))
}

func (h *Handler) SelectMode(c *gin.Context) {
	var req selectModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, badRequest("invalid_json", "invalid request body"))
		return
	}
	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		h.fail(c, err)
		return
	}

	state, err := h.state.SelectMode(c.Request.Context(), mode)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, timerBody(state))
}

func (h *Handler) ListTasks(c *gin.Context) {
	tasks, err := h.state.ListTasks(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *Handler) AddTask(c *gin.Context) {
	var req addTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, badRequest("invalid_json", "invalid request body"))
		return
	}

	task, err := h.state.AddTask(c.Request.Context(), req.Title, req.TotalQuestions)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

func (h *Handler) ToggleTask(c *gin.Context) {
	task, err := h.state.ToggleTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *Handler) AdjustTask(c *gin.Context) {
	var req adjustTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, badRequest("invalid_json", "invalid request body"))
		return
	}

	task, err := h.state.AdjustTask(c.Request.Context(), c.Param("id"), req.Delta)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *Handler) DeleteTask(c *gin.Context) {
	if err := h.state.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"settings": h.state.Settings(c.Request.Context())})
}

// UpdateSettings takes a partial settings object; durations are seconds.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var patch domain.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeError(c, badRequest("invalid_json", "invalid request body"))
		return
	}
	if patch.IsEmpty() {
		writeError(c, badRequest("empty_patch", "no settings to update"))
		return
	}

	settings, err := h.state.UpdateSettings(c.Request.Context(), patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func (h *Handler) GetTip(c *gin.Context) {
	tip := h.state.Tip(c.Request.Context(), c.Query("context"))
	c.JSON(http.StatusOK, gin.H{"tip": tip})
}

func timerBody(state domain.TimerState) gin.H {
	return gin.H{
		"timer": state,
		"clock": domain.FormatClock(state.Remaining),
		"badge": state.Badge(),
	}
}
