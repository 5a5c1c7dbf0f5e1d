package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the API routes onto a fresh gin engine.
func NewRouter(h *Handler) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.GET("/summary", h.GetSummary)
	api.GET("/tip", h.GetTip)

	timer := api.Group("/timer")
	timer.GET("", h.GetTimer)
	timer.POST("/toggle", h.ToggleTimer)
	timer.POST("/skip", h.SkipPhase)
	timer.POST("/reset", h.ResetTimer)
	timer.POST("/mode", h.SelectMode)

	tasks := api.Group("/tasks")
	tasks.GET("", h.ListTasks)
	tasks.POST("", h.AddTask)
	tasks.POST("/:id/toggle", h.ToggleTask)
	tasks.POST("/:id/adjust", h.AdjustTask)
	tasks.DELETE("/:id", h.DeleteTask)

	api.GET("/settings", h.GetSettings)
	api.PATCH("/settings", h.UpdateSettings)

	return engine
}
