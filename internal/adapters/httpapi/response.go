package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
)

// apiError is the body of every non-2xx response.
type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func badRequest(code, message string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: code, Message: message}
}

// fromDomain maps service errors onto HTTP errors.
func fromDomain(err error) *apiError {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return &apiError{Status: http.StatusNotFound, Code: "task_not_found", Message: err.Error()}
	case errors.Is(err, domain.ErrEmptyTaskTitle):
		return badRequest("empty_title", err.Error())
	case errors.Is(err, domain.ErrInvalidMode):
		return badRequest("invalid_mode", err.Error())
	case errors.Is(err, domain.ErrInvalidURL):
		return badRequest("invalid_url", err.Error())
	case errors.Is(err, domain.ErrUnknownPreset):
		return badRequest("unknown_preset", err.Error())
	default:
		return nil
	}
}

func writeError(c *gin.Context, apiErr *apiError) {
	if apiErr == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "internal_error",
				"message": "internal server error",
			},
		})
		return
	}

	c.JSON(apiErr.Status, gin.H{
		"error": gin.H{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}
