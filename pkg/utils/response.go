package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope wraps every dashboard page state. Error carries the transient
// notification shown when a backend call fails.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SuccessResponse renders page state with status 200
func SuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// ErrorResponse renders a failure notification with the given status and
// stops the remaining handlers.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Envelope{Error: message})
}
