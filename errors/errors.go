package errors

import (
	"net/http"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error is the typed failure surfaced to API callers. Status carries the
// HTTP status the handler should respond with.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a new Error
func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

var (
	ErrNotFound            = New("not found", http.StatusNotFound)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	InActiveUserError      = New("user inactive", http.StatusUnauthorized)

	// Domain failures. No automatic compensation or retry is attached to
	// any of these; the caller decides what to do.
	ErrInvalidLocation     = New("invalid location", http.StatusBadRequest)
	ErrInvalidTransition   = New("invalid status transition", http.StatusConflict)
	ErrInsufficientBalance = New("insufficient reward points", http.StatusBadRequest)
	ErrOutOfStock          = New("reward out of stock", http.StatusBadRequest)
	ErrDetectionFailed     = New("detection failed", http.StatusBadGateway)
	ErrServiceUnavailable  = New("detection service unavailable", http.StatusServiceUnavailable)
)

// ErrorHandler is the handler passed to the rate-limit middleware.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"message": "Too many requests. Try again at " + info.ResetTime.Format("15:04:05"),
	})
}
