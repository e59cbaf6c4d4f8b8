package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/ecosnap/ecosnap/errors"
)

// JSON writes the uniform response envelope.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	errMessage := ""
	if err != nil {
		errMessage = err.Error()
	}
	responsedata := gin.H{
		"message": message,
		"data":    data,
		"errors":  errMessage,
		"status":  http.StatusText(status),
	}
	c.JSON(status, responsedata)
}

// HandleErrors maps a service error to the right status code and writes
// the envelope. Typed errors carry their own status; anything else is a
// 500.
func HandleErrors(c *gin.Context, err error) {
	var e *errs.Error
	if errors.As(err, &e) {
		JSON(c, "", e.Status, nil, e)
		return
	}
	JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
}
