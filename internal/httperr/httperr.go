package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Unprocessable(c *gin.Context, code, message string) {
	Write(c, http.StatusUnprocessableEntity, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// Respond maps a use-case error onto the HTTP response. Unknown errors are
// attached to the gin context for the access logger and never echoed back.
func Respond(c *gin.Context, err error) {
	var ve ValidationError
	if errors.As(err, &ve) {
		Unprocessable(c, ve.Code, ve.Reason)
		return
	}

	var nf NotFoundError
	if errors.As(err, &nf) {
		NotFound(c, nf.Code(), nf.Error())
		return
	}

	_ = c.Error(err)
	Internal(c, "internal_error", "internal server error")
}
