package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/hospital-dashboard/pkg/errors"
)

// ErrorView is the data of the error page.
type ErrorView struct {
	Code    int
	Message string
	TraceID string
}

// ErrorHandler renders errors attached with c.Error when the handler did
// not write a response itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		logger := RequestLogger(c)
		for _, e := range c.Errors {
			logger.Error().
				Err(e.Err).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("Request error")
		}

		if c.Writer.Written() {
			return
		}
		lastErr := c.Errors.Last().Err
		renderError(c, apperrors.HTTPStatus(lastErr), apperrors.UserMessage(lastErr))
	}
}

func renderError(c *gin.Context, status int, message string) {
	view := ErrorView{
		Code:    status,
		Message: message,
		TraceID: c.GetString(ContextRequestID),
	}
	if IsHTMX(c) {
		// the partial only carries an out of band toast
		c.Header("HX-Reswap", "none")
		c.HTML(status, "error_partial.html", view)
		return
	}
	c.HTML(status, "error.html", view)
}
