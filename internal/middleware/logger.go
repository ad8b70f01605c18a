package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Logger returns a middleware that logs HTTP requests. Request bodies are
// never logged: login and entity forms carry personal data.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Process request
		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		if raw != "" {
			path = path + "?" + raw
		}

		logger := RequestLogger(c)
		event := logger.Info()
		msg := "Request processed"
		switch {
		case statusCode >= 500:
			event = logger.Error()
			msg = "Server error"
		case statusCode >= 400:
			event = logger.Warn()
			msg = "Client error"
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("ip", c.ClientIP()).
			Int("status", statusCode).
			Dur("duration", latency).
			Bool("htmx", IsHTMX(c)).
			Str("user_agent", c.Request.UserAgent()).
			Msg(msg)
	}
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}
