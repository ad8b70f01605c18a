package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderXRequestID = "X-Request-ID"
	ContextRequestID = "request_id"
	ContextLogger    = "logger"
)

// RequestID adds a unique request ID to each request and a logger carrying it
func RequestID(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check if request ID exists in header
		rid := c.GetHeader(HeaderXRequestID)
		if rid == "" {
			rid = uuid.New().String()
		}

		logger := base.With().Str("request_id", rid).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		c.Set(ContextRequestID, rid)
		c.Set(ContextLogger, &logger)
		c.Header(HeaderXRequestID, rid)
		c.Next()
	}
}

// RequestLogger returns the request scoped logger, or a disabled logger
// outside of RequestID.
func RequestLogger(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(ContextLogger); ok {
		if l, ok := v.(*zerolog.Logger); ok {
			return l
		}
	}
	nop := zerolog.Nop()
	return &nop
}
