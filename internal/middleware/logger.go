package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quietmind/backend/internal/logger"
)

// RequestID tags every request with a correlation id. An incoming
// X-Request-ID header is trusted; otherwise a new id is generated. The id is
// echoed back in the response and flows into every log line via the request
// context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := logger.WithRequestID(c.Request.Context(), c.GetHeader("X-Request-ID"))
		requestID := logger.RequestIDFromContext(ctx)

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// Logger middleware for logging HTTP requests
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log := logger.Ctx(c.Request.Context())
		log.Info("request completed",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("latency", time.Since(start)),
			logger.String("client_ip", c.ClientIP()),
		)
	}
}
