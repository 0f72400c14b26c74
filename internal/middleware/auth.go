package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quietmind/backend/internal/apierror"
	"github.com/quietmind/backend/internal/auth"
	"github.com/quietmind/backend/internal/logger"
)

// Auth middleware to verify bearer tokens
func Auth(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Ctx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Debug("authentication failed: missing authorization header")
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID, "Missing authorization token"))
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Debug("authentication failed: invalid authorization format")
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID, "Invalid or expired token"))
			c.Abort()
			return
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			log.Warn("authentication failed: token verification error",
				logger.Err(err),
			)
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID, "Invalid or expired token"))
			c.Abort()
			return
		}

		// Set user in context
		c.Set("user_id", userID)

		// Add user ID to request context for logging
		ctx := logger.WithUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)

		log.Debug("authentication successful",
			logger.Int64("user_id", userID),
		)

		c.Next()
	}
}

// UserID extracts the authenticated user id set by the Auth middleware.
// The second return is false on routes that skipped authentication.
func UserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
