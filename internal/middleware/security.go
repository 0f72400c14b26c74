package middleware

import (
	"os"

	"github.com/gin-gonic/gin"
)

// SecurityHeaders adds security-related HTTP headers to all responses
// These headers help protect against common web vulnerabilities
func SecurityHeaders() gin.HandlerFunc {
	serverEnv := os.Getenv("QUIETMIND_SERVER_ENV")
	isProduction := serverEnv == "production"

	return func(c *gin.Context) {
		// Prevent MIME type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking attacks
		c.Header("X-Frame-Options", "DENY")

		// Enable XSS filter in browsers (legacy, but still useful)
		c.Header("X-XSS-Protection", "1; mode=block")

		// Control how much referrer information is sent
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Journal entries are sensitive; never let intermediaries cache them
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")

		// HTTP Strict Transport Security, only meaningful behind HTTPS
		if isProduction {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		// The API never serves HTML; lock the CSP down completely
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		// Disable browser features that aren't needed for an API
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		c.Next()
	}
}
