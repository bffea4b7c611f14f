package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bqmanh/marketplace-be/internal/auth"
	"github.com/gin-gonic/gin"
)

// ContextUserEmail is the gin context key carrying the verified session identity.
const ContextUserEmail = "userEmail"

// LoggerMiddleware logs HTTP requests with slog
func LoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		// Process request
		c.Next()

		// Calculate latency
		latency := time.Since(start)

		// Log request details
		logger.Info("HTTP Request",
			slog.Int("status", c.Writer.Status()),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("query", query),
			slog.String("ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
			slog.Duration("latency", latency),
			slog.Int("body_size", c.Writer.Size()),
		)

		// Log errors if any
		if len(c.Errors) > 0 {
			for _, e := range c.Errors {
				logger.Error("Request error",
					slog.String("error", e.Error()),
					slog.Uint64("type", uint64(e.Type)),
				)
			}
		}
	}
}

// CORSMiddleware handles Cross-Origin Resource Sharing. The session cookie
// travels cross-origin, so credentials must be allowed and the origin echoed
// back instead of wildcarded.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// RequireAuth is the access gate for user-scoped routes. It extracts the
// session cookie, verifies it, and stores the identity in the gin context.
// Missing or unverifiable cookies short-circuit with 401.
func RequireAuth(logger *slog.Logger, cookieName, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "unauthorized access",
			})
			return
		}

		email, err := auth.VerifyToken(token, secret)
		if err != nil {
			logger.Warn("Session token verification failed",
				slog.String("error", err.Error()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "unauthorized access",
			})
			return
		}

		c.Set(ContextUserEmail, email)
		c.Next()
	}
}

// RequireOwnership rejects requests whose verified identity does not match
// the :email path parameter. Must run after RequireAuth.
func RequireOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := c.Get(ContextUserEmail)
		if !ok || email != c.Param("email") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "FORBIDDEN ACCESS",
			})
			return
		}

		c.Next()
	}
}
