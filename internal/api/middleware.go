package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"alcyxob/fitness-coach/internal/auth"
	"alcyxob/fitness-coach/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Constants for context keys
const (
	ContextRequestIDKey = "requestID"
	HeaderRequestID     = "X-Request-ID"
)

// RequestIDMiddleware tags every request with an id, reusing the caller's when present.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// LoggerMiddleware attaches a request-scoped logger to the request context and logs
// each completed request. Must run after RequestIDMiddleware.
func LoggerMiddleware(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := logger.With().
			Str("request_id", c.GetString(ContextRequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Logger()
		c.Request = c.Request.WithContext(reqLog.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		event := reqLog.Info()
		if status >= http.StatusInternalServerError {
			event = reqLog.Error()
		}
		event.Int("status", status).Dur("latency", time.Since(start)).Msg("request")
	}
}

// AuthMiddleware creates a Gin middleware for session token authentication.
// The verified principal and its raw token are carried on the request context.
func AuthMiddleware(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		principal, err := verifier.Verify(parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			case errors.Is(err, auth.ErrMissingToken):
				abortWithError(c, http.StatusUnauthorized, "Authorization token is missing")
			default:
				zerolog.Ctx(c.Request.Context()).Debug().Err(err).Msg("token rejected")
				abortWithError(c, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		ctx := auth.WithPrincipal(c.Request.Context(), principal)
		ctx = store.WithAccessToken(ctx, principal.Token)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// Helper function to get the authenticated principal (used by handlers)
func principalFromContext(c *gin.Context) (auth.Principal, bool) {
	return auth.FromContext(c.Request.Context())
}
