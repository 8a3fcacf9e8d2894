package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/logging"
	"github.com/dmitrijs2005/bookmarks/internal/server/auth"
	"github.com/dmitrijs2005/bookmarks/internal/shared"
	"github.com/gin-gonic/gin"
)

const requestIDKey = "request_id"

// RequestIDMiddleware keeps a caller-supplied X-Request-ID or mints one, and
// echoes it on the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" || len(id) > 128 {
			id, _ = shared.MakeRandHexString(16)
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

// LoggingMiddleware writes one line per request. Headers and bodies are
// never logged, so tokens and passwords stay out of the log.
func LoggingMiddleware(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		}
		if c.Writer.Status() >= 500 {
			l.Error(c.Request.Context(), "request", args...)
			return
		}
		l.Info(c.Request.Context(), "request", args...)
	}
}

// RecoveryMiddleware turns a panic into a 500 with the standard payload.
func RecoveryMiddleware(l logging.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		l.Error(c.Request.Context(), "panic recovered", "error", err, "request_id", c.GetString(requestIDKey))
		respondError(c, http.StatusInternalServerError, CodeInternal, "internal error")
	})
}

// TimeoutMiddleware bounds every request with d. Services see the deadline
// through the request context.
func TimeoutMiddleware(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Authenticator is satisfied by *auth.Guard.
type Authenticator interface {
	Authenticate(header string) (auth.Identity, error)
}

// AuthedHandler receives the caller's identity as an argument.
type AuthedHandler func(c *gin.Context, id auth.Identity)

// authed runs the guard before h. On failure the request ends with 401 and
// h never runs. On success the identity is passed to h and also stored on
// the request context for the lifetime of this request.
func authed(a Authenticator, h AuthedHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := a.Authenticate(c.GetHeader(common.AuthorizationHeaderName))
		if err != nil {
			respondUnauthorized(c)
			return
		}

		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		h(c, id)
	}
}
