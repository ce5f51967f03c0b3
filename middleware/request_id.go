package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/project-registry/logutils"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-Id"

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

type requestIDKey struct{}

// RequestIDMiddleware ensures every request has a stable request ID.
// An incoming X-Request-Id is reused, otherwise a new one is generated.
// The id is stored in the gin and request contexts, echoed back in the
// response header and attached to the access log line.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set(RequestIDKey, rid)
		ctx := context.WithValue(c.Request.Context(), requestIDKey{}, rid)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(RequestIDHeader, rid)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := logutils.Log.WithFields(logutils.Fields{
			"request_id": rid,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		})
		switch {
		case status >= 500:
			entry.Error("request completed")
		case status >= 400:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
	}
}

// GetRequestID extracts the request ID from a standard context
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}
