package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/giftbuddy-backend/logger"
)

// RequestLogger logs one line per request with status, latency and any handler errors
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if p, ok := PrincipalFrom(c); ok {
			args = append(args, "user_id", p.UserID())
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Error("request failed", append(args, "errors", c.Errors.String())...)
		case len(c.Errors) > 0:
			log.Warn("request rejected", append(args, "errors", c.Errors.String())...)
		default:
			log.Debug("request", args...)
		}
	}
}

// Timeout bounds the request context so storage calls give up after d
func Timeout(d time.Duration) gin.HandlerFunc {
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
