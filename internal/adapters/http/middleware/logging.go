package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-gallery/internal/platform/logging"
)

// ContextLogger stores logger in every request context so later middleware
// and handlers enrich and use it through logging.FromContext.
func ContextLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := logging.WithContext(c.Request.Context(), logger)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Logging returns middleware that logs each request's completion with its
// status, latency and size. Paths under /-/ and any in skipPaths are not logged.
func Logging(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, path := range skipPaths {
		skip[path] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if _, ok := skip[path]; ok || strings.HasPrefix(path, "/-/") {
			c.Next()
			return
		}

		start := time.Now()

		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}

		ctx := c.Request.Context()
		logger := logging.FromContext(ctx)

		logger.Log(ctx, logging.LevelTrace, "request started",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("client_ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
		)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		} else if status >= http.StatusBadRequest {
			level = slog.LevelWarn
		}

		logger.Log(ctx, level, "request completed",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.Int64("latency_ms", latency.Milliseconds()),
			slog.Int("bytes", c.Writer.Size()),
		)
	}
}
