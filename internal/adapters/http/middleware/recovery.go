package middleware

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-gallery/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-gallery/internal/platform/logging"
)

// errorPage takes the HTML-escaped request ID.
const errorPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Something went wrong</title></head>
<body><h1>Something went wrong</h1><p>Please reload the page.</p>
<p><small>Reference: %s</small></p></body>
</html>`

// Recovery returns middleware that recovers from panics, logs the stack at
// ERROR and answers 500. Requests under /api/ get the JSON error envelope;
// everything else gets a plain HTML error page quoting the request ID.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			ctx := c.Request.Context()
			traceID := dto.GetTraceID(c)

			logging.FromContext(ctx).ErrorContext(ctx, "panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
				slog.String("trace_id", traceID),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				resp := dto.NewErrorResponse(dto.ErrorCodeInternal, "an internal error occurred")
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp.WithTraceID(traceID))

				return
			}

			page := fmt.Sprintf(errorPage, html.EscapeString(GetRequestID(c)))
			c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(page))
			c.Abort()
		}()

		c.Next()
	}
}
