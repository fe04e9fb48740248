package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout sets a deadline on the request context. Handlers and the outbound
// clients they call observe it; nothing is aborted from outside the handler.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
