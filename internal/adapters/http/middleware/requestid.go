package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-gallery/internal/platform/logging"
)

const (
	// HeaderRequestID is the header name for request ID.
	HeaderRequestID = "X-Request-ID"

	// ContextKeyRequestID is the gin context key for the request ID.
	ContextKeyRequestID = "request_id"
)

// RequestID returns middleware that extracts or generates a request ID and
// adds it to the context logger.
func RequestID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName: HeaderRequestID,
		contextKey: ContextKeyRequestID,
		enrichers: []func(context.Context, string) context.Context{
			ContextWithRequestID,
			logging.WithRequestID,
		},
	})
}

// GetRequestID extracts the request ID from the gin.Context.
func GetRequestID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyRequestID)
}
