package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-gallery/internal/platform/logging"
)

const (
	// HeaderCorrelationID is the header name for correlation ID. It follows
	// a whole browser session's requests through to the upstream APIs.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyCorrelationID is the gin context key for the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

// CorrelationID returns middleware that propagates or originates a correlation ID.
func CorrelationID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName: HeaderCorrelationID,
		contextKey: ContextKeyCorrelationID,
		enrichers: []func(context.Context, string) context.Context{
			ContextWithCorrelationID,
			logging.WithCorrelationID,
		},
	})
}
