package logging

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

var defaultLogger = slog.Default()

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return defaultLogger
	}

	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}

	return defaultLogger
}

// FromContextOr returns the logger stored in ctx, or fallback when ctx has none.
func FromContextOr(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
			return logger
		}
	}

	if fallback != nil {
		return fallback
	}

	return defaultLogger
}

// WithContext stores a logger in the context.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// With returns a context whose logger carries the extra attributes.
func With(ctx context.Context, attrs ...any) context.Context {
	return WithContext(ctx, FromContext(ctx).With(attrs...))
}

// WithRequestID adds a request_id attribute to the context logger.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return With(ctx, slog.String("request_id", requestID))
}

// WithTraceID adds a trace_id attribute to the context logger.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return With(ctx, slog.String("trace_id", traceID))
}

// WithCorrelationID adds a correlation_id attribute to the context logger.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return With(ctx, slog.String("correlation_id", correlationID))
}

// SetDefault sets the fallback logger and installs it as slog's default.
func SetDefault(logger *slog.Logger) {
	defaultLogger = logger
	slog.SetDefault(logger)
}
