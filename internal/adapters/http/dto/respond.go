package dto

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-gallery/internal/domain"
	"github.com/jsamuelsen/quote-gallery/internal/platform/logging"
)

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsConflict(err):
		return http.StatusConflict, NewErrorResponse(ErrorCodeConflict, err.Error())

	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Error.Details = map[string]string{
				validationErr.Field: validationErr.Message,
			}
		}

		return http.StatusBadRequest, resp

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(
			ErrorCodeUnavailable,
			"a dependency is temporarily unavailable",
		)

	default:
		return http.StatusInternalServerError, NewErrorResponse(
			ErrorCodeInternal,
			"an internal error occurred",
		)
	}
}

// HandleError writes the error envelope for err. Internal errors are logged
// with their full text since the response hides it.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	resp.TraceID = GetTraceID(c)

	if status == http.StatusInternalServerError {
		ctx := c.Request.Context()
		logging.FromContext(ctx).ErrorContext(ctx, "internal error",
			slog.Any("error", err),
			slog.String("trace_id", resp.TraceID),
		)
	}

	c.AbortWithStatusJSON(status, resp)
}

// RespondWithErrorCode writes an adapter-level error such as a malformed body.
func RespondWithErrorCode(c *gin.Context, code, message string) {
	resp := NewErrorResponse(code, message).WithTraceID(GetTraceID(c))
	c.AbortWithStatusJSON(HTTPStatusFromCode(code), resp)
}

// RespondWithValidationErrors writes a 400 with field-level messages.
func RespondWithValidationErrors(c *gin.Context, fieldErrors map[string]string) {
	resp := NewErrorResponseWithDetails(ErrorCodeValidation, "request validation failed", fieldErrors)
	c.AbortWithStatusJSON(http.StatusBadRequest, resp.WithTraceID(GetTraceID(c)))
}

// GetTraceID returns the OpenTelemetry trace ID of the request, falling back
// to a "trace_id" gin value and then to the X-Request-ID header.
func GetTraceID(c *gin.Context) string {
	if c.Request != nil {
		if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.HasTraceID() {
			return sc.TraceID().String()
		}
	}

	if v, ok := c.Get("trace_id"); ok {
		s, _ := v.(string)

		return s
	}

	if c.Request != nil {
		return c.Request.Header.Get("X-Request-ID")
	}

	return ""
}
