// Package dto provides the request and response shapes of the JSON API and
// the helpers that turn domain errors into the standard error envelope.
package dto

import "net/http"

// ErrorResponse is the standard error envelope for all error responses.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "VALIDATION_ERROR").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Details holds field-level messages for validation errors.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes for machine-readable error identification.
const (
	ErrorCodeNotFound    = "NOT_FOUND"
	ErrorCodeConflict    = "CONFLICT"
	ErrorCodeValidation  = "VALIDATION_ERROR"
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"
	ErrorCodeInternal    = "INTERNAL_ERROR"
	ErrorCodeTimeout     = "TIMEOUT"
	ErrorCodeBadRequest  = "BAD_REQUEST"
)

// NewErrorResponse creates a new error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithDetails creates an error response with field details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeConflict:
		return http.StatusConflict
	case ErrorCodeValidation, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
