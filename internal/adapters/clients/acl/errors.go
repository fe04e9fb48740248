package acl

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quote-gallery/internal/adapters/clients"
	"github.com/jsamuelsen/quote-gallery/internal/domain"
)

// maxErrorBody caps how much of an error response is read for context.
const maxErrorBody = 64 << 10

// ErrorResponse is an upstream error body. Both the nested
// {"error":{"code","message"}} and the flat {"code","message"} shapes are accepted.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorDetail contains error information from external services.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// GetCode returns the error code from either nested or top-level format.
func (e *ErrorResponse) GetCode() string {
	if e.Error.Code != "" {
		return e.Error.Code
	}

	return e.Code
}

// GetMessage returns the error message from either nested or top-level format.
func (e *ErrorResponse) GetMessage() string {
	if e.Error.Message != "" {
		return e.Error.Message
	}

	return e.Message
}

// ParseErrorResponse decodes an error envelope. It returns nil when the body
// is empty, not JSON, or carries neither a code nor a message.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.GetCode() == "" && errResp.GetMessage() == "" {
		return nil
	}

	return &errResp
}

// MapHTTPError converts a failed exchange into a domain error. Exactly one of
// resp and clientErr is expected to be set; a 2xx response maps to nil.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	reason := fmt.Sprintf("%s failed with status %d", operation, resp.StatusCode)
	if errResp := ParseErrorResponse(resp.Body); errResp != nil {
		reason = fmt.Sprintf("%s (%s)", reason, describe(errResp))
	}

	return domain.NewUnavailableError(serviceName, reason)
}

func mapClientError(err error, serviceName, operation string) error {
	if clients.IsTimeout(err) {
		return domain.NewUnavailableError(serviceName, operation+" timed out")
	}

	return domain.NewUnavailableError(serviceName, fmt.Sprintf("%s failed: %v", operation, err))
}

func describe(e *ErrorResponse) string {
	switch code, msg := e.GetCode(), e.GetMessage(); {
	case code != "" && msg != "":
		return code + ": " + msg
	case code != "":
		return code
	default:
		return msg
	}
}
