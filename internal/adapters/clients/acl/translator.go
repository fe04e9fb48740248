package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quote-gallery/internal/adapters/clients"
	"github.com/jsamuelsen/quote-gallery/internal/domain"
)

// maxResponseBody caps successful response bodies.
const maxResponseBody = 1 << 20

// BaseAdapter holds what every adapter in this package shares: the client and
// the name errors are reported under.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

// NewBaseAdapter creates a new base adapter with the given client and service name.
func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	return BaseAdapter{
		client:      client,
		serviceName: serviceName,
	}
}

// ServiceName returns the name of the external service.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// Get performs a GET and returns the body of a 2xx response. The caller closes it.
func (a *BaseAdapter) Get(ctx context.Context, path, operation string) (io.ReadCloser, error) {
	resp, err := a.client.Get(ctx, path)

	return a.checked(resp, err, operation)
}

// Post performs a POST and returns the body of a 2xx response. The caller closes it.
func (a *BaseAdapter) Post(ctx context.Context, path string, body io.Reader, operation string) (io.ReadCloser, error) {
	resp, err := a.client.Post(ctx, path, body)

	return a.checked(resp, err, operation)
}

func (a *BaseAdapter) checked(resp *http.Response, err error, operation string) (io.ReadCloser, error) {
	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, operation)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()

		return nil, MapHTTPError(resp, nil, a.serviceName, operation)
	}

	return resp.Body, nil
}

// DecodeResponse decodes a JSON body into T and closes it.
func DecodeResponse[T any](body io.ReadCloser) (T, error) {
	var result T

	if body == nil {
		return result, fmt.Errorf("response body is nil")
	}
	defer func() { _ = body.Close() }()

	if err := json.NewDecoder(io.LimitReader(body, maxResponseBody)).Decode(&result); err != nil {
		return result, fmt.Errorf("decoding response: %w", err)
	}

	return result, nil
}

// ReadBody reads a body verbatim and closes it.
func ReadBody(body io.ReadCloser) (string, error) {
	defer func() { _ = body.Close() }()

	b, err := io.ReadAll(io.LimitReader(body, maxResponseBody))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	return string(b), nil
}

// decodeFailure reports an unreadable success response as the service being unavailable.
func (a *BaseAdapter) decodeFailure(operation string, err error) error {
	return domain.NewUnavailableError(a.serviceName, fmt.Sprintf("%s: %v", operation, err))
}

// Translator converts one external DTO into a domain value. ok=false drops the item.
type Translator[E any, D any] func(ext E) (D, bool)

// TranslateSlice applies translate to every item, keeping the ones it accepts.
// It returns the kept values and how many were dropped.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]D, int) {
	out := make([]D, 0, len(items))

	for _, item := range items {
		if d, ok := translate(item); ok {
			out = append(out, d)
		}
	}

	return out, len(items) - len(out)
}
