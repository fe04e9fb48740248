package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-gallery/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-gallery/internal/platform/config"
	"github.com/jsamuelsen/quote-gallery/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/quote-gallery/internal/adapters/clients"

	// httpStatusCategoryDivisor divides status code to get category (2xx, 4xx, 5xx).
	httpStatusCategoryDivisor = 100
)

// Config configures an HTTP client instance.
type Config struct {
	// BaseURL prefixes every request path. It may be a complete endpoint URL
	// when the client only ever calls one address.
	BaseURL string

	// ServiceName identifies the downstream service for logging and tracing.
	ServiceName string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// Transport configures the connection pool.
	Transport config.TransportConfig

	// Logger is an optional logger. If nil, slog.Default is used.
	Logger *slog.Logger
}

// Client is an instrumented HTTP client for a single downstream service.
// Every call is exactly one attempt: there is no retry and no circuit breaking.
// Calls carry request/correlation IDs, an OpenTelemetry client span and
// duration/count metrics.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	logger      *slog.Logger

	tracer trace.Tracer

	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// New creates a new instrumented HTTP client.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative, got %s", cfg.Timeout)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of HTTP client requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requestTotal, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Total number of HTTP client requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	return &Client{
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: newTransport(cfg.Transport),
		},
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName: cfg.ServiceName,
		logger: logger.With(
			slog.String("component", "clients.Client"),
			slog.String("downstream", cfg.ServiceName),
		),
		tracer:          otel.Tracer(instrumentationName),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

func newTransport(cfg config.TransportConfig) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.MaxIdleConns > 0 {
		t.MaxIdleConns = cfg.MaxIdleConns
	}

	if cfg.MaxIdleConnsPerHost > 0 {
		t.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
	}

	if cfg.IdleConnTimeout > 0 {
		t.IdleConnTimeout = cfg.IdleConnTimeout
	}

	return t
}

// ServiceName returns the downstream name this client was built for.
func (c *Client) ServiceName() string {
	return c.serviceName
}

// CloseIdleConnections releases pooled keep-alive connections.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

// Do executes req once with tracing, metrics and logging.
// A non-2xx status is not an error here; callers inspect the response.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("downstream", c.serviceName),
		slog.String("method", req.Method),
		slog.String("url", req.URL.Redacted()),
	)

	c.injectHeaders(ctx, req)

	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("HTTP %s %s", req.Method, c.serviceName),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.Redacted()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	logger.Log(ctx, logging.LevelTrace, "sending request", slog.Any("headers", req.Header))

	resp, err := c.http.Do(req.WithContext(ctx))
	duration := time.Since(start)

	if err != nil {
		err = classify(err)

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.recordMetrics(ctx, req.Method, 0, duration, "error")
		logger.WarnContext(ctx, "request failed",
			slog.Duration("duration", duration),
			slog.Any("error", err),
		)

		return nil, err
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	c.recordMetrics(ctx, req.Method, resp.StatusCode, duration,
		fmt.Sprintf("%dxx", resp.StatusCode/httpStatusCategoryDivisor))

	logger.DebugContext(ctx, "request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
	)

	return resp, nil
}

// Get performs an HTTP GET request against the base URL.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	return c.Do(ctx, req)
}

// Post performs an HTTP POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(path), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.Do(ctx, req)
}

// injectHeaders propagates the inbound request and correlation IDs.
func (c *Client) injectHeaders(ctx context.Context, req *http.Request) {
	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}

	if correlationID := middleware.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(middleware.HeaderCorrelationID, correlationID)
	}
}

// buildURL joins path onto the base URL. An empty path addresses the base URL itself.
func (c *Client) buildURL(path string) string {
	if path == "" {
		return c.baseURL
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

func (c *Client) recordMetrics(ctx context.Context, method string, statusCode int, duration time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	c.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	c.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// classify wraps a transport error with ErrRequestFailed, adding ErrTimeout
// when the failure was a deadline.
func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w: %w", ErrRequestFailed, ErrTimeout, err)
	}

	return fmt.Errorf("%w: %w", ErrRequestFailed, err)
}

// IsTimeout reports whether err came from a request that ran out of time.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
