package telemetry

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/jsamuelsen/quote-gallery/telemetry"

// TraceIDHeader carries the active trace ID back to the caller.
const TraceIDHeader = "X-Trace-ID"

type httpMetrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
	activeRequests  metric.Int64UpDownCounter
}

func newHTTPMetrics() (*httpMetrics, error) {
	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestTotal, err := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of in-flight HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		activeRequests:  activeRequests,
	}, nil
}

// Middleware returns the server instrumentation chain: an otelgin span per
// request followed by request metrics and the X-Trace-ID response header.
// The ops endpoints and the favicon are not traced.
func Middleware(serviceName string) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		otelgin.Middleware(serviceName,
			otelgin.WithFilter(traced),
			otelgin.WithSpanNameFormatter(spanName),
		),
		metricsMiddleware(),
	}
}

func traced(r *http.Request) bool {
	return !strings.HasPrefix(r.URL.Path, "/-/") && r.URL.Path != "/favicon.ico"
}

// spanName names a span after its route pattern so /select/3 and /select/4
// land on the same span name.
func spanName(c *gin.Context) string {
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}

	return c.Request.Method + " " + route
}

func metricsMiddleware() gin.HandlerFunc {
	metrics, err := newHTTPMetrics()
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		route := attribute.String("http.route", c.FullPath())
		method := attribute.String("http.method", c.Request.Method)

		if metrics != nil {
			metrics.activeRequests.Add(ctx, 1, metric.WithAttributes(method, route))
			defer metrics.activeRequests.Add(ctx, -1, metric.WithAttributes(method, route))
		}

		if sc := trace.SpanFromContext(ctx).SpanContext(); sc.HasTraceID() {
			c.Header(TraceIDHeader, sc.TraceID().String())
		}

		c.Next()

		if metrics != nil {
			attrs := metric.WithAttributes(method, route, attribute.Int("http.status_code", c.Writer.Status()))
			metrics.requestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
			metrics.requestTotal.Add(ctx, 1, attrs)
		}
	}
}
