package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// GalleryMetrics counts gallery outcomes that never surface as errors:
// fallback loads and submission results.
type GalleryMetrics struct {
	loads       metric.Int64Counter
	submissions metric.Int64Counter
}

// NewGalleryMetrics creates the gallery counters on the global meter provider.
func NewGalleryMetrics() (*GalleryMetrics, error) {
	meter := otel.Meter(instrumentationName)

	loads, err := meter.Int64Counter(
		"gallery.loads",
		metric.WithDescription("Gallery loads by source (remote or fallback)"),
	)
	if err != nil {
		return nil, err
	}

	submissions, err := meter.Int64Counter(
		"gallery.submissions",
		metric.WithDescription("Form submissions by outcome"),
	)
	if err != nil {
		return nil, err
	}

	return &GalleryMetrics{loads: loads, submissions: submissions}, nil
}

// RecordLoad counts one completed load. A nil receiver is a noop.
func (m *GalleryMetrics) RecordLoad(ctx context.Context, fallback bool) {
	if m == nil {
		return
	}

	source := "remote"
	if fallback {
		source = "fallback"
	}

	m.loads.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}

// RecordSubmission counts one submission attempt. A nil receiver is a noop.
func (m *GalleryMetrics) RecordSubmission(ctx context.Context, ok bool) {
	if m == nil {
		return
	}

	outcome := "success"
	if !ok {
		outcome = "failure"
	}

	m.submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
