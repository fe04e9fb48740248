// Package ports defines the contracts the gallery needs from the outside world.
// Implementations live in internal/adapters; the application layer only sees
// these interfaces and domain types.
package ports

import (
	"context"

	"github.com/jsamuelsen/quote-gallery/internal/domain"
)

// QuoteSource supplies the gallery's records.
type QuoteSource interface {
	// FetchQuotes returns the records matching q. Implementations make a
	// single attempt and report transport failures as domain.ErrUnavailable.
	FetchQuotes(ctx context.Context, q domain.QuoteQuery) ([]domain.QuoteRecord, error)
}

// SubmissionSink receives completed age forms.
type SubmissionSink interface {
	// Submit posts s once and returns the raw response body on success.
	Submit(ctx context.Context, s domain.Submission) (string, error)
}
