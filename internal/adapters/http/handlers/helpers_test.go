package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen/quote-gallery/internal/app"
	"github.com/jsamuelsen/quote-gallery/internal/domain"
	"github.com/jsamuelsen/quote-gallery/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testQuery = domain.QuoteQuery{Count: 15, Character: "ho"}

func records(n int) []domain.QuoteRecord {
	out := make([]domain.QuoteRecord, n)
	for i := range out {
		out[i] = domain.QuoteRecord{
			Quote:              fmt.Sprintf("Quote %02d", i),
			Character:          domain.HomerSimpson,
			Image:              fmt.Sprintf("https://img.example/%d.png", i),
			CharacterDirection: domain.DirectionRight,
		}
	}

	return out
}

// newGallery returns a gallery whose source serves recs, and its sink mock.
func newGallery(t *testing.T, recs []domain.QuoteRecord) (*app.Gallery, *mocks.MockSubmissionSink) {
	t.Helper()

	source := mocks.NewMockQuoteSource(t)
	source.EXPECT().FetchQuotes(mock.Anything, testQuery).Return(recs, nil).Maybe()

	sink := mocks.NewMockSubmissionSink(t)

	g := app.NewGallery(app.GalleryConfig{
		Source: source,
		Sink:   sink,
		Query:  testQuery,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return g, sink
}
