package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackQuotes_NonEmptyAndKnown(t *testing.T) {
	records := FallbackQuotes()
	require.NotEmpty(t, records)

	for _, r := range records {
		assert.NotEmpty(t, r.Quote)
		assert.Contains(t, []Character{HomerSimpson, MilhouseVanHouten}, r.Character)
		assert.NotEmpty(t, r.Image)
		assert.Equal(t, DirectionRight, r.CharacterDirection)
	}
}

func TestFallbackQuotes_ReturnsCopy(t *testing.T) {
	first := FallbackQuotes()
	first[0].Quote = "mutated"

	assert.NotEqual(t, "mutated", FallbackQuotes()[0].Quote)
}

func TestNewSubmission(t *testing.T) {
	rec := QuoteRecord{Quote: "D'oh!", Character: HomerSimpson}

	assert.Equal(t, Submission{Name: "Homer Simpson", Quote: "D'oh!", Age: 5}, NewSubmission(rec, 5))
	assert.Equal(t, "D'oh!", rec.Key())
}
