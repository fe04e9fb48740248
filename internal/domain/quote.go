// Package domain contains the gallery's entities and errors.
package domain

// Character is the speaker of a quote as reported by the quote API.
// Values outside the known set are kept as-is.
type Character string

// Known characters.
const (
	HomerSimpson      Character = "Homer Simpson"
	MilhouseVanHouten Character = "Milhouse Van Houten"
)

// Direction is the way the character image faces.
type Direction string

// DirectionRight is the only direction the quote API is known to return.
const DirectionRight Direction = "Right"

// QuoteRecord is one character quote. Records are never mutated after they
// are fetched; the quote text is the record's display key but is not unique.
type QuoteRecord struct {
	Quote              string
	Character          Character
	Image              string
	CharacterDirection Direction
}

// Key returns the value used to key the record in rendered lists.
func (r QuoteRecord) Key() string {
	return r.Quote
}

// QuoteQuery is the fixed query the gallery sends to the quote source.
type QuoteQuery struct {
	Count     int
	Character string
}

// Submission is the payload posted when the age form is submitted.
type Submission struct {
	Name  string `json:"name"`
	Quote string `json:"quote"`
	Age   int    `json:"age"`
}

// NewSubmission composes the payload for the selected record.
func NewSubmission(selected QuoteRecord, age int) Submission {
	return Submission{
		Name:  string(selected.Character),
		Quote: selected.Quote,
		Age:   age,
	}
}
