package dto

import (
	"bytes"
	"encoding/json"

	"github.com/jsamuelsen/quote-gallery/internal/app"
	"github.com/jsamuelsen/quote-gallery/internal/domain"
)

// QuoteResponse is one record as served by the JSON API.
type QuoteResponse struct {
	Quote              string `json:"quote"`
	Character          string `json:"character"`
	Image              string `json:"image"`
	CharacterDirection string `json:"characterDirection"`
}

// QuotesResponse is the body of GET /api/v1/quotes.
type QuotesResponse struct {
	Quotes []QuoteResponse `json:"quotes"`
	Count  int             `json:"count"`
}

// StateResponse mirrors app.ViewState.
type StateResponse struct {
	Phase         string          `json:"phase"`
	Loading       bool            `json:"loading"`
	ModalOpen     bool            `json:"modalOpen"`
	SelectedIndex *int            `json:"selectedIndex,omitempty"`
	Selected      *QuoteResponse  `json:"selected,omitempty"`
	Records       []QuoteResponse `json:"records"`
}

// AlertResponse is the outcome of a submission.
type AlertResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// SelectionRequest is the body of POST /api/v1/selection.
type SelectionRequest struct {
	Index *int `json:"index" validate:"required,min=0"`
}

// SubmissionRequest is the body of POST /api/v1/submissions. Age may be sent
// as a JSON number or string; the gallery's form rules decide if it is valid.
type SubmissionRequest struct {
	Age json.RawMessage `json:"age"`
}

// Form converts the request into the gallery's age form.
func (r SubmissionRequest) Form() app.AgeForm {
	raw := bytes.TrimSpace(r.Age)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return app.AgeForm{}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return app.AgeForm{Age: s}
	}

	return app.AgeForm{Age: string(raw)}
}

// NewQuoteResponse converts a domain record.
func NewQuoteResponse(r domain.QuoteRecord) QuoteResponse {
	return QuoteResponse{
		Quote:              r.Quote,
		Character:          string(r.Character),
		Image:              r.Image,
		CharacterDirection: string(r.CharacterDirection),
	}
}

// NewQuotesResponse converts a record list.
func NewQuotesResponse(records []domain.QuoteRecord) QuotesResponse {
	return QuotesResponse{Quotes: quoteResponses(records), Count: len(records)}
}

// NewStateResponse converts a view state snapshot.
func NewStateResponse(vs app.ViewState) StateResponse {
	resp := StateResponse{
		Phase:     vs.Phase.String(),
		Loading:   vs.Loading,
		ModalOpen: vs.ModalOpen,
		Records:   quoteResponses(vs.Records),
	}

	if vs.Selected != nil {
		idx := vs.SelectedIndex
		selected := NewQuoteResponse(*vs.Selected)
		resp.SelectedIndex = &idx
		resp.Selected = &selected
	}

	return resp
}

// NewAlertResponse converts a submission alert.
func NewAlertResponse(a app.Alert) AlertResponse {
	return AlertResponse{Message: a.Message, Success: a.Success}
}

func quoteResponses(records []domain.QuoteRecord) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(records))
	for _, r := range records {
		out = append(out, NewQuoteResponse(r))
	}

	return out
}
