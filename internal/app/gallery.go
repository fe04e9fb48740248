// Package app holds the gallery's view-state controller. Both front ends
// drive the same Gallery; neither touches the ports directly.
package app

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jsamuelsen/quote-gallery/internal/domain"
	"github.com/jsamuelsen/quote-gallery/internal/platform/logging"
	"github.com/jsamuelsen/quote-gallery/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-gallery/internal/ports"
)

// Phase is the gallery's position in its state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseModalOpen
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseModalOpen:
		return "modal_open"
	default:
		return "unknown"
	}
}

// Alert texts shown after a submission.
const (
	SubmitSuccessPrefix  = "Data submitted successfully: "
	SubmitFailureMessage = "Error submitting the data"
)

// Alert is the blocking message shown once a submission finishes.
type Alert struct {
	Message string
	Success bool
}

// ViewState is a point-in-time copy of the gallery state.
type ViewState struct {
	Records       []domain.QuoteRecord
	Loading       bool
	Selected      *domain.QuoteRecord
	SelectedIndex int // -1 when nothing is selected
	ModalOpen     bool
	Phase         Phase
}

// GalleryConfig holds the dependencies of a Gallery.
type GalleryConfig struct {
	Source  ports.QuoteSource
	Sink    ports.SubmissionSink
	Query   domain.QuoteQuery
	Logger  *slog.Logger
	Metrics *telemetry.GalleryMetrics
}

// Gallery is the view/state controller shared by the web and terminal UIs.
// It is safe for concurrent use.
type Gallery struct {
	source  ports.QuoteSource
	sink    ports.SubmissionSink
	query   domain.QuoteQuery
	logger  *slog.Logger
	metrics *telemetry.GalleryMetrics
	exec    *Executor
	loads   singleflight.Group

	mu         sync.Mutex
	phase      Phase
	records    []domain.QuoteRecord
	selected   int
	submitting bool
}

// NewGallery creates an idle gallery. It panics if Source or Sink is nil.
func NewGallery(cfg GalleryConfig) *Gallery {
	if cfg.Source == nil {
		panic("app: quote source is required")
	}

	if cfg.Sink == nil {
		panic("app: submission sink is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Gallery{
		source:   cfg.Source,
		sink:     cfg.Sink,
		query:    cfg.Query,
		logger:   logger,
		metrics:  cfg.Metrics,
		exec:     NewExecutor(logger),
		selected: -1,
	}
}

// Load fetches the records when none are held and returns the resulting
// state. Callers arriving while a fetch is in flight wait for the same fetch.
// Fetch failures and empty responses are replaced by the fallback dataset
// and never reported to the caller.
func (g *Gallery) Load(ctx context.Context) ViewState {
	g.mu.Lock()
	if len(g.records) > 0 {
		defer g.mu.Unlock()

		return g.snapshotLocked()
	}

	g.phase = PhaseLoading
	g.mu.Unlock()

	// One caller going away must not fail the load for the others waiting on it.
	fetchCtx := context.WithoutCancel(ctx)

	_, _, _ = g.loads.Do("records", func() (any, error) {
		g.loadRecords(fetchCtx)

		return nil, nil
	})

	return g.Snapshot()
}

// loadRecords fetches and stores the records unless an earlier fetch already
// stored them. A caller that saw no records can reach here after that fetch
// has left the singleflight group.
func (g *Gallery) loadRecords(ctx context.Context) {
	g.mu.Lock()
	loaded := len(g.records) > 0
	g.mu.Unlock()

	if loaded {
		return
	}

	records := g.fetch(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.records) == 0 {
		g.records = records
		g.phase = PhaseReady
	}
}

func (g *Gallery) fetch(ctx context.Context) []domain.QuoteRecord {
	logger := logging.FromContextOr(ctx, g.logger)

	records, err := g.source.FetchQuotes(ctx, g.query)

	switch {
	case err != nil:
		logger.WarnContext(ctx, "quote fetch failed, using fallback quotes", slog.Any("error", err))
	case len(records) == 0:
		logger.WarnContext(ctx, "quote source returned no records, using fallback quotes")
	default:
		logger.InfoContext(ctx, "quotes loaded", slog.Int("count", len(records)))
		g.metrics.RecordLoad(ctx, false)

		return slices.Clone(records)
	}

	g.metrics.RecordLoad(ctx, true)

	return domain.FallbackQuotes()
}

// Select opens the modal for the record at index. Selecting while the modal
// is already open replaces the selection.
func (g *Gallery) Select(index int) (ViewState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseReady && g.phase != PhaseModalOpen {
		return g.snapshotLocked(), domain.NewConflictError("gallery", "quotes are not loaded yet")
	}

	if g.submitting {
		return g.snapshotLocked(), domain.NewConflictError("submission", "a submission is in progress")
	}

	if index < 0 || index >= len(g.records) {
		return g.snapshotLocked(), domain.NewNotFoundError("quote", strconv.Itoa(index))
	}

	g.selected = index
	g.phase = PhaseModalOpen

	return g.snapshotLocked(), nil
}

// Close closes the modal and clears the selection. Closing a closed modal is a no-op.
func (g *Gallery) Close() ViewState {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.closeLocked()

	return g.snapshotLocked()
}

func (g *Gallery) closeLocked() {
	if g.phase == PhaseModalOpen {
		g.phase = PhaseReady
	}

	g.selected = -1
}

// Snapshot returns a copy of the current state.
func (g *Gallery) Snapshot() ViewState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshotLocked()
}

func (g *Gallery) snapshotLocked() ViewState {
	vs := ViewState{
		Records:       slices.Clone(g.records),
		Loading:       g.phase == PhaseLoading,
		SelectedIndex: -1,
		ModalOpen:     g.phase == PhaseModalOpen,
		Phase:         g.phase,
	}

	if g.phase == PhaseModalOpen && g.selected >= 0 {
		selected := g.records[g.selected]
		vs.Selected = &selected
		vs.SelectedIndex = g.selected
	}

	return vs
}

// Submit validates form and posts it for the selected record.
//
// A *domain.ValidationError is returned as-is and leaves the modal open
// without any network call. A *domain.ConflictError means no modal is open
// or another submission is running. Once the POST has been attempted the
// modal is closed and the outcome is reported in the Alert; upstream
// failures never surface as errors.
func (g *Gallery) Submit(ctx context.Context, form AgeForm) (Alert, error) {
	var submission domain.Submission

	op := Operation[AgeForm, string, Alert]{
		Name: "submit_age",
		Validate: func(_ context.Context, f AgeForm) error {
			g.mu.Lock()
			defer g.mu.Unlock()

			if g.phase != PhaseModalOpen {
				return domain.NewConflictError("submission", "no quote is selected")
			}

			if g.submitting {
				return domain.NewConflictError("submission", "a submission is in progress")
			}

			age, err := f.Validate()
			if err != nil {
				return err
			}

			submission = domain.NewSubmission(g.records[g.selected], age)
			g.submitting = true

			return nil
		},
		Perform: func(ctx context.Context, _ AgeForm) (string, error) {
			// The submit flag is already set; the POST runs to completion
			// under the sink's own timeout even if the caller gives up.
			return g.sink.Submit(context.WithoutCancel(ctx), submission)
		},
		Respond: func(_ context.Context, _ AgeForm, body string) (Alert, error) {
			return Alert{Message: SubmitSuccessPrefix + body, Success: true}, nil
		},
	}

	alert, err := Execute(ctx, g.exec, op, form)
	if step, ok := GetExecutionStep(err); ok && step == StepValidate {
		return Alert{}, errors.Unwrap(err)
	}

	g.mu.Lock()
	g.submitting = false
	g.closeLocked()
	g.mu.Unlock()

	if err != nil {
		logging.FromContextOr(ctx, g.logger).WarnContext(ctx, "submission failed",
			slog.String("character", submission.Name),
			slog.Any("error", err),
		)
		g.metrics.RecordSubmission(ctx, false)

		return Alert{Message: SubmitFailureMessage}, nil
	}

	g.metrics.RecordSubmission(ctx, true)

	return alert, nil
}
