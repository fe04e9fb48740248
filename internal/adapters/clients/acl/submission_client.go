package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quote-gallery/internal/adapters/clients"
	"github.com/jsamuelsen/quote-gallery/internal/domain"
	"github.com/jsamuelsen/quote-gallery/internal/platform/logging"
)

// SubmissionClientConfig contains configuration for the submission client.
type SubmissionClientConfig struct {
	// Client must have its BaseURL set to the full submission endpoint URL.
	Client *clients.Client

	Logger *slog.Logger
}

// SubmissionClient posts completed age forms. It implements ports.SubmissionSink.
type SubmissionClient struct {
	BaseAdapter

	logger *slog.Logger
}

// NewSubmissionClient creates a new submission adapter.
// Panics if Client is nil.
func NewSubmissionClient(cfg SubmissionClientConfig) *SubmissionClient {
	if cfg.Client == nil {
		panic("SubmissionClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SubmissionClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, cfg.Client.ServiceName()),
		logger:      logger,
	}
}

// submissionDTO is the wire payload. It is kept separate from
// domain.Submission so the field names are owned here.
type submissionDTO struct {
	Name  string `json:"name"`
	Quote string `json:"quote"`
	Age   int    `json:"age"`
}

// Submit posts s once and returns the response body verbatim.
func (c *SubmissionClient) Submit(ctx context.Context, s domain.Submission) (string, error) {
	const operation = "submit form"

	payload, err := json.Marshal(submissionDTO(s))
	if err != nil {
		return "", fmt.Errorf("encoding submission: %w", err)
	}

	c.logger.Log(ctx, logging.LevelTrace, "posting submission", slog.String("payload", string(payload)))

	body, err := c.Post(ctx, "", bytes.NewReader(payload), operation)
	if err != nil {
		return "", err
	}

	raw, err := ReadBody(body)
	if err != nil {
		return "", c.decodeFailure(operation, err)
	}

	c.logger.DebugContext(ctx, "submission accepted", slog.Int("body_bytes", len(raw)))

	return raw, nil
}
