package acl

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/jsamuelsen/quote-gallery/internal/adapters/clients"
	"github.com/jsamuelsen/quote-gallery/internal/domain"
	"github.com/jsamuelsen/quote-gallery/internal/platform/logging"
)

const quotesPath = "/quotes"

// QuoteClientConfig contains configuration for the quote client.
type QuoteClientConfig struct {
	// Client must have its BaseURL set to the quote API host.
	Client *clients.Client

	// Logger is the structured logger.
	Logger *slog.Logger
}

// QuoteClient reads character quotes from the quote API.
// It implements ports.QuoteSource and ports.HealthChecker.
type QuoteClient struct {
	BaseAdapter

	logger *slog.Logger
}

// NewQuoteClient creates a new quote client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewQuoteClient(cfg QuoteClientConfig) *QuoteClient {
	if cfg.Client == nil {
		panic("QuoteClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, cfg.Client.ServiceName()),
		logger:      logger,
	}
}

// quoteDTO is one element of the quote API's JSON array.
type quoteDTO struct {
	Quote              string `json:"quote"`
	Character          string `json:"character"`
	Image              string `json:"image"`
	CharacterDirection string `json:"characterDirection"`
}

// FetchQuotes calls GET /quotes?count=<n>&character=<code>.
func (c *QuoteClient) FetchQuotes(ctx context.Context, q domain.QuoteQuery) ([]domain.QuoteRecord, error) {
	const operation = "fetch quotes"

	path := quotesPath + "?" + queryString(q)
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", path))

	body, err := c.Get(ctx, path, operation)
	if err != nil {
		return nil, err
	}

	dtos, err := DecodeResponse[[]quoteDTO](body)
	if err != nil {
		return nil, c.decodeFailure(operation, err)
	}

	records, dropped := TranslateSlice(dtos, translateQuote)
	if dropped > 0 {
		c.logger.WarnContext(ctx, "dropped quote records without text",
			slog.Int("dropped", dropped),
			slog.Int("received", len(dtos)),
		)
	}

	c.logger.DebugContext(ctx, "fetched quotes", slog.Int("count", len(records)))

	return records, nil
}

// queryString renders the fetch query in the parameter order the API documents.
func queryString(q domain.QuoteQuery) string {
	parts := make([]string, 0, 2)
	if q.Count > 0 {
		parts = append(parts, "count="+strconv.Itoa(q.Count))
	}

	if q.Character != "" {
		parts = append(parts, "character="+url.QueryEscape(q.Character))
	}

	return strings.Join(parts, "&")
}

// translateQuote keeps unknown characters and directions verbatim and drops
// only records with no quote text, which could not be keyed or displayed.
func translateQuote(ext quoteDTO) (domain.QuoteRecord, bool) {
	if strings.TrimSpace(ext.Quote) == "" {
		return domain.QuoteRecord{}, false
	}

	return domain.QuoteRecord{
		Quote:              ext.Quote,
		Character:          domain.Character(ext.Character),
		Image:              ext.Image,
		CharacterDirection: domain.Direction(ext.CharacterDirection),
	}, true
}

// Name implements ports.HealthChecker.
func (c *QuoteClient) Name() string {
	return c.ServiceName()
}

// Check asks the API for a single quote.
func (c *QuoteClient) Check(ctx context.Context) error {
	body, err := c.Get(ctx, quotesPath+"?count=1", "health check")
	if err != nil {
		return err
	}

	return body.Close()
}
