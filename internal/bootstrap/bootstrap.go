// Package bootstrap builds the pieces both entry points share: the logger,
// the outbound clients and the gallery.
package bootstrap

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jsamuelsen/quote-gallery/internal/adapters/clients"
	"github.com/jsamuelsen/quote-gallery/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-gallery/internal/app"
	"github.com/jsamuelsen/quote-gallery/internal/domain"
	"github.com/jsamuelsen/quote-gallery/internal/platform/config"
	"github.com/jsamuelsen/quote-gallery/internal/platform/logging"
	"github.com/jsamuelsen/quote-gallery/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-gallery/internal/ports"
)

// LoggingConfig maps the loaded configuration onto the logging package.
func LoggingConfig(cfg *config.Config) *logging.Config {
	return &logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	}
}

// NewLogger creates the logger for cfg writing to w. See logging.NewWithWriter
// for the meaning of a nil w.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return logging.NewWithWriter(LoggingConfig(cfg), w)
}

// TelemetryConfig maps the loaded configuration onto the telemetry package
// for the given front end (telemetry.FrontEndWeb or telemetry.FrontEndTUI).
func TelemetryConfig(cfg *config.Config, frontEnd string) *telemetry.Config {
	return &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		FrontEnd:     frontEnd,
		SamplingRate: cfg.Telemetry.SamplingRate,
	}
}

// Components is the wired gallery and the adapters behind it.
type Components struct {
	Gallery     *app.Gallery
	QuoteClient *acl.QuoteClient
	Health      *ports.DefaultHealthRegistry

	httpClients []*clients.Client
}

// Close releases idle outbound connections.
func (c *Components) Close() {
	for _, hc := range c.httpClients {
		hc.CloseIdleConnections()
	}
}

// Build creates the clients, adapters, health registry and gallery for cfg.
func Build(cfg *config.Config, logger *slog.Logger) (*Components, error) {
	quoteHTTP, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Quote.BaseURL,
		ServiceName: cfg.Services.Quote.Name,
		Timeout:     cfg.Services.Quote.Timeout,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating quote HTTP client: %w", err)
	}

	submitHTTP, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Submission.URL,
		ServiceName: cfg.Services.Submission.Name,
		Timeout:     cfg.Services.Submission.Timeout,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating submission HTTP client: %w", err)
	}

	quoteClient := acl.NewQuoteClient(acl.QuoteClientConfig{
		Client: quoteHTTP,
		Logger: logger,
	})

	submissionClient := acl.NewSubmissionClient(acl.SubmissionClientConfig{
		Client: submitHTTP,
		Logger: logger,
	})

	registry := ports.NewHealthRegistry()
	if err := registry.Register(quoteClient); err != nil {
		return nil, fmt.Errorf("registering quote client health check: %w", err)
	}

	metrics, err := telemetry.NewGalleryMetrics()
	if err != nil {
		return nil, fmt.Errorf("creating gallery metrics: %w", err)
	}

	gallery := app.NewGallery(app.GalleryConfig{
		Source: quoteClient,
		Sink:   submissionClient,
		Query: domain.QuoteQuery{
			Count:     cfg.Gallery.Count,
			Character: cfg.Gallery.Character,
		},
		Logger:  logger,
		Metrics: metrics,
	})

	return &Components{
		Gallery:     gallery,
		QuoteClient: quoteClient,
		Health:      registry,
		httpClients: []*clients.Client{quoteHTTP, submitHTTP},
	}, nil
}
