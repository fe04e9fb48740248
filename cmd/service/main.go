// Package main is the entry point for the gallery web server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsamuelsen/quote-gallery/internal/adapters/http"
	"github.com/jsamuelsen/quote-gallery/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-gallery/internal/bootstrap"
	"github.com/jsamuelsen/quote-gallery/internal/platform/config"
	"github.com/jsamuelsen/quote-gallery/internal/platform/telemetry"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

const pageTitle = "Simpsons Quotes"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := bootstrap.NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, bootstrap.TelemetryConfig(cfg, telemetry.FrontEndWeb))
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Create clients, adapters, health registry and the gallery
	components, err := bootstrap.Build(cfg, logger)
	if err != nil {
		return err
	}
	defer components.Close()

	// 6. Create handlers
	buildInfo := handlers.NewBuildInfo(cfg.App.Name, Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(components.Health, buildInfo)

	// 7. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 8. Setup router with all middleware and routes
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:        logger,
		ServiceName:   cfg.Telemetry.ServiceName,
		Title:         pageTitle,
		Gallery:       components.Gallery,
		HealthHandler: healthHandler,
		Timeout:       http.DefaultRequestTimeout,
	})

	// 9. Start server (non-blocking)
	serverErr, err := server.Start()
	if err != nil {
		return err
	}

	// 10. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}

		return nil

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
