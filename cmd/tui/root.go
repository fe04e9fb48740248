package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jsamuelsen/quote-gallery/internal/adapters/tui"
	"github.com/jsamuelsen/quote-gallery/internal/bootstrap"
	"github.com/jsamuelsen/quote-gallery/internal/platform/config"
	"github.com/jsamuelsen/quote-gallery/internal/platform/logging"
	"github.com/jsamuelsen/quote-gallery/internal/platform/telemetry"
)

const title = "Simpsons Quotes"

var errNoTerminal = errors.New("quote-gallery-tui needs an interactive terminal")

type options struct {
	profile string
	host    string
	logFile string
}

func stdioIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func newRootCmd(isTerminal func() bool) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     "quote-gallery-tui",
		Short:   "Browse character quotes in the terminal",
		Version: Version,
		Long: `quote-gallery-tui shows a carousel and a table of character quotes.
Pick one to open its details and submit your age.

Logs never reach the terminal: pass --log-file to keep them.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal() {
				return errNoTerminal
			}

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&opts.profile, "profile", envOr("APP_ENVIRONMENT", "local"), "configuration profile")
	cmd.Flags().StringVar(&opts.host, "host", "", "quote API base URL (overrides the profile)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write JSON logs to this file")

	return cmd
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}

	return fallback
}

// loadConfig loads the profile and applies the command line overrides.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	applyOptions(cfg, opts)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyOptions(cfg *config.Config, opts options) {
	if opts.host != "" {
		cfg.Services.Quote.BaseURL = opts.host
	}

	// The terminal owns stdout; only the file sink may write.
	cfg.Log.File.Enabled = opts.logFile != ""
	if opts.logFile != "" {
		cfg.Log.File.Path = opts.logFile
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	logger := bootstrap.NewLogger(cfg, nil)
	slog.SetDefault(logger)
	ctx = logging.WithContext(ctx, logger)

	telProvider, err := telemetry.New(ctx, bootstrap.TelemetryConfig(cfg, telemetry.FrontEndTUI))
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	components, err := bootstrap.Build(cfg, logger)
	if err != nil {
		return err
	}
	defer components.Close()

	logger.InfoContext(ctx, "starting terminal gallery", slog.String("environment", cfg.App.Environment))

	program := tea.NewProgram(
		tui.New(ctx, components.Gallery, title, logger),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err = program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running terminal UI: %w", err)
	}

	return nil
}
