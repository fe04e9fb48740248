package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a fully valid configuration for testing.
func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "quote-gallery",
			Version:     "1.0.0",
			Environment: "local",
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxRequestSize:  1048576,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Client: ClientConfig{
			Transport: TransportConfig{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		Services: ServicesConfig{
			Quote: QuoteServiceConfig{
				BaseURL: "https://thesimpsonsquoteapi.glitch.me",
				Name:    "quote-api",
				Timeout: time.Second,
			},
			Submission: SubmissionServiceConfig{
				URL:  "https://testfrontend.co/v1/testsimpsons",
				Name: "submission-api",
			},
		},
		Gallery: GalleryConfig{
			Count:     15,
			Character: "ho",
		},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_FieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []string
	}{
		{
			name:    "missing app name",
			mutate:  func(c *Config) { c.App.Name = "" },
			wantErr: []string{"app.name", "required"},
		},
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.App.Environment = "staging" },
			wantErr: []string{"app.environment", "one of"},
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: []string{"server.port", "at most"},
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: []string{"log.format"},
		},
		{
			name:    "log file enabled without path",
			mutate:  func(c *Config) { c.Log.File = LogFileConfig{Enabled: true} },
			wantErr: []string{"log.file.path", "required when"},
		},
		{
			name:    "quote timeout too small",
			mutate:  func(c *Config) { c.Services.Quote.Timeout = time.Millisecond },
			wantErr: []string{"services.quote.timeout", "at least"},
		},
		{
			name:    "quote base url not a url",
			mutate:  func(c *Config) { c.Services.Quote.BaseURL = "not a url" },
			wantErr: []string{"services.quote.baseurl", "valid URL"},
		},
		{
			name:    "zero gallery count",
			mutate:  func(c *Config) { c.Gallery.Count = 0 },
			wantErr: []string{"gallery.count", "required"},
		},
		{
			name:    "missing character filter",
			mutate:  func(c *Config) { c.Gallery.Character = "" },
			wantErr: []string{"gallery.character", "required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestConfig_Validate_SubmissionTimeoutMayBeZero(t *testing.T) {
	cfg := validConfig()
	cfg.Services.Submission.Timeout = 0

	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_Endpoints(t *testing.T) {
	t.Run("quote base url with path", func(t *testing.T) {
		cfg := validConfig()
		cfg.Services.Quote.BaseURL = "https://thesimpsonsquoteapi.glitch.me/quotes"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "without a path")
	})

	t.Run("submission url with non-http scheme", func(t *testing.T) {
		cfg := validConfig()
		cfg.Services.Submission.URL = "ftp://testfrontend.co/upload"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "absolute http(s) URL")
	})
}

func TestFormatFieldPath(t *testing.T) {
	assert.Equal(t, "services.quote.timeout", formatFieldPath("Config.Services.Quote.Timeout"))
	assert.Equal(t, "port", formatFieldPath("Port"))
}
