// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20

	// DefaultQuoteTimeout bounds the initial quote fetch.
	DefaultQuoteTimeout = time.Second

	// DefaultGalleryCount is how many quotes the gallery asks for.
	DefaultGalleryCount = 15

	// DefaultGalleryCharacter is the character filter code sent to the quote API.
	DefaultGalleryCharacter = "ho"

	// DefaultQuoteBaseURL is the quote API host.
	DefaultQuoteBaseURL = "https://thesimpsonsquoteapi.glitch.me"

	// DefaultSubmissionURL is the absolute endpoint that receives form submissions.
	DefaultSubmissionURL = "https://testfrontend.co/v1/testsimpsons"

	// DefaultTransportMaxIdleConns is the default max idle connections.
	DefaultTransportMaxIdleConns = 100

	// DefaultTransportMaxIdleConnsPerHost is the default max idle connections per host.
	DefaultTransportMaxIdleConnsPerHost = 10

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
	Services  ServicesConfig  `koanf:"services"  validate:"required"`
	Gallery   GalleryConfig   `koanf:"gallery"   validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// ClientConfig contains settings shared by every outbound HTTP client.
type ClientConfig struct {
	Transport TransportConfig `koanf:"transport" validate:"required"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// ServicesConfig contains configuration for downstream services.
type ServicesConfig struct {
	Quote      QuoteServiceConfig      `koanf:"quote"      validate:"required"`
	Submission SubmissionServiceConfig `koanf:"submission" validate:"required"`
}

// QuoteServiceConfig points at the quote API. Requests are made relative to BaseURL.
type QuoteServiceConfig struct {
	BaseURL string        `koanf:"base_url" validate:"required,url"`
	Name    string        `koanf:"name"     validate:"required"`
	Timeout time.Duration `koanf:"timeout"  validate:"required,min=100ms"`
}

// SubmissionServiceConfig points at the form submission endpoint.
// A zero Timeout leaves the submission unbounded.
type SubmissionServiceConfig struct {
	URL     string        `koanf:"url"     validate:"required,url"`
	Name    string        `koanf:"name"    validate:"required"`
	Timeout time.Duration `koanf:"timeout" validate:"min=0"`
}

// GalleryConfig is the fixed query the gallery sends to the quote API.
type GalleryConfig struct {
	Count     int    `koanf:"count"     validate:"required,min=1,max=100"`
	Character string `koanf:"character" validate:"required"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quote-gallery",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/quote-gallery.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quote-gallery",
		"telemetry.sampling_rate": 1.0,

		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",

		"services.quote.base_url": DefaultQuoteBaseURL,
		"services.quote.name":     "quote-api",
		"services.quote.timeout":  DefaultQuoteTimeout.String(),

		"services.submission.url":     DefaultSubmissionURL,
		"services.submission.name":    "submission-api",
		"services.submission.timeout": "0s",

		"gallery.count":     DefaultGalleryCount,
		"gallery.character": DefaultGalleryCharacter,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix, "__" separates nesting levels)
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
func Load(profile string) (*Config, error) {
	return LoadFrom("configs", profile)
}

// LoadFrom is Load with an explicit config directory.
func LoadFrom(dir, profile string) (*Config, error) {
	k := koanf.New(".")

	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	err = loadFileIfExists(k, dir+"/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	if profile != "" {
		err := loadFileIfExists(k, fmt.Sprintf("%s/%s.yaml", dir, profile))
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	err = k.Load(env.Provider("APP_", ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey maps APP_SERVICES__QUOTE__BASE_URL to services.quote.base_url.
// A single underscore is kept so that snake_case keys stay addressable;
// keys without "__" fall back to treating every underscore as a separator.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "APP_"))
	if strings.Contains(s, "__") {
		return strings.ReplaceAll(s, "__", ".")
	}

	return strings.ReplaceAll(s, "_", ".")
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
