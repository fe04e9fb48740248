package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

var (
	jwtPattern    = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)
	schemePattern = regexp.MustCompile(`(?i)^(bearer|basic)\s+.+$`)
)

// sensitiveFields are attribute keys whose values never reach a log sink.
// The gallery handles no credentials itself, but outbound request and
// response headers are logged at trace level and may carry them.
var sensitiveFields = []string{
	"password",
	"secret",
	"token",
	"apiKey",
	"apikey",
	"api_key",
	"access_token",
	"refresh_token",
	"credentials",
	"authorization",
	"auth",
	"cookie",
	"set-cookie",
	"session",
	"private_key",
}

// DefaultRedactOptions returns the masq options used by every handler New builds.
func DefaultRedactOptions() []masq.Option {
	opts := make([]masq.Option, 0, len(sensitiveFields)+4)
	for _, f := range sensitiveFields {
		opts = append(opts, masq.WithFieldName(f))
	}

	return append(opts,
		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),
		masq.WithRegex(jwtPattern),
		masq.WithRegex(schemePattern),
	)
}

// NewReplaceAttr returns a slog ReplaceAttr that redacts sensitive values.
// Extra options extend DefaultRedactOptions.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), opts...)...)
}
