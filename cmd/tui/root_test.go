package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-gallery/internal/platform/config"
)

func TestRootCmd_RefusesWithoutTerminal(t *testing.T) {
	cmd := newRootCmd(func() bool { return false })
	cmd.SetArgs([]string{"--profile", "test"})
	cmd.SetOut(&discard{})
	cmd.SetErr(&discard{})

	err := cmd.Execute()
	require.ErrorIs(t, err, errNoTerminal)
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd(func() bool { return false })

	for _, name := range []string{"profile", "host", "log-file"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestApplyOptions(t *testing.T) {
	t.Run("host and log file", func(t *testing.T) {
		cfg := &config.Config{}
		applyOptions(cfg, options{host: "http://localhost:9000", logFile: "/tmp/tui.log"})

		assert.Equal(t, "http://localhost:9000", cfg.Services.Quote.BaseURL)
		assert.True(t, cfg.Log.File.Enabled)
		assert.Equal(t, "/tmp/tui.log", cfg.Log.File.Path)
	})

	t.Run("no log file disables the file sink", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Services.Quote.BaseURL = "https://quotes.example"
		cfg.Log.File.Enabled = true

		applyOptions(cfg, options{})

		assert.Equal(t, "https://quotes.example", cfg.Services.Quote.BaseURL)
		assert.False(t, cfg.Log.File.Enabled)
	})
}

func TestLoadConfig_RejectsBadHost(t *testing.T) {
	_, err := loadConfig(options{profile: "test", host: "https://quotes.example/with/path"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
