//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/jsamuelsen/quote-gallery/internal/adapters/http"
	"github.com/jsamuelsen/quote-gallery/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-gallery/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-gallery/internal/bootstrap"
	"github.com/jsamuelsen/quote-gallery/internal/platform/config"
)

// startStack runs the real server on a free port against a fake quote API
// that answers after delay. It returns the base URL and the fetch counter.
func startStack(t *testing.T, delay time.Duration) (string, *atomic.Int32) {
	t.Helper()

	var fetches atomic.Int32

	quotes := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("count") != "1" {
			fetches.Add(1)
		}

		time.Sleep(delay)

		out := make([]map[string]string, 15)
		for i := range out {
			out[i] = map[string]string{"quote": fmt.Sprintf("Live quote %02d", i), "character": "Homer Simpson"}
		}

		_ = json.NewEncoder(w).Encode(out)
	}))
	t.Cleanup(quotes.Close)

	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(sink.Close)

	cfg, err := config.LoadFrom(t.TempDir(), "test")
	require.NoError(t, err)

	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Services.Quote.BaseURL = quotes.URL
	cfg.Services.Submission.URL = sink.URL + "/v1/testsimpsons"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	components, err := bootstrap.Build(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(components.Close)

	server := httpadapter.New(&cfg.Server, logger)
	httpadapter.SetupRouter(server.Engine(), httpadapter.RouterConfig{
		Logger:        logger,
		ServiceName:   cfg.App.Name,
		Title:         "Integration",
		Gallery:       components.Gallery,
		HealthHandler: handlers.NewHealthHandler(components.Health, handlers.NewBuildInfo(cfg.App.Name, "it", "", "")),
		Timeout:       5 * time.Second,
	})

	_, err = server.Start()
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	})

	return "http://" + server.Addr(), &fetches
}

func TestGallery_ConcurrentFirstVisitsShareOneFetch(t *testing.T) {
	baseURL, fetches := startStack(t, 100*time.Millisecond)

	const visitors = 10

	var wg sync.WaitGroup

	bodies := make([]string, visitors)
	for i := range visitors {
		wg.Add(1)

		go func() {
			defer wg.Done()

			resp, err := http.Get(baseURL + "/")
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()

			b, _ := io.ReadAll(resp.Body)
			bodies[i] = string(b)
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), fetches.Load())

	for _, body := range bodies {
		assert.Contains(t, body, "Live quote 14")
	}
}

func TestGallery_APIRoundTrip(t *testing.T) {
	baseURL, _ := startStack(t, 0)

	resp, err := http.Post(baseURL+"/api/v1/selection", "application/json", strings.NewReader(`{"index":0}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "nothing is loaded yet")

	resp, err = http.Get(baseURL + "/api/v1/quotes")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(baseURL+"/api/v1/selection", "application/json", strings.NewReader(`{"index":3}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(baseURL+"/api/v1/submissions", "application/json", strings.NewReader(`{"age":"39"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var alert dto.AlertResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&alert))
	assert.True(t, alert.Success)
	assert.Equal(t, "Data submitted successfully: ok", alert.Message)
}
