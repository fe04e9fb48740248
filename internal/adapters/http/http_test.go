package http

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-gallery/internal/adapters/clients"
	"github.com/jsamuelsen/quote-gallery/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-gallery/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-gallery/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-gallery/internal/app"
	"github.com/jsamuelsen/quote-gallery/internal/domain"
	"github.com/jsamuelsen/quote-gallery/internal/platform/config"
	"github.com/jsamuelsen/quote-gallery/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            0,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		IdleTimeout:     10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		MaxRequestSize:  1024,
	}
}

func TestServer_New(t *testing.T) {
	srv := New(testServerConfig(), discardLogger())

	require.NotNil(t, srv)
	assert.NotNil(t, srv.Engine())
	assert.Equal(t, "127.0.0.1:0", srv.Addr())
}

func TestServer_StartShutdown(t *testing.T) {
	srv := New(testServerConfig(), discardLogger())
	srv.Engine().GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	errCh, err := srv.Start()
	require.NoError(t, err)
	assert.NotEqual(t, "127.0.0.1:0", srv.Addr(), "Addr reports the bound port once started")

	resp, err := http.Get("http://" + srv.Addr() + "/ping")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))

	_, open := <-errCh
	assert.False(t, open, "error channel closes after a clean shutdown")
}

func TestServer_StartBindFailure(t *testing.T) {
	first := New(testServerConfig(), discardLogger())
	_, err := first.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Shutdown(context.Background()) })

	cfg := testServerConfig()
	_, port, _ := strings.Cut(first.Addr(), ":")
	_, err = fmt.Sscanf(port, "%d", &cfg.Port)
	require.NoError(t, err)

	_, err = New(cfg, discardLogger()).Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening on")
}

func TestServer_MaxBodySize(t *testing.T) {
	srv := New(testServerConfig(), discardLogger())
	srv.Engine().POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}

		c.Status(http.StatusOK)
	})

	small := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("ok"))
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, small)
	assert.Equal(t, http.StatusOK, w.Code)

	large := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 2048)))
	w = httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, large)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

// upstreams fakes the quote API and the submission endpoint.
type upstreams struct {
	quotes      *httptest.Server
	submissions *httptest.Server
	failQuotes  atomic.Bool
	submitDelay atomic.Int64 // nanoseconds
	submitted   atomic.Value // string
}

func newUpstreams(t *testing.T, count int) *upstreams {
	t.Helper()

	u := &upstreams{}

	u.quotes = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u.failQuotes.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		n := count
		if r.URL.Query().Get("count") == "1" {
			n = 1
		}

		out := make([]map[string]string, n)
		for i := range out {
			out[i] = map[string]string{
				"quote":              fmt.Sprintf("Upstream quote %02d", i),
				"character":          "Homer Simpson",
				"image":              fmt.Sprintf("https://img.example/%d.png", i),
				"characterDirection": "Right",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}))
	t.Cleanup(u.quotes.Close)

	u.submissions = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Duration(u.submitDelay.Load()))

		body, _ := io.ReadAll(r.Body)
		u.submitted.Store(string(body))
		_, _ = w.Write([]byte("stored"))
	}))
	t.Cleanup(u.submissions.Close)

	return u
}

// newTestRouter wires the real clients, gallery and handlers against the fakes.
func newTestRouter(t *testing.T, u *upstreams) *gin.Engine {
	t.Helper()

	return newTestRouterWithTimeout(t, u, time.Second)
}

func newTestRouterWithTimeout(t *testing.T, u *upstreams, apiTimeout time.Duration) *gin.Engine {
	t.Helper()

	logger := discardLogger()

	quoteHTTP, err := clients.New(&clients.Config{
		BaseURL:     u.quotes.URL,
		ServiceName: "quote-api",
		Timeout:     time.Second,
		Logger:      logger,
	})
	require.NoError(t, err)
	t.Cleanup(quoteHTTP.CloseIdleConnections)

	submitHTTP, err := clients.New(&clients.Config{
		BaseURL:     u.submissions.URL + "/v1/testsimpsons",
		ServiceName: "submission-api",
		Logger:      logger,
	})
	require.NoError(t, err)
	t.Cleanup(submitHTTP.CloseIdleConnections)

	quoteClient := acl.NewQuoteClient(acl.QuoteClientConfig{Client: quoteHTTP, Logger: logger})

	gallery := app.NewGallery(app.GalleryConfig{
		Source: quoteClient,
		Sink:   acl.NewSubmissionClient(acl.SubmissionClientConfig{Client: submitHTTP, Logger: logger}),
		Query:  domain.QuoteQuery{Count: 15, Character: "ho"},
		Logger: logger,
	})

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(quoteClient))

	engine := gin.New()
	SetupRouter(engine, RouterConfig{
		Logger:        logger,
		ServiceName:   "quote-gallery",
		Title:         "Quote Gallery",
		Gallery:       gallery,
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("quote-gallery", "test", "abc", "now")),
		Timeout:       apiTimeout,
	})

	return engine
}

func serve(engine *gin.Engine, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	return w
}

func TestRouter_PageRendersFetchedQuotes(t *testing.T) {
	engine := newTestRouter(t, newUpstreams(t, 15))

	w := serve(engine, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	for i := range 15 {
		key := fmt.Sprintf("Upstream quote %02d", i)
		assert.Equal(t, 2, strings.Count(body, `data-key="`+key+`"`), "carousel and table both key %q", key)
	}

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_PageFallsBackWhenQuoteAPIFails(t *testing.T) {
	u := newUpstreams(t, 15)
	u.failQuotes.Store(true)
	engine := newTestRouter(t, u)

	w := serve(engine, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	for _, r := range domain.FallbackQuotes() {
		assert.Contains(t, body, `data-key="`+html.EscapeString(r.Key())+`"`)
	}

	assert.NotContains(t, body, "Upstream quote")

	ready := serve(engine, http.MethodGet, "/-/ready", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, ready.Code)
}

func TestRouter_SelectAndSubmitThroughPage(t *testing.T) {
	u := newUpstreams(t, 15)
	engine := newTestRouter(t, u)

	require.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/", nil, "").Code)

	w := serve(engine, http.MethodPost, "/select/2", nil, "")
	require.Equal(t, http.StatusSeeOther, w.Code)

	form := url.Values{"age": {"42"}}.Encode()
	w = serve(engine, http.MethodPost, "/submit", strings.NewReader(form), "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var sent domain.Submission
	require.NoError(t, json.Unmarshal([]byte(u.submitted.Load().(string)), &sent))
	assert.Equal(t, domain.Submission{Name: "Homer Simpson", Quote: "Upstream quote 02", Age: 42}, sent)

	page := serve(engine, http.MethodGet, "/", nil, "").Body.String()
	assert.Contains(t, page, "alert(")
	assert.Contains(t, page, "stored")
	assert.NotContains(t, page, `role="dialog"`)
}

func TestRouter_API(t *testing.T) {
	engine := newTestRouter(t, newUpstreams(t, 15))

	w := serve(engine, http.MethodGet, "/api/v1/quotes", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var quotes dto.QuotesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quotes))
	assert.Equal(t, 15, quotes.Count)

	w = serve(engine, http.MethodPost, "/api/v1/selection", strings.NewReader(`{"index":99}`), "application/json")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, dto.ErrorCodeNotFound, errResp.Error.Code)
}

func TestRouter_APISubmissionOutlivesRequestTimeout(t *testing.T) {
	u := newUpstreams(t, 15)
	u.submitDelay.Store(int64(150 * time.Millisecond))
	engine := newTestRouterWithTimeout(t, u, 50*time.Millisecond)

	require.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/quotes", nil, "").Code)
	require.Equal(t, http.StatusOK,
		serve(engine, http.MethodPost, "/api/v1/selection", strings.NewReader(`{"index":0}`), "application/json").Code)

	w := serve(engine, http.MethodPost, "/api/v1/submissions", strings.NewReader(`{"age":30}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	var alert dto.AlertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alert))
	assert.True(t, alert.Success, alert.Message)
	assert.Contains(t, alert.Message, "stored")
	assert.NotNil(t, u.submitted.Load())
}

func TestRouter_OpsEndpoints(t *testing.T) {
	engine := newTestRouter(t, newUpstreams(t, 15))

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/-/live", nil, "").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/-/ready", nil, "").Code)

	w := serve(engine, http.MethodGet, "/-/build", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"test"`)
}
