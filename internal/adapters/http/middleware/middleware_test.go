package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-gallery/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-gallery/internal/platform/logging"
)

const uuidV4Pattern = `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`

func init() {
	gin.SetMode(gin.TestMode)
}

// bufferLogger returns a JSON logger at trace level writing to buf.
func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: logging.LevelTrace}))
}

// logLines decodes every JSON line written to buf.
func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any

	dec := json.NewDecoder(buf)
	for dec.More() {
		var line map[string]any
		require.NoError(t, dec.Decode(&line))
		lines = append(lines, line)
	}

	return lines
}

func TestIDMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		middleware  gin.HandlerFunc
		header      string
		fromContext func(context.Context) string
	}{
		{
			name:        "request ID",
			middleware:  RequestID(),
			header:      HeaderRequestID,
			fromContext: RequestIDFromContext,
		},
		{
			name:        "correlation ID",
			middleware:  CorrelationID(),
			header:      HeaderCorrelationID,
			fromContext: CorrelationIDFromContext,
		},
	}

	for _, tt := range tests {
		for _, incoming := range []string{"", "upstream-id-123"} {
			t.Run(tt.name+"/incoming="+incoming, func(t *testing.T) {
				t.Parallel()

				var ctxID string

				router := gin.New()
				router.Use(tt.middleware)
				router.GET("/test", func(c *gin.Context) {
					ctxID = tt.fromContext(c.Request.Context())
					c.Status(http.StatusOK)
				})

				w := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, "/test", nil)
				if incoming != "" {
					req.Header.Set(tt.header, incoming)
				}

				router.ServeHTTP(w, req)

				echoed := w.Header().Get(tt.header)

				assert.Equal(t, http.StatusOK, w.Code)
				assert.Equal(t, echoed, ctxID, "ID must reach the request context for outbound calls")

				if incoming != "" {
					assert.Equal(t, incoming, echoed)
				} else {
					assert.Regexp(t, uuidV4Pattern, echoed)
				}
			})
		}
	}
}

func TestIDMiddleware_EnrichesContextLogger(t *testing.T) {
	var buf bytes.Buffer

	router := gin.New()
	router.Use(ContextLogger(bufferLogger(&buf)), RequestID(), CorrelationID())
	router.GET("/test", func(c *gin.Context) {
		ctx := c.Request.Context()
		logging.FromContext(ctx).InfoContext(ctx, "handled")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	req.Header.Set(HeaderCorrelationID, "corr-1")

	router.ServeHTTP(httptest.NewRecorder(), req)

	lines := logLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "req-1", lines[0]["request_id"])
	assert.Equal(t, "corr-1", lines[0]["correlation_id"])
}

func TestGetIDFromContext(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, getIDFromContext(c, "missing"))

	c.Set("wrong_type", 42)
	assert.Empty(t, getIDFromContext(c, "wrong_type"))

	c.Set("present", "abc")
	assert.Equal(t, "abc", getIDFromContext(c, "present"))
}

func TestContextIDs_NotSet(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, RequestIDFromContext(ctx))
	assert.Empty(t, CorrelationIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(nil)) //nolint:staticcheck // nil guard
}

func TestContextIDs_StoredTogether(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "request-123")
	ctx = ContextWithCorrelationID(ctx, "correlation-456")

	assert.Equal(t, "request-123", RequestIDFromContext(ctx))
	assert.Equal(t, "correlation-456", CorrelationIDFromContext(ctx))
}

func TestLogging(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		status    int
		skip      []string
		wantLevel string
		wantPath  string
	}{
		{name: "success at info", path: "/", status: http.StatusOK, wantLevel: "INFO", wantPath: "/"},
		{name: "query string kept", path: "/api/v1/quotes?x=1", status: http.StatusOK, wantLevel: "INFO", wantPath: "/api/v1/quotes?x=1"},
		{name: "client error at warn", path: "/submit", status: http.StatusUnprocessableEntity, wantLevel: "WARN", wantPath: "/submit"},
		{name: "server error at error", path: "/boom", status: http.StatusInternalServerError, wantLevel: "ERROR", wantPath: "/boom"},
		{name: "ops paths skipped", path: "/-/live", status: http.StatusOK},
		{name: "explicit skip", path: "/favicon.ico", status: http.StatusNotFound, skip: []string{"/favicon.ico"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			router := gin.New()
			router.Use(ContextLogger(bufferLogger(&buf)), Logging(tt.skip...))
			route, _, _ := strings.Cut(tt.path, "?")
			router.GET(route, func(c *gin.Context) { c.Status(tt.status) })

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			lines := logLines(t, &buf)
			if tt.wantLevel == "" {
				assert.Empty(t, lines)
				return
			}

			require.Len(t, lines, 2, "trace start line plus completion line")
			assert.Equal(t, "request started", lines[0]["msg"])

			done := lines[1]
			assert.Equal(t, "request completed", done["msg"])
			assert.Equal(t, tt.wantLevel, done["level"])
			assert.Equal(t, tt.wantPath, done["path"])
			assert.InDelta(t, float64(tt.status), done["status"], 0)
		})
	}
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	newRouter := func() *gin.Engine {
		router := gin.New()
		router.Use(RequestID(), Recovery())
		router.GET("/api/v1/state", func(*gin.Context) { panic("api exploded") })
		router.GET("/", func(*gin.Context) { panic("page exploded") })
		router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

		return router
	}

	t.Run("normal request passes through", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("api panic returns JSON envelope", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrorCodeInternal, resp.Error.Code)
	})

	t.Run("page panic returns HTML", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "Something went wrong")
		assert.Contains(t, w.Body.String(), "Reference: "+w.Header().Get(HeaderRequestID))
	})

	t.Run("page panic escapes the request ID", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "<b>id</b>")
		newRouter().ServeHTTP(w, req)

		assert.Contains(t, w.Body.String(), "Reference: &lt;b&gt;id&lt;/b&gt;")
		assert.NotContains(t, w.Body.String(), "<b>id</b>")
	})
}

func TestTimeout_SetsContextDeadline(t *testing.T) {
	t.Parallel()

	var deadline time.Time
	var hasDeadline bool

	router := gin.New()
	router.Use(Timeout(5 * time.Second))
	router.GET("/test", func(c *gin.Context) {
		deadline, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
}
