package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-gallery/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-gallery/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-gallery/internal/app"
	"github.com/jsamuelsen/quote-gallery/internal/platform/telemetry"
)

// DefaultRequestTimeout bounds JSON API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains everything SetupRouter wires together.
type RouterConfig struct {
	Logger        *slog.Logger
	ServiceName   string
	Title         string
	Gallery       *app.Gallery
	HealthHandler *handlers.HealthHandler

	// Timeout bounds /api/v1 requests. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures middleware and routes on the engine.
// Middleware runs in this order:
//  1. Context logger (so recovery logs carry the service attributes)
//  2. Recovery
//  3. Request ID
//  4. Correlation ID
//  5. OpenTelemetry tracing and metrics
//  6. Request logging (skips /-/)
//  7. Timeout, on /api/v1 only
//
// Routes:
//   - / and its form posts: the server-rendered gallery
//   - /api/v1: the JSON API over the same gallery state
//   - /-/: ops endpoints
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.ContextLogger(cfg.Logger),
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.Logging("/favicon.ico"))

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.Register(engine)
	}

	handlers.NewPageHandler(cfg.Gallery, cfg.Title).Register(engine)

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	handlers.NewAPIHandler(cfg.Gallery).Register(apiV1)
}
