// Package handlers provides the gin handlers for the gallery page, its JSON
// API and the /-/ ops endpoints.
package handlers

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsamuelsen/quote-gallery/internal/ports"
)

// BuildInfo is injected at build time through ldflags.
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

// NewBuildInfo creates a BuildInfo with the Go version filled in.
func NewBuildInfo(service, version, commit, buildTime string) BuildInfo {
	return BuildInfo{
		Service:   service,
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// HealthHandler serves the /-/ endpoints.
type HealthHandler struct {
	registry  ports.HealthRegistry
	buildInfo BuildInfo
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(registry ports.HealthRegistry, buildInfo BuildInfo) *HealthHandler {
	return &HealthHandler{
		registry:  registry,
		buildInfo: buildInfo,
	}
}

type livenessResponse struct {
	Status string `json:"status"`
}

// Liveness answers 200 while the process is up. It checks nothing else.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, livenessResponse{Status: "ok"})
}

type readinessResponse struct {
	Status string                        `json:"status"`
	Checks map[string]*ports.CheckResult `json:"checks,omitempty"`
}

// Readiness runs the registered checks and answers 503 if any fails. The
// gallery keeps serving fallback quotes when the quote API is down, so an
// unhealthy result means degraded content rather than a broken page.
func (h *HealthHandler) Readiness(c *gin.Context) {
	result := h.registry.CheckAll(c.Request.Context())

	status := http.StatusOK
	if result.Status == ports.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, readinessResponse{
		Status: string(result.Status),
		Checks: result.Checks,
	})
}

// Build serves the build information.
func (h *HealthHandler) Build(c *gin.Context) {
	c.JSON(http.StatusOK, h.buildInfo)
}

// MetricsHandler exposes the default Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// Register mounts the ops routes under /-/.
func (h *HealthHandler) Register(engine *gin.Engine) {
	ops := engine.Group("/-")
	ops.GET("/live", h.Liveness)
	ops.GET("/ready", h.Readiness)
	ops.GET("/build", h.Build)
	ops.GET("/metrics", gin.WrapH(MetricsHandler()))
}
