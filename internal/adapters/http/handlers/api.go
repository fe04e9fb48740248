package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-gallery/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-gallery/internal/app"
)

// APIHandler exposes the gallery controller as JSON under /api/v1.
type APIHandler struct {
	gallery *app.Gallery
}

// NewAPIHandler creates the API handler.
func NewAPIHandler(gallery *app.Gallery) *APIHandler {
	return &APIHandler{gallery: gallery}
}

// Register mounts the API routes on rg.
func (h *APIHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/quotes", h.Quotes)
	rg.GET("/state", h.State)
	rg.POST("/selection", h.Select)
	rg.DELETE("/selection", h.Close)
	rg.POST("/submissions", h.Submit)
}

// Quotes handles GET /api/v1/quotes, loading the records first if needed.
func (h *APIHandler) Quotes(c *gin.Context) {
	vs := h.gallery.Load(c.Request.Context())

	c.JSON(http.StatusOK, dto.NewQuotesResponse(vs.Records))
}

// State handles GET /api/v1/state.
func (h *APIHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewStateResponse(h.gallery.Snapshot()))
}

// Select handles POST /api/v1/selection.
func (h *APIHandler) Select(c *gin.Context) {
	var req dto.SelectionRequest

	err := dto.BindAndValidate(c, &req)
	if err != nil {
		if errors.Is(err, dto.ErrValidation) {
			dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))
			return
		}

		dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "request body must be {\"index\": <int>}")

		return
	}

	vs, err := h.gallery.Select(*req.Index)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStateResponse(vs))
}

// Close handles DELETE /api/v1/selection.
func (h *APIHandler) Close(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewStateResponse(h.gallery.Close()))
}

// Submit handles POST /api/v1/submissions. Upstream failures still answer
// 200; the alert's success flag carries the outcome.
func (h *APIHandler) Submit(c *gin.Context) {
	var req dto.SubmissionRequest

	err := c.ShouldBindJSON(&req)
	if err != nil {
		dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "request body must be {\"age\": <value>}")
		return
	}

	alert, err := h.gallery.Submit(c.Request.Context(), req.Form())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAlertResponse(alert))
}
