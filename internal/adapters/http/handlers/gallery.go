package handlers

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-gallery/internal/app"
	"github.com/jsamuelsen/quote-gallery/internal/domain"
	"github.com/jsamuelsen/quote-gallery/internal/platform/logging"
)

//go:embed templates/gallery.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/gallery.html"))

// pageData is what the gallery template renders.
type pageData struct {
	Title      string
	State      app.ViewState
	Age        string
	FieldError string
	Alert      string
}

// PageHandler renders the gallery as server-side HTML. Every state change is
// a POST followed by a redirect back to the page.
type PageHandler struct {
	gallery *app.Gallery
	title   string

	// The page serves a single viewer, so one pending alert is enough.
	mu    sync.Mutex
	alert string
}

// NewPageHandler creates the page handler.
func NewPageHandler(gallery *app.Gallery, title string) *PageHandler {
	return &PageHandler{gallery: gallery, title: title}
}

// Register mounts the page routes.
func (h *PageHandler) Register(engine *gin.Engine) {
	engine.GET("/", h.Page)
	engine.POST("/select/:index", h.Select)
	engine.POST("/close", h.Close)
	engine.POST("/submit", h.Submit)
}

// Page loads the quotes on the first visit and renders the gallery. A
// pending submission alert is rendered once and then dropped.
func (h *PageHandler) Page(c *gin.Context) {
	vs := h.gallery.Load(c.Request.Context())

	h.render(c, http.StatusOK, pageData{State: vs, Alert: h.takeAlert()})
}

// Select opens the modal for the record at the :index path parameter.
func (h *PageHandler) Select(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.render(c, http.StatusNotFound, pageData{State: h.gallery.Snapshot()})
		return
	}

	vs, err := h.gallery.Select(index)
	if domain.IsNotFound(err) {
		h.render(c, http.StatusNotFound, pageData{State: vs})
		return
	}

	// A conflict (not loaded yet, submission running) just shows the current page.
	c.Redirect(http.StatusSeeOther, "/")
}

// Close closes the modal.
func (h *PageHandler) Close(c *gin.Context) {
	h.gallery.Close()
	c.Redirect(http.StatusSeeOther, "/")
}

// Submit posts the age form. Invalid input re-renders the open modal with the
// message under the field; anything else leaves an alert for the next page view.
func (h *PageHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	// A body that does not parse leaves the age blank; the form rules then
	// report it as missing.
	var form app.AgeForm
	if err := c.ShouldBind(&form); err != nil {
		logging.FromContext(ctx).DebugContext(ctx, "binding age form", slog.Any("error", err))
	}

	alert, err := h.gallery.Submit(ctx, form)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			h.render(c, http.StatusUnprocessableEntity, pageData{
				State:      h.gallery.Snapshot(),
				Age:        form.Age,
				FieldError: ve.Message,
			})

			return
		}

		logging.FromContext(ctx).DebugContext(ctx, "submit ignored", slog.Any("error", err))
		c.Redirect(http.StatusSeeOther, "/")

		return
	}

	h.setAlert(alert.Message)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) render(c *gin.Context, status int, data pageData) {
	data.Title = h.title

	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")

	if err := pageTemplate.Execute(c.Writer, data); err != nil {
		ctx := c.Request.Context()
		logging.FromContext(ctx).ErrorContext(ctx, "rendering gallery page", slog.Any("error", err))
	}
}

func (h *PageHandler) setAlert(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.alert = msg
}

func (h *PageHandler) takeAlert() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg := h.alert
	h.alert = ""

	return msg
}
