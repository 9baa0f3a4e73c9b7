package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gocloud.dev/blob"

	"github.com/mr1hm/go-evacuation-tracker/internal/assets"
	"github.com/mr1hm/go-evacuation-tracker/internal/dashboard"
	"github.com/mr1hm/go-evacuation-tracker/internal/models"
	"github.com/mr1hm/go-evacuation-tracker/internal/registry"
)

// PhotoOpener serves stored photo assets.
type PhotoOpener interface {
	Open(ctx context.Context, ref string) (*blob.Reader, error)
}

type Handler struct {
	registry  *registry.Registry
	dashboard *dashboard.Aggregator
	photos    PhotoOpener
	metrics   *Metrics
	gatherer  prometheus.Gatherer
	maxUpload int64
}

type Options struct {
	MaxUploadBytes int64
	Registry       *prometheus.Registry // nil disables /metrics
}

func NewHandler(reg *registry.Registry, agg *dashboard.Aggregator, photos PhotoOpener, opts Options) *Handler {
	h := &Handler{
		registry:  reg,
		dashboard: agg,
		photos:    photos,
		maxUpload: opts.MaxUploadBytes,
	}
	if h.maxUpload <= 0 {
		h.maxUpload = 10 << 20
	}
	if opts.Registry != nil {
		h.metrics = NewMetrics(opts.Registry)
		h.gatherer = opts.Registry
	}
	return h
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	if h.metrics != nil {
		r.Use(h.metrics.Middleware())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	}

	r.GET("/health", h.health)
	r.GET("/image/:name", h.getPhoto)

	api := r.Group("/api")
	api.GET("/dashboard", h.getDashboard)

	api.GET("/sites", h.listSites)
	api.GET("/sites/:id", h.getSite)
	api.POST("/sites", h.createSite)
	api.PUT("/sites/:id", h.updateSite)
	api.DELETE("/sites/:id", h.deleteSite)

	api.GET("/families", h.listFamilies)
	api.GET("/families/:id", h.getFamily)
	api.POST("/families", h.createFamily)
	api.PUT("/families/:id", h.updateFamily)
	api.DELETE("/families/:id", h.deleteFamily)

	api.GET("/reports", h.listReports)
	api.GET("/reports/:id", h.getReport)
	api.POST("/reports", h.createReport)
	api.PUT("/reports/:id", h.updateReport)
	api.DELETE("/reports/:id", h.deleteReport)
}

// Notice is the operation outcome shown to whoever submitted the request.
type Notice struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

type response struct {
	Notice
	Data any `json:"data,omitempty"`
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) getDashboard(c *gin.Context) {
	summary, err := h.dashboard.ComputeSummary(c.Request.Context())
	if err != nil {
		h.fail(c, err, "failed to compute dashboard")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) getPhoto(c *gin.Context) {
	r, err := h.photos.Open(c.Request.Context(), c.Param("name"))
	if errors.Is(err, assets.ErrNotFound) {
		c.JSON(http.StatusNotFound, Notice{OK: false, Message: "photo not found"})
		return
	}
	if err != nil {
		h.fail(c, err, "failed to open photo")
		return
	}
	defer r.Close()

	c.DataFromReader(http.StatusOK, r.Size(), r.ContentType(), r, nil)
}

func (h *Handler) ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, response{Notice: Notice{OK: true, Message: message}, Data: data})
}

// fail maps the error taxonomy onto HTTP status codes. Storage failures get
// a generic message; the cause is logged.
func (h *Handler) fail(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, Notice{OK: false, Message: "record not found"})
	case errors.Is(err, models.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, Notice{OK: false, Message: err.Error()})
	default:
		slog.Error(message, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, Notice{OK: false, Message: message})
	}
}

func (h *Handler) deleted(c *gin.Context, found bool, what string) {
	if !found {
		c.JSON(http.StatusNotFound, Notice{OK: false, Message: what + " not found"})
		return
	}
	c.JSON(http.StatusOK, Notice{OK: true, Message: what + " deleted successfully"})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, Notice{OK: false, Message: "invalid id"})
		return 0, false
	}
	return id, true
}
