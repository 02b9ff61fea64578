package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "skpg/internal/errors"
	"skpg/internal/infrastructure"
	"skpg/internal/services"
)

// DatasetHandler exposes snapshot state and the reload trigger.
type DatasetHandler struct {
	service *services.DatasetService
	logger  *slog.Logger
	metrics *infrastructure.BusinessMetrics
}

// NewDatasetHandler creates a new dataset handler. Metrics may be nil
// when telemetry is disabled.
func NewDatasetHandler(service *services.DatasetService, logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *DatasetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "dataset")),
		metrics: metrics,
	}
}

// Routes returns the dataset routes.
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/", h.Status)
	r.Post("/reload", h.Reload)
	return r
}

// Status handles GET /api/dataset.
func (h *DatasetHandler) Status(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Status(r.Context()))
}

// Reload handles POST /api/dataset/reload.
func (h *DatasetHandler) Reload(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "dataset reload requested",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("remote_addr", r.RemoteAddr))

	start := time.Now()
	status, err := h.service.Reload(r.Context())

	rows := 0
	if err == nil && status.Snapshot != nil {
		rows = status.Snapshot.Rows
	}
	infrastructure.RecordDatasetLoad(r.Context(), h.metrics, rows, time.Since(start), err)

	if err != nil {
		h.renderReloadError(w, r, err)
		return
	}

	infrastructure.RecordReloadBroadcast(r.Context(), h.metrics, h.service.ConnectedClients())
	render.JSON(w, r, status)
}

// renderReloadError maps reload failures onto problem documents. The
// concurrent-reload sentinel becomes a 409 so callers can retry.
func (h *DatasetHandler) renderReloadError(w http.ResponseWriter, r *http.Request, err error) {
	traceID := infrastructure.GetTraceID(r.Context())
	if traceID == "" {
		traceID = middleware.GetReqID(r.Context())
	}

	infrastructure.RecordError(r.Context(), err)
	h.logger.ErrorContext(r.Context(), "dataset reload failed",
		slog.String("error", err.Error()),
		slog.String("trace_id", traceID))

	render.Render(w, r, apierrors.MapDatasetError(err, traceID))
}
