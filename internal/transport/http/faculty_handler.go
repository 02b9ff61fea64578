package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "skpg/internal/errors"
	"skpg/internal/services"
)

const defaultReasonsTop = 10

// FacultyHandler serves the per-faculty report endpoints.
type FacultyHandler struct {
	service      *services.FacultyService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewFacultyHandler creates a new faculty handler.
func NewFacultyHandler(service *services.FacultyService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *FacultyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FacultyHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "faculty")),
		errorHandler: errorHandler,
	}
}

// Routes returns the faculty routes.
func (h *FacultyHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/options", h.Options)
	r.Get("/summary", h.Summary)
	r.Get("/distributions", h.Distributions)
	r.Get("/reasons", h.Reasons)
	return r
}

// Options handles GET /api/faculty/options.
func (h *FacultyHandler) Options(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	opts, err := h.service.Options(r.Context(), sel)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, opts)
}

// Summary handles GET /api/faculty/summary.
func (h *FacultyHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), sel)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// Distributions handles GET /api/faculty/distributions.
func (h *FacultyHandler) Distributions(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	dists, err := h.service.Distributions(r.Context(), sel)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, dists)
}

// Reasons handles GET /api/faculty/reasons. The optional top parameter
// truncates the list; top=0 returns every reason.
func (h *FacultyHandler) Reasons(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	topN, err := parseTopN(r, defaultReasonsTop)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	reasons, err := h.service.Reasons(r.Context(), sel, topN)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"reasons": reasons,
		"count":   len(reasons),
	})
}
