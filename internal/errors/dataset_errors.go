package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// Dataset-specific errors (using errors package for sentinel errors)
var (
	ErrNoDataLoaded         = errors.New("no survey data loaded")
	ErrNoMatchingRows       = errors.New("no rows match the selected filters")
	ErrSheetNotFound        = errors.New("worksheet not found")
	ErrConverterUnavailable = errors.New("cache converter unavailable")
	ErrReloadInProgress     = errors.New("dataset reload already in progress")
)

// ProblemDetails implements RFC 7807 Problem Details for HTTP APIs
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Additional fields for extensibility
	Extensions map[string]interface{} `json:"-"`
}

// Render implements the render.Renderer interface
func (pd *ProblemDetails) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, pd.Status)
	return nil
}

// MarshalJSON custom marshaler to include extensions
func (pd *ProblemDetails) MarshalJSON() ([]byte, error) {
	data := make(map[string]interface{})

	// Add standard fields
	data["type"] = pd.Type
	data["title"] = pd.Title
	data["status"] = pd.Status

	if pd.Detail != "" {
		data["detail"] = pd.Detail
	}
	if pd.Instance != "" {
		data["instance"] = pd.Instance
	}

	// Add extensions
	for k, v := range pd.Extensions {
		data[k] = v
	}

	// Use standard JSON marshaling
	return json.Marshal(data)
}

// NewProblemDetails creates a new RFC 7807 compliant error
func NewProblemDetails(status int, problemType, title, detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:       problemType,
		Title:      title,
		Status:     status,
		Detail:     detail,
		Instance:   instance,
		Extensions: make(map[string]interface{}),
	}
}

// WithExtension adds an extension field to the problem details
func (pd *ProblemDetails) WithExtension(key string, value interface{}) *ProblemDetails {
	pd.Extensions[key] = value
	return pd
}

// MapDatasetError maps domain errors to HTTP problem details
func MapDatasetError(err error, traceID string) render.Renderer {
	instance := fmt.Sprintf("/api/dataset#trace-%s", traceID)

	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrTypeMissingData:
			return NewProblemDetails(
				http.StatusNotFound,
				TypeDataNotFound,
				"No Data Available",
				appErr.Message,
				instance,
			).WithExtension("trace_id", traceID).
				WithExtension("error_code", "MISSING_DATA")

		case ErrTypeSchema:
			problem := NewProblemDetails(
				http.StatusUnprocessableEntity,
				TypeSchemaMismatch,
				"Schema Mismatch",
				appErr.Message,
				instance,
			).WithExtension("trace_id", traceID).
				WithExtension("error_code", "SCHEMA_MISMATCH")
			if cols, ok := appErr.Context["columns"]; ok {
				problem.WithExtension("columns", cols)
			}
			return problem

		case ErrTypeValidation:
			return NewProblemDetails(
				http.StatusBadRequest,
				TypeValidation,
				"Validation Failed",
				appErr.Message,
				instance,
			).WithExtension("trace_id", traceID).
				WithExtension("error_code", "VALIDATION_FAILED")

		case ErrTypeNotFound:
			return NewProblemDetails(
				http.StatusNotFound,
				TypeNotFound,
				"Not Found",
				appErr.Message,
				instance,
			).WithExtension("trace_id", traceID).
				WithExtension("error_code", "NOT_FOUND")
		}
	}

	switch {
	case errors.Is(err, ErrNoDataLoaded):
		return NewProblemDetails(
			http.StatusNotFound,
			TypeDataNotFound,
			"No Data Available",
			"No survey workbooks have been loaded. Place Data SKPG <year>.xlsx files in the data directory and reload.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "NO_DATA_LOADED")

	case errors.Is(err, ErrNoMatchingRows):
		return NewProblemDetails(
			http.StatusNotFound,
			TypeDataEmpty,
			"Empty Selection",
			"No survey records match the selected filters.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "NO_MATCHING_ROWS")

	case errors.Is(err, ErrReloadInProgress):
		return NewProblemDetails(
			http.StatusConflict,
			TypeConflict,
			"Reload In Progress",
			"A dataset reload is already running. Try again once it completes.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "RELOAD_IN_PROGRESS")

	case errors.Is(err, ErrConverterUnavailable):
		return NewProblemDetails(
			http.StatusServiceUnavailable,
			TypeConversionFailed,
			"Converter Unavailable",
			"The parquet cache converter is unavailable. Workbooks are read directly.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "CONVERTER_UNAVAILABLE")

	default:
		return NewProblemDetails(
			http.StatusInternalServerError,
			TypeInternal,
			"Internal Server Error",
			"An unexpected error occurred while processing your request.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "INTERNAL_ERROR")
	}
}
