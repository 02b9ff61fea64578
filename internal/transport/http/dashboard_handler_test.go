package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skpg/internal/config"
	"skpg/internal/services"
)

func newDashboardRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := services.NewDashboardService(newStore(t, true), config.ResponseRateTarget, testLogger())
	h := NewDashboardHandler(svc, testLogger(), newErrorHandler())
	return mount("/api/dashboard", h.Routes())
}

func TestDashboardHandler_Overview(t *testing.T) {
	router := newDashboardRouter(t)

	rec := doGET(t, router, "/api/dashboard/overview")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, 4.0, body["graduates"])
	assert.Equal(t, 3.0, body["programs"])

	ge, ok := body["ge"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 75.0, ge["percent"])

	snap, ok := body["snapshot"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{2023.0}, snap["years"])
}

func TestDashboardHandler_OverviewFiltered(t *testing.T) {
	router := newDashboardRouter(t)

	rec := doGET(t, router, "/api/dashboard/overview?faculties=FK")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, 1.0, body["graduates"])
}

func TestDashboardHandler_InvalidSelection(t *testing.T) {
	router := newDashboardRouter(t)

	tests := []struct {
		name   string
		target string
	}{
		{name: "bad year", target: "/api/dashboard/overview?years=abc"},
		{name: "bad faculty", target: "/api/dashboard/skills?faculties=XX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGET(t, router, tt.target)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, "VALIDATION_FAILED", body["error_code"])
			assert.Equal(t, float64(http.StatusBadRequest), body["status"])
		})
	}
}

func TestDashboardHandler_EmptySelection(t *testing.T) {
	router := newDashboardRouter(t)

	rec := doGET(t, router, "/api/dashboard/overview?years=1999")

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(http.StatusNotFound), body["status"])
	assert.Contains(t, body, "trace_id")
}

func TestDashboardHandler_NoDataLoaded(t *testing.T) {
	svc := services.NewDashboardService(newStore(t, false), config.ResponseRateTarget, testLogger())
	h := NewDashboardHandler(svc, testLogger(), newErrorHandler())
	router := mount("/api/dashboard", h.Routes())

	rec := doGET(t, router, "/api/dashboard/overview")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardHandler_Reports(t *testing.T) {
	router := newDashboardRouter(t)

	tests := []struct {
		name     string
		target   string
		wantKeys []string
	}{
		{
			name:     "faculties",
			target:   "/api/dashboard/faculties",
			wantKeys: []string{"snapshot", "rates", "responses", "categories"},
		},
		{
			name:     "salary bands",
			target:   "/api/dashboard/salary-bands",
			wantKeys: []string{"snapshot", "overall", "by_level"},
		},
		{
			name:     "skills",
			target:   "/api/dashboard/skills",
			wantKeys: []string{"snapshot", "bands", "by_faculty", "works_in_field", "works_in_field_by_faculty"},
		},
		{
			name:     "status",
			target:   "/api/dashboard/status",
			wantKeys: []string{"snapshot", "by_label", "by_code", "study_levels", "reasons"},
		},
		{
			name:     "annual",
			target:   "/api/dashboard/annual",
			wantKeys: []string{"snapshot", "rows", "gm_pivot"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGET(t, router, tt.target)

			require.Equal(t, http.StatusOK, rec.Code)
			body := decodeBody(t, rec)
			for _, key := range tt.wantKeys {
				assert.Contains(t, body, key)
			}
		})
	}
}

func TestDashboardHandler_AnnualIgnoresSelection(t *testing.T) {
	router := newDashboardRouter(t)

	// The trend spans the whole dataset even when a filter is passed.
	rec := doGET(t, router, "/api/dashboard/annual?years=1999")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	rows, ok := body["rows"].([]interface{})
	require.True(t, ok)
	assert.Len(t, rows, 1)
}
