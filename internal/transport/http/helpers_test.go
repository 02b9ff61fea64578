package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"skpg/internal/codes"
	"skpg/internal/dataset"
	apierrors "skpg/internal/errors"
	"skpg/internal/files"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// surveyHeader carries every column the report endpoints touch.
var surveyHeader = []string{
	"e_fakulti", "e_status", "e_status_GE2024", "e_54", "e_statusPenyertaan",
	"e_44_kumpulan", "e_44_2", "e_45", "e_41_a", "e_43", "e_50_b",
	"e_peringkat", "e_program", "e_warganegara",
}

func surveyRecords() [][]string {
	return [][]string{
		{"Fakulti Sains", "1", "1", "-2", "1", "11", "RM4,500", "4", "2", "4", "1", "4", "Sains Data", "1"},
		{"Fakulti Sains", "5", "5", "5", "1", "-2", "-2", "-2", "-2", "-2", "-2", "4", "Sains Data", "1"},
		{"Fakulti Sains", "1", "1", "-2", "1", "4", "3,000", "9", "3", "4", "2", "5", "Fizik", "2"},
		{"Fakulti Kejuruteraan", "1", "-2", "-2", "2", "-2", "tiada", "4", "9", "4", "1", "4", "Kejuruteraan Awam", "1"},
	}
}

func writeWorkbook(t *testing.T, path, sheet string, header []string, records [][]string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	rows := append([][]string{header}, records...)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		require.NoError(t, f.SetSheetRow(sheet, cell, &values))
	}

	require.NoError(t, f.SaveAs(path))
}

func newStore(t *testing.T, loaded bool) *dataset.Store {
	t.Helper()

	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "Data SKPG 2023.xlsx"), "DATASET", surveyHeader, surveyRecords())

	loader := dataset.NewLoader(
		files.NewDiscovery(dir),
		nil,
		dataset.NewExcelReader("DATASET", testLogger()),
		codes.NewNormalizer(),
		dataset.LoaderConfig{Concurrency: 2},
		testLogger(),
	)
	store := dataset.NewStore(loader, testLogger())
	if loaded {
		_, err := store.Reload(context.Background())
		require.NoError(t, err)
	}
	return store
}

func newErrorHandler() *apierrors.ErrorHandler {
	return apierrors.NewErrorHandler(testLogger(), false)
}

// mount serves the handler's routes under prefix with request IDs attached,
// the way the application router does.
func mount(prefix string, routes chi.Router) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Mount(prefix, routes)
	return r
}

func doGET(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
