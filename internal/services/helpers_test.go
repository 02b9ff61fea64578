package services

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"skpg/internal/codes"
	"skpg/internal/dataset"
	"skpg/internal/files"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
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

// newEmptyStore builds a store over an empty directory; nothing is loaded.
func newEmptyStore(t *testing.T) *dataset.Store {
	t.Helper()
	return storeOverDir(t, t.TempDir())
}

// newTestStore loads one 2023 workbook with the given data into a store.
func newTestStore(t *testing.T, header []string, records [][]string) *dataset.Store {
	t.Helper()

	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "Data SKPG 2023.xlsx"), "DATASET", header, records)

	store := storeOverDir(t, dir)
	_, err := store.Reload(context.Background())
	require.NoError(t, err)
	return store
}

func storeOverDir(t *testing.T, dir string) *dataset.Store {
	t.Helper()

	loader := dataset.NewLoader(
		files.NewDiscovery(dir),
		nil,
		dataset.NewExcelReader("DATASET", testLogger()),
		codes.NewNormalizer(),
		dataset.LoaderConfig{Concurrency: 2},
		testLogger(),
	)
	return dataset.NewStore(loader, testLogger())
}
