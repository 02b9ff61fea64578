package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("test"), 0644))
}

func TestDiscovery_FindYearFiles(t *testing.T) {
	dir := t.TempDir()

	writeTestFile(t, filepath.Join(dir, "Data SKPG 2023.xlsx"))
	writeTestFile(t, filepath.Join(dir, "Data SKPG 2021.xlsx"))
	writeTestFile(t, filepath.Join(dir, "Data SKPG 2022.xlsx"))
	writeTestFile(t, filepath.Join(dir, "Data SKPG 2022.parquet"))

	// Files that must be ignored.
	writeTestFile(t, filepath.Join(dir, "notes.txt"))
	writeTestFile(t, filepath.Join(dir, "~$Data SKPG 2023.xlsx"))
	writeTestFile(t, filepath.Join(dir, "Data SKPG draft.xlsx"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0755))

	discovery := NewDiscovery(dir)
	sources, err := discovery.FindYearFiles()
	require.NoError(t, err)
	require.Len(t, sources, 3)

	assert.Equal(t, 2021, sources[0].Year)
	assert.Equal(t, 2022, sources[1].Year)
	assert.Equal(t, 2023, sources[2].Year)

	assert.False(t, sources[0].HasParquet)
	assert.True(t, sources[1].HasParquet)
	assert.Equal(t, filepath.Join(dir, "Data SKPG 2022.parquet"), sources[1].ParquetPath)
	assert.False(t, sources[2].HasParquet)

	for _, src := range sources {
		assert.False(t, src.WorkbookMod.IsZero())
		assert.Positive(t, src.WorkbookSize)
	}
}

func TestDiscovery_FindYearFiles_MissingDirectory(t *testing.T) {
	discovery := NewDiscovery(filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := discovery.FindYearFiles()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to scan data directory")
}

func TestDiscovery_FindYear(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "Data SKPG 2024.xlsx"))

	discovery := NewDiscovery(dir)

	src, err := discovery.FindYear(2024)
	require.NoError(t, err)
	assert.Equal(t, 2024, src.Year)

	_, err = discovery.FindYear(1999)
	require.Error(t, err)
}

func TestSourceFile_CacheState(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		source    SourceFile
		wantState CacheState
		wantStale bool
	}{
		{
			name:      "no parquet cache",
			source:    SourceFile{WorkbookMod: base},
			wantState: CacheMissing,
			wantStale: true,
		},
		{
			name: "parquet older than workbook",
			source: SourceFile{
				WorkbookMod: base,
				HasParquet:  true,
				ParquetMod:  base.Add(-time.Hour),
			},
			wantState: CacheStale,
			wantStale: true,
		},
		{
			name: "parquet newer than workbook",
			source: SourceFile{
				WorkbookMod: base,
				HasParquet:  true,
				ParquetMod:  base.Add(time.Hour),
			},
			wantState: CacheFresh,
			wantStale: false,
		},
		{
			name: "parquet same age as workbook",
			source: SourceFile{
				WorkbookMod: base,
				HasParquet:  true,
				ParquetMod:  base,
			},
			wantState: CacheFresh,
			wantStale: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantState, tt.source.CacheState())
			assert.Equal(t, tt.wantStale, tt.source.CacheStale())
		})
	}
}

func TestYears(t *testing.T) {
	sources := []SourceFile{
		{Year: 2021},
		{Year: 2022},
		{Year: 2024},
	}

	assert.Equal(t, []int{2024, 2022, 2021}, Years(sources))
	assert.Empty(t, Years(nil))
}
