package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaths(t *testing.T) {
	paths, err := GetPaths()
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(paths.ExecutableDir))
	assert.Equal(t, filepath.Join(paths.ExecutableDir, "data"), paths.DataDir)
	assert.Equal(t, filepath.Join(paths.ExecutableDir, "web"), paths.WebDir)
	assert.Equal(t, filepath.Join(paths.ExecutableDir, "web", "static"), paths.StaticDir)
	assert.Equal(t, filepath.Join(paths.ExecutableDir, "logs"), paths.LogsDir)
}

func TestPaths_EnsureDirectories(t *testing.T) {
	base := t.TempDir()
	paths := &Paths{
		ExecutableDir: base,
		DataDir:       filepath.Join(base, "data"),
		WebDir:        filepath.Join(base, "web"),
		StaticDir:     filepath.Join(base, "web", "static"),
		LogsDir:       filepath.Join(base, "logs"),
	}

	require.NoError(t, paths.EnsureDirectories())

	for _, dir := range []string{paths.DataDir, paths.WebDir, paths.StaticDir, paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestPaths_WorkbookNaming(t *testing.T) {
	paths := &Paths{DataDir: filepath.Join("base", "data")}

	assert.Equal(t,
		filepath.Join("base", "data", "Data SKPG 2024.xlsx"),
		paths.WorkbookPath(2024))
	assert.Equal(t,
		filepath.Join("base", "data", "Data SKPG 2024.parquet"),
		paths.ParquetPath(2024))
}

func TestParquetPathFor(t *testing.T) {
	tests := []struct {
		name     string
		workbook string
		want     string
	}{
		{
			name:     "xlsx extension",
			workbook: filepath.Join("data", "Data SKPG 2023.xlsx"),
			want:     filepath.Join("data", "Data SKPG 2023.parquet"),
		},
		{
			name:     "no extension",
			workbook: filepath.Join("data", "workbook"),
			want:     filepath.Join("data", "workbook.parquet"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParquetPathFor(tt.workbook))
		})
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "present.txt")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0644))

	assert.True(t, FileExists(existing))
	assert.False(t, FileExists(filepath.Join(dir, "absent.txt")))
}

func TestPaths_GetRelativePath(t *testing.T) {
	paths := &Paths{ExecutableDir: filepath.Join("opt", "skpg")}
	assert.Equal(t, filepath.Join("opt", "skpg", "extra"), paths.GetRelativePath("extra"))
}
