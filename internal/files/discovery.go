package files

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"skpg/internal/config"
	apperrors "skpg/internal/errors"
)

// workbookPattern matches the survey office delivery naming scheme,
// e.g. "Data SKPG 2024.xlsx". Lock files ("~$Data SKPG 2024.xlsx") and
// draft copies do not match because the pattern is anchored.
var workbookPattern = regexp.MustCompile(config.WorkbookPattern)

// CacheState describes a parquet cache relative to its source workbook.
type CacheState string

const (
	CacheFresh   CacheState = "fresh"
	CacheStale   CacheState = "stale"
	CacheMissing CacheState = "missing"
)

// SourceFile pairs one survey year's workbook with its parquet cache.
type SourceFile struct {
	Year         int
	WorkbookPath string
	ParquetPath  string
	WorkbookMod  time.Time
	WorkbookSize int64
	ParquetMod   time.Time
	ParquetSize  int64
	HasParquet   bool
}

// CacheState reports whether the parquet cache can be read as-is.
func (s SourceFile) CacheState() CacheState {
	switch {
	case !s.HasParquet:
		return CacheMissing
	case s.ParquetMod.Before(s.WorkbookMod):
		return CacheStale
	default:
		return CacheFresh
	}
}

// CacheStale reports whether the workbook must be converted again before
// its parquet cache is used.
func (s SourceFile) CacheStale() bool {
	return s.CacheState() != CacheFresh
}

// Discovery locates survey workbooks and their caches in the data directory.
type Discovery struct {
	dataDir string
}

// NewDiscovery creates a discovery instance rooted at the data directory.
func NewDiscovery(dataDir string) *Discovery {
	return &Discovery{dataDir: dataDir}
}

// DataDir returns the directory being scanned.
func (d *Discovery) DataDir() string {
	return d.dataDir
}

// FindYearFiles scans the data directory for year workbooks. Results are
// sorted by ascending year so loads stack years in a stable order.
func (d *Discovery) FindYearFiles() ([]SourceFile, error) {
	entries, err := os.ReadDir(d.dataDir)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to scan data directory", err).
			WithContext("dir", d.dataDir)
	}

	var sources []SourceFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		match := workbookPattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		year, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		src := SourceFile{
			Year:         year,
			WorkbookPath: filepath.Join(d.dataDir, entry.Name()),
			WorkbookMod:  info.ModTime(),
			WorkbookSize: info.Size(),
		}
		src.ParquetPath = config.ParquetPathFor(src.WorkbookPath)

		if pinfo, err := os.Stat(src.ParquetPath); err == nil && !pinfo.IsDir() {
			src.HasParquet = true
			src.ParquetMod = pinfo.ModTime()
			src.ParquetSize = pinfo.Size()
		}

		sources = append(sources, src)
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Year < sources[j].Year
	})

	return sources, nil
}

// FindYear returns the source for a single survey year.
func (d *Discovery) FindYear(year int) (SourceFile, error) {
	sources, err := d.FindYearFiles()
	if err != nil {
		return SourceFile{}, err
	}
	for _, src := range sources {
		if src.Year == year {
			return src, nil
		}
	}
	return SourceFile{}, apperrors.NewNotFoundError("survey year " + strconv.Itoa(year))
}

// Years lists the years of the given sources in descending order, matching
// how the dashboard presents year filters.
func Years(sources []SourceFile) []int {
	years := make([]int, 0, len(sources))
	for _, src := range sources {
		years = append(years, src.Year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
