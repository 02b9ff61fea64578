package dataset

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	apperrors "skpg/internal/errors"
	"skpg/internal/files"
	"skpg/internal/infrastructure"
)

// Normalizer augments a freshly loaded table, typically by attaching label
// columns next to their code columns.
type Normalizer interface {
	Apply(t *Table)
}

// ParquetSource converts workbooks to parquet caches and reads them back.
type ParquetSource interface {
	Convert(ctx context.Context, workbookPath, parquetPath string) error
	ReadParquet(ctx context.Context, path string) ([]string, [][]string, error)
}

// WorkbookSource reads survey workbooks directly.
type WorkbookSource interface {
	Read(ctx context.Context, path string) ([]string, [][]string, error)
}

// SourceKind identifies which reader produced a year's rows.
type SourceKind string

const (
	SourceParquet  SourceKind = "parquet"
	SourceWorkbook SourceKind = "workbook"
)

// SourceInfo records how one survey year entered a snapshot.
type SourceInfo struct {
	Year int        `json:"year"`
	Kind SourceKind `json:"kind"`
	Path string     `json:"path"`
	Rows int        `json:"rows"`
}

// Snapshot is one immutable load of the combined survey table. A snapshot is
// never mutated after publication; reloads produce a new one.
type Snapshot struct {
	ID       string
	Table    *Table
	LoadedAt time.Time
	Years    []int // descending
	Sources  []SourceInfo
}

// LoaderConfig controls how snapshots are assembled. Metrics may be nil
// when telemetry is disabled.
type LoaderConfig struct {
	Concurrency  int
	CacheEnabled bool
	Metrics      *infrastructure.BusinessMetrics
}

// Loader assembles the combined survey table from per-year sources. The
// parquet cache is preferred; workbooks are read directly when conversion
// is unavailable or fails. A year that cannot be read is skipped with a
// warning so one bad delivery does not take down the rest of the dataset.
type Loader struct {
	discovery  *files.Discovery
	parquet    ParquetSource
	workbook   WorkbookSource
	normalizer Normalizer
	cfg        LoaderConfig
	logger     *slog.Logger
}

// NewLoader wires a loader. parquet may be nil when DuckDB is unavailable;
// workbook and discovery are required.
func NewLoader(discovery *files.Discovery, parquet ParquetSource, workbook WorkbookSource, normalizer Normalizer, cfg LoaderConfig, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Loader{
		discovery:  discovery,
		parquet:    parquet,
		workbook:   workbook,
		normalizer: normalizer,
		cfg:        cfg,
		logger:     logger.With(slog.String("component", "dataset_loader")),
	}
}

// Load scans the data directory and builds a snapshot of all readable years.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	started := time.Now()

	sources, err := l.discovery.FindYearFiles()
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, apperrors.NewMissingDataError("no survey workbooks found in data directory", apperrors.ErrNoDataLoaded)
	}

	tables := make([]*Table, len(sources))
	infos := make([]SourceInfo, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.cfg.Concurrency)
	for i, src := range sources {
		g.Go(func() error {
			table, info, err := l.loadYear(gctx, src)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				l.logger.WarnContext(gctx, "skipping survey year",
					slog.Int("year", src.Year),
					slog.String("error", err.Error()))
				return nil
			}
			tables[i] = table
			infos[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		parts       []*Table
		sourceInfos []SourceInfo
		years       []int
	)
	for i := range tables {
		if tables[i] == nil {
			continue
		}
		parts = append(parts, tables[i])
		sourceInfos = append(sourceInfos, infos[i])
		years = append(years, sources[i].Year)
	}
	if len(parts) == 0 {
		return nil, apperrors.NewMissingDataError("no survey rows could be loaded", apperrors.ErrNoDataLoaded)
	}

	combined := Concat(parts...)
	if l.normalizer != nil {
		l.normalizer.Apply(combined)
	}

	// Years ascending from discovery; the snapshot presents them newest first.
	desc := make([]int, len(years))
	for i, y := range years {
		desc[len(years)-1-i] = y
	}

	snap := &Snapshot{
		ID:       uuid.New().String(),
		Table:    combined,
		LoadedAt: time.Now(),
		Years:    desc,
		Sources:  sourceInfos,
	}

	l.logger.InfoContext(ctx, "survey snapshot loaded",
		slog.String("snapshot_id", snap.ID),
		slog.Int("rows", combined.RowCount()),
		slog.Int("years", len(desc)),
		slog.Duration("duration", time.Since(started)))

	return snap, nil
}

func (l *Loader) loadYear(ctx context.Context, src files.SourceFile) (*Table, SourceInfo, error) {
	header, records, kind, path, err := l.readYear(ctx, src)
	if err != nil {
		return nil, SourceInfo{}, err
	}

	table := NewTable(header, records)
	if table.RowCount() == 0 {
		return nil, SourceInfo{}, apperrors.NewMissingDataError("workbook has no data rows", nil)
	}

	// The graduating year comes from the filename, not the sheet.
	yearValue := strconv.Itoa(src.Year)
	yearColumn := make([]string, table.RowCount())
	for i := range yearColumn {
		yearColumn[i] = yearValue
	}
	if err := table.AddColumn(ColYear, yearColumn); err != nil {
		return nil, SourceInfo{}, err
	}

	return table, SourceInfo{Year: src.Year, Kind: kind, Path: path, Rows: table.RowCount()}, nil
}

func (l *Loader) readYear(ctx context.Context, src files.SourceFile) ([]string, [][]string, SourceKind, string, error) {
	if l.cfg.CacheEnabled && l.parquet != nil {
		fresh := !src.CacheStale()
		if !fresh {
			convStart := time.Now()
			err := l.parquet.Convert(ctx, src.WorkbookPath, src.ParquetPath)
			infrastructure.RecordConversion(ctx, l.cfg.Metrics, src.Year, time.Since(convStart), err)
			if err != nil {
				l.logger.WarnContext(ctx, "parquet conversion failed, reading workbook directly",
					slog.Int("year", src.Year),
					slog.String("error", err.Error()))
			} else {
				fresh = true
			}
		}
		if fresh {
			header, records, err := l.parquet.ReadParquet(ctx, src.ParquetPath)
			if err == nil {
				return header, records, SourceParquet, src.ParquetPath, nil
			}
			l.logger.WarnContext(ctx, "parquet cache unreadable, reading workbook directly",
				slog.Int("year", src.Year),
				slog.String("error", err.Error()))
		}
	}

	header, records, err := l.workbook.Read(ctx, src.WorkbookPath)
	if err != nil {
		return nil, nil, "", "", err
	}
	return header, records, SourceWorkbook, src.WorkbookPath, nil
}
