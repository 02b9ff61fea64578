package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"skpg/internal/codes"
	"skpg/internal/config"
	"skpg/internal/dataset"
	"skpg/internal/files"
	"skpg/internal/infrastructure"
)

func main() {
	dataDir := flag.String("data", "", "directory containing SKPG workbooks (defaults to data relative to executable)")
	full := flag.Bool("full", false, "reconvert every workbook even when its parquet cache is fresh")
	flag.Parse()

	// Initialize paths first to get default directories
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	if *dataDir == "" {
		*dataDir = paths.DataDir
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("processor.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	logger.Info("Starting SKPG workbook processing",
		slog.String("data_dir", *dataDir),
		slog.Bool("full_rework", *full),
		slog.String("executable_dir", paths.ExecutableDir))

	discovery := files.NewDiscovery(*dataDir)
	sources, err := discovery.FindYearFiles()
	if err != nil {
		logger.Error("Failed to scan data directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Found %d survey workbooks\n", len(sources))
	if len(sources) == 0 {
		logger.Error("No survey workbooks found",
			slog.String("data_dir", *dataDir),
			slog.String("pattern", config.WorkbookPattern))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Dataset.LoadTimeout)
	defer cancel()

	converter, err := dataset.NewConverter(cfg.Dataset.SheetName, logger)
	if err != nil {
		logger.Warn("Parquet conversion unavailable, reading workbooks directly",
			slog.String("error", err.Error()))
	} else {
		defer converter.Close()
		convertWorkbooks(ctx, converter, sources, *full, logger)
	}

	var parquet dataset.ParquetSource
	if converter != nil {
		parquet = converter
	}
	loader := dataset.NewLoader(discovery, parquet, dataset.NewExcelReader(cfg.Dataset.SheetName, logger), codes.NewNormalizer(), dataset.LoaderConfig{
		Concurrency:  cfg.Dataset.LoadConcurrency,
		CacheEnabled: cfg.Dataset.CacheEnabled,
	}, logger)

	snapshot, err := loader.Load(ctx)
	if err != nil {
		logger.Error("No usable survey data", slog.String("error", err.Error()))
		os.Exit(1)
	}

	writeSummary(os.Stdout, snapshot)

	logger.Info("Processing finished",
		slog.String("snapshot_id", snapshot.ID),
		slog.Int("years", len(snapshot.Years)),
		slog.Int("rows", snapshot.Table.RowCount()))
}

// convertWorkbooks refreshes the parquet cache ahead of the load. Failures
// are logged and left for the loader's workbook fallback.
func convertWorkbooks(ctx context.Context, parquet dataset.ParquetSource, sources []files.SourceFile, full bool, logger *slog.Logger) {
	for i, src := range sources {
		if !full && !src.CacheStale() {
			fmt.Printf("Workbook %d of %d: %s (cache fresh)\n", i+1, len(sources), filepath.Base(src.WorkbookPath))
			continue
		}

		fmt.Printf("Converting workbook %d of %d: %s\n", i+1, len(sources), filepath.Base(src.WorkbookPath))
		if err := parquet.Convert(ctx, src.WorkbookPath, src.ParquetPath); err != nil {
			logger.Warn("Conversion failed",
				slog.Int("year", src.Year),
				slog.String("workbook", src.WorkbookPath),
				slog.String("error", err.Error()))
		}
	}
}

func writeSummary(w io.Writer, snap *dataset.Snapshot) {
	fmt.Fprintln(w, "\nYear  Source    Rows  Path")
	for _, src := range snap.Sources {
		fmt.Fprintf(w, "%d  %-8s %5d  %s\n", src.Year, src.Kind, src.Rows, filepath.Base(src.Path))
	}
	fmt.Fprintf(w, "\nProcessing complete: %d years, %d rows, %d columns\n",
		len(snap.Years), snap.Table.RowCount(), len(snap.Table.Columns()))
}
