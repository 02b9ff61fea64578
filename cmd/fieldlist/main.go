package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"

	"skpg/internal/config"
	"skpg/internal/dataset"
	"skpg/internal/files"
	"skpg/internal/infrastructure"
)

func main() {
	year := flag.Int("year", 0, "survey year to inspect (defaults to the latest workbook)")
	dataDir := flag.String("data", "", "directory containing SKPG workbooks (defaults to data relative to executable)")
	out := flag.String("out", "", "output xlsx path (defaults to list_kod_medan.xlsx next to the executable)")
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
	if *out == "" {
		*out = paths.GetRelativePath("list_kod_medan.xlsx")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	source, err := pickWorkbook(files.NewDiscovery(*dataDir), *year)
	if err != nil {
		logger.Error("No workbook to inspect",
			slog.String("data_dir", *dataDir),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	header, _, err := dataset.NewExcelReader(cfg.Dataset.SheetName, logger).Read(context.Background(), source.WorkbookPath)
	if err != nil {
		logger.Error("Failed to read workbook",
			slog.String("path", source.WorkbookPath),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(header) == 0 {
		logger.Error("Workbook has no header row", slog.String("path", source.WorkbookPath))
		os.Exit(1)
	}

	if err := writeFieldList(*out, header); err != nil {
		logger.Error("Failed to write field listing",
			slog.String("path", *out),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Wrote %d field codes from %d to %s\n", len(header), source.Year, *out)
	logger.Info("Field listing written",
		slog.Int("year", source.Year),
		slog.Int("fields", len(header)),
		slog.String("output", *out))
}

// pickWorkbook returns the requested year's workbook, or the newest one on
// disk when no year is given.
func pickWorkbook(discovery *files.Discovery, year int) (files.SourceFile, error) {
	if year != 0 {
		return discovery.FindYear(year)
	}

	sources, err := discovery.FindYearFiles()
	if err != nil {
		return files.SourceFile{}, err
	}
	if len(sources) == 0 {
		return files.SourceFile{}, fmt.Errorf("no survey workbooks in %s", discovery.DataDir())
	}
	// Discovery sorts ascending, so the newest year is last.
	return sources[len(sources)-1], nil
}

// writeFieldList writes the numbered "No." / "Kod yang ada" listing the
// survey office uses to cross-check field codes between deliveries.
func writeFieldList(path string, header []string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"No.", "Kod yang ada"}); err != nil {
		return err
	}
	for i, code := range header {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{i + 1, code}); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
