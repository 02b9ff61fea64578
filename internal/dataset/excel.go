package dataset

import (
	"context"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "skpg/internal/errors"
)

// ExcelReader reads survey workbooks directly. It is the fallback path when
// the parquet cache cannot be produced.
type ExcelReader struct {
	sheet  string
	logger *slog.Logger
}

func NewExcelReader(sheet string, logger *slog.Logger) *ExcelReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelReader{
		sheet:  sheet,
		logger: logger.With(slog.String("component", "excel_reader")),
	}
}

// Read returns the header row and data records of the configured sheet.
// Sheet name matching is case-insensitive because survey offices have
// delivered both "DATASET" and "Dataset" over the years.
func (r *ExcelReader) Read(ctx context.Context, path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, apperrors.NewParsingError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			r.logger.WarnContext(ctx, "failed to close workbook",
				slog.String("path", path),
				slog.String("error", cerr.Error()))
		}
	}()

	sheet := r.resolveSheet(f)
	if sheet == "" {
		return nil, nil, apperrors.NewParsingError("dataset sheet missing from workbook", apperrors.ErrSheetNotFound).
			WithContext("path", path).
			WithContext("sheets", strings.Join(f.GetSheetList(), ", "))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, apperrors.NewParsingError("failed to read sheet rows", err).
			WithContext("sheet", sheet)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	return rows[0], rows[1:], nil
}

func (r *ExcelReader) resolveSheet(f *excelize.File) string {
	for _, name := range f.GetSheetList() {
		if strings.EqualFold(name, r.sheet) {
			return name
		}
	}
	return ""
}
