package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	_ "github.com/duckdb/duckdb-go/v2"

	apperrors "skpg/internal/errors"
)

// Converter materializes parquet caches from survey workbooks and reads them
// back, using an embedded DuckDB instance with the excel extension.
type Converter struct {
	db     *sql.DB
	sheet  string
	logger *slog.Logger

	excelOnce sync.Once
	excelErr  error
}

// NewConverter opens an in-memory DuckDB instance. It returns a conversion
// error when the driver is unavailable, in which case callers fall back to
// reading workbooks directly.
func NewConverter(sheet string, logger *slog.Logger) (*Converter, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, apperrors.NewConversionError("failed to open duckdb",
			fmt.Errorf("%w: %w", apperrors.ErrConverterUnavailable, err))
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, apperrors.NewConversionError("duckdb not responding",
			fmt.Errorf("%w: %w", apperrors.ErrConverterUnavailable, err))
	}

	return &Converter{
		db:     db,
		sheet:  sheet,
		logger: logger.With(slog.String("component", "converter")),
	}, nil
}

// Close releases the embedded database.
func (c *Converter) Close() error {
	return c.db.Close()
}

// ensureExcel installs and loads the excel extension once per process.
func (c *Converter) ensureExcel(ctx context.Context) error {
	c.excelOnce.Do(func() {
		if _, err := c.db.ExecContext(ctx, "INSTALL excel; LOAD excel;"); err != nil {
			c.excelErr = apperrors.NewConversionError("failed to load duckdb excel extension", err)
		}
	})
	return c.excelErr
}

// Convert rewrites one workbook's DATASET sheet into a parquet cache file.
// Every column is read as text so that the canonical string representation
// is decided by this application, not by spreadsheet cell types.
func (c *Converter) Convert(ctx context.Context, workbookPath, parquetPath string) error {
	if err := c.ensureExcel(ctx); err != nil {
		return err
	}

	query := fmt.Sprintf(
		"COPY (SELECT * FROM read_xlsx(%s, sheet = %s, header = true, all_varchar = true)) TO %s (FORMAT PARQUET)",
		sqlString(workbookPath), sqlString(c.sheet), sqlString(parquetPath),
	)

	c.logger.InfoContext(ctx, "converting workbook to parquet",
		slog.String("workbook", workbookPath),
		slog.String("parquet", parquetPath))

	if _, err := c.db.ExecContext(ctx, query); err != nil {
		return apperrors.NewConversionError("parquet conversion failed", err).
			WithContext("workbook", workbookPath)
	}
	return nil
}

// ReadParquet loads a parquet cache into a header row and data records.
func (c *Converter) ReadParquet(ctx context.Context, path string) ([]string, [][]string, error) {
	query := fmt.Sprintf("SELECT * FROM read_parquet(%s)", sqlString(path))

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, apperrors.NewParsingError("failed to read parquet cache", err).
			WithContext("path", path)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, nil, apperrors.NewParsingError("failed to read parquet schema", err)
	}

	var records [][]string
	for rows.Next() {
		cells := make([]sql.NullString, len(header))
		ptrs := make([]interface{}, len(header))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, apperrors.NewParsingError("failed to scan parquet row", err)
		}

		record := make([]string, len(header))
		for i, cell := range cells {
			if cell.Valid {
				record[i] = cell.String
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewParsingError("parquet read interrupted", err)
	}

	return header, records, nil
}

// sqlString quotes a string literal for DuckDB.
func sqlString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
