// Package dataset turns yearly survey workbooks into one combined,
// immutable, column-major table of canonical strings.
//
// Each survey year arrives as an xlsx workbook whose DATASET sheet is
// converted once to a parquet cache with DuckDB and read from the cache
// afterwards. When DuckDB or a conversion is unavailable the workbook is
// read directly with excelize. Loaded years are stacked by column union,
// tagged with their graduating year, and published as an immutable
// Snapshot through Store.
//
// All cells share one canonical string representation (see CanonicalCell),
// so metric code compares plain strings and never reparses spreadsheet
// values.
package dataset
