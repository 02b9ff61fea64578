// Package codes holds the survey's code books: fixed lookup tables from
// canonical answer codes to Malay display labels, the faculty name aliases
// accumulated across survey years, and the normalizer that attaches label
// columns to a freshly loaded dataset table.
//
// The tables are data, not configuration. They change only when the survey
// instrument itself changes, so they are compiled in.
package codes
