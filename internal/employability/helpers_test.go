package employability

import (
	"testing"

	"skpg/internal/codes"
	"skpg/internal/dataset"
)

// metricView builds a normalized view from raw survey records, the same
// shape the loader hands the services.
func metricView(t *testing.T, header []string, records [][]string) dataset.View {
	t.Helper()
	table := dataset.NewTable(header, records)
	codes.NewNormalizer().Apply(table)
	return table.All()
}

// repeat appends n copies of the record.
func repeat(records [][]string, n int, record ...string) [][]string {
	for i := 0; i < n; i++ {
		records = append(records, record)
	}
	return records
}
