package employability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skpg/internal/codes"
)

func TestWorkStatusDistribution(t *testing.T) {
	view := metricView(t, []string{"e_status"}, [][]string{
		{"1"}, {"1"}, {"1"}, {"5"}, {"5"}, {"2"}, {"0"}, {"99"},
	})

	table, err := WorkStatusDistribution(view)

	require.NoError(t, err)
	assert.Equal(t, 6, table.Total)
	require.Len(t, table.Rows, 3)

	assert.Equal(t, "Bekerja", table.Rows[0].Label)
	assert.Equal(t, 3, table.Rows[0].Count)
	assert.Equal(t, 50.0, table.Rows[0].Percent)

	assert.Equal(t, "Belum Bekerja", table.Rows[1].Label)
	assert.Equal(t, "Melanjutkan Pengajian", table.Rows[2].Label)
}

func TestWorkStatusCodeDistribution(t *testing.T) {
	view := metricView(t, []string{"e_status"}, [][]string{
		{"1"}, {"1"}, {"3"}, {"5"}, {"-2"},
	})

	rows, err := WorkStatusCodeDistribution(view)

	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "1", rows[0].Code)
	assert.Equal(t, "Bekerja", rows[0].Label)
	assert.Equal(t, 2, rows[0].Count)
	assert.Equal(t, 50.0, rows[0].Percent)

	assert.Equal(t, "2", rows[1].Code)
	assert.Zero(t, rows[1].Count)

	assert.Equal(t, "5", rows[4].Code)
	assert.Equal(t, "Belum Bekerja", rows[4].Label)
	assert.Equal(t, 25.0, rows[4].Percent)
}

func TestStudyLevelDistribution(t *testing.T) {
	view := metricView(t, []string{"e_peringkat"}, [][]string{
		{"4"}, {"4"}, {"4"}, {"3"}, {"3"}, {"3"}, {"5"}, {"77"},
	})

	rows, err := StudyLevelDistribution(view)

	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Equal counts fall back to alphabetical order.
	assert.Equal(t, "PhD", rows[0].Label)
	assert.Equal(t, "Sarjana Muda", rows[1].Label)
	assert.Equal(t, "Sarjana", rows[2].Label)
	assert.Equal(t, 42.9, rows[0].Percent)
	assert.Equal(t, 14.3, rows[2].Percent)
}

func TestSectorDistribution(t *testing.T) {
	view := metricView(t, []string{"e_statusPenyertaan", "e_45"}, [][]string{
		{"1", "4"},
		{"1", "4"},
		{"1", "9"},
		{"2", "4"},
		{"1", "-2"},
		{"1", "99"},
	})

	rows, err := SectorDistribution(view)

	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Syarikat Tempatan", rows[0].Label)
	assert.Equal(t, 2, rows[0].Count)
	assert.Equal(t, 66.7, rows[0].Percent)
	assert.Equal(t, "Kerajaan Persekutuan", rows[1].Label)
}

func TestOccupationDistribution(t *testing.T) {
	view := metricView(t, []string{"e_statusPenyertaan", "e_41_a"}, [][]string{
		{"1", "1"},
		{"1", "1"},
		{"1", "2"},
		{"2", "1"},
	})

	rows, err := OccupationDistribution(view)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, codes.Occupation.Label("1"), rows[0].Label)
	assert.Equal(t, 2, rows[0].Count)
}

func TestEmploymentTypeDistribution(t *testing.T) {
	view := metricView(t, []string{"e_statusPenyertaan", "e_43"}, [][]string{
		{"1", "4"},
		{"1", "4"},
		{"1", "-2"},
	})

	rows, err := EmploymentTypeDistribution(view)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bekerja Sendiri", rows[0].Label)
	assert.Equal(t, 100.0, rows[0].Percent)
}

func TestWorksInFieldDistribution(t *testing.T) {
	view := metricView(t, []string{"e_50_b"}, [][]string{
		{"1"}, {"1"}, {"2"}, {"-1"}, {"-2"},
	})

	rows, err := WorksInFieldDistribution(view)

	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Ya", rows[0].Label)
	assert.Equal(t, 50.0, rows[0].Percent)
	assert.Equal(t, "Tidak", rows[1].Label)
	assert.Equal(t, "Tidak Dinyatakan", rows[2].Label)
}

func TestReasonsNotWorking(t *testing.T) {
	records := [][]string{
		{"5", "1"}, {"5", "1"}, {"5", "1"},
		{"5", "7"}, {"5", "7"},
		{"5", "10"},
		{"5", "-2"},
		{"1", "1"},
	}
	view := metricView(t, []string{"e_status", "e_54"}, records)

	top, err := ReasonsNotWorking(view, 2)

	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Melanjutkan Pengajian", top[0].Label)
	assert.Equal(t, 3, top[0].Count)
	assert.Equal(t, 50.0, top[0].Percent)
	assert.Equal(t, "Tanggungjawab Terhadap Keluarga", top[1].Label)

	all, err := ReasonsNotWorking(view, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestProgramCount(t *testing.T) {
	view := metricView(t, []string{"e_program"}, [][]string{
		{"Sains Komputer"}, {"Sains Komputer"}, {"Fizik"}, {"-2"}, {""},
	})

	n, err := ProgramCount(view)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestGraduateCount(t *testing.T) {
	view := metricView(t, []string{"e_program"}, repeat(nil, 3, "Fizik"))

	assert.Equal(t, 3, GraduateCount(view))
}
