package employability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skpg/internal/codes"
)

func findFacultyRate(t *testing.T, rows []FacultyRate, code string) FacultyRate {
	t.Helper()
	for _, r := range rows {
		if r.Faculty == code {
			return r
		}
	}
	t.Fatalf("faculty %s not in result", code)
	return FacultyRate{}
}

func TestFacultyRates(t *testing.T) {
	view := metricView(t, []string{"e_fakulti", "e_status", "e_54"}, [][]string{
		{"Fakulti Sains", "1", "-2"},
		{"Fakulti Sains", "1", "-2"},
		{"Fakulti Sains", "1", "-2"},
		{"Fakulti Sains", "5", "5"},
		{"Fakulti Kejuruteraan", "1", "-2"},
	})

	rows, err := FacultyRates(view)

	require.NoError(t, err)
	require.Len(t, rows, len(codes.CanonicalFaculties))
	assert.Equal(t, codes.CanonicalFaculties[0], rows[0].Faculty)

	fs := findFacultyRate(t, rows, "FS")
	assert.Equal(t, 75.0, fs.GE)
	assert.Equal(t, 75.0, fs.GM)

	fk := findFacultyRate(t, rows, "FK")
	assert.Equal(t, 100.0, fk.GE)
	assert.Equal(t, 100.0, fk.GM)

	// Faculties without rows stay in the table with zero rates.
	api := findFacultyRate(t, rows, "API")
	assert.Zero(t, api.GE)
	assert.Zero(t, api.GM)
}

func TestFacultyResponseRates(t *testing.T) {
	view := metricView(t, []string{"e_fakulti", "e_statusPenyertaan"}, [][]string{
		{"Fakulti Sains", "1"},
		{"Fakulti Sains", "1"},
		{"Fakulti Sains", "1"},
		{"Fakulti Sains", "2"},
		{"Fakulti Kejuruteraan", "2"},
	})

	rows, err := FacultyResponseRates(view)

	require.NoError(t, err)
	require.Len(t, rows, len(codes.CanonicalFaculties))

	byCode := make(map[string]FacultyResponse, len(rows))
	for _, r := range rows {
		byCode[r.Faculty] = r
	}
	assert.Equal(t, 75.0, byCode["FS"].Percent)
	assert.Equal(t, 4, byCode["FS"].Denominator)
	assert.Zero(t, byCode["FK"].Percent)
	assert.Equal(t, 1, byCode["FK"].Denominator)
	assert.Zero(t, byCode["API"].Denominator)
}

func TestFacultySkillBands(t *testing.T) {
	view := metricView(t, []string{"e_fakulti", "e_41_a"}, [][]string{
		{"Fakulti Sains", "1"},
		{"Fakulti Sains", "9"},
	})

	rows, err := FacultySkillBands(view)

	require.NoError(t, err)
	require.Len(t, rows, len(codes.CanonicalFaculties))

	for _, r := range rows {
		if r.Faculty != "FS" {
			assert.Zero(t, r.Skilled)
			continue
		}
		assert.Equal(t, 50.0, r.Skilled)
		assert.Zero(t, r.SemiSkilled)
		assert.Equal(t, 50.0, r.LowSkilled)
	}
}

func TestFacultyWorksInField(t *testing.T) {
	view := metricView(t, []string{"e_fakulti", "e_50_b"}, [][]string{
		{"Fakulti Sains", "1"},
		{"Fakulti Sains", "1"},
		{"Fakulti Sains", "2"},
		{"Fakulti Sains", "-1"},
		{"Fakulti Kejuruteraan", "-2"},
	})

	rows, err := FacultyWorksInField(view)

	require.NoError(t, err)
	// FK only answered "Tidak Berkenaan", so it drops out entirely.
	require.Len(t, rows, 1)
	assert.Equal(t, "FS", rows[0].Faculty)
	assert.Equal(t, 50.0, rows[0].Yes)
	assert.Equal(t, 25.0, rows[0].No)
	assert.Equal(t, 25.0, rows[0].NotStated)
}

func TestGESizeCategory(t *testing.T) {
	tests := []struct {
		name      string
		graduates int
		want      string
	}{
		{name: "empty cohort", graduates: 0, want: "Kategori 1 (<200)"},
		{name: "just below threshold", graduates: 199, want: "Kategori 1 (<200)"},
		{name: "lower boundary", graduates: 200, want: "Kategori 2 (201-700)"},
		{name: "upper boundary", graduates: 700, want: "Kategori 2 (201-700)"},
		{name: "just above threshold", graduates: 701, want: "Kategori 3 (>701)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, geSizeCategory(tt.graduates))
		})
	}
}

func TestFacultyGECategories(t *testing.T) {
	records := repeat(nil, 200, "Fakulti Sains", "1", "-2")
	records = repeat(records, 1, "Fakulti Kejuruteraan", "1", "-2")
	view := metricView(t, []string{"e_fakulti", "e_status", "e_54"}, records)

	rows, err := FacultyGECategories(view)

	require.NoError(t, err)
	require.Len(t, rows, len(codes.CanonicalFaculties))

	// Category 1 first, sorted by code, with the lone category 2 faculty
	// at the end.
	assert.Equal(t, "AEI", rows[0].Faculty)
	last := rows[len(rows)-1]
	assert.Equal(t, "FS", last.Faculty)
	assert.Equal(t, "Kategori 2 (201-700)", last.Category)
	assert.Equal(t, 200, last.Graduates)
	assert.Equal(t, 100.0, last.GE)

	for _, r := range rows[:len(rows)-1] {
		assert.Equal(t, "Kategori 1 (<200)", r.Category)
	}
}

func TestHighestFacultyGM(t *testing.T) {
	view := metricView(t, []string{"e_fakulti", "e_status"}, [][]string{
		{"Fakulti Sains", "1"},
		{"Fakulti Sains", "5"},
		{"Fakulti Kejuruteraan", "1"},
	})

	ext, err := HighestFacultyGM(view)

	require.NoError(t, err)
	assert.True(t, ext.Defined)
	assert.Equal(t, "FK", ext.Faculty)
	assert.Equal(t, 100.0, ext.Value)
}

func TestHighestFacultyGM_TieKeepsCanonicalOrder(t *testing.T) {
	view := metricView(t, []string{"e_fakulti", "e_status"}, [][]string{
		{"Fakulti Sains", "1"},
		{"Fakulti Kejuruteraan", "1"},
	})

	ext, err := HighestFacultyGM(view)

	require.NoError(t, err)
	assert.Equal(t, "FK", ext.Faculty)
}

func TestHighestFacultyGE(t *testing.T) {
	view := metricView(t, []string{"e_fakulti", "e_status", "e_54"}, [][]string{
		{"Fakulti Sains", "1", "-2"},
		{"Fakulti Kejuruteraan", "1", "-2"},
		{"Fakulti Kejuruteraan", "5", "5"},
	})

	ext, err := HighestFacultyGE(view)

	require.NoError(t, err)
	assert.Equal(t, "FS", ext.Faculty)
	assert.Equal(t, 100.0, ext.Value)
}

func TestFacultyResponseRateExtremums(t *testing.T) {
	view := metricView(t, []string{"e_fakulti", "e_statusPenyertaan"}, [][]string{
		{"Fakulti Sains", "1"},
		{"Akademi Pengajian Melayu", "2"},
		{"Fakulti Kejuruteraan", "-2"},
	})

	highest, err := HighestFacultyResponseRate(view)
	require.NoError(t, err)
	assert.Equal(t, "FS", highest.Faculty)
	assert.Equal(t, 100.0, highest.Value)

	// FK delivered nothing, so it cannot be the lowest; APM at zero is.
	lowest, err := LowestFacultyResponseRate(view)
	require.NoError(t, err)
	assert.Equal(t, "APM", lowest.Faculty)
	assert.Zero(t, lowest.Value)
	assert.True(t, lowest.Defined)
}

func TestFacultyExtremum_UndefinedWithoutData(t *testing.T) {
	view := metricView(t, []string{"e_fakulti", "e_statusPenyertaan"}, nil)

	ext, err := HighestFacultyResponseRate(view)

	require.NoError(t, err)
	assert.False(t, ext.Defined)
	assert.Empty(t, ext.Faculty)
}

func TestFacultiesAboveOverallGM(t *testing.T) {
	view := metricView(t, []string{"e_fakulti", "e_status"}, [][]string{
		{"Fakulti Sains", "1"},
		{"Fakulti Sains", "1"},
		{"Fakulti Kejuruteraan", "1"},
		{"Fakulti Kejuruteraan", "5"},
		{"Akademi Pengajian Melayu", "5"},
	})

	got, err := FacultiesAboveOverallGM(view)

	require.NoError(t, err)
	assert.Equal(t, 60.0, got.Overall)
	assert.Equal(t, 1, got.Count)
}

func TestFacultiesAboveOverallGM_RequiresStrictExcess(t *testing.T) {
	view := metricView(t, []string{"e_fakulti", "e_status"}, [][]string{
		{"Fakulti Sains", "1"},
		{"Fakulti Sains", "5"},
		{"Fakulti Kejuruteraan", "1"},
		{"Fakulti Kejuruteraan", "5"},
	})

	got, err := FacultiesAboveOverallGM(view)

	require.NoError(t, err)
	assert.Equal(t, 50.0, got.Overall)
	assert.Zero(t, got.Count)
}

func TestFacultiesAboveOverallGE(t *testing.T) {
	view := metricView(t, []string{"e_fakulti", "e_status", "e_54"}, [][]string{
		{"Fakulti Sains", "1", "-2"},
		{"Fakulti Kejuruteraan", "5", "5"},
	})

	got, err := FacultiesAboveOverallGE(view)

	require.NoError(t, err)
	assert.Equal(t, 50.0, got.Overall)
	assert.Equal(t, 1, got.Count)
}
