package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "skpg/internal/errors"
	"skpg/internal/filter"
)

var facultyHeader = []string{
	"e_fakulti", "e_status", "e_status_GE2024", "e_54", "e_statusPenyertaan",
	"e_44_2", "e_45", "e_41_a", "e_43", "e_50_b", "e_peringkat", "e_program",
	"e_warganegara",
}

func facultyRecords() [][]string {
	return [][]string{
		{"Fakulti Sains", "1", "1", "-2", "1", "RM4,500", "4", "2", "4", "1", "4", "Sains Data", "1"},
		{"Fakulti Sains", "5", "5", "5", "1", "-2", "-2", "-2", "-2", "-2", "4", "Sains Data", "1"},
		{"Fakulti Sains", "1", "1", "-2", "1", "3,000", "9", "3", "4", "2", "5", "Fizik", "2"},
		{"Fakulti Kejuruteraan", "1", "-2", "-2", "2", "tiada", "4", "9", "4", "1", "4", "Kejuruteraan Awam", "1"},
	}
}

func newFacultyService(t *testing.T) *FacultyService {
	t.Helper()
	return NewFacultyService(newTestStore(t, facultyHeader, facultyRecords()), testLogger())
}

func TestFacultyService_Options(t *testing.T) {
	svc := newFacultyService(t)

	opts, err := svc.Options(context.Background(), filter.Selection{})

	require.NoError(t, err)
	assert.Equal(t, []string{"2023"}, opts.Years)
	assert.Equal(t, []string{"FK", "FS"}, opts.Faculties)
	assert.Equal(t, []string{"Sarjana", "Sarjana Muda"}, opts.Levels)
	assert.Equal(t, []string{"Warganegara", "Bukan Warganegara"}, opts.Citizenship)
}

func TestFacultyService_Options_CascadeByFaculty(t *testing.T) {
	svc := newFacultyService(t)

	opts, err := svc.Options(context.Background(), filter.Selection{Faculties: []string{"FS"}})

	require.NoError(t, err)
	// Faculty list stays year-scoped, levels and programs narrow to FS.
	assert.Equal(t, []string{"FK", "FS"}, opts.Faculties)
	assert.Equal(t, []string{"Sarjana", "Sarjana Muda"}, opts.Levels)
	assert.Equal(t, []string{"Fizik", "Sains Data"}, opts.Programs)
}

func TestFacultyService_Summary(t *testing.T) {
	svc := newFacultyService(t)

	// Citizenship never narrows the summary cards.
	got, err := svc.Summary(context.Background(), filter.Selection{
		Faculties:   []string{"FS"},
		Citizenship: []string{"Warganegara"},
	})

	require.NoError(t, err)
	assert.Equal(t, 3, got.Graduates)
	assert.Equal(t, 100.0, got.Response.Percent)
	assert.Equal(t, 66.7, got.GM.Percent)
	assert.Equal(t, 66.7, got.GE.Percent)
	assert.Equal(t, 50.0, got.PremiumSalary.Percent)
}

func TestFacultyService_Summary_NoMatchingRows(t *testing.T) {
	svc := newFacultyService(t)

	_, err := svc.Summary(context.Background(), filter.Selection{Years: []string{"1999"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNoMatchingRows)
}

func TestFacultyService_Distributions(t *testing.T) {
	svc := newFacultyService(t)

	// Citizenship does narrow the charts: only the two Warganegara FS rows.
	got, err := svc.Distributions(context.Background(), filter.Selection{
		Faculties:   []string{"FS"},
		Citizenship: []string{"Warganegara"},
	})

	require.NoError(t, err)

	require.Len(t, got.SalaryBands, 6)
	assert.Equal(t, 1, got.SalaryBands[2].Count)
	assert.Equal(t, 1, got.SalaryBands[5].Count)
	assert.Equal(t, 50.0, got.SalaryBands[2].Percent)

	require.Len(t, got.WorksInField, 1)
	assert.Equal(t, "Ya", got.WorksInField[0].Label)

	require.Len(t, got.Sectors, 1)
	assert.Equal(t, "Syarikat Tempatan", got.Sectors[0].Label)

	require.Len(t, got.Occupations, 1)
	assert.Equal(t, "Profesional", got.Occupations[0].Label)

	require.Len(t, got.EmploymentTypes, 1)
	assert.Equal(t, "Bekerja Sendiri", got.EmploymentTypes[0].Label)
}

func TestFacultyService_Reasons(t *testing.T) {
	svc := newFacultyService(t)

	got, err := svc.Reasons(context.Background(), filter.Selection{Faculties: []string{"FS"}}, 10)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Sedang Mencari Pekerjaan", got[0].Label)
	assert.Equal(t, 1, got[0].Count)
}

func TestFacultyService_NoSnapshot(t *testing.T) {
	svc := NewFacultyService(newEmptyStore(t), testLogger())

	_, err := svc.Options(context.Background(), filter.Selection{})
	assert.ErrorIs(t, err, apperrors.ErrNoDataLoaded)

	_, err = svc.Summary(context.Background(), filter.Selection{})
	assert.ErrorIs(t, err, apperrors.ErrNoDataLoaded)
}
