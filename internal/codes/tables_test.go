package codes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"skpg/internal/dataset"
)

func TestTableFor(t *testing.T) {
	withTables := []dataset.Column{
		dataset.ColCitizenship,
		dataset.ColEmployment,
		dataset.ColWorkStatusGE,
		dataset.ColWorkStatus,
		dataset.ColParticipation,
		dataset.ColNonWorkReason,
		dataset.ColStudyLevel,
		dataset.ColEmploymentType,
		dataset.ColSector,
		dataset.ColOccupation,
		dataset.ColWorksInField,
		dataset.ColSalaryGroup,
	}
	for _, col := range withTables {
		_, ok := TableFor(col)
		assert.True(t, ok, "expected lookup table for %s", col)
	}

	withoutTables := []dataset.Column{
		dataset.ColYear,
		dataset.ColFaculty,
		dataset.ColProgram,
		dataset.ColSalaryRaw,
	}
	for _, col := range withoutTables {
		_, ok := TableFor(col)
		assert.False(t, ok, "expected no lookup table for %s", col)
	}
}

func TestWorkStatus_MissingVariantsShareLabel(t *testing.T) {
	assert.Equal(t, LabelNoInformation, WorkStatus.Label("-2"))
	assert.Equal(t, LabelNoInformation, WorkStatus.Label("0"))
	assert.Equal(t, LabelEmployed, WorkStatus.Label("1"))
	assert.Equal(t, LabelNotEmployed, WorkStatus.Label("5"))
}

func TestStudyLevel_LegacyDiplomaCode(t *testing.T) {
	assert.Equal(t, "Diploma", StudyLevel.Label("1"))
	assert.Equal(t, "Diploma", StudyLevel.Label("63"))
}

func TestLookupTable_UnknownCode(t *testing.T) {
	assert.Equal(t, "", EmploymentStatus.Label("999"))
	assert.Equal(t, "", Sector.Label(""))
}

// Every lookup key must already be in canonical cell form, otherwise loaded
// cells could never match it.
func TestLookupKeysAreCanonical(t *testing.T) {
	for col, table := range lookups {
		for key := range table {
			assert.Equal(t, key, dataset.CanonicalCell(key),
				"column %s key %q is not canonical", col, key)
		}
	}
}

func TestNonWorkReason_Complete(t *testing.T) {
	assert.Len(t, NonWorkReason, 19)
	assert.Equal(t, "Sedang Mencari Pekerjaan", NonWorkReason.Label("5"))
	assert.Equal(t, "Pekerjaan yang Ditawarkan Tidak Bersesuaian", NonWorkReason.Label("34"))
}
