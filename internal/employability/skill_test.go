package employability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillBands(t *testing.T) {
	// Codes 1 and 3 are skilled, 4 and 10 semi-skilled, 9 low-skilled.
	// Code 11 sits outside every band but still widens the denominator;
	// the missing sentinel does not.
	view := metricView(t, []string{"e_41_a"}, [][]string{
		{"1"}, {"3"}, {"4"}, {"10"}, {"9"}, {"11"}, {"-2"},
	})

	bands, err := SkillBands(view)

	require.NoError(t, err)
	require.Len(t, bands, 3)

	assert.Equal(t, "Mahir", bands[0].Label)
	assert.Equal(t, "Separa Mahir", bands[1].Label)
	assert.Equal(t, "Berkemahiran Rendah", bands[2].Label)

	assert.Equal(t, 2, bands[0].Count)
	assert.Equal(t, 2, bands[1].Count)
	assert.Equal(t, 1, bands[2].Count)

	assert.Equal(t, 33.3, bands[0].Percent)
	assert.Equal(t, 33.3, bands[1].Percent)
	assert.Equal(t, 16.7, bands[2].Percent)
}

func TestSkillBands_EmptyView(t *testing.T) {
	view := metricView(t, []string{"e_41_a"}, nil)

	bands, err := SkillBands(view)

	require.NoError(t, err)
	require.Len(t, bands, 3)
	for _, b := range bands {
		assert.Zero(t, b.Count)
		assert.Zero(t, b.Percent)
	}
}
