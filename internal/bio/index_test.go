package bio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencapitol/gavel/internal/model"
)

func testRecords() []model.LegislatorRecord {
	return []model.LegislatorRecord{
		{
			ID:      101,
			Aliases: []string{"Smith, John", "Smyth, John"},
			State:   "TX",
			Party:   "R",
			Chamber: "HOUSE",
		},
		{
			ID:      102,
			Aliases: []string{"Smith, Jane"},
			State:   "VA",
			Party:   "D",
			Chamber: "HOUSE",
		},
		{
			ID:      103,
			Aliases: []string{"O'Brien, Patrick"},
			State:   "MA",
			Party:   "D",
			Chamber: "SENATE",
		},
	}
}

func TestIndex_Candidates(t *testing.T) {
	ix := NewIndex(testRecords())

	smiths := ix.Candidates("Smith")
	require.Len(t, smiths, 2)

	ids := []int{smiths[0].ID, smiths[1].ID}
	assert.Contains(t, ids, 101)
	assert.Contains(t, ids, 102)

	assert.Nil(t, ix.Candidates("Jones"))
}

func TestIndex_CandidatesByAliasVariant(t *testing.T) {
	ix := NewIndex(testRecords())

	// The OCR variant spelling indexes the same record.
	variants := ix.Candidates("Smyth")
	require.Len(t, variants, 1)
	assert.Equal(t, 101, variants[0].ID)
}

func TestIndex_CandidatesNormalized(t *testing.T) {
	ix := NewIndex(testRecords())

	obriens := ix.Candidates("O'Brien")
	require.Len(t, obriens, 1)
	assert.Equal(t, 103, obriens[0].ID)

	// Punctuation and case do not matter.
	assert.Len(t, ix.Candidates("obrien"), 1)
	assert.Len(t, ix.Candidates("SMITH"), 2)
}

func TestIndex_ByID(t *testing.T) {
	ix := NewIndex(testRecords())

	rec := ix.ByID(101)
	require.NotNil(t, rec)
	assert.Equal(t, "Smith, John", rec.Name())

	assert.Nil(t, ix.ByID(999))
	assert.Equal(t, 3, ix.Len())
}

func TestAliasSurname(t *testing.T) {
	assert.Equal(t, "Smith", AliasSurname("Smith, John"))
	assert.Equal(t, "Smith", AliasSurname("Smith"))
}

func TestNormalizeSurname(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Smith", "smith"},
		{"O'Brien", "obrien"},
		{"Ros-Lehtinen", "roslehtinen"},
		{"Jones Jr.", "jones"},
		{"Jones, Jr", "jones"},
		{" Smith ", "smith"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSurname(tt.in), tt.in)
	}
}
