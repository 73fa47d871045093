package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencapitol/gavel/internal/model"
)

const sampleTranscript = "" +
	"                 EXAMINING DEPARTMENT OVERSIGHT\n" +
	"\n" +
	"    The Committee met, pursuant to notice, at 10:05 a.m., in Room\n" +
	"2128, Hon. John Smith (chairman of the committee) presiding.\n" +
	"    Members present: Representatives Jones and Doe.\n" +
	"    The Chairman. The committee will come to order. Today we\n" +
	"examine the department's budget request.\n" +
	"    Mr. Jones. Thank you, Mr. Chairman. I have one question about\n" +
	"the request.\n" +
	"    [Whereupon, at 11:00 a.m., the committee was adjourned.]\n"

func TestHearing(t *testing.T) {
	parsed, err := Hearing(sampleTranscript)
	require.NoError(t, err)

	assert.False(t, parsed.Truncated)
	require.Len(t, parsed.Sessions, 1)
	require.Len(t, parsed.Segments, 2)

	first := parsed.Segments[0]
	assert.Equal(t, "The Chairman", first.NameRaw)
	assert.Equal(t, "", first.State)
	assert.Contains(t, first.Cleaned, "The committee will come to order.")

	second := parsed.Segments[1]
	assert.Equal(t, "Mr. Jones", second.NameRaw)
	assert.Contains(t, second.Cleaned, "Thank you, Mr. Chairman.")
	assert.NotContains(t, second.Cleaned, "Whereupon")
}

func TestHearing_StateLabel(t *testing.T) {
	transcript := "" +
		"    The Committee met at 10 a.m.\n" +
		"    Mr. Smith of Texas. I thank the gentleman for yielding.\n" +
		"    [Whereupon, the committee was adjourned.]\n"

	parsed, err := Hearing(transcript)
	require.NoError(t, err)
	require.Len(t, parsed.Segments, 1)
	assert.Equal(t, "Mr. Smith", parsed.Segments[0].NameRaw)
	assert.Equal(t, "texas", parsed.Segments[0].State)
}

func TestHearing_TruncatedDropsTrailingStatement(t *testing.T) {
	// Without an adjournment marker the final statement absorbs whatever
	// closing material follows, so it cannot be trusted.
	transcript := "" +
		"    The Committee met at 10 a.m.\n" +
		"    Mr. Smith. The committee will come to order.\n" +
		"    Mr. Jones. Thank you, Mr. Chairman.\n"

	parsed, err := Hearing(transcript)
	require.NoError(t, err)
	assert.True(t, parsed.Truncated)
	require.Len(t, parsed.Segments, 1)
	assert.Equal(t, "Mr. Smith", parsed.Segments[0].NameRaw)
}

func TestHearing_NoStatements(t *testing.T) {
	_, err := Hearing("Printed appendix material. No spoken content here.")
	assert.ErrorIs(t, err, ErrNoStatements)
}

func TestHearing_ChairName(t *testing.T) {
	parsed, err := Hearing(sampleTranscript)
	require.NoError(t, err)
	assert.Equal(t, "Smith", parsed.ChairName())
}

func TestPreprocess_CutsQuestionAppendix(t *testing.T) {
	transcript := "    Mr. Smith. Thank you.\n" +
		"[Questions for the record with answers supplied follow:]\n" +
		"    Mr. Ghost. This was never spoken.\n"

	got := Preprocess(transcript)
	assert.NotContains(t, got, "Mr. Ghost")
	assert.Contains(t, got, "Mr. Smith")
}

func TestIsChairLabel(t *testing.T) {
	assert.True(t, IsChairLabel("The Chairman"))
	assert.True(t, IsChairLabel("The Chairwoman"))
	assert.False(t, IsChairLabel("Mr. Smith"))
}

func TestHearingChamber(t *testing.T) {
	assert.Equal(t, model.ChamberHouse, HearingChamber([]string{"HOUSE", "HOUSE"}))
	assert.Equal(t, model.ChamberJoint, HearingChamber([]string{"HOUSE", "SENATE"}))
	assert.Equal(t, "", HearingChamber(nil))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "dr alice brown director", Normalize("Dr. Alice Brown, Director"))
	assert.Equal(t, "", Normalize("---"))
}
