package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSessions_SingleSession(t *testing.T) {
	transcript := "" +
		"    The Committee met, pursuant to notice, at 10:05 a.m.\n" +
		"    Mr. Smith. The committee will come to order.\n" +
		"    [Whereupon, at 11:00 a.m., the committee was adjourned.]\n"

	res, err := FindSessions(transcript)
	require.NoError(t, err)
	assert.False(t, res.Truncated)
	require.Len(t, res.Sessions, 1)

	sess := res.Sessions[0]
	assert.Equal(t, strings.Index(transcript, "The Committee met"), sess.Start)
	assert.Equal(t, strings.Index(transcript, "[Whereupon"), sess.End)
}

func TestFindSessions_TwoSessions(t *testing.T) {
	transcript := "" +
		"    The Committee met at 10 a.m.\n" +
		"    Mr. Alpha. First day.\n" +
		"    [Whereupon, the committee was recessed.]\n" +
		"    The Committee met at 2 p.m.\n" +
		"    Mr. Beta. Second day.\n" +
		"    [Whereupon, the committee was adjourned.]\n"

	res, err := FindSessions(transcript)
	require.NoError(t, err)
	assert.False(t, res.Truncated)
	require.Len(t, res.Sessions, 2)
	assert.Less(t, res.Sessions[0].End, res.Sessions[1].Start)
}

func TestFindSessions_OpeningFallback(t *testing.T) {
	// No convened marker: the session opens just before the first
	// detected statement label.
	transcript := "" +
		"SOME FRONT MATTER\n" +
		"    Mr. Smith. The committee will come to order.\n" +
		"    [Whereupon, the hearing was adjourned.]\n"

	res, err := FindSessions(transcript)
	require.NoError(t, err)
	require.Len(t, res.Sessions, 1)

	first := NameSearch(transcript)
	require.NotNil(t, first)
	assert.Equal(t, first.Start-10, res.Sessions[0].Start)
}

func TestFindSessions_OpeningFallbackClamped(t *testing.T) {
	// The statement label sits closer than ten characters to the start
	// of the transcript; the opening clamps at zero.
	transcript := "    Mr. Smith. Order.\n    [Whereupon, the hearing was adjourned.]\n"

	res, err := FindSessions(transcript)
	require.NoError(t, err)
	require.Len(t, res.Sessions, 1)
	assert.Equal(t, 0, res.Sessions[0].Start)
}

func TestFindSessions_NoStatements(t *testing.T) {
	_, err := FindSessions("Appendix material only. Nothing was said.")
	assert.ErrorIs(t, err, ErrNoStatements)
}

func TestFindSessions_MissingClosing(t *testing.T) {
	transcript := "" +
		"    The Committee met at 10 a.m.\n" +
		"    Mr. Smith. The committee will come to order.\n"

	res, err := FindSessions(transcript)
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	require.Len(t, res.Sessions, 1)
	assert.Equal(t, len(transcript), res.Sessions[0].End)
}

func TestFindSessions_UnbalancedOpenings(t *testing.T) {
	// Two convened markers, one adjournment: the second session has no
	// terminus and runs to end of text, marking the transcript truncated.
	transcript := "" +
		"    The Committee met at 10 a.m.\n" +
		"    Mr. Alpha. First day.\n" +
		"    [Whereupon, the committee was recessed.]\n" +
		"    The Committee met at 2 p.m.\n" +
		"    Mr. Beta. Second day.\n"

	res, err := FindSessions(transcript)
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	require.Len(t, res.Sessions, 2)
	assert.Equal(t, len(transcript), res.Sessions[1].End)
}

func TestFindSessions_AdditionalMaterialMarker(t *testing.T) {
	transcript := "" +
		"    The Committee met at 10 a.m.\n" +
		"    Mr. Smith. The committee will come to order.\n" +
		"    [Additional material follows.]\n"

	res, err := FindSessions(transcript)
	require.NoError(t, err)
	assert.False(t, res.Truncated)
	require.Len(t, res.Sessions, 1)
	assert.Equal(t, strings.Index(transcript, "[Additional"), res.Sessions[0].End)
}
