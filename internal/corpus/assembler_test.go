package corpus

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencapitol/gavel/internal/model"
)

func TestTokenize(t *testing.T) {
	a := NewAssembler(DefaultOptions())

	tokens := a.Tokenize("The Department's budget request, as submitted, totals $4.2 billion.")
	assert.Equal(t, []string{"departments", "budget", "request", "submitted", "totals", "billion"}, tokens)
}

func TestTokenize_DropsShortAndStopwords(t *testing.T) {
	a := NewAssembler(DefaultOptions())

	// "the" and "and" are stopwords; "tax" and "act" are at the length
	// cutoff and dropped.
	tokens := a.Tokenize("the tax act and appropriations")
	assert.Equal(t, []string{"appropriations"}, tokens)
}

func TestDictionary(t *testing.T) {
	docs := [][]string{
		{"budget", "request", "budget"},
		{"budget", "oversight"},
		{"request", "oversight", "hearing"},
	}

	d := NewDictionary(docs)
	assert.Equal(t, 3, d.NumDocs())
	require.Equal(t, 4, d.Len())

	// Ids follow sorted word order.
	assert.Equal(t, "budget", d.Word(0))
	assert.Equal(t, "hearing", d.Word(1))
	assert.Equal(t, "oversight", d.Word(2))
	assert.Equal(t, "request", d.Word(3))

	// Document frequency counts each document once.
	assert.Equal(t, 2, d.DocFreq(0))
	assert.Equal(t, 1, d.DocFreq(1))
}

func TestDictionary_FilterExtremes(t *testing.T) {
	docs := [][]string{
		{"budget", "request"},
		{"budget", "oversight"},
	}

	d := NewDictionary(docs)
	d.FilterExtremes(2)

	require.Equal(t, 1, d.Len())
	assert.Equal(t, "budget", d.Word(0))
	assert.Equal(t, 2, d.DocFreq(0))
}

func TestDictionary_Bow(t *testing.T) {
	d := NewDictionary([][]string{{"budget", "request", "budget"}})

	bow := d.Bow([]string{"budget", "budget", "request", "unknown"})
	require.Len(t, bow, 2)
	assert.Equal(t, BowEntry{ID: 0, Count: 2}, bow[0])
	assert.Equal(t, BowEntry{ID: 1, Count: 1}, bow[1])
}

func statement(name, cleaned string) model.ResolvedStatement {
	return model.ResolvedStatement{
		NameRaw:  name,
		NameFull: model.NA,
		Jacket:   "CHRG-113jhrg10001",
		Congress: 113,
		Date:     "01-15-2014",
		Cleaned:  cleaned,
	}
}

func TestBuild(t *testing.T) {
	a := NewAssembler(Options{MinTokenLength: 2, MinDocLength: 2, MinDictCount: 1})

	hearings := [][]model.ResolvedStatement{
		{
			statement("Mr. Smith", "appropriations committee reviews the department budget request today"),
			statement("Mr. Jones", "department budget request deserves more careful oversight review process"),
		},
	}

	ds, err := a.Build(hearings, nil, nil)
	require.NoError(t, err)

	require.Len(t, ds.Documents, 2)
	require.Len(t, ds.Index, 2)
	require.Len(t, ds.CorpusRow, 2)

	// Header is the metadata columns plus the trailing word count.
	assert.Equal(t, "word_count", ds.Header[len(ds.Header)-1])
	assert.Equal(t, len(model.IndexHeader)+1, len(ds.Header))

	// Each index row carries the document's distinct-word count.
	row := ds.Index[0]
	assert.Equal(t, "Mr. Smith", row[0])
	assert.Equal(t, strconv.Itoa(len(ds.Documents[0])), row[len(row)-1])
}

func TestBuild_SkipsSingleStatementHearings(t *testing.T) {
	a := NewAssembler(Options{MinTokenLength: 2, MinDocLength: 2, MinDictCount: 1})

	hearings := [][]model.ResolvedStatement{
		{statement("Mr. Smith", "appropriations committee reviews the department budget request")},
	}

	ds, err := a.Build(hearings, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, ds.Documents)
}

func TestBuild_DropsShortDocuments(t *testing.T) {
	a := NewAssembler(Options{MinTokenLength: 2, MinDocLength: 2, MinDictCount: 1})

	hearings := [][]model.ResolvedStatement{
		{
			statement("Mr. Smith", "appropriations committee reviews the department budget request"),
			statement("Mr. Jones", "thank you"),
		},
	}

	ds, err := a.Build(hearings, nil, nil)
	require.NoError(t, err)
	require.Len(t, ds.Documents, 1)
	assert.Equal(t, "Mr. Smith", ds.Index[0][0])
}

func TestBuild_ExtraMetadata(t *testing.T) {
	a := NewAssembler(Options{MinTokenLength: 2, MinDocLength: 2, MinDictCount: 1})

	hearings := [][]model.ResolvedStatement{
		{
			statement("Mr. Smith", "appropriations committee reviews the department budget request today"),
			statement("Mr. Jones", "department budget request deserves more careful oversight review process"),
		},
	}

	ds, err := a.Build(hearings, [][]string{{"energy"}}, []string{"topic"})
	require.NoError(t, err)

	assert.Equal(t, "topic", ds.Header[len(ds.Header)-2])
	for _, row := range ds.Index {
		assert.Equal(t, "energy", row[len(row)-2])
	}
}

func TestBuild_ExtraMetadataMismatch(t *testing.T) {
	a := NewAssembler(Options{MinTokenLength: 2, MinDocLength: 2, MinDictCount: 1})

	hearings := [][]model.ResolvedStatement{
		{statement("A", "x"), statement("B", "y")},
		{statement("C", "z"), statement("D", "w")},
	}

	_, err := a.Build(hearings, [][]string{{"only one"}}, []string{"topic"})
	assert.Error(t, err)
}

func TestExpandBow(t *testing.T) {
	d := NewDictionary([][]string{{"budget", "request", "budget"}})
	bow := d.Bow([]string{"budget", "budget", "request"})

	assert.Equal(t, "budget budget request", expandBow(bow, d))
}
