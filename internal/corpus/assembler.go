// Package corpus flattens resolved statements into a topic-modeling corpus:
// tokenized documents, a frequency-filtered dictionary, bag-of-words rows,
// and a metadata index with one line per retained document.
package corpus

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opencapitol/gavel/internal/model"
)

// Options are the dataset-assembly thresholds. Token length and document
// length cutoffs are exclusive, matching the established dataset format.
type Options struct {
	MinTokenLength int // tokens this long or shorter are dropped
	MinDocLength   int // documents with this many tokens or fewer are dropped
	MinDictCount   int // words in fewer than this many documents are dropped
}

// DefaultOptions mirrors the thresholds used to build the published corpus.
func DefaultOptions() Options {
	return Options{MinTokenLength: 3, MinDocLength: 5, MinDictCount: 5}
}

// Assembler tokenizes statements and assembles the corpus.
type Assembler struct {
	opts Options
	stop map[string]struct{}
}

// NewAssembler creates an Assembler with the given thresholds.
func NewAssembler(opts Options) *Assembler {
	stop := make(map[string]struct{}, len(englishStopwords))
	for _, w := range englishStopwords {
		stop[w] = struct{}{}
	}
	return &Assembler{opts: opts, stop: stop}
}

// Tokenize lowercases, strips punctuation, and splits the text, dropping
// stopwords and tokens at or below the minimum length.
func (a *Assembler) Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, strings.ToLower(text))

	var tokens []string
	for _, w := range strings.Fields(cleaned) {
		if len(w) <= a.opts.MinTokenLength {
			continue
		}
		if _, isStop := a.stop[w]; isStop {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// BowEntry is one (word id, count) pair in a bag-of-words document.
type BowEntry struct {
	ID    int
	Count int
}

// Dataset is the assembled corpus: one bag-of-words document per retained
// statement, a parallel metadata index, and the word dictionary.
type Dataset struct {
	Header    []string   // index column names, ending in word_count
	Index     [][]string // one metadata row per retained document
	Documents [][]BowEntry
	Dict      *Dictionary
	CorpusRow []string // token-repeated text rows, parallel to Documents
}

// Build assembles the dataset from parsed hearings. extraMeta, when given,
// carries one additional metadata row per hearing (applied to each of that
// hearing's documents) with column names in extraLabels.
func (a *Assembler) Build(hearings [][]model.ResolvedStatement, extraMeta [][]string, extraLabels []string) (*Dataset, error) {
	if extraMeta != nil && len(extraMeta) != len(hearings) {
		return nil, fmt.Errorf("extra metadata rows: want %d, got %d", len(hearings), len(extraMeta))
	}
	if extraLabels != nil && extraMeta != nil && len(extraMeta) > 0 && len(extraLabels) != len(extraMeta[0]) {
		return nil, fmt.Errorf("extra metadata labels: want %d, got %d", len(extraMeta[0]), len(extraLabels))
	}

	var docs [][]string
	var index [][]string

	for i, statements := range hearings {
		// Single-statement hearings carry no conversation worth modeling.
		if len(statements) <= 1 {
			continue
		}
		for j := range statements {
			row := &statements[j]
			tokens := a.Tokenize(row.Cleaned)
			if len(tokens) <= a.opts.MinDocLength {
				continue
			}
			meta := row.IndexRow()
			if extraMeta != nil {
				meta = append(meta, extraMeta[i]...)
			}
			docs = append(docs, tokens)
			index = append(index, meta)
		}
	}

	dict := NewDictionary(docs)
	dict.FilterExtremes(a.opts.MinDictCount)

	ds := &Dataset{Dict: dict}
	ds.Header = append(ds.Header, model.IndexHeader...)
	ds.Header = append(ds.Header, extraLabels...)
	ds.Header = append(ds.Header, "word_count")

	for i, doc := range docs {
		bow := dict.Bow(doc)
		if len(bow) <= a.opts.MinDocLength {
			continue
		}
		ds.Documents = append(ds.Documents, bow)
		ds.CorpusRow = append(ds.CorpusRow, expandBow(bow, dict))
		row := append(index[i], fmt.Sprintf("%d", len(bow)))
		ds.Index = append(ds.Index, row)
	}

	return ds, nil
}

// expandBow renders a bag-of-words document as its tokens, each repeated by
// its count, in word-id order.
func expandBow(bow []BowEntry, dict *Dictionary) string {
	var b strings.Builder
	for i, e := range bow {
		word := dict.Word(e.ID)
		for n := 0; n < e.Count; n++ {
			if i > 0 || n > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(word)
		}
	}
	return b.String()
}

// Dictionary maps words to stable integer ids with document frequencies.
type Dictionary struct {
	ids     map[string]int
	words   []string
	docFreq []int
	numDocs int
}

// NewDictionary builds a dictionary over the tokenized documents. Ids are
// assigned in sorted word order so runs over the same input are identical.
func NewDictionary(docs [][]string) *Dictionary {
	freq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, w := range doc {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			freq[w]++
		}
	}

	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Strings(words)

	d := &Dictionary{
		ids:     make(map[string]int, len(words)),
		words:   words,
		docFreq: make([]int, len(words)),
		numDocs: len(docs),
	}
	for i, w := range words {
		d.ids[w] = i
		d.docFreq[i] = freq[w]
	}
	return d
}

// FilterExtremes drops words appearing in fewer than noBelow documents and
// reassigns ids compactly.
func (d *Dictionary) FilterExtremes(noBelow int) {
	var words []string
	var freqs []int
	for i, w := range d.words {
		if d.docFreq[i] >= noBelow {
			words = append(words, w)
			freqs = append(freqs, d.docFreq[i])
		}
	}

	d.words = words
	d.docFreq = freqs
	d.ids = make(map[string]int, len(words))
	for i, w := range words {
		d.ids[w] = i
	}
}

// Bow converts a tokenized document into (id, count) pairs in id order,
// ignoring words outside the dictionary.
func (d *Dictionary) Bow(doc []string) []BowEntry {
	counts := make(map[int]int)
	for _, w := range doc {
		if id, ok := d.ids[w]; ok {
			counts[id]++
		}
	}

	ids := make([]int, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	bow := make([]BowEntry, len(ids))
	for i, id := range ids {
		bow[i] = BowEntry{ID: id, Count: counts[id]}
	}
	return bow
}

// Word returns the word for an id.
func (d *Dictionary) Word(id int) string {
	return d.words[id]
}

// Len returns the dictionary size.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// NumDocs returns the number of documents the dictionary was built from.
func (d *Dictionary) NumDocs() int {
	return d.numDocs
}

// DocFreq returns the document frequency for an id.
func (d *Dictionary) DocFreq(id int) int {
	return d.docFreq[id]
}
