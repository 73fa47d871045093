// Package bio builds the in-memory biographical index used to match speaker
// surnames against legislator membership records.
package bio

import (
	"strings"

	"github.com/opencapitol/gavel/internal/model"
)

// Index is a surname-keyed lookup over legislator records. It is built once
// per run and is safe for concurrent reads.
type Index struct {
	records   map[int]*model.LegislatorRecord
	bySurname map[string][]int
}

// NewIndex builds an index over the given records. Every alias surname is a
// key; legislators sharing a surname all appear under it.
func NewIndex(records []model.LegislatorRecord) *Index {
	ix := &Index{
		records:   make(map[int]*model.LegislatorRecord, len(records)),
		bySurname: make(map[string][]int),
	}

	for i := range records {
		rec := &records[i]
		ix.records[rec.ID] = rec

		seen := make(map[string]bool)
		for _, alias := range rec.Aliases {
			key := NormalizeSurname(AliasSurname(alias))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			ix.bySurname[key] = append(ix.bySurname[key], rec.ID)
		}
	}

	return ix
}

// Candidates returns every legislator with an alias surname matching the
// given (raw) surname. The slice is shared; callers must not mutate it.
func (ix *Index) Candidates(surname string) []*model.LegislatorRecord {
	ids := ix.bySurname[NormalizeSurname(surname)]
	if len(ids) == 0 {
		return nil
	}
	out := make([]*model.LegislatorRecord, len(ids))
	for i, id := range ids {
		out[i] = ix.records[id]
	}
	return out
}

// ByID returns the record with the given id, or nil.
func (ix *Index) ByID(id int) *model.LegislatorRecord {
	return ix.records[id]
}

// Len returns the number of indexed legislators.
func (ix *Index) Len() int {
	return len(ix.records)
}

// AliasSurname extracts the surname portion of a "Last, First" alias.
func AliasSurname(alias string) string {
	if i := strings.Index(alias, ","); i >= 0 {
		return alias[:i]
	}
	return alias
}

// NormalizeSurname lowercases a surname and strips whitespace, generational
// suffixes ("jr"), and punctuation, so that OCR variants compare equal.
func NormalizeSurname(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "jr.", "")
	s = strings.ReplaceAll(s, "jr", "")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}
