package parse

import (
	"regexp"

	"github.com/opencapitol/gavel/internal/model"
)

// turnRe marks the start of a typeset line: a newline run followed by the
// indentation convention for a new speaker turn.
var turnRe = regexp.MustCompile(`\n+(?: {4}|\t)`)

// FindStatements locates every statement start inside each session. Spans
// bound the matched speaker label only, remain in transcript order, and
// each session contributes a trailing length-1 sentinel at its closing
// offset so the final real statement has an end bound.
func FindStatements(transcript string, sessions []model.SessionSpan) []model.StatementSpan {
	var spans []model.StatementSpan

	for _, sess := range sessions {
		section := transcript[sess.Start:sess.End]
		turns := turnRe.FindAllStringIndex(section, -1)

		for i, turn := range turns {
			lineEnd := sess.End
			if i < len(turns)-1 {
				lineEnd = sess.Start + turns[i+1][0]
			}
			offset := sess.Start + turn[0]
			line := transcript[offset:lineEnd]

			if m := NameSearch(line); m != nil {
				spans = append(spans, model.StatementSpan{
					Start: m.Start + offset,
					End:   m.End + offset,
				})
			}
		}

		spans = append(spans, model.StatementSpan{
			Start:    sess.End,
			End:      sess.End + 1,
			Sentinel: true,
		})
	}

	return spans
}
