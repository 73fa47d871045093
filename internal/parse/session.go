package parse

import (
	"errors"
	"regexp"

	"github.com/opencapitol/gavel/internal/model"
)

// ErrNoStatements signals a transcript with no detectable statement start;
// such a hearing is unparseable but not an error for the batch.
var ErrNoStatements = errors.New("no detectable statement start")

var (
	openingRe = regexp.MustCompile(`(?i)The (?:Committee|Subcommittee)s? met`)

	// closingRe matches adjournment and recess markers, optionally
	// introduced by a bracketed "Whereupon" clause, plus the "additional
	// material follows" marker that sometimes stands in for one.
	closingRe = regexp.MustCompile(
		`(?i)(?:[\[(]?Whereupon[^\r\n]*?)?the\s+(?:committee|subcommittee|hearing|forum|panel)s?.*?` +
			`(?:was|were)?\s+(?:adjourned|recessed)[\r\n]*?[\])]?` +
			`|\[additional material follows\.?\]`)
)

// SessionResult is the outcome of session boundary detection. Truncated is
// set when the transcript has no confirmed terminus, in which case the
// trailing statement cannot be trusted and is dropped downstream.
type SessionResult struct {
	Sessions  []model.SessionSpan
	Truncated bool
}

// FindSessions locates the start and end offset of every discrete session in
// the transcript. Openings are "the committee met" markers, falling back to
// just before the first detected statement label; closings are adjournment
// or recess markers. Unbalanced marker counts are padded positionally.
func FindSessions(transcript string) (*SessionResult, error) {
	var openings []int
	for _, m := range openingRe.FindAllStringIndex(transcript, -1) {
		openings = append(openings, m[0])
	}

	if len(openings) == 0 {
		first := NameSearch(transcript)
		if first == nil {
			return nil, ErrNoStatements
		}
		start := first.Start - 10
		if start < 0 {
			start = 0
		}
		openings = []int{start}
	}

	var closings []int
	for _, m := range closingRe.FindAllStringIndex(transcript, -1) {
		closings = append(closings, m[0])
	}

	truncated := false
	if len(closings) == 0 {
		closings = []int{len(transcript)}
		truncated = true
	}

	if len(closings) < len(openings) {
		// Each unmatched session closes at the next session's opening, and
		// the last one at end of text.
		closings = append(closings, openings[len(closings)+1:]...)
		closings = append(closings, len(transcript))
		truncated = true
	} else if len(openings) < len(closings) {
		openings = append(openings, closings[len(openings):]...)
	}

	n := len(openings)
	if len(closings) < n {
		n = len(closings)
	}
	sessions := make([]model.SessionSpan, n)
	for i := 0; i < n; i++ {
		sessions[i] = model.SessionSpan{Start: openings[i], End: closings[i]}
	}

	return &SessionResult{Sessions: sessions, Truncated: truncated}, nil
}
