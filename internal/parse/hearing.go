package parse

import (
	"regexp"
	"strings"

	"github.com/opencapitol/gavel/internal/model"
)

// qfrRe marks the appendix of written questions and answers, which is never
// spoken content.
var qfrRe = regexp.MustCompile(`\[Questions for the record with answers supplied follow:\]`)

// Segment is one extracted statement: the raw speaker label, the state
// detected inside it, and the cleaned statement body.
type Segment struct {
	NameRaw string
	State   string
	Cleaned string
	Span    model.StatementSpan
}

// Parsed is the segmentation result for one transcript.
type Parsed struct {
	Transcript string // preprocessed transcript the offsets address
	Sessions   []model.SessionSpan
	Truncated  bool
	Spans      []model.StatementSpan
	Segments   []Segment
}

// Hearing segments a transcript into speaker statements. Returns
// ErrNoStatements when the transcript has no recognizable statement start.
// When the transcript lacks a confirmed adjournment marker the trailing
// statement is dropped, since it absorbs whatever closing material follows.
func Hearing(transcript string) (*Parsed, error) {
	transcript = Preprocess(transcript)

	if NameSearch(transcript) == nil {
		return nil, ErrNoStatements
	}

	sessions, err := FindSessions(transcript)
	if err != nil {
		return nil, err
	}

	spans := FindStatements(transcript, sessions.Sessions)

	parsed := &Parsed{
		Transcript: transcript,
		Sessions:   sessions.Sessions,
		Truncated:  sessions.Truncated,
		Spans:      spans,
	}

	for i, span := range spans {
		if span.Sentinel {
			continue
		}

		name, state := CleanLabel(transcript[span.Start:span.End])

		// Skip the separating period and space after the label.
		bodyStart := span.End + 2
		bodyEnd := spans[i+1].Start
		if bodyStart > bodyEnd {
			bodyStart = bodyEnd
		}

		parsed.Segments = append(parsed.Segments, Segment{
			NameRaw: name,
			State:   state,
			Cleaned: CleanStatement(transcript[bodyStart:bodyEnd]),
			Span:    span,
		})
	}

	if parsed.Truncated && len(parsed.Segments) > 0 {
		parsed.Segments = parsed.Segments[:len(parsed.Segments)-1]
	}

	return parsed, nil
}

// Preprocess strips transcript components that are never part of the spoken
// conversation.
func Preprocess(transcript string) string {
	if m := qfrRe.FindStringIndex(transcript); m != nil {
		transcript = transcript[:m[0]]
	}
	return transcript
}

// FirstStatementStart returns the offset of the first non-sentinel span, or
// -1 when there is none. Used to bound front-matter scans.
func (p *Parsed) FirstStatementStart() int {
	for _, span := range p.Spans {
		if !span.Sentinel {
			return span.Start
		}
	}
	return -1
}

// ChairName resolves the chair's surname for the hearing, or "".
func (p *Parsed) ChairName() string {
	first := p.FirstStatementStart()
	if first < 0 {
		return ""
	}
	return FindChair(p.Transcript, first)
}

// labelChairRe recognizes labels that refer to the chair by role.
var labelChairRe = regexp.MustCompile(`(?i)the chair(man|woman)`)

// IsChairLabel reports whether a speaker label refers to the chair by role
// rather than by name.
func IsChairLabel(label string) bool {
	return labelChairRe.MatchString(label)
}

// HearingChamber derives the hearing's chamber from its committees'
// chambers: JOINT when they disagree.
func HearingChamber(chambers []string) string {
	distinct := make(map[string]bool)
	for _, c := range chambers {
		distinct[c] = true
	}
	if len(distinct) > 1 {
		return model.ChamberJoint
	}
	for c := range distinct {
		return c
	}
	return ""
}

// Normalize lowercases s and strips punctuation, for loose containment
// checks against witness descriptions and rosters.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		default:
		}
	}
	return b.String()
}
