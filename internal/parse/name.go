// Package parse implements the transcript segmentation engine: session
// boundary detection, statement boundary detection, the speaker-label
// recognition heuristic, and statement cleaning.
package parse

import (
	"regexp"
	"strings"
)

// maxSearchLength bounds how far forward any single scan will look. Some
// transcripts run to millions of characters of appended exhibits; front
// matter and statement labels live well within this window.
const maxSearchLength = 75000

// speakerPrefixes is the closed set of honorific and role prefixes that may
// open a statement label. A line that looks like a name but starts with
// none of these is never treated as a statement start.
var speakerPrefixes = buildPrefixes([]string{
	"Mr.", "Mrs.", "Ms.", "Mr", "Mrs", "Ms", "Chairman", "Chairwoman",
	"Dr.", "Dr", "Senator", "Secretary", "Director", "Representative",
	"Vice Chairman", "Vice Chair", "Admiral", "General", "Gen.", "Judge",
	"Commissioner", "Lieutenant", "Lt.", "Trustee", "Sergeant", "Major",
	"Colonel", "Captain", "Capt.", "Commander", "Specialist", "Voice",
	"The Chairman", "The Chairwoman", "Governor", "Chair", "The Clerk",
	"Clerk", "Mayor", "Reverend", "Justice", "Ambassador", "Chief",
})

func buildPrefixes(base []string) []string {
	out := make([]string, 0, 2*len(base))
	out = append(out, base...)
	for _, p := range base {
		out = append(out, strings.ToUpper(p))
	}
	return out
}

// labelRe matches a candidate speaker label following a new-turn indentation
// marker (four spaces or a tab) and terminated by a period plus a space or
// hyphen. Group 1 is the label itself. The alternatives cover mixed-case
// names, all-caps typesetting, and the literal "Voice" / "The Chairman"
// forms.
var labelRe = regexp.MustCompile(
	`(?: {4}|\t)(` +
		`[A-Z][a-z]+\.? (?:[A-Z][A-Za-z'][-A-Za-z \[\]']*?)*[A-Z\[\]][-A-Za-z\[\]]{1,100}` +
		`|[A-Z]+\.? [A-Z\[\]][-A-Z\[\]]{1,100}` +
		`|Voice` +
		`|The Chair(?:man|woman)` +
		`)\.[- ]`)

// NameMatch is one qualifying speaker label found by NameSearch. Offsets
// address the searched text and bound the label only, not the indentation
// marker or trailing punctuation.
type NameMatch struct {
	Start int
	End   int
	Label string
}

// NameSearch finds the first qualifying speaker label in text, scanning at
// most maxSearchLength characters. A match qualifies when it splits into at
// most five tokens and begins with a known speaker prefix. Returns nil when
// nothing qualifies.
func NameSearch(text string) *NameMatch {
	window := text
	if len(window) > maxSearchLength {
		window = window[:maxSearchLength]
	}

	pos := 0
	for pos < len(window) {
		m := labelRe.FindStringSubmatchIndex(window[pos:])
		if m == nil {
			return nil
		}
		start, end := pos+m[2], pos+m[3]
		label := window[start:end]

		if len(strings.Fields(label)) <= 5 && hasSpeakerPrefix(label) {
			return &NameMatch{Start: start, End: end, Label: label}
		}

		// Resume just past the rejected label; the terminator is left in
		// place so an adjacent candidate can still match.
		pos = end
	}

	return nil
}

// StripSpeakerPrefixes removes leading honorific and role prefixes from a
// label, leaving the name portion.
func StripSpeakerPrefixes(label string) string {
	for _, p := range speakerPrefixes {
		label = strings.TrimPrefix(label, p)
	}
	return label
}

func hasSpeakerPrefix(label string) bool {
	for _, p := range speakerPrefixes {
		if strings.HasPrefix(label, p) {
			return true
		}
	}
	return false
}
