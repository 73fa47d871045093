package parse

import (
	"regexp"
	"strings"
)

var (
	// insertBlockRe matches bracketed editorial blocks that mark inserted
	// material: "[The prepared statement of ... follows:]", "[The following
	// was received ...]", and generic "[... follows:]" forms.
	insertBlockRe = regexp.MustCompile(
		`(?i)[\[(].*?[\r\n]*.*?(?:prepared|opening)\s+statement.*?[\r\n]*.*?[\])]` +
			`|[\[(].*?[\r\n]*.*?following.*?(?:was|were).*?[\r\n]*.*?[\r\n]*.*?[\])]` +
			`|[\[(].*?[\r\n]*.*?follows?[:.].*?[\r\n]*[^<]*?[\])]`)

	// graphicTagRe recognizes a graphic-reference tag immediately after an
	// insert block, which means the block is a figure caption rather than
	// inserted text.
	graphicTagRe = regexp.MustCompile(`^\s+[<|\[]GRAPHIC`)

	// ruleBlockRe removes dashed-rule delimited exhibit blocks and inline
	// angle-bracket page/column markup.
	ruleBlockRe = regexp.MustCompile(`(?s)-{9,}[\n\r]+.*?[\n\r]+-{9,}|\s*<[^\r\n]+>\s*`)

	// bracketRe removes remaining bracketed editorial insertions, allowing
	// one newline run inside the brackets.
	bracketRe = regexp.MustCompile(`\[.*?[\n\r]*?.*?\]`)

	// headingRe truncates at an all-caps prepared-statement heading.
	headingRe = regexp.MustCompile(`(?s)(OPENING )?STATEMENT.*`)

	// labelInsertRe strips lowercase bracketed insertions from a speaker
	// label (e.g. "[presiding]").
	labelInsertRe = regexp.MustCompile(`\s*\[[a-z ]*?\]\s*`)
)

// CleanStatement strips procedural and editorial boilerplate from a raw
// statement body, leaving only spoken content.
func CleanStatement(s string) string {
	if cut, ok := findInsertCut(s); ok {
		s = s[:cut]
	}

	s = ruleBlockRe.ReplaceAllString(s, "")
	s = bracketRe.ReplaceAllString(s, "")
	s = headingRe.ReplaceAllString(s, "")

	return strings.TrimSpace(s)
}

// findInsertCut locates the first insert block not followed by a graphic
// tag and returns the offset to truncate at.
func findInsertCut(s string) (int, bool) {
	pos := 0
	for pos < len(s) {
		m := insertBlockRe.FindStringIndex(s[pos:])
		if m == nil {
			return 0, false
		}
		start, end := pos+m[0], pos+m[1]
		if !graphicTagRe.MatchString(s[end:]) {
			return start, true
		}
		pos = end
	}
	return 0, false
}

// stateNames is the fixed list of state names (plus the District of
// Columbia) recognized in speaker labels like "Mr. Smith of Texas".
var stateNames = []string{
	"alabama", "alaska", "arizona", "arkansas", "california", "colorado",
	"connecticut", "delaware", "district of columbia", "florida", "georgia",
	"hawaii", "idaho", "illinois", "indiana", "iowa", "kansas", "kentucky",
	"louisiana", "maine", "maryland", "massachusetts", "michigan",
	"minnesota", "mississippi", "missouri", "montana", "nebraska", "nevada",
	"new hampshire", "new jersey", "new mexico", "new york",
	"north carolina", "north dakota", "ohio", "oklahoma", "oregon",
	"pennsylvania", "rhode island", "south carolina", "south dakota",
	"tennessee", "texas", "utah", "vermont", "virginia", "washington",
	"west virginia", "wisconsin", "wyoming",
}

// stateAbbrevs pairs positionally with stateNames.
var stateAbbrevs = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI",
	"ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD", "MA", "MI", "MN",
	"MS", "MO", "MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH",
	"OK", "OR", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA",
	"WV", "WI", "WY",
}

var stateRe = regexp.MustCompile(`(?i)\s+of\s+(` + strings.Join(stateNames, "|") + `)\b`)

// CleanLabel strips bracketed insertions from a raw speaker label and
// detects an "of <state>" phrase. Returns the cleaned label and the
// detected state name (lowercase, empty when absent or ambiguous).
func CleanLabel(label string) (name, state string) {
	name = labelInsertRe.ReplaceAllString(label, "")

	matches := stateRe.FindAllStringSubmatch(name, -1)
	distinct := make(map[string]bool)
	for _, m := range matches {
		distinct[strings.ToLower(m[1])] = true
	}

	if len(distinct) == 1 {
		for st := range distinct {
			state = st
		}
		phraseRe := regexp.MustCompile(`(?i)\s+of\s+` + regexp.QuoteMeta(state))
		name = phraseRe.ReplaceAllString(name, "")
	}

	return name, state
}

// StateAbbrev returns the postal abbreviation for a lowercase state name.
func StateAbbrev(state string) (string, bool) {
	for i, name := range stateNames {
		if name == state {
			return stateAbbrevs[i], true
		}
	}
	return "", false
}
