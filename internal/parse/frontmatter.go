package parse

import (
	"regexp"
	"strings"
)

var (
	// presentRe matches attendance rosters near the top of a transcript:
	// "Members present: ...", "Also present: ...", "Present: ...".
	// Group 1 is the roster text up to the terminating period.
	presentRe = regexp.MustCompile(`(?is)(?: {4}|\t)(?:Members |Also )?present[^.]*?:(.*?)\.[\n\r]`)

	// chairRe finds the chair's surname in the introductory material, e.g.
	// "Hon. John Smith, Jr. (chairman of the committee) presiding".
	chairRe = regexp.MustCompile(`(?i)([-A-Za-z'\n]+),?(?: (?:jr|[ivx]+))?[,. \n]*?\s+[(\[]?(?:chairman|chairwoman)\s*(?:of|\)|\]|,)`)

	wsRe = regexp.MustCompile(`\s+`)
)

// FindPresentMembers concatenates every attendance roster found in the
// transcript's front matter, excluding staff rosters. Returns "" when no
// roster is found. The result is matched against alias surnames when
// resolving guest legislators.
func FindPresentMembers(transcript string) string {
	window := transcript
	if len(window) > maxSearchLength {
		window = window[:maxSearchLength]
	}

	var rosters []string
	for _, m := range presentRe.FindAllStringSubmatch(window, -1) {
		roster := wsRe.ReplaceAllString(m[1], " ")
		if strings.Contains(strings.ToLower(roster), "staff") {
			continue
		}
		rosters = append(rosters, roster)
	}

	return strings.Join(rosters, " ")
}

// FindChair extracts the chair's surname from the material immediately
// preceding the first statement. Chairs often speak as "The Chairman"
// without ever being named in a label, so the name has to come from the
// introduction. Returns "" when no chair line is found.
func FindChair(transcript string, firstStatement int) string {
	start := firstStatement - 1000
	if start < 0 {
		start = 0
	}
	if firstStatement > len(transcript) {
		firstStatement = len(transcript)
	}

	m := chairRe.FindStringSubmatch(transcript[start:firstStatement])
	if m == nil {
		return ""
	}
	return wsRe.ReplaceAllString(m[1], "")
}
