package model

// MembershipFact holds a legislator's committee-specific attributes for one
// congress: party, majority status, within-party seniority rank, and any
// leadership post. Values are kept as the source's string codes.
type MembershipFact struct {
	Party          string `json:"Party"`
	Majority       string `json:"Majority"`
	PartySeniority string `json:"Party Seniority"`
	Leadership     string `json:"Leadership"`
	Chamber        string `json:"Chamber"`
}

// LegislatorRecord is one legislator's biographical entry. A legislator may
// carry several name spellings (OCR and editorial variants) and serve on
// several committees across several congresses.
type LegislatorRecord struct {
	ID      int
	Aliases []string // "Last, First" spellings; the first is canonical
	State   string   // state abbreviation(s), space-joined when several
	Party   string   // party code outside any committee context
	Chamber string   // chamber(s) served, e.g. "HOUSE" or "HOUSE SENATE"

	// Memberships maps congress number (as a string, matching the source
	// tables) to committee code to that committee's MembershipFact.
	Memberships map[string]map[string]MembershipFact
}

// Name returns the canonical spelling for the legislator.
func (l *LegislatorRecord) Name() string {
	if len(l.Aliases) == 0 {
		return ""
	}
	return l.Aliases[0]
}

// ServedIn reports whether the legislator has any committee assignment in
// the given congress.
func (l *LegislatorRecord) ServedIn(congress string) bool {
	_, ok := l.Memberships[congress]
	return ok
}
