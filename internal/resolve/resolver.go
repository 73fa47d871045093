// Package resolve attributes speaker labels to canonical identities via a
// strict first-unique-match cascade over committee members, witnesses, and
// guest legislators. Ambiguity at any step is treated as a non-match, since
// an arbitrary pick is worse than a declared unknown.
package resolve

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/opencapitol/gavel/internal/bio"
	"github.com/opencapitol/gavel/internal/model"
	"github.com/opencapitol/gavel/internal/parse"
)

// Hearing is the per-hearing context the cascade consults. It is computed
// once per hearing and never mutated during resolution.
type Hearing struct {
	Congress       string   // congress number as a string, matching the member tables
	Committees     []string // canonical committee codes of the hearing
	Chamber        string   // hearing chamber
	Witnesses      []string // invited witness descriptions
	Chair          string   // chair surname from the front matter, may be ""
	PresentMembers string   // concatenated attendance rosters, may be ""
	FrontMatter    string   // transcript text preceding the first statement
}

// Identity is the resolved speaker metadata. Fields that cannot be
// established carry the NA sentinel.
type Identity struct {
	NameFull       string
	MemberID       string
	Party          string
	Majority       string
	PartySeniority string
	Leadership     string
	PersonChamber  string
}

// Resolver resolves speaker labels against a biographical index.
type Resolver struct {
	bio *bio.Index
}

// New creates a Resolver over the given index.
func New(ix *bio.Index) *Resolver {
	return &Resolver{bio: ix}
}

// unknown is the explicit fallthrough identity.
func unknown() Identity {
	return Identity{
		NameFull:       model.NA,
		MemberID:       model.NA,
		Party:          model.NA,
		Majority:       model.NA,
		PartySeniority: model.NA,
		Leadership:     model.NA,
	}
}

// Resolve runs the cascade for one statement's label and detected state.
// The first rule yielding exactly one candidate wins; ties fall through.
func (r *Resolver) Resolve(h *Hearing, nameRaw, state string) Identity {
	nameLast := r.lastName(h, nameRaw)

	id, ok := r.matchCommitteeMember(h, nameLast, state)
	if !ok {
		id, ok = r.matchWitness(h, nameLast)
	}
	if !ok {
		id, ok = r.matchGuest(h, nameLast)
	}
	if !ok {
		id, ok = r.matchCongressWide(h, nameLast)
	}
	if !ok {
		id = unknown()
	}

	if id.PersonChamber == "" {
		id.PersonChamber = h.Chamber
	}
	return id
}

// lastName extracts the effective surname for matching. Labels that refer
// to the chair by role borrow the chair's surname from the front matter.
func (r *Resolver) lastName(h *Hearing, nameRaw string) string {
	if parse.IsChairLabel(nameRaw) && h.Chair != "" {
		return h.Chair
	}
	return findLastName(nameRaw)
}

// matchCommitteeMember resolves against legislators who sat on one of the
// hearing's committees in the hearing's congress, optionally narrowed by a
// state detected in the label.
func (r *Resolver) matchCommitteeMember(h *Hearing, nameLast, state string) (Identity, bool) {
	var matches []*model.LegislatorRecord
	for _, rec := range r.bio.Candidates(nameLast) {
		facts, ok := rec.Memberships[h.Congress]
		if !ok {
			continue
		}
		if !anyCommittee(facts, h.Committees) {
			continue
		}
		matches = append(matches, rec)
	}

	if state != "" {
		abbrev, ok := parse.StateAbbrev(state)
		if ok {
			var narrowed []*model.LegislatorRecord
			for _, rec := range matches {
				if strings.Contains(rec.State, abbrev) {
					narrowed = append(narrowed, rec)
				}
			}
			matches = narrowed
		}
	}

	if len(matches) != 1 {
		return Identity{}, false
	}

	rec := matches[0]
	facts := rec.Memberships[h.Congress]
	_, first := firstFact(facts)

	id := Identity{
		NameFull: rec.Name(),
		MemberID: strconv.Itoa(rec.ID),
		Party:    first.Party,
	}

	current := intersectCommittees(h.Committees, facts)
	id.PersonChamber = facts[current[0]].Chamber

	if len(current) == 1 {
		fact := facts[current[0]]
		id.Majority = fact.Majority
		id.PartySeniority = fact.PartySeniority
		id.Leadership = fact.Leadership
	} else {
		// The legislator holds several of the hearing's committees this
		// congress, so per-committee attributes are ambiguous.
		id.Majority = model.NA
		id.PartySeniority = model.NA
		id.Leadership = model.NA
	}

	return id, true
}

// matchWitness resolves against the hearing's witness list. Witnesses who
// are themselves legislators are excluded so they resolve through the
// member rules instead.
func (r *Resolver) matchWitness(h *Hearing, nameLast string) (Identity, bool) {
	needle := parse.Normalize(nameLast)
	if needle == "" {
		return Identity{}, false
	}

	var matches []string
	for _, w := range h.Witnesses {
		if strings.Contains(parse.Normalize(w), needle) {
			matches = append(matches, w)
		}
	}

	if len(matches) != 1 ||
		strings.Contains(matches[0], "Representative in Congress") ||
		strings.Contains(matches[0], "Senator") {
		return Identity{}, false
	}

	return Identity{
		NameFull:       matches[0],
		MemberID:       model.NA,
		Party:          "WITNESS",
		Majority:       model.NA,
		PartySeniority: model.NA,
		Leadership:     model.NA,
		PersonChamber:  h.Chamber,
	}, true
}

// matchGuest resolves against legislators who served in the hearing's
// chamber and congress and whose surname appears in the attendance roster.
func (r *Resolver) matchGuest(h *Hearing, nameLast string) (Identity, bool) {
	if h.PresentMembers == "" {
		return Identity{}, false
	}
	roster := strings.ToLower(h.PresentMembers)

	var matches []*model.LegislatorRecord
	for _, rec := range r.bio.Candidates(nameLast) {
		if !strings.Contains(rec.Chamber, h.Chamber) {
			continue
		}
		if !rec.ServedIn(h.Congress) {
			continue
		}
		if !surnameInRoster(rec, roster) {
			continue
		}
		matches = append(matches, rec)
	}

	if len(matches) != 1 {
		return Identity{}, false
	}

	rec := matches[0]
	_, first := firstFact(rec.Memberships[h.Congress])

	return Identity{
		NameFull:       rec.Name(),
		MemberID:       strconv.Itoa(rec.ID),
		Party:          first.Party,
		Majority:       model.NA,
		PartySeniority: model.NA,
		Leadership:     model.NA,
		PersonChamber:  first.Chamber,
	}, true
}

// matchCongressWide is the last resort: a unique surname match anywhere in
// the congress, confirmed by a front-matter mention that marks the person
// as a legislator. Guards against coincidental surname collisions.
func (r *Resolver) matchCongressWide(h *Hearing, nameLast string) (Identity, bool) {
	var matches []*model.LegislatorRecord
	for _, rec := range r.bio.Candidates(nameLast) {
		if rec.ServedIn(h.Congress) {
			matches = append(matches, rec)
		}
	}

	if len(matches) != 1 {
		return Identity{}, false
	}

	line, ok := frontMatterMention(h.FrontMatter, nameLast)
	if !ok {
		return Identity{}, false
	}

	firstWord := ""
	if fields := strings.Fields(line); len(fields) > 0 {
		firstWord = fields[0]
	}
	confirmed := firstWord == "Representative" || firstWord == "Senator" ||
		strings.Contains(line, "Representative in Congress") ||
		strings.Contains(line, "U.S. Senator")
	if !confirmed {
		return Identity{}, false
	}

	rec := matches[0]
	id := Identity{
		NameFull:      rec.Name(),
		MemberID:      strconv.Itoa(rec.ID),
		Party:         rec.Party,
		PersonChamber: rec.Chamber,
	}

	facts := rec.Memberships[h.Congress]
	current := intersectCommittees(h.Committees, facts)
	if len(current) == 1 {
		fact := facts[current[0]]
		id.Majority = fact.Majority
		id.PartySeniority = fact.PartySeniority
		id.Leadership = fact.Leadership
	} else {
		id.Majority = model.NA
		id.PartySeniority = model.NA
		id.Leadership = model.NA
	}

	return id, true
}

// namePunct is the punctuation stripped from label names. Hyphens survive,
// since hyphenated surnames must keep their shape for matching.
const namePunct = "!\"#$%&'()*+,./:;<=>?@[\\]^_`{|}~"

// findLastName reduces a raw speaker label to a bare surname.
func findLastName(label string) string {
	label = parse.StripSpeakerPrefixes(label)
	label = bracketedRe.ReplaceAllString(label, "")
	label = strings.TrimSpace(label)
	label = strings.Map(func(r rune) rune {
		if strings.ContainsRune(namePunct, r) {
			return -1
		}
		return r
	}, label)
	return strings.TrimSpace(label)
}

var bracketedRe = regexp.MustCompile(`\[.*?\]`)

// frontMatterMention finds the nearest line in the front matter mentioning
// the surname as a standalone token.
func frontMatterMention(frontMatter, nameLast string) (string, bool) {
	if nameLast == "" {
		return "", false
	}
	re, err := regexp.Compile(`(?im)^(?:.* )?` + regexp.QuoteMeta(nameLast) + `[ ,.].*$`)
	if err != nil {
		return "", false
	}
	m := re.FindString(frontMatter)
	if m == "" {
		return "", false
	}
	return strings.TrimSpace(m), true
}

// surnameInRoster reports whether any alias surname appears in the
// lowercased roster text.
func surnameInRoster(rec *model.LegislatorRecord, roster string) bool {
	for _, alias := range rec.Aliases {
		surname := strings.ToLower(bio.AliasSurname(alias))
		if surname != "" && strings.Contains(roster, surname) {
			return true
		}
	}
	return false
}

// anyCommittee reports whether any of the hearing's committee codes appears
// in the membership facts.
func anyCommittee(facts map[string]model.MembershipFact, committees []string) bool {
	for _, c := range committees {
		if _, ok := facts[c]; ok {
			return true
		}
	}
	return false
}

// intersectCommittees returns the hearing committees the member sat on, in
// hearing order.
func intersectCommittees(committees []string, facts map[string]model.MembershipFact) []string {
	var out []string
	for _, c := range committees {
		if _, ok := facts[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// firstFact returns the membership fact for the lexicographically first
// committee code, giving a deterministic source for congress-level fields
// like party.
func firstFact(facts map[string]model.MembershipFact) (string, model.MembershipFact) {
	codes := make([]string, 0, len(facts))
	for c := range facts {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	if len(codes) == 0 {
		return "", model.MembershipFact{}
	}
	return codes[0], facts[codes[0]]
}
