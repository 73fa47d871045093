package model

import (
	"strconv"
	"time"
)

// Chamber labels as recorded in hearing metadata.
const (
	ChamberHouse  = "HOUSE"
	ChamberSenate = "SENATE"
	ChamberJoint  = "JOINT"
)

// NA is the sentinel value used for metadata fields that could not be
// established for a statement (unknown speaker, ambiguous committee, etc.).
const NA = "NA"

// HearingRecord is one hearing as fetched from the document store: the
// transcript plus the metadata needed to segment and attribute it. It is
// read-only once loaded.
type HearingRecord struct {
	ID            string    // GPO jacket identifier, e.g. CHRG-113jhrg79942
	Transcript    string    // full transcript text
	Congress      int       // congress number
	Session       int       // session number within the congress
	Chamber       string    // HOUSE, SENATE or JOINT
	Date          time.Time // hearing date
	Committees    []string  // informal committee names from the metadata page
	Subcommittees []string
	Witnesses     []string // witness descriptions, one per invited witness
	URL           string   // metadata page the record was scraped from
	Sudoc         string   // sudoc catalogue number, often missing
	Number        string   // hearing serial number, often missing
}

// SessionSpan marks one convened-to-adjourned session inside a transcript.
type SessionSpan struct {
	Start int
	End   int
}

// StatementSpan bounds a detected speaker label inside the transcript. The
// text between one span's End and the next span's Start is the statement
// body. Each session's span list ends with a length-1 sentinel that only
// bounds the final real statement.
type StatementSpan struct {
	Start    int
	End      int
	Sentinel bool
}

// ResolvedStatement is one speaker turn with its attribution metadata. Field
// order in IndexHeader mirrors the column order downstream consumers expect.
type ResolvedStatement struct {
	NameRaw        string `json:"name_raw"`        // label as it appears in the transcript
	NameFull       string `json:"name_full"`       // canonical "Last, First" name, or NA
	MemberID       string `json:"member_id"`       // biographical table id, or NA
	Party          string `json:"party"`           // party code, WITNESS, or NA
	State          string `json:"state"`           // state name detected in the label, if any
	Majority       string `json:"majority"`        // majority-status code, or NA
	PartySeniority string `json:"party_seniority"` // within-party seniority rank, or NA
	Jacket         string `json:"jacket"`          // hearing id
	Committees     string `json:"committees"`      // comma-joined committee codes of the hearing
	PersonChamber  string `json:"person_chamber"`  // chamber the speaker serves in
	HearingChamber string `json:"hearing_chamber"` // chamber of the hearing
	Leadership     string `json:"leadership"`      // leadership-post code, or NA
	Congress       int    `json:"congress"`
	Date           string `json:"date"` // mm-dd-yyyy
	Cleaned        string `json:"cleaned"`
}

// IndexHeader is the stable column order for statement metadata output.
var IndexHeader = []string{
	"name_raw", "name_full", "member_id", "party", "state", "majority",
	"party_seniority", "jacket", "committees", "person_chamber",
	"hearing_chamber", "leadership", "congress", "date",
}

// IndexRow returns the statement's metadata fields in IndexHeader order.
func (s *ResolvedStatement) IndexRow() []string {
	return []string{
		s.NameRaw, s.NameFull, s.MemberID, s.Party, s.State, s.Majority,
		s.PartySeniority, s.Jacket, s.Committees, s.PersonChamber,
		s.HearingChamber, s.Leadership, strconv.Itoa(s.Congress), s.Date,
	}
}
