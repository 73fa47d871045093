package model

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CommitteeInfo is the canonical code and chamber for one committee.
type CommitteeInfo struct {
	Code    string
	Chamber string
}

// CommitteeMapping maps "CHAMBER-informal name" keys to canonical committee
// codes. Static reference data; a hearing naming a committee absent from the
// mapping is skipped with a warning.
type CommitteeMapping map[string]CommitteeInfo

// Lookup resolves an informal committee name in the context of a chamber.
func (m CommitteeMapping) Lookup(chamber, name string) (CommitteeInfo, bool) {
	info, ok := m[chamber+"-"+name]
	return info, ok
}

// LoadCommitteeMapping reads the committee reference CSV. Rows are
// "CHAMBER-name,code,chamber"; rows with fewer than three fields are
// rejected.
func LoadCommitteeMapping(path string) (CommitteeMapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open committee data: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadCommitteeMapping(f)
}

// ReadCommitteeMapping parses committee reference rows from r.
func ReadCommitteeMapping(r io.Reader) (CommitteeMapping, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	mapping := make(CommitteeMapping)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read committee data: %w", err)
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("committee data row %q: want 3 fields, got %d", row, len(row))
		}
		mapping[row[0]] = CommitteeInfo{Code: row[1], Chamber: row[2]}
	}

	return mapping, nil
}
