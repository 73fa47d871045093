// Package pipeline wires the per-hearing parse: load the record, segment
// the transcript, resolve each speaker, and emit flat statement rows.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/opencapitol/gavel/internal/bio"
	"github.com/opencapitol/gavel/internal/model"
	"github.com/opencapitol/gavel/internal/parse"
	"github.com/opencapitol/gavel/internal/resolve"
)

// Source supplies hearing records by jacket id.
type Source interface {
	Hearing(ctx context.Context, id string) (*model.HearingRecord, error)
}

// UnknownCommitteeError marks a hearing referencing a committee absent from
// the reference mapping. The hearing is skipped; the batch continues.
type UnknownCommitteeError struct {
	Hearing   string
	Chamber   string
	Committee string
}

func (e *UnknownCommitteeError) Error() string {
	return fmt.Sprintf("hearing %s: committee %q (%s) missing from committee data",
		e.Hearing, e.Committee, e.Chamber)
}

// Pipeline runs the segmentation and attribution stages for single
// hearings. It holds only read-only state and is safe for concurrent use.
type Pipeline struct {
	source     Source
	resolver   *resolve.Resolver
	committees model.CommitteeMapping
	log        *zap.Logger
}

// New creates a Pipeline over the given source, biographical index, and
// committee mapping.
func New(source Source, ix *bio.Index, committees model.CommitteeMapping, log *zap.Logger) *Pipeline {
	return &Pipeline{
		source:     source,
		resolver:   resolve.New(ix),
		committees: committees,
		log:        log,
	}
}

// Result is one hearing's parse outcome. A hearing with no detectable
// statements yields an empty Statements list, which is valid output.
type Result struct {
	ID         string
	Statements []model.ResolvedStatement
	Truncated  bool
}

// ParseHearing loads and parses one hearing. Failures are scoped to the
// hearing: the caller records them and moves on.
func (p *Pipeline) ParseHearing(ctx context.Context, id string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec, err := p.source.Hearing(ctx, id)
	if err != nil {
		return nil, err
	}

	codes, chamber, err := p.resolveCommittees(rec)
	if err != nil {
		return nil, err
	}

	parsed, err := parse.Hearing(rec.Transcript)
	if errors.Is(err, parse.ErrNoStatements) {
		p.log.Warn("no statements detected", zap.String("hearing", id))
		return &Result{ID: id}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse hearing %s: %w", id, err)
	}

	hctx := p.hearingContext(rec, parsed, codes, chamber)

	result := &Result{ID: id, Truncated: parsed.Truncated}
	for _, seg := range parsed.Segments {
		identity := p.resolver.Resolve(hctx, seg.NameRaw, seg.State)

		result.Statements = append(result.Statements, model.ResolvedStatement{
			NameRaw:        seg.NameRaw,
			NameFull:       identity.NameFull,
			MemberID:       identity.MemberID,
			Party:          identity.Party,
			State:          seg.State,
			Majority:       identity.Majority,
			PartySeniority: identity.PartySeniority,
			Jacket:         rec.ID,
			Committees:     strings.Join(codes, ","),
			PersonChamber:  identity.PersonChamber,
			HearingChamber: chamber,
			Leadership:     identity.Leadership,
			Congress:       rec.Congress,
			Date:           rec.Date.Format("01-02-2006"),
			Cleaned:        seg.Cleaned,
		})
	}

	return result, nil
}

// resolveCommittees maps the hearing's informal committee names to canonical
// codes and derives the hearing chamber.
func (p *Pipeline) resolveCommittees(rec *model.HearingRecord) ([]string, string, error) {
	var codes []string
	var chambers []string
	for _, name := range rec.Committees {
		info, ok := p.committees.Lookup(rec.Chamber, name)
		if !ok {
			return nil, "", &UnknownCommitteeError{
				Hearing:   rec.ID,
				Chamber:   rec.Chamber,
				Committee: name,
			}
		}
		codes = append(codes, info.Code)
		chambers = append(chambers, info.Chamber)
	}
	return codes, parse.HearingChamber(chambers), nil
}

// hearingContext computes the immutable per-hearing context the resolver
// consults: chair surname, attendance roster, and front matter.
func (p *Pipeline) hearingContext(rec *model.HearingRecord, parsed *parse.Parsed, codes []string, chamber string) *resolve.Hearing {
	chair := parsed.ChairName()

	present := parse.FindPresentMembers(parsed.Transcript)
	if chair != "" && present != "" {
		present = present + " " + chair
	}

	frontMatter := ""
	if first := parsed.FirstStatementStart(); first > 0 {
		frontMatter = parsed.Transcript[:first]
	}

	return &resolve.Hearing{
		Congress:       strconv.Itoa(rec.Congress),
		Committees:     codes,
		Chamber:        chamber,
		Witnesses:      rec.Witnesses,
		Chair:          chair,
		PresentMembers: present,
		FrontMatter:    frontMatter,
	}
}
