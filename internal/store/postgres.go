// Package store persists hearings and legislator metadata in postgres,
// using the table layout the scraper establishes.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/opencapitol/gavel/internal/model"
)

// ErrHearingNotFound is returned when a requested hearing id is absent.
var ErrHearingNotFound = errors.New("hearing not found")

// Store wraps the postgres connection.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open connects to postgres and ensures the schema exists.
func Open(cfg model.DatabaseConfig, log *zap.Logger) (*Store, error) {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Name, cfg.User, cfg.Password, cfg.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS members(
			id integer PRIMARY KEY,
			metadata json,
			committee_membership json);

		CREATE TABLE IF NOT EXISTS hearings(
			id text PRIMARY KEY,
			transcript text,
			congress integer,
			session integer,
			chamber text,
			date date,
			committees text[],
			subcommittees text[],
			uri text,
			url text,
			sudoc text,
			number text,
			witness_meta json,
			member_meta json,
			parsed json);`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Hearing loads one hearing by jacket id. Returns ErrHearingNotFound when
// the id is absent, which callers treat as a per-record skip.
func (s *Store) Hearing(ctx context.Context, id string) (*model.HearingRecord, error) {
	const q = `
		SELECT id, transcript, congress, COALESCE(session, 0), chamber, date,
		       committees, subcommittees, url, COALESCE(sudoc, ''),
		       COALESCE(number, ''), witness_meta
		FROM hearings WHERE id = $1`

	var (
		rec         model.HearingRecord
		date        time.Time
		witnessMeta []byte
		committees  pq.StringArray
		subs        pq.StringArray
	)

	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&rec.ID, &rec.Transcript, &rec.Congress, &rec.Session, &rec.Chamber,
		&date, &committees, &subs, &rec.URL, &rec.Sudoc, &rec.Number,
		&witnessMeta)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("hearing %s: %w", id, ErrHearingNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load hearing %s: %w", id, err)
	}

	rec.Date = date
	rec.Committees = committees
	rec.Subcommittees = subs

	if len(witnessMeta) > 0 {
		if err := json.Unmarshal(witnessMeta, &rec.Witnesses); err != nil {
			s.log.Warn("malformed witness metadata",
				zap.String("hearing", id), zap.Error(err))
		}
	}

	return &rec, nil
}

// HearingIDs lists every hearing id in the store.
func (s *Store) HearingIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM hearings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list hearings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan hearing id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// memberMeta is the biographical half of a members row.
type memberMeta struct {
	Name    []string `json:"Name"`
	State   string   `json:"State"`
	Party   string   `json:"Party"`
	Chamber string   `json:"Chamber"`
}

// Members loads every legislator record. Rows with malformed json are
// skipped with a warning rather than failing the run.
func (s *Store) Members(ctx context.Context) ([]model.LegislatorRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, metadata, committee_membership FROM members ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.LegislatorRecord
	for rows.Next() {
		var (
			id         int
			metaRaw    []byte
			memberRaw  []byte
			meta       memberMeta
			membership map[string]map[string]model.MembershipFact
		)
		if err := rows.Scan(&id, &metaRaw, &memberRaw); err != nil {
			return nil, fmt.Errorf("scan member row: %w", err)
		}
		if err := json.Unmarshal(metaRaw, &meta); err != nil {
			s.log.Warn("malformed member metadata", zap.Int("id", id), zap.Error(err))
			continue
		}
		if err := json.Unmarshal(memberRaw, &membership); err != nil {
			s.log.Warn("malformed committee membership", zap.Int("id", id), zap.Error(err))
			continue
		}

		records = append(records, model.LegislatorRecord{
			ID:          id,
			Aliases:     meta.Name,
			State:       meta.State,
			Party:       meta.Party,
			Chamber:     meta.Chamber,
			Memberships: membership,
		})
	}
	return records, rows.Err()
}

// SaveHearing upserts a scraped hearing.
func (s *Store) SaveHearing(ctx context.Context, rec *model.HearingRecord) error {
	witnesses, err := json.Marshal(rec.Witnesses)
	if err != nil {
		return fmt.Errorf("marshal witnesses: %w", err)
	}

	const q = `
		INSERT INTO hearings
			(id, transcript, congress, session, chamber, date, committees,
			 subcommittees, url, sudoc, number, witness_meta)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			transcript = EXCLUDED.transcript,
			witness_meta = EXCLUDED.witness_meta`

	_, err = s.db.ExecContext(ctx, q,
		rec.ID, rec.Transcript, rec.Congress, rec.Session, rec.Chamber,
		rec.Date, pq.Array(rec.Committees), pq.Array(rec.Subcommittees),
		rec.URL, rec.Sudoc, rec.Number, witnesses)
	if err != nil {
		return fmt.Errorf("save hearing %s: %w", rec.ID, err)
	}
	return nil
}

// SaveParsed stores the resolved statements for a hearing in its parsed
// column.
func (s *Store) SaveParsed(ctx context.Context, id string, statements []model.ResolvedStatement) error {
	parsed, err := json.Marshal(statements)
	if err != nil {
		return fmt.Errorf("marshal parsed statements: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE hearings SET parsed = $2 WHERE id = $1`, id, parsed)
	if err != nil {
		return fmt.Errorf("save parsed %s: %w", id, err)
	}
	return nil
}

// Parsed loads the stored resolved statements for every hearing that has
// them, in id order, for corpus assembly.
func (s *Store) Parsed(ctx context.Context) ([][]model.ResolvedStatement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, parsed FROM hearings WHERE parsed IS NOT NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list parsed hearings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out [][]model.ResolvedStatement
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan parsed row: %w", err)
		}
		var statements []model.ResolvedStatement
		if err := json.Unmarshal(raw, &statements); err != nil {
			s.log.Warn("malformed parsed column", zap.String("hearing", id), zap.Error(err))
			continue
		}
		out = append(out, statements)
	}
	return out, rows.Err()
}
