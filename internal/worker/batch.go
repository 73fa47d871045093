package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/opencapitol/gavel/internal/pipeline"
)

// Parser parses a single hearing by jacket id.
type Parser interface {
	ParseHearing(ctx context.Context, id string) (*pipeline.Result, error)
}

// jacketRe is the GPO jacket naming convention, e.g. CHRG-113jhrg79942.
var jacketRe = regexp.MustCompile(`^CHRG-[0-9]+[a-z]+[0-9]+$`)

// ValidateIDs rejects id lists that do not follow the jacket convention.
func ValidateIDs(ids []string) error {
	for _, id := range ids {
		if !jacketRe.MatchString(id) {
			return fmt.Errorf("id %q does not match the GPO jacket convention (e.g. CHRG-113jhrg79942)", id)
		}
	}
	return nil
}

// ParseJob is one hearing parse submitted to the pool.
type ParseJob struct {
	ID     string
	Parser Parser
}

// Execute runs the parse for the job's hearing.
func (j *ParseJob) Execute(ctx context.Context) Result {
	result, err := j.Parser.ParseHearing(ctx, j.ID)
	return &ParseResult{ID: j.ID, Result: result, Error: err}
}

// ParseResult is the outcome of one ParseJob.
type ParseResult struct {
	ID     string
	Result *pipeline.Result
	Error  error
}

// Err returns the job's error, if any.
func (r *ParseResult) Err() error {
	return r.Error
}

// BatchProcessor fans hearing parses out over a worker pool.
type BatchProcessor struct {
	parser      Parser
	concurrency int
}

// NewBatchProcessor creates a processor with the given parallelism.
func NewBatchProcessor(parser Parser, concurrency int) *BatchProcessor {
	return &BatchProcessor{parser: parser, concurrency: concurrency}
}

// ProcessIDs parses the given hearings concurrently. Per-hearing failures
// are carried in the results, never aborting the batch.
func (b *BatchProcessor) ProcessIDs(ctx context.Context, ids []string) []*ParseResult {
	if len(ids) == 0 {
		return []*ParseResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	stop := context.AfterFunc(ctx, pool.Shutdown)
	defer stop()

	// Results must be drained while submitting: the pool's channels are
	// buffered and a large batch would otherwise wedge both sides.
	go func() {
		for _, id := range ids {
			pool.Submit(&ParseJob{ID: id, Parser: b.parser})
		}
		pool.Close()
	}()

	out := make([]*ParseResult, 0, len(ids))
	for r := range pool.Results() {
		out = append(out, r.(*ParseResult))
	}
	return out
}

// ProcessFile reads hearing ids from a file (one per line, # comments) and
// parses them concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*ParseResult, error) {
	ids, err := ReadIDsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ids: %w", err)
	}
	if err := ValidateIDs(ids); err != nil {
		return nil, err
	}
	return b.ProcessIDs(ctx, ids), nil
}

// ReadIDsFromFile reads hearing ids from a file, one per line, skipping
// blanks, comments, and duplicates.
func ReadIDsFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var ids []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			ids = append(ids, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return ids, nil
}
