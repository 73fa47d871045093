package pipeline

import (
	"sync"

	"go.uber.org/zap"
)

// Summary accumulates per-hearing outcomes across a batch run. Safe for
// concurrent use by parse workers.
type Summary struct {
	mu      sync.Mutex
	parsed  int
	empty   int
	skipped []SkippedHearing
}

// SkippedHearing records one hearing that could not be parsed and why.
type SkippedHearing struct {
	ID     string
	Reason string
}

// NewSummary creates an empty Summary.
func NewSummary() *Summary {
	return &Summary{}
}

// AddParsed records a successfully parsed hearing. Hearings with zero
// statements are counted separately: a valid, if useless, outcome.
func (s *Summary) AddParsed(statements int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if statements == 0 {
		s.empty++
		return
	}
	s.parsed++
}

// AddSkipped records a hearing skipped with the given reason.
func (s *Summary) AddSkipped(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skipped = append(s.skipped, SkippedHearing{ID: id, Reason: err.Error()})
}

// Counts returns (parsed, empty, skipped) totals.
func (s *Summary) Counts() (int, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parsed, s.empty, len(s.skipped)
}

// Skipped returns the skipped hearings in the order recorded.
func (s *Summary) Skipped() []SkippedHearing {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SkippedHearing, len(s.skipped))
	copy(out, s.skipped)
	return out
}

// Log writes the summary through the given logger.
func (s *Summary) Log(log *zap.Logger) {
	parsed, empty, skipped := s.Counts()
	log.Info("run summary",
		zap.Int("parsed", parsed),
		zap.Int("empty", empty),
		zap.Int("skipped", skipped))
	for _, sk := range s.Skipped() {
		log.Warn("skipped hearing", zap.String("hearing", sk.ID), zap.String("reason", sk.Reason))
	}
}
