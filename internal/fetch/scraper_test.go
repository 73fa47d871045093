package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/opencapitol/gavel/internal/model"
)

// memSaver collects saved hearings.
type memSaver struct {
	mu   sync.Mutex
	recs []*model.HearingRecord
}

func (m *memSaver) SaveHearing(ctx context.Context, rec *model.HearingRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, rec)
	return nil
}

func TestScraper_Crawl(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/robots.txt", http.NotFound)
	mux.HandleFunc("/browse/seed", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body>
			<a href="/browse/next">Next page</a>
			<a href="/pkg/CHRG-113jhrg79942">Hearing</a>
		</body></html>`)
	})
	mux.HandleFunc("/browse/next", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><a href="#top">Top</a></body></html>`)
	})
	mux.HandleFunc("/pkg/CHRG-113jhrg79942/mods.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<mods>
			<identifier type="uri">/pkg/CHRG-113jhrg79942</identifier>
			<congcommittee><name type="authority-short">Committee on Oversight</name></congcommittee>
			<chamber>JOINT</chamber>
			<heldDate>2014-01-15</heldDate>
		</mods>`)
	})
	mux.HandleFunc("/pkg/CHRG-113jhrg79942/htm", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "<html><body><pre>    The Committee met at 10 a.m.\n    Mr. Smith. Order.</pre></body></html>")
	})

	saver := &memSaver{}
	s := NewScraper(testClient(0), saver, zap.NewNop())

	err := s.Crawl(context.Background(), server.URL+"/browse/seed")
	require.NoError(t, err)

	require.Len(t, saver.recs, 1)
	rec := saver.recs[0]
	assert.Equal(t, "CHRG-113jhrg79942", rec.ID)
	assert.Equal(t, "JOINT", rec.Chamber)
	assert.Equal(t, []string{"Committee on Oversight"}, rec.Committees)
	assert.Contains(t, rec.Transcript, "The Committee met at 10 a.m.")
	assert.Contains(t, rec.Transcript, "    Mr. Smith. Order.")
}

func TestScraper_Crawl_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScraper(testClient(0), &memSaver{}, zap.NewNop())
	err := s.Crawl(ctx, "http://127.0.0.1:0/browse")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTranscriptText(t *testing.T) {
	html := "<html><body><pre>    Mr. Smith. Thank you.\nline two</pre></body></html>"
	got := transcriptText([]byte(html))
	assert.Equal(t, "    Mr. Smith. Thank you.\nline two", got)

	// Pages without a pre block pass through unchanged.
	raw := "plain transcript text"
	assert.Equal(t, raw, transcriptText([]byte(raw)))
}

func TestExtractLinks(t *testing.T) {
	body := `<html><body>
		<a href="https://example.gov/abs">Absolute</a>
		<a href="/root/path">Rooted</a>
		<a href="child">Relative</a>
		<a href="#frag">Fragment</a>
		<a>Empty</a>
	</body></html>`

	links := extractLinks([]byte(body), "https://example.gov/browse/page")
	assert.Equal(t, []string{
		"https://example.gov/abs",
		"https://example.gov/root/path",
		"https://example.gov/browse/page/child",
	}, links)
}

func TestPackageURLs(t *testing.T) {
	assert.Equal(t, "https://x.gov/pkg/a/mods.xml", metadataURL("https://x.gov/pkg/a/"))
	assert.Equal(t, "https://x.gov/pkg/a/htm", transcriptURL("https://x.gov/pkg/a"))
}

func TestScraperTimeBudget(t *testing.T) {
	// Crawl of an unreachable host should fail fast rather than hang.
	s := NewScraper(NewClient(Options{
		Timeout:           500 * time.Millisecond,
		UserAgent:         "gavel-test",
		RequestsPerSecond: 1000,
		BurstSize:         10,
		CacheTTL:          time.Minute,
	}), &memSaver{}, zap.NewNop())

	done := make(chan error, 1)
	go func() {
		done <- s.Crawl(context.Background(), "http://127.0.0.1:1/browse")
	}()

	select {
	case err := <-done:
		// Fetch failures are logged and skipped; the crawl itself ends.
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("crawl did not terminate")
	}
}
