package fetch

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"golang.org/x/net/html"

	"github.com/opencapitol/gavel/internal/model"
)

// Saver persists scraped hearings. Implemented by the postgres store.
type Saver interface {
	SaveHearing(ctx context.Context, rec *model.HearingRecord) error
}

// Scraper walks the repository's browse pages, discovers hearing packages,
// and saves each hearing's transcript and metadata.
type Scraper struct {
	client *Client
	saver  Saver
	log    *zap.Logger

	seen map[string]bool
}

// NewScraper creates a Scraper.
func NewScraper(client *Client, saver Saver, log *zap.Logger) *Scraper {
	return &Scraper{
		client: client,
		saver:  saver,
		log:    log,
		seen:   make(map[string]bool),
	}
}

// Crawl walks link pages breadth-first from the seed URL until no new
// hearing packages remain. Per-page failures are logged and skipped.
func (s *Scraper) Crawl(ctx context.Context, seedURL string) error {
	queue := []string{seedURL}
	saved := 0

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		pageURL := queue[0]
		queue = queue[1:]
		if s.seen[pageURL] {
			continue
		}
		s.seen[pageURL] = true

		body, err := s.client.Get(ctx, pageURL)
		if err != nil {
			s.log.Warn("page fetch failed", zap.String("url", pageURL), zap.Error(err))
			continue
		}

		for _, link := range extractLinks(body, pageURL) {
			if s.seen[link] {
				continue
			}
			if jacketURIRe.MatchString(link) {
				if err := s.saveHearing(ctx, link); err != nil {
					s.log.Warn("hearing save failed", zap.String("url", link), zap.Error(err))
				} else {
					saved++
				}
				s.seen[link] = true
			} else if strings.Contains(link, "browse") {
				queue = append(queue, link)
			}
		}
	}

	s.log.Info("crawl complete", zap.Int("hearings", saved))
	return nil
}

// saveHearing fetches one package's metadata and transcript and persists
// the assembled record.
func (s *Scraper) saveHearing(ctx context.Context, packageURL string) error {
	metaBody, err := s.client.Get(ctx, metadataURL(packageURL))
	if err != nil {
		return fmt.Errorf("fetch metadata: %w", err)
	}

	rec, err := ParseHearingMeta(metaBody, packageURL)
	if err != nil {
		return err
	}

	textBody, err := s.client.Get(ctx, transcriptURL(packageURL))
	if err != nil {
		return fmt.Errorf("fetch transcript: %w", err)
	}
	rec.Transcript = transcriptText(textBody)

	return s.saver.SaveHearing(ctx, rec)
}

// metadataURL derives the mods metadata location for a package page.
func metadataURL(packageURL string) string {
	return strings.TrimSuffix(packageURL, "/") + "/mods.xml"
}

// transcriptURL derives the plain-text transcript location for a package
// page.
func transcriptURL(packageURL string) string {
	return strings.TrimSuffix(packageURL, "/") + "/htm"
}

// transcriptText strips HTML markup from a transcript page, preserving the
// typeset whitespace the segmentation heuristics depend on.
func transcriptText(body []byte) string {
	root, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return string(body)
	}

	pres := findAll(root, func(n *html.Node) bool { return n.Data == "pre" })
	if len(pres) == 0 {
		return string(body)
	}

	var b strings.Builder
	for _, pre := range pres {
		var walk func(*html.Node)
		walk = func(n *html.Node) {
			if n.Type == html.TextNode {
				b.WriteString(n.Data)
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
		walk(pre)
	}
	return b.String()
}

// extractLinks collects absolute hrefs from an HTML page.
func extractLinks(body []byte, baseURL string) []string {
	root, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil
	}

	var links []string
	for _, a := range findAll(root, func(n *html.Node) bool { return n.Data == "a" }) {
		href := attr(a, "href")
		if href == "" || strings.HasPrefix(href, "#") {
			continue
		}
		links = append(links, absoluteURL(baseURL, href))
	}
	return links
}

func absoluteURL(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		if i := strings.Index(base, "://"); i >= 0 {
			if j := strings.Index(base[i+3:], "/"); j >= 0 {
				return base[:i+3+j] + href
			}
		}
		return strings.TrimSuffix(base, "/") + href
	}
	return strings.TrimSuffix(base, "/") + "/" + href
}
