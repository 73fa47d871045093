// Package fetch implements the document-repository crawler: a polite HTTP
// client with rate limiting, robots.txt checks, caching and retries, plus
// the metadata-page parsing that turns repository pages into hearing
// records.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// Client fetches repository pages. All requests pass through the rate
// limiter and robots.txt gate; successful responses are cached.
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	maxRetries uint64
	limiter    *rate.Limiter
	robots     *RobotsChecker
	cache      *gocache.Cache
	cacheTTL   time.Duration
}

// Options configures a Client.
type Options struct {
	Timeout           time.Duration
	UserAgent         string
	MaxBodyBytes      int64
	MaxRetries        int
	RequestsPerSecond float64
	BurstSize         int
	CacheTTL          time.Duration
}

// NewClient creates a Client with the given options.
func NewClient(opts Options) *Client {
	if opts.BurstSize <= 0 {
		opts.BurstSize = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:  opts.UserAgent,
		maxBytes:   opts.MaxBodyBytes,
		maxRetries: uint64(opts.MaxRetries),
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.BurstSize),
		robots:     NewRobotsChecker(opts.UserAgent, opts.Timeout),
		cache:      gocache.New(opts.CacheTTL, 10*time.Minute),
		cacheTTL:   opts.CacheTTL,
	}
}

// permanentStatus reports whether an HTTP status is not worth retrying.
func permanentStatus(code int) bool {
	return code >= 400 && code < 500 && code != http.StatusTooManyRequests
}

// Get fetches a URL, honoring robots.txt and the rate limit, retrying
// transient failures with exponential backoff.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if body, found := c.cache.Get(url); found {
		return body.([]byte), nil
	}

	allowed, crawlDelay, err := c.robots.CanFetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("fetch %s: disallowed by robots.txt", url)
	}

	var body []byte
	op := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		if crawlDelay > 0 {
			select {
			case <-ctx.Done():
				return backoff.Permanent(ctx.Err())
			case <-time.After(crawlDelay):
			}
		}

		b, err := c.fetch(ctx, url)
		if err != nil {
			return err
		}
		body = b
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}

	c.cache.Set(url, body, c.cacheTTL)
	return body, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
		if permanentStatus(resp.StatusCode) {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	reader := io.Reader(resp.Body)
	if c.maxBytes > 0 {
		reader = io.LimitReader(resp.Body, c.maxBytes)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read body %s: %w", url, err)
	}
	return body, nil
}
