// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar fetches Google Scholar results pages.
//
// Only the first page of results is requested. Requests are rate limited
// and HTTP 429 responses are retried with backoff; the page body is handed
// back as a parsed document for the extract package.
package scholar

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/scholar-tags/internal/httputil"
	"github.com/pdiddy/scholar-tags/internal/metrics"
	"github.com/pdiddy/scholar-tags/pkg/types"
)

const (
	// DefaultBaseURL is the Google Scholar search endpoint.
	DefaultBaseURL = "https://scholar.google.com/scholar"

	// DefaultUserAgent is a desktop browser string; Scholar rejects obvious bots.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxResults is the number of results requested on the first page.
	DefaultMaxResults = 10

	// DefaultRateLimit allows one request every two seconds.
	DefaultRateLimit = 0.5
)

// Client fetches results pages for title queries.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	userAgent  string
	maxResults int
	maxRetries int
	logger     *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom search endpoint (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a Client from cfg, filling unset fields with defaults.
// A negative RateLimit disables rate limiting.
func NewClient(cfg types.ScholarConfig, opts ...ClientOption) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	limit := rate.Limit(cfg.RateLimit)
	switch {
	case cfg.RateLimit == 0:
		limit = rate.Limit(DefaultRateLimit)
	case cfg.RateLimit < 0:
		limit = rate.Inf
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		maxResults: cfg.MaxResults,
		maxRetries: cfg.MaxRetries,
		logger:     zap.NewNop(),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.maxResults <= 0 {
		c.maxResults = DefaultMaxResults
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TitleQuery restricts a search to papers whose title contains the phrase.
func TitleQuery(title string) string {
	return `intitle:"` + title + `"`
}

// SearchURL returns the results page URL for a title search.
func (c *Client) SearchURL(title string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL %q: %w", c.baseURL, err)
	}
	q := u.Query()
	q.Set("q", TitleQuery(title))
	q.Set("hl", "en")
	q.Set("num", strconv.Itoa(c.maxResults))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Fetch downloads and parses the first results page for title.
func (c *Client) Fetch(ctx context.Context, title string) (*goquery.Document, error) {
	searchURL, err := c.SearchURL(title)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	start := time.Now()
	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries, c.logger)
	if err != nil {
		metrics.FetchDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("scholar request: %w", err)
	}
	defer resp.Body.Close()
	metrics.FetchDuration.WithLabelValues(strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scholar returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing results page: %w", err)
	}
	c.logger.Debug("fetched results page",
		zap.String("title", title),
		zap.Duration("elapsed", time.Since(start)))
	return doc, nil
}
