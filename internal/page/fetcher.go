package page

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"doc-recon/internal/logger"
)

// DefaultUserAgent is sent with every page request
const DefaultUserAgent = "doc-recon/1.0 (+https://github.com/doc-recon)"

// maxPageSize caps how much of a response body is read
const maxPageSize = 32 << 20

var (
	// ErrHTTPStatus is returned when the server answers with a non-2xx status
	ErrHTTPStatus = errors.New("unexpected HTTP status")
)

// Fetcher loads documentation pages over HTTP(S)
type Fetcher struct {
	client    *http.Client
	cache     *Cache
	retry     RetryConfig
	userAgent string
}

// FetcherOption configures a Fetcher
type FetcherOption func(*Fetcher)

// WithCache enables the on-disk page cache
func WithCache(c *Cache) FetcherOption {
	return func(f *Fetcher) { f.cache = c }
}

// WithRetry overrides the retry policy
func WithRetry(cfg RetryConfig) FetcherOption {
	return func(f *Fetcher) { f.retry = cfg }
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = c }
}

// NewFetcher creates a Fetcher with the given timeout per request
func NewFetcher(timeout time.Duration, opts ...FetcherOption) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	f := &Fetcher{
		client:    &http.Client{Timeout: timeout},
		retry:     DefaultRetryConfig(),
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Load downloads and parses the page at url, using the cache if available
func (f *Fetcher) Load(ctx context.Context, url string) (*Document, error) {
	// Cached pages are stored already decoded to UTF-8
	if data := f.cache.Get(url); data != nil {
		return ParseString(Decode(data, ""), url)
	}

	var body []byte
	var contentType string
	err := withRetry(ctx, f.retry, func() error {
		var err error
		body, contentType, err = f.get(ctx, url)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetching page from %s: %w", url, err)
	}

	html := Decode(body, contentType)
	if err := f.cache.Put(url, []byte(html)); err != nil {
		// Non-fatal, the page is already in memory
		logger.Warn("Failed to cache page %s: %v", url, err)
	}

	return ParseString(html, url)
}

// Invalidate drops the cached copy of url so the next Load goes to the network
func (f *Fetcher) Invalidate(url string) {
	if f != nil {
		f.cache.Invalidate(url)
	}
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", NonRetryable(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := fmt.Errorf("%w: HTTP %d", ErrHTTPStatus, resp.StatusCode)
		// Client errors will not fix themselves
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, "", NonRetryable(statusErr)
		}
		return nil, "", statusErr
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, "", fmt.Errorf("reading page: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
