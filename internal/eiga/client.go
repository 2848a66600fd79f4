package eiga

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/five82/marquee/internal/schedule"
)

// Fetcher downloads and parses one theater page.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchTheater(ctx context.Context, url string) ([]schedule.Movie, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client fetches theater pages over HTTP.
type Client struct {
	http      *http.Client
	userAgent string
	rules     Rules
}

const (
	defaultUserAgent = "marquee/0.1"
	requestTimeout   = 30 * time.Second
)

// Options configure a Client. Zero values use defaults.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Rules     Rules
	// HTTPClient overrides the underlying client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// NewClient builds a Client.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = requestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		http:      httpClient,
		userAgent: userAgent,
		rules:     opts.Rules,
	}
}

// FetchTheater downloads a theater page and extracts its schedules.
func (c *Client) FetchTheater(ctx context.Context, url string) ([]schedule.Movie, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("GET %s returned status %d", url, resp.StatusCode)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode charset: %w", err)
	}
	return Parse(body, c.rules)
}
