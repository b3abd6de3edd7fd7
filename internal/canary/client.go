package canary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Fetcher defines the read-only API the dashboard polls.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchMetrics(ctx context.Context) (*MetricsResponse, error)
	FetchPerformance(ctx context.Context, minutes int) (*PerformanceResponse, error)
	FetchRecentMatches(ctx context.Context, minutes int) ([]Match, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the canary HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIURL         = "127.0.0.1:8080"
	defaultUserAgent      = "canarywatch/0.1"
	defaultRequestTimeout = 10 * time.Second
)

// NewClient builds a Client for the given base URL. A bare host:port is
// treated as http. A non-positive timeout uses the default.
func NewClient(apiURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized API root, including any path prefix.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchMetrics retrieves the aggregate counters.
func (c *Client) FetchMetrics(ctx context.Context) (*MetricsResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload MetricsResponse
	if err := c.do(ctx, "api/metrics", "", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchPerformance retrieves the performance window covering the last
// minutes minutes.
func (c *Client) FetchPerformance(ctx context.Context, minutes int) (*PerformanceResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload PerformanceResponse
	if err := c.do(ctx, "api/metrics/performance", minutesQuery(minutes), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchRecentMatches retrieves the matches detected in the last minutes
// minutes. A null list decodes to an empty slice.
func (c *Client) FetchRecentMatches(ctx context.Context, minutes int) ([]Match, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload MatchListResponse
	if err := c.do(ctx, "api/matches/recent", minutesQuery(minutes), &payload); err != nil {
		return nil, err
	}
	if payload.Matches == nil {
		return []Match{}, nil
	}
	return payload.Matches, nil
}

func minutesQuery(minutes int) string {
	values := url.Values{}
	values.Set("minutes", strconv.Itoa(minutes))
	return values.Encode()
}

// do resolves endpoint below the base path, so an API mounted at
// https://host/canary is queried at https://host/canary/api/....
func (c *Client) do(ctx context.Context, endpoint, query string, dest any) error {
	reqURL := c.baseURL.JoinPath(endpoint)
	if !strings.HasPrefix(reqURL.Path, "/") {
		reqURL.Path = "/" + reqURL.Path
	}
	reqURL.RawQuery = query
	path := reqURL.Path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Kind: KindTransport, Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Kind: KindStatus, Path: path, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &FetchError{Kind: KindDecode, Path: path, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse api url %q: unsupported scheme %q", apiURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", apiURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
