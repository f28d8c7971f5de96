package searxng

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rhuss/mcp-searxng/pkg/debug"
	"github.com/rhuss/mcp-searxng/pkg/observability"
)

const (
	// DefaultTimeout bounds a single search round trip.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is a desktop Chrome identity. The simple theme
	// serves its regular HTML page to browser-like clients.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/134.0.0.0 Safari/537.36"

	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7"
)

// Config holds the settings for a Client.
type Config struct {
	// BaseURL of the SearXNG instance, e.g. "https://search.local". Required.
	BaseURL string

	// Timeout for the whole exchange. Zero means DefaultTimeout.
	Timeout time.Duration

	// UserAgent header. Empty means DefaultUserAgent.
	UserAgent string

	// InsecureSkipVerify disables TLS certificate validation.
	InsecureSkipVerify bool

	// HTTPClient overrides the client built from the fields above.
	// Timeout and InsecureSkipVerify are ignored when it is set.
	HTTPClient *http.Client
}

// Client issues search requests against a single SearXNG instance. It is
// safe for concurrent use and keeps no per-call state.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// New creates a Client from cfg.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("searxng: base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("searxng: invalid base URL: %w", err)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // opt-in for self-signed instances
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: transport,
		}
	}

	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
	}, nil
}

// Search runs q against the instance and returns at most q.MaxResults
// results in page order.
func (c *Client) Search(ctx context.Context, q Query) ([]Result, error) {
	markup, err := c.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	results, err := Extract(markup, q.MaxResults)
	if err != nil {
		return nil, err
	}

	observability.SearchResultsReturned.Observe(float64(len(results)))
	debug.Log("searxng", "search completed", "query", q.Text, "results", len(results))
	return results, nil
}

// Fetch validates q, posts it to {baseURL}/search and returns the raw
// response body. Exactly one attempt is made.
func (c *Client) Fetch(ctx context.Context, q Query) ([]byte, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	searchURL := c.baseURL + "/search"
	body := encodeForm(q.Text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, searchURL, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	debug.Log("searxng", "request", "method", http.MethodPost, "url", searchURL)
	debug.Trace("searxng", "request body", "body", body)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	observability.SearchLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		observability.SearchRequestsTotal.WithLabelValues("transport_error").Inc()
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observability.SearchRequestsTotal.WithLabelValues("http_error").Inc()
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Err: fmt.Errorf("%d %s for url: %s",
				resp.StatusCode, http.StatusText(resp.StatusCode), searchURL),
		}
	}

	markup, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.SearchRequestsTotal.WithLabelValues("transport_error").Inc()
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	observability.SearchRequestsTotal.WithLabelValues("success").Inc()
	debug.Trace("searxng", "response", "status", resp.StatusCode, "bytes", len(markup))
	return markup, nil
}

// encodeForm builds the URL-encoded form body for a general-category,
// auto-language, unfiltered search rendered with the simple theme.
func encodeForm(query string) string {
	form := url.Values{}
	form.Set("q", query)
	form.Set("categories", "general")
	form.Set("language", "auto")
	form.Set("time_range", "")
	form.Set("safesearch", "0")
	form.Set("theme", "simple")
	return form.Encode()
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("User-Agent", c.userAgent)
}
