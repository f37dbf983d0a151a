// Package api is a small client for the paper catalog's HTTP API.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/paperhub/pkg/debug"
	"github.com/vanderheijden86/paperhub/pkg/model"
)

const (
	// DefaultBaseURL is where the catalog serves its API during development.
	DefaultBaseURL = "http://localhost:5000/api"

	// DefaultTimeout bounds every request.
	DefaultTimeout = 30 * time.Second

	// DefaultPerPage is the page size used when none is configured.
	DefaultPerPage = 10

	// FetchTimeout bounds a trigger-fetch call, which runs the scraper and
	// summarizer upstream before answering.
	FetchTimeout = 10 * time.Minute
)

// Client talks to the catalog API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	perPage    int
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets the API base, e.g. "http://host:5000/api".
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithPerPage sets the page size sent with list requests.
func WithPerPage(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.perPage = n
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a catalog client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		perPage:    DefaultPerPage,
		userAgent:  "paperhub",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// PerPage returns the page size used by ListPapers.
func (c *Client) PerPage() int { return c.perPage }

// ListPapers fetches one page of paper summaries. Pages start at 1.
func (c *Client) ListPapers(ctx context.Context, page int) (*model.PaperPage, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(c.perPage))

	var out model.PaperPage
	if err := c.do(ctx, http.MethodGet, "/papers?"+q.Encode(), &out); err != nil {
		return nil, fmt.Errorf("listing papers (page %d): %w", page, err)
	}
	if out.Page == 0 {
		out.Page = page
	}
	if out.PerPage == 0 {
		out.PerPage = c.perPage
	}
	return &out, nil
}

// GetPaper fetches the full record of one paper.
func (c *Client) GetPaper(ctx context.Context, id int) (*model.PaperDetail, error) {
	var out model.PaperDetail
	if err := c.do(ctx, http.MethodGet, "/papers/"+strconv.Itoa(id), &out); err != nil {
		return nil, fmt.Errorf("getting paper %d: %w", id, err)
	}
	if out.ID == 0 {
		out.ID = id
	}
	return &out, nil
}

// TriggerFetch asks the catalog to scrape and summarise new papers. A
// response with status "error" is returned as an error along with the
// decoded result.
func (c *Client) TriggerFetch(ctx context.Context) (*model.FetchResult, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, FetchTimeout)
		defer cancel()
	}
	var out model.FetchResult
	err := c.doWith(ctx, c.fetchHTTPClient(), http.MethodPost, "/fetch", &out)
	if err != nil {
		return nil, fmt.Errorf("triggering fetch: %w", err)
	}
	if out.Status == "error" {
		return &out, fmt.Errorf("triggering fetch: %s", out.Error)
	}
	return &out, nil
}

// fetchHTTPClient returns a copy of the HTTP client without its per-request
// timeout, so the ingest call is bounded by its context alone.
func (c *Client) fetchHTTPClient() *http.Client {
	hc := *c.httpClient
	hc.Timeout = 0
	return &hc
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	return c.doWith(ctx, c.httpClient, method, path, out)
}

func (c *Client) doWith(ctx context.Context, hc *http.Client, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()
	debug.LogTiming(method+" "+path, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", ErrNetworkError, err)
	}
	if err := checkHTTPErrors(resp, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// checkHTTPErrors turns a non-2xx response into an *APIError, using the
// body's "error" field when present.
func checkHTTPErrors(resp *http.Response, body []byte) error {
	if resp.StatusCode < 400 {
		return nil
	}
	var payload struct {
		Error string `json:"error"`
	}
	msg := http.StatusText(resp.StatusCode)
	if len(bytes.TrimSpace(body)) > 0 && json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
