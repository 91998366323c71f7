package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"specfinder/internal/domain"
)

const (
	// DefaultBaseURL is the search endpoint origin when none is configured.
	DefaultBaseURL = "http://localhost:8080"

	// SearchPath is the search endpoint path under the base URL.
	SearchPath = "/api/specialists/search"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// RateLimit caps outgoing searches at 5 requests per second.
	RateLimit = 5.0

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 4 << 20
)

// ErrEmptyQuery is returned when a search is attempted with an empty or
// whitespace-only query. No request is issued in that case.
var ErrEmptyQuery = errors.New("search query is empty")

// Client is a rate-limited HTTP client for the specialist search endpoint.
// Each search is a single attempt: failures are reported, never retried.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	limit      int
	fallback   []domain.Specialist
}

// Result is the outcome of one search, always renderable: on failure the
// fallback list is substituted so the caller has records to show.
type Result struct {
	Query       string
	Specialists []domain.Specialist
	Total       int

	// Fallback is true when Specialists holds the substituted example
	// list rather than live results.
	Fallback bool

	// ErrorMessage is a user-visible description of what went wrong,
	// empty on success.
	ErrorMessage string
}

// Failed reports whether the search ended in an error state.
func (r *Result) Failed() bool {
	return r.ErrorMessage != ""
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the search endpoint origin.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLimit caps how many results each search requests. Zero or negative
// means no limit parameter is sent and the server default applies.
func WithLimit(n int) Option {
	return func(c *Client) {
		c.limit = n
	}
}

// WithFallback replaces the default fallback list.
func WithFallback(specialists []domain.Specialist) Option {
	return func(c *Client) {
		c.fallback = specialists
	}
}

// New creates a search client. The base URL comes from the
// SPECFINDER_SEARCH_URL environment variable when set, otherwise
// DefaultBaseURL; options override both.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    DefaultBaseURL,
		fallback:   DefaultFallback(),
	}

	if u := os.Getenv("SPECFINDER_SEARCH_URL"); u != "" {
		c.baseURL = u
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fallback returns the list substituted when a search fails.
func (c *Client) Fallback() []domain.Specialist {
	out := make([]domain.Specialist, len(c.fallback))
	copy(out, c.fallback)
	return out
}

// Search performs one search against the endpoint. The raw query is
// trimmed first; an empty result of that trimming returns ErrEmptyQuery
// without issuing a request.
//
// Endpoint failures do not produce an error: the Result carries the
// fallback list and a user-visible message instead. The only errors are
// ErrEmptyQuery and context cancellation.
func (c *Client) Search(ctx context.Context, rawQuery string) (*Result, error) {
	query := domain.NormalizeQuery(rawQuery)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	searchURL := c.baseURL + SearchPath + "?q=" + url.QueryEscape(query)
	if c.limit > 0 {
		searchURL += "&limit=" + strconv.Itoa(c.limit)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return c.failed(query, fmt.Sprintf("invalid search request: %v", err)), nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return c.failed(query, "could not reach the specialist directory"), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return c.failed(query, "could not read the directory response"), nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.failed(query, fmt.Sprintf("directory returned status %d", resp.StatusCode)), nil
	}

	var envelope domain.SearchEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return c.failed(query, "directory returned an unreadable response"), nil
	}

	if !envelope.Success {
		msg := envelope.Error
		if msg == "" {
			msg = "the directory could not complete the search"
		}
		return c.failed(query, msg), nil
	}

	return &Result{
		Query:       query,
		Specialists: envelope.Results,
		Total:       len(envelope.Results),
	}, nil
}

// failed builds an error Result carrying the fallback list.
func (c *Client) failed(query, message string) *Result {
	return &Result{
		Query:        query,
		Specialists:  c.Fallback(),
		Total:        len(c.fallback),
		Fallback:     true,
		ErrorMessage: message,
	}
}
