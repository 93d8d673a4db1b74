package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// Endpoint paths on the backend.
const (
	TaskPath     = "/run-backend-task"
	LoadMorePath = "/load-more"
)

// Client talks to the search backend. Safe for concurrent use.
type Client struct {
	base      *url.URL
	http      *http.Client
	limiter   *rate.Limiter
	sanitizer *Sanitizer
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRateLimit paces outgoing requests. A non-positive rps disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a client for the backend at baseURL
// (e.g. "http://127.0.0.1:5000"). timeout bounds each HTTP round trip; the
// task-start call runs the whole scrape, so it should be generous.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		base:      u,
		http:      &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Every(250*time.Millisecond), 2),
		sanitizer: NewSanitizer(),
		userAgent: "scour/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// StartTask runs the backend scraping task for query and returns the
// location of its results. Any non-2xx status, a status other than
// "success", or a success without a redirect is an error.
func (c *Client) StartTask(ctx context.Context, query string, page int) (TaskResult, error) {
	body, err := json.Marshal(taskRequest{Query: query, Page: page})
	if err != nil {
		return TaskResult{}, fmt.Errorf("marshal task request: %w", err)
	}

	reqID := uuid.NewString()
	raw, err := c.do(ctx, http.MethodPost, c.endpoint(TaskPath, nil), body, reqID)
	if err != nil {
		return TaskResult{RequestID: reqID}, err
	}

	var resp taskResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return TaskResult{RequestID: reqID}, &AppError{Message: fmt.Sprintf("parse task response: %v", err)}
	}
	if resp.Status != StatusSuccess {
		msg := resp.Message
		if msg == "" {
			msg = "Search failed"
		}
		return TaskResult{RequestID: reqID}, &AppError{Status: resp.Status, Message: msg}
	}
	if err := resp.validateSuccess(); err != nil {
		return TaskResult{RequestID: reqID}, err
	}

	return TaskResult{
		RedirectURL: resp.RedirectURL,
		ScrapeTime:  resp.ScrapeTime,
		RequestID:   reqID,
	}, nil
}

// FetchPage retrieves one page of results. An empty page is not an error;
// this is what the results screen uses for its first page.
func (c *Client) FetchPage(ctx context.Context, query string, page int) (Page, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))

	reqID := uuid.NewString()
	out := Page{Query: query, Number: page, RequestID: reqID}

	raw, err := c.do(ctx, http.MethodGet, c.endpoint(LoadMorePath, q), nil, reqID)
	if err != nil {
		return out, err
	}

	var resp pageResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return out, &AppError{Message: fmt.Sprintf("parse page response: %v", err)}
	}
	if resp.Status != StatusSuccess {
		return out, &AppError{Status: resp.Status, Message: resp.Message}
	}
	if err := validateResults(resp.Results); err != nil {
		return out, err
	}

	out.Results = make([]Result, len(resp.Results))
	for i, r := range resp.Results {
		out.Results[i] = c.sanitizer.Result(r)
	}
	if resp.TotalPages != nil && *resp.TotalPages > 0 {
		out.TotalPages = *resp.TotalPages
	}
	return out, nil
}

// LoadMore retrieves the next page for incremental loading. Unlike
// FetchPage, a page without results is reported as ErrEmptyPage.
func (c *Client) LoadMore(ctx context.Context, query string, page int) (Page, error) {
	p, err := c.FetchPage(ctx, query, page)
	if err != nil {
		return p, err
	}
	if len(p.Results) == 0 {
		return p, fmt.Errorf("page %d: %w", page, ErrEmptyPage)
	}
	return p, nil
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if q != nil {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// do performs one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, target string, body []byte, reqID string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Message: serverMessage(raw)}
	}
	return raw, nil
}

// serverMessage extracts the "message" field of an error body, if any.
func serverMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Message
}

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
