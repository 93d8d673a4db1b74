package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL, 5*time.Second, WithRateLimit(0, 0))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClientRejectsBadScheme(t *testing.T) {
	if _, err := NewClient("ftp://example.com", time.Second); err == nil {
		t.Error("expected error for ftp scheme")
	}
}

func TestStartTaskSuccess(t *testing.T) {
	var gotBody taskRequest
	var gotReqID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != TaskPath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		gotReqID = r.Header.Get("X-Request-ID")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"status":"success","redirect_url":"/results?id=7","scrape_time":1.5}`))
	})

	res, err := c.StartTask(context.Background(), "rust async", 2)
	if err != nil {
		t.Fatalf("StartTask: %v", err)
	}
	if res.RedirectURL != "/results?id=7" {
		t.Errorf("RedirectURL = %q", res.RedirectURL)
	}
	if res.ScrapeTime != 1.5 {
		t.Errorf("ScrapeTime = %v", res.ScrapeTime)
	}
	if gotBody.Query != "rust async" || gotBody.Page != 2 {
		t.Errorf("body = %+v", gotBody)
	}
	if gotReqID == "" || gotReqID != res.RequestID {
		t.Errorf("request id %q not echoed in result %q", gotReqID, res.RequestID)
	}
}

func TestStartTaskFailures(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		body     string
		sentinel error
		message  string
	}{
		{"non-success status", 200, `{"status":"error","message":"Scraper crashed"}`, ErrApplication, "Scraper crashed"},
		{"non-success without message", 200, `{"status":"pending"}`, ErrApplication, "Search failed"},
		{"missing redirect", 200, `{"status":"success"}`, ErrApplication, ""},
		{"http 400 with message", 400, `{"status":"error","message":"Invalid search request"}`, ErrTransport, "Invalid search request"},
		{"http 500 bare", 500, `oops`, ErrTransport, "HTTP error! status: 500"},
		{"malformed json", 200, `{"status":`, ErrApplication, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				w.Write([]byte(tt.body))
			})
			_, err := c.StartTask(context.Background(), "q", 1)
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("err = %v, want %v", err, tt.sentinel)
			}
			if tt.message != "" {
				if got := UserMessage(err, "fallback"); got != tt.message {
					t.Errorf("UserMessage = %q, want %q", got, tt.message)
				}
			}
		})
	}
}

func TestStartTaskNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := NewClient(base, time.Second, WithRateLimit(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.StartTask(context.Background(), "q", 1)
	if !IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if got := UserMessage(err, "Failed to start search"); got != "Failed to start search" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestFetchPageDecodesAndSanitizes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != LoadMorePath {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "go & rust" || r.URL.Query().Get("page") != "3" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{
			"status": "success",
			"total_pages": 9,
			"results": [{
				"url": " https://a.example/x ",
				"title": "<b>Go</b> &amp; Rust",
				"description": "  two\n languages <script>x()</script> ",
				"domain": "a.example",
				"text_matches": 2,
				"total_occurrences": 40,
				"keywords": [{"keyword": "<i>go</i>", "count": 30, "source": "text"}]
			}, {
				"url": "https://b.example",
				"title": null
			}]
		}`))
	})

	p, err := c.FetchPage(context.Background(), "go & rust", 3)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if p.TotalPages != 9 || p.Number != 3 || p.Query != "go & rust" {
		t.Errorf("page meta = %+v", p)
	}
	if len(p.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(p.Results))
	}
	r := p.Results[0]
	if r.URL != "https://a.example/x" {
		t.Errorf("URL = %q", r.URL)
	}
	if r.Title != "Go & Rust" {
		t.Errorf("Title = %q", r.Title)
	}
	if r.Description != "two languages" {
		t.Errorf("Description = %q", r.Description)
	}
	if r.Keywords[0].Keyword != "go" || r.Keywords[0].Count != 30 {
		t.Errorf("keyword = %+v", r.Keywords[0])
	}
	if p.Results[1].Title != "" {
		t.Errorf("null title should decode as empty, got %q", p.Results[1].Title)
	}
}

func TestFetchPageEmptyIsNotAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","results":[]}`))
	})
	p, err := c.FetchPage(context.Background(), "q", 1)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if len(p.Results) != 0 || p.TotalPages != 0 {
		t.Errorf("unexpected page %+v", p)
	}
}

func TestLoadMoreEmptyIsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","results":[],"total_pages":3}`))
	})
	_, err := c.LoadMore(context.Background(), "q", 2)
	if !errors.Is(err, ErrEmptyPage) {
		t.Fatalf("err = %v, want ErrEmptyPage", err)
	}
	if got := UserMessage(err, "fallback"); got != "No results found" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestLoadMoreRejectsMalformedResults(t *testing.T) {
	tests := map[string]string{
		"missing url":    `{"status":"success","results":[{"title":"no link"}]}`,
		"negative count": `{"status":"success","results":[{"url":"u","text_matches":-1}]}`,
		"negative kw":    `{"status":"success","results":[{"url":"u","keywords":[{"keyword":"k","count":-4}]}]}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})
			_, err := c.LoadMore(context.Background(), "q", 2)
			if !errors.Is(err, ErrApplication) {
				t.Fatalf("err = %v, want ErrApplication", err)
			}
			if !strings.Contains(err.Error(), "malformed result 0") {
				t.Errorf("error should name the result: %v", err)
			}
		})
	}
}

func TestLoadMoreHTTP500(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := c.LoadMore(context.Background(), "q", 2)
	var se *StatusError
	if !errors.As(err, &se) || se.Code != 500 {
		t.Fatalf("err = %v, want StatusError 500", err)
	}
}

func TestRateLimiterHonorsContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","results":[]}`))
	})
	WithRateLimit(0.001, 1)(c)

	if _, err := c.FetchPage(context.Background(), "q", 1); err != nil {
		t.Fatalf("first call should use the burst token: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := c.FetchPage(ctx, "q", 1); err == nil || !strings.Contains(err.Error(), "rate limiter") {
		t.Errorf("expected rate limiter error, got %v", err)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&AppError{Status: "error", Message: "boom"}, "boom"},
		{&AppError{Status: "error"}, "fallback"},
		{&StatusError{Code: 502}, "HTTP error! status: 502"},
		{&StatusError{Code: 400, Message: "Missing query parameter"}, "Missing query parameter"},
		{ErrEmptyPage, "No results found"},
		{errors.New("dial tcp: refused"), "fallback"},
	}
	for _, tt := range tests {
		if got := UserMessage(tt.err, "fallback"); got != tt.want {
			t.Errorf("UserMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
