package fixture

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/abelbrown/scour/internal/search"
)

func newServer(t *testing.T, b *Backend) *search.Client {
	t.Helper()
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)
	c, err := search.NewClient(srv.URL, 5*time.Second, search.WithRateLimit(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestTaskRedirectsToResults(t *testing.T) {
	b := New(WithSynthesized(12))
	c := newServer(t, b)

	res, err := c.StartTask(context.Background(), "solar power", 1)
	if err != nil {
		t.Fatalf("StartTask: %v", err)
	}
	u, err := url.Parse(res.RedirectURL)
	if err != nil {
		t.Fatalf("redirect %q: %v", res.RedirectURL, err)
	}
	if u.Path != "/results" || u.Query().Get("q") != "solar power" || u.Query().Get("id") == "" {
		t.Errorf("unexpected redirect %q", res.RedirectURL)
	}
	if b.Calls(search.TaskPath) != 1 {
		t.Errorf("Calls = %d, want 1", b.Calls(search.TaskPath))
	}
}

func TestTaskRejectsEmptyQuery(t *testing.T) {
	c := newServer(t, New())
	_, err := c.StartTask(context.Background(), "  ", 1)
	var se *search.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
	if se.Message != "Invalid search request" {
		t.Errorf("message = %q", se.Message)
	}
}

func TestPagination(t *testing.T) {
	b := New(WithSynthesized(12), WithPageSize(5))
	c := newServer(t, b)
	ctx := context.Background()

	var all []search.Result
	for page := 1; page <= 3; page++ {
		p, err := c.LoadMore(ctx, "wind", page)
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if p.TotalPages != 3 {
			t.Errorf("page %d: TotalPages = %d, want 3", page, p.TotalPages)
		}
		all = append(all, p.Results...)
	}
	if len(all) != 12 {
		t.Errorf("expected 12 results across pages, got %d", len(all))
	}
	if _, err := c.LoadMore(ctx, "wind", 4); !errors.Is(err, search.ErrEmptyPage) {
		t.Errorf("page past the end: err = %v, want ErrEmptyPage", err)
	}
}

func TestSeededCorpusWins(t *testing.T) {
	b := New(WithSynthesized(50))
	b.Seed("Exact", []search.Result{{URL: "https://only.example"}})
	c := newServer(t, b)

	p, err := c.FetchPage(context.Background(), "exact", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Results) != 1 || p.Results[0].URL != "https://only.example" || p.TotalPages != 1 {
		t.Errorf("unexpected page %+v", p)
	}
}

func TestUnseededWithoutSynthesisIsEmpty(t *testing.T) {
	c := newServer(t, New())
	p, err := c.FetchPage(context.Background(), "nothing", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Results) != 0 || p.TotalPages != 1 {
		t.Errorf("unexpected page %+v", p)
	}
}

func TestFailNextIsConsumedOnce(t *testing.T) {
	b := New(WithSynthesized(10))
	b.FailNext(search.LoadMorePath, Failure{Code: 500})
	b.FailNext(search.LoadMorePath, Failure{Code: 200, Message: "Failed to load results: db locked"})
	c := newServer(t, b)
	ctx := context.Background()

	_, err := c.LoadMore(ctx, "x", 2)
	if !search.IsTransport(err) {
		t.Errorf("first call: err = %v, want transport", err)
	}
	_, err = c.LoadMore(ctx, "x", 2)
	if !errors.Is(err, search.ErrApplication) || !strings.Contains(err.Error(), "db locked") {
		t.Errorf("second call: err = %v, want application failure", err)
	}
	if _, err := c.LoadMore(ctx, "x", 2); err != nil {
		t.Errorf("third call should succeed: %v", err)
	}
	if got := b.Calls(search.LoadMorePath); got != 3 {
		t.Errorf("Calls = %d, want 3", got)
	}
}

func TestMissingQueryParameter(t *testing.T) {
	srv := httptest.NewServer(New().Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + search.LoadMorePath + "?page=2")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	a := Synthesize("climate data", 8)
	b := Synthesize("climate data", 8)
	if len(a) != 8 {
		t.Fatalf("len = %d", len(a))
	}
	for i := range a {
		if a[i].URL != b[i].URL || a[i].TotalOccurrences != b[i].TotalOccurrences {
			t.Fatalf("result %d differs between runs", i)
		}
		if err := a[i].Validate(); err != nil {
			t.Errorf("result %d invalid: %v", i, err)
		}
		sum := 0
		for _, kw := range a[i].Keywords {
			sum += kw.Count
		}
		if sum != a[i].TotalOccurrences {
			t.Errorf("result %d: keyword counts sum to %d, total %d", i, sum, a[i].TotalOccurrences)
		}
	}
	if a[3].TextMatches != 0 {
		t.Errorf("every fourth result should have no matches")
	}
}

// TestClientRoundTrip drives the whole client flow against the backend:
// start a task, follow its redirect, bootstrap, page to the end, then a
// server error on load-more.
func TestClientRoundTrip(t *testing.T) {
	b := New(WithSynthesized(7), WithPageSize(5))
	c := newServer(t, b)
	ctx := context.Background()

	res, err := c.StartTask(ctx, "tidal energy", 1)
	if err != nil {
		t.Fatalf("StartTask: %v", err)
	}
	u, err := url.Parse(res.RedirectURL)
	if err != nil {
		t.Fatalf("redirect %q: %v", res.RedirectURL, err)
	}
	query := u.Query().Get("q")

	first, err := c.FetchPage(ctx, query, 1)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if first.Number != 1 || first.TotalPages != 2 || len(first.Results) != 5 {
		t.Fatalf("first page = number %d, total %d, %d results", first.Number, first.TotalPages, len(first.Results))
	}
	if first.RequestID == "" {
		t.Error("page should carry the request ID")
	}
	r := first.Results[0]
	if r.URL == "" || r.Title == "" {
		t.Errorf("result fields not decoded: %+v", r)
	}
	if r.TextMatches > 0 && (len(r.Keywords) == 0 || r.TotalOccurrences == 0) {
		t.Errorf("keyword breakdown not decoded: %+v", r)
	}

	second, err := c.LoadMore(ctx, query, 2)
	if err != nil {
		t.Fatalf("LoadMore page 2: %v", err)
	}
	if second.Number != 2 || len(second.Results) != 2 {
		t.Errorf("second page = number %d, %d results", second.Number, len(second.Results))
	}
	if _, err := c.LoadMore(ctx, query, 3); !errors.Is(err, search.ErrEmptyPage) {
		t.Errorf("page 3: err = %v, want ErrEmptyPage", err)
	}

	b.FailNext(search.LoadMorePath, Failure{Code: http.StatusInternalServerError})
	_, err = c.LoadMore(ctx, query, 2)
	var se *search.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusInternalServerError {
		t.Errorf("failed load-more: err = %v, want 500", err)
	}
	if got := b.Calls(search.LoadMorePath); got != 4 {
		t.Errorf("load-more calls = %d, want 4", got)
	}
}
