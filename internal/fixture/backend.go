// Package fixture is an in-memory stand-in for the search backend. It serves
// the task-start and load-more endpoints over a seeded or synthesized corpus
// and can inject failures, which makes it useful for tests and local demos.
package fixture

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/abelbrown/scour/internal/search"
)

// DefaultPageSize matches the backend's results-per-page.
const DefaultPageSize = 5

// Failure is a canned error response served instead of the normal one.
type Failure struct {
	Code    int    // HTTP status; 200 with a non-success Status is an application failure
	Status  string // defaults to "error"
	Message string
}

// Backend implements the two search endpoints. Safe for concurrent use.
type Backend struct {
	mu         sync.Mutex
	corpus     map[string][]search.Result
	pageSize   int
	synthesize int // results generated for unseeded queries; 0 disables
	taskDelay  time.Duration
	failures   map[string][]Failure // path -> queued failures
	calls      map[string]int
	tasks      map[string]string // task id -> query
}

// Option configures a Backend.
type Option func(*Backend)

// WithPageSize sets the number of results per page.
func WithPageSize(n int) Option {
	return func(b *Backend) {
		if n > 0 {
			b.pageSize = n
		}
	}
}

// WithSynthesized makes unseeded queries return n generated results.
func WithSynthesized(n int) Option {
	return func(b *Backend) { b.synthesize = n }
}

// WithTaskDelay makes the task-start endpoint sleep, imitating a scrape.
func WithTaskDelay(d time.Duration) Option {
	return func(b *Backend) { b.taskDelay = d }
}

// New creates an empty backend.
func New(opts ...Option) *Backend {
	b := &Backend{
		corpus:   make(map[string][]search.Result),
		pageSize: DefaultPageSize,
		failures: make(map[string][]Failure),
		calls:    make(map[string]int),
		tasks:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Seed sets the ranked results for query.
func (b *Backend) Seed(query string, results []search.Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.corpus[normalize(query)] = results
}

// FailNext queues a failure for the next request to path
// (search.TaskPath or search.LoadMorePath).
func (b *Backend) FailNext(path string, f Failure) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[path] = append(b.failures[path], f)
}

// Calls returns how many requests path has received.
func (b *Backend) Calls(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[path]
}

// Handler returns the HTTP router.
func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post(search.TaskPath, b.handleTask)
	r.Get(search.LoadMorePath, b.handleLoadMore)
	return r
}

func (b *Backend) handleTask(w http.ResponseWriter, r *http.Request) {
	if f, ok := b.record(search.TaskPath); ok {
		writeFailure(w, f)
		return
	}

	var req struct {
		Query string `json:"query"`
		Page  int    `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status":  "error",
			"message": "Invalid search request",
		})
		return
	}

	start := time.Now()
	if b.taskDelay > 0 {
		select {
		case <-time.After(b.taskDelay):
		case <-r.Context().Done():
			return
		}
	}

	id := uuid.NewString()
	b.mu.Lock()
	b.tasks[id] = req.Query
	b.mu.Unlock()

	q := url.Values{}
	q.Set("q", req.Query)
	q.Set("id", id)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       search.StatusSuccess,
		"redirect_url": "/results?" + q.Encode(),
		"scrape_time":  time.Since(start).Seconds(),
	})
}

func (b *Backend) handleLoadMore(w http.ResponseWriter, r *http.Request) {
	if f, ok := b.record(search.LoadMorePath); ok {
		writeFailure(w, f)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status":  "error",
			"message": "Missing query parameter",
		})
		return
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	results := b.results(query)
	total := (len(results) + b.pageSize - 1) / b.pageSize
	if total < 1 {
		total = 1
	}

	from := (page - 1) * b.pageSize
	to := from + b.pageSize
	if from > len(results) {
		from = len(results)
	}
	if to > len(results) {
		to = len(results)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       search.StatusSuccess,
		"results":      results[from:to],
		"current_page": page,
		"has_more":     page < total,
		"total_pages":  total,
	})
}

// record counts a call and pops a queued failure for path, if any.
func (b *Backend) record(path string) (Failure, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[path]++
	queue := b.failures[path]
	if len(queue) == 0 {
		return Failure{}, false
	}
	b.failures[path] = queue[1:]
	return queue[0], true
}

func (b *Backend) results(query string) []search.Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := normalize(query)
	if rs, ok := b.corpus[key]; ok {
		return rs
	}
	if b.synthesize <= 0 {
		return nil
	}
	rs := Synthesize(query, b.synthesize)
	b.corpus[key] = rs
	return rs
}

func normalize(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func writeFailure(w http.ResponseWriter, f Failure) {
	code := f.Code
	if code == 0 {
		code = http.StatusInternalServerError
	}
	status := f.Status
	if status == "" {
		status = "error"
	}
	body := map[string]any{"status": status}
	if f.Message != "" {
		body["message"] = f.Message
	}
	writeJSON(w, code, body)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(w, `{"status":"error","message":%q}`, err.Error())
	}
}
