// Package pager holds the pagination state of the results screen and the
// pure transitions of the load-more state machine.
//
// The results screen owns exactly one State. Begin and Complete return a new
// State instead of mutating in place, so every transition can be tested
// without a terminal or a network.
package pager

import (
	"errors"

	"github.com/abelbrown/scour/internal/search"
)

// Phase is the load-more state machine's current state.
type Phase int

const (
	Idle Phase = iota
	Loading
	// Failed is transient: the shell surfaces the error and the next
	// Begin is accepted as from Idle.
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Generic user-facing messages for failed loads.
const (
	MsgNoResults  = "No results found"
	MsgLoadFailed = "Failed to load more results. Please try again."
)

// State is the pagination state for one query. The zero value is not
// useful; use New.
type State struct {
	query       string
	currentPage int
	totalPages  int
	hasMore     bool
	isLoading   bool
	pending     int // page requested by the in-flight load
	phase       Phase
}

// Request is a load-more request issued by Begin.
type Request struct {
	Query string
	Page  int
}

// Outcome tells the rendering shell what to apply after Complete.
type Outcome struct {
	// Append holds the new results in the order received.
	Append []search.Result
	// Err is the message to surface; empty on success.
	Err string
	// ShowTrigger reports whether the load-more control should be visible.
	ShowTrigger bool
	// Ignored is set when the completion arrived while nothing was loading.
	Ignored bool
}

// New creates the state for query from the first page shown. Pages below 1
// are clamped to 1.
func New(query string, currentPage, totalPages int) State {
	if currentPage < 1 {
		currentPage = 1
	}
	if totalPages < 1 {
		totalPages = 1
	}
	return State{
		query:       query,
		currentPage: currentPage,
		totalPages:  totalPages,
		hasMore:     currentPage < totalPages,
	}
}

func (s State) Query() string    { return s.query }
func (s State) CurrentPage() int { return s.currentPage }
func (s State) TotalPages() int  { return s.totalPages }
func (s State) HasMore() bool    { return s.hasMore }
func (s State) IsLoading() bool  { return s.isLoading }
func (s State) Phase() Phase     { return s.phase }

// Begin starts a load of the next page. It returns false, and the state
// unchanged, when there is nothing more to load or a load is already in
// flight; such requests are dropped, not queued.
func (s State) Begin() (State, Request, bool) {
	if !s.hasMore || s.isLoading {
		return s, Request{}, false
	}
	s.isLoading = true
	s.phase = Loading
	s.pending = s.currentPage + 1
	return s, Request{Query: s.query, Page: s.pending}, true
}

// Complete applies the result of the in-flight load. On failure the
// pagination fields are left exactly as they were. isLoading is false on
// every path.
func (s State) Complete(page search.Page, err error) (State, Outcome) {
	if !s.isLoading {
		return s, Outcome{ShowTrigger: s.hasMore, Ignored: true}
	}
	next := s.pending
	s.isLoading = false
	s.pending = 0
	s.phase = Idle

	if err == nil && len(page.Results) == 0 {
		err = search.ErrEmptyPage
	}
	if err != nil {
		s.phase = Failed
		return s, Outcome{Err: failureMessage(err), ShowTrigger: s.hasMore}
	}

	s.currentPage = next
	if page.TotalPages > 0 {
		s.totalPages = page.TotalPages
	}
	s.hasMore = s.currentPage < s.totalPages

	return s, Outcome{Append: page.Results, ShowTrigger: s.hasMore}
}

// Settle returns a Failed state to Idle once its error has been surfaced.
func (s State) Settle() State {
	if s.phase == Failed {
		s.phase = Idle
	}
	return s
}

func failureMessage(err error) string {
	if errors.Is(err, search.ErrEmptyPage) {
		return MsgNoResults
	}
	return search.UserMessage(err, MsgLoadFailed)
}
