// Package ui provides the Bubble Tea TUI for scour.
package ui

import (
	"github.com/abelbrown/scour/internal/history"
	"github.com/abelbrown/scour/internal/search"
)

// Results of I/O started through AppConfig. The gen field is stamped by the
// App when it issues the command so replies meant for a screen the user has
// already left are dropped.

// TaskResolved is sent when the backend scraping task answers.
type TaskResolved struct {
	Query  string
	Page   int
	Result search.TaskResult
	Err    error
	gen    int
}

// PageBootstrapped is sent when the first page of the results screen
// arrives. An empty page is not an error here.
type PageBootstrapped struct {
	Query string
	Page  search.Page
	Err   error
	gen   int
}

// MoreLoaded is sent when a load-more request completes.
type MoreLoaded struct {
	Page search.Page
	Err  error
	gen  int
}

// RecentLoaded carries the recent searches for the home screen.
type RecentLoaded struct {
	Searches []history.Search
	Err      error
}

// VisitedLoaded reports which of the shown result URLs were opened before.
type VisitedLoaded struct {
	Visited map[string]bool
	Err     error
}

// LinkOpened is sent after a result was marked visited and, when enabled,
// its URL copied to the clipboard.
type LinkOpened struct {
	URL    string
	Copied bool
	Err    error
}

// Navigate asks the App to move to a navigation target such as
// "/search?q=go&page=1".
type Navigate struct {
	Target string
}

// Timer messages. Each carries the identity it was scheduled for.
type errorDismissMsg struct{ seq int }

type stillWorkingMsg struct{ gen int }

type hoverFrameMsg struct {
	card   int
	gen    int // hover generation
	screen int // screen generation
}

type hoverHideMsg struct {
	card   int
	gen    int // hover generation
	screen int // screen generation
}

// SearchRecorded is sent after a search was written to history.
type SearchRecorded struct {
	Query string
	Err   error
}
