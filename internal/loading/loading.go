// Package loading holds the state of the loading screen that runs a
// backend scraping task and forwards the user to its results.
//
// Screen is a value type. Every transition returns the next Screen plus an
// Effect describing what the caller must do (send the task request or
// navigate); the package itself performs no I/O.
package loading

import (
	"errors"
	"strings"

	"github.com/abelbrown/scour/internal/nav"
	"github.com/abelbrown/scour/internal/search"
)

// Status and control texts shown on the loading screen.
const (
	MsgStarting     = "Starting web scraping..."
	MsgStillWorking = "Still working... this might take a moment"
	MsgStartFailed  = "Failed to start search"
	RetryLabel      = "Retry Search"
)

// Phase is the lifecycle stage of a loading screen.
type Phase int

const (
	PhaseStarting Phase = iota
	PhaseWaiting
	PhaseRedirecting
	PhaseFailed
	PhaseHome // empty query; the screen only sends the user home
)

func (p Phase) String() string {
	switch p {
	case PhaseStarting:
		return "starting"
	case PhaseWaiting:
		return "waiting"
	case PhaseRedirecting:
		return "redirecting"
	case PhaseFailed:
		return "failed"
	case PhaseHome:
		return "home"
	default:
		return "unknown"
	}
}

// EffectKind says what the caller has to do after a transition.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectStartTask
	EffectNavigate
)

// Effect is the side effect requested by a transition.
type Effect struct {
	Kind   EffectKind
	Target string // navigation target for EffectNavigate
	Query  string // task parameters for EffectStartTask
	Page   int
}

// Screen is the loading screen state.
type Screen struct {
	query  string
	page   int
	phase  Phase
	status string
	done   bool
}

// Start opens the loading screen for query at page. An empty query sends
// the user home without contacting the backend.
func Start(query string, page int) (Screen, Effect) {
	if page < 1 {
		page = 1
	}
	s := Screen{query: query, page: page, phase: PhaseStarting}
	if strings.TrimSpace(query) == "" {
		s.phase = PhaseHome
		s.done = true
		return s, Effect{Kind: EffectNavigate, Target: nav.Home()}
	}

	s.phase = PhaseWaiting
	s.status = MsgStarting
	return s, Effect{Kind: EffectStartTask, Query: query, Page: page}
}

// Resolve applies the outcome of the task request. Outcomes arriving after
// the screen has finished are ignored.
func (s Screen) Resolve(res search.TaskResult, err error) (Screen, Effect) {
	if s.done || s.phase != PhaseWaiting {
		return s, Effect{}
	}
	s.done = true

	if err == nil && res.RedirectURL == "" {
		err = &search.AppError{Status: search.StatusSuccess, Message: "Search failed"}
	}
	if err != nil {
		s.phase = PhaseFailed
		s.status = "Error: " + failureMessage(err)
		return s, Effect{}
	}

	s.phase = PhaseRedirecting
	return s, Effect{Kind: EffectNavigate, Target: res.RedirectURL}
}

// Retry re-runs the search from scratch. Only valid after a failure.
func (s Screen) Retry() (Screen, Effect) {
	if s.phase != PhaseFailed {
		return s, Effect{}
	}
	return s, Effect{Kind: EffectNavigate, Target: nav.SearchURL(s.query, s.page)}
}

// StillWorking replaces the status with a reassurance message if the task
// is still outstanding. It never overwrites an error or a redirect.
func (s Screen) StillWorking() Screen {
	if s.done || s.phase != PhaseWaiting {
		return s
	}
	s.status = MsgStillWorking
	return s
}

func (s Screen) Query() string  { return s.query }
func (s Screen) Page() int      { return s.page }
func (s Screen) Phase() Phase   { return s.phase }
func (s Screen) Status() string { return s.status }

// Busy reports whether the spinner should be shown.
func (s Screen) Busy() bool { return s.phase == PhaseWaiting }

// CanRetry reports whether the retry control is shown.
func (s Screen) CanRetry() bool { return s.phase == PhaseFailed }

// Done reports whether the task outcome has been applied.
func (s Screen) Done() bool { return s.done }

// failureMessage prefers a message from the server. A bare HTTP failure
// without one gets the generic start failure text.
func failureMessage(err error) string {
	var statusErr *search.StatusError
	if errors.As(err, &statusErr) && statusErr.Message == "" {
		return MsgStartFailed
	}
	return search.UserMessage(err, MsgStartFailed)
}
