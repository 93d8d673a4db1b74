package search

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport marks failures below the application protocol: the request
	// could not be sent, or the server answered with a non-2xx status.
	ErrTransport = errors.New("transport failure")

	// ErrApplication marks a response that arrived but reported failure or
	// could not be understood.
	ErrApplication = errors.New("application failure")

	// ErrEmptyPage is returned by LoadMore when the page has no results.
	ErrEmptyPage = errors.New("no results found")
)

// StatusError is a non-2xx HTTP response. Message holds the server's
// "message" field when the body carried one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP error! status: %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("HTTP error! status: %d", e.Code)
}

func (e *StatusError) Unwrap() error { return ErrTransport }

// AppError is a 2xx response that did not report success, or whose payload
// failed validation.
type AppError struct {
	Status  string
	Message string
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected status %q", e.Status)
}

func (e *AppError) Unwrap() error { return ErrApplication }

// UserMessage picks the text shown to the user for err: the server's own
// message when it sent one, the HTTP status for bare transport errors,
// "No results found" for empty pages, and fallback otherwise.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Message != "" {
			return statusErr.Message
		}
		return statusErr.Error()
	}

	if errors.Is(err, ErrEmptyPage) {
		return "No results found"
	}
	return fallback
}
