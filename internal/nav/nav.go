// Package nav builds and parses the navigation targets that move the
// client between its screens. Targets keep the backend's URL form so that
// server-supplied redirects can be followed as-is.
package nav

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Kind identifies the screen a target leads to.
type Kind int

const (
	KindUnknown Kind = iota
	KindHome
	KindSearch  // loading screen: runs the backend task
	KindResults // results list
)

func (k Kind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindSearch:
		return "search"
	case KindResults:
		return "results"
	default:
		return "unknown"
	}
}

// Route is a parsed navigation target.
type Route struct {
	Kind  Kind
	Query string
	Page  int    // >= 1 for search and results routes
	ID    string // task id carried by result redirects, if any
	Raw   string
}

// Home is the start screen target.
func Home() string { return "/" }

// SearchURL is the loading-screen target for query at page.
func SearchURL(query string, page int) string {
	return "/search?" + encode(query, page)
}

// ResultsURL is the results-screen target for query at page.
func ResultsURL(query string, page int) string {
	return "/results?" + encode(query, page)
}

func encode(query string, page int) string {
	if page < 1 {
		page = 1
	}
	return "q=" + url.QueryEscape(query) + "&page=" + strconv.Itoa(page)
}

// Parse resolves target, which may be a path with query string or an
// absolute URL. A search or results target without a query resolves to
// home, matching the backend's own redirect.
func Parse(target string) (Route, error) {
	u, err := url.Parse(strings.TrimSpace(target))
	if err != nil {
		return Route{Raw: target}, fmt.Errorf("parse target %q: %w", target, err)
	}

	r := Route{Raw: target}
	path := strings.TrimRight(u.Path, "/")
	switch path {
	case "":
		r.Kind = KindHome
		return r, nil
	case "/search":
		r.Kind = KindSearch
	case "/results":
		r.Kind = KindResults
	default:
		return r, fmt.Errorf("unknown target %q", target)
	}

	q := u.Query()
	r.Query = q.Get("q")
	r.ID = q.Get("id")
	r.Page = 1
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		r.Page = p
	}
	if strings.TrimSpace(r.Query) == "" {
		return Route{Kind: KindHome, Raw: target}, nil
	}
	return r, nil
}
