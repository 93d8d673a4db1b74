package search

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips markup from scraped text. Titles and snippets come from
// arbitrary web pages and may contain tags or entities.
//
// Safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a sanitizer that removes all HTML.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text returns s without tags, with entities decoded and whitespace runs
// collapsed to single spaces.
func (s *Sanitizer) Text(v string) string {
	if v == "" {
		return ""
	}
	clean := html.UnescapeString(s.policy.Sanitize(v))
	return strings.Join(strings.Fields(clean), " ")
}

// Result returns a copy of r with every display field cleaned. URL is left
// untouched apart from surrounding whitespace.
func (s *Sanitizer) Result(r Result) Result {
	out := r
	out.URL = strings.TrimSpace(r.URL)
	out.Title = s.Text(r.Title)
	out.Description = s.Text(r.Description)
	out.Domain = s.Text(r.Domain)
	out.Type = s.Text(r.Type)
	if len(r.Keywords) > 0 {
		out.Keywords = make([]Keyword, len(r.Keywords))
		for i, kw := range r.Keywords {
			out.Keywords[i] = Keyword{
				Keyword: s.Text(kw.Keyword),
				Count:   kw.Count,
				Source:  s.Text(kw.Source),
			}
		}
	}
	return out
}
