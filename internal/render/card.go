// Package render turns search results into terminal cards and drives the
// keyword-frequency popup attached to each card.
package render

import "github.com/abelbrown/scour/internal/search"

// NoTitle is shown when a result has no title.
const NoTitle = "No title available"

// Tag kinds, in display order.
const (
	TagDomain = "domain"
	TagType   = "type"
)

// Tag is a small labeled classification shown next to the URL.
type Tag struct {
	Kind  string
	Value string
}

// Card is the display model of one result. Every optional field of the
// result has already been resolved to its fallback.
type Card struct {
	ID      int // position in the list, assigned by List.Append
	URL     string
	Title   string
	Snippet string
	Tags    []Tag

	// Breakdown is nil when the result has no text matches.
	Breakdown *Breakdown
}

// NewCard builds the card for r. It never fails: only URL is required and
// everything else degrades to a default.
func NewCard(r search.Result) Card {
	c := Card{
		URL:     r.URL,
		Title:   r.Title,
		Snippet: r.Description,
	}
	if c.Title == "" {
		c.Title = NoTitle
	}
	if r.Domain != "" {
		c.Tags = append(c.Tags, Tag{Kind: TagDomain, Value: r.Domain})
	}
	if r.Type != "" {
		c.Tags = append(c.Tags, Tag{Kind: TagType, Value: r.Type})
	}
	if r.TextMatches > 0 {
		b := NewBreakdown(r)
		c.Breakdown = &b
	}
	return c
}
