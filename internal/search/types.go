// Package search is the HTTP client for the scrape-and-rank search backend.
//
// The backend exposes two JSON endpoints: one that runs a scraping task for a
// query and reports where its results live, and one that serves a single
// page of ranked results. Responses are validated and their text fields are
// stripped of markup before they reach the UI.
package search

// StatusSuccess is the only "status" value the backend uses for success.
const StatusSuccess = "success"

// Keyword is one entry of a result's keyword frequency breakdown.
type Keyword struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
	Source  string `json:"source"` // where the matches were found, e.g. "title" or "text"
}

// Result is a single ranked search result. Every field except URL is
// optional; absent text arrives as the empty string.
type Result struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Domain      string `json:"domain,omitempty"`
	Type        string `json:"type,omitempty"`

	// TextMatches is the number of keyword matches found in the page body.
	TextMatches int `json:"text_matches"`
	// TotalOccurrences is the sum of all keyword occurrences.
	TotalOccurrences int       `json:"total_occurrences"`
	Keywords         []Keyword `json:"keywords,omitempty"`
}

// Page is one page of results as returned by the load-more endpoint.
type Page struct {
	Query   string
	Number  int
	Results []Result

	// TotalPages is zero when the backend omitted it.
	TotalPages int

	// RequestID is the X-Request-ID sent with the request.
	RequestID string
}

// TaskResult is the outcome of a successful task-start call.
type TaskResult struct {
	RedirectURL string
	ScrapeTime  float64 // seconds, when reported
	RequestID   string
}

// taskRequest is the body of POST /run-backend-task.
type taskRequest struct {
	Query string `json:"query"`
	Page  int    `json:"page"`
}

// taskResponse is the wire shape of POST /run-backend-task.
type taskResponse struct {
	Status      string  `json:"status"`
	RedirectURL string  `json:"redirect_url,omitempty"`
	Message     string  `json:"message,omitempty"`
	ScrapeTime  float64 `json:"scrape_time,omitempty"`
}

// pageResponse is the wire shape of GET /load-more.
type pageResponse struct {
	Status      string   `json:"status"`
	Results     []Result `json:"results,omitempty"`
	TotalPages  *int     `json:"total_pages,omitempty"`
	CurrentPage int      `json:"current_page,omitempty"`
	HasMore     *bool    `json:"has_more,omitempty"`
	Message     string   `json:"message,omitempty"`
}
