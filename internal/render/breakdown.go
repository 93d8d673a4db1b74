package render

import (
	"fmt"
	"math"

	"github.com/abelbrown/scour/internal/search"
)

// Row is one keyword line of the breakdown popup.
type Row struct {
	Keyword string
	Count   int
	Source  string
	Percent float64 // bar width, 0..100, one decimal
}

// Label renders the right-hand "<count> (<source>)" text.
func (r Row) Label() string {
	return fmt.Sprintf("%d (%s)", r.Count, r.Source)
}

// Breakdown is the keyword frequency visualization of a result.
type Breakdown struct {
	Matches int // raw text_matches, shown on the badge
	Total   int // total_occurrences, shown in the popup header
	Rows    []Row
}

// NewBreakdown builds the breakdown for r, keeping keyword order.
func NewBreakdown(r search.Result) Breakdown {
	b := Breakdown{
		Matches: r.TextMatches,
		Total:   r.TotalOccurrences,
		Rows:    make([]Row, 0, len(r.Keywords)),
	}
	for _, kw := range r.Keywords {
		b.Rows = append(b.Rows, Row{
			Keyword: kw.Keyword,
			Count:   kw.Count,
			Source:  kw.Source,
			Percent: BarPercent(kw.Count, r.TotalOccurrences),
		})
	}
	return b
}

// Header returns the popup's "<total> total matches" text.
func (b Breakdown) Header() string {
	return fmt.Sprintf("%d total matches", b.Total)
}

// BarPercent is count as a percentage of total, rounded to one decimal.
// A zero total yields 0.
func BarPercent(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}
