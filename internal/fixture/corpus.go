package fixture

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/abelbrown/scour/internal/search"
)

var domains = []string{"example.com", "docs.example.org", "blog.example.net", "news.example.io", "wiki.example.edu"}

var kinds = []string{"html", "pdf", "html", "html", "doc"}

var sources = []string{"title", "text", "meta"}

// Synthesize generates n deterministic results for query. Keyword rows are
// built from the query's words so the breakdown popup has something to show.
func Synthesize(query string, n int) []search.Result {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		words = []string{"query"}
	}

	out := make([]search.Result, 0, n)
	for i := 0; i < n; i++ {
		seed := hash(fmt.Sprintf("%s#%d", query, i))
		r := search.Result{
			URL:         fmt.Sprintf("https://%s/%s/%d", domains[seed%uint32(len(domains))], strings.Join(words, "-"), i+1),
			Title:       fmt.Sprintf("Result %d for %s", i+1, query),
			Description: fmt.Sprintf("A page about %s. Ranked #%d by keyword frequency.", query, i+1),
			Domain:      domains[seed%uint32(len(domains))],
			Type:        kinds[(seed>>3)%uint32(len(kinds))],
		}
		// Every fourth result has no matches, so it renders without a badge.
		if i%4 != 3 {
			for j, w := range words {
				count := int((seed>>(uint(j)*4))%20) + 1
				r.Keywords = append(r.Keywords, search.Keyword{
					Keyword: w,
					Count:   count,
					Source:  sources[(seed+uint32(j))%uint32(len(sources))],
				})
				r.TotalOccurrences += count
			}
			r.TextMatches = len(r.Keywords)
		}
		out = append(out, r)
	}
	return out
}

func hash(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
