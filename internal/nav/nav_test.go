package nav

import "testing"

func TestSearchURL(t *testing.T) {
	if got := SearchURL("go & rust", 2); got != "/search?q=go+%26+rust&page=2" {
		t.Errorf("SearchURL = %q", got)
	}
	if got := SearchURL("x", 0); got != "/search?q=x&page=1" {
		t.Errorf("SearchURL page clamp = %q", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		target string
		want   Route
	}{
		{"/", Route{Kind: KindHome}},
		{"", Route{Kind: KindHome}},
		{"/search?q=solar&page=3", Route{Kind: KindSearch, Query: "solar", Page: 3}},
		{"/search?q=solar", Route{Kind: KindSearch, Query: "solar", Page: 1}},
		{"/search?q=solar&page=abc", Route{Kind: KindSearch, Query: "solar", Page: 1}},
		{"/search?q=", Route{Kind: KindHome}},
		{"/results?q=wind+power&id=7", Route{Kind: KindResults, Query: "wind power", Page: 1, ID: "7"}},
		{"http://127.0.0.1:5000/results?q=a&page=2", Route{Kind: KindResults, Query: "a", Page: 2}},
		{"/results?id=7", Route{Kind: KindHome}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.target)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.target, err)
			continue
		}
		got.Raw = ""
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.target, got, tt.want)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	r, err := Parse(ResultsURL("c++ & go", 4))
	if err != nil {
		t.Fatal(err)
	}
	if r.Kind != KindResults || r.Query != "c++ & go" || r.Page != 4 {
		t.Errorf("round trip = %+v", r)
	}
}

func TestParseUnknown(t *testing.T) {
	if _, err := Parse("/admin"); err == nil {
		t.Error("expected error for unknown path")
	}
	if _, err := Parse("%zz"); err == nil {
		t.Error("expected error for malformed target")
	}
}

func TestKindString(t *testing.T) {
	if KindResults.String() != "results" || Kind(42).String() != "unknown" {
		t.Error("unexpected Kind strings")
	}
}
