package pager

import (
	"fmt"
	"testing"

	"github.com/abelbrown/scour/internal/search"
)

func results(n int) []search.Result {
	out := make([]search.Result, n)
	for i := range out {
		out[i] = search.Result{URL: fmt.Sprintf("https://r.example/%d", i)}
	}
	return out
}

func checkInvariant(t *testing.T, s State) {
	t.Helper()
	if s.HasMore() != (s.CurrentPage() < s.TotalPages()) {
		t.Errorf("hasMore=%v but page %d of %d", s.HasMore(), s.CurrentPage(), s.TotalPages())
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		cur, total         int
		wantCur, wantTotal int
		wantMore           bool
	}{
		{1, 1, 1, 1, false},
		{1, 4, 1, 4, true},
		{4, 4, 4, 4, false},
		{0, 0, 1, 1, false},
		{-3, 2, 1, 2, true},
		{5, 2, 5, 2, false},
	}
	for _, tt := range tests {
		s := New("q", tt.cur, tt.total)
		if s.CurrentPage() != tt.wantCur || s.TotalPages() != tt.wantTotal || s.HasMore() != tt.wantMore {
			t.Errorf("New(%d, %d) = page %d/%d more=%v", tt.cur, tt.total, s.CurrentPage(), s.TotalPages(), s.HasMore())
		}
		if s.IsLoading() || s.Phase() != Idle {
			t.Errorf("New(%d, %d) should start idle", tt.cur, tt.total)
		}
		checkInvariant(t, s)
	}
}

func TestBeginIssuesNextPage(t *testing.T) {
	s, req, ok := New("solar", 2, 5).Begin()
	if !ok {
		t.Fatal("Begin should succeed")
	}
	if req != (Request{Query: "solar", Page: 3}) {
		t.Errorf("request = %+v", req)
	}
	if !s.IsLoading() || s.Phase() != Loading {
		t.Error("state should be loading")
	}
	if s.CurrentPage() != 2 {
		t.Errorf("current page must not advance before completion, got %d", s.CurrentPage())
	}
}

func TestBeginGuards(t *testing.T) {
	exhausted := New("q", 3, 3)
	got, _, ok := exhausted.Begin()
	if ok || got != exhausted {
		t.Error("Begin without more pages must be a no-op")
	}

	loading, _, _ := New("q", 1, 3).Begin()
	got, _, ok = loading.Begin()
	if ok || got != loading {
		t.Error("Begin while loading must be a no-op")
	}
}

func TestCompleteSuccess(t *testing.T) {
	s, _, _ := New("q", 1, 3).Begin()
	batch := results(5)

	s, out := s.Complete(search.Page{Results: batch, TotalPages: 4}, nil)

	if s.CurrentPage() != 2 || s.TotalPages() != 4 {
		t.Errorf("page = %d/%d, want 2/4", s.CurrentPage(), s.TotalPages())
	}
	if s.IsLoading() || s.Phase() != Idle {
		t.Error("state should be idle after success")
	}
	if !out.ShowTrigger || out.Err != "" || out.Ignored {
		t.Errorf("unexpected outcome %+v", out)
	}
	if len(out.Append) != 5 {
		t.Fatalf("append = %d results, want 5", len(out.Append))
	}
	for i := range batch {
		if out.Append[i].URL != batch[i].URL {
			t.Errorf("result %d out of order", i)
		}
	}
	checkInvariant(t, s)
}

func TestCompleteKeepsTotalWhenAbsent(t *testing.T) {
	s, _, _ := New("q", 1, 2).Begin()
	s, out := s.Complete(search.Page{Results: results(1)}, nil)
	if s.TotalPages() != 2 || s.CurrentPage() != 2 {
		t.Errorf("page = %d/%d, want 2/2", s.CurrentPage(), s.TotalPages())
	}
	if s.HasMore() || out.ShowTrigger {
		t.Error("last page reached: trigger should hide")
	}
	checkInvariant(t, s)
}

func TestCompleteFailuresLeaveStateUnchanged(t *testing.T) {
	tests := []struct {
		name string
		page search.Page
		err  error
		msg  string
	}{
		{"empty results", search.Page{TotalPages: 9}, nil, MsgNoResults},
		{"empty page error", search.Page{}, fmt.Errorf("page 2: %w", search.ErrEmptyPage), MsgNoResults},
		{"http 500", search.Page{}, &search.StatusError{Code: 500}, "HTTP error! status: 500"},
		{"app failure", search.Page{}, &search.AppError{Status: "error", Message: "Failed to load results: x"}, "Failed to load results: x"},
		{"network", search.Page{}, fmt.Errorf("%w: connection refused", search.ErrTransport), MsgLoadFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := New("q", 2, 5)
			s, _, _ := before.Begin()

			s, out := s.Complete(tt.page, tt.err)

			if s.CurrentPage() != before.CurrentPage() || s.TotalPages() != before.TotalPages() || s.HasMore() != before.HasMore() {
				t.Errorf("pagination changed: %d/%d", s.CurrentPage(), s.TotalPages())
			}
			if s.IsLoading() {
				t.Error("isLoading must be false after failure")
			}
			if s.Phase() != Failed {
				t.Errorf("phase = %v, want failed", s.Phase())
			}
			if out.Err != tt.msg {
				t.Errorf("Err = %q, want %q", out.Err, tt.msg)
			}
			if len(out.Append) != 0 {
				t.Error("failed load must not append results")
			}
			if !out.ShowTrigger {
				t.Error("retry must remain possible")
			}

			// Retry through the same control.
			s = s.Settle()
			if s.Phase() != Idle {
				t.Errorf("Settle: phase = %v", s.Phase())
			}
			if _, req, ok := s.Begin(); !ok || req.Page != 3 {
				t.Errorf("retry Begin = %+v, %v", req, ok)
			}
		})
	}
}

func TestCompleteWithoutBeginIsIgnored(t *testing.T) {
	s := New("q", 1, 3)
	got, out := s.Complete(search.Page{Results: results(3)}, nil)
	if got != s || !out.Ignored || len(out.Append) != 0 {
		t.Errorf("stray completion applied: %+v", out)
	}
}

func TestFullSession(t *testing.T) {
	s := New("q", 1, 3)
	loads := 0
	for s.HasMore() {
		var ok bool
		s, _, ok = s.Begin()
		if !ok {
			t.Fatal("Begin refused while hasMore")
		}
		s, _ = s.Complete(search.Page{Results: results(5), TotalPages: 3}, nil)
		checkInvariant(t, s)
		loads++
	}
	if loads != 2 || s.CurrentPage() != 3 {
		t.Errorf("loads = %d, page = %d", loads, s.CurrentPage())
	}
	if _, _, ok := s.Begin(); ok {
		t.Error("Begin after last page must be refused")
	}
}

func TestPhaseString(t *testing.T) {
	for p, want := range map[Phase]string{Idle: "idle", Loading: "loading", Failed: "failed", Phase(9): "unknown"} {
		if p.String() != want {
			t.Errorf("%d.String() = %q, want %q", p, p.String(), want)
		}
	}
}
