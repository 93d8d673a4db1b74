package main

import (
	"strings"
	"testing"
	"time"
)

const sampleLog = `{"t":"2026-10-19T10:00:00Z","level":"info","kind":"task.start","comp":"loading","session_id":"ab12","query":"solar"}
not json
{"t":"2026-10-19T10:00:01Z","level":"info","kind":"loadmore.start","comp":"pager","session_id":"ab12","page":2}

{"t":"2026-10-19T10:00:02Z","level":"error","kind":"loadmore.error","comp":"pager","session_id":"ab12","qid":"r-1","page":2,"err":"server returned 500"}
{"t":"2026-10-19T10:00:03Z","level":"info","kind":"loadmore.complete","comp":"pager","session_id":"cd34","page":2,"count":10,"dur_ms":42.5}
`

func TestReadTailLinesKeepsLastMatching(t *testing.T) {
	lines := readTailLines(strings.NewReader(sampleLog), 2, eventFilter{}.match)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].ev.Kind != "loadmore.error" || lines[1].ev.Kind != "loadmore.complete" {
		t.Errorf("unexpected tail: %s, %s", lines[0].ev.Kind, lines[1].ev.Kind)
	}
}

func TestReadTailLinesZeroTail(t *testing.T) {
	if lines := readTailLines(strings.NewReader(sampleLog), 0, eventFilter{}.match); len(lines) != 0 {
		t.Errorf("expected no lines, got %d", len(lines))
	}
}

func TestEventFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter eventFilter
		want   int
	}{
		{"all", eventFilter{}, 4},
		{"kind prefix", eventFilter{kind: "loadmore"}, 3},
		{"min level", eventFilter{level: "warn"}, 1},
		{"component", eventFilter{comp: "loading"}, 1},
		{"request id", eventFilter{qid: "r-1"}, 1},
		{"session prefix", eventFilter{session: "cd"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readTailLines(strings.NewReader(sampleLog), 50, tt.filter.match)
			if len(got) != tt.want {
				t.Errorf("got %d lines, want %d", len(got), tt.want)
			}
		})
	}
}

func TestFormatEvent(t *testing.T) {
	ev := eventRecord{
		Time:  time.Date(2026, 10, 19, 10, 0, 3, 0, time.UTC),
		Level: "info",
		Kind:  "loadmore.complete",
		Comp:  "pager",
		DurMs: 42.5,
		Count: 10,
		Page:  2,
		Query: "solar",
	}
	got := formatEvent(ev)
	for _, want := range []string{"10:00:03.000", "INFO", "[pager  ]", "(42.5ms)", "n=10", "page=2", `q="solar"`} {
		if !strings.Contains(got, want) {
			t.Errorf("formatEvent() = %q, missing %q", got, want)
		}
	}
}

func TestLevelRank(t *testing.T) {
	if levelRank("error") <= levelRank("warn") || levelRank("warn") <= levelRank("info") {
		t.Error("levels should be ordered debug < info < warn < error")
	}
	if levelRank("bogus") != 0 {
		t.Error("unknown levels rank as debug")
	}
}
