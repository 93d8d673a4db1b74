package ui

import (
	"strings"
	"testing"
)

func TestCalcScrollOffset(t *testing.T) {
	uniform := make([]int, 100)
	for i := range uniform {
		uniform[i] = 1
	}
	cards := []int{4, 4, 4, 4, 4, 1} // five cards and a load-more row

	tests := []struct {
		name       string
		heights    []int
		cursor     int
		height     int
		wantOffset int
	}{
		{"empty", nil, 0, 10, 0},
		{"cursor at top", uniform, 0, 30, 0},
		{"cursor within viewport", uniform, 10, 30, 0},
		{"cursor at viewport edge", uniform, 29, 30, 0},
		{"cursor one past viewport", uniform, 30, 30, 1},
		{"cursor far down", uniform, 99, 30, 70},
		{"multi-line rows fit", cards, 1, 10, 0},
		{"multi-line rows scroll", cards, 2, 10, 1},
		{"load-more row", cards, 5, 10, 3},
		{"row taller than viewport", cards, 3, 2, 3},
		{"cursor past end clamps", cards, 9, 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calcScrollOffset(tt.heights, tt.cursor, tt.height)
			if got != tt.wantOffset {
				t.Errorf("calcScrollOffset(cursor=%d, height=%d) = %d, want %d",
					tt.cursor, tt.height, got, tt.wantOffset)
			}
		})
	}
}

func TestRenderRowsKeepsCursorVisible(t *testing.T) {
	rows := []string{"a1\na2", "b1\nb2", "c1\nc2", "d1\nd2"}

	out := RenderRows(rows, 3, 4)
	if !strings.Contains(out, "d1") || !strings.Contains(out, "d2") {
		t.Errorf("cursor row not visible:\n%s", out)
	}
	if strings.Contains(out, "a1") || strings.Contains(out, "b1") {
		t.Errorf("rows above the window should be scrolled away:\n%s", out)
	}

	out = RenderRows(rows, 0, 3)
	if lines := strings.Count(out, "\n"); lines != 3 {
		t.Errorf("expected 3 lines, got %d:\n%s", lines, out)
	}
}

func TestRenderRowsEmpty(t *testing.T) {
	if got := RenderRows(nil, 0, 10); got != "" {
		t.Errorf("RenderRows(nil) = %q", got)
	}
}

func TestRenderStatusBar(t *testing.T) {
	bar := RenderStatusBar("3/10", "j/k nav", 60)
	if !strings.Contains(bar, "3/10") || !strings.Contains(bar, "j/k nav") {
		t.Errorf("status bar missing content: %q", bar)
	}
}
