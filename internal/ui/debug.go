package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abelbrown/scour/internal/nav"
	"github.com/abelbrown/scour/internal/otel"
	"github.com/abelbrown/scour/internal/pager"
)

// debugPanelChrome is the number of lines DebugPanel's border and vertical
// padding consume. Keep in sync with the DebugPanel style.
const debugPanelChrome = 4

// debugSnapshot is the slice of App state shown in the overlay's Screen section.
type debugSnapshot struct {
	Route   nav.Route
	Gen     int
	Pager   pager.State
	Cards   int
	Wired   int
	Visited int
	Session string
}

func (a App) debugSnapshot() debugSnapshot {
	visited := 0
	for _, c := range a.list.Cards() {
		if a.visited[c.URL] {
			visited++
		}
	}
	return debugSnapshot{
		Route:   a.route,
		Gen:     a.gen,
		Pager:   a.pager,
		Cards:   a.list.Len(),
		Wired:   a.list.Hovers().Len(),
		Visited: visited,
		Session: a.log.SessionID(),
	}
}

// statRow is one line of the stats section: a label and the event kinds
// whose counts it shows, in order.
type statRow struct {
	label string
	kinds []otel.EventKind
	names []string
}

var statRows = []statRow{
	{"Tasks", []otel.EventKind{otel.KindTaskStart, otel.KindTaskComplete, otel.KindTaskError},
		[]string{"started", "complete", "errors"}},
	{"Load more", []otel.EventKind{otel.KindLoadMoreStart, otel.KindLoadMoreComplete, otel.KindLoadMoreError, otel.KindLoadMoreDrop},
		[]string{"started", "complete", "errors", "dropped"}},
	{"Pages", []otel.EventKind{otel.KindPageBootstrap, otel.KindNavRoute},
		[]string{"bootstrapped", "routes"}},
	{"History", []otel.EventKind{otel.KindHistoryError},
		[]string{"errors"}},
}

// debugOverlay renders the current screen state, per-kind event counts and
// the most recent events. Returns "" when no ring buffer is attached.
func debugOverlay(ring *otel.RingBuffer, snap debugSnapshot, width, height int) string {
	if ring == nil {
		return ""
	}

	var lines []string
	lines = append(lines, DebugHeaderStyle.Render("Screen"))
	lines = append(lines, fmt.Sprintf("  %-11s %s (gen %d)", "Route:", describeRoute(snap.Route), snap.Gen))
	if snap.Route.Kind == nav.KindResults {
		more := "last page"
		if snap.Pager.HasMore() {
			more = "more available"
		}
		lines = append(lines, fmt.Sprintf("  %-11s page %d/%d, %s, %s", "Pager:",
			snap.Pager.CurrentPage(), snap.Pager.TotalPages(), snap.Pager.Phase(), more))
		lines = append(lines, fmt.Sprintf("  %-11s %d (%d wired, %d visited)", "Cards:",
			snap.Cards, snap.Wired, snap.Visited))
	}
	if snap.Session != "" {
		lines = append(lines, fmt.Sprintf("  %-11s %s", "Session:", snap.Session))
	}
	lines = append(lines, "")

	stats := ring.Stats()
	lines = append(lines, DebugHeaderStyle.Render("Session Stats"))
	for _, row := range statRows {
		parts := make([]string, len(row.kinds))
		for i, k := range row.kinds {
			parts[i] = fmt.Sprintf("%d %s", stats[k], row.names[i])
		}
		lines = append(lines, fmt.Sprintf("  %-11s %s", row.label+":", strings.Join(parts, ", ")))
	}
	lines = append(lines, fmt.Sprintf("  %-11s %d / %d events", "Buffer:", ring.Len(), ring.Cap()))
	lines = append(lines, "")

	lines = append(lines, DebugHeaderStyle.Render("Recent Events"))
	for _, e := range ring.Last(20) {
		lines = append(lines, eventLine(e))
	}

	maxHeight := max(height-debugPanelChrome, 1)
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
	}

	panelWidth := max(min(76, width-4), 20)
	return DebugPanel.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

func describeRoute(r nav.Route) string {
	switch r.Kind {
	case nav.KindSearch, nav.KindResults:
		return fmt.Sprintf("%s %q page %d", r.Kind, r.Query, r.Page)
	default:
		return r.Kind.String()
	}
}

func eventLine(e otel.Event) string {
	line := fmt.Sprintf("  %6s  %-18s", formatAge(time.Since(e.Time)), string(e.Kind))
	if e.Page > 0 {
		line += fmt.Sprintf("  p%d", e.Page)
	}
	if e.Msg != "" {
		line += "  " + truncateRunes(e.Msg, 40)
	}
	if e.Err != "" {
		line += "  ERR:" + truncateRunes(e.Err, 30)
	}
	if e.QueryID != "" {
		qid := e.QueryID
		if len(qid) > 8 {
			qid = qid[:8]
		}
		line += "  qid:" + qid
	}
	return line
}

// formatAge formats a duration compactly. Negative durations (clock skew)
// clamp to "0ms".
func formatAge(d time.Duration) string {
	if d < 0 {
		return "0ms"
	}
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

// debugStatusBar renders the status bar shown under the overlay.
func debugStatusBar(width int) string {
	keys := StatusBarKey.Render("D") + StatusBarText.Render(":close")
	return StatusBar.Width(width).Render("  [DEBUG]  " + keys)
}
