package render

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// CardOptions controls how a card is drawn.
type CardOptions struct {
	Width    int
	Selected bool
	Visited  bool
	// SnippetLines caps the snippet; zero means two lines.
	SnippetLines int
}

const barCells = 20

// eighths are partial block glyphs for sub-cell bar widths.
var eighths = []string{"", "▏", "▎", "▍", "▌", "▋", "▊", "▉"}

// RenderCard draws card with its tags, badge and, when the hover state
// calls for it, the breakdown popup. h may be nil.
func RenderCard(card Card, h *Hover, opt CardOptions) string {
	width := opt.Width
	if width < 30 {
		width = 30
	}

	var lines []string

	titleStyle := titleNormal
	switch {
	case opt.Selected:
		titleStyle = titleSelected
	case opt.Visited:
		titleStyle = titleVisited
	}
	lines = append(lines, titleStyle.Render(truncate(card.Title, width-2)))

	meta := urlStyle.Render(truncate(card.URL, width/2))
	for _, tag := range card.Tags {
		if tag.Kind == TagType {
			meta += typeTag.Render(tag.Value)
		} else {
			meta += domainTag.Render(tag.Value)
		}
	}
	if card.Breakdown != nil {
		meta += renderBadge(card.Breakdown.Matches, h != nil && h.BadgeScaled())
	}
	lines = append(lines, meta)

	if card.Snippet != "" {
		maxLines := opt.SnippetLines
		if maxLines <= 0 {
			maxLines = 2
		}
		lines = append(lines, snippetStyle.Render(wrap(card.Snippet, width-2, maxLines)))
	}

	if card.Breakdown != nil && h != nil && h.Popup() != PopupHidden {
		lines = append(lines, RenderPopup(*card.Breakdown, h))
	}

	return strings.Join(lines, "\n")
}

func renderBadge(matches int, scaled bool) string {
	label := fmt.Sprintf("Aa %d", matches)
	if scaled {
		return badgeScaledStyle.Render(label)
	}
	return badgeStyle.Render(label)
}

// RenderPopup draws the keyword breakdown using the hover's animated bar
// widths. A popup that is fading out is drawn muted.
func RenderPopup(b Breakdown, h *Hover) string {
	kwWidth := 4
	for _, row := range b.Rows {
		if n := utf8.RuneCountInString(row.Keyword); n > kwWidth {
			kwWidth = n
		}
	}
	if kwWidth > 18 {
		kwWidth = 18
	}

	header := popupHeader.Render("Keyword Breakdown") + "  " + popupTotal.Render(b.Header())
	lines := []string{header}
	for i, row := range b.Rows {
		pct := row.Percent
		if h != nil {
			pct = h.BarWidth(i)
		}
		kw := truncate(row.Keyword, kwWidth)
		pad := strings.Repeat(" ", kwWidth-utf8.RuneCountInString(kw))
		bar := Bar(pct, barCells)
		barPad := strings.Repeat(" ", barCells-lipgloss.Width(bar))
		lines = append(lines, fmt.Sprintf("%s%s  %s%s  %s",
			kw, pad, barStyle.Render(bar), barPad, countStyle.Render(row.Label())))
	}

	style := popupStyle
	if h != nil && h.Popup() == PopupFadingOut {
		style = popupFadedStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

// Bar draws a horizontal bar pct percent of cells wide using eighth-block
// precision. pct is clamped to [0, 100].
func Bar(pct float64, cells int) string {
	if cells <= 0 {
		return ""
	}
	pct = math.Max(0, math.Min(100, pct))
	eighthsTotal := int(math.Round(pct / 100 * float64(cells) * 8))
	full, part := eighthsTotal/8, eighthsTotal%8
	return strings.Repeat("█", full) + eighths[part]
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// wrap word-wraps s to width and keeps at most maxLines lines, marking a
// cut with "...".
func wrap(s string, width, maxLines int) string {
	if width < 10 {
		width = 10
	}
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		wl := utf8.RuneCountInString(word)
		if cur.Len() > 0 && utf8.RuneCountInString(cur.String())+1+wl > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		last := []rune(lines[maxLines-1])
		if len(last)+3 > width {
			last = last[:width-3]
		}
		lines[maxLines-1] = string(last) + "..."
	}
	for i := range lines {
		lines[i] = truncate(lines[i], width)
	}
	return strings.Join(lines, "\n")
}
