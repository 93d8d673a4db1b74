package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderRows draws rows top to bottom, scrolled so the row at cursor is
// fully visible within height lines. Rows may span several lines.
func RenderRows(rows []string, cursor, height int) string {
	if len(rows) == 0 || height < 1 {
		return ""
	}

	heights := make([]int, len(rows))
	for i, r := range rows {
		heights[i] = lipgloss.Height(r)
	}
	offset := calcScrollOffset(heights, cursor, height)

	var b strings.Builder
	used := 0
	for i := offset; i < len(rows) && used < height; i++ {
		lines := strings.Split(rows[i], "\n")
		if used+len(lines) > height {
			lines = lines[:height-used]
		}
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n")
		used += len(lines)
	}
	return b.String()
}

// calcScrollOffset finds the smallest row index such that every line from
// that row through the cursor row fits within availableHeight. A cursor row
// taller than the viewport is shown from its first line.
func calcScrollOffset(heights []int, cursor, availableHeight int) int {
	if len(heights) == 0 || cursor < 0 {
		return 0
	}
	if cursor >= len(heights) {
		cursor = len(heights) - 1
	}

	used := 0
	offset := cursor
	for offset >= 0 && used+heights[offset] <= availableHeight {
		used += heights[offset]
		offset--
	}
	offset++
	if offset > cursor {
		return cursor
	}
	return offset
}

// RenderStatusBar renders the bottom bar: position or notice text on the
// left, key hints on the right.
func RenderStatusBar(left, hints string, width int) string {
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(hints)
	padding := width - leftWidth - rightWidth - 2
	if padding < 1 {
		padding = 1
	}
	bar := left + strings.Repeat(" ", padding) + hints
	return StatusBar.Width(width).Render(bar)
}
