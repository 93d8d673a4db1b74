package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (a App) enterHome() (App, tea.Cmd) {
	a.screen = screenHome
	a.recentCursor = -1
	a.input.SetValue("")
	focus := a.input.Focus()

	var load tea.Cmd
	if a.cfg.LoadRecent != nil {
		load = a.cfg.LoadRecent(a.cfg.RecentLimit)
	}
	return a, tea.Batch(focus, load)
}

// selectRecent moves the recent-search selection to i and mirrors the
// chosen query into the input. Moving above the first entry restores an
// empty input.
func (a *App) selectRecent(i int) {
	if len(a.recent) == 0 {
		return
	}
	if i < -1 {
		i = -1
	}
	if i >= len(a.recent) {
		i = len(a.recent) - 1
	}
	a.recentCursor = i
	if i == -1 {
		a.input.SetValue("")
		return
	}
	a.input.SetValue(a.recent[i].Query)
	a.input.CursorEnd()
}

func (a App) viewHome() string {
	var b strings.Builder
	b.WriteString(Banner.Render("scour"))
	b.WriteString("\n")
	b.WriteString(Tagline.Render("scrape, rank and explore the web"))
	b.WriteString("\n")
	b.WriteString(a.searchBar())
	b.WriteString("\n")

	if len(a.recent) > 0 {
		b.WriteString(SectionHeader.Render("Recent searches"))
		b.WriteString("\n")
		for i, s := range a.recent {
			label := s.Query
			if s.Count > 1 {
				label += StatusBarText.Render(fmt.Sprintf("  ×%d", s.Count))
			}
			if i == a.recentCursor {
				b.WriteString(SelectedItem.Render(label))
			} else {
				b.WriteString(NormalItem.Render(label))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a App) searchBar() string {
	style := SearchBar
	if a.input.Focused() {
		style = SearchBarFocused
	}
	w := a.width - 4
	if w < 20 {
		w = 20
	}
	return style.Width(w).Render(a.input.View())
}
