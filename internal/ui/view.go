package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// View renders the active screen with the error bar and status bar.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.showDebug {
		body := debugOverlay(a.cfg.Ring, a.debugSnapshot(), a.width, a.height-1)
		if body == "" {
			body = HelpStyle.Render("Debug overlay unavailable: no event buffer attached.")
		}
		return body + "\n" + debugStatusBar(a.width)
	}

	statusBar := a.statusBar()
	errorBar := ""
	if a.errMsg != "" {
		errorBar = ErrorStyle.Width(a.width).Render(a.errMsg)
	}

	contentHeight := a.height - lipgloss.Height(statusBar)
	if errorBar != "" {
		contentHeight -= lipgloss.Height(errorBar)
	}
	if contentHeight < 1 {
		contentHeight = 1
	}

	var body string
	switch a.screen {
	case screenLoading:
		body = a.viewLoading()
	case screenResults:
		body = a.viewResults(contentHeight)
	default:
		body = a.viewHome()
	}
	body = lipgloss.NewStyle().Height(contentHeight).MaxHeight(contentHeight).Render(body)

	out := body + "\n"
	if errorBar != "" {
		out += errorBar + "\n"
	}
	return out + statusBar
}

func (a App) statusBar() string {
	var left string
	switch a.screen {
	case screenResults:
		switch {
		case a.bootstrapping:
			left = "Loading..."
		case a.list.Len() > 0 && a.cursor < a.list.Len():
			left = fmt.Sprintf("%d/%d", a.cursor+1, a.list.Len())
		default:
			left = fmt.Sprintf("%d results", a.list.Len())
		}
		left += StatusBarText.Render(fmt.Sprintf("  page %d/%d", a.pager.CurrentPage(), a.pager.TotalPages()))
	case screenLoading:
		left = a.task.Phase().String()
	default:
		left = "scour"
	}
	if a.notice != "" {
		left += "  " + StatusBarNotice.Render(a.notice)
	}

	var hints string
	switch a.screen {
	case screenResults:
		if a.input.Focused() {
			hints = a.help.View(searchHelp())
		} else {
			hints = a.help.View(resultsHelp())
		}
	case screenLoading:
		hints = a.help.View(loadingHelp(a.task.CanRetry()))
	default:
		hints = a.help.View(homeHelp())
	}
	return RenderStatusBar(left, hints, a.width)
}
