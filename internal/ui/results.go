package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/scour/internal/nav"
	"github.com/abelbrown/scour/internal/otel"
	"github.com/abelbrown/scour/internal/pager"
	"github.com/abelbrown/scour/internal/render"
	"github.com/abelbrown/scour/internal/search"
)

// Texts of the load-more row.
const (
	loadMoreLabel   = "Load more results"
	loadingMoreText = "Loading more results..."
)

func (a App) enterResults(route nav.Route) (App, tea.Cmd) {
	a.screen = screenResults
	a.list = render.NewList()
	a.pager = pager.New(route.Query, route.Page, route.Page)
	a.visited = make(map[string]bool)
	a.cursor = 0
	a.hovered = -1
	a.bootstrapping = true
	a.input.SetValue(route.Query)
	a.input.Blur()

	cmds := []tea.Cmd{a.spinner.Tick}
	if a.cfg.FetchPage != nil {
		cmds = append(cmds, a.stamp(a.cfg.FetchPage(route.Query, route.Page)))
	} else {
		a.bootstrapping = false
	}
	return a, tea.Batch(cmds...)
}

// handleBootstrap applies the first page of the results screen. Pagination
// state is created here, once, and never re-read from the backend.
func (a App) handleBootstrap(msg PageBootstrapped) (tea.Model, tea.Cmd) {
	if msg.gen != a.gen || a.screen != screenResults || !a.bootstrapping {
		return a, nil
	}
	a.bootstrapping = false

	current := a.route.Page
	if msg.Err != nil {
		a.log.Emit(otel.Event{
			Level:   otel.LevelError,
			Kind:    otel.KindPageBootstrap,
			Comp:    "ui",
			QueryID: msg.Page.RequestID,
			Query:   a.route.Query,
			Page:    current,
			Err:     msg.Err.Error(),
		})
		return a, a.showError(search.UserMessage(msg.Err, pager.MsgLoadFailed))
	}

	total := msg.Page.TotalPages
	if total == 0 {
		total = current
	}
	a.pager = pager.New(a.route.Query, current, total)

	ids := a.list.Append(msg.Page.Results)
	a.log.Emit(otel.Event{
		Level:   otel.LevelInfo,
		Kind:    otel.KindPageBootstrap,
		Comp:    "ui",
		QueryID: msg.Page.RequestID,
		Query:   a.route.Query,
		Page:    current,
		Count:   len(ids),
		Extra:   map[string]any{"total_pages": a.pager.TotalPages(), "has_more": a.pager.HasMore()},
	})
	a.logWired(ids)

	return a, tea.Batch(a.refocus(), a.loadVisited(ids))
}

// loadMore starts fetching the next page. Activations while a load is in
// flight, or when nothing is left, are dropped.
func (a App) loadMore() (App, tea.Cmd) {
	next, req, ok := a.pager.Begin()
	if !ok {
		a.log.Emit(otel.Event{
			Level: otel.LevelDebug,
			Kind:  otel.KindLoadMoreDrop,
			Comp:  "pager",
			Query: a.pager.Query(),
			Page:  a.pager.CurrentPage(),
			Msg:   fmt.Sprintf("has_more=%t loading=%t", a.pager.HasMore(), a.pager.IsLoading()),
		})
		return a, nil
	}
	a.pager = next
	a.log.Emit(otel.Event{
		Level: otel.LevelInfo,
		Kind:  otel.KindLoadMoreStart,
		Comp:  "pager",
		Query: req.Query,
		Page:  req.Page,
	})

	cmds := []tea.Cmd{a.spinner.Tick}
	if a.cfg.LoadMore != nil {
		cmds = append(cmds, a.stamp(a.cfg.LoadMore(req.Query, req.Page)))
	}
	return a, tea.Batch(cmds...)
}

func (a App) handleMore(msg MoreLoaded) (tea.Model, tea.Cmd) {
	if msg.gen != a.gen || a.screen != screenResults {
		return a, nil
	}

	next, out := a.pager.Complete(msg.Page, msg.Err)
	if out.Ignored {
		return a, nil
	}
	a.pager = next

	if out.Err != "" {
		e := otel.Event{
			Level:   otel.LevelError,
			Kind:    otel.KindLoadMoreError,
			Comp:    "pager",
			QueryID: msg.Page.RequestID,
			Query:   a.pager.Query(),
			Page:    msg.Page.Number,
			Msg:     out.Err,
		}
		if msg.Err != nil {
			e.Err = msg.Err.Error()
		}
		a.log.Emit(e)
		return a, a.showError(out.Err)
	}

	ids := a.list.Append(out.Append)
	a.log.Emit(otel.Event{
		Level:   otel.LevelInfo,
		Kind:    otel.KindLoadMoreComplete,
		Comp:    "pager",
		QueryID: msg.Page.RequestID,
		Query:   a.pager.Query(),
		Page:    a.pager.CurrentPage(),
		Count:   len(ids),
		Extra:   map[string]any{"has_more": out.ShowTrigger},
	})
	a.logWired(ids)

	a.clampCursor()
	return a, tea.Batch(a.refocus(), a.loadVisited(ids))
}

func (a App) logWired(ids []int) {
	wired := 0
	for _, id := range ids {
		if a.list.Hovers().Get(id) != nil {
			wired++
		}
	}
	a.log.Emit(otel.Event{
		Level: otel.LevelDebug,
		Kind:  otel.KindHoverAttach,
		Comp:  "render",
		Count: wired,
		Msg:   fmt.Sprintf("%d new cards", len(ids)),
	})
}

func (a App) loadVisited(ids []int) tea.Cmd {
	if a.cfg.LoadVisited == nil || len(ids) == 0 {
		return nil
	}
	urls := make([]string, 0, len(ids))
	for _, id := range ids {
		urls = append(urls, a.list.Card(id).URL)
	}
	return a.cfg.LoadVisited(urls)
}

func (a App) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		return a.moveCursor(a.cursor - 1)
	case key.Matches(msg, keys.Down):
		return a.moveCursor(a.cursor + 1)
	case key.Matches(msg, keys.Top):
		return a.moveCursor(0)
	case key.Matches(msg, keys.Bottom):
		return a.moveCursor(a.rowCount() - 1)

	case key.Matches(msg, keys.Open):
		if a.onLoadMoreRow() {
			return a.loadMore()
		}
		return a.openCard()

	case key.Matches(msg, keys.LoadMore):
		return a.loadMore()

	case key.Matches(msg, keys.Search):
		a.input.CursorEnd()
		return a, a.input.Focus()

	case key.Matches(msg, keys.Home), msg.Type == tea.KeyEsc:
		return a.navigate(nav.Home())

	case key.Matches(msg, keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil

	case key.Matches(msg, keys.Quit):
		return a, a.quit()
	}
	return a, nil
}

// rowCount is the number of selectable rows: every card plus the load-more
// row while it is shown.
func (a App) rowCount() int {
	n := a.list.Len()
	if a.pager.HasMore() {
		n++
	}
	return n
}

func (a App) onLoadMoreRow() bool {
	return a.pager.HasMore() && a.cursor == a.list.Len()
}

func (a App) moveCursor(to int) (App, tea.Cmd) {
	a.cursor = to
	a.clampCursor()
	return a, a.refocus()
}

func (a *App) clampCursor() {
	if n := a.rowCount(); a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// refocus dispatches focus-leave to the card the cursor left and
// focus-enter to the card it landed on.
func (a *App) refocus() tea.Cmd {
	want := -1
	if a.cursor < a.list.Len() {
		want = a.cursor
	}
	if want == a.hovered {
		return nil
	}

	var cmds []tea.Cmd
	if a.hovered >= 0 {
		if gen, ok := a.list.Hovers().Leave(a.hovered); ok {
			card, screen := a.hovered, a.gen
			cmds = append(cmds, tea.Tick(a.cfg.PopupFade, func(time.Time) tea.Msg {
				return hoverHideMsg{card: card, gen: gen, screen: screen}
			}))
		}
	}
	a.hovered = want
	if want >= 0 {
		if gen, ok := a.list.Hovers().Enter(want); ok {
			cmds = append(cmds, frameTick(want, gen, a.gen))
		}
	}
	return tea.Batch(cmds...)
}

func frameTick(card, gen, screen int) tea.Cmd {
	return tea.Tick(time.Second/render.FrameRate, func(time.Time) tea.Msg {
		return hoverFrameMsg{card: card, gen: gen, screen: screen}
	})
}

// handleHoverFrame steps the card's animation. Frames from an earlier
// screen or hover generation are dropped.
func (a App) handleHoverFrame(msg hoverFrameMsg) (tea.Model, tea.Cmd) {
	if msg.screen != a.gen {
		return a, nil
	}
	h := a.list.Hovers().Get(msg.card)
	if h == nil || h.Generation() != msg.gen {
		return a, nil
	}
	if h.Step() {
		return a, frameTick(msg.card, msg.gen, msg.screen)
	}
	return a, nil
}

func (a App) openCard() (App, tea.Cmd) {
	if a.cursor >= a.list.Len() {
		return a, nil
	}
	url := a.list.Card(a.cursor).URL
	a.visited[url] = true
	if a.cfg.OpenLink == nil {
		return a, nil
	}
	return a, a.cfg.OpenLink(url)
}

func (a App) handleLinkOpened(msg LinkOpened) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.log.Error(otel.KindHistoryError, "ui", msg.Err)
	}
	if msg.URL != "" {
		a.visited[msg.URL] = true
	}
	if msg.Copied {
		a.notice = "copied " + msg.URL
	}
	return a, nil
}

func (a App) viewResults(height int) string {
	var b strings.Builder
	b.WriteString(a.searchBar())
	b.WriteString("\n")

	header := ResultsHeader.Render("Results for “" + a.pager.Query() + "”")
	if !a.bootstrapping {
		header += ResultsCount.Render(fmt.Sprintf("  %d shown · page %d of %d",
			a.list.Len(), a.pager.CurrentPage(), a.pager.TotalPages()))
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	used := lipgloss.Height(b.String())
	avail := height - used
	if avail < 1 {
		avail = 1
	}

	if a.bootstrapping {
		b.WriteString(StatusText.Render(a.spinner.View() + " Loading results..."))
		return b.String()
	}
	if a.list.Len() == 0 && !a.pager.HasMore() {
		b.WriteString(HelpStyle.Render(pager.MsgNoResults + ". Press / to search again."))
		return b.String()
	}

	b.WriteString(RenderRows(a.rows(), a.cursor, avail))
	return b.String()
}

// rows renders every selectable row in display order.
func (a App) rows() []string {
	snippet := 2
	if a.cfg.Compact {
		snippet = 1
	}
	width := a.width - 2
	if width < 30 {
		width = 30
	}

	out := make([]string, 0, a.rowCount())
	for i, c := range a.list.Cards() {
		out = append(out, render.RenderCard(c, a.list.Hovers().Get(c.ID), render.CardOptions{
			Width:        width,
			Selected:     i == a.cursor,
			Visited:      a.visited[c.URL],
			SnippetLines: snippet,
		})+"\n")
	}
	if a.pager.HasMore() {
		out = append(out, a.loadMoreRow())
	}
	return out
}

func (a App) loadMoreRow() string {
	style := LoadMoreButton
	if a.onLoadMoreRow() {
		style = LoadMoreSelected
	}
	if a.pager.IsLoading() {
		return style.Render(a.spinner.View() + " " + loadingMoreText)
	}
	return style.Render(loadMoreLabel)
}
