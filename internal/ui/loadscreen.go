package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/scour/internal/loading"
	"github.com/abelbrown/scour/internal/nav"
	"github.com/abelbrown/scour/internal/otel"
)

func (a App) enterLoading(route nav.Route) (App, tea.Cmd) {
	s, eff := loading.Start(route.Query, route.Page)
	if eff.Kind == loading.EffectNavigate {
		return a.navigate(eff.Target)
	}

	a.screen = screenLoading
	a.task = s
	a.input.Blur()
	a.log.Emit(otel.Event{
		Level: otel.LevelInfo,
		Kind:  otel.KindTaskStart,
		Comp:  "loading",
		Query: eff.Query,
		Page:  eff.Page,
	})

	gen := a.gen
	cmds := []tea.Cmd{
		a.spinner.Tick,
		tea.Tick(a.cfg.StillWorkingDelay, func(time.Time) tea.Msg {
			return stillWorkingMsg{gen: gen}
		}),
	}
	if a.cfg.StartTask != nil {
		cmds = append(cmds, a.stamp(a.cfg.StartTask(eff.Query, eff.Page)))
	}
	if a.cfg.RecordSearch != nil {
		cmds = append(cmds, a.cfg.RecordSearch(eff.Query, eff.Page))
	}
	return a, tea.Batch(cmds...)
}

func (a App) handleTask(msg TaskResolved) (tea.Model, tea.Cmd) {
	if msg.gen != a.gen || a.screen != screenLoading {
		return a, nil
	}

	var eff loading.Effect
	a.task, eff = a.task.Resolve(msg.Result, msg.Err)

	if msg.Err != nil || eff.Kind != loading.EffectNavigate {
		e := otel.Event{
			Level:   otel.LevelError,
			Kind:    otel.KindTaskError,
			Comp:    "loading",
			QueryID: msg.Result.RequestID,
			Query:   a.task.Query(),
			Page:    a.task.Page(),
			Msg:     a.task.Status(),
		}
		if msg.Err != nil {
			e.Err = msg.Err.Error()
		}
		a.log.Emit(e)
		return a, nil
	}

	a.log.Emit(otel.Event{
		Level:   otel.LevelInfo,
		Kind:    otel.KindTaskComplete,
		Comp:    "loading",
		QueryID: msg.Result.RequestID,
		Query:   a.task.Query(),
		Target:  eff.Target,
		Dur:     time.Duration(msg.Result.ScrapeTime * float64(time.Second)),
	})
	return a.navigate(eff.Target)
}

func (a App) handleLoadingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Retry):
		s, eff := a.task.Retry()
		a.task = s
		if eff.Kind == loading.EffectNavigate {
			return a.navigate(eff.Target)
		}
		return a, nil

	case key.Matches(msg, keys.Home), msg.Type == tea.KeyEsc:
		return a.navigate(nav.Home())

	case key.Matches(msg, keys.Quit):
		return a, a.quit()
	}
	return a, nil
}

func (a App) viewLoading() string {
	var b strings.Builder
	b.WriteString(Banner.Render("scour"))
	b.WriteString("\n")
	b.WriteString(Tagline.Render("Searching for “" + a.task.Query() + "”"))
	b.WriteString("\n")

	switch {
	case a.task.Busy():
		b.WriteString(StatusText.Render(a.spinner.View() + " " + a.task.Status()))
	case a.task.Phase() == loading.PhaseFailed:
		b.WriteString(StatusError.Render(a.task.Status()))
	default:
		b.WriteString(StatusText.Render(a.task.Status()))
	}
	b.WriteString("\n")

	if a.task.CanRetry() {
		b.WriteString(RetryButton.Render(loading.RetryLabel))
		b.WriteString("\n")
	}
	return b.String()
}
