package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/scour/internal/history"
	"github.com/abelbrown/scour/internal/loading"
	"github.com/abelbrown/scour/internal/nav"
	"github.com/abelbrown/scour/internal/otel"
	"github.com/abelbrown/scour/internal/pager"
	"github.com/abelbrown/scour/internal/render"
)

type screen int

const (
	screenHome screen = iota
	screenLoading
	screenResults
)

func (s screen) String() string {
	switch s {
	case screenLoading:
		return "loading"
	case screenResults:
		return "results"
	default:
		return "home"
	}
}

// AppConfig wires the App to the outside world. Each func returns a tea.Cmd
// whose message reports the outcome; any of them may be nil.
type AppConfig struct {
	StartTask    func(query string, page int) tea.Cmd // TaskResolved
	FetchPage    func(query string, page int) tea.Cmd // PageBootstrapped
	LoadMore     func(query string, page int) tea.Cmd // MoreLoaded
	LoadRecent   func(limit int) tea.Cmd              // RecentLoaded
	RecordSearch func(query string, page int) tea.Cmd // SearchRecorded
	LoadVisited  func(urls []string) tea.Cmd          // VisitedLoaded
	OpenLink     func(url string) tea.Cmd             // LinkOpened

	Logger *otel.Logger
	Ring   *otel.RingBuffer // feeds the debug overlay; may be nil

	ErrorDismiss      time.Duration
	StillWorkingDelay time.Duration
	PopupFade         time.Duration
	Compact           bool
	RecentLimit       int

	// Start is the first navigation target; "/" when empty.
	Start string
}

// App is the root Bubble Tea model.
// IMPORTANT: App performs no I/O itself. It asks for it through AppConfig
// and receives the outcome as messages.
type App struct {
	cfg AppConfig
	log *otel.Logger

	screen screen
	gen    int // bumped on every navigation
	route  nav.Route

	width  int
	height int
	ready  bool

	input   textinput.Model
	spinner spinner.Model
	help    help.Model

	// Home screen
	recent       []history.Search
	recentCursor int // -1 when the input holds typed text

	// Loading screen
	task loading.Screen

	// Results screen
	pager         pager.State
	list          *render.List
	visited       map[string]bool
	cursor        int
	hovered       int // card under the cursor, -1 for none
	bootstrapping bool

	errMsg string
	errSeq int
	notice string

	showDebug bool
	initCmd   tea.Cmd
}

// NewApp creates the App and performs the initial navigation.
func NewApp(cfg AppConfig) App {
	if cfg.ErrorDismiss <= 0 {
		cfg.ErrorDismiss = 5 * time.Second
	}
	if cfg.StillWorkingDelay <= 0 {
		cfg.StillWorkingDelay = 5 * time.Second
	}
	if cfg.PopupFade <= 0 {
		cfg.PopupFade = render.DefaultPopupFade
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 8
	}
	if cfg.Start == "" {
		cfg.Start = nav.Home()
	}

	ti := textinput.New()
	ti.Placeholder = "Search the web..."
	ti.Prompt = "› "
	ti.CharLimit = 256

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	a := App{
		cfg:          cfg,
		log:          cfg.Logger,
		input:        ti,
		spinner:      s,
		help:         help.New(),
		list:         render.NewList(),
		visited:      make(map[string]bool),
		hovered:      -1,
		recentCursor: -1,
	}
	a, a.initCmd = a.navigate(cfg.Start)
	return a
}

// Init returns the commands of the initial navigation.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.initCmd, textinput.Blink)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	a.log.TraceMsg("ui", msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.input.Width = max(10, msg.Width-10)
		a.help.Width = msg.Width
		return a, nil

	case Navigate:
		return a.navigate(msg.Target)

	case spinner.TickMsg:
		if !a.busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case TaskResolved:
		return a.handleTask(msg)

	case stillWorkingMsg:
		if msg.gen == a.gen && a.screen == screenLoading {
			a.task = a.task.StillWorking()
		}
		return a, nil

	case PageBootstrapped:
		return a.handleBootstrap(msg)

	case MoreLoaded:
		return a.handleMore(msg)

	case errorDismissMsg:
		if msg.seq == a.errSeq {
			a.errMsg = ""
			a.pager = a.pager.Settle()
		}
		return a, nil

	case hoverFrameMsg:
		return a.handleHoverFrame(msg)

	case hoverHideMsg:
		if msg.screen != a.gen {
			return a, nil
		}
		if h := a.list.Hovers().Get(msg.card); h != nil {
			h.Hide(msg.gen)
		}
		return a, nil

	case RecentLoaded:
		if msg.Err != nil {
			a.log.Error(otel.KindHistoryError, "ui", msg.Err)
			return a, nil
		}
		a.recent = msg.Searches
		return a, nil

	case SearchRecorded:
		if msg.Err != nil {
			a.log.Error(otel.KindHistoryError, "ui", msg.Err)
		}
		return a, nil

	case VisitedLoaded:
		if msg.Err != nil {
			a.log.Error(otel.KindHistoryError, "ui", msg.Err)
			return a, nil
		}
		for u, v := range msg.Visited {
			if v {
				a.visited[u] = true
			}
		}
		return a, nil

	case LinkOpened:
		return a.handleLinkOpened(msg)
	}

	return a, nil
}

// navigate moves to target. Every navigation starts a new screen
// generation so replies for the previous screen are ignored.
func (a App) navigate(target string) (App, tea.Cmd) {
	route, err := nav.Parse(target)
	if err != nil {
		a.log.Error(otel.KindNavRoute, "ui", err)
		route = nav.Route{Kind: nav.KindHome, Raw: target}
	}

	a.gen++
	a.route = route
	a.errMsg = ""
	a.notice = ""
	a.log.Emit(otel.Event{
		Level:  otel.LevelInfo,
		Kind:   otel.KindNavRoute,
		Comp:   "ui",
		Target: target,
		Query:  route.Query,
		Page:   route.Page,
		Msg:    route.Kind.String(),
	})

	switch route.Kind {
	case nav.KindSearch:
		return a.enterLoading(route)
	case nav.KindResults:
		return a.enterResults(route)
	default:
		return a.enterHome()
	}
}

func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQuit) {
		return a, a.quit()
	}
	a.log.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindKeyPress, Comp: "ui", Msg: msg.String()})

	if a.input.Focused() {
		return a.handleInputKey(msg)
	}

	if key.Matches(msg, keys.Debug) {
		a.showDebug = !a.showDebug
		return a, nil
	}

	switch a.screen {
	case screenLoading:
		return a.handleLoadingKey(msg)
	case screenResults:
		return a.handleResultsKey(msg)
	}
	return a, nil
}

// handleInputKey drives the search form on the home and results screens.
func (a App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Submit):
		q := strings.TrimSpace(a.input.Value())
		if q == "" {
			return a, nil
		}
		return a.navigate(nav.SearchURL(q, 1))

	case key.Matches(msg, keys.Clear):
		if a.input.Value() != "" {
			a.input.SetValue("")
			a.recentCursor = -1
			return a, nil
		}
		if a.screen == screenResults {
			a.input.Blur()
		}
		return a, nil

	case a.screen == screenHome && msg.Type == tea.KeyUp:
		a.selectRecent(a.recentCursor - 1)
		return a, nil

	case a.screen == screenHome && msg.Type == tea.KeyDown:
		a.selectRecent(a.recentCursor + 1)
		return a, nil

	case a.screen == screenHome && msg.String() == "D" && a.input.Value() == "":
		a.showDebug = !a.showDebug
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) quit() tea.Cmd {
	a.log.Info(otel.KindShutdown, "ui", "quit from "+a.screen.String())
	return tea.Quit
}

// busy reports whether a spinner is on screen.
func (a App) busy() bool {
	switch a.screen {
	case screenLoading:
		return a.task.Busy()
	case screenResults:
		return a.bootstrapping || a.pager.IsLoading()
	}
	return false
}

// stamp tags the reply of cmd with the current screen generation.
func (a App) stamp(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	gen := a.gen
	return func() tea.Msg {
		switch m := cmd().(type) {
		case TaskResolved:
			m.gen = gen
			return m
		case PageBootstrapped:
			m.gen = gen
			return m
		case MoreLoaded:
			m.gen = gen
			return m
		default:
			return m
		}
	}
}

// showError displays msg in the error bar and schedules its dismissal. A
// newer error replaces it and cancels the earlier dismissal.
func (a *App) showError(msg string) tea.Cmd {
	a.errSeq++
	a.errMsg = msg
	seq := a.errSeq
	return tea.Tick(a.cfg.ErrorDismiss, func(time.Time) tea.Msg {
		return errorDismissMsg{seq: seq}
	})
}

// Screen returns the name of the active screen (for testing).
func (a App) Screen() string { return a.screen.String() }

// Route returns the current route (for testing).
func (a App) Route() nav.Route { return a.route }

// Cursor returns the current cursor position (for testing).
func (a App) Cursor() int { return a.cursor }

// Pager returns the pagination state (for testing).
func (a App) Pager() pager.State { return a.pager }

// Cards returns the rendered result cards (for testing).
func (a App) Cards() []render.Card { return a.list.Cards() }

// Hovers returns the hover registry (for testing).
func (a App) Hovers() *render.Registry { return a.list.Hovers() }

// Task returns the loading screen state (for testing).
func (a App) Task() loading.Screen { return a.task }

// Err returns the message in the error bar (for testing).
func (a App) Err() string { return a.errMsg }

// Gen returns the screen generation (for testing).
func (a App) Gen() int { return a.gen }
