package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding. Which ones are active depends on the screen
// and on whether the search input has focus.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Open      key.Binding
	LoadMore  key.Binding
	Search    key.Binding
	Submit    key.Binding
	Clear     key.Binding
	Retry     key.Binding
	Home      key.Binding
	Debug     key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Top:       key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	LoadMore:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
	Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
	Retry:     key.NewBinding(key.WithKeys("r", "enter"), key.WithHelp("r", "retry")),
	Home:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "home")),
	Debug:     key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "debug")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// helpKeys adapts the bindings of one screen to help.KeyMap.
type helpKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h helpKeys) ShortHelp() []key.Binding  { return h.short }
func (h helpKeys) FullHelp() [][]key.Binding { return h.full }

func homeHelp() helpKeys {
	return helpKeys{
		short: []key.Binding{keys.Submit, keys.Up, keys.Down, keys.Clear},
		full: [][]key.Binding{
			{keys.Submit, keys.Clear},
			{keys.Up, keys.Down},
			{keys.Debug, keys.ForceQuit},
		},
	}
}

func searchHelp() helpKeys {
	return helpKeys{short: []key.Binding{keys.Submit, keys.Clear, keys.ForceQuit}}
}

func loadingHelp(canRetry bool) helpKeys {
	if canRetry {
		return helpKeys{short: []key.Binding{keys.Retry, keys.Home, keys.Quit}}
	}
	return helpKeys{short: []key.Binding{keys.Home, keys.Quit}}
}

func resultsHelp() helpKeys {
	return helpKeys{
		short: []key.Binding{keys.Up, keys.Down, keys.Open, keys.LoadMore, keys.Search, keys.Help},
		full: [][]key.Binding{
			{keys.Up, keys.Down, keys.Top, keys.Bottom},
			{keys.Open, keys.LoadMore},
			{keys.Search, keys.Clear, keys.Home},
			{keys.Debug, keys.Help, keys.Quit},
		},
	}
}
