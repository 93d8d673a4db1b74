package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorError     = lipgloss.Color("196")
)

// Banner is the home screen title.
var Banner = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(1, 2, 0, 2)

// Tagline sits under the banner.
var Tagline = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 2, 1, 2)

// SearchBar frames the query input.
var SearchBar = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

// SearchBarFocused frames the query input while it has focus.
var SearchBarFocused = SearchBar.
	BorderForeground(colorPrimary)

// SectionHeader style for headings such as "Recent searches".
var SectionHeader = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	MarginTop(1).
	Padding(0, 1)

// SelectedItem style for the highlighted recent search.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for unselected recent searches.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// ResultsHeader shows the query and page position above the list.
var ResultsHeader = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// ResultsCount is the muted part of the results header.
var ResultsCount = lipgloss.NewStyle().
	Foreground(colorSecondary)

// LoadMoreButton style for the load-more row.
var LoadMoreButton = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Border(lipgloss.NormalBorder()).
	BorderForeground(colorMuted).
	Padding(0, 2).
	MarginLeft(1)

// LoadMoreSelected style for the load-more row under the cursor.
var LoadMoreSelected = LoadMoreButton.
	Foreground(lipgloss.Color("255")).
	BorderForeground(colorPrimary).
	Bold(true)

// StatusText style for the loading screen status line.
var StatusText = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// StatusError style for a failed loading screen.
var StatusError = lipgloss.NewStyle().
	Foreground(colorError).
	Bold(true).
	Padding(0, 1)

// RetryButton style for the loading screen retry control.
var RetryButton = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Bold(true).
	Padding(0, 2).
	MarginLeft(1).
	MarginTop(1)

// SpinnerStyle colors the busy indicators.
var SpinnerStyle = lipgloss.NewStyle().
	Foreground(colorHighlight)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// StatusBarNotice style for short confirmations such as "copied".
var StatusBarNotice = lipgloss.NewStyle().
	Foreground(colorSuccess)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(colorError).
	Bold(true).
	Padding(0, 1)

// HelpStyle for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// DebugPanel frames the debug overlay.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// DebugHeaderStyle for section titles inside the debug overlay.
var DebugHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)
