package render

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("62")  // purple
	colorSecondary = lipgloss.Color("241") // gray
	colorMuted     = lipgloss.Color("240")
	colorHighlight = lipgloss.Color("212") // pink
	colorAccent    = lipgloss.Color("#e24162")
	colorBar       = lipgloss.Color("#58a6ff")
)

var (
	titleSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(colorPrimary).
			Padding(0, 1)

	titleNormal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	titleVisited = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Padding(0, 1)

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78")).
			PaddingLeft(1)

	domainTag = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			MarginLeft(1)

	typeTag = lipgloss.NewStyle().
		Foreground(colorHighlight).
		Background(lipgloss.Color("236")).
		Padding(0, 1).
		MarginLeft(1)

	snippetStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			PaddingLeft(1)

	badgeStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			MarginLeft(1)

	badgeScaledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(colorAccent).
				Bold(true).
				MarginLeft(1).
				Padding(0, 1)

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1).
			MarginLeft(2)

	popupFadedStyle = popupStyle.
			BorderForeground(colorMuted).
			Foreground(colorMuted)

	popupHeader = lipgloss.NewStyle().Bold(true)
	popupTotal  = lipgloss.NewStyle().Foreground(colorSecondary)
	barStyle    = lipgloss.NewStyle().Foreground(colorBar)
	countStyle  = lipgloss.NewStyle().Foreground(colorSecondary)
)
