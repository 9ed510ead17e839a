package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorFgPrimary = lipgloss.Color("#ABB2BF")
	colorFgMuted   = lipgloss.Color("#636B78")
	colorBorder    = lipgloss.Color("#3F4451")

	colorRed     = lipgloss.Color("#E06C75")
	colorGreen   = lipgloss.Color("#98C379")
	colorYellow  = lipgloss.Color("#E5C07B")
	colorBlue    = lipgloss.Color("#61AFEF")
	colorMagenta = lipgloss.Color("#C678DD")
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true).
			PaddingLeft(1)

	headerPathStyle = lipgloss.NewStyle().
			Foreground(colorFgMuted)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	columnTitleStyle = lipgloss.NewStyle().
				Bold(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(colorFgMuted)

	badgeOverStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	taskStyle = lipgloss.NewStyle().
			Foreground(colorFgPrimary)

	taskBlockedStyle = lipgloss.NewStyle().
				Foreground(colorRed)

	taskMutedStyle = lipgloss.NewStyle().
			Foreground(colorFgMuted)

	emptyStyle = lipgloss.NewStyle().
			Foreground(colorFgMuted).
			Italic(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorFgMuted).
			PaddingLeft(1)

	footerKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	helpTitleStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)

// statusAccent is the accent color used for a column's title and its tasks'
// status glyphs.
func statusAccent(status string) lipgloss.Color {
	switch status {
	case "Open":
		return colorBlue
	case "InProgress":
		return colorYellow
	case "Done":
		return colorGreen
	case "Archived":
		return colorFgMuted
	case "Gutter":
		return colorMagenta
	}
	return colorFgPrimary
}
