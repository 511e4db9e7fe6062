package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/elections/internal/election"
)

// Catppuccin Mocha
const (
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorSky      lipgloss.Color = "#89dceb"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
	colorCrust    lipgloss.Color = "#11111b"
)

const (
	colorAccent = colorMauve
	colorFocus  = colorLavender
	colorMuted  = colorOverlay1
	colorError  = colorRed
)

var typeColors = map[string]lipgloss.Color{
	"Présidentielle":  colorBlue,
	"Législatives":    colorTeal,
	"Européennes":     colorYellow,
	"Régionales":      colorMauve,
	"Départementales": colorPeach,
	"Municipales":     colorSky,
}

// typeColor is the accent of an election type; unknown types are gray.
func typeColor(label string) lipgloss.Color {
	if c, ok := typeColors[label]; ok {
		return c
	}
	return colorOverlay0
}

func urgencyColor(u election.Urgency) lipgloss.Color {
	switch u {
	case election.UrgencyImminent:
		return colorRed
	case election.UrgencyNear:
		return colorYellow
	case election.UrgencyDistant:
		return colorGreen
	default:
		return colorOverlay0
	}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	clockStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	chipStyle    = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	resetStyle   = lipgloss.NewStyle().Foreground(colorAccent).Italic(true)
	dimStyle     = lipgloss.NewStyle().Foreground(colorSubtext0)
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	badgeStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(colorCrust)
	pendingStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(colorText).Background(colorSurface0)
	emptyStyle   = lipgloss.NewStyle().Foreground(colorSubtext0).Italic(true)
	footerStyle  = lipgloss.NewStyle().Foreground(colorMuted).Background(colorMantle)
	keyStyle     = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Background(colorMantle)
	descStyle    = lipgloss.NewStyle().Foreground(colorMuted).Background(colorMantle)
)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorSurface1).
	Padding(0, 1)

var cardFocusStyle = cardStyle.BorderForeground(colorFocus)

var cardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText)

var detailStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder(), true, false, false, false).
	BorderForeground(colorSurface1).
	Padding(0, 1)

var alertStyle = lipgloss.NewStyle().
	Border(lipgloss.ThickBorder()).
	BorderForeground(colorError).
	Foreground(colorError).
	Padding(0, 1)
