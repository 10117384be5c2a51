package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/mcotp/internal/provider"
)

var (
	primaryColor = lipgloss.Color("#a78bfa")
	fgBase       = lipgloss.Color("#c0c0c0")
	fgMuted      = lipgloss.Color("#808080")
	fgSubtle     = lipgloss.Color("#585858")
	successColor = lipgloss.Color("#42b883")
	errorColor   = lipgloss.Color("#ff5555")
	warningColor = lipgloss.Color("#f1a208")

	titleStyle   = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	headingStyle = lipgloss.NewStyle().Foreground(fgBase).Bold(true)
	playingStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	baseStyle    = lipgloss.NewStyle().Foreground(fgBase)
	mutedStyle   = lipgloss.NewStyle().Foreground(fgMuted)
	subtleStyle  = lipgloss.NewStyle().Foreground(fgSubtle)
	successStyle = lipgloss.NewStyle().Foreground(successColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(fgSubtle).
			Padding(0, 1)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1a1a")).
			Bold(true).
			Padding(0, 1)
)

// modeColors gives each major mode its badge color.
var modeColors = map[provider.Mode]lipgloss.Color{
	provider.ModeCollection: fgMuted,
	provider.ModeBand:       primaryColor,
	provider.ModeAlbum:      successColor,
	provider.ModeYear:       warningColor,
	provider.ModeLocation:   lipgloss.Color("39"),
}

func modeBadge(mode provider.Mode) string {
	color, ok := modeColors[mode]
	if !ok {
		color = fgMuted
	}
	return badgeStyle.Background(color).Render(mode.String())
}
