package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/mcotp/internal/playback"
	"github.com/llehouerou/mcotp/internal/playlist"
)

// View renders the application UI.
func (m Model) View() string {
	sections := []string{
		m.renderHeader(),
		panelStyle.Render(m.renderNowPlaying()),
		m.renderUpcoming(),
		m.renderStatus(),
		m.help.View(m.keys),
	}
	out := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width > 0 {
		out = lipgloss.NewStyle().MaxWidth(m.width).Render(out)
	}
	return out
}

func (m Model) renderHeader() string {
	header := titleStyle.Render("mcotp") + "  " + modeBadge(m.status.Mode)
	if m.status.Label != "" {
		header += " " + baseStyle.Render(sanitize(m.status.Label))
	}
	if m.status.Kind != "" {
		header += " " + subtleStyle.Render("("+string(m.status.Kind)+")")
	}
	return header
}

func (m Model) renderNowPlaying() string {
	t := m.status.Current
	if t == nil {
		return mutedStyle.Render("Nothing playing")
	}
	var b strings.Builder
	width := m.width - 6 // border, padding and icon
	b.WriteString(playStateIcon(m.playState) + " " + playingStyle.Render(fit(trackLabel(t), width)))
	if details := trackDetails(t); details != "" {
		b.WriteString("\n  " + mutedStyle.Render(fit(details, width)))
	}
	return b.String()
}

func (m Model) renderUpcoming() string {
	upcoming := m.status.Upcoming
	var b strings.Builder
	b.WriteString(headingStyle.Render("Up next"))
	if len(upcoming) > 0 {
		b.WriteString(" " + subtleStyle.Render(humanize.Comma(int64(len(upcoming)))+" queued"))
	}
	for i, t := range upcoming[:min(len(upcoming), m.upcoming)] {
		fmt.Fprintf(&b, "\n %2d. %s", i+1, baseStyle.Render(fit(trackLabel(&t), m.width-5)))
	}
	if len(upcoming) == 0 && !m.status.Fetching {
		b.WriteString("\n " + mutedStyle.Render("-"))
	}
	if m.status.Fetching {
		b.WriteString("\n " + subtleStyle.Render("fetching..."))
	}
	return b.String()
}

func (m Model) renderStatus() string {
	if m.notification == nil {
		return ""
	}
	if m.notification.IsError {
		return errorStyle.Render(m.notification.Message)
	}
	return successStyle.Render(m.notification.Message)
}

func playStateIcon(s playback.State) string {
	switch s {
	case playback.StatePlaying:
		return "▶"
	case playback.StatePaused:
		return "⏸"
	default:
		return "■"
	}
}

// trackLabel renders "Artist - Title".
func trackLabel(t *playlist.Track) string {
	if t == nil {
		return ""
	}
	title := t.DisplayTitle
	if title == "" {
		title = t.Title
	}
	if t.Artist == "" {
		return title
	}
	return t.Artist + " - " + title
}

// trackDetails renders album, year and track number when known.
func trackDetails(t *playlist.Track) string {
	var parts []string
	if t.Album != "" {
		parts = append(parts, t.Album)
	}
	if t.Year > 0 {
		parts = append(parts, fmt.Sprint(t.Year))
	}
	if t.TrackNumber > 0 {
		parts = append(parts, "track "+fmt.Sprint(t.TrackNumber))
	}
	return strings.Join(parts, " · ")
}
