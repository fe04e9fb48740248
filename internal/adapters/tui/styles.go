package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.AdaptiveColor{Light: "#0B5FFF", Dark: "#FFD90F"}
	muted  = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}
	danger = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF6B6B"}
	okay   = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#7BD88F"}
)

type styles struct {
	Title      lipgloss.Style
	Card       lipgloss.Style
	ActiveCard lipgloss.Style
	Character  lipgloss.Style
	Muted      lipgloss.Style
	Modal      lipgloss.Style
	AlertOK    lipgloss.Style
	AlertFail  lipgloss.Style
	Help       lipgloss.Style
}

func defaultStyles() styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(0, 1)

	alert := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		Padding(1, 3)

	return styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Card:       card,
		ActiveCard: card.BorderForeground(accent),
		Character:  lipgloss.NewStyle().Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(muted),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(1, 2),
		AlertOK:   alert.BorderForeground(okay),
		AlertFail: alert.BorderForeground(danger),
		Help:      lipgloss.NewStyle().Foreground(muted).MarginTop(1),
	}
}
