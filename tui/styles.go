package tui

import (
	"github.com/charmbracelet/lipgloss"

	"tasklist/config"
)

type styles struct {
	header  lipgloss.Style
	summary lipgloss.Style
	empty   lipgloss.Style

	inputFocused lipgloss.Style
	inputBlurred lipgloss.Style

	button         lipgloss.Style
	buttonDisabled lipgloss.Style
	cancelButton   lipgloss.Style

	doneRow lipgloss.Style
	dueRow  lipgloss.Style
	accent  lipgloss.Color
	danger  lipgloss.Color

	overlay      lipgloss.Style
	overlayTitle lipgloss.Style

	status    lipgloss.Style
	statusErr lipgloss.Style
	hint      lipgloss.Style
}

func newStyles(theme config.ThemeConfig) styles {
	accent := lipgloss.Color(theme.Accent)
	danger := lipgloss.Color(theme.Danger)
	muted := lipgloss.Color(theme.Muted)
	rowFg := lipgloss.Color(theme.RowForeground)

	inputBox := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	return styles{
		header:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		summary: lipgloss.NewStyle().Foreground(muted),
		empty:   lipgloss.NewStyle().Foreground(muted),

		inputFocused: inputBox.BorderForeground(accent),
		inputBlurred: inputBox.BorderForeground(muted),

		button:         lipgloss.NewStyle().Bold(true).Foreground(accent),
		buttonDisabled: lipgloss.NewStyle().Faint(true).Foreground(muted),
		cancelButton:   lipgloss.NewStyle().Bold(true).Foreground(danger),

		doneRow: lipgloss.NewStyle().Background(lipgloss.Color(theme.DoneBackground)).Foreground(rowFg),
		dueRow:  lipgloss.NewStyle().Background(lipgloss.Color(theme.DueBackground)).Foreground(rowFg),
		accent:  accent,
		danger:  danger,

		overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2),
		overlayTitle: lipgloss.NewStyle().Bold(true).Foreground(accent),

		status:    lipgloss.NewStyle().Foreground(lipgloss.Color("70")),
		statusErr: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		hint:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
