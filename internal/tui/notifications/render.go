package notifications

import (
	"github.com/charmbracelet/lipgloss"
)

// RenderInline renders a compact single-line notification for the header bar.
func RenderInline(n Notification) string {
	style := n.Level.style()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.foreground)).
		Background(lipgloss.Color(style.background)).
		Padding(0, 1).
		Render(style.icon + " " + n.Message)
}

// Render renders a bordered notification banner.
func Render(n Notification) string {
	style := n.Level.style()

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.foreground)).
		Bold(true).
		Render(style.icon + " " + style.title)

	message := lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.foreground)).
		Render(n.Message)

	content := lipgloss.JoinVertical(lipgloss.Left, header, message)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(style.foreground)).
		Background(lipgloss.Color(style.background)).
		Padding(0, 1).
		Render(content)
}
