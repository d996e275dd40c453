package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/tavla/internal/models"
	"github.com/thenoetrevino/tavla/internal/tui/theme"
)

// Shared component styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Highlight)).
			Padding(0, 1)

	GroupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Subtle)).
			Padding(0, 1)

	SelectedGroupStyle = GroupStyle.
				BorderForeground(lipgloss.Color(theme.SelectedBorder))

	TaskStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(theme.Subtle)).
			Padding(0, 1)

	SelectedTaskStyle = TaskStyle.
				BorderForeground(lipgloss.Color(theme.SelectedBorder)).
				Background(lipgloss.Color(theme.SelectedBg))

	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle))
)

// PriorityColor returns the display color for a priority level.
func PriorityColor(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return theme.PriorityHigh
	case models.PriorityMedium:
		return theme.PriorityMedium
	case models.PriorityLow:
		return theme.PriorityLow
	default:
		return theme.PriorityNormal
	}
}
