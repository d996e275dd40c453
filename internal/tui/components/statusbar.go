package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/tavla/internal/models"
)

type StatusBarProps struct {
	Width   int
	Actor   models.Actor
	Offline bool
}

// RenderStatusBar renders a status bar with left and right aligned text
// Left side: "Tavla - Shared Board" plus the actor's role
// Right side: "press ? for help"
func RenderStatusBar(props StatusBarProps) string {
	leftText := "Tavla - Shared Board"
	if props.Actor.ID != "" {
		leftText += " · " + props.Actor.ID + " (" + string(props.Actor.Role) + ")"
	}
	if props.Offline {
		leftText += " · offline snapshot"
	}
	rightText := "press ? for help"

	leftRendered := SubtleStyle.Render(leftText)
	rightRendered := SubtleStyle.Render(rightText)

	gapWidth := props.Width - lipgloss.Width(leftRendered) - lipgloss.Width(rightRendered)
	if gapWidth < 1 {
		gapWidth = 1
	}
	gap := strings.Repeat(" ", gapWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftRendered, gap, rightRendered)
}
