package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/tavla/internal/models"
	"github.com/thenoetrevino/tavla/internal/tui/theme"
)

// taskTitleMaxLength caps the title shown on a card
const taskTitleMaxLength = 24

// TaskCardWidth is the fixed inner width of a task card
const TaskCardWidth = 28

// RenderTask renders a single task as a card
//
//	┌────────────────────────┐
//	│ {Name}                 │
//	│ priority · due  📎 n   │
//	│ [label1] [label2]      │
//	└────────────────────────┘
func RenderTask(task *models.Task, selected bool, pendingEvidence bool) string {
	style := TaskStyle
	if selected {
		style = SelectedTaskStyle
	}

	title := task.Name
	if len(title) > taskTitleMaxLength {
		title = title[:taskTitleMaxLength] + "…"
	}
	titleLine := lipgloss.NewStyle().Bold(true).Render(title)

	meta := renderTaskMeta(task, pendingEvidence)
	labels := renderTaskLabels(task.Labels)

	content := lipgloss.JoinVertical(lipgloss.Left, titleLine, meta, labels)
	return style.Width(TaskCardWidth).Render(content)
}

func renderTaskMeta(task *models.Task, pendingEvidence bool) string {
	parts := []string{
		lipgloss.NewStyle().
			Foreground(lipgloss.Color(PriorityColor(task.Priority))).
			Render(string(task.Priority)),
	}
	if task.DueOn != nil {
		parts = append(parts, SubtleStyle.Render(task.DueOn.Format("Jan 2")))
	}
	if len(task.Attachments) > 0 {
		parts = append(parts, SubtleStyle.Render(fmt.Sprintf("📎%d", len(task.Attachments))))
	}
	if pendingEvidence {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.WarningFg)).
			Render("⏳ evidence"))
	}
	if task.Assigned() {
		parts = append(parts, SubtleStyle.Render("@"+task.AssignedActorID))
	}
	return strings.Join(parts, " · ")
}

func renderTaskLabels(labels []string) string {
	if len(labels) == 0 {
		return SubtleStyle.Italic(true).Render("no labels")
	}
	chips := make([]string, 0, len(labels))
	for _, l := range labels {
		chips = append(chips, lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Normal)).
			Background(lipgloss.Color(theme.SelectedBg)).
			Padding(0, 1).
			Render(l))
	}
	return strings.Join(chips, " ")
}
