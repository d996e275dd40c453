package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/tavla/internal/models"
	"github.com/thenoetrevino/tavla/internal/tui/theme"
)

type TaskViewProps struct {
	Task             *models.Task
	GroupName        string
	EvidenceRequired bool
	PromptTitle      string // heading above the inline prompt
	Prompt           string // rendered text input, empty when not prompting
	PopupWidth       int
}

// RenderTaskView renders the task drawer. When a move is blocked pending
// evidence the drawer opens with a warning banner and the attachment prompt,
// making it the evidence-collection surface.
func RenderTaskView(props TaskViewProps) string {
	task := props.Task
	contentWidth := props.PopupWidth - 6

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Highlight))

	var parts []string
	parts = append(parts, titleStyle.Render(task.Name))
	parts = append(parts, SubtleStyle.Render("in "+props.GroupName))

	if props.EvidenceRequired {
		banner := lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.WarningFg)).
			Bold(true).
			Render("⚠ Evidence required: attach a file to finish this move, or close to cancel it")
		parts = append(parts, "", banner)
	}

	parts = append(parts, "", RenderDescription(DescriptionProps{
		Description: task.Description,
		Width:       contentWidth,
	}))

	parts = append(parts, "", renderTaskFields(task))

	if len(task.Attachments) > 0 {
		parts = append(parts, "", TitleStyle.Render("Attachments"))
		for _, a := range task.Attachments {
			parts = append(parts, fmt.Sprintf("  📎 %s (%s)", a.Name, a.Origin))
		}
	} else {
		parts = append(parts, "", SubtleStyle.Italic(true).Render("No attachments"))
	}

	if props.Prompt != "" {
		parts = append(parts, "", TitleStyle.Render(props.PromptTitle), props.Prompt)
	}

	parts = append(parts, "", SubtleStyle.Render("[a] attach  [p] priority  [@] assignee  [t] due date  [Esc] close"))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.SelectedBorder)).
		Padding(1, 2).
		Width(props.PopupWidth).
		Render(content)
}

func renderTaskFields(task *models.Task) string {
	priority := lipgloss.NewStyle().
		Foreground(lipgloss.Color(PriorityColor(task.Priority))).
		Render(string(task.Priority))

	fields := []string{"Priority: " + priority}
	if task.Assigned() {
		fields = append(fields, "Assignee: "+task.AssignedActorID)
	} else {
		fields = append(fields, "Assignee: "+SubtleStyle.Render("unassigned"))
	}
	if task.DueOn != nil {
		fields = append(fields, "Due: "+task.DueOn.Format("2006-01-02"))
	}
	if task.Completed {
		fields = append(fields, lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.PriorityNormal)).
			Render("✓ completed"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, fields...)
}
