package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/tavla/internal/models"
)

// GroupProps carries everything needed to render one board column.
type GroupProps struct {
	Group           *models.Group
	Tasks           []*models.Task
	Selected        bool
	SelectedTaskIdx int // -1 when another group is selected
	Height          int
	PendingTaskIDs  map[string]bool // tasks awaiting evidence
}

// RenderGroup renders a complete column with its title and tasks.
//
//	{Group Name} ({count})
//	{Task 1}
//	{Task 2}
//	...
func RenderGroup(props GroupProps) string {
	header := fmt.Sprintf("%s (%d)", props.Group.Name, len(props.Tasks))
	rows := []string{TitleStyle.Render(header)}

	if len(props.Tasks) == 0 {
		rows = append(rows, SubtleStyle.Italic(true).Padding(1, 0).Render("No tasks"))
	}
	for i, task := range props.Tasks {
		selected := props.Selected && i == props.SelectedTaskIdx
		rows = append(rows, RenderTask(task, selected, props.PendingTaskIDs[task.ID]))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	style := GroupStyle
	if props.Selected {
		style = SelectedGroupStyle
	}
	if props.Height > 0 {
		style = style.Height(props.Height)
	}
	return style.Render(content)
}
