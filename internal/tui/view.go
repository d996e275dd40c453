package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/tavla/internal/tui/components"
	"github.com/thenoetrevino/tavla/internal/tui/notifications"
)

// View renders the current state of the application
// This implements the "View" part of the Model-View-Update pattern
func (m Model) View() string {
	if m.width == 0 || m.board == nil {
		return "Loading board..."
	}

	if m.mode == modeHelp {
		return m.viewHelp()
	}

	header := m.viewHeader()
	boardView := m.viewBoard()
	footer := components.RenderStatusBar(components.StatusBarProps{
		Width:   m.width,
		Actor:   m.actor,
		Offline: m.offline,
	})

	content := lipgloss.JoinVertical(lipgloss.Left, header, boardView)

	if m.mode == modeDrawer || m.mode == modeAttach || m.mode == modeAssignee || m.mode == modeDueDate {
		if drawer := m.viewDrawer(); drawer != "" {
			content = lipgloss.JoinVertical(lipgloss.Left, header,
				lipgloss.Place(m.width, lipgloss.Height(boardView), lipgloss.Center, lipgloss.Center, drawer))
		}
	}
	if m.mode == modeNewTask || m.mode == modeNewGroup {
		prompt := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Render(m.input.Placeholder + "\n" + m.input.View())
		content = lipgloss.JoinVertical(lipgloss.Left, content, prompt)
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, footer)
}

func (m Model) viewHeader() string {
	title := components.TitleStyle.Render("tavla")
	if m.notification != nil {
		return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", notifications.RenderInline(*m.notification))
	}
	return title
}

func (m Model) viewBoard() string {
	groups := m.groups()
	if len(groups) == 0 {
		return components.SubtleStyle.Render("No groups on this board yet. Press N to create one.")
	}

	pendingIDs := make(map[string]bool)
	for _, t := range m.board.Tasks() {
		if _, ok := m.app.BoardOps.PendingMove(t.ID); ok {
			pendingIDs[t.ID] = true
		}
	}

	columns := make([]string, 0, len(groups))
	for i, g := range groups {
		selectedTask := -1
		if i == m.selGroup {
			selectedTask = m.selTask
		}
		columns = append(columns, components.RenderGroup(components.GroupProps{
			Group:           g,
			Tasks:           m.board.TasksInGroup(g.ID),
			Selected:        i == m.selGroup,
			SelectedTaskIdx: selectedTask,
			Height:          m.height - 4,
			PendingTaskIDs:  pendingIDs,
		}))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m Model) viewDrawer() string {
	task := m.board.TaskByID(m.drawerTaskID)
	if task == nil {
		return ""
	}
	groupName := ""
	if g := m.board.GroupByID(task.GroupID); g != nil {
		groupName = g.Name
	}
	promptTitle, prompt := "", ""
	switch m.mode {
	case modeAttach:
		promptTitle, prompt = "Attach file", m.input.View()
	case modeAssignee:
		promptTitle, prompt = "Assign to", m.input.View()
	case modeDueDate:
		promptTitle, prompt = "Due date", m.input.View()
	}
	width := m.width / 2
	if width < 48 {
		width = 48
	}
	return components.RenderTaskView(components.TaskViewProps{
		Task:             task,
		GroupName:        groupName,
		EvidenceRequired: m.evidenceRequired,
		PromptTitle:      promptTitle,
		Prompt:           prompt,
		PopupWidth:       width,
	})
}

func (m Model) viewHelp() string {
	help := `tavla - shared board

  h/l, arrows   select group        H/L   move task left/right
  j/k           select task         space toggle complete
  enter         open task drawer    a     attach file (in drawer)
  p / @ / t     edit priority, assignee, due date (in drawer)
  n             new task            N     new group
  d             delete task         D     delete group
  [ / ]         reorder group       r     reload board
  esc           close drawer (cancels a pending move)
  q             quit

press any key to close`
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2).Render(help))
}
