package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/tavla/internal/models"
	"github.com/thenoetrevino/tavla/internal/mutate"
	"github.com/thenoetrevino/tavla/internal/pending"
	"github.com/thenoetrevino/tavla/internal/services/boardops"
	"github.com/thenoetrevino/tavla/internal/tui/notifications"
)

// Update handles all messages and updates the model accordingly
// This implements the "Update" part of the Model-View-Update pattern
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case cachedBoardMsg:
		// First paint from the cache; the fetch result replaces it. A board
		// that already arrived wins over the stale snapshot.
		if m.board == nil {
			m.board = msg.snapshot
			m.offline = true
			m.clampSelection()
		}
		return m, nil

	case boardLoadedMsg:
		m.board = msg.snapshot
		m.offline = msg.fromCache
		m.clampSelection()
		if msg.fromCache {
			m.notify(notifications.Warning, "could not reach the server, showing the last cached board")
		}
		return m, nil

	case resultMsg:
		m.board = msg.snapshot
		m.clampSelection()
		if msg.note != "" {
			m.notify(msg.level, msg.note)
		}
		return m, nil

	case errMsg:
		if msg.snapshot != nil {
			m.board = msg.snapshot
			m.clampSelection()
		}
		m.notify(classifyError(msg.err))
		return m, nil

	case evidenceRequiredMsg:
		// The gate blocked the move: surface the drawer so evidence can be
		// attached. The committed group is still the origin.
		m.mode = modeDrawer
		m.drawerTaskID = msg.taskID
		m.evidenceRequired = true
		m.notify(notifications.Info, "this move needs an attachment as evidence")
		return m, nil

	case attachmentDoneMsg:
		m.board = msg.snapshot
		m.clampSelection()
		if msg.movedPending {
			// Evidence satisfied the gate; the deferred move committed and
			// the evidence surface closes automatically.
			m.mode = modeNormal
			m.drawerTaskID = ""
			m.evidenceRequired = false
			m.notify(notifications.Info, "evidence added, move completed")
		} else {
			m.mode = modeDrawer
			m.notify(notifications.Info, "attachment added")
		}
		return m, nil

	case dismissedMsg:
		m.board = msg.snapshot
		m.clampSelection()
		m.mode = modeNormal
		m.drawerTaskID = ""
		m.evidenceRequired = false
		if msg.abandoned {
			m.notify(notifications.Warning, "move cancelled, task returned to its original group")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAttach, modeAssignee, modeDueDate, modeNewTask, modeNewGroup:
		return m.handleInputMode(msg)
	case modeDrawer:
		return m.handleDrawerMode(msg)
	case modeHelp:
		m.mode = modeNormal
		return m, nil
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode dispatches key events on the board.
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notification = nil

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.mode = modeHelp
		return m, nil
	case "r":
		return m, m.loadBoardCmd()

	case "left", "h":
		if m.selGroup > 0 {
			m.selGroup--
			m.selTask = 0
		}
		return m, nil
	case "right", "l":
		if m.selGroup < len(m.groups())-1 {
			m.selGroup++
			m.selTask = 0
		}
		return m, nil
	case "up", "k":
		if m.selTask > 0 {
			m.selTask--
		}
		return m, nil
	case "down", "j":
		g := m.currentGroup()
		if g != nil && m.selTask < len(m.board.TasksInGroup(g.ID))-1 {
			m.selTask++
		}
		return m, nil

	case "shift+left", "H":
		return m.relocateSelected(-1)
	case "shift+right", "L":
		return m.relocateSelected(+1)

	case " ", "x":
		if t := m.currentTask(); t != nil {
			return m, m.toggleCompleteCmd(t.ID)
		}
		return m, nil

	case "enter", "v":
		if t := m.currentTask(); t != nil {
			m.mode = modeDrawer
			m.drawerTaskID = t.ID
			_, m.evidenceRequired = m.app.BoardOps.PendingMove(t.ID)
		}
		return m, nil

	case "n":
		m.mode = modeNewTask
		m.input.Placeholder = "task name"
		m.input.SetValue("")
		m.input.Focus()
		return m, nil
	case "N":
		m.mode = modeNewGroup
		m.input.Placeholder = "group name"
		m.input.SetValue("")
		m.input.Focus()
		return m, nil

	case "d":
		if t := m.currentTask(); t != nil {
			return m, m.deleteTaskCmd(t.ID)
		}
		return m, nil
	case "D":
		if g := m.currentGroup(); g != nil {
			return m, m.deleteGroupCmd(g.ID)
		}
		return m, nil

	case "[":
		return m.moveSelectedGroup(-1)
	case "]":
		return m.moveSelectedGroup(+1)
	}

	return m, nil
}

// relocateSelected moves the selected task one group left or right.
func (m Model) relocateSelected(direction int) (tea.Model, tea.Cmd) {
	task := m.currentTask()
	if task == nil {
		return m, nil
	}
	groups := m.groups()
	destIdx := m.selGroup + direction
	if destIdx < 0 || destIdx >= len(groups) {
		return m, nil
	}
	return m, m.relocateCmd(task.ID, groups[destIdx].ID)
}

// moveSelectedGroup shifts the selected group's position and sends the full
// new ordering to the server.
func (m Model) moveSelectedGroup(direction int) (tea.Model, tea.Cmd) {
	groups := m.groups()
	target := m.selGroup + direction
	if target < 0 || target >= len(groups) {
		return m, nil
	}
	ordered := make([]string, len(groups))
	for i, g := range groups {
		ordered[i] = g.ID
	}
	ordered[m.selGroup], ordered[target] = ordered[target], ordered[m.selGroup]
	m.selGroup = target
	return m, m.reorderGroupsCmd(ordered)
}

// handleDrawerMode handles keys while the task drawer is open.
func (m Model) handleDrawerMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		m.mode = modeAttach
		m.input.Placeholder = "path to file"
		m.input.SetValue("")
		m.input.Focus()
		return m, nil
	case "p":
		if t := m.board.TaskByID(m.drawerTaskID); t != nil {
			return m, m.setPriorityCmd(t.ID, nextPriority(t.Priority))
		}
		return m, nil
	case "@":
		m.mode = modeAssignee
		m.input.Placeholder = "assignee id (empty to unassign)"
		m.input.SetValue("")
		m.input.Focus()
		return m, nil
	case "t":
		m.mode = modeDueDate
		m.input.Placeholder = "due date YYYY-MM-DD (empty to clear)"
		m.input.SetValue("")
		m.input.Focus()
		return m, nil
	case "esc", "q":
		// Closing the evidence surface without an attachment abandons any
		// pending move; the service decides which case this is.
		return m, m.dismissEvidenceCmd(m.drawerTaskID)
	}
	return m, nil
}

// handleInputMode handles the text prompt for new tasks, new groups, and
// attachment paths.
func (m Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		switch m.mode {
		case modeAttach, modeAssignee, modeDueDate:
			m.mode = modeDrawer
		default:
			m.mode = modeNormal
		}
		m.input.Blur()
		return m, nil

	case "enter":
		value := m.input.Value()
		m.input.Blur()
		switch m.mode {
		case modeAttach:
			m.mode = modeDrawer
			if value == "" {
				return m, nil
			}
			return m, m.attachFileCmd(m.drawerTaskID, value)
		case modeAssignee:
			// An empty value unassigns, so it still goes through.
			m.mode = modeDrawer
			return m, m.setAssigneeCmd(m.drawerTaskID, value)
		case modeDueDate:
			m.mode = modeDrawer
			return m, m.setDueDateCmd(m.drawerTaskID, value)
		case modeNewTask:
			m.mode = modeNormal
			if value == "" {
				return m, nil
			}
			groupID := ""
			if g := m.currentGroup(); g != nil {
				groupID = g.ID
			}
			return m, m.createTaskCmd(value, groupID)
		case modeNewGroup:
			m.mode = modeNormal
			if value == "" {
				return m, nil
			}
			return m, m.createGroupCmd(value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// nextPriority cycles through the priority levels, highest first. Unknown
// values restart the cycle.
func nextPriority(p models.Priority) models.Priority {
	switch p {
	case models.PriorityHigh:
		return models.PriorityMedium
	case models.PriorityMedium:
		return models.PriorityNormal
	case models.PriorityNormal:
		return models.PriorityLow
	default:
		return models.PriorityHigh
	}
}

// classifyError maps service errors to user-facing notifications,
// distinguishing non-retriable permission failures from retriable
// confirmation failures.
func classifyError(err error) (notifications.Severity, string) {
	switch {
	case errors.Is(err, boardops.ErrPermissionDenied):
		return notifications.Error, "you do not have permission to move this task"
	case errors.Is(err, pending.ErrMoveAlreadyPending):
		return notifications.Warning, "a move is already pending for this task"
	case errors.Is(err, boardops.ErrInvalidTarget):
		return notifications.Error, "that group is not on this board"
	case errors.Is(err, boardops.ErrTaskAlreadyInGroup):
		return notifications.Info, "task is already there"
	case errors.Is(err, mutate.ErrConfirmTimeout):
		return notifications.Error, "the server did not answer in time, change undone - try again"
	case errors.Is(err, models.ErrTaskNotFound):
		return notifications.Error, "task no longer exists"
	default:
		return notifications.Error, "move failed, try again"
	}
}
