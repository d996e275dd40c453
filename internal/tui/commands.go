package tui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/tavla/internal/models"
	"github.com/thenoetrevino/tavla/internal/remote"
	"github.com/thenoetrevino/tavla/internal/services/boardops"
	"github.com/thenoetrevino/tavla/internal/tui/notifications"
)

// Commands run on their own goroutines; they only talk to the service layer
// and report back through messages.

func (m Model) loadCachedCmd() tea.Cmd {
	return func() tea.Msg {
		snapshot, ok := m.app.BoardOps.CachedBoard()
		if !ok {
			return nil
		}
		return cachedBoardMsg{snapshot: snapshot}
	}
}

func (m Model) loadBoardCmd() tea.Cmd {
	return func() tea.Msg {
		snapshot, fromCache, err := m.app.BoardOps.LoadBoard(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return boardLoadedMsg{snapshot: snapshot, fromCache: fromCache}
	}
}

func (m Model) relocateCmd(taskID, destGroupID string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.app.BoardOps.RelocateTask(context.Background(), m.actor, taskID, destGroupID)
		if err != nil {
			return errMsg{err: err, snapshot: m.app.BoardOps.Snapshot()}
		}
		if outcome == boardops.OutcomeEvidenceRequired {
			return evidenceRequiredMsg{taskID: taskID}
		}
		return resultMsg{snapshot: m.app.BoardOps.Snapshot()}
	}
}

func (m Model) toggleCompleteCmd(taskID string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.app.BoardOps.ToggleComplete(context.Background(), m.actor, taskID)
		if err != nil {
			return errMsg{err: err, snapshot: m.app.BoardOps.Snapshot()}
		}
		if outcome == boardops.OutcomeEvidenceRequired {
			return evidenceRequiredMsg{taskID: taskID}
		}
		return resultMsg{snapshot: m.app.BoardOps.Snapshot()}
	}
}

func (m Model) createTaskCmd(name, groupID string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.app.BoardOps.CreateTask(context.Background(), m.actor, boardops.CreateTaskRequest{
			Name:    name,
			GroupID: groupID,
		})
		if err != nil {
			return errMsg{err: err, snapshot: m.app.BoardOps.Snapshot()}
		}
		return resultMsg{snapshot: m.app.BoardOps.Snapshot(), note: "task created", level: notifications.Info}
	}
}

func (m Model) deleteTaskCmd(taskID string) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.BoardOps.DeleteTask(context.Background(), m.actor, taskID); err != nil {
			return errMsg{err: err, snapshot: m.app.BoardOps.Snapshot()}
		}
		return resultMsg{snapshot: m.app.BoardOps.Snapshot(), note: "task deleted", level: notifications.Info}
	}
}

func (m Model) createGroupCmd(name string) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.BoardOps.CreateGroup(context.Background(), name); err != nil {
			return errMsg{err: err, snapshot: m.app.BoardOps.Snapshot()}
		}
		return resultMsg{snapshot: m.app.BoardOps.Snapshot(), note: "group created", level: notifications.Info}
	}
}

func (m Model) deleteGroupCmd(groupID string) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.BoardOps.DeleteGroup(context.Background(), groupID); err != nil {
			return errMsg{err: err, snapshot: m.app.BoardOps.Snapshot()}
		}
		return resultMsg{snapshot: m.app.BoardOps.Snapshot(), note: "group deleted, tasks moved to intake", level: notifications.Info}
	}
}

func (m Model) reorderGroupsCmd(orderedIDs []string) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.BoardOps.ReorderGroups(context.Background(), orderedIDs); err != nil {
			return errMsg{err: err, snapshot: m.app.BoardOps.Snapshot()}
		}
		return resultMsg{snapshot: m.app.BoardOps.Snapshot()}
	}
}

func (m Model) attachFileCmd(taskID, path string) tea.Cmd {
	return func() tea.Msg {
		file, err := os.Open(path)
		if err != nil {
			return errMsg{err: err, snapshot: m.app.BoardOps.Snapshot()}
		}
		defer file.Close()

		moved, err := m.app.BoardOps.AddAttachment(context.Background(), taskID, remote.Upload{
			Name:   filepath.Base(path),
			Reader: file,
		})
		if err != nil {
			return errMsg{err: err, snapshot: m.app.BoardOps.Snapshot()}
		}
		return attachmentDoneMsg{taskID: taskID, movedPending: moved, snapshot: m.app.BoardOps.Snapshot()}
	}
}

func (m Model) setPriorityCmd(taskID string, priority models.Priority) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.BoardOps.SetPriority(context.Background(), m.actor, taskID, priority); err != nil {
			return errMsg{err: err, snapshot: m.app.BoardOps.Snapshot()}
		}
		return resultMsg{snapshot: m.app.BoardOps.Snapshot()}
	}
}

func (m Model) setAssigneeCmd(taskID, assigneeID string) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.BoardOps.SetAssignee(context.Background(), m.actor, taskID, assigneeID); err != nil {
			return errMsg{err: err, snapshot: m.app.BoardOps.Snapshot()}
		}
		note := "assignee updated"
		if assigneeID == "" {
			note = "task unassigned"
		}
		return resultMsg{snapshot: m.app.BoardOps.Snapshot(), note: note, level: notifications.Info}
	}
}

func (m Model) setDueDateCmd(taskID, raw string) tea.Cmd {
	return func() tea.Msg {
		var due *time.Time
		if raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return resultMsg{
					snapshot: m.app.BoardOps.Snapshot(),
					note:     "invalid date, use YYYY-MM-DD",
					level:    notifications.Warning,
				}
			}
			due = &parsed
		}
		if err := m.app.BoardOps.SetDueDate(context.Background(), m.actor, taskID, due); err != nil {
			return errMsg{err: err, snapshot: m.app.BoardOps.Snapshot()}
		}
		return resultMsg{snapshot: m.app.BoardOps.Snapshot()}
	}
}

func (m Model) dismissEvidenceCmd(taskID string) tea.Cmd {
	return func() tea.Msg {
		abandoned, err := m.app.BoardOps.DismissEvidence(context.Background(), taskID)
		if err != nil {
			return errMsg{err: err, snapshot: m.app.BoardOps.Snapshot()}
		}
		return dismissedMsg{abandoned: abandoned, snapshot: m.app.BoardOps.Snapshot()}
	}
}
