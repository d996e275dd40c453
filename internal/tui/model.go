package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/tavla/internal/app"
	"github.com/thenoetrevino/tavla/internal/board"
	"github.com/thenoetrevino/tavla/internal/models"
	"github.com/thenoetrevino/tavla/internal/tui/notifications"
)

// mode is the current input mode of the board UI
type mode int

const (
	modeNormal   mode = iota
	modeDrawer        // task drawer open (doubles as the evidence surface)
	modeAttach        // attachment path prompt inside the drawer
	modeAssignee      // assignee prompt inside the drawer
	modeDueDate       // due date prompt inside the drawer
	modeNewTask
	modeNewGroup
	modeHelp
)

// Model represents the application state for the TUI
type Model struct {
	app   *app.App
	actor models.Actor

	// board is the last rendered snapshot of the committed board; every
	// service result message carries a fresh one.
	board            *board.Board
	offline          bool
	selGroup         int
	selTask          int
	mode             mode
	drawerTaskID     string
	evidenceRequired bool

	input        textinput.Model
	notification *notifications.Notification

	width  int
	height int
}

// InitialModel creates the TUI model. The board loads asynchronously in Init.
func InitialModel(a *app.App, actor models.Actor) Model {
	input := textinput.New()
	input.CharLimit = 255
	return Model{
		app:   a,
		actor: actor,
		input: input,
	}
}

// Init paints the cached snapshot right away (when one exists) and kicks off
// the authoritative board load in parallel.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCachedCmd(), m.loadBoardCmd())
}

// groups returns the ordered groups of the current snapshot.
func (m Model) groups() []*models.Group {
	if m.board == nil {
		return nil
	}
	return m.board.GroupsOrdered()
}

// currentGroup returns the selected group, or nil.
func (m Model) currentGroup() *models.Group {
	groups := m.groups()
	if m.selGroup < 0 || m.selGroup >= len(groups) {
		return nil
	}
	return groups[m.selGroup]
}

// currentTask returns the selected task, or nil.
func (m Model) currentTask() *models.Task {
	g := m.currentGroup()
	if g == nil {
		return nil
	}
	tasks := m.board.TasksInGroup(g.ID)
	if m.selTask < 0 || m.selTask >= len(tasks) {
		return nil
	}
	return tasks[m.selTask]
}

// clampSelection keeps the selection inside the snapshot's bounds after the
// board changes under it.
func (m *Model) clampSelection() {
	groups := m.groups()
	if len(groups) == 0 {
		m.selGroup, m.selTask = 0, 0
		return
	}
	if m.selGroup >= len(groups) {
		m.selGroup = len(groups) - 1
	}
	if m.selGroup < 0 {
		m.selGroup = 0
	}
	tasks := m.board.TasksInGroup(groups[m.selGroup].ID)
	if m.selTask >= len(tasks) {
		m.selTask = len(tasks) - 1
	}
	if m.selTask < 0 {
		m.selTask = 0
	}
}

func (m *Model) notify(level notifications.Severity, message string) {
	m.notification = &notifications.Notification{Level: level, Message: message}
}
