// Package board holds the client's authoritative-until-contradicted view of
// one board: its groups, its tasks, and the resolved designated groups. It is
// a pure projection; nothing here talks to the network. The committed board
// is mutated exclusively by the sync coordinator, every other component only
// reads it or computes predicates over it.
package board

import (
	"sort"
	"strings"

	"github.com/thenoetrevino/tavla/internal/models"
)

// GroupNames configures which group names resolve to the designated groups.
type GroupNames struct {
	Intake     string `yaml:"intake"`
	InProgress string `yaml:"in_progress"`
	Complete   string `yaml:"complete"`
}

// DefaultGroupNames returns the conventional board column names.
func DefaultGroupNames() GroupNames {
	return GroupNames{
		Intake:     "To Do",
		InProgress: "In Progress",
		Complete:   "Complete",
	}
}

// Board is the in-memory representation of one board.
//
// The designated group IDs are resolved once at construction so callers never
// special-case column indexes: DefaultGroupID absorbs tasks with an unset
// group, InProgressGroupID and CompleteGroupID drive the transition gate and
// the completed flag.
type Board struct {
	ID     string
	groups []*models.Group
	tasks  []*models.Task

	DefaultGroupID    string
	InProgressGroupID string
	CompleteGroupID   string
}

// New builds a board from a fetched group and task set, resolving the
// designated groups by name. The default group falls back to the first
// ordered group when no name matches, so a board always has an intake column;
// the gated groups stay unresolved (empty ID) when their names are absent,
// which disables the gate rather than guessing at a column.
func New(boardID string, groups []*models.Group, tasks []*models.Task, names GroupNames) *Board {
	b := &Board{ID: boardID, groups: groups, tasks: tasks}
	b.sortGroups()

	for _, g := range b.groups {
		switch {
		case strings.EqualFold(g.Name, names.Intake) && b.DefaultGroupID == "":
			b.DefaultGroupID = g.ID
		case strings.EqualFold(g.Name, names.InProgress) && b.InProgressGroupID == "":
			b.InProgressGroupID = g.ID
		case strings.EqualFold(g.Name, names.Complete) && b.CompleteGroupID == "":
			b.CompleteGroupID = g.ID
		}
	}
	if b.DefaultGroupID == "" && len(b.groups) > 0 {
		b.DefaultGroupID = b.groups[0].ID
	}
	return b
}

// groupRank returns the ordering key for a group: position when present,
// the legacy rank otherwise, and an explicit fallback when both are absent.
func groupRank(g *models.Group) int {
	if g.Position != nil {
		return *g.Position
	}
	if g.Rank != nil {
		return *g.Rank
	}
	return models.FallbackGroupRank
}

func (b *Board) sortGroups() {
	sort.SliceStable(b.groups, func(i, j int) bool {
		return groupRank(b.groups[i]) < groupRank(b.groups[j])
	})
}

// GroupsOrdered returns the groups sorted by position ascending.
// The returned slice is shared; callers must not mutate it.
func (b *Board) GroupsOrdered() []*models.Group {
	return b.groups
}

// GroupByID returns the group with the given ID, or nil.
func (b *Board) GroupByID(groupID string) *models.Group {
	for _, g := range b.groups {
		if g.ID == groupID {
			return g
		}
	}
	return nil
}

// TaskByID returns the task with the given ID, or nil.
func (b *Board) TaskByID(taskID string) *models.Task {
	for _, t := range b.tasks {
		if t.ID == taskID {
			return t
		}
	}
	return nil
}

// Tasks returns every task on the board, unordered.
// The returned slice is shared; callers must not mutate it.
func (b *Board) Tasks() []*models.Task {
	return b.tasks
}

// TasksInGroup returns the tasks owned by the given group, ordered by their
// order index. The default group additionally absorbs tasks whose group
// reference is unset, so newly created or orphaned tasks stay visible.
func (b *Board) TasksInGroup(groupID string) []*models.Task {
	var out []*models.Task
	for _, t := range b.tasks {
		if t.GroupID == groupID || (t.GroupID == "" && groupID == b.DefaultGroupID) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out
}

// NextOrderIndex returns an order index that places a task after every task
// currently in the group.
func (b *Board) NextOrderIndex(groupID string) int {
	next := 0
	for _, t := range b.tasks {
		if t.GroupID == groupID && t.OrderIndex >= next {
			next = t.OrderIndex + 1
		}
	}
	return next
}

// Clone returns a deep copy of the board, used as the rollback snapshot for
// optimistic mutations.
func (b *Board) Clone() *Board {
	c := &Board{
		ID:                b.ID,
		DefaultGroupID:    b.DefaultGroupID,
		InProgressGroupID: b.InProgressGroupID,
		CompleteGroupID:   b.CompleteGroupID,
	}
	c.groups = make([]*models.Group, len(b.groups))
	for i, g := range b.groups {
		c.groups[i] = g.Clone()
	}
	c.tasks = make([]*models.Task, len(b.tasks))
	for i, t := range b.tasks {
		c.tasks[i] = t.Clone()
	}
	return c
}

// Restore replaces the board's contents with those of the snapshot.
func (b *Board) Restore(snapshot *Board) {
	b.ID = snapshot.ID
	b.groups = snapshot.groups
	b.tasks = snapshot.tasks
	b.DefaultGroupID = snapshot.DefaultGroupID
	b.InProgressGroupID = snapshot.InProgressGroupID
	b.CompleteGroupID = snapshot.CompleteGroupID
}

// UpsertTask inserts the task, or replaces the task with the same ID.
func (b *Board) UpsertTask(task *models.Task) {
	for i, t := range b.tasks {
		if t.ID == task.ID {
			b.tasks[i] = task
			return
		}
	}
	b.tasks = append(b.tasks, task)
}

// ReplaceTask removes the task with oldID and inserts task in its place.
// Used when a server-confirmed entity supersedes an optimistic placeholder.
func (b *Board) ReplaceTask(oldID string, task *models.Task) {
	for i, t := range b.tasks {
		if t.ID == oldID {
			b.tasks[i] = task
			return
		}
	}
	b.tasks = append(b.tasks, task)
}

// RemoveTask deletes the task with the given ID, if present.
func (b *Board) RemoveTask(taskID string) {
	for i, t := range b.tasks {
		if t.ID == taskID {
			b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
			return
		}
	}
}

// UpsertGroup inserts the group, or replaces the group with the same ID,
// and re-sorts the group order.
func (b *Board) UpsertGroup(group *models.Group) {
	for i, g := range b.groups {
		if g.ID == group.ID {
			b.groups[i] = group
			b.sortGroups()
			return
		}
	}
	b.groups = append(b.groups, group)
	b.sortGroups()
}

// RemoveGroup deletes the group with the given ID, if present.
func (b *Board) RemoveGroup(groupID string) {
	for i, g := range b.groups {
		if g.ID == groupID {
			b.groups = append(b.groups[:i], b.groups[i+1:]...)
			return
		}
	}
}

// SetGroups replaces the full group set with the server's canonical ordering.
func (b *Board) SetGroups(groups []*models.Group) {
	b.groups = groups
	b.sortGroups()
}
