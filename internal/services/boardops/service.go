// Package boardops is the board mutation surface: it translates user intents
// into coordinator mutations with the correct pre-checks, so authorization,
// the transition gate, and the optimistic commit/rollback discipline are
// uniform across every operation.
package boardops

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/thenoetrevino/tavla/internal/authz"
	"github.com/thenoetrevino/tavla/internal/board"
	"github.com/thenoetrevino/tavla/internal/cache"
	"github.com/thenoetrevino/tavla/internal/models"
	"github.com/thenoetrevino/tavla/internal/mutate"
	"github.com/thenoetrevino/tavla/internal/pending"
	"github.com/thenoetrevino/tavla/internal/policy"
	"github.com/thenoetrevino/tavla/internal/remote"
)

// Outcome reports how a relocation resolved.
type Outcome int

const (
	// OutcomeCommitted means the relocation went through the coordinator.
	OutcomeCommitted Outcome = iota

	// OutcomeEvidenceRequired means the transition gate blocked the move and
	// a pending move now awaits an attachment. Not a failure; the caller
	// surfaces the evidence drawer.
	OutcomeEvidenceRequired
)

// Service defines all board mutation operations
type Service interface {
	// Board lifecycle
	LoadBoard(ctx context.Context) (snapshot *board.Board, fromCache bool, err error)
	CachedBoard() (*board.Board, bool)
	Snapshot() *board.Board

	// Relocation
	RelocateTask(ctx context.Context, actor models.Actor, taskID, destGroupID string) (Outcome, error)
	ToggleComplete(ctx context.Context, actor models.Actor, taskID string) (Outcome, error)

	// Task lifecycle
	CreateTask(ctx context.Context, actor models.Actor, req CreateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, actor models.Actor, taskID string) error

	// Field edits
	SetAssignee(ctx context.Context, actor models.Actor, taskID, assigneeID string) error
	SetDueDate(ctx context.Context, actor models.Actor, taskID string, dueOn *time.Time) error
	SetPriority(ctx context.Context, actor models.Actor, taskID string, priority models.Priority) error

	// Group management
	CreateGroup(ctx context.Context, name string) error
	RenameGroup(ctx context.Context, groupID, name string) error
	DeleteGroup(ctx context.Context, groupID string) error
	ReorderGroups(ctx context.Context, orderedGroupIDs []string) error

	// Evidence flow
	AddAttachment(ctx context.Context, taskID string, file remote.Upload) (movedPending bool, err error)
	DismissEvidence(ctx context.Context, taskID string) (abandoned bool, err error)
	PendingMove(taskID string) (*pending.Move, bool)
}

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	Name        string
	Description string
	GroupID     string // empty means the board's default group
	Priority    models.Priority
	Labels      []string
}

// service implements Service interface
type service struct {
	boardID string
	names   board.GroupNames
	coord   *mutate.Coordinator
	store   remote.Store
	tracker *pending.Tracker
	cache   *cache.Store
	log     *slog.Logger
}

// NewService creates a new board mutation service. The cache is optional.
func NewService(boardID string, names board.GroupNames, coord *mutate.Coordinator, store remote.Store, snapshots *cache.Store) Service {
	return &service{
		boardID: boardID,
		names:   names,
		coord:   coord,
		store:   store,
		tracker: pending.NewTracker(),
		cache:   snapshots,
		log:     slog.Default(),
	}
}

// LoadBoard fetches the board from the store and installs it as the
// committed board. On fetch failure it falls back to the last cached
// snapshot so the client can still render, reporting fromCache=true.
func (s *service) LoadBoard(ctx context.Context) (*board.Board, bool, error) {
	payload, err := s.store.FetchBoard(ctx, s.boardID)
	if err != nil {
		if s.cache != nil {
			if cached, cacheErr := s.cache.LoadSnapshot(s.boardID); cacheErr == nil && cached != nil {
				s.log.Warn("board fetch failed, serving cached snapshot", "board", s.boardID, "error", err)
				b := board.New(s.boardID, cached.Groups, cached.Tasks, s.names)
				s.coord.ResetBoard(b)
				return s.coord.Snapshot(), true, nil
			}
		}
		return nil, false, fmt.Errorf("failed to load board: %w", err)
	}

	b := board.New(s.boardID, payload.Groups, payload.Tasks, s.names)
	s.coord.ResetBoard(b)
	if s.cache != nil {
		if err := s.cache.SaveSnapshot(s.boardID, payload); err != nil {
			s.log.Warn("failed to cache board snapshot", "board", s.boardID, "error", err)
		}
	}
	return s.coord.Snapshot(), false, nil
}

// CachedBoard returns the last cached snapshot as a renderable board, so the
// UI can paint immediately while the authoritative fetch is still in flight.
// It never touches the committed board; LoadBoard installs the real one.
func (s *service) CachedBoard() (*board.Board, bool) {
	if s.cache == nil {
		return nil, false
	}
	payload, err := s.cache.LoadSnapshot(s.boardID)
	if err != nil || payload == nil {
		return nil, false
	}
	return board.New(s.boardID, payload.Groups, payload.Tasks, s.names), true
}

// Snapshot returns the committed board for rendering.
func (s *service) Snapshot() *board.Board {
	return s.coord.Snapshot()
}

// RelocateTask moves a task to the destination group, subject to move
// authorization and the transition gate. A gated move produces exactly one
// pending move and leaves the committed group untouched.
func (s *service) RelocateTask(ctx context.Context, actor models.Actor, taskID, destGroupID string) (Outcome, error) {
	b := s.coord.Snapshot()
	task := b.TaskByID(taskID)
	if task == nil {
		return OutcomeCommitted, models.ErrTaskNotFound
	}
	if b.GroupByID(destGroupID) == nil {
		return OutcomeCommitted, ErrInvalidTarget
	}
	if !authz.CanMoveTask(actor, task) {
		return OutcomeCommitted, ErrPermissionDenied
	}
	if task.GroupID == destGroupID {
		return OutcomeCommitted, ErrTaskAlreadyInGroup
	}

	gate := policy.Gate{InProgressGroupID: b.InProgressGroupID, CompleteGroupID: b.CompleteGroupID}
	if gate.RequiresEvidence(destGroupID, task) {
		origin := task.GroupID
		if origin == "" {
			origin = b.DefaultGroupID
		}
		if _, err := s.tracker.Begin(task, origin, destGroupID); err != nil {
			return OutcomeCommitted, err
		}
		s.log.Info("move blocked pending evidence", "task", taskID, "destination", destGroupID)
		return OutcomeEvidenceRequired, nil
	}

	return OutcomeCommitted, s.relocate(ctx, taskID, destGroupID)
}

// relocate performs the confirmed relocation through the coordinator.
func (s *service) relocate(ctx context.Context, taskID, destGroupID string) error {
	var patch remote.TaskPatch
	found := false
	return s.coord.Apply(ctx, mutate.Mutation{
		Name: "relocate task",
		Apply: func(b *board.Board) {
			t := b.TaskByID(taskID)
			if t == nil {
				return
			}
			found = true
			dest := destGroupID
			idx := b.NextOrderIndex(destGroupID)
			completed := destGroupID == b.CompleteGroupID
			t.GroupID = dest
			t.OrderIndex = idx
			t.Completed = completed
			patch = remote.TaskPatch{GroupID: &dest, OrderIndex: &idx, Completed: &completed}
		},
		Confirm: func(ctx context.Context) (mutate.Reconcile, error) {
			// The task can vanish between the caller's snapshot and Apply;
			// never confirm an empty patch.
			if !found {
				return nil, models.ErrTaskNotFound
			}
			confirmed, err := s.store.ConfirmTaskMutation(ctx, taskID, patch)
			if err != nil {
				return nil, err
			}
			return func(b *board.Board) { b.UpsertTask(confirmed) }, nil
		},
	})
}

// ToggleComplete relocates the task between its current group and the
// complete group (or back to the default group when already complete),
// subject to the same authorization and gate checks as any relocation.
func (s *service) ToggleComplete(ctx context.Context, actor models.Actor, taskID string) (Outcome, error) {
	b := s.coord.Snapshot()
	if b.CompleteGroupID == "" {
		return OutcomeCommitted, ErrNoCompleteGroup
	}
	task := b.TaskByID(taskID)
	if task == nil {
		return OutcomeCommitted, models.ErrTaskNotFound
	}
	dest := b.CompleteGroupID
	if task.GroupID == b.CompleteGroupID {
		dest = b.DefaultGroupID
	}
	return s.RelocateTask(ctx, actor, taskID, dest)
}

// CreateTask inserts an optimistic placeholder immediately and replaces it
// with the server-confirmed task on success, or removes it on failure.
func (s *service) CreateTask(ctx context.Context, actor models.Actor, req CreateTaskRequest) (*models.Task, error) {
	if actor.Role == models.RoleClient {
		return nil, ErrPermissionDenied
	}
	if err := validateName(req.Name); err != nil {
		return nil, err
	}
	if req.Priority == "" {
		req.Priority = models.PriorityNormal
	}
	if !req.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	b := s.coord.Snapshot()
	groupID := req.GroupID
	if groupID == "" {
		groupID = b.DefaultGroupID
	}
	if b.GroupByID(groupID) == nil {
		return nil, ErrInvalidTarget
	}

	placeholderID := "tmp-" + uuid.NewString()
	var confirmed *models.Task
	err := s.coord.Apply(ctx, mutate.Mutation{
		Name: "create task",
		Apply: func(b *board.Board) {
			now := time.Now()
			b.UpsertTask(&models.Task{
				ID:               placeholderID,
				Name:             req.Name,
				Description:      req.Description,
				GroupID:          groupID,
				OrderIndex:       b.NextOrderIndex(groupID),
				CreatedByActorID: actor.ID,
				Priority:         req.Priority,
				Labels:           req.Labels,
				CreatedAt:        now,
				UpdatedAt:        now,
			})
		},
		Confirm: func(ctx context.Context) (mutate.Reconcile, error) {
			task, err := s.store.CreateTask(ctx, remote.NewTask{
				BoardID:          s.boardID,
				Name:             req.Name,
				Description:      req.Description,
				GroupID:          groupID,
				OrderIndex:       b.NextOrderIndex(groupID),
				Priority:         req.Priority,
				CreatedByActorID: actor.ID,
			})
			if err != nil {
				return nil, err
			}
			confirmed = task
			return func(b *board.Board) { b.ReplaceTask(placeholderID, task) }, nil
		},
	})
	if err != nil {
		return nil, err
	}
	return confirmed, nil
}

// DeleteTask removes a task. The remote delete is idempotent, so retrying
// after a timeout is safe.
func (s *service) DeleteTask(ctx context.Context, actor models.Actor, taskID string) error {
	b := s.coord.Snapshot()
	task := b.TaskByID(taskID)
	if task == nil {
		return models.ErrTaskNotFound
	}
	if !authz.CanMoveTask(actor, task) {
		return ErrPermissionDenied
	}
	return s.coord.Apply(ctx, mutate.Mutation{
		Name:  "delete task",
		Apply: func(b *board.Board) { b.RemoveTask(taskID) },
		Confirm: func(ctx context.Context) (mutate.Reconcile, error) {
			return nil, s.store.DeleteTask(ctx, taskID)
		},
	})
}

// editTask applies a single-field optimistic edit, gated on the same
// predicate that authorizes moves.
func (s *service) editTask(ctx context.Context, actor models.Actor, taskID, name string, apply func(t *models.Task), patch remote.TaskPatch) error {
	b := s.coord.Snapshot()
	task := b.TaskByID(taskID)
	if task == nil {
		return models.ErrTaskNotFound
	}
	if !authz.CanMoveTask(actor, task) {
		return ErrPermissionDenied
	}
	return s.coord.Apply(ctx, mutate.Mutation{
		Name: name,
		Apply: func(b *board.Board) {
			if t := b.TaskByID(taskID); t != nil {
				apply(t)
			}
		},
		Confirm: func(ctx context.Context) (mutate.Reconcile, error) {
			confirmed, err := s.store.ConfirmTaskMutation(ctx, taskID, patch)
			if err != nil {
				return nil, err
			}
			// The confirmed entity wins over any cached roster data.
			return func(b *board.Board) { b.UpsertTask(confirmed) }, nil
		},
	})
}

// SetAssignee changes the task's assignee. An empty assigneeID unassigns.
func (s *service) SetAssignee(ctx context.Context, actor models.Actor, taskID, assigneeID string) error {
	return s.editTask(ctx, actor, taskID, "set assignee",
		func(t *models.Task) { t.AssignedActorID = assigneeID },
		remote.TaskPatch{AssignedActorID: &assigneeID})
}

// SetDueDate changes the task's due date. Nil clears it.
func (s *service) SetDueDate(ctx context.Context, actor models.Actor, taskID string, dueOn *time.Time) error {
	return s.editTask(ctx, actor, taskID, "set due date",
		func(t *models.Task) { t.DueOn = dueOn },
		remote.TaskPatch{DueOn: dueOn})
}

// SetPriority changes the task's priority.
func (s *service) SetPriority(ctx context.Context, actor models.Actor, taskID string, priority models.Priority) error {
	if !priority.Valid() {
		return ErrInvalidPriority
	}
	return s.editTask(ctx, actor, taskID, "set priority",
		func(t *models.Task) { t.Priority = priority },
		remote.TaskPatch{Priority: &priority})
}

// CreateGroup appends a new group to the board.
func (s *service) CreateGroup(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	placeholderID := "tmp-" + uuid.NewString()
	return s.coord.Apply(ctx, mutate.Mutation{
		Name: "create group",
		Apply: func(b *board.Board) {
			pos := models.FallbackGroupRank - 1 // after every ranked group
			b.UpsertGroup(&models.Group{ID: placeholderID, BoardID: b.ID, Name: name, Position: &pos})
		},
		Confirm: func(ctx context.Context) (mutate.Reconcile, error) {
			group, err := s.store.CreateGroup(ctx, s.boardID, name)
			if err != nil {
				return nil, err
			}
			return func(b *board.Board) {
				b.RemoveGroup(placeholderID)
				b.UpsertGroup(group)
			}, nil
		},
	})
}

// RenameGroup renames a group optimistically.
func (s *service) RenameGroup(ctx context.Context, groupID, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	b := s.coord.Snapshot()
	if b.GroupByID(groupID) == nil {
		return models.ErrGroupNotFound
	}
	return s.coord.Apply(ctx, mutate.Mutation{
		Name: "rename group",
		Apply: func(b *board.Board) {
			if g := b.GroupByID(groupID); g != nil {
				g.Name = name
			}
		},
		Confirm: func(ctx context.Context) (mutate.Reconcile, error) {
			group, err := s.store.RenameGroup(ctx, groupID, name)
			if err != nil {
				return nil, err
			}
			return func(b *board.Board) { b.UpsertGroup(group) }, nil
		},
	})
}

// DeleteGroup removes a group, first migrating every task in it to the
// board's default group with one confirmation call per affected task.
func (s *service) DeleteGroup(ctx context.Context, groupID string) error {
	b := s.coord.Snapshot()
	if b.GroupByID(groupID) == nil {
		return models.ErrGroupNotFound
	}
	if groupID == b.DefaultGroupID {
		return ErrCannotDeleteDefaultGroup
	}

	var migrated []string
	return s.coord.Apply(ctx, mutate.Mutation{
		Name: "delete group",
		Apply: func(b *board.Board) {
			for _, t := range b.TasksInGroup(groupID) {
				t.GroupID = b.DefaultGroupID
				t.OrderIndex = b.NextOrderIndex(b.DefaultGroupID)
				t.Completed = b.DefaultGroupID == b.CompleteGroupID
				migrated = append(migrated, t.ID)
			}
			b.RemoveGroup(groupID)
		},
		Confirm: func(ctx context.Context) (mutate.Reconcile, error) {
			defaultID := b.DefaultGroupID
			for _, id := range migrated {
				if _, err := s.store.ConfirmTaskMutation(ctx, id, remote.TaskPatch{GroupID: &defaultID}); err != nil {
					return nil, fmt.Errorf("failed to migrate task %s: %w", id, err)
				}
			}
			return nil, s.store.DeleteGroup(ctx, groupID)
		},
	})
}

// ReorderGroups applies the new ordering optimistically and, on success,
// replaces it with the canonical ordering the server resolved.
func (s *service) ReorderGroups(ctx context.Context, orderedGroupIDs []string) error {
	return s.coord.Apply(ctx, mutate.Mutation{
		Name: "reorder groups",
		Apply: func(b *board.Board) {
			ranked := make([]*models.Group, 0, len(orderedGroupIDs))
			for i, id := range orderedGroupIDs {
				if g := b.GroupByID(id); g != nil {
					pos := i
					g.Position = &pos
					ranked = append(ranked, g)
				}
			}
			b.SetGroups(ranked)
		},
		Confirm: func(ctx context.Context) (mutate.Reconcile, error) {
			groups, err := s.store.ReorderGroups(ctx, s.boardID, orderedGroupIDs)
			if err != nil {
				return nil, err
			}
			return func(b *board.Board) { b.SetGroups(groups) }, nil
		},
	})
}

// AddAttachment uploads evidence to the task. The upload itself is not
// optimistic; on success the confirmed task is folded into the board, and if
// a pending move is outstanding the deferred relocation commits.
func (s *service) AddAttachment(ctx context.Context, taskID string, file remote.Upload) (bool, error) {
	confirmed, err := s.store.AddAttachment(ctx, taskID, file)
	if err != nil {
		return false, err
	}
	if err := s.coord.Apply(ctx, mutate.Mutation{
		Name:  "record attachment",
		Apply: func(b *board.Board) { b.UpsertTask(confirmed) },
	}); err != nil {
		return false, err
	}

	mv, ok := s.tracker.Get(taskID)
	if !ok || !confirmed.HasEvidence() {
		return false, nil
	}
	if _, err := s.tracker.Commit(taskID); err != nil {
		return false, err
	}
	s.log.Info("evidence supplied, committing deferred move", "task", taskID, "destination", mv.DestinationGroupID)
	if err := s.relocate(ctx, taskID, mv.DestinationGroupID); err != nil {
		return true, err
	}
	return true, nil
}

// DismissEvidence abandons the pending move for the task, force-reverting it
// to the origin group. Dismissing with no pending move is a no-op.
func (s *service) DismissEvidence(ctx context.Context, taskID string) (bool, error) {
	mv, err := s.tracker.Abandon(taskID)
	if err != nil {
		return false, nil
	}
	err = s.coord.Apply(ctx, mutate.Mutation{
		Name: "revert pending move",
		Apply: func(b *board.Board) {
			t := b.TaskByID(taskID)
			if t == nil {
				return
			}
			t.GroupID = mv.OriginGroupID
			t.OrderIndex = mv.Snapshot.OrderIndex
			t.Completed = mv.OriginGroupID == b.CompleteGroupID
		},
	})
	if err != nil {
		return true, err
	}
	s.log.Info("pending move abandoned", "task", taskID, "origin", mv.OriginGroupID)
	return true, nil
}

// PendingMove returns the outstanding pending move for the task, if any.
func (s *service) PendingMove(taskID string) (*pending.Move, bool) {
	return s.tracker.Get(taskID)
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > 255 {
		return ErrNameTooLong
	}
	return nil
}
