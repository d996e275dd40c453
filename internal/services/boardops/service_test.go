package boardops

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/thenoetrevino/tavla/internal/board"
	"github.com/thenoetrevino/tavla/internal/cache"
	"github.com/thenoetrevino/tavla/internal/models"
	"github.com/thenoetrevino/tavla/internal/mutate"
	"github.com/thenoetrevino/tavla/internal/pending"
	"github.com/thenoetrevino/tavla/internal/remote"
)

func intp(v int) *int { return &v }

// fakeStore is an in-memory remote.Store that records every confirmation
// call and answers with server-shaped entities.
type fakeStore struct {
	payload *remote.BoardPayload
	calls   []string

	fetchErr   error
	confirmErr error
	createErr  error
	attachErr  error
}

var _ remote.Store = (*fakeStore)(nil)

func (f *fakeStore) record(call string) { f.calls = append(f.calls, call) }

func (f *fakeStore) taskByID(id string) *models.Task {
	for _, t := range f.payload.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (f *fakeStore) FetchBoard(ctx context.Context, boardID string) (*remote.BoardPayload, error) {
	f.record("FetchBoard " + boardID)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.payload, nil
}

func (f *fakeStore) ConfirmTaskMutation(ctx context.Context, taskID string, patch remote.TaskPatch) (*models.Task, error) {
	f.record("ConfirmTaskMutation " + taskID)
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	base := f.taskByID(taskID)
	if base == nil {
		return nil, remote.ErrNotFound
	}
	confirmed := base.Clone()
	if patch.GroupID != nil {
		confirmed.GroupID = *patch.GroupID
	}
	if patch.OrderIndex != nil {
		confirmed.OrderIndex = *patch.OrderIndex
	}
	if patch.Completed != nil {
		confirmed.Completed = *patch.Completed
	}
	if patch.AssignedActorID != nil {
		confirmed.AssignedActorID = *patch.AssignedActorID
	}
	if patch.Priority != nil {
		confirmed.Priority = *patch.Priority
	}
	if patch.DueOn != nil {
		confirmed.DueOn = patch.DueOn
	}
	return confirmed, nil
}

func (f *fakeStore) CreateTask(ctx context.Context, fields remote.NewTask) (*models.Task, error) {
	f.record("CreateTask " + fields.Name)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Task{
		ID:               "t-server",
		Name:             fields.Name,
		Description:      fields.Description,
		GroupID:          fields.GroupID,
		OrderIndex:       fields.OrderIndex,
		Priority:         fields.Priority,
		CreatedByActorID: fields.CreatedByActorID,
	}, nil
}

func (f *fakeStore) DeleteTask(ctx context.Context, taskID string) error {
	f.record("DeleteTask " + taskID)
	return nil
}

func (f *fakeStore) CreateGroup(ctx context.Context, boardID, name string) (*models.Group, error) {
	f.record("CreateGroup " + name)
	return &models.Group{ID: "g-server", BoardID: boardID, Name: name, Position: intp(99)}, nil
}

func (f *fakeStore) RenameGroup(ctx context.Context, groupID, name string) (*models.Group, error) {
	f.record("RenameGroup " + groupID)
	return &models.Group{ID: groupID, Name: name, Position: intp(0)}, nil
}

func (f *fakeStore) DeleteGroup(ctx context.Context, groupID string) error {
	f.record("DeleteGroup " + groupID)
	return nil
}

func (f *fakeStore) ReorderGroups(ctx context.Context, boardID string, orderedGroupIDs []string) ([]*models.Group, error) {
	f.record("ReorderGroups")
	groups := make([]*models.Group, 0, len(orderedGroupIDs))
	for i, id := range orderedGroupIDs {
		groups = append(groups, &models.Group{ID: id, BoardID: boardID, Position: intp(i)})
	}
	return groups, nil
}

func (f *fakeStore) AddAttachment(ctx context.Context, taskID string, file remote.Upload) (*models.Task, error) {
	f.record("AddAttachment " + taskID)
	if f.attachErr != nil {
		return nil, f.attachErr
	}
	base := f.taskByID(taskID)
	if base == nil {
		return nil, remote.ErrNotFound
	}
	confirmed := base.Clone()
	confirmed.Attachments = append(confirmed.Attachments, models.Attachment{
		ID: "a1", Name: file.Name, Origin: models.AttachmentOriginUpload,
	})
	return confirmed, nil
}

func (f *fakeStore) CurrentActor(ctx context.Context) (*models.Actor, error) {
	f.record("CurrentActor")
	return &models.Actor{ID: "alice", Role: models.RoleMember}, nil
}

func (f *fakeStore) confirmCalls() []string {
	var out []string
	for _, c := range f.calls {
		if strings.HasPrefix(c, "ConfirmTaskMutation") {
			out = append(out, c)
		}
	}
	return out
}

var (
	admin  = models.Actor{ID: "root", Role: models.RoleAdmin}
	alice  = models.Actor{ID: "alice", Role: models.RoleMember}
	bob    = models.Actor{ID: "bob", Role: models.RoleMember}
	client = models.Actor{ID: "c1", Role: models.RoleClient}
)

func testPayload() *remote.BoardPayload {
	return &remote.BoardPayload{
		Groups: []*models.Group{
			{ID: "g-todo", BoardID: "b1", Name: "To Do", Position: intp(0)},
			{ID: "g-progress", BoardID: "b1", Name: "In Progress", Position: intp(1)},
			{ID: "g-done", BoardID: "b1", Name: "Complete", Position: intp(2)},
		},
		Tasks: []*models.Task{
			{ID: "t-bare", Name: "no evidence yet", GroupID: "g-todo", OrderIndex: 0, AssignedActorID: "alice"},
			{ID: "t-proved", Name: "has evidence", GroupID: "g-todo", OrderIndex: 1, AssignedActorID: "alice",
				Attachments: []models.Attachment{{ID: "a0", Name: "report.pdf", Origin: models.AttachmentOriginUpload}}},
		},
	}
}

func newTestService(t *testing.T, store *fakeStore) Service {
	t.Helper()
	empty := board.New("b1", nil, nil, board.DefaultGroupNames())
	coord := mutate.NewCoordinator(empty, time.Second, nil)
	svc := NewService("b1", board.DefaultGroupNames(), coord, store, nil)
	_, fromCache, err := svc.LoadBoard(context.Background())
	assert.NoError(t, err)
	assert.False(t, fromCache)
	return svc
}

func openTestCache(t *testing.T) *cache.Store {
	t.Helper()
	snapshots, err := cache.Open(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { _ = snapshots.Close() })
	return snapshots
}

func TestLoadBoard_FetchFailureServesCachedSnapshot(t *testing.T) {
	snapshots := openTestCache(t)
	assert.NoError(t, snapshots.SaveSnapshot("b1", testPayload()))

	store := &fakeStore{fetchErr: errors.New("connection refused")}
	empty := board.New("b1", nil, nil, board.DefaultGroupNames())
	coord := mutate.NewCoordinator(empty, time.Second, nil)
	svc := NewService("b1", board.DefaultGroupNames(), coord, store, snapshots)

	snapshot, fromCache, err := svc.LoadBoard(context.Background())
	assert.NoError(t, err)
	assert.True(t, fromCache)
	assert.NotNil(t, snapshot.TaskByID("t-bare"))
	assert.Equal(t, "g-todo", snapshot.DefaultGroupID)

	// The cached board is installed as the committed board.
	assert.NotNil(t, svc.Snapshot().TaskByID("t-proved"))
}

func TestLoadBoard_FetchFailureWithoutCacheFails(t *testing.T) {
	store := &fakeStore{fetchErr: errors.New("connection refused")}
	empty := board.New("b1", nil, nil, board.DefaultGroupNames())
	coord := mutate.NewCoordinator(empty, time.Second, nil)
	svc := NewService("b1", board.DefaultGroupNames(), coord, store, nil)

	_, _, err := svc.LoadBoard(context.Background())
	assert.Error(t, err)
}

func TestLoadBoard_SuccessRefreshesTheCache(t *testing.T) {
	snapshots := openTestCache(t)
	store := &fakeStore{payload: testPayload()}
	empty := board.New("b1", nil, nil, board.DefaultGroupNames())
	coord := mutate.NewCoordinator(empty, time.Second, nil)
	svc := NewService("b1", board.DefaultGroupNames(), coord, store, snapshots)

	_, fromCache, err := svc.LoadBoard(context.Background())
	assert.NoError(t, err)
	assert.False(t, fromCache)

	saved, err := snapshots.LoadSnapshot("b1")
	assert.NoError(t, err)
	assert.Len(t, saved.Tasks, 2)
}

func TestCachedBoard(t *testing.T) {
	t.Run("serves a renderable board without installing it", func(t *testing.T) {
		snapshots := openTestCache(t)
		assert.NoError(t, snapshots.SaveSnapshot("b1", testPayload()))

		store := &fakeStore{payload: testPayload()}
		empty := board.New("b1", nil, nil, board.DefaultGroupNames())
		coord := mutate.NewCoordinator(empty, time.Second, nil)
		svc := NewService("b1", board.DefaultGroupNames(), coord, store, snapshots)

		cached, ok := svc.CachedBoard()
		assert.True(t, ok)
		assert.NotNil(t, cached.TaskByID("t-bare"))

		// The committed board is still the empty pre-load board.
		assert.Nil(t, svc.Snapshot().TaskByID("t-bare"))
		assert.Empty(t, store.calls)
	})

	t.Run("no cache or no snapshot", func(t *testing.T) {
		store := &fakeStore{payload: testPayload()}
		withoutCache := newTestService(t, store)
		_, ok := withoutCache.CachedBoard()
		assert.False(t, ok)

		empty := board.New("b1", nil, nil, board.DefaultGroupNames())
		coord := mutate.NewCoordinator(empty, time.Second, nil)
		coldCache := NewService("b1", board.DefaultGroupNames(), coord, store, openTestCache(t))
		_, ok = coldCache.CachedBoard()
		assert.False(t, ok)
	})
}

func TestRelocateTask_GatedMoveParksInsteadOfCommitting(t *testing.T) {
	store := &fakeStore{payload: testPayload()}
	svc := newTestService(t, store)

	outcome, err := svc.RelocateTask(context.Background(), alice, "t-bare", "g-progress")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeEvidenceRequired, outcome)

	// The committed board is untouched until evidence arrives.
	assert.Equal(t, "g-todo", svc.Snapshot().TaskByID("t-bare").GroupID)
	assert.Empty(t, store.confirmCalls())

	mv, ok := svc.PendingMove("t-bare")
	assert.True(t, ok)
	assert.Equal(t, "g-todo", mv.OriginGroupID)
	assert.Equal(t, "g-progress", mv.DestinationGroupID)
	assert.Equal(t, pending.StateAwaitingEvidence, mv.State)
}

func TestRelocateTask_SecondGatedMoveRejected(t *testing.T) {
	store := &fakeStore{payload: testPayload()}
	svc := newTestService(t, store)

	_, err := svc.RelocateTask(context.Background(), alice, "t-bare", "g-progress")
	assert.NoError(t, err)

	_, err = svc.RelocateTask(context.Background(), alice, "t-bare", "g-done")
	assert.ErrorIs(t, err, pending.ErrMoveAlreadyPending)

	mv, _ := svc.PendingMove("t-bare")
	assert.Equal(t, "g-progress", mv.DestinationGroupID)
}

func TestRelocateTask_EvidenceSatisfiedCommitsImmediately(t *testing.T) {
	store := &fakeStore{payload: testPayload()}
	svc := newTestService(t, store)

	outcome, err := svc.RelocateTask(context.Background(), alice, "t-proved", "g-done")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeCommitted, outcome)

	task := svc.Snapshot().TaskByID("t-proved")
	assert.Equal(t, "g-done", task.GroupID)
	assert.True(t, task.Completed)
	assert.Equal(t, []string{"ConfirmTaskMutation t-proved"}, store.confirmCalls())

	_, ok := svc.PendingMove("t-proved")
	assert.False(t, ok)
}

func TestRelocateTask_UngatedMoveSkipsTheGate(t *testing.T) {
	store := &fakeStore{payload: testPayload()}
	svc := newTestService(t, store)

	// g-todo is not gated, so moving a bare task back needs no evidence.
	_, err := svc.RelocateTask(context.Background(), alice, "t-proved", "g-progress")
	assert.NoError(t, err)
	outcome, err := svc.RelocateTask(context.Background(), alice, "t-proved", "g-todo")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeCommitted, outcome)
	assert.False(t, svc.Snapshot().TaskByID("t-proved").Completed)
}

func TestRelocateTask_AuthorizationFailuresTouchNothing(t *testing.T) {
	store := &fakeStore{payload: testPayload()}
	svc := newTestService(t, store)
	fetchOnly := len(store.calls)

	t.Run("client is rejected", func(t *testing.T) {
		_, err := svc.RelocateTask(context.Background(), client, "t-bare", "g-progress")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("unrelated member is rejected on an assigned task", func(t *testing.T) {
		_, err := svc.RelocateTask(context.Background(), bob, "t-bare", "g-progress")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("admin passes the same check", func(t *testing.T) {
		outcome, err := svc.RelocateTask(context.Background(), admin, "t-bare", "g-progress")
		assert.NoError(t, err)
		assert.Equal(t, OutcomeEvidenceRequired, outcome)
	})

	t.Run("denied attempts made no store calls", func(t *testing.T) {
		assert.Len(t, store.calls[fetchOnly:], 0)
	})
}

func TestRelocateTask_TargetValidation(t *testing.T) {
	store := &fakeStore{payload: testPayload()}
	svc := newTestService(t, store)

	_, err := svc.RelocateTask(context.Background(), alice, "missing", "g-progress")
	assert.ErrorIs(t, err, models.ErrTaskNotFound)

	_, err = svc.RelocateTask(context.Background(), alice, "t-bare", "g-nope")
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = svc.RelocateTask(context.Background(), alice, "t-bare", "g-todo")
	assert.ErrorIs(t, err, ErrTaskAlreadyInGroup)
}

func TestRelocateTask_ConfirmFailureRollsBack(t *testing.T) {
	store := &fakeStore{payload: testPayload()}
	svc := newTestService(t, store)
	before := svc.Snapshot()

	store.confirmErr = errors.New("503 from upstream")
	_, err := svc.RelocateTask(context.Background(), alice, "t-proved", "g-done")
	assert.Error(t, err)
	assert.Equal(t, before, svc.Snapshot())
}

func TestRelocate_VanishedTaskSendsNoPatch(t *testing.T) {
	store := &fakeStore{payload: testPayload()}
	svc := newTestService(t, store).(*service)

	err := svc.relocate(context.Background(), "t-ghost", "g-done")
	assert.ErrorIs(t, err, models.ErrTaskNotFound)
	assert.Empty(t, store.confirmCalls())
}

func TestAddAttachment_CommitsDeferredMove(t *testing.T) {
	store := &fakeStore{payload: testPayload()}
	svc := newTestService(t, store)

	_, err := svc.RelocateTask(context.Background(), alice, "t-bare", "g-progress")
	assert.NoError(t, err)

	moved, err := svc.AddAttachment(context.Background(), "t-bare", remote.Upload{Name: "proof.png", Reader: strings.NewReader("png")})
	assert.NoError(t, err)
	assert.True(t, moved)

	task := svc.Snapshot().TaskByID("t-bare")
	assert.Equal(t, "g-progress", task.GroupID)
	assert.False(t, task.Completed)
	assert.True(t, task.HasEvidence())

	_, ok := svc.PendingMove("t-bare")
	assert.False(t, ok)
}

func TestAddAttachment_WithoutPendingMoveJustRecords(t *testing.T) {
	store := &fakeStore{payload: testPayload()}
	svc := newTestService(t, store)

	moved, err := svc.AddAttachment(context.Background(), "t-bare", remote.Upload{Name: "notes.txt", Reader: strings.NewReader("x")})
	assert.NoError(t, err)
	assert.False(t, moved)

	task := svc.Snapshot().TaskByID("t-bare")
	assert.Equal(t, "g-todo", task.GroupID)
	assert.True(t, task.HasEvidence())
}

func TestAddAttachment_UploadFailureLeavesMovePending(t *testing.T) {
	store := &fakeStore{payload: testPayload()}
	svc := newTestService(t, store)

	_, err := svc.RelocateTask(context.Background(), alice, "t-bare", "g-done")
	assert.NoError(t, err)

	store.attachErr = errors.New("upload refused")
	moved, err := svc.AddAttachment(context.Background(), "t-bare", remote.Upload{Name: "proof.png", Reader: strings.NewReader("png")})
	assert.Error(t, err)
	assert.False(t, moved)

	mv, ok := svc.PendingMove("t-bare")
	assert.True(t, ok)
	assert.Equal(t, "g-done", mv.DestinationGroupID)
}

func TestDismissEvidence(t *testing.T) {
	store := &fakeStore{payload: testPayload()}
	svc := newTestService(t, store)

	t.Run("abandons the pending move and reverts", func(t *testing.T) {
		_, err := svc.RelocateTask(context.Background(), alice, "t-bare", "g-progress")
		assert.NoError(t, err)

		abandoned, err := svc.DismissEvidence(context.Background(), "t-bare")
		assert.NoError(t, err)
		assert.True(t, abandoned)

		task := svc.Snapshot().TaskByID("t-bare")
		assert.Equal(t, "g-todo", task.GroupID)
		assert.False(t, task.Completed)

		_, ok := svc.PendingMove("t-bare")
		assert.False(t, ok)
	})

	t.Run("no pending move is a no-op", func(t *testing.T) {
		abandoned, err := svc.DismissEvidence(context.Background(), "t-bare")
		assert.NoError(t, err)
		assert.False(t, abandoned)
	})

	t.Run("the task can be moved again afterwards", func(t *testing.T) {
		outcome, err := svc.RelocateTask(context.Background(), alice, "t-bare", "g-progress")
		assert.NoError(t, err)
		assert.Equal(t, OutcomeEvidenceRequired, outcome)
	})
}

func TestToggleComplete(t *testing.T) {
	store := &fakeStore{payload: testPayload()}
	svc := newTestService(t, store)

	t.Run("forward toggle is gated like any move", func(t *testing.T) {
		outcome, err := svc.ToggleComplete(context.Background(), alice, "t-bare")
		assert.NoError(t, err)
		assert.Equal(t, OutcomeEvidenceRequired, outcome)
		mv, _ := svc.PendingMove("t-bare")
		assert.Equal(t, "g-done", mv.DestinationGroupID)
	})

	t.Run("task with evidence completes immediately", func(t *testing.T) {
		outcome, err := svc.ToggleComplete(context.Background(), alice, "t-proved")
		assert.NoError(t, err)
		assert.Equal(t, OutcomeCommitted, outcome)
		assert.True(t, svc.Snapshot().TaskByID("t-proved").Completed)
	})

	t.Run("toggling back returns to the default group", func(t *testing.T) {
		outcome, err := svc.ToggleComplete(context.Background(), alice, "t-proved")
		assert.NoError(t, err)
		assert.Equal(t, OutcomeCommitted, outcome)
		task := svc.Snapshot().TaskByID("t-proved")
		assert.Equal(t, "g-todo", task.GroupID)
		assert.False(t, task.Completed)
	})
}

func TestCreateTask(t *testing.T) {
	t.Run("placeholder is replaced by the server entity", func(t *testing.T) {
		store := &fakeStore{payload: testPayload()}
		svc := newTestService(t, store)

		task, err := svc.CreateTask(context.Background(), alice, CreateTaskRequest{Name: "write docs"})
		assert.NoError(t, err)
		assert.Equal(t, "t-server", task.ID)
		assert.Equal(t, "g-todo", task.GroupID)
		assert.Equal(t, models.PriorityNormal, task.Priority)

		b := svc.Snapshot()
		assert.NotNil(t, b.TaskByID("t-server"))
		for _, got := range b.Tasks() {
			assert.False(t, strings.HasPrefix(got.ID, "tmp-"))
		}
	})

	t.Run("creation failure removes the placeholder", func(t *testing.T) {
		store := &fakeStore{payload: testPayload(), createErr: errors.New("quota exceeded")}
		svc := newTestService(t, store)
		before := svc.Snapshot()

		_, err := svc.CreateTask(context.Background(), alice, CreateTaskRequest{Name: "doomed"})
		assert.Error(t, err)
		assert.Equal(t, before, svc.Snapshot())
	})

	t.Run("validation", func(t *testing.T) {
		store := &fakeStore{payload: testPayload()}
		svc := newTestService(t, store)

		_, err := svc.CreateTask(context.Background(), client, CreateTaskRequest{Name: "nope"})
		assert.ErrorIs(t, err, ErrPermissionDenied)

		_, err = svc.CreateTask(context.Background(), alice, CreateTaskRequest{})
		assert.ErrorIs(t, err, ErrEmptyName)

		_, err = svc.CreateTask(context.Background(), alice, CreateTaskRequest{Name: strings.Repeat("x", 256)})
		assert.ErrorIs(t, err, ErrNameTooLong)

		_, err = svc.CreateTask(context.Background(), alice, CreateTaskRequest{Name: "ok", Priority: "blocker"})
		assert.ErrorIs(t, err, ErrInvalidPriority)

		_, err = svc.CreateTask(context.Background(), alice, CreateTaskRequest{Name: "ok", GroupID: "g-nope"})
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})
}

func TestDeleteTask(t *testing.T) {
	store := &fakeStore{payload: testPayload()}
	svc := newTestService(t, store)

	assert.ErrorIs(t, svc.DeleteTask(context.Background(), bob, "t-bare"), ErrPermissionDenied)

	assert.NoError(t, svc.DeleteTask(context.Background(), alice, "t-bare"))
	assert.Nil(t, svc.Snapshot().TaskByID("t-bare"))
	assert.Contains(t, store.calls, "DeleteTask t-bare")
}

func TestFieldEdits(t *testing.T) {
	store := &fakeStore{payload: testPayload()}
	svc := newTestService(t, store)
	ctx := context.Background()

	assert.NoError(t, svc.SetAssignee(ctx, alice, "t-bare", "bob"))
	assert.Equal(t, "bob", svc.Snapshot().TaskByID("t-bare").AssignedActorID)

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, svc.SetDueDate(ctx, admin, "t-bare", &due))
	assert.Equal(t, due, *svc.Snapshot().TaskByID("t-bare").DueOn)

	assert.NoError(t, svc.SetPriority(ctx, admin, "t-bare", models.PriorityHigh))
	assert.Equal(t, models.PriorityHigh, svc.Snapshot().TaskByID("t-bare").Priority)

	assert.ErrorIs(t, svc.SetPriority(ctx, admin, "t-bare", "blocker"), ErrInvalidPriority)
	assert.ErrorIs(t, svc.SetPriority(ctx, client, "t-bare", models.PriorityLow), ErrPermissionDenied)
}

func TestGroupManagement(t *testing.T) {
	store := &fakeStore{payload: testPayload()}
	svc := newTestService(t, store)
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		assert.NoError(t, svc.CreateGroup(ctx, "Review"))
		assert.NotNil(t, svc.Snapshot().GroupByID("g-server"))
	})

	t.Run("rename", func(t *testing.T) {
		assert.NoError(t, svc.RenameGroup(ctx, "g-server", "Code Review"))
		assert.Equal(t, "Code Review", svc.Snapshot().GroupByID("g-server").Name)
		assert.ErrorIs(t, svc.RenameGroup(ctx, "g-nope", "x"), models.ErrGroupNotFound)
	})

	t.Run("reorder adopts the canonical server ordering", func(t *testing.T) {
		assert.NoError(t, svc.ReorderGroups(ctx, []string{"g-server", "g-todo", "g-progress", "g-done"}))
		ordered := svc.Snapshot().GroupsOrdered()
		assert.Equal(t, "g-server", ordered[0].ID)
	})

	t.Run("default group cannot be deleted", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteGroup(ctx, "g-todo"), ErrCannotDeleteDefaultGroup)
	})
}

func TestDeleteGroup_MigratesTasksToDefault(t *testing.T) {
	payload := testPayload()
	payload.Tasks = append(payload.Tasks,
		&models.Task{ID: "t-wip", Name: "in flight", GroupID: "g-progress", OrderIndex: 0})
	store := &fakeStore{payload: payload}
	svc := newTestService(t, store)

	assert.NoError(t, svc.DeleteGroup(context.Background(), "g-progress"))

	b := svc.Snapshot()
	assert.Nil(t, b.GroupByID("g-progress"))
	migrated := b.TaskByID("t-wip")
	assert.Equal(t, "g-todo", migrated.GroupID)
	assert.False(t, migrated.Completed)
	assert.Contains(t, store.calls, "ConfirmTaskMutation t-wip")
	assert.Contains(t, store.calls, "DeleteGroup g-progress")
}

func TestCompletedTracksCompleteGroupMembership(t *testing.T) {
	store := &fakeStore{payload: testPayload()}
	svc := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.RelocateTask(ctx, alice, "t-proved", "g-done")
	assert.NoError(t, err)
	_, err = svc.RelocateTask(ctx, alice, "t-proved", "g-progress")
	assert.NoError(t, err)

	for _, task := range svc.Snapshot().Tasks() {
		assert.Equal(t, task.GroupID == svc.Snapshot().CompleteGroupID, task.Completed,
			"task %s completed flag out of sync", task.ID)
	}
}
