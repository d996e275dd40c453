package remote

import (
	"context"
	"io"
	"time"

	"github.com/thenoetrevino/tavla/internal/models"
)

// BoardPayload is the initial/resync load for one board.
type BoardPayload struct {
	Groups []*models.Group `json:"groups"`
	Tasks  []*models.Task  `json:"tasks"`
}

// TaskPatch is a field-level change to one task. Nil fields are left
// untouched by the server. Confirming the same patch twice is idempotent;
// the client stamps each patch with a request ID so the server can
// deduplicate retries.
type TaskPatch struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	GroupID         *string          `json:"group_id,omitempty"`
	OrderIndex      *int             `json:"order_index,omitempty"`
	AssignedActorID *string          `json:"assigned_actor_id,omitempty"`
	DueOn           *time.Time       `json:"due_on,omitempty"`
	Priority        *models.Priority `json:"priority,omitempty"`
	Completed       *bool            `json:"completed,omitempty"`
}

// NewTask carries the fields for task creation.
type NewTask struct {
	BoardID          string          `json:"board_id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	GroupID          string          `json:"group_id"`
	OrderIndex       int             `json:"order_index"`
	Priority         models.Priority `json:"priority"`
	CreatedByActorID string          `json:"created_by_actor_id"`
}

// Upload is a file handed to the attachment store.
type Upload struct {
	Name   string
	Reader io.Reader
}

// Store is the authoritative board store. All confirmation requests the
// coordinator issues go through this interface; tests substitute a fake.
type Store interface {
	FetchBoard(ctx context.Context, boardID string) (*BoardPayload, error)
	ConfirmTaskMutation(ctx context.Context, taskID string, patch TaskPatch) (*models.Task, error)
	CreateTask(ctx context.Context, fields NewTask) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
	CreateGroup(ctx context.Context, boardID, name string) (*models.Group, error)
	RenameGroup(ctx context.Context, groupID, name string) (*models.Group, error)
	DeleteGroup(ctx context.Context, groupID string) error
	ReorderGroups(ctx context.Context, boardID string, orderedGroupIDs []string) ([]*models.Group, error)
	AddAttachment(ctx context.Context, taskID string, file Upload) (*models.Task, error)
	CurrentActor(ctx context.Context) (*models.Actor, error)
}
