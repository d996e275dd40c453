package models

import "time"

// Task represents a single work item on the board.
//
// GroupID is the committed owning group. It is empty only transiently while a
// freshly created task waits for server confirmation; the board projects such
// tasks into the default group so they are always visible somewhere.
type Task struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	GroupID          string       `json:"group_id"`
	OrderIndex       int          `json:"order_index"`
	AssignedActorID  string       `json:"assigned_actor_id,omitempty"`
	CreatedByActorID string       `json:"created_by_actor_id"`
	DueOn            *time.Time   `json:"due_on,omitempty"`
	Priority         Priority     `json:"priority"`
	Labels           []string     `json:"labels,omitempty"`
	Attachments      []Attachment `json:"attachments,omitempty"`
	Completed        bool         `json:"completed"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// Assigned reports whether the task has an assignee.
func (t *Task) Assigned() bool {
	return t.AssignedActorID != ""
}

// HasEvidence reports whether at least one attachment is present.
// Attachments are never re-validated once present; a single one permanently
// satisfies the transition gate for this task.
func (t *Task) HasEvidence() bool {
	return len(t.Attachments) > 0
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	if t.DueOn != nil {
		due := *t.DueOn
		c.DueOn = &due
	}
	if t.Labels != nil {
		c.Labels = append([]string(nil), t.Labels...)
	}
	if t.Attachments != nil {
		c.Attachments = append([]Attachment(nil), t.Attachments...)
	}
	return &c
}
