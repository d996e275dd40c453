// Package authz decides whether an actor may relocate a task. The predicate
// is the single source of truth for move permission: it gates drags, toggle
// complete, and every field-edit affordance, and callers must re-check it at
// the moment of the action because role and assignment can change between
// renders.
package authz

import "github.com/thenoetrevino/tavla/internal/models"

// CanMoveTask reports whether the actor may relocate the task right now,
// independent of source and destination.
//
// Rules:
//   - clients are observers of task state and can never move anything
//   - admins can always move
//   - members can move unassigned tasks (triage), and assigned tasks only
//     when they are the assignee or the original creator
func CanMoveTask(actor models.Actor, task *models.Task) bool {
	switch actor.Role {
	case models.RoleClient:
		return false
	case models.RoleAdmin:
		return true
	case models.RoleMember:
		if !task.Assigned() {
			return true
		}
		return actor.ID == task.AssignedActorID || actor.ID == task.CreatedByActorID
	}
	return false
}
