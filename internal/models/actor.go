package models

// Role is an actor's role within the current board's membership.
// Roles are board-scoped, not global.
type Role string

// Actor roles
const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleClient Role = "client"
)

// Valid reports whether the role is one of the known board roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleClient:
		return true
	}
	return false
}

// Actor is a board member identity. Every authorization and mutation call
// takes the acting Actor explicitly; nothing reads it from ambient state.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}
