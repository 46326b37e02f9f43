package user

import (
	"context"
	"time"
)

// Role ordinals as stored in users.role_id.
const (
	RoleStaff   = 1
	RoleManager = 2
	RoleAdmin   = 3
)

// Actor identifies the authenticated caller of a user mutation.
type Actor struct {
	UserID int64
	RoleID int
}

// ── Role policy gate ─────────────────────────────────────────────────────────
// Target-dependent rules. Both need the target's stored role, fetched before
// any mutation, since the decision hangs on the target, not only the actor.

// CanManageUser reports whether an actor may mutate a user whose stored role
// is targetRole. A Manager may never touch an Administrator account.
func CanManageUser(actorRole, targetRole int) bool {
	if actorRole >= RoleAdmin {
		return true
	}
	return actorRole == RoleManager && targetRole < RoleAdmin
}

// CanAssignRole reports whether an actor may assign newRole to any user.
// A Manager may never hand out the Administrator role.
func CanAssignRole(actorRole, newRole int) bool {
	if actorRole >= RoleAdmin {
		return true
	}
	return actorRole == RoleManager && newRole < RoleAdmin
}

// User represents a dashboard account. The password hash is never serialized.
type User struct {
	ID           int64     `json:"user_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Designation  string    `json:"designation"`
	RoleID       int       `json:"role_id"`
	AvatarURL    *string   `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Repository defines the interface for user data storage.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUser(ctx context.Context, u *User) error
	DeleteUser(ctx context.Context, id int64) error
}
