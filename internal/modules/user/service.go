package user

import "context"

// Service defines the interface for user-related business logic.
type Service interface {
	ListUsers(ctx context.Context) ([]*User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	CreateUser(ctx context.Context, actor Actor, req CreateUserRequest) (*User, error)
	UpdateUser(ctx context.Context, actor Actor, id int64, req UpdateUserRequest) (*User, error)
	DeleteUser(ctx context.Context, actor Actor, id int64) error

	// UploadAvatar stores a new profile image under a fresh key, points the
	// user at it, and best-effort deletes the previous blob.
	UploadAvatar(ctx context.Context, actor Actor, id int64, data []byte) (*User, error)
	RemoveAvatar(ctx context.Context, actor Actor, id int64) (*User, error)
}

// CreateUserRequest holds data for inviting a user. plainPassword keeps the
// original wire name the dashboard sends.
type CreateUserRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Designation   string `json:"designation"`
	PlainPassword string `json:"plainPassword"`
	RoleID        int    `json:"role_id"`
}

// UpdateUserRequest is a partial patch; nil fields are left untouched.
type UpdateUserRequest struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Email         *string `json:"email"`
	Designation   *string `json:"designation"`
	PlainPassword *string `json:"plainPassword"`
	RoleID        *int    `json:"role_id"`
}

func (r UpdateUserRequest) empty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Email == nil &&
		r.Designation == nil && r.PlainPassword == nil && r.RoleID == nil
}
