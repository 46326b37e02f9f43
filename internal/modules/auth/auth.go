package auth

import (
	"context"

	"github.com/dgrijalva/jwt-go"
	"github.com/envoyhq/envoy-backend/internal/modules/user"
)

// Claims is the decoded identity carried by every bearer token.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	RoleID int    `json:"role_id"`
	jwt.StandardClaims
}

// Actor converts the claims into the shape the user policy gate expects.
func (c *Claims) Actor() user.Actor {
	return user.Actor{UserID: c.UserID, RoleID: c.RoleID}
}

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Login checks the credentials and returns a signed token plus the user.
	Login(ctx context.Context, email, password string) (string, *user.User, error)
	// Verify decodes and validates a bearer token string.
	Verify(token string) (*Claims, error)
}
