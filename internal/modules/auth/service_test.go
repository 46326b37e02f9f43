package auth

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/envoyhq/envoy-backend/internal/apperr"
	"github.com/envoyhq/envoy-backend/internal/modules/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}
func (f *fakeUserRepo) ListUsers(ctx context.Context) ([]*user.User, error)  { return nil, nil }
func (f *fakeUserRepo) UpdateUser(ctx context.Context, u *user.User) error   { return nil }
func (f *fakeUserRepo) DeleteUser(ctx context.Context, id int64) error       { return nil }

func newTestRepo(t *testing.T, password string) *fakeUserRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &fakeUserRepo{byEmail: map[string]*user.User{
		"jane@example.com": {
			ID:           7,
			Email:        "jane@example.com",
			PasswordHash: string(hash),
			RoleID:       user.RoleManager,
		},
	}}
}

func TestLoginAndVerifyRoundTrip(t *testing.T) {
	svc := NewService(newTestRepo(t, "s3cret"), "test-secret", time.Hour)

	token, u, err := svc.Login(context.Background(), "jane@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, int64(7), u.ID)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, user.RoleManager, claims.RoleID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewService(newTestRepo(t, "s3cret"), "test-secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "jane@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
	assert.Equal(t, "invalid email or password", apperr.Message(err))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewService(newTestRepo(t, "s3cret"), "test-secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "s3cret")
	require.Error(t, err)
	// Unknown email and wrong password must be indistinguishable.
	assert.Equal(t, "invalid email or password", apperr.Message(err))
}

func TestVerifyExpiredToken(t *testing.T) {
	repo := newTestRepo(t, "s3cret")
	svc := NewService(repo, "test-secret", -time.Minute)

	token, _, err := svc.Login(context.Background(), "jane@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestVerifyWrongSecret(t *testing.T) {
	signer := NewService(newTestRepo(t, "s3cret"), "secret-a", time.Hour)
	verifier := NewService(newTestRepo(t, "s3cret"), "secret-b", time.Hour)

	token, _, err := signer.Login(context.Background(), "jane@example.com", "s3cret")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestVerifyGarbageToken(t *testing.T) {
	svc := NewService(newTestRepo(t, "s3cret"), "test-secret", time.Hour)

	_, err := svc.Verify("not-a-token")
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}
