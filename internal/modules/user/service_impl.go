package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/envoyhq/envoy-backend/internal/apperr"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	repo   Repository
	blobs  BlobStore
	logger *zap.Logger
}

// NewService creates a new user service. The blob store backs avatar uploads.
func NewService(repo Repository, blobs BlobStore, logger *zap.Logger) Service {
	return &service{repo: repo, blobs: blobs, logger: logger}
}

func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *service) GetUser(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	return u, err
}

func (s *service) CreateUser(ctx context.Context, actor Actor, req CreateUserRequest) (*User, error) {
	if req.FirstName == "" || req.Email == "" || req.PlainPassword == "" {
		return nil, apperr.New(apperr.Invalid, "first_name, email and plainPassword are required")
	}
	roleID := req.RoleID
	if roleID == 0 {
		roleID = RoleStaff
	}
	if roleID < RoleStaff || roleID > RoleAdmin {
		return nil, apperr.Newf(apperr.Invalid, "unknown role_id %d", roleID)
	}
	if !CanAssignRole(actor.RoleID, roleID) {
		return nil, apperr.New(apperr.Forbidden, "Forbidden")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.PlainPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashed),
		Designation:  req.Designation,
		RoleID:       roleID,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.New(apperr.Conflict, "a user with this email already exists")
		}
		return nil, apperr.Wrap(apperr.Store, "failed to create user", err)
	}
	return u, nil
}

func (s *service) UpdateUser(ctx context.Context, actor Actor, id int64, req UpdateUserRequest) (*User, error) {
	if req.empty() {
		return nil, apperr.New(apperr.Invalid, "no fields to update")
	}

	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeMutation(actor, u); err != nil {
		return nil, err
	}
	if req.RoleID != nil {
		if *req.RoleID < RoleStaff || *req.RoleID > RoleAdmin {
			return nil, apperr.Newf(apperr.Invalid, "unknown role_id %d", *req.RoleID)
		}
		if !CanAssignRole(actor.RoleID, *req.RoleID) {
			return nil, apperr.New(apperr.Forbidden, "Forbidden")
		}
		u.RoleID = *req.RoleID
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Designation != nil {
		u.Designation = *req.Designation
	}
	if req.PlainPassword != nil && *req.PlainPassword != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.PlainPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hashed)
	}

	if err := s.repo.UpdateUser(ctx, u); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.New(apperr.Conflict, "a user with this email already exists")
		}
		return nil, apperr.Wrap(apperr.Store, "failed to update user", err)
	}
	return u, nil
}

func (s *service) DeleteUser(ctx context.Context, actor Actor, id int64) error {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeMutation(actor, u); err != nil {
		return err
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.NotFound, "user not found")
		}
		return apperr.Wrap(apperr.Store, "failed to delete user", err)
	}
	return nil
}

func (s *service) UploadAvatar(ctx context.Context, actor Actor, id int64, data []byte) (*User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeMutation(actor, u); err != nil {
		return nil, err
	}

	processed, ext, err := processAvatar(data)
	if err != nil {
		return nil, err
	}

	// A fresh key per upload; the old blob is only removed after the new
	// reference has taken effect.
	key := uuid.New().String() + ext
	url, err := s.blobs.Save(ctx, key, processed)
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to store avatar", err)
	}

	previous := u.AvatarURL
	u.AvatarURL = &url
	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to update avatar reference", err)
	}

	s.deleteBlobQuietly(ctx, previous)
	return u, nil
}

func (s *service) RemoveAvatar(ctx context.Context, actor Actor, id int64) (*User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeMutation(actor, u); err != nil {
		return nil, err
	}

	previous := u.AvatarURL
	u.AvatarURL = nil
	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to clear avatar reference", err)
	}

	s.deleteBlobQuietly(ctx, previous)
	return u, nil
}

// authorizeMutation applies the target-dependent policy: self-service is
// always fine, otherwise the actor needs Manager or above and may not reach
// into an Administrator account unless an Administrator themselves.
func (s *service) authorizeMutation(actor Actor, target *User) error {
	if actor.UserID == target.ID {
		return nil
	}
	if !CanManageUser(actor.RoleID, target.RoleID) {
		return apperr.New(apperr.Forbidden, "Forbidden")
	}
	return nil
}

// deleteBlobQuietly removes an old avatar blob. The new reference is already
// stored, so a failed delete is logged rather than surfaced.
func (s *service) deleteBlobQuietly(ctx context.Context, url *string) {
	if url == nil {
		return
	}
	key := keyFromURL(*url)
	if key == "" {
		return
	}
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete previous avatar blob",
			zap.String("key", key), zap.Error(err))
	}
}

func isDuplicateKey(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key"))
}
