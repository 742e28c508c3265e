package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/stemsi/institute-admin/internal/logger"
	"github.com/stemsi/institute-admin/internal/model"
)

// UserStore is the user repository as seen by the user service.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (model.User, bool, error)
	Update(ctx context.Context, u *model.User) (bool, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) (bool, error)
}

// UserService manages login accounts. Passwords are hashed here so plaintext
// never reaches the repository.
type UserService struct {
	users UserStore
	auth  *AuthService
	log   zerolog.Logger
}

func NewUserService(users UserStore, auth *AuthService, log zerolog.Logger) *UserService {
	return &UserService{users: users, auth: auth, log: logger.Component(log, "user_service")}
}

// Create hashes the password and inserts the account.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return model.User{}, err
	}

	u := model.User{
		Username:     req.Username,
		PasswordHash: hash,
		Email:        req.Email,
		RoleID:       req.RoleID,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return model.User{}, err
	}

	s.log.Info().Int64("user_id", u.ID).Str("username", u.Username).Msg("user created")
	return u, nil
}

// Update replaces the profile of user id. The stored hash is kept unless a
// new password is given. found is false when the user does not exist.
func (s *UserService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (model.User, bool, error) {
	u, found, err := s.users.GetByID(ctx, id)
	if err != nil || !found {
		return model.User{}, found, err
	}

	u.Username = req.Username
	u.Email = req.Email
	u.RoleID = req.RoleID
	if req.Password != "" {
		hash, err := s.auth.HashPassword(req.Password)
		if err != nil {
			return model.User{}, true, err
		}
		u.PasswordHash = hash
	}

	ok, err := s.users.Update(ctx, &u)
	if err != nil {
		return model.User{}, true, err
	}
	return u, ok, nil
}

// ChangePassword replaces the password of user id.
func (s *UserService) ChangePassword(ctx context.Context, id int64, password string) (bool, error) {
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return false, err
	}
	return s.users.UpdatePassword(ctx, id, hash)
}
