package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"
	"github.com/stemsi/institute-admin/internal/apperror"
	"github.com/stemsi/institute-admin/internal/model"
)

var userMapping = Mapping[model.User]{
	Table:     "users",
	IDColumn:  "user_id",
	Columns:   []string{"username", "password_hash", "email", "role_id"},
	Generated: []string{"user_id", "created_at"},
	OrderBy:   []string{"username"},
	Values: func(u *model.User) []any {
		return []any{u.Username, u.PasswordHash, u.Email, u.RoleID}
	},
	Fields: func(u *model.User) []any {
		return []any{&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.RoleID, &u.CreatedAt}
	},
	GeneratedTargets: func(u *model.User) []any { return []any{&u.ID, &u.CreatedAt} },
	ID:               func(u *model.User) int64 { return u.ID },
}

// UserRepository handles login account data access.
type UserRepository struct {
	*Repository[model.User]
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db DBTX, log zerolog.Logger) *UserRepository {
	return &UserRepository{Repository: New(db, userMapping, log)}
}

// GetByUsername retrieves a user by their unique username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, bool, error) {
	return r.getOne(ctx, "users.GetByUsername", squirrel.Eq{"username": username})
}

// UpdatePassword replaces a user's password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) (bool, error) {
	const op = "users.UpdatePassword"

	sql, args, err := r.sb.Update("users").
		Set("password_hash", passwordHash).
		Where(squirrel.Eq{"user_id": id}).
		ToSql()
	if err != nil {
		return false, apperror.Persistence(op, fmt.Errorf("build update: %w", err))
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, r.fail(op, err)
	}
	return tag.RowsAffected() == 1, nil
}
