package model

import "time"

// Role IDs seeded by the initial migration.
const (
	RoleAdmin      = 1
	RoleTeacher    = 2
	RoleAccountant = 3
)

// RoleName returns the seeded name of a role ID.
func RoleName(roleID int) string {
	switch roleID {
	case RoleAdmin:
		return "admin"
	case RoleTeacher:
		return "teacher"
	case RoleAccountant:
		return "accountant"
	default:
		return "unknown"
	}
}

// User is a login account. PasswordHash holds a bcrypt hash, never the
// password itself, and is not serialized.
type User struct {
	ID           int64     `json:"user_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        *string   `json:"email"`
	RoleID       int       `json:"role_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginRequest is the payload for user authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required,notblank,max=50"`
	Password string `json:"password" binding:"required,bcryptmax"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateUserRequest is the payload for creating a user account.
type CreateUserRequest struct {
	Username string  `json:"username" binding:"required,notblank,min=3,max=50"`
	Password string  `json:"password" binding:"required,min=8,bcryptmax"`
	Email    *string `json:"email" binding:"omitempty,email,max=100"`
	RoleID   int     `json:"role_id" binding:"required,oneof=1 2 3"`
}

// UpdateUserRequest replaces a user's profile. An empty password keeps the
// current hash.
type UpdateUserRequest struct {
	Username string  `json:"username" binding:"required,notblank,min=3,max=50"`
	Password string  `json:"password" binding:"omitempty,min=8,bcryptmax"`
	Email    *string `json:"email" binding:"omitempty,email,max=100"`
	RoleID   int     `json:"role_id" binding:"required,oneof=1 2 3"`
}
