package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/institute-admin/internal/config"
	"github.com/stemsi/institute-admin/internal/logger"
	"github.com/stemsi/institute-admin/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrSessionInvalidated = errors.New("session invalidated")
	ErrNoActiveSession    = errors.New("no active session")
)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	RoleID   int    `json:"role_id"`
}

// UserLookup is the read side of the user repository used for login.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (model.User, bool, error)
}

// AuthService verifies credentials, issues JWTs and tracks the active
// session of each user.
type AuthService struct {
	cfg      *config.Config
	users    UserLookup
	sessions SessionStore
	log      zerolog.Logger

	// dummyHash is compared against when the username is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, users UserLookup, sessions SessionStore, log zerolog.Logger) (*AuthService, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &AuthService{
		cfg:       cfg,
		users:     users,
		sessions:  sessions,
		log:       logger.Component(log, "auth_service"),
		dummyHash: dummy,
	}, nil
}

// HashPassword hashes a password with the configured bcrypt cost. The result
// embeds its own salt and is what the users table stores.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// Authenticate returns the user whose username and password match. A wrong
// password and an unknown username both report ok == false with a nil error.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (user model.User, ok bool, err error) {
	u, found, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return model.User{}, false, err
	}

	if !found {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		s.log.Info().Str("username", username).Msg("login rejected: unknown user")
		return model.User{}, false, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.log.Info().Str("username", username).Msg("login rejected: wrong password")
		return model.User{}, false, nil
	}
	return u, true, nil
}

// Login authenticates and, on success, issues a token that replaces any
// earlier session of the same user.
func (s *AuthService) Login(ctx context.Context, username, password string) (model.LoginResponse, bool, error) {
	u, ok, err := s.Authenticate(ctx, username, password)
	if err != nil || !ok {
		return model.LoginResponse{}, false, err
	}

	token, err := s.IssueToken(ctx, u)
	if err != nil {
		return model.LoginResponse{}, false, err
	}

	s.log.Info().Int64("user_id", u.ID).Int("role_id", u.RoleID).Msg("user logged in")
	return model.LoginResponse{Token: token, User: u}, true, nil
}

// IssueToken signs a JWT for u and registers its ID as the active session.
func (s *AuthService) IssueToken(ctx context.Context, u model.User) (string, error) {
	jti := uuid.New().String()
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		UserID:   u.ID,
		Username: u.Username,
		RoleID:   u.RoleID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	if err := s.sessions.Save(ctx, u.ID, jti, s.cfg.JWTExpiry); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ValidateSession checks that the token's ID is still the user's active session.
func (s *AuthService) ValidateSession(ctx context.Context, claims *Claims) error {
	active, err := s.sessions.Active(ctx, claims.UserID)
	if err != nil {
		return err
	}
	if active != claims.ID {
		return ErrSessionInvalidated
	}
	return nil
}

// Logout ends the user's active session.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.sessions.Revoke(ctx, userID)
}
