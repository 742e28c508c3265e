package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/institute-admin/internal/middleware"
	"github.com/stemsi/institute-admin/internal/model"
	"github.com/stemsi/institute-admin/internal/response"
	"github.com/stemsi/institute-admin/internal/validator"
)

// Authenticator is the part of the auth service the handler drives.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (model.LoginResponse, bool, error)
	Logout(ctx context.Context, userID int64) error
}

// UserReader loads the profile of the logged-in user.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (model.User, bool, error)
}

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	auth  Authenticator
	users UserReader
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth Authenticator, users UserReader) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

// Login godoc
// POST /api/v1/auth/login
// Validates username + password and returns a JWT. A new login ends any
// earlier session of the same user.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	resp, ok, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Logout godoc
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.auth.Logout(c.Request.Context(), claims.UserID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the profile of the currently authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	u, found, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	if !found {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": u})
}
