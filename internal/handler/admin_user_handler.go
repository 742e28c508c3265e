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

// UserManager creates and edits accounts, hashing passwords on the way.
type UserManager interface {
	Create(ctx context.Context, req model.CreateUserRequest) (model.User, error)
	Update(ctx context.Context, id int64, req model.UpdateUserRequest) (model.User, bool, error)
	ChangePassword(ctx context.Context, id int64, password string) (bool, error)
}

// ChangePasswordRequest is the payload of PUT /users/:id/password.
type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=8,bcryptmax"`
}

// AdminUserHandler manages login accounts. Reads and deletes go straight to
// the store; writes go through the manager.
type AdminUserHandler struct {
	store   Store[model.User]
	manager UserManager
}

func NewAdminUserHandler(store Store[model.User], manager UserManager) *AdminUserHandler {
	return &AdminUserHandler{store: store, manager: manager}
}

// Register mounts the handler's routes on rg.
func (h *AdminUserHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.ListUsers)
	rg.GET("/:id", h.GetUser)
	rg.POST("", h.CreateUser)
	rg.PUT("/:id", h.UpdateUser)
	rg.PUT("/:id/password", h.ChangePassword)
	rg.DELETE("/:id", h.DeleteUser)
}

func (h *AdminUserHandler) ListUsers(c *gin.Context) {
	users, err := h.store.GetAll(c.Request.Context())
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

func (h *AdminUserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	u, found, err := h.store.GetByID(c.Request.Context(), id)
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

func (h *AdminUserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	u, err := h.manager.Create(c.Request.Context(), req)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": u})
}

// UpdateUser replaces username, email and role. An empty password keeps
// the current one.
func (h *AdminUserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	u, found, err := h.manager.Update(c.Request.Context(), id, req)
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

func (h *AdminUserHandler) ChangePassword(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	changed, err := h.manager.ChangePassword(c.Request.Context(), id, req.Password)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	if !changed {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "password updated successfully"})
}

// DeleteUser removes an account. Administrators cannot delete themselves.
func (h *AdminUserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if claims := middleware.GetClaims(c); claims != nil && claims.UserID == id {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	deleted, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	if !deleted {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "user deleted successfully"})
}
