package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/institute-admin/internal/logger"
	"github.com/stemsi/institute-admin/internal/response"
	"github.com/stemsi/institute-admin/internal/validator"
)

// Store is the repository contract a RecordHandler serves.
type Store[E any] interface {
	Create(ctx context.Context, e *E) error
	GetByID(ctx context.Context, id int64) (E, bool, error)
	GetAll(ctx context.Context) ([]E, error)
	Update(ctx context.Context, e *E) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// FieldErrors reports request fields that passed binding but failed a
// semantic check while being converted into a record.
type FieldErrors map[string]string

func (f FieldErrors) Error() string { return "invalid fields" }

// RecordHandler exposes CRUD endpoints for one entity. R is the request
// payload, converted into an E by decode.
type RecordHandler[E any, R any] struct {
	single string
	plural string
	store  Store[E]
	decode func(R) (E, error)
	setID  func(*E, int64)
	log    zerolog.Logger
}

// NewRecordHandler creates a RecordHandler whose responses wrap one record
// under single and lists under plural.
func NewRecordHandler[E any, R any](
	single, plural string,
	store Store[E],
	decode func(R) (E, error),
	setID func(*E, int64),
	log zerolog.Logger,
) *RecordHandler[E, R] {
	return &RecordHandler[E, R]{
		single: single,
		plural: plural,
		store:  store,
		decode: decode,
		setID:  setID,
		log:    logger.Component(log, plural+"_handler"),
	}
}

// Register mounts the handler's routes on rg.
func (h *RecordHandler[E, R]) Register(rg *gin.RouterGroup) {
	rg.GET("", h.GetAll)
	rg.GET("/:id", h.GetByID)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// GetAll godoc
// GET /api/v1/admin/<plural>
func (h *RecordHandler[E, R]) GetAll(c *gin.Context) {
	items, err := h.store.GetAll(c.Request.Context())
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{h.plural: items})
}

// GetByID godoc
// GET /api/v1/admin/<plural>/:id
func (h *RecordHandler[E, R]) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, found, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	if !found {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{h.single: item})
}

// Create godoc
// POST /api/v1/admin/<plural>
func (h *RecordHandler[E, R]) Create(c *gin.Context) {
	item, ok := h.bind(c)
	if !ok {
		return
	}

	if err := h.store.Create(c.Request.Context(), &item); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{h.single: item})
}

// Update godoc
// PUT /api/v1/admin/<plural>/:id
// Replaces every mutable field of the record.
func (h *RecordHandler[E, R]) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, ok := h.bind(c)
	if !ok {
		return
	}
	h.setID(&item, id)

	updated, err := h.store.Update(c.Request.Context(), &item)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	if !updated {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{h.single: item})
}

// Delete godoc
// DELETE /api/v1/admin/<plural>/:id
func (h *RecordHandler[E, R]) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
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

	h.log.Info().Int64("id", id).Msg("record deleted")
	response.Success(c, http.StatusOK, gin.H{"message": h.single + " deleted successfully"})
}

func (h *RecordHandler[E, R]) bind(c *gin.Context) (E, bool) {
	var zero E
	var req R
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return zero, false
	}

	item, err := h.decode(req)
	if err != nil {
		var fe FieldErrors
		if errors.As(err, &fe) {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fe)
			return zero, false
		}
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"detail": err.Error()})
		return zero, false
	}
	return item, true
}

// parseID reads the :id path parameter. Identities are positive.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}
