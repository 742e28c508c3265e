package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/institute-admin/internal/model"
	"github.com/stemsi/institute-admin/internal/response"
)

// DashboardSource produces the dashboard aggregates.
type DashboardSource interface {
	Get(ctx context.Context) (model.Dashboard, error)
}

// DashboardHandler handles admin dashboard endpoints.
type DashboardHandler struct {
	dashboard DashboardSource
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboard DashboardSource) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GetDashboardData godoc
// GET /api/v1/admin/dashboard
// Returns entity totals, monthly revenue, per-category counts and upcoming exams.
func (h *DashboardHandler) GetDashboardData(c *gin.Context) {
	data, err := h.dashboard.Get(c.Request.Context())
	if err != nil {
		response.FailFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, data)
}
