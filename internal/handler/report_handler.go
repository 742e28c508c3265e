package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/institute-admin/internal/export"
	"github.com/stemsi/institute-admin/internal/logger"
	"github.com/stemsi/institute-admin/internal/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves record exports as spreadsheets.
type ReportHandler struct {
	catalog export.Catalog
	log     zerolog.Logger
	now     func() time.Time
}

func NewReportHandler(catalog export.Catalog, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{catalog: catalog, log: logger.Component(log, "report_handler"), now: time.Now}
}

// Export godoc
// GET /api/v1/admin/reports/:entity
// Downloads every record of entity as an .xlsx workbook.
func (h *ReportHandler) Export(c *gin.Context) {
	entity := c.Param("entity")
	load, ok := h.catalog[entity]
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrUnknownEntity)
		return
	}

	sheet, err := load(c.Request.Context())
	if err != nil {
		response.FailFromError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, sheet); err != nil {
		h.log.Error().Err(err).Str("entity", entity).Msg("failed to build workbook")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	filename := fmt.Sprintf("%s-%s.xlsx", entity, h.now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
