package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	syndicationapp "github.com/immoflow/backend/internal/application/syndication"
)

// ExportHandler handles the feed export trigger endpoint
type ExportHandler struct {
	BaseHandler
	exportService *syndicationapp.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *syndicationapp.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// Run exports all active portal configurations across all agencies.
// The response body is consumed by the cron monitor, so it keeps the
// flat {"processed": [...]} shape instead of the standard envelope.
func (h *ExportHandler) Run(c *gin.Context) {
	results, err := h.exportService.RunExport(c.Request.Context())
	if err != nil {
		h.InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, syndicationapp.ExportRunResponse{Processed: results})
}
