package handler

import (
	"github.com/gin-gonic/gin"
	syndicationapp "github.com/immoflow/backend/internal/application/syndication"
)

// PortalConfigHandler handles portal configuration API endpoints
type PortalConfigHandler struct {
	BaseHandler
	portalService *syndicationapp.PortalConfigService
}

// NewPortalConfigHandler creates a new PortalConfigHandler
func NewPortalConfigHandler(portalService *syndicationapp.PortalConfigService) *PortalConfigHandler {
	return &PortalConfigHandler{
		portalService: portalService,
	}
}

// Upsert creates or replaces the tenant's configuration for one portal
func (h *PortalConfigHandler) Upsert(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req syndicationapp.UpsertPortalConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	config, err := h.portalService.Upsert(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, config)
}

// List returns all portal configurations of the tenant
func (h *PortalConfigHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	configs, err := h.portalService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, configs)
}

// GetByPortal returns the tenant's configuration for a named portal
func (h *PortalConfigHandler) GetByPortal(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	portalName := c.Param("portal")
	if portalName == "" {
		h.BadRequest(c, "Portal name is required")
		return
	}

	config, err := h.portalService.GetByPortal(c.Request.Context(), tenantID, portalName)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, config)
}
