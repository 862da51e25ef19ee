package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	agencyapp "github.com/immoflow/backend/internal/application/agency"
	"github.com/immoflow/backend/internal/interfaces/http/dto"
)

// AgencyHandler handles agency API endpoints
type AgencyHandler struct {
	BaseHandler
	agencyService *agencyapp.Service
}

// NewAgencyHandler creates a new AgencyHandler
func NewAgencyHandler(agencyService *agencyapp.Service) *AgencyHandler {
	return &AgencyHandler{
		agencyService: agencyService,
	}
}

// Create registers a new agency
func (h *AgencyHandler) Create(c *gin.Context) {
	var req agencyapp.CreateAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	created, err := h.agencyService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, created)
}

// GetByID returns a single agency by ID
func (h *AgencyHandler) GetByID(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid ID format")
		return
	}

	found, err := h.agencyService.GetByID(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, found)
}

// Rename changes an agency's display name
func (h *AgencyHandler) Rename(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid ID format")
		return
	}

	var req agencyapp.RenameAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	renamed, err := h.agencyService.Rename(c.Request.Context(), uuid.MustParse(idReq.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, renamed)
}
