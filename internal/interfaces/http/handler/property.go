package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	listingapp "github.com/immoflow/backend/internal/application/listing"
	"github.com/immoflow/backend/internal/domain/shared"
	"github.com/immoflow/backend/internal/interfaces/http/dto"
)

// PropertyHandler handles property-related API endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *listingapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *listingapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
	}
}

// Create creates a new property in draft state
func (h *PropertyHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req listingapp.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	property, err := h.propertyService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, property)
}

// List returns a paginated list of the tenant's properties
func (h *PropertyHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}

	result, err := h.propertyService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, req.Page, req.PageSize)
}

// GetByID returns a single property by ID
func (h *PropertyHandler) GetByID(c *gin.Context) {
	tenantID, propertyID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	property, err := h.propertyService.GetByID(c.Request.Context(), tenantID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, property)
}

// Update updates a property's descriptive details
func (h *PropertyHandler) Update(c *gin.Context) {
	tenantID, propertyID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	var req listingapp.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	property, err := h.propertyService.Update(c.Request.Context(), tenantID, propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, property)
}

// SetPrice changes a property's asking price
func (h *PropertyHandler) SetPrice(c *gin.Context) {
	tenantID, propertyID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	var req listingapp.SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	property, err := h.propertyService.SetPrice(c.Request.Context(), tenantID, propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, property)
}

// Activate publishes a property so it is included in portal exports
func (h *PropertyHandler) Activate(c *gin.Context) {
	h.transition(c, h.propertyService.Activate)
}

// MarkSold marks a property as sold
func (h *PropertyHandler) MarkSold(c *gin.Context) {
	h.transition(c, h.propertyService.MarkSold)
}

// Withdraw takes a property off the market
func (h *PropertyHandler) Withdraw(c *gin.Context) {
	h.transition(c, h.propertyService.Withdraw)
}

// Delete removes a property and its image records
func (h *PropertyHandler) Delete(c *gin.Context) {
	tenantID, propertyID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), tenantID, propertyID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RequestUploadURL returns a presigned URL for uploading one property image
func (h *PropertyHandler) RequestUploadURL(c *gin.Context) {
	tenantID, propertyID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	var req listingapp.RequestUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	uploadURL, err := h.propertyService.RequestImageUploadURL(c.Request.Context(), tenantID, propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, uploadURL)
}

// AddImage attaches an uploaded image to a property
func (h *PropertyHandler) AddImage(c *gin.Context) {
	tenantID, propertyID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	var req listingapp.AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	property, err := h.propertyService.AddImage(c.Request.Context(), tenantID, propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, property)
}

// RemoveImage detaches an image from a property and deletes its object
func (h *PropertyHandler) RemoveImage(c *gin.Context) {
	tenantID, propertyID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	var imageReq struct {
		ImageID string `uri:"image_id" binding:"required,uuid"`
	}
	if err := c.ShouldBindUri(&imageReq); err != nil {
		h.BadRequest(c, "Invalid image ID format")
		return
	}
	imageID := uuid.MustParse(imageReq.ImageID)

	if err := h.propertyService.RemoveImage(c.Request.Context(), tenantID, propertyID, imageID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// transition runs one of the property state changes behind a shared
// tenant/ID parsing path
func (h *PropertyHandler) transition(c *gin.Context, op func(ctx context.Context, tenantID, id uuid.UUID) (*listingapp.PropertyResponse, error)) {
	tenantID, propertyID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	property, err := op(c.Request.Context(), tenantID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, property)
}

// tenantAndID parses the tenant header and the :id path parameter,
// writing the error response itself when either is invalid
func (h *PropertyHandler) tenantAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return uuid.Nil, uuid.Nil, false
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid ID format")
		return uuid.Nil, uuid.Nil, false
	}

	return tenantID, uuid.MustParse(req.ID), true
}
