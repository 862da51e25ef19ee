// Package listing implements the back-office property management use cases.
package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/immoflow/backend/internal/domain/listing"
	"github.com/immoflow/backend/internal/domain/shared"
)

// ObjectStorageService abstracts the object storage operations the
// property use cases need. Implemented by the S3 storage adapter.
type ObjectStorageService interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
}

// PropertyService handles property-related business operations
type PropertyService struct {
	propertyRepo listing.PropertyRepository
	storage      ObjectStorageService
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(propertyRepo listing.PropertyRepository, storage ObjectStorageService) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		storage:      storage,
	}
}

// Create creates a new draft property
func (s *PropertyService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePropertyRequest) (*PropertyResponse, error) {
	// Check if reference already exists
	existing, err := s.propertyRepo.FindByReference(ctx, tenantID, req.Reference)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Property with this reference already exists")
	}

	property, err := listing.NewProperty(tenantID, req.Reference)
	if err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Save(ctx, property); err != nil {
		return nil, err
	}

	return ToPropertyResponse(property), nil
}

// GetByID retrieves a property by ID within a tenant
func (s *PropertyService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return ToPropertyResponse(property), nil
}

// List retrieves a page of properties for a tenant
func (s *PropertyService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[PropertyResponse], error) {
	properties, err := s.propertyRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.propertyRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PropertyResponse, len(properties))
	for i := range properties {
		items[i] = *ToPropertyResponse(&properties[i])
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// Update updates a property's details
func (s *PropertyService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdatePropertyRequest) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := property.UpdateDetails(req.Street, req.ZipCode, req.City, req.Canton, req.Rooms, req.SurfaceLiving, req.DescriptionFR); err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Save(ctx, property); err != nil {
		return nil, err
	}

	return ToPropertyResponse(property), nil
}

// SetPrice changes a property's asking price
func (s *PropertyService) SetPrice(ctx context.Context, tenantID, id uuid.UUID, req SetPriceRequest) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := property.SetPrice(req.PriceCHF); err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Save(ctx, property); err != nil {
		return nil, err
	}

	return ToPropertyResponse(property), nil
}

// Activate publishes a property so it joins the export feed
func (s *PropertyService) Activate(ctx context.Context, tenantID, id uuid.UUID) (*PropertyResponse, error) {
	return s.transition(ctx, tenantID, id, (*listing.Property).Activate)
}

// MarkSold marks a property as sold
func (s *PropertyService) MarkSold(ctx context.Context, tenantID, id uuid.UUID) (*PropertyResponse, error) {
	return s.transition(ctx, tenantID, id, (*listing.Property).MarkSold)
}

// Withdraw takes a property off the market
func (s *PropertyService) Withdraw(ctx context.Context, tenantID, id uuid.UUID) (*PropertyResponse, error) {
	return s.transition(ctx, tenantID, id, (*listing.Property).Withdraw)
}

// transition loads a property, applies a status change and saves it
func (s *PropertyService) transition(ctx context.Context, tenantID, id uuid.UUID, change func(*listing.Property) error) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := change(property); err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Save(ctx, property); err != nil {
		return nil, err
	}

	return ToPropertyResponse(property), nil
}

// Delete removes a property within a tenant
func (s *PropertyService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.propertyRepo.DeleteForTenant(ctx, tenantID, id)
}

// RequestImageUploadURL issues a presigned URL for uploading one property image
func (s *PropertyService) RequestImageUploadURL(ctx context.Context, tenantID, propertyID uuid.UUID, req RequestUploadURLRequest) (*UploadURLResponse, error) {
	property, err := s.propertyRepo.FindByIDForTenant(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}

	fileName := sanitizeFileName(req.FileName)
	if fileName == "" {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name contains no usable characters")
	}

	storagePath := fmt.Sprintf("%s/%s/%s", tenantID, property.ID, fileName)

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storagePath, req.ContentType, 0)
	if err != nil {
		return nil, err
	}

	return &UploadURLResponse{
		UploadURL:   uploadURL,
		StoragePath: storagePath,
		ExpiresAt:   expiresAt,
	}, nil
}

// AddImage attaches an uploaded image to a property
func (s *PropertyService) AddImage(ctx context.Context, tenantID, propertyID uuid.UUID, req AddImageRequest) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByIDForTenant(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}

	if err := property.AddImage(req.StoragePath, req.Position); err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Save(ctx, property); err != nil {
		return nil, err
	}

	return ToPropertyResponse(property), nil
}

// RemoveImage detaches an image from a property and deletes the stored object
func (s *PropertyService) RemoveImage(ctx context.Context, tenantID, propertyID, imageID uuid.UUID) error {
	property, err := s.propertyRepo.FindByIDForTenant(ctx, tenantID, propertyID)
	if err != nil {
		return err
	}

	var storagePath string
	for _, img := range property.Images {
		if img.ID == imageID {
			storagePath = img.StoragePath
			break
		}
	}
	if storagePath == "" {
		return shared.ErrNotFound
	}

	if err := s.propertyRepo.DeleteImage(ctx, propertyID, imageID); err != nil {
		return err
	}

	// Removing the stored object is best effort; the row is already gone
	return s.storage.DeleteObject(ctx, storagePath)
}

// sanitizeFileName strips path separators and whitespace from a file name
func sanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\\", "/")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}
