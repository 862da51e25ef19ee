package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/immoflow/backend/internal/domain/listing"
	"github.com/immoflow/backend/internal/domain/shared"
	"github.com/immoflow/backend/internal/domain/syndication"
)

// stubPropertyRepo implements listing.PropertyRepository with overridable
// function fields, defaulting every call to not found
type stubPropertyRepo struct {
	findByIDForTenant    func(ctx context.Context, tenantID, id uuid.UUID) (*listing.Property, error)
	findByReference      func(ctx context.Context, tenantID uuid.UUID, reference string) (*listing.Property, error)
	findAllForTenant     func(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]listing.Property, error)
	findActiveWithImages func(ctx context.Context, tenantID uuid.UUID) ([]listing.Property, error)
	save                 func(ctx context.Context, property *listing.Property) error
	deleteForTenant      func(ctx context.Context, tenantID, id uuid.UUID) error
	deleteImage          func(ctx context.Context, propertyID, imageID uuid.UUID) error
	countForTenant       func(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

func (s *stubPropertyRepo) FindByID(ctx context.Context, id uuid.UUID) (*listing.Property, error) {
	return nil, shared.ErrNotFound
}

func (s *stubPropertyRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*listing.Property, error) {
	if s.findByIDForTenant != nil {
		return s.findByIDForTenant(ctx, tenantID, id)
	}
	return nil, shared.ErrNotFound
}

func (s *stubPropertyRepo) FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*listing.Property, error) {
	if s.findByReference != nil {
		return s.findByReference(ctx, tenantID, reference)
	}
	return nil, shared.ErrNotFound
}

func (s *stubPropertyRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]listing.Property, error) {
	if s.findAllForTenant != nil {
		return s.findAllForTenant(ctx, tenantID, filter)
	}
	return nil, nil
}

func (s *stubPropertyRepo) FindActiveWithImages(ctx context.Context, tenantID uuid.UUID) ([]listing.Property, error) {
	if s.findActiveWithImages != nil {
		return s.findActiveWithImages(ctx, tenantID)
	}
	return nil, nil
}

func (s *stubPropertyRepo) Save(ctx context.Context, property *listing.Property) error {
	if s.save != nil {
		return s.save(ctx, property)
	}
	return nil
}

func (s *stubPropertyRepo) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	if s.deleteForTenant != nil {
		return s.deleteForTenant(ctx, tenantID, id)
	}
	return nil
}

func (s *stubPropertyRepo) DeleteImage(ctx context.Context, propertyID, imageID uuid.UUID) error {
	if s.deleteImage != nil {
		return s.deleteImage(ctx, propertyID, imageID)
	}
	return nil
}

func (s *stubPropertyRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	if s.countForTenant != nil {
		return s.countForTenant(ctx, tenantID, filter)
	}
	return 0, nil
}

// stubPortalConfigRepo implements syndication.PortalConfigRepository
type stubPortalConfigRepo struct {
	findByPortalForTenant   func(ctx context.Context, tenantID uuid.UUID, portalName string) (*syndication.PortalConfig, error)
	findAllForTenant        func(ctx context.Context, tenantID uuid.UUID) ([]syndication.PortalConfig, error)
	findActiveExportTargets func(ctx context.Context) ([]syndication.ExportTarget, error)
	upsert                  func(ctx context.Context, config *syndication.PortalConfig) error
}

func (s *stubPortalConfigRepo) FindByPortalForTenant(ctx context.Context, tenantID uuid.UUID, portalName string) (*syndication.PortalConfig, error) {
	if s.findByPortalForTenant != nil {
		return s.findByPortalForTenant(ctx, tenantID, portalName)
	}
	return nil, shared.ErrNotFound
}

func (s *stubPortalConfigRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]syndication.PortalConfig, error) {
	if s.findAllForTenant != nil {
		return s.findAllForTenant(ctx, tenantID)
	}
	return nil, nil
}

func (s *stubPortalConfigRepo) FindActiveExportTargets(ctx context.Context) ([]syndication.ExportTarget, error) {
	if s.findActiveExportTargets != nil {
		return s.findActiveExportTargets(ctx)
	}
	return nil, nil
}

func (s *stubPortalConfigRepo) Upsert(ctx context.Context, config *syndication.PortalConfig) error {
	if s.upsert != nil {
		return s.upsert(ctx, config)
	}
	return nil
}

// stubStorage implements the presigned upload storage used by the
// property service
type stubStorage struct {
	generateUploadURL func(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	deleteObject      func(ctx context.Context, storageKey string) error
}

func (s *stubStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	if s.generateUploadURL != nil {
		return s.generateUploadURL(ctx, storageKey, contentType, expiresIn)
	}
	return "https://storage.test/upload/" + storageKey, time.Now().Add(15 * time.Minute), nil
}

func (s *stubStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if s.deleteObject != nil {
		return s.deleteObject(ctx, storageKey)
	}
	return nil
}

// uploaderFunc adapts a function to the export service's uploader interface
type uploaderFunc func(ctx context.Context, host, user, password, filename string, content []byte) error

func (f uploaderFunc) Upload(ctx context.Context, host, user, password, filename string, content []byte) error {
	return f(ctx, host, user, password, filename, content)
}

// stubResolver resolves storage paths to public URLs
type stubResolver struct{}

func (stubResolver) PublicURL(storagePath string) string {
	if storagePath == "" {
		return ""
	}
	return "https://cdn.test/" + storagePath
}
