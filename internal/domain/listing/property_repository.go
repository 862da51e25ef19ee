package listing

import (
	"context"

	"github.com/google/uuid"
	"github.com/immoflow/backend/internal/domain/shared"
)

// PropertyRepository defines the interface for property persistence
type PropertyRepository interface {
	// FindByID finds a property by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)

	// FindByIDForTenant finds a property by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Property, error)

	// FindByReference finds a property by its reference within a tenant
	FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*Property, error)

	// FindAllForTenant finds all properties for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Property, error)

	// FindActiveWithImages finds all active properties for a tenant with
	// their images preloaded, ordered by position ascending
	FindActiveWithImages(ctx context.Context, tenantID uuid.UUID) ([]Property, error)

	// Save creates or updates a property
	Save(ctx context.Context, property *Property) error

	// Delete deletes a property within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// DeleteImage removes one image row from a property
	DeleteImage(ctx context.Context, propertyID, imageID uuid.UUID) error

	// CountForTenant counts properties for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
