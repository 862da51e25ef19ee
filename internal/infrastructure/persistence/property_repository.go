package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/immoflow/backend/internal/domain/listing"
	"github.com/immoflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPropertyRepository implements PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID finds a property by its ID
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Property, error) {
	var property listing.Property
	if err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &property, nil
}

// FindByIDForTenant finds a property by ID within a tenant
func (r *GormPropertyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*listing.Property, error) {
	var property listing.Property
	if err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &property, nil
}

// FindByReference finds a property by its reference within a tenant
func (r *GormPropertyRepository) FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*listing.Property, error) {
	var property listing.Property
	if err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("tenant_id = ? AND reference = ?", tenantID, strings.ToUpper(reference)).
		First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &property, nil
}

// FindAllForTenant finds all properties for a tenant
func (r *GormPropertyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]listing.Property, error) {
	var properties []listing.Property
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&listing.Property{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// FindActiveWithImages finds all active properties for a tenant with
// their images preloaded, ordered by position ascending
func (r *GormPropertyRepository) FindActiveWithImages(ctx context.Context, tenantID uuid.UUID) ([]listing.Property, error) {
	var properties []listing.Property
	if err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("tenant_id = ? AND status = ?", tenantID, listing.PropertyStatusActive).
		Order("reference ASC").
		Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// Save creates or updates a property
func (r *GormPropertyRepository) Save(ctx context.Context, property *listing.Property) error {
	return r.db.WithContext(ctx).Save(property).Error
}

// DeleteForTenant deletes a property within a tenant
func (r *GormPropertyRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&listing.Property{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteImage removes one image row from a property
func (r *GormPropertyRepository) DeleteImage(ctx context.Context, propertyID, imageID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&listing.PropertyImage{}, "property_id = ? AND id = ?", propertyID, imageID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts properties for a tenant
func (r *GormPropertyRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&listing.Property{}).Where("tenant_id = ?", tenantID)
	query = r.applySearch(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// sortableColumns lists the columns clients may order listings by.
// OrderBy values come straight from query parameters, so anything
// outside this set falls back to the default ordering.
var sortableColumns = map[string]bool{
	"reference":  true,
	"created_at": true,
	"price_chf":  true,
}

// applyFilter applies search, pagination and ordering to the query
func (r *GormPropertyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)
	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	if sortableColumns[filter.OrderBy] {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("reference ASC")
	}

	return query
}

// applySearch applies the free-text search without pagination
func (r *GormPropertyRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("reference ILIKE ? OR street ILIKE ? OR city ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}
	return query
}

// Ensure GormPropertyRepository implements PropertyRepository
var _ listing.PropertyRepository = (*GormPropertyRepository)(nil)
