package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/immoflow/backend/internal/domain/agency"
	"github.com/immoflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAgencyRepository implements agency.Repository using GORM
type GormAgencyRepository struct {
	db *gorm.DB
}

// NewGormAgencyRepository creates a new GormAgencyRepository
func NewGormAgencyRepository(db *gorm.DB) *GormAgencyRepository {
	return &GormAgencyRepository{db: db}
}

// FindByID finds an agency by its ID
func (r *GormAgencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*agency.Agency, error) {
	var a agency.Agency
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Save creates or updates an agency
func (r *GormAgencyRepository) Save(ctx context.Context, a *agency.Agency) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// Ensure GormAgencyRepository implements agency.Repository
var _ agency.Repository = (*GormAgencyRepository)(nil)
