package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/immoflow/backend/internal/domain/shared"
	"github.com/immoflow/backend/internal/domain/syndication"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPortalConfigRepository implements PortalConfigRepository using GORM
type GormPortalConfigRepository struct {
	db *gorm.DB
}

// NewGormPortalConfigRepository creates a new GormPortalConfigRepository
func NewGormPortalConfigRepository(db *gorm.DB) *GormPortalConfigRepository {
	return &GormPortalConfigRepository{db: db}
}

// FindByPortalForTenant finds a config by portal name within a tenant
func (r *GormPortalConfigRepository) FindByPortalForTenant(ctx context.Context, tenantID uuid.UUID, portalName string) (*syndication.PortalConfig, error) {
	var config syndication.PortalConfig
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND portal_name = ?", tenantID, strings.ToLower(portalName)).
		First(&config).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &config, nil
}

// FindAllForTenant finds all configs for a tenant
func (r *GormPortalConfigRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]syndication.PortalConfig, error) {
	var configs []syndication.PortalConfig
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("portal_name ASC").
		Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// exportTargetRow is the flat shape of the config-agency join
type exportTargetRow struct {
	syndication.PortalConfig
	AgencyName string
}

// FindActiveExportTargets returns every active config across all tenants,
// each annotated with its agency name. Ordered by agency then portal so
// export runs process targets in a stable order.
func (r *GormPortalConfigRepository) FindActiveExportTargets(ctx context.Context) ([]syndication.ExportTarget, error) {
	var rows []exportTargetRow
	if err := r.db.WithContext(ctx).
		Model(&syndication.PortalConfig{}).
		Select("portals_config.*, agencies.name AS agency_name").
		Joins("JOIN agencies ON agencies.id = portals_config.tenant_id").
		Where("portals_config.is_active = ?", true).
		Order("agencies.name ASC, portals_config.portal_name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	targets := make([]syndication.ExportTarget, len(rows))
	for i, row := range rows {
		targets[i] = syndication.ExportTarget{
			Config:     row.PortalConfig,
			AgencyName: row.AgencyName,
		}
	}
	return targets, nil
}

// Upsert creates the config or updates the existing row for the same
// (tenant, portal) pair
func (r *GormPortalConfigRepository) Upsert(ctx context.Context, config *syndication.PortalConfig) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}, {Name: "portal_name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"ftp_host", "ftp_user", "ftp_password", "is_active", "updated_at", "version",
			}),
		}).
		Create(config).Error
}

// Ensure GormPortalConfigRepository implements PortalConfigRepository
var _ syndication.PortalConfigRepository = (*GormPortalConfigRepository)(nil)
