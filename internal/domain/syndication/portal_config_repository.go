package syndication

import (
	"context"

	"github.com/google/uuid"
)

// ExportTarget is one active portal configuration annotated with the
// owning agency's name for reporting.
type ExportTarget struct {
	Config     PortalConfig
	AgencyName string
}

// PortalConfigRepository defines the interface for portal config persistence
type PortalConfigRepository interface {
	// FindByPortalForTenant finds a config by portal name within a tenant
	FindByPortalForTenant(ctx context.Context, tenantID uuid.UUID, portalName string) (*PortalConfig, error)

	// FindAllForTenant finds all configs for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]PortalConfig, error)

	// FindActiveExportTargets returns every active config across all
	// tenants, each annotated with its agency name
	FindActiveExportTargets(ctx context.Context) ([]ExportTarget, error)

	// Upsert creates the config or updates the existing row for the same
	// (tenant, portal) pair
	Upsert(ctx context.Context, config *PortalConfig) error
}
