package syndication

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/immoflow/backend/internal/domain/shared"
	"github.com/immoflow/backend/internal/domain/syndication"
)

// PortalConfigService handles portal configuration operations
type PortalConfigService struct {
	configRepo syndication.PortalConfigRepository
}

// NewPortalConfigService creates a new PortalConfigService
func NewPortalConfigService(configRepo syndication.PortalConfigRepository) *PortalConfigService {
	return &PortalConfigService{configRepo: configRepo}
}

// Upsert creates or replaces the settings for one (agency, portal) pair
func (s *PortalConfigService) Upsert(ctx context.Context, tenantID uuid.UUID, req UpsertPortalConfigRequest) (*PortalConfigResponse, error) {
	config, err := s.configRepo.FindByPortalForTenant(ctx, tenantID, req.PortalName)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		config, err = syndication.NewPortalConfig(tenantID, req.PortalName)
		if err != nil {
			return nil, err
		}
	}

	config.UpdateCredentials(req.FTPHost, req.FTPUser, req.FTPPassword)
	config.SetActive(req.IsActive)

	if err := s.configRepo.Upsert(ctx, config); err != nil {
		return nil, err
	}

	return ToPortalConfigResponse(config), nil
}

// GetByPortal retrieves one portal config for a tenant
func (s *PortalConfigService) GetByPortal(ctx context.Context, tenantID uuid.UUID, portalName string) (*PortalConfigResponse, error) {
	config, err := s.configRepo.FindByPortalForTenant(ctx, tenantID, portalName)
	if err != nil {
		return nil, err
	}
	return ToPortalConfigResponse(config), nil
}

// List retrieves all portal configs for a tenant
func (s *PortalConfigService) List(ctx context.Context, tenantID uuid.UUID) ([]PortalConfigResponse, error) {
	configs, err := s.configRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]PortalConfigResponse, len(configs))
	for i := range configs {
		responses[i] = *ToPortalConfigResponse(&configs[i])
	}
	return responses, nil
}
