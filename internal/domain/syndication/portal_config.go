package syndication

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/immoflow/backend/internal/domain/shared"
)

// PortalConfig identifies one syndication target: the FTP drop box of one
// external portal for one agency. Credentials are optional; a config
// without complete credentials is reported but never dialed.
type PortalConfig struct {
	shared.TenantAggregateRoot
	PortalName  string `gorm:"type:varchar(50);not null;uniqueIndex:idx_portal_tenant_name,priority:2"`
	FTPHost     string `gorm:"type:varchar(200)"`
	FTPUser     string `gorm:"type:varchar(100)"`
	FTPPassword string `gorm:"type:varchar(200)"`
	IsActive    bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (PortalConfig) TableName() string {
	return "portals_config"
}

// NewPortalConfig creates a new portal configuration for an agency
func NewPortalConfig(tenantID uuid.UUID, portalName string) (*PortalConfig, error) {
	if err := validatePortalName(portalName); err != nil {
		return nil, err
	}

	return &PortalConfig{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PortalName:          strings.ToLower(portalName),
	}, nil
}

// UpdateCredentials replaces the FTP connection settings
func (c *PortalConfig) UpdateCredentials(host, user, password string) {
	c.FTPHost = host
	c.FTPUser = user
	c.FTPPassword = password
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetActive toggles whether the config participates in export runs
func (c *PortalConfig) SetActive(active bool) {
	c.IsActive = active
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// HasCompleteCredentials reports whether host, user and password are all set
func (c *PortalConfig) HasCompleteCredentials() bool {
	return c.FTPHost != "" && c.FTPUser != "" && c.FTPPassword != ""
}

// RemoteFilename returns the deterministic remote file name for this portal
func (c *PortalConfig) RemoteFilename() string {
	return "export_" + c.PortalName + ".xml"
}

func validatePortalName(portalName string) error {
	if portalName == "" {
		return shared.NewDomainError("INVALID_PORTAL", "Portal name cannot be empty")
	}
	if len(portalName) > 50 {
		return shared.NewDomainError("INVALID_PORTAL", "Portal name cannot exceed 50 characters")
	}
	for _, r := range portalName {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_PORTAL", "Portal name can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
