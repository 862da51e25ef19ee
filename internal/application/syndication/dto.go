package syndication

import (
	"time"

	"github.com/google/uuid"
	"github.com/immoflow/backend/internal/domain/syndication"
)

// UpsertPortalConfigRequest creates or replaces the portal settings of
// one agency
type UpsertPortalConfigRequest struct {
	PortalName  string `json:"portal_name" binding:"required,min=1,max=50"`
	FTPHost     string `json:"ftp_host" binding:"max=200"`
	FTPUser     string `json:"ftp_user" binding:"max=100"`
	FTPPassword string `json:"ftp_password" binding:"max=200"`
	IsActive    bool   `json:"is_active"`
}

// PortalConfigResponse is the API representation of a portal config.
// The password is never echoed back; HasPassword signals whether one is set.
type PortalConfigResponse struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	PortalName  string    `json:"portal_name"`
	FTPHost     string    `json:"ftp_host"`
	FTPUser     string    `json:"ftp_user"`
	HasPassword bool      `json:"has_password"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExportRunResponse is the trigger endpoint's response body
type ExportRunResponse struct {
	Processed []syndication.ExportResult `json:"processed"`
}

// ToPortalConfigResponse converts a domain config to its API representation
func ToPortalConfigResponse(c *syndication.PortalConfig) *PortalConfigResponse {
	return &PortalConfigResponse{
		ID:          c.ID,
		TenantID:    c.TenantID,
		PortalName:  c.PortalName,
		FTPHost:     c.FTPHost,
		FTPUser:     c.FTPUser,
		HasPassword: c.FTPPassword != "",
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
