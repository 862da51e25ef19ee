package agency

import (
	"strings"
	"time"

	"github.com/immoflow/backend/internal/domain/shared"
)

// Agency is the tenant of the system: every property and portal
// configuration belongs to exactly one agency.
type Agency struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (Agency) TableName() string {
	return "agencies"
}

// NewAgency creates a new agency
func NewAgency(name string) (*Agency, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	return &Agency{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
	}, nil
}

// Rename changes the agency name
func (a *Agency) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	a.Name = strings.TrimSpace(name)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Agency name cannot be empty")
	}
	if len(trimmed) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Agency name cannot exceed 200 characters")
	}
	return nil
}
