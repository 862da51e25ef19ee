package agency

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for agency persistence
type Repository interface {
	// FindByID finds an agency by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Agency, error)

	// Save creates or updates an agency
	Save(ctx context.Context, agency *Agency) error
}
