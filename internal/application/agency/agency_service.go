// Package agency implements agency management use cases.
package agency

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/immoflow/backend/internal/domain/agency"
)

// CreateAgencyRequest is the request to register a new agency
type CreateAgencyRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// RenameAgencyRequest is the request to rename an agency
type RenameAgencyRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// AgencyResponse is the API representation of an agency
type AgencyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service handles agency business operations
type Service struct {
	agencyRepo agency.Repository
}

// NewService creates a new agency Service
func NewService(agencyRepo agency.Repository) *Service {
	return &Service{agencyRepo: agencyRepo}
}

// Create registers a new agency
func (s *Service) Create(ctx context.Context, req CreateAgencyRequest) (*AgencyResponse, error) {
	a, err := agency.NewAgency(req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.agencyRepo.Save(ctx, a); err != nil {
		return nil, err
	}

	return toResponse(a), nil
}

// GetByID retrieves an agency by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*AgencyResponse, error) {
	a, err := s.agencyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(a), nil
}

// Rename changes an agency's name
func (s *Service) Rename(ctx context.Context, id uuid.UUID, req RenameAgencyRequest) (*AgencyResponse, error) {
	a, err := s.agencyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := a.Rename(req.Name); err != nil {
		return nil, err
	}

	if err := s.agencyRepo.Save(ctx, a); err != nil {
		return nil, err
	}

	return toResponse(a), nil
}

func toResponse(a *agency.Agency) *AgencyResponse {
	return &AgencyResponse{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
