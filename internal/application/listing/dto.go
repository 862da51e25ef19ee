package listing

import (
	"time"

	"github.com/google/uuid"
	"github.com/immoflow/backend/internal/domain/listing"
	"github.com/shopspring/decimal"
)

// CreatePropertyRequest is the request to create a new property
type CreatePropertyRequest struct {
	Reference string `json:"reference" binding:"required,min=1,max=50"`
}

// UpdatePropertyRequest is the request to update a property's details
type UpdatePropertyRequest struct {
	Street        string  `json:"street" binding:"max=200"`
	ZipCode       string  `json:"zip_code" binding:"max=10"`
	City          string  `json:"city" binding:"max=100"`
	Canton        string  `json:"canton" binding:"max=2"`
	Rooms         float64 `json:"rooms" binding:"min=0"`
	SurfaceLiving float64 `json:"surface_living" binding:"min=0"`
	DescriptionFR string  `json:"description_fr"`
}

// SetPriceRequest is the request to change a property's asking price
type SetPriceRequest struct {
	PriceCHF decimal.Decimal `json:"price_chf" binding:"required"`
}

// RequestUploadURLRequest asks for a presigned URL to upload one image
type RequestUploadURLRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=200"`
	ContentType string `json:"content_type" binding:"required"`
}

// AddImageRequest attaches an already uploaded image to a property
type AddImageRequest struct {
	StoragePath string `json:"storage_path" binding:"required,min=1,max=500"`
	Position    int    `json:"position" binding:"min=0"`
}

// PropertyImageResponse is the API representation of a property image
type PropertyImageResponse struct {
	ID          uuid.UUID `json:"id"`
	StoragePath string    `json:"storage_path"`
	Position    int       `json:"position"`
}

// PropertyResponse is the API representation of a property
type PropertyResponse struct {
	ID            uuid.UUID               `json:"id"`
	TenantID      uuid.UUID               `json:"tenant_id"`
	Reference     string                  `json:"reference"`
	Status        string                  `json:"status"`
	PriceCHF      decimal.Decimal         `json:"price_chf"`
	Street        string                  `json:"street"`
	ZipCode       string                  `json:"zip_code"`
	City          string                  `json:"city"`
	Canton        string                  `json:"canton"`
	Rooms         float64                 `json:"rooms"`
	SurfaceLiving float64                 `json:"surface_living"`
	DescriptionFR string                  `json:"description_fr"`
	Images        []PropertyImageResponse `json:"images"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// UploadURLResponse carries a presigned upload URL for one image
type UploadURLResponse struct {
	UploadURL   string    `json:"upload_url"`
	StoragePath string    `json:"storage_path"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ToPropertyResponse converts a domain property to its API representation
func ToPropertyResponse(p *listing.Property) *PropertyResponse {
	images := make([]PropertyImageResponse, 0, len(p.Images))
	for _, img := range p.SortedImages() {
		images = append(images, PropertyImageResponse{
			ID:          img.ID,
			StoragePath: img.StoragePath,
			Position:    img.Position,
		})
	}

	return &PropertyResponse{
		ID:            p.ID,
		TenantID:      p.TenantID,
		Reference:     p.Reference,
		Status:        string(p.Status),
		PriceCHF:      p.PriceCHF,
		Street:        p.Street,
		ZipCode:       p.ZipCode,
		City:          p.City,
		Canton:        p.Canton,
		Rooms:         p.Rooms,
		SurfaceLiving: p.SurfaceLiving,
		DescriptionFR: p.DescriptionFR,
		Images:        images,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
