package listing

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/immoflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PropertyStatus represents the lifecycle status of a listing
type PropertyStatus string

const (
	PropertyStatusDraft     PropertyStatus = "draft"
	PropertyStatusActive    PropertyStatus = "active"
	PropertyStatusSold      PropertyStatus = "sold"
	PropertyStatusWithdrawn PropertyStatus = "withdrawn"
)

// Property represents one real-estate listing owned by an agency.
// Only active properties are ever exported to portals.
type Property struct {
	shared.TenantAggregateRoot
	Reference     string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_property_tenant_reference,priority:2"`
	Status        PropertyStatus  `gorm:"type:varchar(20);not null;default:'draft'"`
	PriceCHF      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Street        string          `gorm:"type:varchar(200)"`
	ZipCode       string          `gorm:"type:varchar(10)"`
	City          string          `gorm:"type:varchar(100)"`
	Canton        string          `gorm:"type:varchar(2)"`
	Rooms         float64         `gorm:"type:numeric(4,1);not null;default:0"`
	SurfaceLiving float64         `gorm:"type:numeric(7,1);not null;default:0"`
	DescriptionFR string          `gorm:"type:text"`
	Images        []PropertyImage `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Property) TableName() string {
	return "properties"
}

// PropertyImage belongs to exactly one property. Position orders images
// ascending within the listing; the feed follows that order.
type PropertyImage struct {
	shared.BaseEntity
	PropertyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	StoragePath string    `gorm:"type:varchar(500);not null"`
	Position    int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PropertyImage) TableName() string {
	return "property_images"
}

// NewProperty creates a new draft property
func NewProperty(tenantID uuid.UUID, reference string) (*Property, error) {
	if err := validateReference(reference); err != nil {
		return nil, err
	}

	return &Property{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Reference:           strings.ToUpper(reference),
		Status:              PropertyStatusDraft,
		PriceCHF:            decimal.Zero,
	}, nil
}

// UpdateDetails updates the listing's address, features and description
func (p *Property) UpdateDetails(street, zipCode, city, canton string, rooms, surfaceLiving float64, descriptionFR string) error {
	if rooms < 0 {
		return shared.NewDomainError("INVALID_ROOMS", "Room count cannot be negative")
	}
	if surfaceLiving < 0 {
		return shared.NewDomainError("INVALID_SURFACE", "Living surface cannot be negative")
	}

	p.Street = street
	p.ZipCode = zipCode
	p.City = city
	p.Canton = strings.ToUpper(canton)
	p.Rooms = rooms
	p.SurfaceLiving = surfaceLiving
	p.DescriptionFR = descriptionFR
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPrice sets the asking price in Swiss francs
func (p *Property) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.PriceCHF = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Activate publishes the listing so it becomes exportable
func (p *Property) Activate() error {
	if p.Status == PropertyStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Property is already active")
	}
	if p.Status == PropertyStatusSold {
		return shared.NewDomainError("CANNOT_ACTIVATE", "Cannot activate a sold property")
	}

	p.Status = PropertyStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// MarkSold marks the listing as sold; sold listings leave the feed
func (p *Property) MarkSold() error {
	if p.Status != PropertyStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only an active property can be marked sold")
	}

	p.Status = PropertyStatusSold
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Withdraw takes an active listing off the market without selling it
func (p *Property) Withdraw() error {
	if p.Status != PropertyStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only an active property can be withdrawn")
	}

	p.Status = PropertyStatusWithdrawn
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsActive returns true if the listing is published
func (p *Property) IsActive() bool {
	return p.Status == PropertyStatusActive
}

// SortedImages returns the property's images ordered by position ascending.
// The receiver's slice is not mutated.
func (p *Property) SortedImages() []PropertyImage {
	images := make([]PropertyImage, len(p.Images))
	copy(images, p.Images)
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Position < images[j].Position
	})
	return images
}

// AddImage appends an image reference at the given position
func (p *Property) AddImage(storagePath string, position int) error {
	if storagePath == "" {
		return shared.NewDomainError("INVALID_IMAGE", "Image storage path cannot be empty")
	}
	if position < 0 {
		return shared.NewDomainError("INVALID_IMAGE", "Image position cannot be negative")
	}

	p.Images = append(p.Images, PropertyImage{
		BaseEntity:  shared.NewBaseEntity(),
		PropertyID:  p.ID,
		StoragePath: storagePath,
		Position:    position,
	})
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

func validateReference(reference string) error {
	if reference == "" {
		return shared.NewDomainError("INVALID_REFERENCE", "Property reference cannot be empty")
	}
	if len(reference) > 50 {
		return shared.NewDomainError("INVALID_REFERENCE", "Property reference cannot exceed 50 characters")
	}
	for _, r := range reference {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_REFERENCE", "Property reference can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
