package listing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/immoflow/backend/internal/domain/listing"
	"github.com/immoflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockPropertyRepository is a mock implementation of PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*listing.Property, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*listing.Property, error) {
	args := m.Called(ctx, tenantID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]listing.Property, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]listing.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindActiveWithImages(ctx context.Context, tenantID uuid.UUID) ([]listing.Property, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.Property), args.Error(1)
}

func (m *MockPropertyRepository) Save(ctx context.Context, property *listing.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) DeleteImage(ctx context.Context, propertyID, imageID uuid.UUID) error {
	args := m.Called(ctx, propertyID, imageID)
	return args.Error(0)
}

func (m *MockPropertyRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockObjectStorage is a mock implementation of ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func newTestProperty(t *testing.T, tenantID uuid.UUID, reference string) *listing.Property {
	t.Helper()
	property, err := listing.NewProperty(tenantID, reference)
	require.NoError(t, err)
	return property
}

// =============================================================================
// Tests
// =============================================================================

func TestPropertyService_Create(t *testing.T) {
	t.Run("creates a draft property", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		storage := new(MockObjectStorage)
		service := NewPropertyService(repo, storage)

		tenantID := uuid.New()

		repo.On("FindByReference", mock.Anything, tenantID, "PROP-001").Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*listing.Property")).Return(nil)

		resp, err := service.Create(context.Background(), tenantID, CreatePropertyRequest{Reference: "prop-001"})

		require.NoError(t, err)
		assert.Equal(t, "PROP-001", resp.Reference)
		assert.Equal(t, "draft", resp.Status)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate reference", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		storage := new(MockObjectStorage)
		service := NewPropertyService(repo, storage)

		tenantID := uuid.New()
		existing := newTestProperty(t, tenantID, "PROP-001")

		repo.On("FindByReference", mock.Anything, tenantID, "PROP-001").Return(existing, nil)

		resp, err := service.Create(context.Background(), tenantID, CreatePropertyRequest{Reference: "PROP-001"})

		require.Error(t, err)
		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		storage := new(MockObjectStorage)
		service := NewPropertyService(repo, storage)

		tenantID := uuid.New()
		dbErr := errors.New("connection refused")

		repo.On("FindByReference", mock.Anything, tenantID, "PROP-001").Return(nil, dbErr)

		_, err := service.Create(context.Background(), tenantID, CreatePropertyRequest{Reference: "PROP-001"})

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestPropertyService_Update(t *testing.T) {
	t.Run("updates details", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		storage := new(MockObjectStorage)
		service := NewPropertyService(repo, storage)

		tenantID := uuid.New()
		property := newTestProperty(t, tenantID, "PROP-001")

		repo.On("FindByIDForTenant", mock.Anything, tenantID, property.ID).Return(property, nil)
		repo.On("Save", mock.Anything, property).Return(nil)

		resp, err := service.Update(context.Background(), tenantID, property.ID, UpdatePropertyRequest{
			Street:        "Rue du Lac 1",
			ZipCode:       "1000",
			City:          "Lausanne",
			Canton:        "vd",
			Rooms:         4.5,
			SurfaceLiving: 120,
			DescriptionFR: "Bel appartement",
		})

		require.NoError(t, err)
		assert.Equal(t, "VD", resp.Canton)
		assert.Equal(t, 4.5, resp.Rooms)
		repo.AssertExpectations(t)
	})

	t.Run("returns not found for foreign tenant", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		storage := new(MockObjectStorage)
		service := NewPropertyService(repo, storage)

		tenantID := uuid.New()
		propertyID := uuid.New()

		repo.On("FindByIDForTenant", mock.Anything, tenantID, propertyID).Return(nil, shared.ErrNotFound)

		_, err := service.Update(context.Background(), tenantID, propertyID, UpdatePropertyRequest{})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestPropertyService_SetPrice(t *testing.T) {
	t.Run("sets the price", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		storage := new(MockObjectStorage)
		service := NewPropertyService(repo, storage)

		tenantID := uuid.New()
		property := newTestProperty(t, tenantID, "PROP-001")

		repo.On("FindByIDForTenant", mock.Anything, tenantID, property.ID).Return(property, nil)
		repo.On("Save", mock.Anything, property).Return(nil)

		resp, err := service.SetPrice(context.Background(), tenantID, property.ID, SetPriceRequest{
			PriceCHF: decimal.NewFromInt(850000),
		})

		require.NoError(t, err)
		assert.True(t, resp.PriceCHF.Equal(decimal.NewFromInt(850000)))
	})

	t.Run("rejects negative price", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		storage := new(MockObjectStorage)
		service := NewPropertyService(repo, storage)

		tenantID := uuid.New()
		property := newTestProperty(t, tenantID, "PROP-001")

		repo.On("FindByIDForTenant", mock.Anything, tenantID, property.ID).Return(property, nil)

		_, err := service.SetPrice(context.Background(), tenantID, property.ID, SetPriceRequest{
			PriceCHF: decimal.NewFromInt(-1),
		})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestPropertyService_StatusTransitions(t *testing.T) {
	t.Run("activates a draft property", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		storage := new(MockObjectStorage)
		service := NewPropertyService(repo, storage)

		tenantID := uuid.New()
		property := newTestProperty(t, tenantID, "PROP-001")

		repo.On("FindByIDForTenant", mock.Anything, tenantID, property.ID).Return(property, nil)
		repo.On("Save", mock.Anything, property).Return(nil)

		resp, err := service.Activate(context.Background(), tenantID, property.ID)

		require.NoError(t, err)
		assert.Equal(t, "active", resp.Status)
	})

	t.Run("cannot mark a draft property sold", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		storage := new(MockObjectStorage)
		service := NewPropertyService(repo, storage)

		tenantID := uuid.New()
		property := newTestProperty(t, tenantID, "PROP-001")

		repo.On("FindByIDForTenant", mock.Anything, tenantID, property.ID).Return(property, nil)

		_, err := service.MarkSold(context.Background(), tenantID, property.ID)

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("withdraws an active property", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		storage := new(MockObjectStorage)
		service := NewPropertyService(repo, storage)

		tenantID := uuid.New()
		property := newTestProperty(t, tenantID, "PROP-001")
		require.NoError(t, property.Activate())

		repo.On("FindByIDForTenant", mock.Anything, tenantID, property.ID).Return(property, nil)
		repo.On("Save", mock.Anything, property).Return(nil)

		resp, err := service.Withdraw(context.Background(), tenantID, property.ID)

		require.NoError(t, err)
		assert.Equal(t, "withdrawn", resp.Status)
	})
}

func TestPropertyService_List(t *testing.T) {
	t.Run("returns paginated properties", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		storage := new(MockObjectStorage)
		service := NewPropertyService(repo, storage)

		tenantID := uuid.New()
		first := newTestProperty(t, tenantID, "PROP-001")
		second := newTestProperty(t, tenantID, "PROP-002")
		filter := shared.Filter{Page: 1, PageSize: 20}

		repo.On("FindAllForTenant", mock.Anything, tenantID, filter).Return([]listing.Property{*first, *second}, nil)
		repo.On("CountForTenant", mock.Anything, tenantID, filter).Return(int64(2), nil)

		page, err := service.List(context.Background(), tenantID, filter)

		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, int64(2), page.Total)
		assert.Equal(t, 1, page.TotalPages)
	})
}

func TestPropertyService_RequestImageUploadURL(t *testing.T) {
	t.Run("issues a presigned URL under the tenant prefix", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		storage := new(MockObjectStorage)
		service := NewPropertyService(repo, storage)

		tenantID := uuid.New()
		property := newTestProperty(t, tenantID, "PROP-001")
		expiresAt := time.Now().Add(15 * time.Minute)
		expectedKey := tenantID.String() + "/" + property.ID.String() + "/facade.jpg"

		repo.On("FindByIDForTenant", mock.Anything, tenantID, property.ID).Return(property, nil)
		storage.On("GenerateUploadURL", mock.Anything, expectedKey, "image/jpeg", time.Duration(0)).
			Return("https://storage.example.com/presigned", expiresAt, nil)

		resp, err := service.RequestImageUploadURL(context.Background(), tenantID, property.ID, RequestUploadURLRequest{
			FileName:    "facade.jpg",
			ContentType: "image/jpeg",
		})

		require.NoError(t, err)
		assert.Equal(t, "https://storage.example.com/presigned", resp.UploadURL)
		assert.Equal(t, expectedKey, resp.StoragePath)
		assert.Equal(t, expiresAt, resp.ExpiresAt)
		storage.AssertExpectations(t)
	})

	t.Run("strips path components from the file name", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		storage := new(MockObjectStorage)
		service := NewPropertyService(repo, storage)

		tenantID := uuid.New()
		property := newTestProperty(t, tenantID, "PROP-001")
		expectedKey := tenantID.String() + "/" + property.ID.String() + "/facade.jpg"

		repo.On("FindByIDForTenant", mock.Anything, tenantID, property.ID).Return(property, nil)
		storage.On("GenerateUploadURL", mock.Anything, expectedKey, "image/jpeg", time.Duration(0)).
			Return("https://storage.example.com/presigned", time.Now(), nil)

		resp, err := service.RequestImageUploadURL(context.Background(), tenantID, property.ID, RequestUploadURLRequest{
			FileName:    "../../etc/facade.jpg",
			ContentType: "image/jpeg",
		})

		require.NoError(t, err)
		assert.Equal(t, expectedKey, resp.StoragePath)
	})
}

func TestPropertyService_AddImage(t *testing.T) {
	t.Run("attaches an image", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		storage := new(MockObjectStorage)
		service := NewPropertyService(repo, storage)

		tenantID := uuid.New()
		property := newTestProperty(t, tenantID, "PROP-001")

		repo.On("FindByIDForTenant", mock.Anything, tenantID, property.ID).Return(property, nil)
		repo.On("Save", mock.Anything, property).Return(nil)

		resp, err := service.AddImage(context.Background(), tenantID, property.ID, AddImageRequest{
			StoragePath: "tenant/prop/1.jpg",
			Position:    1,
		})

		require.NoError(t, err)
		require.Len(t, resp.Images, 1)
		assert.Equal(t, "tenant/prop/1.jpg", resp.Images[0].StoragePath)
	})
}

func TestPropertyService_RemoveImage(t *testing.T) {
	t.Run("deletes the row and the stored object", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		storage := new(MockObjectStorage)
		service := NewPropertyService(repo, storage)

		tenantID := uuid.New()
		property := newTestProperty(t, tenantID, "PROP-001")
		require.NoError(t, property.AddImage("tenant/prop/1.jpg", 1))
		imageID := property.Images[0].ID

		repo.On("FindByIDForTenant", mock.Anything, tenantID, property.ID).Return(property, nil)
		repo.On("DeleteImage", mock.Anything, property.ID, imageID).Return(nil)
		storage.On("DeleteObject", mock.Anything, "tenant/prop/1.jpg").Return(nil)

		err := service.RemoveImage(context.Background(), tenantID, property.ID, imageID)

		require.NoError(t, err)
		repo.AssertExpectations(t)
		storage.AssertExpectations(t)
	})

	t.Run("returns not found for unknown image", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		storage := new(MockObjectStorage)
		service := NewPropertyService(repo, storage)

		tenantID := uuid.New()
		property := newTestProperty(t, tenantID, "PROP-001")

		repo.On("FindByIDForTenant", mock.Anything, tenantID, property.ID).Return(property, nil)

		err := service.RemoveImage(context.Background(), tenantID, property.ID, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
		repo.AssertNotCalled(t, "DeleteImage")
		storage.AssertNotCalled(t, "DeleteObject")
	})
}
