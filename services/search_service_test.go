package services

import (
	"context"
	"errors"
	"testing"

	"github.com/nassimidr/Emall/apperrors"
	"github.com/nassimidr/Emall/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockMallRepository struct {
	mock.Mock
}

func (m *MockMallRepository) FindAll(ctx context.Context) ([]models.Mall, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Mall), args.Error(1)
}

func (m *MockMallRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Mall, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mall), args.Error(1)
}

func (m *MockMallRepository) Create(ctx context.Context, mall *models.Mall) error {
	args := m.Called(ctx, mall)
	return args.Error(0)
}

func (m *MockMallRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Mall, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mall), args.Error(1)
}

func (m *MockMallRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMallRepository) Search(ctx context.Context, query string) ([]models.Mall, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Mall), args.Error(1)
}

func TestSearch(t *testing.T) {
	t.Run("merges matches from all three collections", func(t *testing.T) {
		// Arrange
		mallRepo := new(MockMallRepository)
		shopRepo := new(MockShopRepository)
		productRepo := new(MockProductRepository)
		service := NewSearchService(mallRepo, shopRepo, productRepo)

		mallRepo.On("Search", mock.Anything, "wool").Return([]models.Mall{{Name: "Wool World"}}, nil).Once()
		shopRepo.On("Search", mock.Anything, "wool").Return([]models.Shop{}, nil).Once()
		productRepo.On("Search", mock.Anything, "wool").
			Return([]models.Product{{Name: "Wool Scarf"}, {Name: "Wool Hat"}}, nil).Once()

		// Act
		result, err := service.Search(context.Background(), "Wool")

		// Assert
		assert.NoError(t, err)
		assert.Len(t, result.Malls, 1)
		assert.Empty(t, result.Shops)
		assert.Len(t, result.Products, 2)
	})

	t.Run("blank query answers empty without touching the store", func(t *testing.T) {
		mallRepo := new(MockMallRepository)
		shopRepo := new(MockShopRepository)
		productRepo := new(MockProductRepository)
		service := NewSearchService(mallRepo, shopRepo, productRepo)

		for _, query := range []string{"", "   ", "\t"} {
			result, err := service.Search(context.Background(), query)

			assert.NoError(t, err)
			assert.NotNil(t, result.Malls)
			assert.Empty(t, result.Malls)
			assert.NotNil(t, result.Shops)
			assert.NotNil(t, result.Products)
		}
		mallRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
		shopRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
		productRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("a failing collection scan fails the whole search", func(t *testing.T) {
		mallRepo := new(MockMallRepository)
		service := NewSearchService(mallRepo, new(MockShopRepository), new(MockProductRepository))

		mallRepo.On("Search", mock.Anything, "wool").Return(nil, errors.New("connection reset")).Once()

		_, err := service.Search(context.Background(), "wool")

		assert.ErrorIs(t, err, apperrors.ErrServerFault)
	})
}
