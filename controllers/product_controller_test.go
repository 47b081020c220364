package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nassimidr/Emall/apperrors"
	"github.com/nassimidr/Emall/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Mock Service ---

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) ListByShop(ctx context.Context, shopID string) ([]models.Product, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, fields bson.M) (*models.Product, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id string, updates bson.M) (*models.Product, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductService) Subscribe(ctx context.Context, id, email string) error {
	args := m.Called(ctx, id, email)
	return args.Error(0)
}

func (m *MockProductService) Notifications(ctx context.Context, id string) ([]models.NotificationLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NotificationLog), args.Error(1)
}

func newProductRouter(service *MockProductService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewProductController(service, NewCacheManager(nil))
	router := gin.New()
	router.GET("/products", controller.GetProducts)
	router.GET("/products/:id", controller.GetProductByID)
	router.PUT("/products/:id", controller.UpdateProduct)
	router.POST("/products/:id/notify-when-in-stock", controller.Subscribe)
	return router
}

// --- Tests ---

func TestGetProducts(t *testing.T) {
	t.Run("Success - 200 OK", func(t *testing.T) {
		// Arrange
		mockService := new(MockProductService)
		mockService.On("List", mock.Anything).
			Return([]models.Product{{Name: "Wool Scarf", Price: 25}}, nil).Once()
		router := newProductRouter(mockService)

		req, _ := http.NewRequest(http.MethodGet, "/products", nil)
		recorder := httptest.NewRecorder()

		// Act
		router.ServeHTTP(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Wool Scarf")
		mockService.AssertExpectations(t)
	})
}

func TestGetProductByID(t *testing.T) {
	t.Run("Failure - unknown product - 404", func(t *testing.T) {
		mockService := new(MockProductService)
		id := primitive.NewObjectID().Hex()
		mockService.On("Get", mock.Anything, id).
			Return(nil, apperrors.ErrNotFound.WithMessage("Product not found")).Once()
		router := newProductRouter(mockService)

		req, _ := http.NewRequest(http.MethodGet, "/products/"+id, nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Product not found")
	})
}

func TestUpdateProductController(t *testing.T) {
	t.Run("Success - 200 OK", func(t *testing.T) {
		mockService := new(MockProductService)
		id := primitive.NewObjectID()
		updated := &models.Product{ID: id, Name: "Wool Scarf", InStock: true, NotifyEmails: []string{}}
		mockService.On("Update", mock.Anything, id.Hex(), bson.M{"inStock": true}).
			Return(updated, nil).Once()
		router := newProductRouter(mockService)

		req, _ := http.NewRequest(http.MethodPut, "/products/"+id.Hex(), bytes.NewBufferString(`{"inStock": true}`))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"inStock":true`)
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - empty body - 400", func(t *testing.T) {
		mockService := new(MockProductService)
		id := primitive.NewObjectID().Hex()
		mockService.On("Update", mock.Anything, id, bson.M{}).
			Return(nil, apperrors.ErrValidation.WithMessage("No update fields provided")).Once()
		router := newProductRouter(mockService)

		req, _ := http.NewRequest(http.MethodPut, "/products/"+id, bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestSubscribeController(t *testing.T) {
	t.Run("Success - 200 OK", func(t *testing.T) {
		mockService := new(MockProductService)
		id := primitive.NewObjectID().Hex()
		mockService.On("Subscribe", mock.Anything, id, "jane@example.com").Return(nil).Once()
		router := newProductRouter(mockService)

		req, _ := http.NewRequest(http.MethodPost, "/products/"+id+"/notify-when-in-stock",
			bytes.NewBufferString(`{"email": "jane@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Restock reminder registered")
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - malformed email - 400 without touching the service", func(t *testing.T) {
		mockService := new(MockProductService)
		id := primitive.NewObjectID().Hex()
		router := newProductRouter(mockService)

		req, _ := http.NewRequest(http.MethodPost, "/products/"+id+"/notify-when-in-stock",
			bytes.NewBufferString(`{"email": "not-an-email"}`))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockService.AssertNotCalled(t, "Subscribe", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - unknown product - 404", func(t *testing.T) {
		mockService := new(MockProductService)
		id := primitive.NewObjectID().Hex()
		mockService.On("Subscribe", mock.Anything, id, "jane@example.com").
			Return(apperrors.ErrNotFound.WithMessage("Product not found")).Once()
		router := newProductRouter(mockService)

		req, _ := http.NewRequest(http.MethodPost, "/products/"+id+"/notify-when-in-stock",
			bytes.NewBufferString(`{"email": "jane@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
