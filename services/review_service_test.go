package services

import (
	"context"
	"testing"

	"github.com/nassimidr/Emall/apperrors"
	"github.com/nassimidr/Emall/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) ExistsByProductAndUser(ctx context.Context, productID, userID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, productID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func TestCreateReview(t *testing.T) {
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		reviewRepo := new(MockReviewRepository)
		service := NewReviewService(reviewRepo, new(MockUserRepository))

		reviewRepo.On("ExistsByProductAndUser", mock.Anything, productID, userID).Return(false, nil).Once()
		reviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		// Act
		review, err := service.Create(context.Background(), productID.Hex(), userID.Hex(), 4, "Great scarf")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 4, review.Rating)
		assert.Equal(t, productID, review.ProductID)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("Failure - second review by the same user", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		service := NewReviewService(reviewRepo, new(MockUserRepository))

		reviewRepo.On("ExistsByProductAndUser", mock.Anything, productID, userID).Return(true, nil).Once()

		_, err := service.Create(context.Background(), productID.Hex(), userID.Hex(), 5, "Again")

		assert.ErrorIs(t, err, apperrors.ErrDuplicateReview)
		reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Failure - concurrent duplicate caught by compound index", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		service := NewReviewService(reviewRepo, new(MockUserRepository))

		reviewRepo.On("ExistsByProductAndUser", mock.Anything, productID, userID).Return(false, nil).Once()
		reviewRepo.On("Create", mock.Anything, mock.Anything).Return(mongo.WriteException{
			WriteErrors: mongo.WriteErrors{{Code: 11000}},
		}).Once()

		_, err := service.Create(context.Background(), productID.Hex(), userID.Hex(), 5, "Again")

		assert.ErrorIs(t, err, apperrors.ErrDuplicateReview)
	})

	t.Run("rating out of range fails validation", func(t *testing.T) {
		service := NewReviewService(new(MockReviewRepository), new(MockUserRepository))

		_, err := service.Create(context.Background(), productID.Hex(), userID.Hex(), 0, "Bad")
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		_, err = service.Create(context.Background(), productID.Hex(), userID.Hex(), 6, "Too good")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("blank comment fails validation", func(t *testing.T) {
		service := NewReviewService(new(MockReviewRepository), new(MockUserRepository))

		_, err := service.Create(context.Background(), productID.Hex(), userID.Hex(), 3, "   ")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestListReviewsByProduct(t *testing.T) {
	productID := primitive.NewObjectID()

	t.Run("resolves reviewer identities", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		userRepo := new(MockUserRepository)
		service := NewReviewService(reviewRepo, userRepo)

		knownUser := primitive.NewObjectID()
		goneUser := primitive.NewObjectID()
		reviews := []models.Review{
			{ProductID: productID, UserID: knownUser, Rating: 5, Comment: "Lovely"},
			{ProductID: productID, UserID: goneUser, Rating: 2, Comment: "Meh"},
		}
		reviewRepo.On("FindByProduct", mock.Anything, productID).Return(reviews, nil).Once()
		userRepo.On("FindByIDs", mock.Anything, []primitive.ObjectID{knownUser, goneUser}).
			Return([]models.User{{ID: knownUser, FullName: "Jane", Email: "jane@example.com"}}, nil).Once()

		result, err := service.ListByProduct(context.Background(), productID.Hex())

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, "Jane", result[0].User.FullName)
		// A deleted account degrades to the bare review.
		assert.Nil(t, result[1].User)
	})

	t.Run("no reviews yields an empty slice without a user lookup", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		userRepo := new(MockUserRepository)
		service := NewReviewService(reviewRepo, userRepo)

		reviewRepo.On("FindByProduct", mock.Anything, productID).Return([]models.Review{}, nil).Once()

		result, err := service.ListByProduct(context.Background(), productID.Hex())

		assert.NoError(t, err)
		assert.Empty(t, result)
		userRepo.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
	})

	t.Run("invalid product ID fails validation", func(t *testing.T) {
		service := NewReviewService(new(MockReviewRepository), new(MockUserRepository))

		_, err := service.ListByProduct(context.Background(), "nope")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}
