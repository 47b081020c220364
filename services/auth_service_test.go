package services

import (
	"context"
	"testing"

	"github.com/nassimidr/Emall/apperrors"
	"github.com/nassimidr/Emall/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// --- Mock Repository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmailExcluding(ctx context.Context, email string, excludeID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.User, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type stubTokenGenerator struct{}

func (stubTokenGenerator) Generate(userID, email, role string) (string, error) {
	return "token-for-" + userID, nil
}

// --- Tests ---

func TestRegister(t *testing.T) {
	t.Run("Success - hashes password and defaults role", func(t *testing.T) {
		// Arrange
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo, stubTokenGenerator{})

		userRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, mongo.ErrNoDocuments).Once()
		userRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		// Act
		user, token, err := service.Register(context.Background(), "Jane Doe", " Jane@Example.com ", "secret123", "")

		// Assert
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
		userRepo.AssertExpectations(t)
	})

	t.Run("Failure - email already registered", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo, stubTokenGenerator{})

		existing := &models.User{ID: primitive.NewObjectID(), Email: "jane@example.com"}
		userRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(existing, nil).Once()

		_, _, err := service.Register(context.Background(), "Jane", "jane@example.com", "secret123", "")

		assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Failure - concurrent duplicate caught by unique index", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo, stubTokenGenerator{})

		userRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, mongo.ErrNoDocuments).Once()
		userRepo.On("Create", mock.Anything, mock.Anything).Return(mongo.WriteException{
			WriteErrors: mongo.WriteErrors{{Code: 11000}},
		}).Once()

		_, _, err := service.Register(context.Background(), "Jane", "jane@example.com", "secret123", "")

		assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
	})

	t.Run("unrecognized role falls back to user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo, stubTokenGenerator{})

		userRepo.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments).Once()
		userRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		user, _, err := service.Register(context.Background(), "Jane", "jane@example.com", "secret123", "superadmin")

		assert.NoError(t, err)
		assert.Equal(t, models.RoleUser, user.Role)
	})
}

func TestLogin(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	account := &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "jane@example.com",
		Password: string(hashed),
		Role:     models.RoleUser,
	}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo, stubTokenGenerator{})

		userRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(account, nil).Once()

		user, token, err := service.Login(context.Background(), "jane@example.com", "secret123")

		assert.NoError(t, err)
		assert.Equal(t, account.Email, user.Email)
		assert.Equal(t, "token-for-"+account.ID.Hex(), token)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo, stubTokenGenerator{})

		userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, mongo.ErrNoDocuments).Once()
		userRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(account, nil).Once()

		_, _, unknownErr := service.Login(context.Background(), "ghost@example.com", "whatever")
		_, _, wrongErr := service.Login(context.Background(), "jane@example.com", "wrongpass")

		assert.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, apperrors.ErrInvalidCredentials)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})
}

func TestUpdateProfile(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("Success - updates name and email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo, stubTokenGenerator{})

		updated := &models.User{ID: userID, FullName: "Jane Smith", Email: "smith@example.com"}
		userRepo.On("ExistsByEmailExcluding", mock.Anything, "smith@example.com", userID).Return(false, nil).Once()
		userRepo.On("UpdateProfile", mock.Anything, userID, bson.M{
			"fullName": "Jane Smith",
			"email":    "smith@example.com",
		}).Return(updated, nil).Once()

		user, err := service.UpdateProfile(context.Background(), userID.Hex(), "Jane Smith", "smith@example.com")

		assert.NoError(t, err)
		assert.Equal(t, "Jane Smith", user.FullName)
		userRepo.AssertExpectations(t)
	})

	t.Run("Failure - email taken by another account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo, stubTokenGenerator{})

		userRepo.On("ExistsByEmailExcluding", mock.Anything, "taken@example.com", userID).Return(true, nil).Once()

		_, err := service.UpdateProfile(context.Background(), userID.Hex(), "", "taken@example.com")

		assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
		userRepo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no fields falls back to current profile", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo, stubTokenGenerator{})

		current := &models.User{ID: userID, FullName: "Jane"}
		userRepo.On("FindByID", mock.Anything, userID).Return(current, nil).Once()

		user, err := service.UpdateProfile(context.Background(), userID.Hex(), "", "")

		assert.NoError(t, err)
		assert.Equal(t, "Jane", user.FullName)
	})
}
