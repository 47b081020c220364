package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nassimidr/Emall/apperrors"
	"github.com/nassimidr/Emall/models"
	"github.com/nassimidr/Emall/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// TokenGenerator issues signed tokens; satisfied by TokenService.
type TokenGenerator interface {
	Generate(userID, email, role string) (string, error)
}

// AuthService handles registration, login and profile management.
type AuthService interface {
	Register(ctx context.Context, fullName, email, password, role string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID, fullName, email string) (*models.User, error)
}

type authService struct {
	users  repository.UserRepository
	tokens TokenGenerator
}

func NewAuthService(users repository.UserRepository, tokens TokenGenerator) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, fullName, email, password, role string) (*models.User, string, error) {
	email = normalizeEmail(email)
	if role != models.RoleAdmin {
		role = models.RoleUser
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, "", apperrors.ErrDuplicateEmail
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", apperrors.ErrServerFault.Wrap(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperrors.ErrServerFault.Wrap(err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        primitive.NewObjectID(),
		FullName:  strings.TrimSpace(fullName),
		Email:     email,
		Password:  string(hashed),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// The unique index closes the check-then-insert window.
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", apperrors.ErrDuplicateEmail
		}
		return nil, "", apperrors.ErrServerFault.Wrap(err)
	}

	token, err := s.tokens.Generate(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, "", apperrors.ErrServerFault.Wrap(err)
	}
	return user, token, nil
}

// Login deliberately answers with the same error for an unknown email and
// a wrong password, so callers cannot enumerate accounts.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", apperrors.ErrServerFault.Wrap(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, "", apperrors.ErrServerFault.Wrap(err)
	}
	return user, token, nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound.WithMessage("User not found")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound.WithMessage("User not found")
		}
		return nil, apperrors.ErrServerFault.Wrap(err)
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID, fullName, email string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound.WithMessage("User not found")
	}

	updates := bson.M{}
	if fullName != "" {
		updates["fullName"] = strings.TrimSpace(fullName)
	}
	if email != "" {
		email = normalizeEmail(email)
		taken, err := s.users.ExistsByEmailExcluding(ctx, email, id)
		if err != nil {
			return nil, apperrors.ErrServerFault.Wrap(err)
		}
		if taken {
			return nil, apperrors.ErrDuplicateEmail
		}
		updates["email"] = email
	}

	if len(updates) == 0 {
		return s.GetProfile(ctx, userID)
	}

	user, err := s.users.UpdateProfile(ctx, id, updates)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound.WithMessage("User not found")
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, apperrors.ErrServerFault.Wrap(err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
