package services

import (
	"context"
	"strings"
	"time"

	"github.com/nassimidr/Emall/apperrors"
	"github.com/nassimidr/Emall/models"
	"github.com/nassimidr/Emall/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReviewService handles review creation and reads. Reviews are append-only.
type ReviewService interface {
	ListByProduct(ctx context.Context, productID string) ([]models.ReviewWithUser, error)
	Create(ctx context.Context, productID, userID string, rating int, comment string) (*models.Review, error)
}

type reviewService struct {
	reviews repository.ReviewRepository
	users   repository.UserRepository
}

func NewReviewService(reviews repository.ReviewRepository, users repository.UserRepository) ReviewService {
	return &reviewService{reviews: reviews, users: users}
}

// ListByProduct returns the product's reviews newest first, with each
// reviewer's public name and email resolved. An unresolvable reviewer
// degrades to the bare review.
func (s *reviewService) ListByProduct(ctx context.Context, productID string) ([]models.ReviewWithUser, error) {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, apperrors.ErrValidation.WithMessage("Invalid product ID")
	}

	reviews, err := s.reviews.FindByProduct(ctx, pid)
	if err != nil {
		return nil, apperrors.ErrServerFault.Wrap(err)
	}
	if len(reviews) == 0 {
		return []models.ReviewWithUser{}, nil
	}

	seen := map[primitive.ObjectID]bool{}
	userIDs := []primitive.ObjectID{}
	for _, review := range reviews {
		if !seen[review.UserID] {
			seen[review.UserID] = true
			userIDs = append(userIDs, review.UserID)
		}
	}

	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, apperrors.ErrServerFault.Wrap(err)
	}
	byID := make(map[primitive.ObjectID]models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	result := make([]models.ReviewWithUser, 0, len(reviews))
	for _, review := range reviews {
		entry := models.ReviewWithUser{Review: review}
		if user, ok := byID[review.UserID]; ok {
			entry.User = &models.Reviewer{ID: user.ID, FullName: user.FullName, Email: user.Email}
		}
		result = append(result, entry)
	}
	return result, nil
}

func (s *reviewService) Create(ctx context.Context, productID, userID string, rating int, comment string) (*models.Review, error) {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, apperrors.ErrValidation.WithMessage("Invalid product ID")
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.ErrValidation.WithMessage("Invalid user ID")
	}
	if rating < 1 || rating > 5 {
		return nil, apperrors.ErrValidation.WithMessage("Rating must be between 1 and 5")
	}
	if strings.TrimSpace(comment) == "" {
		return nil, apperrors.ErrValidation.WithMessage("Rating and comment are required")
	}

	exists, err := s.reviews.ExistsByProductAndUser(ctx, pid, uid)
	if err != nil {
		return nil, apperrors.ErrServerFault.Wrap(err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateReview
	}

	review := &models.Review{
		ProductID: pid,
		UserID:    uid,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		// The compound unique index catches concurrent double submissions.
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrDuplicateReview
		}
		return nil, apperrors.ErrServerFault.Wrap(err)
	}
	return review, nil
}
