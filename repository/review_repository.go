package repository

import (
	"context"

	"github.com/nassimidr/Emall/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	FindByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error)
	ExistsByProductAndUser(ctx context.Context, productID, userID primitive.ObjectID) (bool, error)
	Create(ctx context.Context, review *models.Review) error
}

// MongoReviewRepository implements ReviewRepository on the reviews collection.
type MongoReviewRepository struct {
	collection *mongo.Collection
}

func NewMongoReviewRepository(db *mongo.Database) *MongoReviewRepository {
	return &MongoReviewRepository{collection: db.Collection("reviews")}
}

// FindByProduct returns the product's reviews newest first.
func (r *MongoReviewRepository) FindByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"productId": productID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *MongoReviewRepository) ExistsByProductAndUser(ctx context.Context, productID, userID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"productId": productID, "userId": userID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MongoReviewRepository) Create(ctx context.Context, review *models.Review) error {
	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}
	return nil
}
