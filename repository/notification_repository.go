package repository

import (
	"context"
	"time"

	"github.com/nassimidr/Emall/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository records restock send attempts.
type NotificationRepository interface {
	SaveLog(ctx context.Context, log *models.NotificationLog) error
	FindByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.NotificationLog, error)
}

// MongoNotificationRepository implements NotificationRepository on the
// notifications collection.
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

func (r *MongoNotificationRepository) SaveLog(ctx context.Context, log *models.NotificationLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, log)
	return err
}

func (r *MongoNotificationRepository) FindByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.NotificationLog, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"productId": productID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []models.NotificationLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
