package repository

import (
	"context"
	"regexp"

	"github.com/nassimidr/Emall/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MallRepository defines the interface for mall data access.
type MallRepository interface {
	FindAll(ctx context.Context) ([]models.Mall, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Mall, error)
	Create(ctx context.Context, mall *models.Mall) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Mall, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	Search(ctx context.Context, query string) ([]models.Mall, error)
}

// MongoMallRepository implements MallRepository on the malls collection.
type MongoMallRepository struct {
	collection *mongo.Collection
}

func NewMongoMallRepository(db *mongo.Database) *MongoMallRepository {
	return &MongoMallRepository{collection: db.Collection("malls")}
}

func (r *MongoMallRepository) FindAll(ctx context.Context) ([]models.Mall, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	malls := []models.Mall{}
	if err := cursor.All(ctx, &malls); err != nil {
		return nil, err
	}
	return malls, nil
}

func (r *MongoMallRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Mall, error) {
	var mall models.Mall
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&mall)
	if err != nil {
		return nil, err
	}
	return &mall, nil
}

func (r *MongoMallRepository) Create(ctx context.Context, mall *models.Mall) error {
	result, err := r.collection.InsertOne(ctx, mall)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		mall.ID = oid
	}
	return nil
}

func (r *MongoMallRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Mall, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mall models.Mall
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&mall)
	if err != nil {
		return nil, err
	}
	return &mall, nil
}

func (r *MongoMallRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *MongoMallRepository) Search(ctx context.Context, query string) ([]models.Mall, error) {
	cursor, err := r.collection.Find(ctx, nameOrDescriptionFilter(query))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	malls := []models.Mall{}
	if err := cursor.All(ctx, &malls); err != nil {
		return nil, err
	}
	return malls, nil
}

// nameOrDescriptionFilter matches a case-insensitive substring of either
// field. The query is quoted so user input cannot act as a pattern.
func nameOrDescriptionFilter(query string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"description": pattern},
	}}
}
