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

// ShopRepository defines the interface for shop data access.
type ShopRepository interface {
	FindAll(ctx context.Context) ([]models.Shop, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Shop, error)
	FindByMall(ctx context.Context, mallID primitive.ObjectID) ([]models.Shop, error)
	FindByName(ctx context.Context, name string) (*models.Shop, error)
	Create(ctx context.Context, shop *models.Shop) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Shop, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	Search(ctx context.Context, query string) ([]models.Shop, error)
}

// MongoShopRepository implements ShopRepository on the shops collection.
type MongoShopRepository struct {
	collection *mongo.Collection
}

func NewMongoShopRepository(db *mongo.Database) *MongoShopRepository {
	return &MongoShopRepository{collection: db.Collection("shops")}
}

func (r *MongoShopRepository) FindAll(ctx context.Context) ([]models.Shop, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoShopRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Shop, error) {
	var shop models.Shop
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&shop)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *MongoShopRepository) FindByMall(ctx context.Context, mallID primitive.ObjectID) ([]models.Shop, error) {
	return r.find(ctx, bson.M{"mallId": mallID})
}

// FindByName matches the shop name exactly, ignoring case.
func (r *MongoShopRepository) FindByName(ctx context.Context, name string) (*models.Shop, error) {
	pattern := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}

	var shop models.Shop
	err := r.collection.FindOne(ctx, bson.M{"name": pattern}).Decode(&shop)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *MongoShopRepository) Create(ctx context.Context, shop *models.Shop) error {
	result, err := r.collection.InsertOne(ctx, shop)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		shop.ID = oid
	}
	return nil
}

func (r *MongoShopRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Shop, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var shop models.Shop
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&shop)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *MongoShopRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *MongoShopRepository) Search(ctx context.Context, query string) ([]models.Shop, error) {
	return r.find(ctx, nameOrDescriptionFilter(query))
}

func (r *MongoShopRepository) find(ctx context.Context, filter bson.M) ([]models.Shop, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	shops := []models.Shop{}
	if err := cursor.All(ctx, &shops); err != nil {
		return nil, err
	}
	return shops, nil
}
