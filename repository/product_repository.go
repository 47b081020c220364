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

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByShop(ctx context.Context, shopID string) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	AddNotifyEmail(ctx context.Context, id primitive.ObjectID, email string) error
	DrainNotifyEmails(ctx context.Context, id primitive.ObjectID) ([]string, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
}

// MongoProductRepository implements ProductRepository on the products collection.
type MongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{collection: db.Collection("products")}
}

func (r *MongoProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *MongoProductRepository) FindByShop(ctx context.Context, shopID string) ([]models.Product, error) {
	return r.find(ctx, bson.M{"shopId": shopID})
}

func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

func (r *MongoProductRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Product, error) {
	updates["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// AddNotifyEmail appends an email to the waitlist unless it is already
// there. $addToSet also initializes the array on documents that predate
// the notifyEmails field.
func (r *MongoProductRepository) AddNotifyEmail(ctx context.Context, id primitive.ObjectID, email string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"notifyEmails": email}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DrainNotifyEmails atomically empties the waitlist and returns what it
// held. Two racing restock flips cannot both observe the same addresses.
func (r *MongoProductRepository) DrainNotifyEmails(ctx context.Context, id primitive.ObjectID) ([]string, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var before models.Product
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"notifyEmails": []string{}}},
		opts,
	).Decode(&before)
	if err != nil {
		return nil, err
	}
	return before.NotifyEmails, nil
}

func (r *MongoProductRepository) Search(ctx context.Context, query string) ([]models.Product, error) {
	return r.find(ctx, nameOrDescriptionFilter(query))
}

func (r *MongoProductRepository) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
