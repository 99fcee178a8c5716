package mongodb

import (
	"context"
	"log/slog"

	"github.com/shutter-safari/api/internal/domain"
	"github.com/shutter-safari/api/internal/platform/logger"
	"github.com/shutter-safari/api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCartStore implements store.CartStore on the carts collection.
type MongoCartStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

var _ store.CartStore = (*MongoCartStore)(nil)

// NewMongoCartStore creates a MongoCartStore.
func NewMongoCartStore(db *mongo.Database, logger *slog.Logger) *MongoCartStore {
	return &MongoCartStore{
		coll:   db.Collection(CartsCollection),
		logger: logger.With(slog.String("collection", CartsCollection)),
	}
}

// ListByEmail implements store.CartStore.
func (s *MongoCartStore) ListByEmail(ctx context.Context, email string) ([]*domain.CartItem, error) {
	cur, err := s.coll.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, store.NewStoreError(CartsCollection, "find", "failed to list cart items", err)
	}

	items := make([]*domain.CartItem, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, store.NewStoreError(CartsCollection, "find", "failed to decode cart items", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("cart items found", "count", len(items))
	return items, nil
}

// ExistsByClassID implements store.CartStore.
func (s *MongoCartStore) ExistsByClassID(ctx context.Context, classID string) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"classId": classID}, options.Count().SetLimit(1))
	if err != nil {
		return false, store.NewStoreError(CartsCollection, "count", "failed to check cart item", err)
	}
	return n > 0, nil
}

// Create implements store.CartStore.
func (s *MongoCartStore) Create(ctx context.Context, item *domain.CartItem) (*store.InsertResult, error) {
	res, err := s.coll.InsertOne(ctx, item)
	if err != nil {
		return nil, MapError(err, store.ErrCartItemNotFound, store.ErrCartItemExists)
	}

	id, err := insertedID(res)
	if err != nil {
		return nil, err
	}
	item.ID = id
	return &store.InsertResult{InsertedID: id}, nil
}

// Delete implements store.CartStore.
func (s *MongoCartStore) Delete(ctx context.Context, id primitive.ObjectID) (*store.DeleteResult, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, store.NewStoreError(CartsCollection, "delete", "failed to delete cart item", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("cart item delete",
		"cart_item_id", id.Hex(),
		"deleted", res.DeletedCount)
	return &store.DeleteResult{DeletedCount: res.DeletedCount}, nil
}
