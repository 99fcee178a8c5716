package mongodb

import (
	"context"
	"log/slog"

	"github.com/shutter-safari/api/internal/domain"
	"github.com/shutter-safari/api/internal/platform/logger"
	"github.com/shutter-safari/api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClassStore implements store.ClassStore on the classes collection.
type MongoClassStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

var _ store.ClassStore = (*MongoClassStore)(nil)

// NewMongoClassStore creates a MongoClassStore.
func NewMongoClassStore(db *mongo.Database, logger *slog.Logger) *MongoClassStore {
	return &MongoClassStore{
		coll:   db.Collection(ClassesCollection),
		logger: logger.With(slog.String("collection", ClassesCollection)),
	}
}

func (s *MongoClassStore) find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]*domain.Class, error) {
	cur, err := s.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, store.NewStoreError(ClassesCollection, "find", "failed to query classes", err)
	}

	classes := make([]*domain.Class, 0)
	if err := cur.All(ctx, &classes); err != nil {
		return nil, store.NewStoreError(ClassesCollection, "find", "failed to decode classes", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("classes found", "count", len(classes))
	return classes, nil
}

// ListByStatus implements store.ClassStore.
func (s *MongoClassStore) ListByStatus(ctx context.Context, status domain.ClassStatus) ([]*domain.Class, error) {
	return s.find(ctx, bson.M{"status": status})
}

// ListAll implements store.ClassStore.
func (s *MongoClassStore) ListAll(ctx context.Context) ([]*domain.Class, error) {
	return s.find(ctx, bson.D{})
}

// ListTopRated implements store.ClassStore.
func (s *MongoClassStore) ListTopRated(ctx context.Context, limit int64) ([]*domain.Class, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "ratings", Value: -1}}).
		SetLimit(limit)
	return s.find(ctx, bson.D{}, opts)
}

// ListByInstructor implements store.ClassStore.
func (s *MongoClassStore) ListByInstructor(ctx context.Context, email string) ([]*domain.Class, error) {
	return s.find(ctx, bson.M{"insEmail": email})
}

// Create implements store.ClassStore.
func (s *MongoClassStore) Create(ctx context.Context, class *domain.Class) (*store.InsertResult, error) {
	res, err := s.coll.InsertOne(ctx, class)
	if err != nil {
		return nil, store.NewStoreError(ClassesCollection, "insert", "failed to insert class", err)
	}

	id, err := insertedID(res)
	if err != nil {
		return nil, err
	}
	class.ID = id
	logger.FromContextOrDefault(ctx, s.logger).Debug("class inserted", "class_id", id.Hex())
	return &store.InsertResult{InsertedID: id}, nil
}
