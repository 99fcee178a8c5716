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

// MongoUserStore implements store.UserStore on the users collection.
type MongoUserStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

var _ store.UserStore = (*MongoUserStore)(nil)

// NewMongoUserStore creates a MongoUserStore.
func NewMongoUserStore(db *mongo.Database, logger *slog.Logger) *MongoUserStore {
	return &MongoUserStore{
		coll:   db.Collection(UsersCollection),
		logger: logger.With(slog.String("collection", UsersCollection)),
	}
}

// List implements store.UserStore.
func (s *MongoUserStore) List(ctx context.Context) ([]*domain.User, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, store.NewStoreError(UsersCollection, "find", "failed to list users", err)
	}

	users := make([]*domain.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, store.NewStoreError(UsersCollection, "find", "failed to decode users", err)
	}
	return users, nil
}

// GetByEmail implements store.UserStore.
func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, MapError(err, store.ErrUserNotFound, nil)
	}
	return &user, nil
}

// Create implements store.UserStore.
func (s *MongoUserStore) Create(ctx context.Context, user *domain.User) (*store.InsertResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Debug("user insert rejected by unique email index")
		}
		return nil, MapError(err, store.ErrUserNotFound, store.ErrEmailExists)
	}

	id, err := insertedID(res)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return &store.InsertResult{InsertedID: id}, nil
}

// Upsert implements store.UserStore.
func (s *MongoUserStore) Upsert(
	ctx context.Context,
	id primitive.ObjectID,
	user *domain.User,
) (*store.UpdateResult, error) {
	update := bson.M{
		"$set": bson.M{
			"name":     user.Name,
			"email":    user.Email,
			"photoUrl": user.PhotoURL,
			"role":     user.Role,
		},
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, MapError(err, store.ErrUserNotFound, store.ErrEmailExists)
	}

	result := &store.UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if upserted, ok := res.UpsertedID.(primitive.ObjectID); ok {
		result.UpsertedID = &upserted
	}
	return result, nil
}

// Delete implements store.UserStore.
func (s *MongoUserStore) Delete(ctx context.Context, id primitive.ObjectID) (*store.DeleteResult, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, store.NewStoreError(UsersCollection, "delete", "failed to delete user", err)
	}
	return &store.DeleteResult{DeletedCount: res.DeletedCount}, nil
}

// UpdateRole implements store.UserStore.
func (s *MongoUserStore) UpdateRole(
	ctx context.Context,
	id primitive.ObjectID,
	role domain.Role,
) (*domain.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user domain.User
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}}, opts).
		Decode(&user)
	if err != nil {
		return nil, MapError(err, store.ErrUserNotFound, nil)
	}
	return &user, nil
}
