package mongodb

import (
	"errors"
	"fmt"

	"github.com/shutter-safari/api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MapError maps a driver error onto the store error taxonomy, wrapping the
// original so the cause stays visible in logs. notFound is the entity
// specific not-found error to use for mongo.ErrNoDocuments; duplicate is used
// for duplicate key errors.
func MapError(err error, notFound, duplicate error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		if notFound == nil {
			notFound = store.ErrNotFound
		}
		return fmt.Errorf("%w: %v", notFound, err)
	}

	if mongo.IsDuplicateKeyError(err) {
		if duplicate == nil {
			duplicate = store.ErrDuplicate
		}
		return fmt.Errorf("%w: %v", duplicate, err)
	}

	return err
}

// insertedID extracts the ObjectID the driver assigned on insert.
func insertedID(res *mongo.InsertOneResult) (primitive.ObjectID, error) {
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}
