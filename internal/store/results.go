package store

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InsertResult reports the id assigned to a new document.
type InsertResult struct {
	InsertedID primitive.ObjectID `json:"insertedId"`
}

// UpdateResult reports the outcome of an update or upsert.
type UpdateResult struct {
	MatchedCount  int64               `json:"matchedCount"`
	ModifiedCount int64               `json:"modifiedCount"`
	UpsertedCount int64               `json:"upsertedCount"`
	UpsertedID    *primitive.ObjectID `json:"upsertedId"`
}

// DeleteResult reports how many documents a delete removed.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
