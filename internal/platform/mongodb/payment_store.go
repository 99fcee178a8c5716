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

// MongoPaymentStore implements store.PaymentStore on the payments collection.
type MongoPaymentStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

var _ store.PaymentStore = (*MongoPaymentStore)(nil)

// NewMongoPaymentStore creates a MongoPaymentStore.
func NewMongoPaymentStore(db *mongo.Database, logger *slog.Logger) *MongoPaymentStore {
	return &MongoPaymentStore{
		coll:   db.Collection(PaymentsCollection),
		logger: logger.With(slog.String("collection", PaymentsCollection)),
	}
}

// Create implements store.PaymentStore.
func (s *MongoPaymentStore) Create(ctx context.Context, payment *domain.Payment) (*store.InsertResult, error) {
	res, err := s.coll.InsertOne(ctx, payment)
	if err != nil {
		return nil, store.NewStoreError(PaymentsCollection, "insert", "failed to insert payment", err)
	}

	id, err := insertedID(res)
	if err != nil {
		return nil, err
	}
	payment.ID = id
	logger.FromContextOrDefault(ctx, s.logger).Debug("payment inserted", "payment_id", id.Hex())
	return &store.InsertResult{InsertedID: id}, nil
}

// ListByDateDesc implements store.PaymentStore.
func (s *MongoPaymentStore) ListByDateDesc(ctx context.Context) ([]*domain.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, store.NewStoreError(PaymentsCollection, "find", "failed to list payments", err)
	}

	payments := make([]*domain.Payment, 0)
	if err := cur.All(ctx, &payments); err != nil {
		return nil, store.NewStoreError(PaymentsCollection, "find", "failed to decode payments", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("payments found", "count", len(payments))
	return payments, nil
}
