package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shutter-safari/api/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	UsersCollection    = "users"
	ClassesCollection  = "classes"
	CartsCollection    = "carts"
	PaymentsCollection = "payments"
)

// Client wraps the driver client and the application database handle.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

// Connect opens a client against cfg.URI using the stable server API and
// verifies the deployment answers a ping.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Client, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo deployment: %w", err)
	}

	logger.Info("MongoDB connection established", "database", cfg.Name)

	return &Client{
		client: client,
		db:     client.Database(cfg.Name),
		logger: logger,
	}, nil
}

// Database returns the application database handle.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Transactor returns a transaction runner bound to this client.
func (c *Client) Transactor(enabled bool) *Transactor {
	return NewTransactor(c.client, enabled, c.logger)
}

// EnsureIndexes creates the indexes the stores query on. The unique email
// index backs the one-user-per-email rule; existing duplicate data makes its
// creation fail, which is logged and tolerated.
func (c *Client) EnsureIndexes(ctx context.Context) {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ClassesCollection: {
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "insEmail", Value: 1}}},
			{Keys: bson.D{{Key: "ratings", Value: -1}}},
		},
		CartsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
			{Keys: bson.D{{Key: "classId", Value: 1}}},
		},
		PaymentsCollection: {
			{Keys: bson.D{{Key: "date", Value: -1}}},
		},
	}

	for coll, models := range indexes {
		names, err := c.db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			c.logger.Warn("failed to create indexes",
				"collection", coll,
				"error", err)
			continue
		}
		c.logger.Debug("indexes ensured", "collection", coll, "indexes", names)
	}
}

// Ping checks that the deployment is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (c *Client) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect mongo client: %w", err)
	}
	return nil
}
