package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shutter-safari/api/internal/platform/logger"
	"github.com/shutter-safari/api/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
)

// Transactor implements store.Transactor with client sessions. When
// disabled (standalone deployments) fn runs without a session and each store
// call commits on its own.
type Transactor struct {
	client  *mongo.Client
	enabled bool
	logger  *slog.Logger
}

var _ store.Transactor = (*Transactor)(nil)

// NewTransactor creates a Transactor.
func NewTransactor(client *mongo.Client, enabled bool, logger *slog.Logger) *Transactor {
	return &Transactor{client: client, enabled: enabled, logger: logger}
}

// RunInTransaction executes fn inside a session transaction. Errors returned
// by fn come back unchanged; commit failures wrap store.ErrTransactionFailed.
// The driver retries fn on transient transaction errors.
func (t *Transactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	if !t.enabled {
		return fn(ctx)
	}

	log := logger.FromContextOrDefault(ctx, t.logger)

	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("%w: failed to start session: %v", store.ErrTransactionFailed, err)
	}
	defer session.EndSession(ctx)

	var fnErr error
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		fnErr = fn(sc)
		return nil, fnErr
	})
	if err == nil {
		log.Debug("transaction committed successfully")
		return nil
	}
	if fnErr != nil {
		log.Debug("rolled back transaction due to error", "error", fnErr)
		return fnErr
	}

	log.Error("failed to commit transaction", "error", err)
	return fmt.Errorf("%w: %v", store.ErrTransactionFailed, err)
}
