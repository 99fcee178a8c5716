package store

import "context"

// TxFn is a function that executes within a transaction. Store calls made
// with the ctx it receives take part in the transaction.
type TxFn func(ctx context.Context) error

// Transactor runs a TxFn atomically where the backing store supports it.
// Implementations without transaction support run fn directly, so callers
// must not rely on rollback for correctness.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn TxFn) error
}
