package contracts

import "context"

// Transactor runs fn atomically. Repositories called with the ctx passed to
// fn take part in the transaction. fn may run more than once when the store
// retries after a write conflict, so it must not have side effects outside
// the store.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
