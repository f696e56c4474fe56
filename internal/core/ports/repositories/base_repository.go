package repositories

import (
	"context"
)

// TransactionManager runs a unit of work in one database transaction.
type TransactionManager interface {
	// WithinTx runs fn in a transaction. Repository calls made with the context handed to fn join
	// it; a non-nil error from fn rolls every one of them back. Nested calls join the outer transaction.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
