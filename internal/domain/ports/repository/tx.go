package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction handle passed through repository methods. The
// concrete type is infra-defined (pgx.Tx for Postgres). Repositories must
// gracefully accept nil (non-transactional path).
type Tx interface{}

// TransactionManager executes a function within a database transaction,
// passing the underlying handle via tx. It keeps use-case interfaces clean:
// no transaction types leak out of the port, and the verify→record→upsert
// sequence of a payment can run as one unit.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
