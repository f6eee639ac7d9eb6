package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

type Tx interface{}

// TransactionManager executes a function inside a database transaction,
// passing the backend's transaction handle through the opaque Tx argument.
// Use-case code never sees concrete transaction types; repositories accept
// a nil Tx for the non-transactional path.
//
// The reconciler relies on this to commit the status swap and its audit
// note atomically.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
