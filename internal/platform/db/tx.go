package db

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type contextKey string

// TxKey carries the active transaction on a request context. Repositories
// route their statements through it so a read-check-write sequence executes
// as one unit of work.
const TxKey contextKey = "db_tx"

// WithTx returns a context carrying tx.
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, TxKey, tx)
}

// TxFromContext retrieves the active transaction from context, or nil.
func TxFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(TxKey).(pgx.Tx)
	return tx
}
