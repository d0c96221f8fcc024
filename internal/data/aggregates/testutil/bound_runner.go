package testutil

import (
	"context"

	"gorm.io/gorm"

	"github.com/tonearc/catalog-backend/internal/data/aggregates"
	"github.com/tonearc/catalog-backend/internal/platform/dbctx"
)

// BoundTxRunner starts aggregate transactions from a fixed handle. When the
// handle is itself a test transaction, gorm nests via savepoints, so a failed
// aggregate write rolls back without ending the outer test transaction.
type BoundTxRunner struct {
	DB *gorm.DB
}

var _ aggregates.TxRunner = (*BoundTxRunner)(nil)

func (r *BoundTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}
