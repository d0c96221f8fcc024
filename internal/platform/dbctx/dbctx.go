// Package dbctx bundles a request context with the gorm transaction it runs in.
//
// Repos and the reconciliation engine accept a dbctx.Context instead of a bare
// (context.Context, *gorm.DB) pair so that transaction scoping is explicit at
// every call site.
package dbctx

import (
	"context"

	"gorm.io/gorm"
)

type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// DB returns the transaction handle bound to the context, falling back to the
// supplied base handle when no transaction is attached.
func (c Context) DB(fallback *gorm.DB) *gorm.DB {
	db := c.Tx
	if db == nil {
		db = fallback
	}
	if db == nil {
		return nil
	}
	ctx := c.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return db.WithContext(ctx)
}
