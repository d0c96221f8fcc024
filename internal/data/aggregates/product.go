package aggregates

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tonearc/catalog-backend/internal/data/repos"
	types "github.com/tonearc/catalog-backend/internal/domain"
	domainagg "github.com/tonearc/catalog-backend/internal/domain/aggregates"
	"github.com/tonearc/catalog-backend/internal/platform/dbctx"
	"github.com/tonearc/catalog-backend/internal/platform/logger"
)

type ProductAggregateDeps struct {
	Base     BaseDeps
	Products repos.ProductRepo
}

type productAggregate struct {
	deps ProductAggregateDeps
	log  *logger.Logger
}

func NewProductAggregate(deps ProductAggregateDeps) domainagg.ProductAggregate {
	log := deps.Base.Log.With("aggregate", "ProductAggregate")
	return &productAggregate{deps: deps, log: log}
}

func (a *productAggregate) Contract() domainagg.Contract {
	return domainagg.ProductAggregateContract
}

func (a *productAggregate) Create(ctx context.Context, in domainagg.ProductUpsertInput) (domainagg.CreateResult, error) {
	const op = "Catalog.Product.Create"
	if err := RequireText(in.Name, "product name"); err != nil {
		return domainagg.CreateResult{}, MapError(op, err)
	}

	id := ResolveID(in.ID)
	st := NewWriteState()
	err := executeWrite(ctx, a.deps.Base, op, st, func(dbc dbctx.Context) error {
		row := &types.Product{
			ID:          id,
			Name:        in.Name,
			Description: in.Description,
			ProductCode: in.ProductCode,
			Attributes:  attributesJSON(in.Attributes),
			CreatedAt:   st.Now,
			UpdatedAt:   st.Now,
		}
		if err := a.deps.Products.Insert(dbc, row); err != nil {
			return err
		}
		st.AddRows(1)

		n, err := ReconcileCollection(dbc, st, productReleaseSpec(id), buildProductReleases(id, in.Releases))
		if err != nil {
			return err
		}
		st.AddRows(n)
		return nil
	})
	if err != nil {
		return domainagg.CreateResult{}, err
	}
	return domainagg.CreateResult{ID: id, CreatedAt: st.Now, UpdatedAt: st.Now}, nil
}

func (a *productAggregate) Update(ctx context.Context, in domainagg.ProductUpsertInput) (domainagg.WriteResult, error) {
	const op = "Catalog.Product.Update"
	if err := RequireID(in.ID, "product"); err != nil {
		return domainagg.WriteResult{}, MapError(op, err)
	}
	if err := RequireText(in.Name, "product name"); err != nil {
		return domainagg.WriteResult{}, MapError(op, err)
	}

	st := NewWriteState()
	err := executeWrite(ctx, a.deps.Base, op, st, func(dbc dbctx.Context) error {
		n, err := a.deps.Products.UpdateFields(dbc, in.ID, map[string]any{
			"name":         in.Name,
			"description":  in.Description,
			"product_code": in.ProductCode,
			"attributes":   attributesJSON(in.Attributes),
			"updated_at":   st.Now,
		})
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("product %s: %w", in.ID, gorm.ErrRecordNotFound)
		}
		st.AddRows(n)

		n, err = ReconcileCollection(dbc, st, productReleaseSpec(in.ID), buildProductReleases(in.ID, in.Releases))
		if err != nil {
			return err
		}
		st.AddRows(n)
		return nil
	})
	if err != nil {
		if domainagg.IsCode(err, domainagg.CodeNotFound) {
			return domainagg.WriteResult{}, nil
		}
		return domainagg.WriteResult{}, err
	}
	return domainagg.WriteResult{RowsAffected: st.Rows()}, nil
}

func (a *productAggregate) Delete(ctx context.Context, id uuid.UUID) (domainagg.WriteResult, error) {
	const op = "Catalog.Product.Delete"
	if err := RequireID(id, "product"); err != nil {
		return domainagg.WriteResult{}, MapError(op, err)
	}

	var deleted int64
	err := executeWrite(ctx, a.deps.Base, op, nil, func(dbc dbctx.Context) error {
		n, err := a.deps.Products.DeleteByID(dbc, id)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return domainagg.WriteResult{}, err
	}
	return domainagg.WriteResult{RowsAffected: deleted}, nil
}
