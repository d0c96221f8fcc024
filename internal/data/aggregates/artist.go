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

type ArtistAggregateDeps struct {
	Base    BaseDeps
	Artists repos.ArtistRepo
}

type artistAggregate struct {
	deps ArtistAggregateDeps
	log  *logger.Logger
}

func NewArtistAggregate(deps ArtistAggregateDeps) domainagg.ArtistAggregate {
	log := deps.Base.Log.With("aggregate", "ArtistAggregate")
	return &artistAggregate{deps: deps, log: log}
}

func (a *artistAggregate) Contract() domainagg.Contract {
	return domainagg.ArtistAggregateContract
}

func (a *artistAggregate) Create(ctx context.Context, in domainagg.ArtistUpsertInput) (domainagg.CreateResult, error) {
	const op = "Catalog.Artist.Create"
	if err := RequireText(in.Name, "artist name"); err != nil {
		return domainagg.CreateResult{}, MapError(op, err)
	}

	id := ResolveID(in.ID)
	st := NewWriteState()
	err := executeWrite(ctx, a.deps.Base, op, st, func(dbc dbctx.Context) error {
		row := &types.Artist{
			ID:             id,
			Name:           in.Name,
			SortName:       in.SortName,
			Disambiguation: in.Disambiguation,
			Aliases:        aliasJSON(in.Aliases),
			Ended:          in.Ended,
			CreatedAt:      st.Now,
			UpdatedAt:      st.Now,
		}
		if err := a.deps.Artists.Insert(dbc, row); err != nil {
			return err
		}
		st.AddRows(1)
		return a.reconcileChildren(dbc, st, id, in)
	})
	if err != nil {
		return domainagg.CreateResult{}, err
	}
	return domainagg.CreateResult{ID: id, CreatedAt: st.Now, UpdatedAt: st.Now}, nil
}

func (a *artistAggregate) Update(ctx context.Context, in domainagg.ArtistUpsertInput) (domainagg.WriteResult, error) {
	const op = "Catalog.Artist.Update"
	if err := RequireID(in.ID, "artist"); err != nil {
		return domainagg.WriteResult{}, MapError(op, err)
	}
	if err := RequireText(in.Name, "artist name"); err != nil {
		return domainagg.WriteResult{}, MapError(op, err)
	}

	st := NewWriteState()
	err := executeWrite(ctx, a.deps.Base, op, st, func(dbc dbctx.Context) error {
		n, err := a.deps.Artists.UpdateFields(dbc, in.ID, map[string]any{
			"name":           in.Name,
			"sort_name":      in.SortName,
			"disambiguation": in.Disambiguation,
			"aliases":        aliasJSON(in.Aliases),
			"ended":          in.Ended,
			"updated_at":     st.Now,
		})
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("artist %s: %w", in.ID, gorm.ErrRecordNotFound)
		}
		st.AddRows(n)
		return a.reconcileChildren(dbc, st, in.ID, in)
	})
	if err != nil {
		if domainagg.IsCode(err, domainagg.CodeNotFound) {
			return domainagg.WriteResult{}, nil
		}
		return domainagg.WriteResult{}, err
	}
	return domainagg.WriteResult{RowsAffected: st.Rows()}, nil
}

func (a *artistAggregate) Delete(ctx context.Context, id uuid.UUID) (domainagg.WriteResult, error) {
	const op = "Catalog.Artist.Delete"
	if err := RequireID(id, "artist"); err != nil {
		return domainagg.WriteResult{}, MapError(op, err)
	}

	var deleted int64
	err := executeWrite(ctx, a.deps.Base, op, nil, func(dbc dbctx.Context) error {
		n, err := a.deps.Artists.DeleteByID(dbc, id)
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

func (a *artistAggregate) ReassignRelationshipOrders(ctx context.Context, in domainagg.ReassignOrdersInput) (domainagg.WriteResult, error) {
	const op = "Catalog.Artist.ReassignRelationshipOrders"

	st := NewWriteState()
	err := executeWrite(ctx, a.deps.Base, op, st, func(dbc dbctx.Context) error {
		n, err := ReassignSequence(dbc, st, artistRelationshipReassignSpec(), in)
		if err != nil {
			return err
		}
		st.AddRows(n)
		return nil
	})
	if err != nil {
		return domainagg.WriteResult{}, err
	}
	return domainagg.WriteResult{RowsAffected: st.Rows()}, nil
}

func (a *artistAggregate) reconcileChildren(dbc dbctx.Context, st *WriteState, id uuid.UUID, in domainagg.ArtistUpsertInput) error {
	n, err := ReconcileCollection(dbc, st, artistGenreSpec(id), buildArtistGenres(id, in.Genres))
	if err != nil {
		return err
	}
	st.AddRows(n)

	n, err = ReconcileSymmetric(dbc, st, artistRelationshipSpec(id), buildArtistRelationships(id, in.Relationships))
	if err != nil {
		return err
	}
	st.AddRows(n)
	return nil
}
