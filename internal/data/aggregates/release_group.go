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

type ReleaseGroupAggregateDeps struct {
	Base          BaseDeps
	ReleaseGroups repos.ReleaseGroupRepo
}

type releaseGroupAggregate struct {
	deps ReleaseGroupAggregateDeps
	log  *logger.Logger
}

func NewReleaseGroupAggregate(deps ReleaseGroupAggregateDeps) domainagg.ReleaseGroupAggregate {
	log := deps.Base.Log.With("aggregate", "ReleaseGroupAggregate")
	return &releaseGroupAggregate{deps: deps, log: log}
}

func (a *releaseGroupAggregate) Contract() domainagg.Contract {
	return domainagg.ReleaseGroupAggregateContract
}

func (a *releaseGroupAggregate) Create(ctx context.Context, in domainagg.ReleaseGroupUpsertInput) (domainagg.CreateResult, error) {
	const op = "Catalog.ReleaseGroup.Create"
	if err := RequireText(in.Title, "release group title"); err != nil {
		return domainagg.CreateResult{}, MapError(op, err)
	}

	id := ResolveID(in.ID)
	st := NewWriteState()
	err := executeWrite(ctx, a.deps.Base, op, st, func(dbc dbctx.Context) error {
		row := &types.ReleaseGroup{
			ID:             id,
			Title:          in.Title,
			Disambiguation: in.Disambiguation,
			PrimaryType:    in.PrimaryType,
			CreatedAt:      st.Now,
			UpdatedAt:      st.Now,
		}
		if err := a.deps.ReleaseGroups.Insert(dbc, row); err != nil {
			return err
		}
		st.AddRows(1)

		n, err := ReconcileCollection(dbc, st, releaseGroupArtistSpec(id), buildReleaseGroupArtists(id, in.Artists))
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

func (a *releaseGroupAggregate) Update(ctx context.Context, in domainagg.ReleaseGroupUpsertInput) (domainagg.WriteResult, error) {
	const op = "Catalog.ReleaseGroup.Update"
	if err := RequireID(in.ID, "release group"); err != nil {
		return domainagg.WriteResult{}, MapError(op, err)
	}
	if err := RequireText(in.Title, "release group title"); err != nil {
		return domainagg.WriteResult{}, MapError(op, err)
	}

	st := NewWriteState()
	err := executeWrite(ctx, a.deps.Base, op, st, func(dbc dbctx.Context) error {
		n, err := a.deps.ReleaseGroups.UpdateFields(dbc, in.ID, map[string]any{
			"title":          in.Title,
			"disambiguation": in.Disambiguation,
			"primary_type":   in.PrimaryType,
			"updated_at":     st.Now,
		})
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("release group %s: %w", in.ID, gorm.ErrRecordNotFound)
		}
		st.AddRows(n)

		n, err = ReconcileCollection(dbc, st, releaseGroupArtistSpec(in.ID), buildReleaseGroupArtists(in.ID, in.Artists))
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

func (a *releaseGroupAggregate) Delete(ctx context.Context, id uuid.UUID) (domainagg.WriteResult, error) {
	const op = "Catalog.ReleaseGroup.Delete"
	if err := RequireID(id, "release group"); err != nil {
		return domainagg.WriteResult{}, MapError(op, err)
	}

	var deleted int64
	err := executeWrite(ctx, a.deps.Base, op, nil, func(dbc dbctx.Context) error {
		n, err := a.deps.ReleaseGroups.DeleteByID(dbc, id)
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
