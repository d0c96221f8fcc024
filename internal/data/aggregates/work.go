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

type WorkAggregateDeps struct {
	Base  BaseDeps
	Works repos.WorkRepo
}

type workAggregate struct {
	deps WorkAggregateDeps
	log  *logger.Logger
}

func NewWorkAggregate(deps WorkAggregateDeps) domainagg.WorkAggregate {
	log := deps.Base.Log.With("aggregate", "WorkAggregate")
	return &workAggregate{deps: deps, log: log}
}

func (a *workAggregate) Contract() domainagg.Contract {
	return domainagg.WorkAggregateContract
}

func (a *workAggregate) Create(ctx context.Context, in domainagg.WorkUpsertInput) (domainagg.CreateResult, error) {
	const op = "Catalog.Work.Create"
	if err := RequireText(in.Title, "work title"); err != nil {
		return domainagg.CreateResult{}, MapError(op, err)
	}

	id := ResolveID(in.ID)
	st := NewWriteState()
	err := executeWrite(ctx, a.deps.Base, op, st, func(dbc dbctx.Context) error {
		row := &types.Work{
			ID:             id,
			Title:          in.Title,
			Disambiguation: in.Disambiguation,
			LyricsLanguage: in.LyricsLanguage,
			CreatedAt:      st.Now,
			UpdatedAt:      st.Now,
		}
		if err := a.deps.Works.Insert(dbc, row); err != nil {
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

func (a *workAggregate) Update(ctx context.Context, in domainagg.WorkUpsertInput) (domainagg.WriteResult, error) {
	const op = "Catalog.Work.Update"
	if err := RequireID(in.ID, "work"); err != nil {
		return domainagg.WriteResult{}, MapError(op, err)
	}
	if err := RequireText(in.Title, "work title"); err != nil {
		return domainagg.WriteResult{}, MapError(op, err)
	}

	st := NewWriteState()
	err := executeWrite(ctx, a.deps.Base, op, st, func(dbc dbctx.Context) error {
		n, err := a.deps.Works.UpdateFields(dbc, in.ID, map[string]any{
			"title":           in.Title,
			"disambiguation":  in.Disambiguation,
			"lyrics_language": in.LyricsLanguage,
			"updated_at":      st.Now,
		})
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("work %s: %w", in.ID, gorm.ErrRecordNotFound)
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

func (a *workAggregate) Delete(ctx context.Context, id uuid.UUID) (domainagg.WriteResult, error) {
	const op = "Catalog.Work.Delete"
	if err := RequireID(id, "work"); err != nil {
		return domainagg.WriteResult{}, MapError(op, err)
	}

	var deleted int64
	err := executeWrite(ctx, a.deps.Base, op, nil, func(dbc dbctx.Context) error {
		n, err := a.deps.Works.DeleteByID(dbc, id)
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

func (a *workAggregate) reconcileChildren(dbc dbctx.Context, st *WriteState, id uuid.UUID, in domainagg.WorkUpsertInput) error {
	n, err := ReconcileCollection(dbc, st, workArtistSpec(id), buildWorkArtists(id, in.Artists))
	if err != nil {
		return err
	}
	st.AddRows(n)

	n, err = ReconcileCollection(dbc, st, workGenreSpec(id), buildWorkGenres(id, in.Genres))
	if err != nil {
		return err
	}
	st.AddRows(n)
	return nil
}
