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

type ReleaseAggregateDeps struct {
	Base     BaseDeps
	Releases repos.ReleaseRepo
}

type releaseAggregate struct {
	deps ReleaseAggregateDeps
	log  *logger.Logger
}

func NewReleaseAggregate(deps ReleaseAggregateDeps) domainagg.ReleaseAggregate {
	log := deps.Base.Log.With("aggregate", "ReleaseAggregate")
	return &releaseAggregate{deps: deps, log: log}
}

func (a *releaseAggregate) Contract() domainagg.Contract {
	return domainagg.ReleaseAggregateContract
}

func (a *releaseAggregate) Create(ctx context.Context, in domainagg.ReleaseUpsertInput) (domainagg.CreateResult, error) {
	const op = "Catalog.Release.Create"
	if err := validateReleaseInput(in); err != nil {
		return domainagg.CreateResult{}, MapError(op, err)
	}

	id := ResolveID(in.ID)
	st := NewWriteState()
	err := executeWrite(ctx, a.deps.Base, op, st, func(dbc dbctx.Context) error {
		row := &types.Release{
			ID:             id,
			ReleaseGroupID: in.ReleaseGroupID,
			Title:          in.Title,
			Disambiguation: in.Disambiguation,
			Status:         in.Status,
			Barcode:        in.Barcode,
			CreatedAt:      st.Now,
			UpdatedAt:      st.Now,
		}
		if err := a.deps.Releases.Insert(dbc, row); err != nil {
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

func (a *releaseAggregate) Update(ctx context.Context, in domainagg.ReleaseUpsertInput) (domainagg.WriteResult, error) {
	const op = "Catalog.Release.Update"
	if err := RequireID(in.ID, "release"); err != nil {
		return domainagg.WriteResult{}, MapError(op, err)
	}
	if err := validateReleaseInput(in); err != nil {
		return domainagg.WriteResult{}, MapError(op, err)
	}

	st := NewWriteState()
	err := executeWrite(ctx, a.deps.Base, op, st, func(dbc dbctx.Context) error {
		n, err := a.deps.Releases.UpdateFields(dbc, in.ID, map[string]any{
			"release_group_id": in.ReleaseGroupID,
			"title":            in.Title,
			"disambiguation":   in.Disambiguation,
			"status":           in.Status,
			"barcode":          in.Barcode,
			"updated_at":       st.Now,
		})
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("release %s: %w", in.ID, gorm.ErrRecordNotFound)
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

func (a *releaseAggregate) Delete(ctx context.Context, id uuid.UUID) (domainagg.WriteResult, error) {
	const op = "Catalog.Release.Delete"
	if err := RequireID(id, "release"); err != nil {
		return domainagg.WriteResult{}, MapError(op, err)
	}

	var deleted int64
	err := executeWrite(ctx, a.deps.Base, op, nil, func(dbc dbctx.Context) error {
		n, err := a.deps.Releases.DeleteByID(dbc, id)
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

func (a *releaseAggregate) ReassignWorkRelationshipOrders(ctx context.Context, in domainagg.ReassignOrdersInput) (domainagg.WriteResult, error) {
	const op = "Catalog.Release.ReassignWorkRelationshipOrders"

	st := NewWriteState()
	err := executeWrite(ctx, a.deps.Base, op, st, func(dbc dbctx.Context) error {
		n, err := ReassignSequence(dbc, st, releaseWorkReassignSpec(), in)
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

// reconcileChildren runs the release's collections in dependency order:
// media before tracks so every track lands on a medium present in the
// snapshot, tracks before track credits for the same reason one level down.
func (a *releaseAggregate) reconcileChildren(dbc dbctx.Context, st *WriteState, id uuid.UUID, in domainagg.ReleaseUpsertInput) error {
	n, err := ReconcileCollection(dbc, st, releaseArtistSpec(id), buildReleaseArtists(id, in.Artists))
	if err != nil {
		return err
	}
	st.AddRows(n)

	n, err = ReconcileCollection(dbc, st, releaseGenreSpec(id), buildReleaseGenres(id, in.Genres))
	if err != nil {
		return err
	}
	st.AddRows(n)

	n, err = ReconcileCollection(dbc, st, mediumSpec(id), buildMedia(id, in.Media))
	if err != nil {
		return err
	}
	st.AddRows(n)

	n, err = ReconcileCollection(dbc, st, trackSpec(id), buildTracks(id, in.Tracks))
	if err != nil {
		return err
	}
	st.AddRows(n)

	n, err = ReconcileCollection(dbc, st, trackArtistSpec(id), buildTrackArtists(id, in.TrackArtists))
	if err != nil {
		return err
	}
	st.AddRows(n)

	n, err = ReconcileSymmetric(dbc, st, releaseWorkRelationshipSpec(id), buildReleaseWorkRelationships(id, in.WorkRelationships))
	if err != nil {
		return err
	}
	st.AddRows(n)
	return nil
}

// validateReleaseInput checks the cross-collection structure of the snapshot:
// every track must sit on a submitted medium and every track credit on a
// submitted track.
func validateReleaseInput(in domainagg.ReleaseUpsertInput) error {
	if err := RequireText(in.Title, "release title"); err != nil {
		return err
	}

	media := make(map[int]struct{}, len(in.Media))
	for _, m := range in.Media {
		media[m.Position] = struct{}{}
	}
	tracks := make(map[[2]int]struct{}, len(in.Tracks))
	for _, t := range in.Tracks {
		if _, ok := media[t.MediumPosition]; !ok {
			return ValidationError(fmt.Sprintf("track %d references medium %d absent from snapshot", t.Position, t.MediumPosition))
		}
		tracks[[2]int{t.MediumPosition, t.Position}] = struct{}{}
	}
	for _, credit := range in.TrackArtists {
		if _, ok := tracks[[2]int{credit.MediumPosition, credit.TrackPosition}]; !ok {
			return ValidationError(fmt.Sprintf("track credit references track %d/%d absent from snapshot", credit.MediumPosition, credit.TrackPosition))
		}
	}
	return nil
}
