package aggregates_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tonearc/catalog-backend/internal/data/aggregates"
	aggtestutil "github.com/tonearc/catalog-backend/internal/data/aggregates/testutil"
	"github.com/tonearc/catalog-backend/internal/data/repos/catalog"
	repotestutil "github.com/tonearc/catalog-backend/internal/data/repos/testutil"
	types "github.com/tonearc/catalog-backend/internal/domain"
	domainagg "github.com/tonearc/catalog-backend/internal/domain/aggregates"
)

type releaseHarness struct {
	ctx context.Context
	tx  *gorm.DB
	agg domainagg.ReleaseAggregate
}

func newReleaseHarness(t *testing.T) *releaseHarness {
	t.Helper()
	db := repotestutil.DB(t)
	tx := repotestutil.Tx(t, db)
	log := repotestutil.Logger(t)
	agg := aggregates.NewReleaseAggregate(aggregates.ReleaseAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:     tx,
			Log:    log,
			Runner: &aggtestutil.BoundTxRunner{DB: tx},
		},
		Releases: catalog.NewReleaseRepo(tx, log),
	})
	return &releaseHarness{ctx: context.Background(), tx: tx, agg: agg}
}

func (h *releaseHarness) tracks(t *testing.T, releaseID uuid.UUID) []types.Track {
	t.Helper()
	var rows []types.Track
	err := h.tx.
		Where("release_id = ?", releaseID).
		Order("medium_position ASC, position ASC").
		Find(&rows).Error
	if err != nil {
		t.Fatalf("load tracks: %v", err)
	}
	return rows
}

func (h *releaseHarness) workRelationships(t *testing.T, releaseID uuid.UUID) []types.ReleaseWorkRelationship {
	t.Helper()
	var rows []types.ReleaseWorkRelationship
	if err := h.tx.Where("release_id = ?", releaseID).Order("position ASC").Find(&rows).Error; err != nil {
		t.Fatalf("load work relationships: %v", err)
	}
	return rows
}

func (h *releaseHarness) count(t *testing.T, model any, releaseID uuid.UUID) int64 {
	t.Helper()
	var n int64
	if err := h.tx.Model(model).Where("release_id = ?", releaseID).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func fullReleaseInput(artistID, genreID, workID uuid.UUID) domainagg.ReleaseUpsertInput {
	return domainagg.ReleaseUpsertInput{
		Title:  "Night Drive",
		Status: "official",
		Artists: []domainagg.ArtistCreditInput{
			{ArtistID: artistID, CreditedAs: "The Drivers", Position: 0},
		},
		Genres: []domainagg.GenreInput{
			{GenreID: genreID, Position: 0},
		},
		Media: []domainagg.MediumInput{
			{Position: 0, Format: "CD"},
			{Position: 1, Format: "CD", Title: "Bonus Disc"},
		},
		Tracks: []domainagg.TrackInput{
			{MediumPosition: 0, Position: 0, Title: "Opener", LengthMS: 201000, WorkID: &workID},
			{MediumPosition: 0, Position: 1, Title: "Second", LengthMS: 185000},
			{MediumPosition: 1, Position: 0, Title: "Bonus", LengthMS: 240000},
		},
		TrackArtists: []domainagg.TrackArtistInput{
			{MediumPosition: 0, TrackPosition: 0, ArtistID: artistID, CreditedAs: "The Drivers", Position: 0},
		},
		WorkRelationships: []domainagg.RelationshipInput{
			{TargetID: workID, Name: "performance of", Position: 0},
		},
	}
}

func TestReleaseCreateFullGraph(t *testing.T) {
	h := newReleaseHarness(t)
	artist := repotestutil.SeedArtist(t, h.ctx, h.tx, "The Drivers")
	genre := repotestutil.SeedGenre(t, h.ctx, h.tx, "Synthwave")
	work := repotestutil.SeedWork(t, h.ctx, h.tx, "Opener (composition)")

	res, err := h.agg.Create(h.ctx, fullReleaseInput(artist.ID, genre.ID, work.ID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if n := h.count(t, &types.Medium{}, res.ID); n != 2 {
		t.Fatalf("expected 2 media, got %d", n)
	}
	if n := h.count(t, &types.ReleaseArtist{}, res.ID); n != 1 {
		t.Fatalf("expected 1 artist credit, got %d", n)
	}
	if n := h.count(t, &types.TrackArtist{}, res.ID); n != 1 {
		t.Fatalf("expected 1 track credit, got %d", n)
	}

	tracks := h.tracks(t, res.ID)
	if len(tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(tracks))
	}
	// Position 0 exists independently on both media.
	if tracks[0].MediumPosition != 0 || tracks[0].Position != 0 {
		t.Fatalf("unexpected first track %+v", tracks[0])
	}
	if tracks[2].MediumPosition != 1 || tracks[2].Position != 0 {
		t.Fatalf("unexpected bonus track %+v", tracks[2])
	}
	if tracks[0].WorkID == nil || *tracks[0].WorkID != work.ID {
		t.Fatalf("opener should link its work, got %+v", tracks[0].WorkID)
	}

	rels := h.workRelationships(t, res.ID)
	if len(rels) != 1 || rels[0].ReferencePosition != 0 {
		t.Fatalf("expected one work relationship at reference 0, got %+v", rels)
	}
}

func TestReleaseUpdateReplacesTracks(t *testing.T) {
	h := newReleaseHarness(t)
	artist := repotestutil.SeedArtist(t, h.ctx, h.tx, "Replacers")
	genre := repotestutil.SeedGenre(t, h.ctx, h.tx, "Vaporwave")
	work := repotestutil.SeedWork(t, h.ctx, h.tx, "Replaced Work")

	in := fullReleaseInput(artist.ID, genre.ID, work.ID)
	created, err := h.agg.Create(h.ctx, in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	keptID := h.tracks(t, created.ID)[0].ID

	// Retitle the first track, drop the bonus disc entirely, append a track.
	in.ID = created.ID
	in.Media = in.Media[:1]
	in.Tracks = []domainagg.TrackInput{
		{MediumPosition: 0, Position: 0, Title: "Opener (remaster)", LengthMS: 201000, WorkID: &work.ID},
		{MediumPosition: 0, Position: 1, Title: "Second", LengthMS: 185000},
		{MediumPosition: 0, Position: 2, Title: "Closer", LengthMS: 199000},
	}
	if _, err := h.agg.Update(h.ctx, in); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if n := h.count(t, &types.Medium{}, created.ID); n != 1 {
		t.Fatalf("expected 1 medium after replace, got %d", n)
	}
	tracks := h.tracks(t, created.ID)
	if len(tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(tracks))
	}
	if tracks[0].ID != keptID || tracks[0].Title != "Opener (remaster)" {
		t.Fatalf("matched track should keep id and take new title, got %+v", tracks[0])
	}
	if tracks[2].Title != "Closer" {
		t.Fatalf("expected appended closer, got %+v", tracks[2])
	}
}

func TestReleaseRejectsTrackWithoutMedium(t *testing.T) {
	h := newReleaseHarness(t)
	_, err := h.agg.Create(h.ctx, domainagg.ReleaseUpsertInput{
		Title: "Broken",
		Media: []domainagg.MediumInput{{Position: 0, Format: "CD"}},
		Tracks: []domainagg.TrackInput{
			{MediumPosition: 5, Position: 0, Title: "Orphan"},
		},
	})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReleaseRejectsCreditWithoutTrack(t *testing.T) {
	h := newReleaseHarness(t)
	artist := repotestutil.SeedArtist(t, h.ctx, h.tx, "Creditless")
	_, err := h.agg.Create(h.ctx, domainagg.ReleaseUpsertInput{
		Title: "Broken Credits",
		Media: []domainagg.MediumInput{{Position: 0, Format: "CD"}},
		Tracks: []domainagg.TrackInput{
			{MediumPosition: 0, Position: 0, Title: "Only Track"},
		},
		TrackArtists: []domainagg.TrackArtistInput{
			{MediumPosition: 0, TrackPosition: 9, ArtistID: artist.ID, Position: 0},
		},
	})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReleaseWorkReferenceSequence(t *testing.T) {
	h := newReleaseHarness(t)
	work := repotestutil.SeedWork(t, h.ctx, h.tx, "Shared Work")

	first, err := h.agg.Create(h.ctx, domainagg.ReleaseUpsertInput{
		Title:             "First Pressing",
		WorkRelationships: []domainagg.RelationshipInput{{TargetID: work.ID, Name: "performance of", Position: 0}},
	})
	if err != nil {
		t.Fatalf("create first release: %v", err)
	}
	second, err := h.agg.Create(h.ctx, domainagg.ReleaseUpsertInput{
		Title:             "Second Pressing",
		WorkRelationships: []domainagg.RelationshipInput{{TargetID: work.ID, Name: "performance of", Position: 0}},
	})
	if err != nil {
		t.Fatalf("create second release: %v", err)
	}

	if got := h.workRelationships(t, first.ID)[0].ReferencePosition; got != 0 {
		t.Fatalf("first release should hold reference 0, got %d", got)
	}
	if got := h.workRelationships(t, second.ID)[0].ReferencePosition; got != 1 {
		t.Fatalf("second release should hold reference 1, got %d", got)
	}

	// Reorder the work-side sequence explicitly.
	res, err := h.agg.ReassignWorkRelationshipOrders(h.ctx, domainagg.ReassignOrdersInput{
		Sequence: domainagg.SequenceReferencePosition,
		Rows: []domainagg.RelationshipOrderInput{
			{OwnerID: first.ID, TargetID: work.ID, Value: 1},
			{OwnerID: second.ID, TargetID: work.ID, Value: 0},
		},
	})
	if err != nil {
		t.Fatalf("reassign failed: %v", err)
	}
	if res.RowsAffected != 2 {
		t.Fatalf("expected 2 rows affected, got %d", res.RowsAffected)
	}
	if got := h.workRelationships(t, first.ID)[0].ReferencePosition; got != 1 {
		t.Fatalf("first release should now hold reference 1, got %d", got)
	}
}

func TestReleaseReassignRejectsDuplicateReferenceValues(t *testing.T) {
	h := newReleaseHarness(t)
	work := repotestutil.SeedWork(t, h.ctx, h.tx, "Collision Work")

	first, err := h.agg.Create(h.ctx, domainagg.ReleaseUpsertInput{
		Title:             "A",
		WorkRelationships: []domainagg.RelationshipInput{{TargetID: work.ID, Name: "performance of", Position: 0}},
	})
	if err != nil {
		t.Fatalf("create first release: %v", err)
	}
	second, err := h.agg.Create(h.ctx, domainagg.ReleaseUpsertInput{
		Title:             "B",
		WorkRelationships: []domainagg.RelationshipInput{{TargetID: work.ID, Name: "performance of", Position: 0}},
	})
	if err != nil {
		t.Fatalf("create second release: %v", err)
	}

	_, err = h.agg.ReassignWorkRelationshipOrders(h.ctx, domainagg.ReassignOrdersInput{
		Sequence: domainagg.SequenceReferencePosition,
		Rows: []domainagg.RelationshipOrderInput{
			{OwnerID: first.ID, TargetID: work.ID, Value: 7},
			{OwnerID: second.ID, TargetID: work.ID, Value: 7},
		},
	})
	if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
		t.Fatalf("expected invariant violation, got %v", err)
	}
}

func TestReleaseUpdateMissingRelease(t *testing.T) {
	h := newReleaseHarness(t)
	res, err := h.agg.Update(h.ctx, domainagg.ReleaseUpsertInput{ID: uuid.New(), Title: "Ghost"})
	if err != nil {
		t.Fatalf("missing aggregate must not error: %v", err)
	}
	if res.RowsAffected != 0 {
		t.Fatalf("expected 0 rows affected, got %d", res.RowsAffected)
	}
}

func TestReleaseDeleteCascades(t *testing.T) {
	h := newReleaseHarness(t)
	artist := repotestutil.SeedArtist(t, h.ctx, h.tx, "Cascaded")
	genre := repotestutil.SeedGenre(t, h.ctx, h.tx, "Shoegaze")
	work := repotestutil.SeedWork(t, h.ctx, h.tx, "Cascaded Work")

	created, err := h.agg.Create(h.ctx, fullReleaseInput(artist.ID, genre.ID, work.ID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	res, err := h.agg.Delete(h.ctx, created.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if res.RowsAffected != 1 {
		t.Fatalf("expected 1 row affected, got %d", res.RowsAffected)
	}
	for _, model := range []any{&types.Medium{}, &types.Track{}, &types.TrackArtist{}, &types.ReleaseWorkRelationship{}} {
		if n := h.count(t, model, created.ID); n != 0 {
			t.Fatalf("cascade left %d rows in %T", n, model)
		}
	}
}
