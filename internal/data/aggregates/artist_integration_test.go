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

type artistHarness struct {
	ctx   context.Context
	tx    *gorm.DB
	agg   domainagg.ArtistAggregate
	hooks *aggtestutil.HooksRecorder
}

func newArtistHarness(t *testing.T) *artistHarness {
	t.Helper()
	db := repotestutil.DB(t)
	tx := repotestutil.Tx(t, db)
	log := repotestutil.Logger(t)
	hooks := &aggtestutil.HooksRecorder{}
	agg := aggregates.NewArtistAggregate(aggregates.ArtistAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:     tx,
			Log:    log,
			Runner: &aggtestutil.BoundTxRunner{DB: tx},
			Hooks:  hooks,
		},
		Artists: catalog.NewArtistRepo(tx, log),
	})
	return &artistHarness{ctx: context.Background(), tx: tx, agg: agg, hooks: hooks}
}

func (h *artistHarness) artistGenres(t *testing.T, artistID uuid.UUID) []types.ArtistGenre {
	t.Helper()
	var rows []types.ArtistGenre
	if err := h.tx.Where("artist_id = ?", artistID).Order("position ASC").Find(&rows).Error; err != nil {
		t.Fatalf("load artist genres: %v", err)
	}
	return rows
}

func (h *artistHarness) relationships(t *testing.T, artistID uuid.UUID) []types.ArtistRelationship {
	t.Helper()
	var rows []types.ArtistRelationship
	if err := h.tx.Where("artist_id = ?", artistID).Order("position ASC").Find(&rows).Error; err != nil {
		t.Fatalf("load artist relationships: %v", err)
	}
	return rows
}

func (h *artistHarness) reloadArtist(t *testing.T, id uuid.UUID) types.Artist {
	t.Helper()
	var row types.Artist
	if err := h.tx.Where("id = ?", id).First(&row).Error; err != nil {
		t.Fatalf("reload artist %s: %v", id, err)
	}
	return row
}

func TestArtistCreatePersistsChildren(t *testing.T) {
	h := newArtistHarness(t)
	rock := repotestutil.SeedGenre(t, h.ctx, h.tx, "Rock")
	jazz := repotestutil.SeedGenre(t, h.ctx, h.tx, "Jazz")
	target := repotestutil.SeedArtist(t, h.ctx, h.tx, "Target Band")

	res, err := h.agg.Create(h.ctx, domainagg.ArtistUpsertInput{
		Name:     "Night Sketches",
		SortName: "Night Sketches",
		Aliases:  []string{"NS"},
		Genres: []domainagg.GenreInput{
			{GenreID: jazz.ID, Position: 1},
			{GenreID: rock.ID, Position: 0},
		},
		Relationships: []domainagg.RelationshipInput{
			{TargetID: target.ID, Name: "influenced by", Position: 0},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if res.ID == uuid.Nil {
		t.Fatal("expected a generated id")
	}
	if !res.CreatedAt.Equal(res.UpdatedAt) {
		t.Fatalf("create timestamps diverge: %s vs %s", res.CreatedAt, res.UpdatedAt)
	}

	row := h.reloadArtist(t, res.ID)
	if row.Name != "Night Sketches" {
		t.Fatalf("unexpected name %q", row.Name)
	}

	genres := h.artistGenres(t, res.ID)
	if len(genres) != 2 {
		t.Fatalf("expected 2 genre rows, got %d", len(genres))
	}
	if genres[0].GenreID != rock.ID || genres[0].Position != 0 {
		t.Fatalf("position 0 should be rock, got %+v", genres[0])
	}
	if genres[1].GenreID != jazz.ID || genres[1].Position != 1 {
		t.Fatalf("position 1 should be jazz, got %+v", genres[1])
	}

	rels := h.relationships(t, res.ID)
	if len(rels) != 1 {
		t.Fatalf("expected 1 relationship, got %d", len(rels))
	}
	if rels[0].ReferencePosition != 0 {
		t.Fatalf("first relationship onto target should get reference 0, got %d", rels[0].ReferencePosition)
	}
}

func TestArtistCreateKeepsSuppliedID(t *testing.T) {
	h := newArtistHarness(t)
	id := uuid.New()
	res, err := h.agg.Create(h.ctx, domainagg.ArtistUpsertInput{ID: id, Name: "Fixed ID"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if res.ID != id {
		t.Fatalf("supplied id replaced: %s != %s", res.ID, id)
	}
}

func TestArtistCreateRejectsBlankName(t *testing.T) {
	h := newArtistHarness(t)
	_, err := h.agg.Create(h.ctx, domainagg.ArtistUpsertInput{Name: "   "})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestArtistUpdateIdempotentReplacement(t *testing.T) {
	h := newArtistHarness(t)
	rock := repotestutil.SeedGenre(t, h.ctx, h.tx, "Rock")
	in := domainagg.ArtistUpsertInput{
		Name:   "Stable",
		Genres: []domainagg.GenreInput{{GenreID: rock.ID, Position: 0}},
	}
	created, err := h.agg.Create(h.ctx, in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	in.ID = created.ID

	before := h.artistGenres(t, created.ID)

	res, err := h.agg.Update(h.ctx, in)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if res.RowsAffected != 1 {
		t.Fatalf("identical snapshot should touch only the scalar row, got %d", res.RowsAffected)
	}

	after := h.artistGenres(t, created.ID)
	if len(after) != 1 || after[0].ID != before[0].ID {
		t.Fatalf("surrogate id churned on idempotent update: %+v -> %+v", before, after)
	}
}

func TestArtistUpdateReplacesCollection(t *testing.T) {
	h := newArtistHarness(t)
	a := repotestutil.SeedGenre(t, h.ctx, h.tx, "Ambient")
	b := repotestutil.SeedGenre(t, h.ctx, h.tx, "Breakbeat")
	c := repotestutil.SeedGenre(t, h.ctx, h.tx, "Chiptune")

	created, err := h.agg.Create(h.ctx, domainagg.ArtistUpsertInput{
		Name: "Replacer",
		Genres: []domainagg.GenreInput{
			{GenreID: a.ID, Position: 0},
			{GenreID: b.ID, Position: 1},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	keptID := h.artistGenres(t, created.ID)[1].ID

	res, err := h.agg.Update(h.ctx, domainagg.ArtistUpsertInput{
		ID:   created.ID,
		Name: "Replacer",
		Genres: []domainagg.GenreInput{
			{GenreID: b.ID, Position: 0},
			{GenreID: c.ID, Position: 1},
		},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	// scalar + orphan delete + moved row + insert
	if res.RowsAffected != 4 {
		t.Fatalf("expected 4 rows affected, got %d", res.RowsAffected)
	}

	genres := h.artistGenres(t, created.ID)
	if len(genres) != 2 {
		t.Fatalf("expected 2 genre rows, got %d", len(genres))
	}
	if genres[0].GenreID != b.ID || genres[0].ID != keptID {
		t.Fatalf("matched row should keep its surrogate id, got %+v", genres[0])
	}
	if genres[1].GenreID != c.ID {
		t.Fatalf("expected insert of chiptune at position 1, got %+v", genres[1])
	}
}

func TestArtistUpdatePositionSwap(t *testing.T) {
	h := newArtistHarness(t)
	a := repotestutil.SeedGenre(t, h.ctx, h.tx, "Dub")
	b := repotestutil.SeedGenre(t, h.ctx, h.tx, "Electro")

	created, err := h.agg.Create(h.ctx, domainagg.ArtistUpsertInput{
		Name: "Swapper",
		Genres: []domainagg.GenreInput{
			{GenreID: a.ID, Position: 0},
			{GenreID: b.ID, Position: 1},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = h.agg.Update(h.ctx, domainagg.ArtistUpsertInput{
		ID:   created.ID,
		Name: "Swapper",
		Genres: []domainagg.GenreInput{
			{GenreID: a.ID, Position: 1},
			{GenreID: b.ID, Position: 0},
		},
	})
	if err != nil {
		t.Fatalf("swap under unique position index failed: %v", err)
	}

	genres := h.artistGenres(t, created.ID)
	if genres[0].GenreID != b.ID || genres[1].GenreID != a.ID {
		t.Fatalf("swap not applied: %+v", genres)
	}
}

func TestArtistUpdateDuplicatePositionRejected(t *testing.T) {
	h := newArtistHarness(t)
	a := repotestutil.SeedGenre(t, h.ctx, h.tx, "Folk")
	b := repotestutil.SeedGenre(t, h.ctx, h.tx, "Grime")

	created, err := h.agg.Create(h.ctx, domainagg.ArtistUpsertInput{Name: "Before"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = h.agg.Update(h.ctx, domainagg.ArtistUpsertInput{
		ID:   created.ID,
		Name: "After",
		Genres: []domainagg.GenreInput{
			{GenreID: a.ID, Position: 3},
			{GenreID: b.ID, Position: 3},
		},
	})
	if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
		t.Fatalf("expected invariant violation, got %v", err)
	}

	// The scalar write preceding the failed reconcile must be rolled back.
	if row := h.reloadArtist(t, created.ID); row.Name != "Before" {
		t.Fatalf("failed update leaked scalar write: %q", row.Name)
	}
	if n := len(h.artistGenres(t, created.ID)); n != 0 {
		t.Fatalf("failed update leaked %d genre rows", n)
	}
}

func TestArtistUpdateDuplicateGenreRejected(t *testing.T) {
	h := newArtistHarness(t)
	a := repotestutil.SeedGenre(t, h.ctx, h.tx, "House")

	created, err := h.agg.Create(h.ctx, domainagg.ArtistUpsertInput{Name: "Dup"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = h.agg.Update(h.ctx, domainagg.ArtistUpsertInput{
		ID:   created.ID,
		Name: "Dup",
		Genres: []domainagg.GenreInput{
			{GenreID: a.ID, Position: 0},
			{GenreID: a.ID, Position: 1},
		},
	})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestArtistUpdateMissingArtist(t *testing.T) {
	h := newArtistHarness(t)
	res, err := h.agg.Update(h.ctx, domainagg.ArtistUpsertInput{ID: uuid.New(), Name: "Ghost"})
	if err != nil {
		t.Fatalf("missing aggregate must not error: %v", err)
	}
	if res.RowsAffected != 0 {
		t.Fatalf("expected 0 rows affected, got %d", res.RowsAffected)
	}
}

func TestArtistReferencePositionsCountPerTarget(t *testing.T) {
	h := newArtistHarness(t)
	target := repotestutil.SeedArtist(t, h.ctx, h.tx, "Hub")

	first, err := h.agg.Create(h.ctx, domainagg.ArtistUpsertInput{
		Name:          "First",
		Relationships: []domainagg.RelationshipInput{{TargetID: target.ID, Name: "collaborated with", Position: 0}},
	})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := h.agg.Create(h.ctx, domainagg.ArtistUpsertInput{
		Name:          "Second",
		Relationships: []domainagg.RelationshipInput{{TargetID: target.ID, Name: "collaborated with", Position: 0}},
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	if got := h.relationships(t, first.ID)[0].ReferencePosition; got != 0 {
		t.Fatalf("first owner should hold reference 0, got %d", got)
	}
	if got := h.relationships(t, second.ID)[0].ReferencePosition; got != 1 {
		t.Fatalf("second owner should hold reference 1, got %d", got)
	}

	// Owner-side updates must not disturb the target-side sequence.
	_, err = h.agg.Update(h.ctx, domainagg.ArtistUpsertInput{
		ID:            first.ID,
		Name:          "First",
		Relationships: []domainagg.RelationshipInput{{TargetID: target.ID, Name: "mentored", Position: 0}},
	})
	if err != nil {
		t.Fatalf("update first: %v", err)
	}
	rel := h.relationships(t, first.ID)[0]
	if rel.Name != "mentored" {
		t.Fatalf("relationship name not updated: %q", rel.Name)
	}
	if rel.ReferencePosition != 0 {
		t.Fatalf("matched row lost its reference position: %d", rel.ReferencePosition)
	}
}

func TestArtistRelationshipTouchesTarget(t *testing.T) {
	h := newArtistHarness(t)
	target := repotestutil.SeedArtist(t, h.ctx, h.tx, "Touched")
	before := h.reloadArtist(t, target.ID).UpdatedAt

	_, err := h.agg.Create(h.ctx, domainagg.ArtistUpsertInput{
		Name:          "Toucher",
		Relationships: []domainagg.RelationshipInput{{TargetID: target.ID, Name: "remixed", Position: 0}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	after := h.reloadArtist(t, target.ID)
	if !after.UpdatedAt.After(before) {
		t.Fatalf("target updated_at did not advance: %s -> %s", before, after.UpdatedAt)
	}
	if after.CreatedAt.After(before) {
		t.Fatal("target created_at moved on touch")
	}
}

func TestArtistDeleteCascades(t *testing.T) {
	h := newArtistHarness(t)
	rock := repotestutil.SeedGenre(t, h.ctx, h.tx, "Rocksteady")
	created, err := h.agg.Create(h.ctx, domainagg.ArtistUpsertInput{
		Name:   "Gone Soon",
		Genres: []domainagg.GenreInput{{GenreID: rock.ID, Position: 0}},
	})
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
	if n := len(h.artistGenres(t, created.ID)); n != 0 {
		t.Fatalf("cascade left %d genre rows", n)
	}

	again, err := h.agg.Delete(h.ctx, created.ID)
	if err != nil {
		t.Fatalf("second delete errored: %v", err)
	}
	if again.RowsAffected != 0 {
		t.Fatalf("second delete should affect 0 rows, got %d", again.RowsAffected)
	}
}

func TestArtistReassignRelationshipOrders(t *testing.T) {
	h := newArtistHarness(t)
	x := repotestutil.SeedArtist(t, h.ctx, h.tx, "X")
	y := repotestutil.SeedArtist(t, h.ctx, h.tx, "Y")

	owner, err := h.agg.Create(h.ctx, domainagg.ArtistUpsertInput{
		Name: "Orderer",
		Relationships: []domainagg.RelationshipInput{
			{TargetID: x.ID, Name: "with", Position: 0},
			{TargetID: y.ID, Name: "with", Position: 1},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	res, err := h.agg.ReassignRelationshipOrders(h.ctx, domainagg.ReassignOrdersInput{
		Sequence: domainagg.SequencePosition,
		Rows: []domainagg.RelationshipOrderInput{
			{OwnerID: owner.ID, TargetID: x.ID, Value: 1},
			{OwnerID: owner.ID, TargetID: y.ID, Value: 0},
		},
	})
	if err != nil {
		t.Fatalf("reassign failed: %v", err)
	}
	if res.RowsAffected != 2 {
		t.Fatalf("expected 2 rows affected, got %d", res.RowsAffected)
	}

	rels := h.relationships(t, owner.ID)
	if rels[0].TargetArtistID != y.ID || rels[1].TargetArtistID != x.ID {
		t.Fatalf("positions not permuted: %+v", rels)
	}
	// The other sequence must be untouched.
	if rels[0].ReferencePosition != 0 || rels[1].ReferencePosition != 0 {
		t.Fatalf("reference positions disturbed: %+v", rels)
	}
}

func TestArtistReassignRejectsUnknownPair(t *testing.T) {
	h := newArtistHarness(t)
	owner, err := h.agg.Create(h.ctx, domainagg.ArtistUpsertInput{Name: "Lonely"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = h.agg.ReassignRelationshipOrders(h.ctx, domainagg.ReassignOrdersInput{
		Sequence: domainagg.SequencePosition,
		Rows:     []domainagg.RelationshipOrderInput{{OwnerID: owner.ID, TargetID: uuid.New(), Value: 0}},
	})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestArtistReassignRejectsEmptyBatch(t *testing.T) {
	h := newArtistHarness(t)
	_, err := h.agg.ReassignRelationshipOrders(h.ctx, domainagg.ReassignOrdersInput{
		Sequence: domainagg.SequencePosition,
	})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestArtistWriteOutcomesRecorded(t *testing.T) {
	h := newArtistHarness(t)
	_, err := h.agg.Create(h.ctx, domainagg.ArtistUpsertInput{Name: "Observed"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(h.hooks.Operations) != 1 {
		t.Fatalf("expected 1 recorded operation, got %d", len(h.hooks.Operations))
	}
	ev := h.hooks.Operations[0]
	if ev.Name != "Catalog.Artist.Create" || ev.Status != "success" {
		t.Fatalf("unexpected operation event %+v", ev)
	}
}
