package aggregates_test

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/tonearc/catalog-backend/internal/data/aggregates"
	aggtestutil "github.com/tonearc/catalog-backend/internal/data/aggregates/testutil"
	"github.com/tonearc/catalog-backend/internal/data/repos/catalog"
	repotestutil "github.com/tonearc/catalog-backend/internal/data/repos/testutil"
	types "github.com/tonearc/catalog-backend/internal/domain"
	domainagg "github.com/tonearc/catalog-backend/internal/domain/aggregates"
)

func newWorkHarness(t *testing.T) (context.Context, *gorm.DB, domainagg.WorkAggregate) {
	t.Helper()
	db := repotestutil.DB(t)
	tx := repotestutil.Tx(t, db)
	log := repotestutil.Logger(t)
	agg := aggregates.NewWorkAggregate(aggregates.WorkAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:     tx,
			Log:    log,
			Runner: &aggtestutil.BoundTxRunner{DB: tx},
		},
		Works: catalog.NewWorkRepo(tx, log),
	})
	return context.Background(), tx, agg
}

func TestWorkArtistRoleInKey(t *testing.T) {
	ctx, tx, agg := newWorkHarness(t)
	artist := repotestutil.SeedArtist(t, ctx, tx, "Double Duty")

	// The same artist appears twice under different roles.
	created, err := agg.Create(ctx, domainagg.WorkUpsertInput{
		Title: "Sonata",
		Artists: []domainagg.WorkArtistInput{
			{ArtistID: artist.ID, Role: "composer", Position: 0},
			{ArtistID: artist.ID, Role: "lyricist", Position: 1},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var rows []types.WorkArtist
	if err := tx.Where("work_id = ?", created.ID).Order("position ASC").Find(&rows).Error; err != nil {
		t.Fatalf("load work artists: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 role rows, got %d", len(rows))
	}
	if rows[0].Role != "composer" || rows[1].Role != "lyricist" {
		t.Fatalf("unexpected roles: %+v", rows)
	}

	// Dropping one role keeps the other row intact.
	keptID := rows[0].ID
	_, err = agg.Update(ctx, domainagg.WorkUpsertInput{
		ID:    created.ID,
		Title: "Sonata",
		Artists: []domainagg.WorkArtistInput{
			{ArtistID: artist.ID, Role: "composer", Position: 0},
		},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := tx.Where("work_id = ?", created.ID).Find(&rows).Error; err != nil {
		t.Fatalf("reload work artists: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != keptID {
		t.Fatalf("expected the composer row to survive, got %+v", rows)
	}
}

func TestWorkGenreSnapshot(t *testing.T) {
	ctx, tx, agg := newWorkHarness(t)
	g := repotestutil.SeedGenre(t, ctx, tx, "Minimalism")

	created, err := agg.Create(ctx, domainagg.WorkUpsertInput{
		Title:          "Phased Piece",
		LyricsLanguage: "eng",
		Genres:         []domainagg.GenreInput{{GenreID: g.ID, Position: 0}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var n int64
	if err := tx.Model(&types.WorkGenre{}).Where("work_id = ?", created.ID).Count(&n).Error; err != nil {
		t.Fatalf("count work genres: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 genre row, got %d", n)
	}

	res, err := agg.Update(ctx, domainagg.WorkUpsertInput{ID: created.ID, Title: "Phased Piece"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	// Scalar row plus the orphaned genre delete.
	if res.RowsAffected != 2 {
		t.Fatalf("expected 2 rows affected, got %d", res.RowsAffected)
	}
}

func TestWorkCreateRejectsBlankTitle(t *testing.T) {
	ctx, _, agg := newWorkHarness(t)
	if _, err := agg.Create(ctx, domainagg.WorkUpsertInput{}); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
