package aggregates

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	repotestutil "github.com/tonearc/catalog-backend/internal/data/repos/testutil"
	types "github.com/tonearc/catalog-backend/internal/domain"
	"github.com/tonearc/catalog-backend/internal/platform/dbctx"
)

func TestTouchSetCollapsesDuplicates(t *testing.T) {
	set := NewTouchSet()
	id := uuid.New()
	set.Add("artist", id)
	set.Add("artist", id)
	set.Add("work", id)
	if set.Len() != 2 {
		t.Fatalf("expected 2 refs, got %d", set.Len())
	}
	set.Add("", id)
	set.Add("artist", uuid.Nil)
	if set.Len() != 2 {
		t.Fatalf("blank refs accepted, got %d", set.Len())
	}
}

func TestTouchSetFlushEmptyNoTx(t *testing.T) {
	set := NewTouchSet()
	if err := set.Flush(dbctx.Context{Ctx: context.Background()}, time.Now()); err != nil {
		t.Fatalf("empty flush failed: %v", err)
	}
}

func TestTouchSetFlushAdvancesUpdatedAt(t *testing.T) {
	db := repotestutil.DB(t)
	tx := repotestutil.Tx(t, db)
	ctx := context.Background()

	artist := repotestutil.SeedArtist(t, ctx, tx, "Flushed Artist")
	before := artist.UpdatedAt

	set := NewTouchSet()
	set.Add("artist", artist.ID)
	at := before.Add(2 * time.Second)
	if err := set.Flush(dbctx.Context{Ctx: ctx, Tx: tx}, at); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	var reloaded types.Artist
	if err := tx.Where("id = ?", artist.ID).First(&reloaded).Error; err != nil {
		t.Fatalf("reload artist: %v", err)
	}
	if !reloaded.UpdatedAt.After(before) {
		t.Fatalf("updated_at did not advance: before=%s after=%s", before, reloaded.UpdatedAt)
	}
	if reloaded.CreatedAt.After(before) {
		t.Fatal("created_at should not move on touch")
	}
}
