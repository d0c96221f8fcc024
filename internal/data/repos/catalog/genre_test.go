package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tonearc/catalog-backend/internal/data/repos/catalog"
	"github.com/tonearc/catalog-backend/internal/data/repos/testutil"
	types "github.com/tonearc/catalog-backend/internal/domain"
	"github.com/tonearc/catalog-backend/internal/platform/dbctx"
)

func genreRow(name string) *types.Genre {
	now := time.Now().UTC()
	return &types.Genre{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now}
}

func TestGenreSeedByNameKeepsExisting(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := catalog.NewGenreRepo(tx, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	original := genreRow("Krautrock")
	n, err := repo.SeedByName(dbc, []*types.Genre{original, genreRow("Zeuhl")})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 inserted, got %d", n)
	}

	// Re-seeding the same name must not replace the existing row.
	n, err = repo.SeedByName(dbc, []*types.Genre{genreRow("Krautrock")})
	if err != nil {
		t.Fatalf("re-seed failed: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 inserted on conflict, got %d", n)
	}

	rows, err := repo.GetByNames(dbc, []string{"Krautrock"})
	if err != nil {
		t.Fatalf("get by names failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != original.ID {
		t.Fatalf("existing row should win, got %+v", rows)
	}
}

func TestGenreSeedByNameEmptyBatch(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := catalog.NewGenreRepo(tx, testutil.Logger(t))

	n, err := repo.SeedByName(dbctx.Context{Ctx: context.Background(), Tx: tx}, nil)
	if err != nil || n != 0 {
		t.Fatalf("empty batch should no-op, got n=%d err=%v", n, err)
	}
}

func TestGenreListOrdersByName(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := catalog.NewGenreRepo(tx, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	if _, err := repo.SeedByName(dbc, []*types.Genre{genreRow("Techno"), genreRow("Acid"), genreRow("Mambo")}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	rows, err := repo.List(dbc)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 genres, got %d", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].Name > rows[i].Name {
			t.Fatalf("list not sorted by name: %q before %q", rows[i-1].Name, rows[i].Name)
		}
	}
}
