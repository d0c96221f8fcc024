package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/tonearc/catalog-backend/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func SeedGenre(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Genre {
	tb.Helper()
	now := time.Now().UTC()
	g := &types.Genre{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(g).Error; err != nil {
		tb.Fatalf("seed genre: %v", err)
	}
	return g
}

func SeedArtist(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Artist {
	tb.Helper()
	now := time.Now().UTC()
	a := &types.Artist{
		ID:        uuid.New(),
		Name:      name,
		SortName:  name,
		Aliases:   datatypes.JSON([]byte("[]")),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed artist: %v", err)
	}
	return a
}

func SeedReleaseGroup(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *types.ReleaseGroup {
	tb.Helper()
	now := time.Now().UTC()
	rg := &types.ReleaseGroup{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(rg).Error; err != nil {
		tb.Fatalf("seed release group: %v", err)
	}
	return rg
}

func SeedRelease(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *types.Release {
	tb.Helper()
	now := time.Now().UTC()
	r := &types.Release{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed release: %v", err)
	}
	return r
}

func SeedWork(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *types.Work {
	tb.Helper()
	now := time.Now().UTC()
	w := &types.Work{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(w).Error; err != nil {
		tb.Fatalf("seed work: %v", err)
	}
	return w
}

func SeedProduct(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Product {
	tb.Helper()
	now := time.Now().UTC()
	p := &types.Product{
		ID:         uuid.New(),
		Name:       name,
		Attributes: datatypes.JSON([]byte("{}")),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}
