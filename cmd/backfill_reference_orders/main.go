package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/tonearc/catalog-backend/internal/db"
	types "github.com/tonearc/catalog-backend/internal/domain"
	"github.com/tonearc/catalog-backend/internal/observability"
	"github.com/tonearc/catalog-backend/internal/platform/envutil"
	"github.com/tonearc/catalog-backend/internal/platform/logger"
)

// Compacts the target-side reference sequences of the relationship tables:
// rows deleted from the owning side leave holes in reference_position, and
// this tool renumbers each target scope back to 0..n-1 while preserving the
// relative order.

func main() {
	var dryRun bool
	var limit int
	var concurrency int
	var table string
	flag.BoolVar(&dryRun, "dry-run", false, "report targets that would be renumbered without writing")
	flag.IntVar(&limit, "limit", 0, "limit number of target scopes processed per table")
	flag.IntVar(&concurrency, "concurrency", 4, "target scopes compacted in parallel")
	flag.StringVar(&table, "table", "all", "relationship table to compact: artist, work, or all")
	flag.Parse()

	log, err := logger.New(envutil.String("LOG_MODE", "prod"))
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	shutdownOTel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "catalog-backfill",
		Environment: envutil.String("APP_ENV", "dev"),
	})
	if shutdownOTel != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOTel(shutdownCtx)
		}()
	}

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("postgres init failed", "error", err)
	}

	if metrics := observability.Init(log); metrics != nil {
		metrics.StartServer(ctx, log, envutil.String("METRICS_ADDR", ""))
		metrics.StartPostgresCollector(ctx, log, pg.DB())
		metrics.StartTableCountCollector(ctx, log, pg.DB(), []string{
			"artist_relationship", "release_work_relationship",
		})
	}

	if table == "artist" || table == "all" {
		renumbered, err := compactScopes(ctx, pg.DB(), log, compactConfig{
			table:        "artist_relationship",
			targetColumn: "target_artist_id",
			dryRun:       dryRun,
			limit:        limit,
			concurrency:  concurrency,
		}, compactArtistScope)
		if err != nil {
			log.Fatal("artist relationship compaction failed", "error", err)
		}
		log.Info("artist relationship compaction done", "rows_renumbered", renumbered, "dry_run", dryRun)
	}
	if table == "work" || table == "all" {
		renumbered, err := compactScopes(ctx, pg.DB(), log, compactConfig{
			table:        "release_work_relationship",
			targetColumn: "work_id",
			dryRun:       dryRun,
			limit:        limit,
			concurrency:  concurrency,
		}, compactWorkScope)
		if err != nil {
			log.Fatal("work relationship compaction failed", "error", err)
		}
		log.Info("work relationship compaction done", "rows_renumbered", renumbered, "dry_run", dryRun)
	}
}

type compactConfig struct {
	table        string
	targetColumn string
	dryRun       bool
	limit        int
	concurrency  int
}

type scopeCompactor func(tx *gorm.DB, target uuid.UUID, dryRun bool) (int64, error)

func compactScopes(ctx context.Context, gdb *gorm.DB, log *logger.Logger, cfg compactConfig, compact scopeCompactor) (int64, error) {
	var targets []uuid.UUID
	err := gdb.WithContext(ctx).
		Table(cfg.table).
		Distinct(cfg.targetColumn).
		Order(cfg.targetColumn + " ASC").
		Pluck(cfg.targetColumn, &targets).Error
	if err != nil {
		return 0, err
	}
	if cfg.limit > 0 && len(targets) > cfg.limit {
		targets = targets[:cfg.limit]
	}
	log.Info("compacting reference sequences", "table", cfg.table, "targets", len(targets))

	var renumbered atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	if cfg.concurrency > 0 {
		g.SetLimit(cfg.concurrency)
	}
	for _, target := range targets {
		target := target
		g.Go(func() error {
			if cfg.dryRun {
				n, err := compact(gdb.WithContext(gctx), target, true)
				renumbered.Add(n)
				return err
			}
			return gdb.WithContext(gctx).Transaction(func(tx *gorm.DB) error {
				n, err := compact(tx, target, false)
				renumbered.Add(n)
				return err
			})
		})
	}
	if err := g.Wait(); err != nil {
		return renumbered.Load(), err
	}
	return renumbered.Load(), nil
}

func compactArtistScope(tx *gorm.DB, target uuid.UUID, dryRun bool) (int64, error) {
	var rows []types.ArtistRelationship
	if err := tx.Where("target_artist_id = ?", target).
		Order("reference_position ASC").
		Find(&rows).Error; err != nil {
		return 0, err
	}
	ids := make([]uuid.UUID, len(rows))
	current := make([]int, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
		current[i] = row.ReferencePosition
	}
	return renumber(tx, &types.ArtistRelationship{}, ids, current, dryRun)
}

func compactWorkScope(tx *gorm.DB, target uuid.UUID, dryRun bool) (int64, error) {
	var rows []types.ReleaseWorkRelationship
	if err := tx.Where("work_id = ?", target).
		Order("reference_position ASC").
		Find(&rows).Error; err != nil {
		return 0, err
	}
	ids := make([]uuid.UUID, len(rows))
	current := make([]int, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
		current[i] = row.ReferencePosition
	}
	return renumber(tx, &types.ReleaseWorkRelationship{}, ids, current, dryRun)
}

// renumber assigns 0..n-1 in the existing order. Moved rows pass through the
// negative range first so the per-target unique index never sees a duplicate
// mid-update.
func renumber(tx *gorm.DB, model any, ids []uuid.UUID, current []int, dryRun bool) (int64, error) {
	var moved []int
	for i := range ids {
		if current[i] != i {
			moved = append(moved, i)
		}
	}
	if len(moved) == 0 {
		return 0, nil
	}
	if dryRun {
		return int64(len(moved)), nil
	}

	now := time.Now().UTC()
	for _, i := range moved {
		res := tx.Model(model).Where("id = ?", ids[i]).UpdateColumn("reference_position", -i-1)
		if res.Error != nil {
			return 0, res.Error
		}
	}
	for _, i := range moved {
		res := tx.Model(model).Where("id = ?", ids[i]).UpdateColumns(map[string]any{
			"reference_position": i,
			"updated_at":         now,
		})
		if res.Error != nil {
			return 0, res.Error
		}
	}
	return int64(len(moved)), nil
}
