package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	catalogrepos "github.com/tonearc/catalog-backend/internal/data/repos/catalog"
	"github.com/tonearc/catalog-backend/internal/db"
	types "github.com/tonearc/catalog-backend/internal/domain"
	"github.com/tonearc/catalog-backend/internal/platform/dbctx"
	"github.com/tonearc/catalog-backend/internal/platform/envutil"
	"github.com/tonearc/catalog-backend/internal/platform/logger"
)

type genreManifest struct {
	Genres []string `yaml:"genres"`
}

func main() {
	var seedFile string
	flag.StringVar(&seedFile, "seed-genres", "", "path to a YAML genre manifest to seed after migration")
	flag.Parse()

	log, err := logger.New(envutil.String("LOG_MODE", "prod"))
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("postgres init failed", "error", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Fatal("migration failed", "error", err)
	}
	log.Info("migration complete")

	if seedFile == "" {
		seedFile = envutil.String("GENRE_SEED_FILE", "")
	}
	if seedFile == "" {
		return
	}

	inserted, total, err := seedGenres(context.Background(), pg, log, seedFile)
	if err != nil {
		log.Fatal("genre seeding failed", "file", seedFile, "error", err)
	}
	log.Info("genre seeding complete", "file", seedFile, "manifest_genres", total, "inserted", inserted)
}

// seedGenres loads the manifest and inserts any genre names not already
// present. Existing rows keep their ids, so reseeding is safe.
func seedGenres(ctx context.Context, pg *db.PostgresService, log *logger.Logger, path string) (int64, int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}
	var manifest genreManifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return 0, 0, err
	}

	now := time.Now().UTC()
	seen := make(map[string]struct{}, len(manifest.Genres))
	rows := make([]*types.Genre, 0, len(manifest.Genres))
	for _, name := range manifest.Genres {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		rows = append(rows, &types.Genre{
			ID:        uuid.New(),
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}

	genres := catalogrepos.NewGenreRepo(pg.DB(), log)
	inserted, err := genres.SeedByName(dbctx.Context{Ctx: ctx}, rows)
	if err != nil {
		return 0, len(rows), err
	}
	return inserted, len(rows), nil
}
