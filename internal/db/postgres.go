package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	types "github.com/tonearc/catalog-backend/internal/domain"
	"github.com/tonearc/catalog-backend/internal/platform/envutil"
	"github.com/tonearc/catalog-backend/internal/platform/logger"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	host := envutil.String("POSTGRES_HOST", "localhost")
	port := envutil.String("POSTGRES_PORT", "5432")
	user := envutil.String("POSTGRES_USER", "postgres")
	password := envutil.String("POSTGRES_PASSWORD", "")
	name := envutil.String("POSTGRES_NAME", "catalog")
	sslMode := envutil.String("POSTGRES_SSLMODE", "disable")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, password, host, port, name, sslMode)

	serviceLog.Info("connecting to postgres", "host", host, "port", port, "db", name)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		serviceLog.Error("failed to connect to postgres", "error", err)
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

// AutoMigrateAll creates or updates every catalog table, including the
// composite unique order indexes the aggregates rely on. Roots migrate
// before the child tables that reference them.
func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("migrating catalog tables")
	err := s.db.AutoMigrate(
		&types.Genre{},

		&types.Artist{},
		&types.ArtistGenre{},
		&types.ArtistRelationship{},

		&types.ReleaseGroup{},
		&types.ReleaseGroupArtist{},

		&types.Work{},
		&types.WorkArtist{},
		&types.WorkGenre{},

		&types.Release{},
		&types.ReleaseArtist{},
		&types.ReleaseGenre{},
		&types.Medium{},
		&types.Track{},
		&types.TrackArtist{},
		&types.ReleaseWorkRelationship{},

		&types.Product{},
		&types.ProductRelease{},
	)
	if err != nil {
		s.log.Error("catalog migration failed", "error", err)
		return err
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
