package testutil

import (
	"os"
	"sync"
	"testing"

	types "github.com/tonearc/catalog-backend/internal/domain"
	"github.com/tonearc/catalog-backend/internal/platform/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var (
	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a migrated test database. Set TEST_POSTGRES_DSN to run against
// postgres; without it the suite runs on shared in-memory sqlite, which
// exercises the same unique indexes and cascades through AutoMigrate.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		cfg := &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		}

		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn != "" {
			db, dbErr = gorm.Open(postgres.Open(dsn), cfg)
		} else {
			db, dbErr = gorm.Open(sqlite.Open("file::memory:?cache=shared"), cfg)
			if dbErr == nil {
				dbErr = db.Exec("PRAGMA foreign_keys = ON").Error
			}
		}
		if dbErr != nil {
			return
		}
		dbErr = autoMigrateAll(db)
	})

	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return db
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func autoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
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
}
