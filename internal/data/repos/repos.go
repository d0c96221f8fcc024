package repos

import (
	"github.com/tonearc/catalog-backend/internal/data/repos/catalog"
	"github.com/tonearc/catalog-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type GenreRepo = catalog.GenreRepo
type ArtistRepo = catalog.ArtistRepo
type ReleaseGroupRepo = catalog.ReleaseGroupRepo
type ReleaseRepo = catalog.ReleaseRepo
type WorkRepo = catalog.WorkRepo
type ProductRepo = catalog.ProductRepo

// Repos bundles every table repo behind one constructor for wiring.
type Repos struct {
	Genre        GenreRepo
	Artist       ArtistRepo
	ReleaseGroup ReleaseGroupRepo
	Release      ReleaseRepo
	Work         WorkRepo
	Product      ProductRepo
}

func New(db *gorm.DB, baseLog *logger.Logger) *Repos {
	return &Repos{
		Genre:        catalog.NewGenreRepo(db, baseLog),
		Artist:       catalog.NewArtistRepo(db, baseLog),
		ReleaseGroup: catalog.NewReleaseGroupRepo(db, baseLog),
		Release:      catalog.NewReleaseRepo(db, baseLog),
		Work:         catalog.NewWorkRepo(db, baseLog),
		Product:      catalog.NewProductRepo(db, baseLog),
	}
}
