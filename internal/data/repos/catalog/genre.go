package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/tonearc/catalog-backend/internal/domain"
	"github.com/tonearc/catalog-backend/internal/platform/dbctx"
	"github.com/tonearc/catalog-backend/internal/platform/logger"
)

// GenreRepo manages the shared genre reference table. Seeding keeps existing
// rows: a name already present wins over the incoming row.
type GenreRepo interface {
	SeedByName(dbc dbctx.Context, genres []*types.Genre) (int64, error)
	List(dbc dbctx.Context) ([]*types.Genre, error)
	GetByIDs(dbc dbctx.Context, genreIDs []uuid.UUID) ([]*types.Genre, error)
	GetByNames(dbc dbctx.Context, names []string) ([]*types.Genre, error)
}

type genreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGenreRepo(db *gorm.DB, baseLog *logger.Logger) GenreRepo {
	repoLog := baseLog.With("repo", "GenreRepo")
	return &genreRepo{db: db, log: repoLog}
}

func (r *genreRepo) SeedByName(dbc dbctx.Context, genres []*types.Genre) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(genres) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&genres)
	return res.RowsAffected, res.Error
}

func (r *genreRepo) List(dbc dbctx.Context) ([]*types.Genre, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Genre
	if err := transaction.WithContext(dbc.Ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *genreRepo) GetByIDs(dbc dbctx.Context, genreIDs []uuid.UUID) ([]*types.Genre, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Genre
	if len(genreIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", genreIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *genreRepo) GetByNames(dbc dbctx.Context, names []string) ([]*types.Genre, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Genre
	if len(names) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("name IN ?", names).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
