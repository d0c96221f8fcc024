package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/tonearc/catalog-backend/internal/domain"
	"github.com/tonearc/catalog-backend/internal/platform/dbctx"
	"github.com/tonearc/catalog-backend/internal/platform/logger"
)

// ArtistRepo covers the artist root row. Child collections are owned by the
// artist aggregate's reconcilers, not exposed here.
type ArtistRepo interface {
	Insert(dbc dbctx.Context, artist *types.Artist) error
	UpdateFields(dbc dbctx.Context, artistID uuid.UUID, fields map[string]any) (int64, error)
	DeleteByID(dbc dbctx.Context, artistID uuid.UUID) (int64, error)
	GetByIDs(dbc dbctx.Context, artistIDs []uuid.UUID) ([]*types.Artist, error)
}

type artistRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewArtistRepo(db *gorm.DB, baseLog *logger.Logger) ArtistRepo {
	repoLog := baseLog.With("repo", "ArtistRepo")
	return &artistRepo{db: db, log: repoLog}
}

func (r *artistRepo) Insert(dbc dbctx.Context, artist *types.Artist) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).Create(artist).Error
}

func (r *artistRepo) UpdateFields(dbc dbctx.Context, artistID uuid.UUID, fields map[string]any) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(fields) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Artist{}).
		Where("id = ?", artistID).
		UpdateColumns(fields)
	return res.RowsAffected, res.Error
}

func (r *artistRepo) DeleteByID(dbc dbctx.Context, artistID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ?", artistID).
		Delete(&types.Artist{})
	return res.RowsAffected, res.Error
}

func (r *artistRepo) GetByIDs(dbc dbctx.Context, artistIDs []uuid.UUID) ([]*types.Artist, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Artist
	if len(artistIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", artistIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
