package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/tonearc/catalog-backend/internal/domain"
	"github.com/tonearc/catalog-backend/internal/platform/dbctx"
	"github.com/tonearc/catalog-backend/internal/platform/logger"
)

type ReleaseRepo interface {
	Insert(dbc dbctx.Context, release *types.Release) error
	UpdateFields(dbc dbctx.Context, releaseID uuid.UUID, fields map[string]any) (int64, error)
	DeleteByID(dbc dbctx.Context, releaseID uuid.UUID) (int64, error)
	GetByIDs(dbc dbctx.Context, releaseIDs []uuid.UUID) ([]*types.Release, error)
	GetByReleaseGroupID(dbc dbctx.Context, groupID uuid.UUID) ([]*types.Release, error)
}

type releaseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReleaseRepo(db *gorm.DB, baseLog *logger.Logger) ReleaseRepo {
	repoLog := baseLog.With("repo", "ReleaseRepo")
	return &releaseRepo{db: db, log: repoLog}
}

func (r *releaseRepo) Insert(dbc dbctx.Context, release *types.Release) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).Create(release).Error
}

func (r *releaseRepo) UpdateFields(dbc dbctx.Context, releaseID uuid.UUID, fields map[string]any) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(fields) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Release{}).
		Where("id = ?", releaseID).
		UpdateColumns(fields)
	return res.RowsAffected, res.Error
}

func (r *releaseRepo) DeleteByID(dbc dbctx.Context, releaseID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ?", releaseID).
		Delete(&types.Release{})
	return res.RowsAffected, res.Error
}

func (r *releaseRepo) GetByIDs(dbc dbctx.Context, releaseIDs []uuid.UUID) ([]*types.Release, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Release
	if len(releaseIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", releaseIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *releaseRepo) GetByReleaseGroupID(dbc dbctx.Context, groupID uuid.UUID) ([]*types.Release, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Release
	if err := transaction.WithContext(dbc.Ctx).
		Where("release_group_id = ?", groupID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
