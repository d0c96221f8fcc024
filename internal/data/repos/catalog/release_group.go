package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/tonearc/catalog-backend/internal/domain"
	"github.com/tonearc/catalog-backend/internal/platform/dbctx"
	"github.com/tonearc/catalog-backend/internal/platform/logger"
)

type ReleaseGroupRepo interface {
	Insert(dbc dbctx.Context, group *types.ReleaseGroup) error
	UpdateFields(dbc dbctx.Context, groupID uuid.UUID, fields map[string]any) (int64, error)
	DeleteByID(dbc dbctx.Context, groupID uuid.UUID) (int64, error)
	GetByIDs(dbc dbctx.Context, groupIDs []uuid.UUID) ([]*types.ReleaseGroup, error)
}

type releaseGroupRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReleaseGroupRepo(db *gorm.DB, baseLog *logger.Logger) ReleaseGroupRepo {
	repoLog := baseLog.With("repo", "ReleaseGroupRepo")
	return &releaseGroupRepo{db: db, log: repoLog}
}

func (r *releaseGroupRepo) Insert(dbc dbctx.Context, group *types.ReleaseGroup) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).Create(group).Error
}

func (r *releaseGroupRepo) UpdateFields(dbc dbctx.Context, groupID uuid.UUID, fields map[string]any) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(fields) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.ReleaseGroup{}).
		Where("id = ?", groupID).
		UpdateColumns(fields)
	return res.RowsAffected, res.Error
}

func (r *releaseGroupRepo) DeleteByID(dbc dbctx.Context, groupID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ?", groupID).
		Delete(&types.ReleaseGroup{})
	return res.RowsAffected, res.Error
}

func (r *releaseGroupRepo) GetByIDs(dbc dbctx.Context, groupIDs []uuid.UUID) ([]*types.ReleaseGroup, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ReleaseGroup
	if len(groupIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", groupIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
