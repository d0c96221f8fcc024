package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/tonearc/catalog-backend/internal/domain"
	"github.com/tonearc/catalog-backend/internal/platform/dbctx"
	"github.com/tonearc/catalog-backend/internal/platform/logger"
)

type WorkRepo interface {
	Insert(dbc dbctx.Context, work *types.Work) error
	UpdateFields(dbc dbctx.Context, workID uuid.UUID, fields map[string]any) (int64, error)
	DeleteByID(dbc dbctx.Context, workID uuid.UUID) (int64, error)
	GetByIDs(dbc dbctx.Context, workIDs []uuid.UUID) ([]*types.Work, error)
}

type workRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWorkRepo(db *gorm.DB, baseLog *logger.Logger) WorkRepo {
	repoLog := baseLog.With("repo", "WorkRepo")
	return &workRepo{db: db, log: repoLog}
}

func (r *workRepo) Insert(dbc dbctx.Context, work *types.Work) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).Create(work).Error
}

func (r *workRepo) UpdateFields(dbc dbctx.Context, workID uuid.UUID, fields map[string]any) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(fields) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Work{}).
		Where("id = ?", workID).
		UpdateColumns(fields)
	return res.RowsAffected, res.Error
}

func (r *workRepo) DeleteByID(dbc dbctx.Context, workID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ?", workID).
		Delete(&types.Work{})
	return res.RowsAffected, res.Error
}

func (r *workRepo) GetByIDs(dbc dbctx.Context, workIDs []uuid.UUID) ([]*types.Work, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Work
	if len(workIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", workIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
