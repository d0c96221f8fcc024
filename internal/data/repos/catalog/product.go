package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/tonearc/catalog-backend/internal/domain"
	"github.com/tonearc/catalog-backend/internal/platform/dbctx"
	"github.com/tonearc/catalog-backend/internal/platform/logger"
)

type ProductRepo interface {
	Insert(dbc dbctx.Context, product *types.Product) error
	UpdateFields(dbc dbctx.Context, productID uuid.UUID, fields map[string]any) (int64, error)
	DeleteByID(dbc dbctx.Context, productID uuid.UUID) (int64, error)
	GetByIDs(dbc dbctx.Context, productIDs []uuid.UUID) ([]*types.Product, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	repoLog := baseLog.With("repo", "ProductRepo")
	return &productRepo{db: db, log: repoLog}
}

func (r *productRepo) Insert(dbc dbctx.Context, product *types.Product) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).Create(product).Error
}

func (r *productRepo) UpdateFields(dbc dbctx.Context, productID uuid.UUID, fields map[string]any) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(fields) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Product{}).
		Where("id = ?", productID).
		UpdateColumns(fields)
	return res.RowsAffected, res.Error
}

func (r *productRepo) DeleteByID(dbc dbctx.Context, productID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ?", productID).
		Delete(&types.Product{})
	return res.RowsAffected, res.Error
}

func (r *productRepo) GetByIDs(dbc dbctx.Context, productIDs []uuid.UUID) ([]*types.Product, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Product
	if len(productIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", productIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
