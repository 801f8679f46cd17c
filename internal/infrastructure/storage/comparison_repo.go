package storage

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/foodlens/backend/internal/domain"
	"github.com/foodlens/backend/internal/pkg/logger"
)

// ComparisonRepo persists the comparison list in insertion order
type ComparisonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewComparisonRepo(db *gorm.DB, baseLog *logger.Logger) *ComparisonRepo {
	return &ComparisonRepo{db: db, log: baseLog.With("repo", "ComparisonRepo")}
}

// AddWithLimit appends product unless it is already queued or the list
// already holds limit products. The check and the insert share a transaction.
func (r *ComparisonRepo) AddWithLimit(ctx context.Context, product domain.Product, limit int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			// serialize writers so concurrent adds cannot both pass the count
			if err := tx.Exec("LOCK TABLE comparison IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
				return err
			}
		}

		var existing int64
		if err := tx.Model(&comparisonRow{}).Where("code = ?", product.Code).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return domain.ErrAlreadyInComparison
		}

		var total int64
		if err := tx.Model(&comparisonRow{}).Count(&total).Error; err != nil {
			return err
		}
		if int(total) >= limit {
			return domain.ErrComparisonFull
		}

		row := comparisonRow{
			Code:     product.Code,
			Product:  datatypes.NewJSONType(product),
			Position: time.Now().UnixNano(),
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return err
	}
	r.log.Debug("added to comparison", "code", product.Code)
	return nil
}

func (r *ComparisonRepo) Remove(ctx context.Context, code string) error {
	if err := r.db.WithContext(ctx).Where("code = ?", code).Delete(&comparisonRow{}).Error; err != nil {
		return err
	}
	r.log.Debug("removed from comparison", "code", code)
	return nil
}

func (r *ComparisonRepo) Exists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&comparisonRow{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *ComparisonRepo) List(ctx context.Context) ([]domain.Product, error) {
	var rows []comparisonRow
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Product.Data())
	}
	return out, nil
}

func (r *ComparisonRepo) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&comparisonRow{}).Error
}
