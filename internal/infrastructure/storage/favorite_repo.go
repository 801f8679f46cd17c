package storage

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodlens/backend/internal/domain"
	"github.com/foodlens/backend/internal/pkg/logger"
)

type FavoriteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFavoriteRepo(db *gorm.DB, baseLog *logger.Logger) *FavoriteRepo {
	return &FavoriteRepo{db: db, log: baseLog.With("repo", "FavoriteRepo")}
}

// Toggle removes product from the favorites if present and adds it otherwise.
// It reports whether the product is a favorite afterwards.
func (r *FavoriteRepo) Toggle(ctx context.Context, product domain.Product) (bool, error) {
	favorite := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("code = ?", product.Code).Delete(&favoriteRow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		row := favoriteRow{Code: product.Code, Product: datatypes.NewJSONType(product)}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return err
		}
		favorite = true
		return nil
	})
	if err != nil {
		return false, err
	}
	r.log.Debug("favorite toggled", "code", product.Code, "favorite", favorite)
	return favorite, nil
}

func (r *FavoriteRepo) Exists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&favoriteRow{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// List returns favorites in the order they were added
func (r *FavoriteRepo) List(ctx context.Context) ([]domain.Product, error) {
	var rows []favoriteRow
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Product.Data())
	}
	return out, nil
}
