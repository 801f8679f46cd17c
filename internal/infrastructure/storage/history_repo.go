package storage

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/foodlens/backend/internal/domain"
	"github.com/foodlens/backend/internal/pkg/logger"
)

// HistoryRepo persists recently scanned products, one row per barcode
type HistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHistoryRepo(db *gorm.DB, baseLog *logger.Logger) *HistoryRepo {
	return &HistoryRepo{db: db, log: baseLog.With("repo", "HistoryRepo")}
}

// Add moves item to the top of the history and keeps at most limit items
func (r *HistoryRepo) Add(ctx context.Context, item domain.HistoryItem, limit int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := historyRow{
			Code:      item.Product.Code,
			Product:   datatypes.NewJSONType(item.Product),
			ScannedAt: item.ScannedAt.UTC(),
		}
		if err := tx.Save(&row).Error; err != nil {
			return err
		}

		var codes []string
		if err := tx.Model(&historyRow{}).
			Order("scanned_at DESC").
			Pluck("code", &codes).Error; err != nil {
			return err
		}
		if limit <= 0 || len(codes) <= limit {
			return nil
		}
		r.log.Debug("trimming history", "dropped", len(codes)-limit)
		return tx.Where("code IN ?", codes[limit:]).Delete(&historyRow{}).Error
	})
}

// List returns the history, newest first
func (r *HistoryRepo) List(ctx context.Context) ([]domain.HistoryItem, error) {
	var rows []historyRow
	if err := r.db.WithContext(ctx).Order("scanned_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.HistoryItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.HistoryItem{Product: row.Product.Data(), ScannedAt: row.ScannedAt})
	}
	return out, nil
}

func (r *HistoryRepo) Clear(ctx context.Context) error {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&historyRow{})
	if res.Error != nil {
		return res.Error
	}
	r.log.Debug("history cleared", "removed", res.RowsAffected)
	return nil
}
