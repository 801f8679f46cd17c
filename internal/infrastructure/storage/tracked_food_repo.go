package storage

import (
	"context"

	"gorm.io/gorm"

	"github.com/foodlens/backend/internal/domain"
	"github.com/foodlens/backend/internal/pkg/logger"
)

// TrackedFoodRepo persists tracked food entries. Entries are immutable once written.
type TrackedFoodRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrackedFoodRepo(db *gorm.DB, baseLog *logger.Logger) *TrackedFoodRepo {
	return &TrackedFoodRepo{db: db, log: baseLog.With("repo", "TrackedFoodRepo")}
}

func (r *TrackedFoodRepo) Create(ctx context.Context, entry *domain.TrackedFoodEntry) error {
	if entry == nil {
		return nil
	}
	return r.db.WithContext(ctx).Create(newTrackedFoodRow(entry)).Error
}

func (r *TrackedFoodRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&trackedFoodRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrEntryNotFound
	}
	r.log.Debug("tracked food deleted", "id", id)
	return nil
}

// ListByDate returns the entries of one day in the order they were logged
func (r *TrackedFoodRepo) ListByDate(ctx context.Context, date string) ([]domain.TrackedFoodEntry, error) {
	var rows []trackedFoodRow
	if err := r.db.WithContext(ctx).Where("date = ?", date).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.TrackedFoodEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
