package storage

import (
	"time"

	"gorm.io/datatypes"

	"github.com/foodlens/backend/internal/domain"
)

// profileID is the primary key of the only profile row
const profileID = 1

type profileRow struct {
	ID            uint    `gorm:"primaryKey"`
	Name          string  `gorm:"not null"`
	Age           int     `gorm:"not null"`
	Height        float64 `gorm:"not null"`
	Weight        float64 `gorm:"not null"`
	Gender        string  `gorm:"not null"`
	ActivityLevel string  `gorm:"not null"`
	UpdatedAt     time.Time
}

func (profileRow) TableName() string { return "user_profile" }

func (r profileRow) toDomain() *domain.UserProfile {
	return &domain.UserProfile{
		Name:          r.Name,
		Age:           r.Age,
		Height:        r.Height,
		Weight:        r.Weight,
		Gender:        domain.Gender(r.Gender),
		ActivityLevel: domain.ActivityLevel(r.ActivityLevel),
	}
}

type trackedFoodRow struct {
	ID          string                                     `gorm:"primaryKey"`
	Code        string                                     `gorm:"index;not null"`
	Product     datatypes.JSONType[domain.ProductSnapshot] `gorm:"not null"`
	Amount      float64                                    `gorm:"not null"`
	ServingSize *float64
	Date        string    `gorm:"index;not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (trackedFoodRow) TableName() string { return "tracked_food" }

func newTrackedFoodRow(e *domain.TrackedFoodEntry) *trackedFoodRow {
	return &trackedFoodRow{
		ID:          e.ID,
		Code:        e.Product.Code,
		Product:     datatypes.NewJSONType(e.Product),
		Amount:      e.Amount,
		ServingSize: e.ServingSize,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt.UTC(),
	}
}

func (r trackedFoodRow) toDomain() domain.TrackedFoodEntry {
	return domain.TrackedFoodEntry{
		ID:          r.ID,
		Product:     r.Product.Data(),
		Amount:      r.Amount,
		ServingSize: r.ServingSize,
		Date:        r.Date,
		CreatedAt:   r.CreatedAt,
	}
}

type historyRow struct {
	Code      string                             `gorm:"primaryKey"`
	Product   datatypes.JSONType[domain.Product] `gorm:"not null"`
	ScannedAt time.Time                          `gorm:"index;not null"`
}

func (historyRow) TableName() string { return "scan_history" }

type favoriteRow struct {
	Code      string                             `gorm:"primaryKey"`
	Product   datatypes.JSONType[domain.Product] `gorm:"not null"`
	CreatedAt time.Time
}

func (favoriteRow) TableName() string { return "favorite" }

type comparisonRow struct {
	Code     string                             `gorm:"primaryKey"`
	Product  datatypes.JSONType[domain.Product] `gorm:"not null"`
	Position int64                              `gorm:"index;not null"`
}

func (comparisonRow) TableName() string { return "comparison" }
