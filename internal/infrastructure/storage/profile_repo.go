package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/foodlens/backend/internal/domain"
	"github.com/foodlens/backend/internal/pkg/logger"
)

// ProfileRepo persists the single user profile
type ProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) *ProfileRepo {
	return &ProfileRepo{db: db, log: baseLog.With("repo", "ProfileRepo")}
}

func (r *ProfileRepo) Get(ctx context.Context) (*domain.UserProfile, error) {
	var row profileRow
	err := r.db.WithContext(ctx).First(&row, profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

// Save overwrites the stored profile
func (r *ProfileRepo) Save(ctx context.Context, profile *domain.UserProfile) error {
	row := profileRow{
		ID:            profileID,
		Name:          profile.Name,
		Age:           profile.Age,
		Height:        profile.Height,
		Weight:        profile.Weight,
		Gender:        string(profile.Gender),
		ActivityLevel: string(profile.ActivityLevel),
	}
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return err
	}
	r.log.Debug("profile saved")
	return nil
}
