package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/foodlens/backend/internal/domain"
	"github.com/foodlens/backend/internal/pkg/logger"
)

// ProfileService stores the user profile and derives calorie goals from it
type ProfileService struct {
	profiles domain.ProfileRepository
	tracking *TrackingService
	log      *logger.Logger
}

// NewProfileService creates a new profile service with dependencies
func NewProfileService(profiles domain.ProfileRepository, tracking *TrackingService, log *logger.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		tracking: tracking,
		log:      log.With("service", "ProfileService"),
	}
}

// SaveProfile validates and overwrites the stored profile
func (s *ProfileService) SaveProfile(ctx context.Context, profile domain.UserProfile) (*domain.UserProfile, error) {
	profile.Name = strings.TrimSpace(profile.Name)
	if err := ValidateProfile(profile); err != nil {
		return nil, err
	}
	if err := s.profiles.Save(ctx, &profile); err != nil {
		return nil, err
	}
	s.log.Info("profile saved", "activity_level", profile.ActivityLevel)
	return &profile, nil
}

func (s *ProfileService) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	return s.profiles.Get(ctx)
}

// GetCalorieGoals computes the goals of the stored profile
func (s *ProfileService) GetCalorieGoals(ctx context.Context) (*domain.CalorieGoals, error) {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}
	goals := CalculateCalorieGoals(*profile)
	return &goals, nil
}

// GetDailyProgress compares the intake logged on date with the maintenance goal
func (s *ProfileService) GetDailyProgress(ctx context.Context, date string) (*domain.DailyProgress, error) {
	goals, err := s.GetCalorieGoals(ctx)
	if err != nil {
		return nil, err
	}
	tracking, err := s.tracking.GetDailyTracking(ctx, date)
	if err != nil {
		return nil, err
	}
	return &domain.DailyProgress{
		Goals:             *goals,
		Tracking:          *tracking,
		RemainingCalories: goals.Maintenance - roundHalfUp(tracking.TotalCalories),
	}, nil
}

// ValidateProfile checks the fields the calorie formulas depend on
func ValidateProfile(profile domain.UserProfile) error {
	switch {
	case strings.TrimSpace(profile.Name) == "":
		return fmt.Errorf("%w: name is required", domain.ErrInvalidProfile)
	case profile.Age <= 0:
		return fmt.Errorf("%w: age must be positive", domain.ErrInvalidProfile)
	case profile.Height <= 0:
		return fmt.Errorf("%w: height must be positive", domain.ErrInvalidProfile)
	case profile.Weight <= 0:
		return fmt.Errorf("%w: weight must be positive", domain.ErrInvalidProfile)
	case !profile.Gender.Valid():
		return fmt.Errorf("%w: unknown gender %q", domain.ErrInvalidProfile, profile.Gender)
	case !profile.ActivityLevel.Valid():
		return fmt.Errorf("%w: unknown activity level %q", domain.ErrInvalidProfile, profile.ActivityLevel)
	}
	return nil
}
