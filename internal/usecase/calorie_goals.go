package usecase

import (
	"math"

	"github.com/foodlens/backend/internal/domain"
)

// Calorie offsets for roughly one pound per week of loss or gain
const (
	weightLossDeficit = 500
	weightGainSurplus = 500
)

// activityMultipliers maps every domain.ActivityLevel to its TDEE factor
var activityMultipliers = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:  1.2,   // no exercise
	domain.ActivityLight:      1.375, // 1-3 workouts/week
	domain.ActivityModerate:   1.55,  // 3-5 workouts/week
	domain.ActivityActive:     1.725, // 6-7 workouts/week
	domain.ActivityVeryActive: 1.9,   // physical labor + workouts
}

// ActivityMultiplier returns the TDEE factor for level
func ActivityMultiplier(level domain.ActivityLevel) (float64, bool) {
	m, ok := activityMultipliers[level]
	return m, ok
}

// CalculateBMR computes the basal metabolic rate with the Mifflin-St Jeor equation.
//
//	men:   10 x weight(kg) + 6.25 x height(cm) - 5 x age + 5
//	women: 10 x weight(kg) + 6.25 x height(cm) - 5 x age - 161
func CalculateBMR(profile domain.UserProfile) float64 {
	base := 10*profile.Weight + 6.25*profile.Height - 5*float64(profile.Age)
	if profile.Gender == domain.GenderMale {
		return base + 5
	}
	return base - 161
}

// CalculateTDEE multiplies bmr by the profile's activity factor.
// An unknown activity level yields 0.
func CalculateTDEE(profile domain.UserProfile, bmr float64) float64 {
	m, _ := ActivityMultiplier(profile.ActivityLevel)
	return bmr * m
}

// CalculateCalorieGoals derives every calorie goal from profile.
// TDEE is rounded once; the loss and gain goals offset the rounded value.
func CalculateCalorieGoals(profile domain.UserProfile) domain.CalorieGoals {
	bmr := CalculateBMR(profile)
	tdee := roundHalfUp(CalculateTDEE(profile, bmr))

	return domain.CalorieGoals{
		BMR:         roundHalfUp(bmr),
		TDEE:        tdee,
		Maintenance: tdee,
		WeightLoss:  tdee - weightLossDeficit,
		WeightGain:  tdee + weightGainSurplus,
	}
}

// roundHalfUp rounds to the nearest integer with halves going toward +Inf
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
