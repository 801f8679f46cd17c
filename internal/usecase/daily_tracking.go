package usecase

import "github.com/foodlens/backend/internal/domain"

// AggregateDailyTracking collects the entries logged on date and sums their
// scaled macros. The input slice is not modified.
func AggregateDailyTracking(entries []domain.TrackedFoodEntry, date string) domain.DailyCalorieTracking {
	tracking := domain.DailyCalorieTracking{
		Date:  date,
		Foods: []domain.TrackedFoodEntry{},
	}

	for _, entry := range entries {
		if entry.Date != date {
			continue
		}
		nutrition := CalculateNutritionForAmount(entry.Product.Nutriments, entry.Amount)

		tracking.Foods = append(tracking.Foods, entry)
		tracking.TotalCalories += nutrition.Calories
		tracking.TotalFat += nutrition.Fat
		tracking.TotalCarbs += nutrition.Carbs
		tracking.TotalProtein += nutrition.Protein
	}

	return tracking
}
