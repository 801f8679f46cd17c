package domain

import "time"

// DateLayout is the calendar-day format used for tracked food dates
const DateLayout = "2006-01-02"

// ProductSnapshot is the part of a product captured when it is tracked.
// Later changes to the product do not affect entries that were already logged.
type ProductSnapshot struct {
	Code        string        `json:"code"`
	ProductName string        `json:"product_name"`
	ImageURL    string        `json:"image_url,omitempty"`
	Nutriments  NutrientTable `json:"nutriments"`
}

// TrackedFoodEntry is one logged portion of a product
type TrackedFoodEntry struct {
	ID          string          `json:"id"`
	Product     ProductSnapshot `json:"product"`
	Amount      float64         `json:"amount"`                // grams
	ServingSize *float64        `json:"servingSize,omitempty"` // grams, set when logged by serving
	Date        string          `json:"date"`                  // YYYY-MM-DD
	CreatedAt   time.Time       `json:"timestamp"`
}

// ScaledNutrition is the macro content of a given amount of food
type ScaledNutrition struct {
	Calories float64 `json:"calories"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
}

// DailyCalorieTracking is every entry logged on one day plus the macro totals
type DailyCalorieTracking struct {
	Date          string             `json:"date"`
	Foods         []TrackedFoodEntry `json:"foods"`
	TotalCalories float64            `json:"totalCalories"`
	TotalFat      float64            `json:"totalFat"`
	TotalCarbs    float64            `json:"totalCarbs"`
	TotalProtein  float64            `json:"totalProtein"`
}

// AmountRequest describes how much of a product was eaten, either in grams
// or as a number of servings of the product's labelled serving size.
type AmountRequest struct {
	Grams          float64 `json:"grams"`
	Servings       float64 `json:"servings"`
	UseServingSize bool    `json:"useServingSize"`
}

// DailyProgress compares a day's intake with the profile's calorie goals
type DailyProgress struct {
	Goals             CalorieGoals         `json:"goals"`
	Tracking          DailyCalorieTracking `json:"tracking"`
	RemainingCalories int                  `json:"remainingCalories"`
}
