package domain

import "time"

// NutrientTable holds per-100g nutrient values as published by Open Food Facts.
// A nil field means the value is unknown, which is different from zero.
type NutrientTable struct {
	Energy        *float64 `json:"energy_100g,omitempty"`
	EnergyKcal    *float64 `json:"energy-kcal_100g,omitempty"`
	Fat           *float64 `json:"fat_100g,omitempty"`
	SaturatedFat  *float64 `json:"saturated-fat_100g,omitempty"`
	Carbohydrates *float64 `json:"carbohydrates_100g,omitempty"`
	Sugars        *float64 `json:"sugars_100g,omitempty"`
	Fiber         *float64 `json:"fiber_100g,omitempty"`
	Proteins      *float64 `json:"proteins_100g,omitempty"`
	Salt          *float64 `json:"salt_100g,omitempty"`
	Sodium        *float64 `json:"sodium_100g,omitempty"`
	Calcium       *float64 `json:"calcium_100g,omitempty"`
	Iron          *float64 `json:"iron_100g,omitempty"`
	VitaminC      *float64 `json:"vitamin-c_100g,omitempty"`
	VitaminA      *float64 `json:"vitamin-a_100g,omitempty"`
}

// Value returns a pointer to v, for building nutrient tables inline.
func Value(v float64) *float64 {
	return &v
}

// Product is a food product fetched from the food database
type Product struct {
	Code            string        `json:"code"`
	ProductName     string        `json:"product_name"`
	Brands          string        `json:"brands,omitempty"`
	ImageURL        string        `json:"image_url,omitempty"`
	ImageSmallURL   string        `json:"image_small_url,omitempty"`
	Nutriments      NutrientTable `json:"nutriments"`
	IngredientsText string        `json:"ingredients_text,omitempty"`
	Allergens       string        `json:"allergens,omitempty"`
	Categories      string        `json:"categories,omitempty"`
	Labels          string        `json:"labels,omitempty"`
	Quantity        string        `json:"quantity,omitempty"`
	ServingSize     string        `json:"serving_size,omitempty"`
	NutriscoreGrade string        `json:"nutriscore_grade,omitempty"`
	NovaGroup       int           `json:"nova_group,omitempty"`
	EcoscoreGrade   string        `json:"ecoscore_grade,omitempty"`
}

// HistoryItem is a product the user looked up, with the time of the lookup
type HistoryItem struct {
	Product   Product   `json:"product"`
	ScannedAt time.Time `json:"timestamp"`
}

// NutrientIndicators are traffic-light colors for the nutrients shown on a product page
type NutrientIndicators struct {
	Sugar   string `json:"sugar"`
	Salt    string `json:"salt"`
	Fat     string `json:"fat"`
	Protein string `json:"protein"`
	Fiber   string `json:"fiber"`
}

// ProductReport is a product together with its derived scores
type ProductReport struct {
	Product     Product            `json:"product"`
	HealthScore HealthScore        `json:"healthScore"`
	Indicators  NutrientIndicators `json:"indicators"`
}
