package usecase

import "github.com/foodlens/backend/internal/domain"

// CalculateNutritionForAmount scales the per-100g macros of a nutrient table to
// amount grams. Unknown values count as zero. Negative amounts are not rejected.
func CalculateNutritionForAmount(table domain.NutrientTable, amount float64) domain.ScaledNutrition {
	return domain.ScaledNutrition{
		Calories: per100g(table.EnergyKcal, amount),
		Fat:      per100g(table.Fat, amount),
		Carbs:    per100g(table.Carbohydrates, amount),
		Protein:  per100g(table.Proteins, amount),
	}
}

// ScaleNutrientTable scales every known value of table to amount grams.
// Unknown values stay unknown.
func ScaleNutrientTable(table domain.NutrientTable, amount float64) domain.NutrientTable {
	scale := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		return domain.Value(per100g(v, amount))
	}

	return domain.NutrientTable{
		Energy:        scale(table.Energy),
		EnergyKcal:    scale(table.EnergyKcal),
		Fat:           scale(table.Fat),
		SaturatedFat:  scale(table.SaturatedFat),
		Carbohydrates: scale(table.Carbohydrates),
		Sugars:        scale(table.Sugars),
		Fiber:         scale(table.Fiber),
		Proteins:      scale(table.Proteins),
		Salt:          scale(table.Salt),
		Sodium:        scale(table.Sodium),
		Calcium:       scale(table.Calcium),
		Iron:          scale(table.Iron),
		VitaminC:      scale(table.VitaminC),
		VitaminA:      scale(table.VitaminA),
	}
}

func per100g(value *float64, amount float64) float64 {
	if value == nil {
		return 0
	}
	return *value * amount / 100
}
