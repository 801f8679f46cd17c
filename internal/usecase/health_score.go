package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/foodlens/backend/internal/domain"
)

const baselineHealthScore = 100

// gradeBand maps the lowest score of a band to its grade, color and label
type gradeBand struct {
	minScore int
	grade    domain.Grade
	color    string
	label    string
}

// gradeBands are ordered from best to worst; the last band catches everything
var gradeBands = []gradeBand{
	{80, domain.GradeA, "#10B981", "Excellent"},
	{60, domain.GradeB, "#84CC16", "Good"},
	{40, domain.GradeC, "#F59E0B", "Average"},
	{20, domain.GradeD, "#F97316", "Poor"},
	{0, domain.GradeE, "#EF4444", "Very Poor"},
}

// CalculateHealthScore scores a nutrient table from 0 to 100.
// Each nutrient check adjusts the score independently, in a fixed order, and may
// add one warning or positive. Unknown nutrients are skipped.
func CalculateHealthScore(table domain.NutrientTable) domain.HealthScore {
	score := baselineHealthScore
	warnings := []string{}
	positives := []string{}

	if v := table.Sugars; v != nil {
		if *v > 15 {
			score -= 20
			warnings = append(warnings, "High sugar content: " + toFixed(*v, 1) + "g per 100g")
		} else if *v < 5 {
			score += 5
			positives = append(positives, "Very low sugar content")
		}
	}

	if v := table.Salt; v != nil {
		if *v > 1.5 {
			score -= 15
			warnings = append(warnings, "High salt content: " + toFixed(*v, 2) + "g per 100g")
		} else if *v < 0.3 {
			score += 5
			positives = append(positives, "Very low salt content")
		}
	}

	if v := energyKcal(table); v != nil {
		if *v > 500 {
			score -= 15
			warnings = append(warnings, "Very high calorie content: " + toFixed(*v, 0) + " kcal per 100g")
		} else if *v > 400 {
			score -= 10
			warnings = append(warnings, "High calorie content: " + toFixed(*v, 0) + " kcal per 100g")
		}
	}

	if v := table.Proteins; v != nil {
		if *v > 20 {
			score += 15
			positives = append(positives, "Excellent protein content: " + toFixed(*v, 1) + "g per 100g")
		} else if *v > 10 {
			score += 10
			positives = append(positives, "Good protein content: " + toFixed(*v, 1) + "g per 100g")
		}
	}

	if v := table.Fiber; v != nil && *v > 5 {
		score += 10
		positives = append(positives, "High fiber content: " + toFixed(*v, 1) + "g per 100g")
	}

	if v := table.SaturatedFat; v != nil && *v > 5 {
		score -= 10
		warnings = append(warnings, "High saturated fat: " + toFixed(*v, 1) + "g per 100g")
	}

	score = clampScore(score)
	band := bandFor(score)

	return domain.HealthScore{
		Score:     score,
		Grade:     band.grade,
		Color:     band.color,
		Label:     band.label,
		Warnings:  warnings,
		Positives: positives,
	}
}

// toFixed formats v with digits decimals, rounding ties away from zero.
// The float is expanded exactly first so 1.005 stays below the tie.
func toFixed(v float64, digits int) string {
	return decimal.NewFromFloatWithExponent(v, -20).StringFixed(int32(digits))
}

// energyKcal prefers energy-kcal_100g and falls back to energy_100g only when
// the kcal value is absent. An explicit 0 kcal is kept.
func energyKcal(table domain.NutrientTable) *float64 {
	if table.EnergyKcal != nil {
		return table.EnergyKcal
	}
	return table.Energy
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func bandFor(score int) gradeBand {
	for _, band := range gradeBands {
		if score >= band.minScore {
			return band
		}
	}
	return gradeBands[len(gradeBands)-1]
}
