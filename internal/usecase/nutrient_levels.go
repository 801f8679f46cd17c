package usecase

import (
	"fmt"

	"github.com/foodlens/backend/internal/domain"
)

// NutrientKind selects the thresholds used by NutrientColor
type NutrientKind string

const (
	NutrientSugar   NutrientKind = "sugar"
	NutrientSalt    NutrientKind = "salt"
	NutrientFat     NutrientKind = "fat"
	NutrientProtein NutrientKind = "protein"
	NutrientFiber   NutrientKind = "fiber"
)

const (
	colorGood    = "#10B981"
	colorMedium  = "#F59E0B"
	colorBad     = "#EF4444"
	colorUnknown = "#6B7280"
)

// NutrientColor returns a traffic-light color for a per-100g value.
// Sugar, salt and fat are better when low; protein and fiber when high.
func NutrientColor(value *float64, kind NutrientKind) string {
	if value == nil {
		return colorUnknown
	}
	v := *value

	switch kind {
	case NutrientSugar:
		return lowerIsBetter(v, 15, 5)
	case NutrientSalt:
		return lowerIsBetter(v, 1.5, 0.3)
	case NutrientFat:
		return lowerIsBetter(v, 5, 3)
	case NutrientProtein:
		return higherIsBetter(v, 10, 5)
	case NutrientFiber:
		return higherIsBetter(v, 5, 3)
	default:
		return colorUnknown
	}
}

func lowerIsBetter(v, high, medium float64) string {
	switch {
	case v > high:
		return colorBad
	case v > medium:
		return colorMedium
	default:
		return colorGood
	}
}

func higherIsBetter(v, good, medium float64) string {
	switch {
	case v > good:
		return colorGood
	case v > medium:
		return colorMedium
	default:
		return colorBad
	}
}

// BuildNutrientIndicators colors the nutrients shown on a product page.
// The fat indicator follows saturated fat.
func BuildNutrientIndicators(table domain.NutrientTable) domain.NutrientIndicators {
	return domain.NutrientIndicators{
		Sugar:   NutrientColor(table.Sugars, NutrientSugar),
		Salt:    NutrientColor(table.Salt, NutrientSalt),
		Fat:     NutrientColor(table.SaturatedFat, NutrientFat),
		Protein: NutrientColor(table.Proteins, NutrientProtein),
		Fiber:   NutrientColor(table.Fiber, NutrientFiber),
	}
}

// FormatNutrient renders a value with one decimal, or "N/A" when unknown
func FormatNutrient(value *float64, unit string) string {
	if value == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%s", *value, unit)
}
