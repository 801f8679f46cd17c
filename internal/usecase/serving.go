package usecase

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/foodlens/backend/internal/domain"
)

// servingNumberRegex matches the leading quantity of a label like "30 g" or "1.5 cups (250 ml)"
var servingNumberRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

// ParseServingSize extracts the first number of a serving-size label, in grams
func ParseServingSize(servingSize string) (float64, error) {
	match := servingNumberRegex.FindStringSubmatch(servingSize)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidServingSize, servingSize)
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidServingSize, servingSize)
	}
	return value, nil
}

// ResolveAmount converts an amount request into grams of product.
// In serving mode a missing or non-positive servings count means one serving.
func ResolveAmount(product domain.Product, request domain.AmountRequest) (float64, error) {
	grams := request.Grams

	if request.UseServingSize {
		if product.ServingSize == "" {
			return 0, fmt.Errorf("%w: product has no serving size", domain.ErrInvalidServingSize)
		}
		servingGrams, err := ParseServingSize(product.ServingSize)
		if err != nil {
			return 0, err
		}
		servings := request.Servings
		if servings <= 0 {
			servings = 1
		}
		grams = servingGrams * servings
	}

	if grams <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return grams, nil
}
