package openfoodfacts

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/foodlens/backend/internal/domain"
)

const unknownProductName = "Unknown Product"

// offResponse is the envelope of GET /api/v0/product/{barcode}.json
type offResponse struct {
	Status        int         `json:"status"`
	Code          string      `json:"code"`
	StatusVerbose string      `json:"status_verbose"`
	Product       *offProduct `json:"product"`
}

type offProduct struct {
	Code            string         `json:"code"`
	ProductName     string         `json:"product_name"`
	Brands          string         `json:"brands"`
	ImageURL        string         `json:"image_url"`
	ImageSmallURL   string         `json:"image_small_url"`
	Nutriments      map[string]any `json:"nutriments"`
	IngredientsText string         `json:"ingredients_text"`
	Allergens       string         `json:"allergens"`
	Categories      string         `json:"categories"`
	Labels          string         `json:"labels"`
	Quantity        string         `json:"quantity"`
	ServingSize     string         `json:"serving_size"`
	NutriscoreGrade string         `json:"nutriscore_grade"`
	NovaGroup       any            `json:"nova_group"`
	EcoscoreGrade   string         `json:"ecoscore_grade"`
}

// MapToProduct converts an Open Food Facts product into our domain Product.
// The requested barcode is used when the record carries no code.
func MapToProduct(p *offProduct, barcode string) *domain.Product {
	code := strings.TrimSpace(p.Code)
	if code == "" {
		code = barcode
	}
	name := strings.TrimSpace(p.ProductName)
	if name == "" {
		name = unknownProductName
	}

	var novaGroup int
	if v, ok := parseFloatAny(p.NovaGroup); ok {
		novaGroup = int(v)
	}

	return &domain.Product{
		Code:            code,
		ProductName:     name,
		Brands:          p.Brands,
		ImageURL:        p.ImageURL,
		ImageSmallURL:   p.ImageSmallURL,
		Nutriments:      extractNutrients(p.Nutriments),
		IngredientsText: p.IngredientsText,
		Allergens:       p.Allergens,
		Categories:      p.Categories,
		Labels:          p.Labels,
		Quantity:        p.Quantity,
		ServingSize:     p.ServingSize,
		NutriscoreGrade: p.NutriscoreGrade,
		NovaGroup:       novaGroup,
		EcoscoreGrade:   p.EcoscoreGrade,
	}
}

// extractNutrients picks the per-100g keys we know about. Missing or
// non-numeric values stay nil.
func extractNutrients(n map[string]any) domain.NutrientTable {
	get := func(key string) *float64 {
		if v, ok := parseFloatAny(n[key]); ok {
			return domain.Value(v)
		}
		return nil
	}

	return domain.NutrientTable{
		Energy:        get("energy_100g"),
		EnergyKcal:    get("energy-kcal_100g"),
		Fat:           get("fat_100g"),
		SaturatedFat:  get("saturated-fat_100g"),
		Carbohydrates: get("carbohydrates_100g"),
		Sugars:        get("sugars_100g"),
		Fiber:         get("fiber_100g"),
		Proteins:      get("proteins_100g"),
		Salt:          get("salt_100g"),
		Sodium:        get("sodium_100g"),
		Calcium:       get("calcium_100g"),
		Iron:          get("iron_100g"),
		VitaminC:      get("vitamin-c_100g"),
		VitaminA:      get("vitamin-a_100g"),
	}
}

// parseFloatAny accepts the number encodings Open Food Facts uses in practice.
// Non-finite values are reported as unknown.
func parseFloatAny(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		f, err = t.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
