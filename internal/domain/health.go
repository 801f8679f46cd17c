package domain

// Grade is the letter grade derived from a health score
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeE Grade = "E"
)

// HealthScore summarizes the nutrient quality of a product
type HealthScore struct {
	Score     int      `json:"score"` // 0-100
	Grade     Grade    `json:"grade"`
	Color     string   `json:"color"`
	Label     string   `json:"label"`
	Warnings  []string `json:"warnings"`
	Positives []string `json:"positives"`
}
