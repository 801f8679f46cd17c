package domain

// Gender selects the Mifflin-St Jeor constant
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid reports whether g is a known gender
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// ActivityLevel describes how active the user is during a typical week
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// ActivityLevels lists every supported activity level
var ActivityLevels = []ActivityLevel{
	ActivitySedentary,
	ActivityLight,
	ActivityModerate,
	ActivityActive,
	ActivityVeryActive,
}

// Valid reports whether a is one of ActivityLevels
func (a ActivityLevel) Valid() bool {
	for _, level := range ActivityLevels {
		if a == level {
			return true
		}
	}
	return false
}

// UserProfile is the single profile the calorie goals are computed from
type UserProfile struct {
	Name          string        `json:"name"`
	Age           int           `json:"age"`    // years
	Height        float64       `json:"height"` // cm
	Weight        float64       `json:"weight"` // kg
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
}

// CalorieGoals are daily calorie targets derived from a profile
type CalorieGoals struct {
	BMR         int `json:"bmr"`
	TDEE        int `json:"tdee"`
	Maintenance int `json:"maintenance"`
	WeightLoss  int `json:"weightLoss"` // 500 kcal deficit
	WeightGain  int `json:"weightGain"` // 500 kcal surplus
}
