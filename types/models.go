package types

import (
	"time"
)

// Sex values accepted by the metrics engine
const (
	SexMale   = "male"
	SexFemale = "female"
)

// Activity levels ordered from least to most active
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

// Goals for the calorie/macro targets
const (
	GoalMaintain    = "maintain"
	GoalLose        = "lose"
	GoalBuildMuscle = "build_muscle"
)

// BMI status labels
const (
	BMIUnderweight = "Underweight"
	BMINormal      = "Normal"
	BMIOverweight  = "Overweight"
)

// Health conditions that influence suggestion text
const (
	ConditionDiabetes     = "diabetes"
	ConditionHypertension = "hypertension"
	ConditionThyroid      = "thyroid"
)

// User represents a registered account
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileSnapshot contains the body metrics a calculation runs on.
// The pointer fields are optional auxiliary inputs; when nil the
// corresponding extended metrics and suggestion rules are skipped.
type ProfileSnapshot struct {
	WeightKg      float64  `json:"weight_kg"`      // 10-250
	HeightM       float64  `json:"height_m"`       // 0.5-2.5
	AgeYears      int      `json:"age_years"`      // 5-110
	Sex           string   `json:"sex"`            // "male" or "female"
	ActivityLevel string   `json:"activity_level"` // sedentary..very_active
	SleepHours    *float64 `json:"sleep_hours,omitempty"`
	Steps         *int     `json:"steps,omitempty"`
	WaterL        *float64 `json:"water_l,omitempty"`
	Conditions    []string `json:"conditions,omitempty"`
}

// CurrentIntake contains what the user is currently eating, used to
// compute the protein gap for suggestions
type CurrentIntake struct {
	ProteinG float64 `json:"protein_g"`
}

// MacroTargets contains the daily macro targets for a goal
type MacroTargets struct {
	Calories int `json:"calories"` // Daily calorie target
	ProteinG int `json:"protein_g"`
	FatG     int `json:"fat_g"`
	CarbG    int `json:"carb_g"`
}

// DerivedMetrics is the full result of one engine calculation
type DerivedMetrics struct {
	BMI            float64       `json:"bmi"`
	BMIStatus      string        `json:"bmi_status"`
	BMR            float64       `json:"bmr"`  // kcal/day
	TDEE           float64       `json:"tdee"` // kcal/day
	WaterTargetL   float64       `json:"water_target_l"`
	ProteinTargetG float64       `json:"protein_target_g"`
	IdealWeightKg  float64       `json:"ideal_weight_kg"`
	Macros         *MacroTargets `json:"macros,omitempty"`         // only when a goal is given
	RecoveryScore  *int          `json:"recovery_score,omitempty"` // only when sleep and steps are given
	Suggestions    []string      `json:"suggestions"`
}

// HealthRecord is one persisted snapshot together with the derived
// values that were current when it was saved
type HealthRecord struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	Date           string    `json:"date"` // YYYY-MM-DD
	WeightKg       float64   `json:"weight_kg"`
	HeightM        float64   `json:"height_m"`
	AgeYears       int       `json:"age_years"`
	Sex            string    `json:"sex"`
	ActivityLevel  string    `json:"activity_level"`
	BMI            float64   `json:"bmi"`
	BMIStatus      string    `json:"bmi_status"`
	BMR            float64   `json:"bmr"`
	TDEE           float64   `json:"tdee"`
	WaterTargetL   float64   `json:"water_target_l"`
	ProteinTargetG float64   `json:"protein_target_g"`
	CreatedAt      time.Time `json:"created_at"`
}

// WeightEntry is one row of the weight tracking time series
type WeightEntry struct {
	ID        string    `json:"id"`
	WeightKg  float64   `json:"weight_kg"`
	CreatedAt time.Time `json:"created_at"`
}
