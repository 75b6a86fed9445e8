package service

import (
	"math"

	"github.com/snehamhatre1409-sys/Health-Management-System/types"
)

// activityMultipliers maps activity levels to their TDEE factor.
// This is the single source of truth for valid activity levels and
// is also used by profile validation.
var activityMultipliers = map[string]float64{
	types.ActivitySedentary:  1.2,
	types.ActivityLight:      1.375,
	types.ActivityModerate:   1.55,
	types.ActivityActive:     1.725,
	types.ActivityVeryActive: 1.9,
}

// goalCalorieOffsets shifts the TDEE into a goal-specific calorie target
var goalCalorieOffsets = map[string]float64{
	types.GoalMaintain:    0,
	types.GoalLose:        -500,
	types.GoalBuildMuscle: 300,
}

// macroRatio is one goal's calorie split. Each row sums to 1.0.
type macroRatio struct {
	protein float64
	fat     float64
	carb    float64
}

var goalMacroRatios = map[string]macroRatio{
	types.GoalMaintain:    {protein: 0.30, fat: 0.30, carb: 0.40},
	types.GoalLose:        {protein: 0.40, fat: 0.30, carb: 0.30},
	types.GoalBuildMuscle: {protein: 0.35, fat: 0.25, carb: 0.40},
}

const (
	kcalPerGramProtein = 4
	kcalPerGramFat     = 9
	kcalPerGramCarb    = 4

	proteinGramsPerKg = 2.0   // daily protein target per kg body weight
	waterLitersPerKg  = 0.035 // hydration rule: ~35ml per kg
	idealWeightBMI    = 22.0  // middle of the normal BMI range
)

// CalculateHealthMetrics computes the full set of derived health
// indicators for one profile snapshot. The goal is optional ("" skips the
// macro targets), as is the current intake (nil skips the protein-gap
// suggestion). The result is a fresh value on every call; on any invalid
// input the error wraps ErrInvalidInput and no partial result is returned.
func CalculateHealthMetrics(profile types.ProfileSnapshot, goal string, intake *types.CurrentIntake) (*types.DerivedMetrics, error) {
	if err := ValidateProfile(profile); err != nil {
		return nil, err
	}
	if err := ValidateGoal(goal); err != nil {
		return nil, err
	}
	if err := ValidateIntake(intake); err != nil {
		return nil, err
	}

	bmi := round2(profile.WeightKg / (profile.HeightM * profile.HeightM))
	bmr := round2(calculateBMR(profile.WeightKg, profile.HeightM, profile.AgeYears, profile.Sex))
	tdee := round2(bmr * activityMultipliers[profile.ActivityLevel])

	metrics := &types.DerivedMetrics{
		BMI:            bmi,
		BMIStatus:      bmiStatus(bmi),
		BMR:            bmr,
		TDEE:           tdee,
		WaterTargetL:   round2(profile.WeightKg * waterLitersPerKg),
		ProteinTargetG: round2(profile.WeightKg * proteinGramsPerKg),
		IdealWeightKg:  round2(idealWeightBMI * profile.HeightM * profile.HeightM),
	}

	if goal != "" {
		metrics.Macros = calculateMacros(tdee, goal)
	}
	if profile.SleepHours != nil && profile.Steps != nil {
		score := recoveryScore(*profile.SleepHours, *profile.Steps)
		metrics.RecoveryScore = &score
	}

	metrics.Suggestions = buildSuggestions(metrics, profile, intake)

	return metrics, nil
}

// calculateBMR uses the Mifflin-St Jeor equation. Height is stored in
// meters and converted to centimeters for the formula.
func calculateBMR(weightKg, heightM float64, ageYears int, sex string) float64 {
	base := 10*weightKg + 6.25*(heightM*100) - 5*float64(ageYears)
	if sex == types.SexMale {
		return base + 5
	}
	return base - 161
}

// bmiStatus classifies a BMI value. The lower cutoff is inclusive, the
// upper cutoff exclusive, so exactly 24.9 counts as Overweight.
func bmiStatus(bmi float64) string {
	switch {
	case bmi < 18.5:
		return types.BMIUnderweight
	case bmi < 24.9:
		return types.BMINormal
	default:
		return types.BMIOverweight
	}
}

// calculateMacros splits the goal-adjusted calorie target into protein,
// fat and carb grams using the fixed kcal-per-gram constants
func calculateMacros(tdee float64, goal string) *types.MacroTargets {
	targetCalories := tdee + goalCalorieOffsets[goal]
	ratio := goalMacroRatios[goal]

	return &types.MacroTargets{
		Calories: int(math.Round(targetCalories)),
		ProteinG: int(math.Round(targetCalories * ratio.protein / kcalPerGramProtein)),
		FatG:     int(math.Round(targetCalories * ratio.fat / kcalPerGramFat)),
		CarbG:    int(math.Round(targetCalories * ratio.carb / kcalPerGramCarb)),
	}
}

// recoveryScore rates sleep against an 8 hour target and steps against a
// 10000 step target, equally weighted, on a 0-100 scale
func recoveryScore(sleepHours float64, steps int) int {
	sleepPart := sleepHours / 8
	if sleepPart > 1 {
		sleepPart = 1
	}
	stepPart := float64(steps) / 10000
	if stepPart > 1 {
		stepPart = 1
	}
	return int(math.Round(50*sleepPart + 50*stepPart))
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
