package service

import (
	"fmt"

	"github.com/snehamhatre1409-sys/Health-Management-System/types"
)

// DefaultSuggestion is emitted when no other rule fires
const DefaultSuggestion = "Your metrics look balanced. Keep up your current routine."

// buildSuggestions evaluates the fixed rule list top to bottom. Rules are
// independent and every matching rule appends its message; only the
// fallback is conditional on nothing else having fired.
func buildSuggestions(metrics *types.DerivedMetrics, profile types.ProfileSnapshot, intake *types.CurrentIntake) []string {
	var suggestions []string

	switch metrics.BMIStatus {
	case types.BMIUnderweight:
		suggestions = append(suggestions, "Your BMI is below the healthy range. Consider a calorie surplus with nutrient-dense meals.")
	case types.BMIOverweight:
		suggestions = append(suggestions, "Your BMI is above the healthy range. A moderate calorie deficit and regular activity can help.")
	}

	if intake != nil {
		proteinGap := intake.ProteinG - metrics.ProteinTargetG
		if proteinGap < 0 {
			suggestions = append(suggestions,
				fmt.Sprintf("Your protein intake is about %.0fg short of your %.0fg daily target. Add a protein source to each meal.", -proteinGap, metrics.ProteinTargetG))
		}
	}

	for _, condition := range profile.Conditions {
		switch condition {
		case types.ConditionDiabetes:
			suggestions = append(suggestions, "With diabetes, prefer low-glycemic carbohydrates and keep meal times consistent.")
		case types.ConditionHypertension:
			suggestions = append(suggestions, "With hypertension, limit sodium intake and favor potassium-rich foods.")
		case types.ConditionThyroid:
			suggestions = append(suggestions, "With a thyroid condition, keep meals regular and discuss iodine intake with your doctor.")
		}
	}

	if profile.SleepHours != nil && *profile.SleepHours < 7 {
		suggestions = append(suggestions, "You are sleeping less than 7 hours. Aim for 7-9 hours to support recovery.")
	}
	if profile.WaterL != nil && *profile.WaterL < metrics.WaterTargetL {
		suggestions = append(suggestions,
			fmt.Sprintf("You are drinking less than your %.2fL hydration target. Keep a water bottle within reach.", metrics.WaterTargetL))
	}
	if profile.Steps != nil && *profile.Steps < 8000 {
		suggestions = append(suggestions, "Your step count is under 8000. Short walks through the day add up quickly.")
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, DefaultSuggestion)
	}

	return suggestions
}
