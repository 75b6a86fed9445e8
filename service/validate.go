package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/snehamhatre1409-sys/Health-Management-System/types"
)

// ErrInvalidInput is returned for every out-of-bounds or unrecognized
// calculation input. Callers branch on it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

var validSexes = map[string]bool{
	types.SexMale:   true,
	types.SexFemale: true,
}

var validConditions = map[string]bool{
	types.ConditionDiabetes:     true,
	types.ConditionHypertension: true,
	types.ConditionThyroid:      true,
}

var validGoals = map[string]bool{
	types.GoalMaintain:    true,
	types.GoalLose:        true,
	types.GoalBuildMuscle: true,
}

// ValidateProfile checks every snapshot field against its declared
// bounds. Out-of-range values are an error, never clamped.
func ValidateProfile(profile types.ProfileSnapshot) error {
	if profile.WeightKg < 10 || profile.WeightKg > 250 {
		return fmt.Errorf("%w: weight must be between 10 and 250 kg", ErrInvalidInput)
	}
	if profile.HeightM < 0.5 || profile.HeightM > 2.5 {
		return fmt.Errorf("%w: height must be between 0.5 and 2.5 m", ErrInvalidInput)
	}
	if profile.AgeYears < 5 || profile.AgeYears > 110 {
		return fmt.Errorf("%w: age must be between 5 and 110 years", ErrInvalidInput)
	}
	if !validSexes[profile.Sex] {
		return fmt.Errorf("%w: sex must be either 'male' or 'female'", ErrInvalidInput)
	}
	if _, ok := activityMultipliers[profile.ActivityLevel]; !ok {
		return fmt.Errorf("%w: unknown activity level %q", ErrInvalidInput, profile.ActivityLevel)
	}
	if profile.SleepHours != nil && (*profile.SleepHours < 0 || *profile.SleepHours > 24) {
		return fmt.Errorf("%w: sleep hours must be between 0 and 24", ErrInvalidInput)
	}
	if profile.Steps != nil && *profile.Steps < 0 {
		return fmt.Errorf("%w: steps cannot be negative", ErrInvalidInput)
	}
	if profile.WaterL != nil && *profile.WaterL < 0 {
		return fmt.Errorf("%w: water intake cannot be negative", ErrInvalidInput)
	}
	for _, condition := range profile.Conditions {
		if !validConditions[condition] {
			return fmt.Errorf("%w: unknown condition %q", ErrInvalidInput, condition)
		}
	}
	return nil
}

// ValidateGoal accepts the empty string (no goal) or one of the known goals
func ValidateGoal(goal string) error {
	if goal == "" {
		return nil
	}
	if !validGoals[goal] {
		return fmt.Errorf("%w: goal must be 'maintain', 'lose' or 'build_muscle'", ErrInvalidInput)
	}
	return nil
}

// ValidateIntake checks the optional current intake
func ValidateIntake(intake *types.CurrentIntake) error {
	if intake != nil && intake.ProteinG < 0 {
		return fmt.Errorf("%w: protein intake cannot be negative", ErrInvalidInput)
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD date string
func ValidateDate(date string) error {
	_, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("%w: invalid date format: use YYYY-MM-DD", ErrInvalidInput)
	}
	return nil
}

// ValidateCredentials checks registration input before it reaches the store
func ValidateCredentials(username, password string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if len(password) < 4 {
		return fmt.Errorf("%w: password must be at least 4 characters", ErrInvalidInput)
	}
	return nil
}
