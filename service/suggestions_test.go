package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snehamhatre1409-sys/Health-Management-System/types"
)

func TestDefaultSuggestionOnly(t *testing.T) {
	// Normal BMI, no conditions, protein intake at target: only the
	// fallback may fire, and it must be the exact default message.
	metrics, err := CalculateHealthMetrics(baseProfile(), "", &types.CurrentIntake{ProteinG: 140})
	require.NoError(t, err)

	assert.Equal(t, []string{DefaultSuggestion}, metrics.Suggestions)
}

func TestUnderweightSuggestion(t *testing.T) {
	profile := baseProfile()
	profile.WeightKg = 50 // bmi 16.33

	metrics, err := CalculateHealthMetrics(profile, "", nil)
	require.NoError(t, err)

	require.Len(t, metrics.Suggestions, 1)
	assert.Contains(t, metrics.Suggestions[0], "below the healthy range")
}

func TestProteinGapSuggestion(t *testing.T) {
	metrics, err := CalculateHealthMetrics(baseProfile(), "", &types.CurrentIntake{ProteinG: 100})
	require.NoError(t, err)

	require.Len(t, metrics.Suggestions, 1)
	assert.Contains(t, metrics.Suggestions[0], "protein intake")
	assert.Contains(t, metrics.Suggestions[0], "40g short")
}

func TestConditionSuggestions(t *testing.T) {
	profile := baseProfile()
	profile.Conditions = []string{types.ConditionDiabetes, types.ConditionHypertension}

	metrics, err := CalculateHealthMetrics(profile, "", nil)
	require.NoError(t, err)

	require.Len(t, metrics.Suggestions, 2)
	assert.Contains(t, metrics.Suggestions[0], "diabetes")
	assert.Contains(t, metrics.Suggestions[1], "hypertension")
}

func TestRulesAreIndependent(t *testing.T) {
	// Several rules firing at once: all of them appear, in rule order,
	// and the fallback stays out.
	sleep := 5.0
	profile := baseProfile()
	profile.WeightKg = 95 // bmi 31.02, Overweight
	profile.Conditions = []string{types.ConditionThyroid}
	profile.SleepHours = &sleep

	metrics, err := CalculateHealthMetrics(profile, "", nil)
	require.NoError(t, err)

	require.Len(t, metrics.Suggestions, 3)
	assert.Contains(t, metrics.Suggestions[0], "above the healthy range")
	assert.Contains(t, metrics.Suggestions[1], "thyroid")
	assert.Contains(t, metrics.Suggestions[2], "sleeping less than 7 hours")
	assert.NotContains(t, metrics.Suggestions, DefaultSuggestion)
}

func TestHydrationAndStepSuggestions(t *testing.T) {
	water := 1.0 // target for 70kg is 2.45L
	steps := 9000
	sleep := 8.0
	profile := baseProfile()
	profile.WaterL = &water
	profile.Steps = &steps
	profile.SleepHours = &sleep

	metrics, err := CalculateHealthMetrics(profile, "", nil)
	require.NoError(t, err)

	require.Len(t, metrics.Suggestions, 1)
	assert.Contains(t, metrics.Suggestions[0], "hydration target")

	lowSteps := 4000
	profile.Steps = &lowSteps
	metrics, err = CalculateHealthMetrics(profile, "", nil)
	require.NoError(t, err)

	require.Len(t, metrics.Suggestions, 2)
	assert.Contains(t, metrics.Suggestions[1], "step count")
}
