package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fitforge/planner-app/internal/domain"
)

func testExercise(title string, category domain.ExerciseCategory, bodyPart, equipment string) domain.Exercise {
	e := domain.Exercise{
		Title:     title,
		Category:  category,
		BodyPart:  bodyPart,
		Equipment: equipment,
	}
	e.NormalizeTags()
	return e
}

// balancedPlan is a three-day barbell plan that satisfies the per-day
// minimum and weekly muscle coverage, with no isolation, cardio, mobility
// or bodyweight work at all.
func balancedPlan() map[string][]domain.Exercise {
	return map[string][]domain.Exercise{
		"Day 1": {
			testExercise("Bench Press", domain.CategoryCompound, "Chest", "Barbell"),
			testExercise("Incline Press", domain.CategoryCompound, "Chest", "Barbell"),
			testExercise("Barbell Row", domain.CategoryCompound, "Back", "Barbell"),
			testExercise("Lat Pulldown", domain.CategoryCompound, "Back", "Cable"),
			testExercise("Overhead Press", domain.CategoryCompound, "Shoulders", "Barbell"),
			testExercise("Upright Row", domain.CategoryCompound, "Shoulders", "Barbell"),
		},
		"Day 2": {
			testExercise("Back Squat", domain.CategoryCompound, "Legs", "Barbell"),
			testExercise("Deadlift", domain.CategoryCompound, "Legs/Back", "Barbell"),
			testExercise("Barbell Curl", domain.CategoryCompound, "Arms", "Barbell"),
			testExercise("Skullcrusher", domain.CategoryCompound, "Arms", "Barbell"),
			testExercise("Weighted Sit-up", domain.CategoryCompound, "Core", "Plate"),
			testExercise("Cable Crunch", domain.CategoryCompound, "Core", "Cable"),
		},
		"Day 3": {
			testExercise("Front Squat", domain.CategoryCompound, "Legs", "Barbell"),
			testExercise("Pendlay Row", domain.CategoryCompound, "Back", "Barbell"),
			testExercise("Close-Grip Bench", domain.CategoryCompound, "Chest/Arms", "Barbell"),
			testExercise("Barbell Shrug", domain.CategoryCompound, "Shoulders", "Barbell"),
			testExercise("Hammer Curl", domain.CategoryCompound, "Arms", "Dumbbells"),
			testExercise("Ab Wheel Rollout", domain.CategoryCompound, "Core", "Ab Wheel"),
		},
	}
}

func TestValidate_BalancedPlanPasses(t *testing.T) {
	result := Validate(balancedPlan(), domain.GoalSportsAthletics, domain.ExperienceIntermediate)

	assert.True(t, result.Valid)
	assert.Equal(t, "plan validated successfully", result.Reason)
}

func TestValidate_ShortDayFailsFirst(t *testing.T) {
	plan := balancedPlan()
	plan["Day 1"] = plan["Day 1"][:3]
	// Day 1 now also breaks chest/shoulder coverage, but the per-day check
	// must report first.
	result := Validate(plan, domain.GoalSportsAthletics, domain.ExperienceBeginner)

	assert.False(t, result.Valid)
	assert.Equal(t, "not enough exercises for Day 1 (found 3, need at least 6)", result.Reason)
}

func TestValidate_MissingMuscleGroups(t *testing.T) {
	upperOnly := testExercise("Bench Press", domain.CategoryCompound, "Chest/Back", "Barbell")
	plan := map[string][]domain.Exercise{
		"Day 1": {upperOnly, upperOnly, upperOnly, upperOnly, upperOnly, upperOnly},
	}

	result := Validate(plan, domain.GoalSportsAthletics, domain.ExperienceBeginner)

	assert.False(t, result.Valid)
	assert.Equal(t, "not enough exercises for: legs, shoulders, arms, core", result.Reason)
}

func TestValidate_GoalThresholds(t *testing.T) {
	tests := []struct {
		name   string
		goal   domain.Goal
		reason string
	}{
		{
			name:   "bodybuilding isolation share",
			goal:   domain.GoalBodyBuilding,
			reason: "not enough isolation exercises for bodybuilding (found 0, need 6)",
		},
		{
			name:   "weight loss cardio average",
			goal:   domain.GoalWeightLoss,
			reason: "not enough cardio for weight loss (found 0, need 5)",
		},
		{
			name:   "mobility share",
			goal:   domain.GoalMobilityExclusive,
			reason: "not enough mobility exercises (found 0, need 8)",
		},
		{
			name:   "bodyweight share",
			goal:   domain.GoalBodyWeightFitness,
			reason: "not enough bodyweight exercises (found 0, need 13)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(balancedPlan(), tt.goal, domain.ExperienceIntermediate)

			assert.False(t, result.Valid)
			assert.Equal(t, tt.reason, result.Reason)
		})
	}
}

func TestValidate_BodybuildingPassesWithEnoughIsolation(t *testing.T) {
	plan := balancedPlan()
	for i := range plan["Day 3"] {
		plan["Day 3"][i].Category = domain.CategoryIsolation
	}

	result := Validate(plan, domain.GoalBodyBuilding, domain.ExperienceIntermediate)

	assert.True(t, result.Valid)
}
