package planner

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"fitforge/planner-app/internal/domain"
)

// ValidationResult is the transient outcome of plan validation.
type ValidationResult struct {
	Valid  bool
	Reason string
}

const (
	minExercisesPerDay = 6
	minPerMuscleGroup  = 2
	isolationShareMin  = 0.3 // bodybuilding
	cardioPerDayMin    = 1.5 // weight loss
	mobilityShareMin   = 0.4 // mobility exclusive
	bodyweightShareMin = 0.7 // bodyweight fitness
)

var majorMuscleGroups = []string{"chest", "back", "legs", "shoulders", "arms", "core"}

// Validate checks a generated plan's composition against goal rules.
// First failure wins: per-day minimum, then weekly muscle coverage, then
// the goal-specific threshold.
func Validate(plan map[string][]domain.Exercise, goal domain.Goal, level domain.ExperienceLevel) ValidationResult {
	_ = level

	days := make([]string, 0, len(plan))
	for day := range plan {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		if n := len(plan[day]); n < minExercisesPerDay {
			return invalid("not enough exercises for %s (found %d, need at least %d)", day, n, minExercisesPerDay)
		}
	}

	var all []domain.Exercise
	for _, exercises := range plan {
		all = append(all, exercises...)
	}

	muscleCounts := map[string]int{}
	for i := range all {
		for _, tag := range domain.SplitBodyParts(all[i].BodyPart) {
			muscleCounts[tag]++
		}
	}

	var missing []string
	for _, muscle := range majorMuscleGroups {
		if muscleCounts[muscle] < minPerMuscleGroup {
			missing = append(missing, muscle)
		}
	}
	if len(missing) > 0 {
		return invalid("not enough exercises for: %s", strings.Join(missing, ", "))
	}

	switch goal {
	case domain.GoalBodyBuilding:
		isolation := 0
		for i := range all {
			if all[i].Category == domain.CategoryIsolation {
				isolation++
			}
		}
		if need := int(math.Ceil(float64(len(all)) * isolationShareMin)); isolation < need {
			return invalid("not enough isolation exercises for bodybuilding (found %d, need %d)", isolation, need)
		}
	case domain.GoalWeightLoss:
		cardio := 0
		for i := range all {
			if all[i].IsCardio() {
				cardio++
			}
		}
		if need := int(math.Ceil(float64(len(plan)) * cardioPerDayMin)); cardio < need {
			return invalid("not enough cardio for weight loss (found %d, need %d)", cardio, need)
		}
	case domain.GoalMobilityExclusive:
		mobility := 0
		for i := range all {
			if all[i].IsMobility() {
				mobility++
			}
		}
		if need := int(math.Ceil(float64(len(all)) * mobilityShareMin)); mobility < need {
			return invalid("not enough mobility exercises (found %d, need %d)", mobility, need)
		}
	case domain.GoalBodyWeightFitness:
		bodyweight := 0
		for i := range all {
			if all[i].IsBodyweight() {
				bodyweight++
			}
		}
		if need := int(math.Ceil(float64(len(all)) * bodyweightShareMin)); bodyweight < need {
			return invalid("not enough bodyweight exercises (found %d, need %d)", bodyweight, need)
		}
	}

	return ValidationResult{Valid: true, Reason: "plan validated successfully"}
}

func invalid(format string, args ...any) ValidationResult {
	return ValidationResult{Valid: false, Reason: fmt.Sprintf(format, args...)}
}
