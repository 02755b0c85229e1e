package planner

import (
	"fmt"
	"math"
	"strings"

	"fitforge/planner-app/internal/domain"
)

// Suggestion is a per-exercise progression recommendation derived from the
// most recent log history.
type Suggestion struct {
	Sets   int     `json:"sets"`
	Reps   string  `json:"reps"`
	Weight float64 `json:"weight"`
	Note   string  `json:"note"`
}

// SetsReps returns the prescribed set count and rep scheme for an exercise
// given the plan goal and trainee experience.
func SetsReps(exercise domain.Exercise, goal domain.Goal, level domain.ExperienceLevel) (sets int, reps string) {
	switch level {
	case domain.ExperienceAdvanced:
		sets = 5
	case domain.ExperienceIntermediate:
		sets = 4
	default:
		sets = 3
	}

	repCount := 10
	switch {
	case exercise.Category == domain.CategoryCompound:
		switch goal {
		case domain.GoalSportsAthletics:
			repCount = 6
		case domain.GoalBodyBuilding:
			repCount = 8
		default:
			repCount = 10
		}
	case exercise.Category == domain.CategoryIsolation:
		if goal == domain.GoalBodyBuilding {
			repCount = 12
		} else {
			repCount = 15
		}
	case exercise.IsCardio():
		return 3, "20"
	case exercise.IsMobility():
		return 2, "10"
	}

	switch goal {
	case domain.GoalWeightLoss:
		repCount += 5
	case domain.GoalBodyWeightFitness:
		if strings.Contains(strings.ToLower(exercise.Level), "advanced") && exercise.IsBodyweight() {
			repCount -= 5
			if repCount < 5 {
				repCount = 5
			}
		}
	}

	return sets, fmt.Sprintf("%d", repCount)
}

// SuggestProgression inspects the newest-first log history for one planned
// workout and recommends the next session's load. Hitting every target set
// last time earns a 5% weight bump.
func SuggestProgression(logs []domain.WorkoutLog) Suggestion {
	if len(logs) == 0 {
		return Suggestion{
			Sets:   3,
			Reps:   "8-12",
			Weight: 0,
			Note:   "First session: start conservative and find a working weight.",
		}
	}

	last := logs[0]
	if last.SetsCompleted >= last.TargetSets {
		return Suggestion{
			Sets:   last.SetsCompleted,
			Reps:   fmt.Sprintf("%d", last.RepsCompleted),
			Weight: math.Round(last.Weight*1.05*100) / 100,
			Note:   "All target sets completed last time: increase weight by 5%.",
		}
	}

	return Suggestion{
		Sets:   last.TargetSets,
		Reps:   fmt.Sprintf("%d", last.TargetReps),
		Weight: last.Weight,
		Note:   "Maintain weight and focus on completing every set with good form.",
	}
}

// Intensity returns the prescribed load fraction for a plan week. It ramps
// 5% per week from a 70% base and caps at 95%.
func Intensity(week int) float64 {
	if week < 1 {
		week = 1
	}
	v := 0.70 + 0.05*float64(week)
	if v > 0.95 {
		return 0.95
	}
	return v
}

// Volume returns the set-count multiplier for a plan week. The first three
// weeks run full volume, then volume tapers 2% per week down to half.
func Volume(week int) float64 {
	if week <= 3 {
		return 1.0
	}
	v := 1.0 - 0.02*float64(week)
	if v < 0.5 {
		return 0.5
	}
	return v
}
