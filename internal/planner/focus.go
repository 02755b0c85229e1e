// Package planner holds the plan generation pipeline (focus scheduling,
// exercise selection, validation, repair, progression math) and the daily
// recommendation engine. Everything here is deterministic unless it is
// handed a rand source explicitly.
package planner

import (
	"fmt"
	"sort"
	"strings"

	"fitforge/planner-app/internal/domain"
)

// FocusDistribution maps a day label ("Day 1") to its focus ("Chest/Triceps").
// It is transient and never persisted.
type FocusDistribution map[string]string

// SortedDays returns the day labels in lexicographic order, which for the
// canonical "Day N" keys (N <= 7) is also training order.
func (d FocusDistribution) SortedDays() []string {
	days := make([]string, 0, len(d))
	for day := range d {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// Focus label tables keyed by goal, tiered by weekly frequency. Unknown
// goals resolve to Sports and Athletics via domain.ParseGoal upstream.

var lowFrequencyFocus = map[domain.Goal]map[int]FocusDistribution{
	domain.GoalBodyBuilding: {
		1: {"Day 1": "Full Body"},
		2: {"Day 1": "Upper Body", "Day 2": "Lower Body"},
		3: {"Day 1": "Push/Chest/Shoulders", "Day 2": "Pull/Back/Arms", "Day 3": "Legs/Glutes"},
	},
	domain.GoalWeightLoss: {
		1: {"Day 1": "Full Body/HIIT"},
		2: {"Day 1": "Cardio/HIIT", "Day 2": "Strength/Full Body"},
		3: {"Day 1": "Upper Body/HIIT", "Day 2": "Lower Body/HIIT", "Day 3": "Full Body/Cardio"},
	},
	domain.GoalBodyWeightFitness: {
		1: {"Day 1": "Full Body/Calisthenics"},
		2: {"Day 1": "Upper Body/Core", "Day 2": "Lower Body/Mobility"},
		3: {"Day 1": "Push/Core", "Day 2": "Pull/Flexibility", "Day 3": "Legs/Cardio"},
	},
	domain.GoalMobilityExclusive: {
		1: {"Day 1": "Full Body/Mobility"},
		2: {"Day 1": "Upper Body/Mobility", "Day 2": "Lower Body/Mobility"},
		3: {"Day 1": "Dynamic/Flow", "Day 2": "Strength/Stability", "Day 3": "Deep Stretch/Recovery"},
	},
	domain.GoalSportsAthletics: {
		1: {"Day 1": "Full Body/Athletic"},
		2: {"Day 1": "Power/Strength", "Day 2": "Speed/Agility"},
		3: {"Day 1": "Upper Body/Power", "Day 2": "Lower Body/Speed", "Day 3": "Core/Agility"},
	},
}

var midFrequencyFocus = map[domain.Goal]FocusDistribution{
	domain.GoalBodyBuilding: {
		"Day 1": "Chest/Triceps",
		"Day 2": "Back/Biceps",
		"Day 3": "Legs/Glutes",
		"Day 4": "Shoulders/Arms",
		"Day 5": "Lagging Areas/Core",
	},
	domain.GoalWeightLoss: {
		"Day 1": "Upper Body/HIIT",
		"Day 2": "Lower Body/HIIT",
		"Day 3": "Cardio/HIIT",
		"Day 4": "Full Body Circuit",
		"Day 5": "Active Recovery/Mobility",
	},
	domain.GoalBodyWeightFitness: {
		"Day 1": "Push/Core",
		"Day 2": "Pull/Arms",
		"Day 3": "Legs/Plyometrics",
		"Day 4": "Upper Body/Skill",
		"Day 5": "Core/Mobility",
	},
	domain.GoalMobilityExclusive: {
		"Day 1": "Upper Body/Mobility",
		"Day 2": "Lower Body/Mobility",
		"Day 3": "Dynamic Flow/Balance",
		"Day 4": "Yoga/Stretch",
		"Day 5": "Corrective/Stability",
	},
	domain.GoalSportsAthletics: {
		"Day 1": "Upper Body/Power",
		"Day 2": "Lower Body/Strength",
		"Day 3": "Core/Rotational",
		"Day 4": "Power/Plyometrics",
		"Day 5": "Speed/Agility/Conditioning",
	},
}

var highFrequencyFocus = map[domain.Goal]FocusDistribution{
	domain.GoalBodyBuilding: {
		"Day 1": "Chest/Triceps",
		"Day 2": "Back/Biceps",
		"Day 3": "Legs/Calves",
		"Day 4": "Shoulders/Arms",
		"Day 5": "Chest/Back",
		"Day 6": "Legs/Core",
		"Day 7": "Active Recovery",
	},
	domain.GoalWeightLoss: {
		"Day 1": "Upper Push/HIIT",
		"Day 2": "Upper Pull/HIIT",
		"Day 3": "Lower Body/HIIT",
		"Day 4": "Cardio/Intervals",
		"Day 5": "Full Body Circuit",
		"Day 6": "Cardio/Fat Burn",
		"Day 7": "Active Recovery/Mobility",
	},
	domain.GoalBodyWeightFitness: {
		"Day 1": "Push/Core",
		"Day 2": "Pull/Arms",
		"Day 3": "Legs/Lower",
		"Day 4": "Push Variation/Skill",
		"Day 5": "Pull Variation/Core",
		"Day 6": "Skills/Technique",
		"Day 7": "Mobility/Recovery",
	},
	domain.GoalMobilityExclusive: {
		"Day 1": "Upper Body/Mobility",
		"Day 2": "Lower Body/Mobility",
		"Day 3": "Dynamic Flow/Balance",
		"Day 4": "Deep Stretch/Flexibility",
		"Day 5": "Yoga/Integration",
		"Day 6": "Corrective/Prehab",
		"Day 7": "Gentle Recovery/Restoration",
	},
	domain.GoalSportsAthletics: {
		"Day 1": "Upper Body/Power",
		"Day 2": "Lower Body/Strength",
		"Day 3": "Core/Stability",
		"Day 4": "Power/Explosiveness",
		"Day 5": "Speed/Agility",
		"Day 6": "Conditioning/Endurance",
		"Day 7": "Recovery/Mobility",
	},
}

// ScheduleFocus maps (goal, weekly frequency, equipment) to a per-day
// focus distribution with exactly workoutsPerWeek entries. The function is
// pure: identical inputs always produce identical output. specificFocus is
// accepted for request parity; day labels are goal-driven.
func ScheduleFocus(goal domain.Goal, workoutsPerWeek int, equipment []string, specificFocus []string) FocusDistribution {
	_ = specificFocus

	if workoutsPerWeek < 1 {
		workoutsPerWeek = 1
	}
	if workoutsPerWeek > 7 {
		workoutsPerWeek = 7
	}

	base := baseDistribution(goal, workoutsPerWeek)

	// Copy before mutating; the tables above are shared.
	dist := make(FocusDistribution, workoutsPerWeek)
	for day, focus := range base {
		dist[day] = focus
	}

	dist = adaptForEquipment(dist, equipment)
	return normalize(dist, workoutsPerWeek)
}

func baseDistribution(goal domain.Goal, workoutsPerWeek int) FocusDistribution {
	switch {
	case workoutsPerWeek <= 3:
		byFrequency, ok := lowFrequencyFocus[goal]
		if !ok {
			byFrequency = lowFrequencyFocus[domain.GoalSportsAthletics]
		}
		if dist, ok := byFrequency[workoutsPerWeek]; ok {
			return dist
		}
		return FocusDistribution{"Day 1": "Full Body"}
	case workoutsPerWeek <= 5:
		if dist, ok := midFrequencyFocus[goal]; ok {
			return dist
		}
		return midFrequencyFocus[domain.GoalSportsAthletics]
	default:
		if dist, ok := highFrequencyFocus[goal]; ok {
			return dist
		}
		return highFrequencyFocus[domain.GoalSportsAthletics]
	}
}

// adaptForEquipment appends a Bodyweight qualifier to every non-mobility,
// non-recovery focus when the user has no meaningful equipment access.
func adaptForEquipment(dist FocusDistribution, equipment []string) FocusDistribution {
	if !bodyweightOnly(equipment) {
		return dist
	}
	adapted := make(FocusDistribution, len(dist))
	for day, focus := range dist {
		switch {
		case strings.Contains(focus, "Bodyweight"):
			adapted[day] = focus
		case strings.Contains(focus, "Mobility") || strings.Contains(focus, "Recovery"):
			// already bodyweight-friendly
			adapted[day] = focus
		default:
			adapted[day] = focus + "/Bodyweight"
		}
	}
	return adapted
}

func bodyweightOnly(equipment []string) bool {
	if len(equipment) <= 1 {
		return true
	}
	for _, e := range equipment {
		if e == "No Equipment" {
			return true
		}
	}
	return false
}

// normalize forces the distribution to exactly workoutsPerWeek entries:
// synthesized extra days alternate Full Body with Recovery/Mobility every
// third day; surplus days are truncated after a lexicographic sort.
func normalize(dist FocusDistribution, workoutsPerWeek int) FocusDistribution {
	if len(dist) < workoutsPerWeek {
		for day := len(dist) + 1; day <= workoutsPerWeek; day++ {
			label := fmt.Sprintf("Day %d", day)
			if day%3 == 0 {
				dist[label] = "Recovery/Mobility"
			} else {
				dist[label] = "Full Body"
			}
		}
		return dist
	}

	if len(dist) > workoutsPerWeek {
		days := dist.SortedDays()
		trimmed := make(FocusDistribution, workoutsPerWeek)
		for _, day := range days[:workoutsPerWeek] {
			trimmed[day] = dist[day]
		}
		return trimmed
	}

	return dist
}
