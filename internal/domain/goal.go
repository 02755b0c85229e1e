package domain

import "strings"

// Goal is the user's primary training objective. Rule logic compares
// goals exactly; free-text stored values go through ParseGoal first.
type Goal string

const (
	GoalSportsAthletics   Goal = "Sports and Athletics"
	GoalBodyBuilding      Goal = "Body Building"
	GoalBodyWeightFitness Goal = "Body Weight Fitness"
	GoalWeightLoss        Goal = "Weight Loss"
	GoalMobilityExclusive Goal = "Mobility Exclusive"
)

// ParseGoal maps stored goal text onto the closed enum. Plans created by
// older builds carry variants like "Body Building - Custom", so matching
// is by substring; anything unrecognized resolves to Sports and Athletics.
func ParseGoal(s string) Goal {
	switch {
	case strings.Contains(s, "Body Building"):
		return GoalBodyBuilding
	case strings.Contains(s, "Weight Loss"):
		return GoalWeightLoss
	case strings.Contains(s, "Body Weight"):
		return GoalBodyWeightFitness
	case strings.Contains(s, "Mobility"):
		return GoalMobilityExclusive
	default:
		return GoalSportsAthletics
	}
}

func (g Goal) String() string { return string(g) }

// ExperienceLevel buckets users for set/rep and selection-count tables.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "Beginner"
	ExperienceIntermediate ExperienceLevel = "Intermediate"
	ExperienceAdvanced     ExperienceLevel = "Advanced"
)

// ParseExperienceLevel defaults to Beginner for unknown input.
func ParseExperienceLevel(s string) ExperienceLevel {
	switch ExperienceLevel(s) {
	case ExperienceIntermediate, ExperienceAdvanced:
		return ExperienceLevel(s)
	default:
		return ExperienceBeginner
	}
}
