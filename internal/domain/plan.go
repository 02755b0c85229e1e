package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanDetails captures the generation request parameters alongside the
// plan, replacing the loosely-typed JSON blob older builds stored.
type PlanDetails struct {
	WorkoutsPerWeek int             `bson:"workoutsPerWeek" json:"workoutsPerWeek"`
	Equipment       []string        `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Limitations     []string        `bson:"limitations,omitempty" json:"limitations,omitempty"`
	PreferredCardio []string        `bson:"preferredCardio,omitempty" json:"preferredCardio,omitempty"`
	SpecificFocus   []string        `bson:"specificFocus,omitempty" json:"specificFocus,omitempty"`
	TimePerWorkout  int             `bson:"timePerWorkout,omitempty" json:"timePerWorkout,omitempty"` // minutes
	ExperienceLevel ExperienceLevel `bson:"experienceLevel" json:"experienceLevel"`
}

// FitnessPlan is created once at generation time. It is mutated only via
// goal edits or deactivation and never hard-deleted.
type FitnessPlan struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Name          string             `bson:"name" json:"name"`
	Goal          string             `bson:"goal" json:"goal"` // parse with ParseGoal
	DurationWeeks int                `bson:"durationWeeks" json:"durationWeeks"`
	Details       PlanDetails        `bson:"details" json:"details"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	PrimarySport  string             `bson:"primarySport,omitempty" json:"primarySport,omitempty"`
	TrainingPhase string             `bson:"trainingPhase,omitempty" json:"trainingPhase,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PlannedWorkout is one (exercise, week, day) cell of a plan's workout
// grid. The grid is bulk-created at generation time and immutable after.
// UserID is denormalized from the plan for log queries.
type PlannedWorkout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID      primitive.ObjectID `bson:"planId" json:"planId"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	ExerciseID  primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Week        int                `bson:"week" json:"week"`
	Day         int                `bson:"day" json:"day"` // 1 (Mon) - 7 (Sun)
	TargetSets  int                `bson:"targetSets" json:"targetSets"`
	TargetReps  int                `bson:"targetReps" json:"targetReps"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// WorkoutLog is an append-only record of one completed planned workout.
type WorkoutLog struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlannedWorkoutID primitive.ObjectID `bson:"plannedWorkoutId" json:"plannedWorkoutId"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	ExerciseID       primitive.ObjectID `bson:"exerciseId" json:"exerciseId"` // denormalized for history queries
	SetsCompleted    int                `bson:"setsCompleted" json:"setsCompleted"`
	RepsCompleted    int                `bson:"repsCompleted" json:"repsCompleted"`
	TargetSets       int                `bson:"targetSets" json:"targetSets"`
	TargetReps       int                `bson:"targetReps" json:"targetReps"`
	Weight           float64            `bson:"weight" json:"weight"` // kg
	CompletedAt      time.Time          `bson:"completedAt" json:"completedAt"`
}

// WeekSummary aggregates a plan's progress for one week.
type WeekSummary struct {
	Week               int     `bson:"_id" json:"week"`
	TotalExercises     int     `bson:"totalExercises" json:"totalExercises"`
	ExercisesCompleted int     `bson:"exercisesCompleted" json:"exercisesCompleted"`
	AvgWeight          float64 `bson:"avgWeight" json:"avgWeight"`
	DaysWorked         int     `bson:"daysWorked" json:"daysWorked"`
}
