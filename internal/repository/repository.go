package repository

import (
	"context"
	"time"

	"fitforge/planner-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ExerciseFilter narrows catalog queries. Zero-value fields are ignored.
type ExerciseFilter struct {
	Category domain.ExerciseCategory
	// TitleKeyword matches entries whose title contains the keyword.
	TitleKeyword string
	// BodyPartKeywords matches entries whose bodyPart contains any keyword.
	BodyPartKeywords []string
	// EquipmentIn restricts to entries usable with the listed equipment.
	EquipmentIn []string
	// ExcludeContraindications drops entries contraindicated for any of
	// the given limitations.
	ExcludeContraindications []string
	ExcludeIDs               []primitive.ObjectID
	Level                    string
}

// ExerciseRepository is read-mostly access to the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	Query(ctx context.Context, filter ExerciseFilter, limit int64) ([]domain.Exercise, error)
	SetMediaKey(ctx context.Context, id primitive.ObjectID, key string) error
}

// PlanRepository manages fitness plan documents. Plans are never hard-deleted.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.FitnessPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FitnessPlan, error)
	GetActiveByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.FitnessPlan, error)
	// LatestByUser returns the newest plan regardless of active state.
	LatestByUser(ctx context.Context, userID primitive.ObjectID) (*domain.FitnessPlan, error)
	UpdateGoal(ctx context.Context, id primitive.ObjectID, goal string) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	Summary(ctx context.Context, id primitive.ObjectID) ([]domain.WeekSummary, error)
}

// PlannedWorkoutRepository manages the immutable workout grid of a plan.
type PlannedWorkoutRepository interface {
	CreateMany(ctx context.Context, workouts []domain.PlannedWorkout) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlannedWorkout, error)
	GetForDay(ctx context.Context, planID primitive.ObjectID, week, day int) ([]domain.PlannedWorkout, error)
	GetForWeek(ctx context.Context, planID primitive.ObjectID, week int) ([]domain.PlannedWorkout, error)
}

// WorkoutLogRepository is append-only workout history.
type WorkoutLogRepository interface {
	Create(ctx context.Context, entry *domain.WorkoutLog) (primitive.ObjectID, error)
	// RecentByExercise returns logs newest first.
	RecentByExercise(ctx context.Context, userID, exerciseID primitive.ObjectID, limit int64) ([]domain.WorkoutLog, error)
	CountSince(ctx context.Context, userID primitive.ObjectID, since time.Time) (int64, error)
	CountForWorkoutBetween(ctx context.Context, plannedWorkoutID primitive.ObjectID, from, to time.Time) (int64, error)
	// LastTrainedBodyPart returns the most recent log time for any exercise
	// whose body part matches keyword, or nil when the muscle was never trained.
	LastTrainedBodyPart(ctx context.Context, userID primitive.ObjectID, keyword string) (*time.Time, error)
	BodyPartsTrainedSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]string, error)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}
