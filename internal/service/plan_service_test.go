package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitforge/planner-app/internal/domain"
	"fitforge/planner-app/internal/planner"
	"fitforge/planner-app/internal/repository"
)

type fakePlanRepo struct {
	created []*domain.FitnessPlan
	byID    map[primitive.ObjectID]*domain.FitnessPlan
}

func (f *fakePlanRepo) Create(ctx context.Context, plan *domain.FitnessPlan) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	plan.ID = id
	plan.IsActive = true
	f.created = append(f.created, plan)
	return id, nil
}

func (f *fakePlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FitnessPlan, error) {
	if plan, ok := f.byID[id]; ok {
		return plan, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakePlanRepo) GetActiveByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.FitnessPlan, error) {
	return nil, nil
}

func (f *fakePlanRepo) LatestByUser(ctx context.Context, userID primitive.ObjectID) (*domain.FitnessPlan, error) {
	return nil, repository.ErrNotFound
}

func (f *fakePlanRepo) UpdateGoal(ctx context.Context, id primitive.ObjectID, goal string) error {
	if plan, ok := f.byID[id]; ok {
		plan.Goal = goal
		return nil
	}
	return repository.ErrNotFound
}

func (f *fakePlanRepo) Deactivate(ctx context.Context, id primitive.ObjectID) error { return nil }

func (f *fakePlanRepo) Summary(ctx context.Context, id primitive.ObjectID) ([]domain.WeekSummary, error) {
	return nil, nil
}

type fakeWorkoutRepo struct {
	stored []domain.PlannedWorkout
	byID   map[primitive.ObjectID]*domain.PlannedWorkout
}

func (f *fakeWorkoutRepo) CreateMany(ctx context.Context, workouts []domain.PlannedWorkout) error {
	f.stored = append(f.stored, workouts...)
	return nil
}

func (f *fakeWorkoutRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlannedWorkout, error) {
	if w, ok := f.byID[id]; ok {
		return w, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeWorkoutRepo) GetForDay(ctx context.Context, planID primitive.ObjectID, week, day int) ([]domain.PlannedWorkout, error) {
	return nil, nil
}

func (f *fakeWorkoutRepo) GetForWeek(ctx context.Context, planID primitive.ObjectID, week int) ([]domain.PlannedWorkout, error) {
	return nil, nil
}

type fakeLogRepo struct {
	created []*domain.WorkoutLog
}

func (f *fakeLogRepo) Create(ctx context.Context, entry *domain.WorkoutLog) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	f.created = append(f.created, entry)
	return id, nil
}

func (f *fakeLogRepo) RecentByExercise(ctx context.Context, userID, exerciseID primitive.ObjectID, limit int64) ([]domain.WorkoutLog, error) {
	return nil, nil
}

func (f *fakeLogRepo) CountSince(ctx context.Context, userID primitive.ObjectID, since time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeLogRepo) CountForWorkoutBetween(ctx context.Context, plannedWorkoutID primitive.ObjectID, from, to time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeLogRepo) LastTrainedBodyPart(ctx context.Context, userID primitive.ObjectID, keyword string) (*time.Time, error) {
	return nil, nil
}

func (f *fakeLogRepo) BodyPartsTrainedSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]string, error) {
	return nil, nil
}

// fakeCatalog serves generic full-body exercises with real IDs for any query.
type fakeCatalog struct{}

func (fakeCatalog) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	return primitive.NilObjectID, nil
}

func (fakeCatalog) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	return nil, repository.ErrNotFound
}

func (fakeCatalog) Query(ctx context.Context, filter repository.ExerciseFilter, limit int64) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for i := int64(0); i < limit; i++ {
		out = append(out, domain.Exercise{
			ID:       primitive.NewObjectID(),
			Title:    "Catalog Exercise",
			Category: filter.Category,
			BodyPart: "Full Body",
		})
	}
	return out, nil
}

func (fakeCatalog) SetMediaKey(ctx context.Context, id primitive.ObjectID, key string) error {
	return nil
}

// titleCatalog simulates a catalog too thin for plan composition that
// still carries the well-known basics: only title lookups resolve.
type titleCatalog struct {
	fakeCatalog
	resolved map[string]primitive.ObjectID
}

func (c *titleCatalog) Query(ctx context.Context, filter repository.ExerciseFilter, limit int64) ([]domain.Exercise, error) {
	if filter.TitleKeyword == "" {
		return nil, nil
	}
	id, ok := c.resolved[filter.TitleKeyword]
	if !ok {
		id = primitive.NewObjectID()
		c.resolved[filter.TitleKeyword] = id
	}
	return []domain.Exercise{{ID: id, Title: filter.TitleKeyword, Category: domain.CategoryCompound}}, nil
}

func newTestPlanService() (*planService, *fakePlanRepo, *fakeWorkoutRepo, *fakeLogRepo) {
	plans := &fakePlanRepo{byID: map[primitive.ObjectID]*domain.FitnessPlan{}}
	workouts := &fakeWorkoutRepo{byID: map[primitive.ObjectID]*domain.PlannedWorkout{}}
	logs := &fakeLogRepo{}
	svc := &planService{
		planRepo:     plans,
		workoutRepo:  workouts,
		logRepo:      logs,
		exerciseRepo: fakeCatalog{},
		selector:     planner.NewSelector(fakeCatalog{}, nil),
	}
	return svc, plans, workouts, logs
}

func TestGeneratePlan_InputValidation(t *testing.T) {
	svc, _, _, _ := newTestPlanService()

	_, err := svc.GeneratePlan(context.Background(), primitive.NilObjectID, PlanInput{Name: "P", Goal: "Weight Loss"})
	assert.Error(t, err)

	_, err = svc.GeneratePlan(context.Background(), primitive.NewObjectID(), PlanInput{Goal: "Weight Loss"})
	assert.ErrorIs(t, err, ErrInvalidPlanInput)

	_, err = svc.GeneratePlan(context.Background(), primitive.NewObjectID(), PlanInput{Name: "P"})
	assert.ErrorIs(t, err, ErrInvalidPlanInput)
}

func TestGeneratePlan_DefaultsAndGrid(t *testing.T) {
	svc, plans, workouts, _ := newTestPlanService()
	userID := primitive.NewObjectID()

	generated, err := svc.GeneratePlan(context.Background(), userID, PlanInput{
		Name: "Cut Season",
		Goal: "Body Building",
	})

	require.NoError(t, err)
	require.Len(t, plans.created, 1)

	plan := generated.Plan
	assert.Equal(t, 4, plan.DurationWeeks)
	assert.Equal(t, 3, plan.Details.WorkoutsPerWeek)
	assert.Equal(t, domain.ExperienceBeginner, plan.Details.ExperienceLevel)
	assert.False(t, generated.Basic)

	// The all-"Full Body" catalog cannot satisfy weekly muscle coverage, so
	// the plan is repaired and the violation surfaced.
	assert.True(t, strings.HasPrefix(generated.Warning, "plan adjusted: "), generated.Warning)

	require.NotEmpty(t, workouts.stored)
	for _, w := range workouts.stored {
		assert.Equal(t, plan.ID, w.PlanID)
		assert.Equal(t, userID, w.UserID)
		assert.NotEqual(t, primitive.NilObjectID, w.ExerciseID, "repair fallbacks must not be persisted")
		assert.GreaterOrEqual(t, w.Week, 1)
		assert.LessOrEqual(t, w.Week, 4)
		assert.GreaterOrEqual(t, w.Day, 1)
		assert.LessOrEqual(t, w.Day, 3)
		assert.GreaterOrEqual(t, w.TargetSets, 1)
		assert.Greater(t, w.TargetReps, 0)
		assert.True(t, strings.HasPrefix(w.Description, "Day "), w.Description)
	}

	// Every (week, day) cell carries the same composed session.
	perCell := map[[2]int]int{}
	for _, w := range workouts.stored {
		perCell[[2]int{w.Week, w.Day}]++
	}
	assert.Len(t, perCell, 4*3)
}

func TestGenerateBasicPlan(t *testing.T) {
	svc, plans, workouts, _ := newTestPlanService()
	userID := primitive.NewObjectID()

	generated, err := svc.generateBasicPlan(context.Background(), userID, PlanInput{
		Name:          "Starter",
		Goal:          "Weight Loss",
		DurationWeeks: 2,
		Details:       domain.PlanDetails{WorkoutsPerWeek: 3},
	}, domain.ExperienceIntermediate)

	require.NoError(t, err)
	assert.True(t, generated.Basic)
	assert.Contains(t, generated.Warning, "basic weekly rotation")
	assert.Contains(t, generated.Warning, "Upper Body, Lower Body, Core")
	require.Len(t, plans.created, 1)

	// Days 1-3 rotate Upper Body, Lower Body, Core at 4 movements each.
	require.Len(t, workouts.stored, 2*3*4)
	for _, w := range workouts.stored {
		assert.NotEqual(t, primitive.NilObjectID, w.ExerciseID)
		assert.Equal(t, 4, w.TargetSets)
		assert.Equal(t, 8, w.TargetReps)
		assert.True(t, strings.HasPrefix(w.Description, "Day "), w.Description)
	}
}

func TestGeneratePlan_EmptyCatalogFallsBackToBasicRotation(t *testing.T) {
	plans := &fakePlanRepo{byID: map[primitive.ObjectID]*domain.FitnessPlan{}}
	workouts := &fakeWorkoutRepo{byID: map[primitive.ObjectID]*domain.PlannedWorkout{}}
	catalog := &titleCatalog{resolved: map[string]primitive.ObjectID{}}
	svc := &planService{
		planRepo:     plans,
		workoutRepo:  workouts,
		logRepo:      &fakeLogRepo{},
		exerciseRepo: catalog,
		selector:     planner.NewSelector(catalog, nil),
	}

	generated, err := svc.GeneratePlan(context.Background(), primitive.NewObjectID(), PlanInput{
		Name: "Starter",
		Goal: "Body Building",
	})

	require.NoError(t, err)
	assert.True(t, generated.Basic)
	assert.Contains(t, generated.Warning, "basic weekly rotation")

	// Defaults: 4 weeks x 3 days, 4 rotation movements per day, every row
	// backed by a real catalog ID at beginner sets/reps.
	require.Len(t, workouts.stored, 4*3*4)
	for _, w := range workouts.stored {
		assert.NotEqual(t, primitive.NilObjectID, w.ExerciseID)
		assert.Equal(t, 3, w.TargetSets)
		assert.Equal(t, 10, w.TargetReps)
	}
}

func TestPlanOwnership(t *testing.T) {
	svc, plans, _, _ := newTestPlanService()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	plan := &domain.FitnessPlan{ID: primitive.NewObjectID(), UserID: owner, Name: "Mine", Goal: "Weight Loss"}
	plans.byID[plan.ID] = plan

	got, err := svc.GetPlanByID(context.Background(), owner, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, got.ID)

	_, err = svc.GetPlanByID(context.Background(), stranger, plan.ID)
	assert.ErrorIs(t, err, ErrPlanAccessDenied)

	_, err = svc.GetPlanByID(context.Background(), owner, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrPlanNotFound)

	err = svc.UpdatePlanGoal(context.Background(), owner, plan.ID, "")
	assert.ErrorIs(t, err, ErrInvalidPlanInput)

	err = svc.UpdatePlanGoal(context.Background(), owner, plan.ID, "Body Building")
	require.NoError(t, err)
	assert.Equal(t, "Body Building", plan.Goal)
}

func TestLogWorkout(t *testing.T) {
	svc, _, workouts, logs := newTestPlanService()
	owner := primitive.NewObjectID()

	workout := &domain.PlannedWorkout{
		ID:         primitive.NewObjectID(),
		PlanID:     primitive.NewObjectID(),
		UserID:     owner,
		ExerciseID: primitive.NewObjectID(),
		TargetSets: 4,
		TargetReps: 8,
	}
	workouts.byID[workout.ID] = workout

	completedAt := time.Date(2025, time.June, 4, 18, 30, 0, 0, time.UTC)
	entry, err := svc.LogWorkout(context.Background(), owner, LogInput{
		PlannedWorkoutID: workout.ID,
		SetsCompleted:    4,
		RepsCompleted:    8,
		Weight:           72.5,
		CompletedAt:      completedAt,
	})

	require.NoError(t, err)
	require.Len(t, logs.created, 1)
	assert.Equal(t, workout.ExerciseID, entry.ExerciseID)
	assert.Equal(t, 4, entry.TargetSets)
	assert.Equal(t, 8, entry.TargetReps)
	assert.Equal(t, 72.5, entry.Weight)
	assert.Equal(t, completedAt, entry.CompletedAt)
	assert.False(t, entry.ID.IsZero())

	_, err = svc.LogWorkout(context.Background(), primitive.NewObjectID(), LogInput{PlannedWorkoutID: workout.ID})
	assert.ErrorIs(t, err, ErrPlanAccessDenied)

	_, err = svc.LogWorkout(context.Background(), owner, LogInput{PlannedWorkoutID: primitive.NewObjectID()})
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}
