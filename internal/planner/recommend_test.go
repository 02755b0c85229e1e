package planner

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitforge/planner-app/internal/domain"
	"fitforge/planner-app/internal/repository"
)

// recommendNow is a Wednesday, so the scheduled slot under test is day 3.
var recommendNow = time.Date(2025, time.June, 4, 10, 0, 0, 0, time.UTC)

type stubPlanRepo struct {
	active    []domain.FitnessPlan
	activeErr error
	byID      map[primitive.ObjectID]*domain.FitnessPlan
	byIDErr   error
	latest    *domain.FitnessPlan
}

func (s *stubPlanRepo) Create(ctx context.Context, plan *domain.FitnessPlan) (primitive.ObjectID, error) {
	return primitive.NilObjectID, nil
}

func (s *stubPlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FitnessPlan, error) {
	if s.byIDErr != nil {
		return nil, s.byIDErr
	}
	if plan, ok := s.byID[id]; ok {
		return plan, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubPlanRepo) GetActiveByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.FitnessPlan, error) {
	if s.activeErr != nil {
		return nil, s.activeErr
	}
	return s.active, nil
}

func (s *stubPlanRepo) LatestByUser(ctx context.Context, userID primitive.ObjectID) (*domain.FitnessPlan, error) {
	if s.latest == nil {
		return nil, repository.ErrNotFound
	}
	return s.latest, nil
}

func (s *stubPlanRepo) UpdateGoal(ctx context.Context, id primitive.ObjectID, goal string) error {
	return nil
}

func (s *stubPlanRepo) Deactivate(ctx context.Context, id primitive.ObjectID) error { return nil }

func (s *stubPlanRepo) Summary(ctx context.Context, id primitive.ObjectID) ([]domain.WeekSummary, error) {
	return nil, nil
}

type stubPlannedWorkoutRepo struct {
	byID      map[primitive.ObjectID]*domain.PlannedWorkout
	grid      []domain.PlannedWorkout
	forDayErr error
}

func (s *stubPlannedWorkoutRepo) CreateMany(ctx context.Context, workouts []domain.PlannedWorkout) error {
	return nil
}

func (s *stubPlannedWorkoutRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlannedWorkout, error) {
	if w, ok := s.byID[id]; ok {
		return w, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubPlannedWorkoutRepo) GetForDay(ctx context.Context, planID primitive.ObjectID, week, day int) ([]domain.PlannedWorkout, error) {
	if s.forDayErr != nil {
		return nil, s.forDayErr
	}
	var out []domain.PlannedWorkout
	for _, w := range s.grid {
		if w.PlanID == planID && w.Week == week && w.Day == day {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *stubPlannedWorkoutRepo) GetForWeek(ctx context.Context, planID primitive.ObjectID, week int) ([]domain.PlannedWorkout, error) {
	var out []domain.PlannedWorkout
	for _, w := range s.grid {
		if w.PlanID == planID && w.Week == week {
			out = append(out, w)
		}
	}
	return out, nil
}

type stubLogRepo struct {
	recent       []domain.WorkoutLog
	countSince   int64
	completed    map[primitive.ObjectID]int64
	lastTrained  map[string]*time.Time
	trainedSince []string
}

func (s *stubLogRepo) Create(ctx context.Context, entry *domain.WorkoutLog) (primitive.ObjectID, error) {
	return primitive.NilObjectID, nil
}

func (s *stubLogRepo) RecentByExercise(ctx context.Context, userID, exerciseID primitive.ObjectID, limit int64) ([]domain.WorkoutLog, error) {
	logs := s.recent
	if int64(len(logs)) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

func (s *stubLogRepo) CountSince(ctx context.Context, userID primitive.ObjectID, since time.Time) (int64, error) {
	return s.countSince, nil
}

func (s *stubLogRepo) CountForWorkoutBetween(ctx context.Context, plannedWorkoutID primitive.ObjectID, from, to time.Time) (int64, error) {
	return s.completed[plannedWorkoutID], nil
}

func (s *stubLogRepo) LastTrainedBodyPart(ctx context.Context, userID primitive.ObjectID, keyword string) (*time.Time, error) {
	return s.lastTrained[keyword], nil
}

func (s *stubLogRepo) BodyPartsTrainedSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]string, error) {
	return s.trainedSince, nil
}

func newTestRecommender(plans *stubPlanRepo, workouts *stubPlannedWorkoutRepo, logs *stubLogRepo, exercises *stubExerciseRepo) *Recommender {
	if plans == nil {
		plans = &stubPlanRepo{}
	}
	if workouts == nil {
		workouts = &stubPlannedWorkoutRepo{}
	}
	if logs == nil {
		logs = &stubLogRepo{}
	}
	if exercises == nil {
		exercises = &stubExerciseRepo{}
	}
	r := NewRecommender(plans, workouts, logs, exercises, nil)
	r.now = func() time.Time { return recommendNow }
	return r
}

// activeTestPlan starts two days before the fake clock, so the current
// week is 1 and the scheduled weekday is 3 (Wednesday).
func activeTestPlan(goal string) *domain.FitnessPlan {
	return &domain.FitnessPlan{
		ID:            primitive.NewObjectID(),
		UserID:        primitive.NewObjectID(),
		Name:          "Test Plan",
		Goal:          goal,
		DurationWeeks: 4,
		IsActive:      true,
		CreatedAt:     recommendNow.AddDate(0, 0, -2),
	}
}

func TestDaily_NoActivePlanFallsBackToFixedWorkout(t *testing.T) {
	r := newTestRecommender(nil, nil, nil, nil)

	rec, err := r.Daily(context.Background(), primitive.NewObjectID(), primitive.NilObjectID)

	require.NoError(t, err)
	assert.Equal(t, RecommendationDefault, rec.Type)
	assert.Equal(t, "Here's a simple workout to get you started:", rec.Message)
	require.Len(t, rec.Workouts, 3)
	assert.Equal(t, "Push-ups", rec.Workouts[0].Title)
	assert.Equal(t, 3, rec.Workouts[0].TargetSets)
	assert.Equal(t, 10, rec.Workouts[0].TargetReps)
}

func TestDaily_DefaultWorkoutUsesCatalogAndLevel(t *testing.T) {
	latest := activeTestPlan(string(domain.GoalBodyBuilding))
	latest.Details.ExperienceLevel = domain.ExperienceAdvanced
	plans := &stubPlanRepo{latest: latest}

	var catalog []domain.Exercise
	for i := 0; i < 8; i++ {
		category := domain.CategoryIsolation
		if i%2 == 0 {
			category = domain.CategoryCompound
		}
		catalog = append(catalog, domain.Exercise{
			ID:       primitive.NewObjectID(),
			Title:    fmt.Sprintf("Exercise %d", i),
			Category: category,
		})
	}
	exercises := &stubExerciseRepo{
		queryFn: func(filter repository.ExerciseFilter, limit int64) ([]domain.Exercise, error) {
			return catalog, nil
		},
	}

	r := newTestRecommender(plans, nil, nil, exercises)
	rec, err := r.Daily(context.Background(), primitive.NewObjectID(), primitive.NilObjectID)

	require.NoError(t, err)
	assert.Equal(t, RecommendationDefault, rec.Type)
	assert.Equal(t, "Here's a general workout since you don't have an active plan:", rec.Message)
	assert.Len(t, rec.Workouts, 6)

	require.NotEmpty(t, exercises.queries)
	assert.Equal(t, string(domain.ExperienceAdvanced), exercises.queries[0].Level)

	for _, w := range rec.Workouts {
		if w.Category == domain.CategoryCompound {
			assert.Equal(t, 4, w.TargetSets)
			assert.Equal(t, 8, w.TargetReps)
		} else {
			assert.Equal(t, 3, w.TargetSets)
			assert.Equal(t, 15, w.TargetReps)
		}
	}
}

func TestDaily_PlanComplete(t *testing.T) {
	plan := activeTestPlan(string(domain.GoalBodyBuilding))
	plan.CreatedAt = recommendNow.AddDate(0, 0, -29) // week 5 of a 4-week plan
	plans := &stubPlanRepo{byID: map[primitive.ObjectID]*domain.FitnessPlan{plan.ID: plan}}

	r := newTestRecommender(plans, nil, nil, nil)
	rec, err := r.Daily(context.Background(), plan.UserID, plan.ID)

	require.NoError(t, err)
	assert.Equal(t, RecommendationPlanComplete, rec.Type)
	assert.Equal(t, 5, rec.Week)
	assert.Equal(t, `You've finished all 4 weeks of "Test Plan". Generate a new plan to keep progressing.`, rec.Message)
}

func TestDaily_ScheduledWorkout(t *testing.T) {
	plan := activeTestPlan(string(domain.GoalBodyBuilding))
	plans := &stubPlanRepo{byID: map[primitive.ObjectID]*domain.FitnessPlan{plan.ID: plan}}

	exercise := domain.Exercise{
		ID:        primitive.NewObjectID(),
		Title:     "Bench Press",
		Category:  domain.CategoryCompound,
		Equipment: "Barbell",
		BodyPart:  "Chest",
	}
	workouts := &stubPlannedWorkoutRepo{grid: []domain.PlannedWorkout{
		{
			ID:          primitive.NewObjectID(),
			PlanID:      plan.ID,
			ExerciseID:  exercise.ID,
			Week:        1,
			Day:         3,
			TargetSets:  4,
			TargetReps:  8,
			Description: "Day 3 - Chest/Triceps",
		},
	}}
	exercises := &stubExerciseRepo{
		getFn: func(id primitive.ObjectID) (*domain.Exercise, error) {
			if id == exercise.ID {
				return &exercise, nil
			}
			return nil, repository.ErrNotFound
		},
	}

	r := newTestRecommender(plans, workouts, nil, exercises)
	rec, err := r.Daily(context.Background(), plan.UserID, plan.ID)

	require.NoError(t, err)
	assert.Equal(t, RecommendationScheduled, rec.Type)
	assert.Equal(t, "Here's your workout for today:", rec.Message)
	assert.Equal(t, "Wednesday", rec.Day)
	assert.Equal(t, 1, rec.Week)
	require.Len(t, rec.Workouts, 1)
	assert.Equal(t, "Bench Press", rec.Workouts[0].Title)
	assert.Equal(t, 4, rec.Workouts[0].TargetSets)
	assert.Empty(t, rec.Adjustments)

	// No history at all: every muscle group reads as ready.
	require.Len(t, rec.MuscleRecovery, 6)
	for muscle, status := range rec.MuscleRecovery {
		assert.Equal(t, "Ready", status, muscle)
	}
}

func TestDaily_ScheduledAdjustments(t *testing.T) {
	plan := activeTestPlan(string(domain.GoalBodyBuilding))
	plans := &stubPlanRepo{byID: map[primitive.ObjectID]*domain.FitnessPlan{plan.ID: plan}}

	exercise := domain.Exercise{ID: primitive.NewObjectID(), Title: "Squat", Category: domain.CategoryCompound}
	workouts := &stubPlannedWorkoutRepo{grid: []domain.PlannedWorkout{
		{ID: primitive.NewObjectID(), PlanID: plan.ID, ExerciseID: exercise.ID, Week: 1, Day: 3, TargetSets: 4, TargetReps: 8},
	}}
	// Newest first: the weight is stalled and the last session missed sets.
	logs := &stubLogRepo{recent: []domain.WorkoutLog{
		{SetsCompleted: 2, RepsCompleted: 8, TargetSets: 4, TargetReps: 8, Weight: 80},
		{SetsCompleted: 4, RepsCompleted: 8, TargetSets: 4, TargetReps: 8, Weight: 80},
	}}
	exercises := &stubExerciseRepo{
		getFn: func(id primitive.ObjectID) (*domain.Exercise, error) { return &exercise, nil },
	}

	r := newTestRecommender(plans, workouts, logs, exercises)
	rec, err := r.Daily(context.Background(), plan.UserID, plan.ID)

	require.NoError(t, err)
	assert.Contains(t, rec.Adjustments, "Try to increase weight on Squat today")
	assert.Contains(t, rec.Adjustments, "Focus on completing all 4 sets of Squat")
}

func TestDaily_MuscleRecoveryLabels(t *testing.T) {
	plan := activeTestPlan(string(domain.GoalBodyBuilding))
	plans := &stubPlanRepo{byID: map[primitive.ObjectID]*domain.FitnessPlan{plan.ID: plan}}

	exercise := domain.Exercise{ID: primitive.NewObjectID(), Title: "Row"}
	workouts := &stubPlannedWorkoutRepo{grid: []domain.PlannedWorkout{
		{ID: primitive.NewObjectID(), PlanID: plan.ID, ExerciseID: exercise.ID, Week: 1, Day: 3},
	}}
	oneDay := recommendNow.Add(-24 * time.Hour)
	twoDays := recommendNow.Add(-48 * time.Hour)
	fiveDays := recommendNow.Add(-120 * time.Hour)
	logs := &stubLogRepo{lastTrained: map[string]*time.Time{
		"Legs":  &oneDay,
		"Chest": &twoDays,
		"Back":  &fiveDays,
	}}
	exercises := &stubExerciseRepo{
		getFn: func(id primitive.ObjectID) (*domain.Exercise, error) { return &exercise, nil },
	}

	r := newTestRecommender(plans, workouts, logs, exercises)
	rec, err := r.Daily(context.Background(), plan.UserID, plan.ID)

	require.NoError(t, err)
	assert.Equal(t, "Recovery needed (1 days)", rec.MuscleRecovery["Legs"])
	assert.Equal(t, "Partial recovery (2 days)", rec.MuscleRecovery["Chest"])
	assert.Equal(t, "Ready (5 days)", rec.MuscleRecovery["Back"])
	assert.Equal(t, "Ready", rec.MuscleRecovery["Shoulders"])
}

func TestDaily_AllDoneGetsBonus(t *testing.T) {
	plan := activeTestPlan(string(domain.GoalWeightLoss))
	plans := &stubPlanRepo{byID: map[primitive.ObjectID]*domain.FitnessPlan{plan.ID: plan}}

	workoutID := primitive.NewObjectID()
	workouts := &stubPlannedWorkoutRepo{grid: []domain.PlannedWorkout{
		{ID: workoutID, PlanID: plan.ID, ExerciseID: primitive.NewObjectID(), Week: 1, Day: 3},
	}}
	logs := &stubLogRepo{completed: map[primitive.ObjectID]int64{workoutID: 1}}

	r := newTestRecommender(plans, workouts, logs, nil)
	rec, err := r.Daily(context.Background(), plan.UserID, plan.ID)

	require.NoError(t, err)
	assert.Equal(t, RecommendationCompleted, rec.Type)
	assert.Equal(t, "You've completed all scheduled workouts for today! Would you like a bonus workout?", rec.Message)
	require.NotNil(t, rec.Bonus)
	assert.Equal(t, "Calorie Burner", rec.Bonus.Title)
}

func TestDaily_BodybuildingBonusAvoidsRecentMuscles(t *testing.T) {
	plan := activeTestPlan(string(domain.GoalBodyBuilding))
	plans := &stubPlanRepo{byID: map[primitive.ObjectID]*domain.FitnessPlan{plan.ID: plan}}

	workoutID := primitive.NewObjectID()
	workouts := &stubPlannedWorkoutRepo{grid: []domain.PlannedWorkout{
		{ID: workoutID, PlanID: plan.ID, ExerciseID: primitive.NewObjectID(), Week: 1, Day: 3},
	}}
	logs := &stubLogRepo{
		completed:    map[primitive.ObjectID]int64{workoutID: 1},
		trainedSince: []string{"Arms", "Shoulders"},
	}

	r := newTestRecommender(plans, workouts, logs, nil)
	rec, err := r.Daily(context.Background(), plan.UserID, plan.ID)

	require.NoError(t, err)
	require.NotNil(t, rec.Bonus)
	assert.Equal(t, "Calves Specialization", rec.Bonus.Title)
	assert.Equal(t, "Focus on Calves with high volume", rec.Bonus.Description)
	// Empty catalog: the fixed trio backs the template.
	assert.Len(t, rec.Bonus.Exercises, 3)
}

func TestDaily_RecoveryAfterHeavyStreak(t *testing.T) {
	plan := activeTestPlan(string(domain.GoalBodyBuilding))
	plans := &stubPlanRepo{byID: map[primitive.ObjectID]*domain.FitnessPlan{plan.ID: plan}}
	logs := &stubLogRepo{countSince: 6} // above the trailing-3-day threshold

	r := newTestRecommender(plans, nil, logs, nil)
	rec, err := r.Daily(context.Background(), plan.UserID, plan.ID)

	require.NoError(t, err)
	assert.Equal(t, RecommendationRecovery, rec.Type)
	assert.Equal(t, "You've been working hard! Here's a recovery workout:", rec.Message)
	require.NotNil(t, rec.Template)
	// A nil rng always picks the first template.
	assert.Equal(t, "Active Recovery", rec.Template.Title)
	assert.Len(t, rec.Template.Exercises, 3)
}

func TestDaily_AlternativeDayWhenNothingScheduled(t *testing.T) {
	plan := activeTestPlan(string(domain.GoalBodyBuilding))
	plans := &stubPlanRepo{byID: map[primitive.ObjectID]*domain.FitnessPlan{plan.ID: plan}}

	workouts := &stubPlannedWorkoutRepo{grid: []domain.PlannedWorkout{
		{ID: primitive.NewObjectID(), PlanID: plan.ID, ExerciseID: primitive.NewObjectID(), Week: 1, Day: 5, TargetSets: 3, TargetReps: 12},
		{ID: primitive.NewObjectID(), PlanID: plan.ID, ExerciseID: primitive.NewObjectID(), Week: 1, Day: 5, TargetSets: 3, TargetReps: 10},
	}}

	r := newTestRecommender(plans, workouts, nil, nil)
	rec, err := r.Daily(context.Background(), plan.UserID, plan.ID)

	require.NoError(t, err)
	assert.Equal(t, RecommendationAlternative, rec.Type)
	assert.Equal(t, "No workout scheduled for today. Here's your Friday workout instead:", rec.Message)
	assert.Equal(t, "Friday", rec.Day)
	assert.Equal(t, 1, rec.Week)
	assert.Len(t, rec.Workouts, 2)
}

func TestDaily_StoreFailuresDegradeToWellFormedVariants(t *testing.T) {
	storeDown := fmt.Errorf("connection reset")

	t.Run("active plan lookup failure", func(t *testing.T) {
		plans := &stubPlanRepo{activeErr: storeDown}
		r := newTestRecommender(plans, nil, nil, nil)

		rec, err := r.Daily(context.Background(), primitive.NewObjectID(), primitive.NilObjectID)

		require.NoError(t, err)
		assert.Equal(t, RecommendationDefault, rec.Type)
		assert.NotEmpty(t, rec.Workouts)
	})

	t.Run("plan fetch failure", func(t *testing.T) {
		plans := &stubPlanRepo{byIDErr: storeDown}
		r := newTestRecommender(plans, nil, nil, nil)

		rec, err := r.Daily(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())

		require.NoError(t, err)
		assert.Equal(t, RecommendationDefault, rec.Type)
	})

	t.Run("schedule fetch failure", func(t *testing.T) {
		plan := activeTestPlan(string(domain.GoalBodyBuilding))
		plans := &stubPlanRepo{byID: map[primitive.ObjectID]*domain.FitnessPlan{plan.ID: plan}}
		workouts := &stubPlannedWorkoutRepo{
			forDayErr: storeDown,
			grid: []domain.PlannedWorkout{
				{ID: primitive.NewObjectID(), PlanID: plan.ID, ExerciseID: primitive.NewObjectID(), Week: 1, Day: 5, TargetSets: 3, TargetReps: 12},
			},
		}

		r := newTestRecommender(plans, workouts, nil, nil)
		rec, err := r.Daily(context.Background(), plan.UserID, plan.ID)

		require.NoError(t, err)
		assert.Equal(t, RecommendationAlternative, rec.Type)
		assert.Equal(t, "Friday", rec.Day)
	})
}

func TestSuggestedProgression(t *testing.T) {
	workout := &domain.PlannedWorkout{
		ID:         primitive.NewObjectID(),
		ExerciseID: primitive.NewObjectID(),
		TargetSets: 4,
		TargetReps: 8,
	}
	workouts := &stubPlannedWorkoutRepo{byID: map[primitive.ObjectID]*domain.PlannedWorkout{workout.ID: workout}}
	logs := &stubLogRepo{recent: []domain.WorkoutLog{
		{SetsCompleted: 4, RepsCompleted: 8, TargetSets: 4, TargetReps: 8, Weight: 60},
	}}

	r := newTestRecommender(nil, workouts, logs, nil)
	s, err := r.SuggestedProgression(context.Background(), primitive.NewObjectID(), workout.ID)

	require.NoError(t, err)
	assert.Equal(t, 63.0, s.Weight)
	assert.Equal(t, 4, s.Sets)

	_, err = r.SuggestedProgression(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
