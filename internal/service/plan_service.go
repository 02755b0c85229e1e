package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"fitforge/planner-app/internal/domain"
	"fitforge/planner-app/internal/planner"
	"fitforge/planner-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound     = errors.New("fitness plan not found")
	ErrPlanAccessDenied = errors.New("access denied to this plan")
	ErrWorkoutNotFound  = errors.New("planned workout not found")
	ErrInvalidPlanInput = errors.New("invalid plan input")
)

// PlanInput carries everything needed to generate a plan.
type PlanInput struct {
	Name          string
	Goal          string
	DurationWeeks int
	Details       domain.PlanDetails
	PrimarySport  string
	TrainingPhase string
}

// GeneratedPlan bundles the stored plan with generation diagnostics.
type GeneratedPlan struct {
	Plan *domain.FitnessPlan `json:"plan"`
	// Warning is set when the composed plan failed a composition rule and
	// was repaired, or when the catalog was too thin and a basic rotation
	// was used instead.
	Warning string `json:"warning,omitempty"`
	// Basic indicates the fixed basic rotation was stored instead of a
	// composed plan.
	Basic bool `json:"basic,omitempty"`
}

// LogInput is a client-reported workout completion.
type LogInput struct {
	PlannedWorkoutID primitive.ObjectID
	SetsCompleted    int
	RepsCompleted    int
	Weight           float64
	CompletedAt      time.Time
}

// --- Service Interface ---
type PlanService interface {
	GeneratePlan(ctx context.Context, userID primitive.ObjectID, input PlanInput) (*GeneratedPlan, error)
	GetPlanByID(ctx context.Context, userID, planID primitive.ObjectID) (*domain.FitnessPlan, error)
	GetActivePlans(ctx context.Context, userID primitive.ObjectID) ([]domain.FitnessPlan, error)
	GetWeekSchedule(ctx context.Context, userID, planID primitive.ObjectID, week int) ([]domain.PlannedWorkout, error)
	UpdatePlanGoal(ctx context.Context, userID, planID primitive.ObjectID, goal string) error
	DeactivatePlan(ctx context.Context, userID, planID primitive.ObjectID) error
	GetPlanSummary(ctx context.Context, userID, planID primitive.ObjectID) ([]domain.WeekSummary, error)
	LogWorkout(ctx context.Context, userID primitive.ObjectID, input LogInput) (*domain.WorkoutLog, error)
}

// --- Service Implementation ---

// planService implements the PlanService interface.
type planService struct {
	planRepo     repository.PlanRepository
	workoutRepo  repository.PlannedWorkoutRepository
	logRepo      repository.WorkoutLogRepository
	exerciseRepo repository.ExerciseRepository
	selector     *planner.Selector
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository, workoutRepo repository.PlannedWorkoutRepository, logRepo repository.WorkoutLogRepository, exerciseRepo repository.ExerciseRepository, selector *planner.Selector) PlanService {
	return &planService{
		planRepo:     planRepo,
		workoutRepo:  workoutRepo,
		logRepo:      logRepo,
		exerciseRepo: exerciseRepo,
		selector:     selector,
	}
}

// GeneratePlan composes, validates and persists a full multi-week plan.
// A plan that fails a composition rule is repaired and stored anyway, with
// the violation surfaced as a warning.
func (s *planService) GeneratePlan(ctx context.Context, userID primitive.ObjectID, input PlanInput) (*GeneratedPlan, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	if input.Name == "" || input.Goal == "" {
		return nil, ErrInvalidPlanInput
	}
	if input.DurationWeeks < 1 {
		input.DurationWeeks = 4
	}
	if input.Details.WorkoutsPerWeek < 1 {
		input.Details.WorkoutsPerWeek = 3
	}
	if input.Details.ExperienceLevel == "" {
		input.Details.ExperienceLevel = domain.ExperienceBeginner
	}

	goal := domain.ParseGoal(input.Goal)
	level := input.Details.ExperienceLevel

	dist := planner.ScheduleFocus(goal, input.Details.WorkoutsPerWeek, input.Details.Equipment, input.Details.SpecificFocus)
	weekPlan := s.selector.Select(ctx, dist, input.Details.Equipment, input.Details.Limitations, level, goal)

	var warning string
	result := planner.Validate(weekPlan, goal, level)
	if !result.Valid {
		log.Printf("WARN: composed plan for user %s failed validation (%s), repairing", userID.Hex(), result.Reason)
		warning = fmt.Sprintf("plan adjusted: %s", result.Reason)
		weekPlan = planner.Repair(weekPlan, dist, goal, level)
	}

	// Repair fallbacks carry no catalog ID and never reach the grid, so
	// the composed plan only counts if it holds real catalog exercises.
	if countPersistable(weekPlan) == 0 {
		log.Printf("WARN: no storable exercises in composed plan for user %s, falling back to basic rotation", userID.Hex())
		return s.generateBasicPlan(ctx, userID, input, level)
	}

	plan := &domain.FitnessPlan{
		UserID:        userID,
		Name:          input.Name,
		Goal:          input.Goal,
		DurationWeeks: input.DurationWeeks,
		Details:       input.Details,
		PrimarySport:  input.PrimarySport,
		TrainingPhase: input.TrainingPhase,
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID

	grid := s.buildGrid(plan, dist, weekPlan, goal, level)
	if err := s.workoutRepo.CreateMany(ctx, grid); err != nil {
		return nil, fmt.Errorf("store workout grid: %w", err)
	}

	return &GeneratedPlan{Plan: plan, Warning: warning}, nil
}

// buildGrid expands the one-week composition across every plan week,
// applying weekly volume scaling to set counts. Fallback exercises carry a
// nil catalog ID and are skipped; they exist only to satisfy composition.
func (s *planService) buildGrid(plan *domain.FitnessPlan, dist planner.FocusDistribution, weekPlan map[string][]domain.Exercise, goal domain.Goal, level domain.ExperienceLevel) []domain.PlannedWorkout {
	days := dist.SortedDays()
	var grid []domain.PlannedWorkout

	for week := 1; week <= plan.DurationWeeks; week++ {
		volume := planner.Volume(week)
		for dayIndex, day := range days {
			weekday := dayIndex + 1
			for _, exercise := range weekPlan[day] {
				if exercise.ID == primitive.NilObjectID {
					continue
				}
				sets, reps := planner.SetsReps(exercise, goal, level)
				scaledSets := int(math.Round(float64(sets) * volume))
				if scaledSets < 1 {
					scaledSets = 1
				}
				repCount := parseReps(reps)
				grid = append(grid, domain.PlannedWorkout{
					PlanID:      plan.ID,
					UserID:      plan.UserID,
					ExerciseID:  exercise.ID,
					Week:        week,
					Day:         weekday,
					TargetSets:  scaledSets,
					TargetReps:  repCount,
					Description: fmt.Sprintf("%s - %s", day, dist[day]),
				})
			}
		}
	}
	return grid
}

// basicRotation is the last-resort weekly structure when the catalog
// cannot support a composed plan.
var basicRotation = []string{
	"Upper Body", "Lower Body", "Core", "Upper Body", "Lower Body", "Cardio", "Rest",
}

// basicExercise names a well-known movement the catalog is expected to
// carry under some title variant.
type basicExercise struct {
	Name     string
	BodyPart string
}

var basicExercisesByFocus = map[string][]basicExercise{
	"Upper Body": {
		{"Push-ups", "Chest"},
		{"Pull-ups", "Back"},
		{"Dips", "Chest/Triceps"},
		{"Overhead Press", "Shoulders"},
	},
	"Lower Body": {
		{"Squats", "Legs"},
		{"Lunges", "Legs"},
		{"Glute Bridges", "Glutes"},
		{"Calf Raises", "Calves"},
	},
	"Core": {
		{"Plank", "Core"},
		{"Crunches", "Core"},
		{"Russian Twists", "Core"},
		{"Leg Raises", "Core"},
	},
	"Cardio": {
		{"Jumping Jacks", "Full Body"},
		{"Mountain Climbers", "Full Body"},
		{"Burpees", "Full Body"},
		{"High Knees", "Full Body"},
	},
}

// generateBasicPlan stores a plan built from a fixed weekly rotation of
// well-known movements resolved against the catalog by title. Rotation
// entries the catalog cannot resolve are skipped.
func (s *planService) generateBasicPlan(ctx context.Context, userID primitive.ObjectID, input PlanInput, level domain.ExperienceLevel) (*GeneratedPlan, error) {
	plan := &domain.FitnessPlan{
		UserID:        userID,
		Name:          input.Name,
		Goal:          input.Goal,
		DurationWeeks: input.DurationWeeks,
		Details:       input.Details,
		PrimarySport:  input.PrimarySport,
		TrainingPhase: input.TrainingPhase,
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID

	sets, reps := basicSetsReps(level)

	var grid []domain.PlannedWorkout
	resolved := map[string]primitive.ObjectID{}
	for week := 1; week <= plan.DurationWeeks; week++ {
		for day := 1; day <= input.Details.WorkoutsPerWeek; day++ {
			focus := basicRotation[(day-1)%len(basicRotation)]
			if focus == "Rest" {
				continue
			}
			for _, basic := range basicExercisesByFocus[focus] {
				id, ok := resolved[basic.Name]
				if !ok {
					id = s.lookupBasicExercise(ctx, basic)
					resolved[basic.Name] = id
				}
				if id == primitive.NilObjectID {
					continue
				}
				grid = append(grid, domain.PlannedWorkout{
					PlanID:      plan.ID,
					UserID:      plan.UserID,
					ExerciseID:  id,
					Week:        week,
					Day:         day,
					TargetSets:  sets,
					TargetReps:  reps,
					Description: fmt.Sprintf("Day %d - %s", day, focus),
				})
			}
		}
	}

	if len(grid) > 0 {
		if err := s.workoutRepo.CreateMany(ctx, grid); err != nil {
			return nil, fmt.Errorf("store basic workout grid: %w", err)
		}
	}

	return &GeneratedPlan{
		Plan:    plan,
		Warning: "exercise catalog too small for a composed plan; using a basic weekly rotation: " + strings.Join(basicRotation, ", "),
		Basic:   true,
	}, nil
}

// lookupBasicExercise resolves one rotation entry against the catalog by
// title and body part. Misses and query errors yield a nil ID so the
// rotation degrades entry by entry.
func (s *planService) lookupBasicExercise(ctx context.Context, basic basicExercise) primitive.ObjectID {
	matches, err := s.exerciseRepo.Query(ctx, repository.ExerciseFilter{
		TitleKeyword:     basic.Name,
		BodyPartKeywords: []string{basic.BodyPart},
	}, 1)
	if err != nil {
		log.Printf("WARN: basic exercise lookup for %q failed: %v", basic.Name, err)
		return primitive.NilObjectID
	}
	if len(matches) == 0 {
		return primitive.NilObjectID
	}
	return matches[0].ID
}

func basicSetsReps(level domain.ExperienceLevel) (sets, reps int) {
	switch level {
	case domain.ExperienceAdvanced:
		return 5, 6
	case domain.ExperienceIntermediate:
		return 4, 8
	default:
		return 3, 10
	}
}

// GetPlanByID fetches a plan the user owns.
func (s *planService) GetPlanByID(ctx context.Context, userID, planID primitive.ObjectID) (*domain.FitnessPlan, error) {
	return s.ownedPlan(ctx, userID, planID)
}

// GetActivePlans lists the user's active plans.
func (s *planService) GetActivePlans(ctx context.Context, userID primitive.ObjectID) ([]domain.FitnessPlan, error) {
	return s.planRepo.GetActiveByUser(ctx, userID)
}

// GetWeekSchedule returns one week of the plan's workout grid.
func (s *planService) GetWeekSchedule(ctx context.Context, userID, planID primitive.ObjectID, week int) ([]domain.PlannedWorkout, error) {
	if _, err := s.ownedPlan(ctx, userID, planID); err != nil {
		return nil, err
	}
	if week < 1 {
		week = 1
	}
	return s.workoutRepo.GetForWeek(ctx, planID, week)
}

// UpdatePlanGoal changes a plan's goal label. The stored workout grid is
// kept; only future recommendations change character.
func (s *planService) UpdatePlanGoal(ctx context.Context, userID, planID primitive.ObjectID, goal string) error {
	if goal == "" {
		return ErrInvalidPlanInput
	}
	if _, err := s.ownedPlan(ctx, userID, planID); err != nil {
		return err
	}
	return s.planRepo.UpdateGoal(ctx, planID, goal)
}

// DeactivatePlan soft-deletes a plan.
func (s *planService) DeactivatePlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	if _, err := s.ownedPlan(ctx, userID, planID); err != nil {
		return err
	}
	return s.planRepo.Deactivate(ctx, planID)
}

// GetPlanSummary aggregates per-week completion stats for a plan.
func (s *planService) GetPlanSummary(ctx context.Context, userID, planID primitive.ObjectID) ([]domain.WeekSummary, error) {
	if _, err := s.ownedPlan(ctx, userID, planID); err != nil {
		return nil, err
	}
	return s.planRepo.Summary(ctx, planID)
}

// LogWorkout records a completed session against a planned workout. The
// exercise ID and targets are denormalized onto the log so history queries
// never need the grid.
func (s *planService) LogWorkout(ctx context.Context, userID primitive.ObjectID, input LogInput) (*domain.WorkoutLog, error) {
	workout, err := s.workoutRepo.GetByID(ctx, input.PlannedWorkoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrPlanAccessDenied
	}

	entry := &domain.WorkoutLog{
		PlannedWorkoutID: workout.ID,
		UserID:           userID,
		ExerciseID:       workout.ExerciseID,
		SetsCompleted:    input.SetsCompleted,
		RepsCompleted:    input.RepsCompleted,
		TargetSets:       workout.TargetSets,
		TargetReps:       workout.TargetReps,
		Weight:           input.Weight,
		CompletedAt:      input.CompletedAt,
	}

	logID, err := s.logRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = logID
	return entry, nil
}

func (s *planService) ownedPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.FitnessPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrPlanAccessDenied
	}
	return plan, nil
}

// countPersistable counts exercises backed by a real catalog ID; repair
// fallbacks carry a nil ID and are excluded.
func countPersistable(plan map[string][]domain.Exercise) int {
	total := 0
	for _, exercises := range plan {
		for _, exercise := range exercises {
			if exercise.ID != primitive.NilObjectID {
				total++
			}
		}
	}
	return total
}

// parseReps turns a rep scheme like "12" into its integer target. Ranged
// schemes ("8-12") resolve to their lower bound.
func parseReps(reps string) int {
	if idx := strings.IndexByte(reps, '-'); idx > 0 {
		reps = reps[:idx]
	}
	n := 0
	for _, c := range reps {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	if n == 0 {
		n = 10
	}
	return n
}
