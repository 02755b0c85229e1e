package planner

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strings"
	"time"

	"fitforge/planner-app/internal/domain"
	"fitforge/planner-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecommendationType discriminates the shape of a daily recommendation.
type RecommendationType string

const (
	RecommendationScheduled    RecommendationType = "scheduled"
	RecommendationAlternative  RecommendationType = "alternative"
	RecommendationCompleted    RecommendationType = "completed"
	RecommendationRecovery     RecommendationType = "recovery"
	RecommendationDefault      RecommendationType = "default"
	RecommendationPlanComplete RecommendationType = "plan_complete"
)

// TemplateExercise is a fixed, catalog-independent exercise prescription.
type TemplateExercise struct {
	Title        string `json:"title"`
	Instructions string `json:"instructions"`
}

// WorkoutTemplate is a named bundle of template exercises, used for
// recovery sessions and bonus workouts.
type WorkoutTemplate struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Exercises   []TemplateExercise `json:"exercises"`
}

// ScheduledExercise is a planned workout joined with its catalog exercise.
// Default workouts reuse the shape with zero IDs.
type ScheduledExercise struct {
	WorkoutID   primitive.ObjectID      `json:"workoutId,omitempty"`
	ExerciseID  primitive.ObjectID      `json:"exerciseId,omitempty"`
	Title       string                  `json:"title"`
	Category    domain.ExerciseCategory `json:"category,omitempty"`
	Equipment   string                  `json:"equipment,omitempty"`
	BodyPart    string                  `json:"bodyPart,omitempty"`
	Level       string                  `json:"level,omitempty"`
	TargetSets  int                     `json:"targetSets"`
	TargetReps  int                     `json:"targetReps"`
	Description string                  `json:"description,omitempty"`
}

// Recommendation is the answer to "what should I do today". Exactly one of
// Workouts, Template or Bonus is populated depending on Type.
type Recommendation struct {
	Type           RecommendationType  `json:"type"`
	Message        string              `json:"message"`
	Day            string              `json:"day,omitempty"`
	Week           int                 `json:"week,omitempty"`
	Workouts       []ScheduledExercise `json:"workouts,omitempty"`
	Adjustments    []string            `json:"adjustments,omitempty"`
	MuscleRecovery map[string]string   `json:"muscleRecovery,omitempty"`
	Template       *WorkoutTemplate    `json:"template,omitempty"`
	Bonus          *WorkoutTemplate    `json:"bonusWorkout,omitempty"`
}

var dayNames = map[int]string{
	1: "Monday", 2: "Tuesday", 3: "Wednesday",
	4: "Thursday", 5: "Friday", 6: "Saturday", 7: "Sunday",
}

// recoveryLogThreshold is the number of logged sessions over the trailing
// three days above which a rest-day recommendation kicks in.
const recoveryLogThreshold = 5

var recoveryTemplates = []WorkoutTemplate{
	{
		Title:       "Active Recovery",
		Description: "Low-intensity movement to promote recovery",
		Exercises: []TemplateExercise{
			{Title: "Light Walking", Instructions: "Walk at an easy pace for 20-30 minutes"},
			{Title: "Dynamic Stretching", Instructions: "Full body dynamic stretches, 30 seconds each movement"},
			{Title: "Foam Rolling", Instructions: "Roll major muscle groups, 1 minute per area"},
		},
	},
	{
		Title:       "Mobility Focus",
		Description: "Improve joint mobility and flexibility",
		Exercises: []TemplateExercise{
			{Title: "Hip Mobility Flow", Instructions: "5 minutes of hip circles, lunges, and squats"},
			{Title: "Shoulder Mobility", Instructions: "Arm circles, wall slides, and band pull-aparts"},
			{Title: "Ankle Mobility", Instructions: "Ankle circles, calf stretches, and toe raises"},
		},
	},
	{
		Title:       "Light Cardio",
		Description: "Improve circulation without muscle stress",
		Exercises: []TemplateExercise{
			{Title: "Easy Cycling", Instructions: "15-20 minutes at low resistance"},
			{Title: "Swimming", Instructions: "Easy laps for 10-15 minutes, focus on technique"},
			{Title: "Elliptical", Instructions: "10-15 minutes at low intensity"},
		},
	},
}

// Recommender builds daily workout recommendations from the plan grid and
// the user's log history.
type Recommender struct {
	plans     repository.PlanRepository
	workouts  repository.PlannedWorkoutRepository
	logs      repository.WorkoutLogRepository
	exercises repository.ExerciseRepository

	rng *rand.Rand
	now func() time.Time
}

// NewRecommender wires a Recommender. rng may be nil for deterministic
// first-option picks; now defaults to time.Now.
func NewRecommender(plans repository.PlanRepository, workouts repository.PlannedWorkoutRepository, logs repository.WorkoutLogRepository, exercises repository.ExerciseRepository, rng *rand.Rand) *Recommender {
	return &Recommender{
		plans:     plans,
		workouts:  workouts,
		logs:      logs,
		exercises: exercises,
		rng:       rng,
		now:       time.Now,
	}
}

// Daily produces today's recommendation. A zero planID means "use the
// user's first active plan"; with no active plan a default workout is
// generated instead.
func (r *Recommender) Daily(ctx context.Context, userID, planID primitive.ObjectID) (*Recommendation, error) {
	if planID.IsZero() {
		active, err := r.plans.GetActiveByUser(ctx, userID)
		if err != nil {
			log.Printf("WARN: active plan lookup for user %s failed: %v", userID.Hex(), err)
			return r.defaultWorkout(ctx, userID), nil
		}
		if len(active) == 0 {
			return r.defaultWorkout(ctx, userID), nil
		}
		planID = active[0].ID
	}

	plan, err := r.plans.GetByID(ctx, planID)
	if err != nil {
		if err != repository.ErrNotFound {
			log.Printf("WARN: plan %s lookup failed: %v", planID.Hex(), err)
		}
		return r.defaultWorkout(ctx, userID), nil
	}

	today := r.now()
	weekday := int(today.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	currentWeek := int(today.Sub(plan.CreatedAt).Hours()/24)/7 + 1

	if plan.DurationWeeks > 0 && currentWeek > plan.DurationWeeks {
		return &Recommendation{
			Type:    RecommendationPlanComplete,
			Message: fmt.Sprintf("You've finished all %d weeks of %q. Generate a new plan to keep progressing.", plan.DurationWeeks, plan.Name),
			Week:    currentWeek,
		}, nil
	}

	scheduled, err := r.workouts.GetForDay(ctx, planID, currentWeek, weekday)
	if err != nil {
		log.Printf("WARN: schedule lookup for plan %s week %d day %d failed: %v", planID.Hex(), currentWeek, weekday, err)
		scheduled = nil
	}

	if len(scheduled) == 0 {
		if r.needsRecovery(ctx, userID, today) {
			return r.recoveryWorkout(), nil
		}
		if alt := r.alternativeDay(ctx, planID, currentWeek, weekday); alt != nil {
			return alt, nil
		}
	}

	remaining := r.withoutCompletedToday(ctx, scheduled, today)
	if len(remaining) == 0 {
		return &Recommendation{
			Type:    RecommendationCompleted,
			Message: "You've completed all scheduled workouts for today! Would you like a bonus workout?",
			Bonus:   r.bonusWorkout(ctx, userID, plan, today),
		}, nil
	}

	details := make([]ScheduledExercise, 0, len(remaining))
	var adjustments []string
	for _, w := range remaining {
		detail := ScheduledExercise{
			WorkoutID:   w.ID,
			ExerciseID:  w.ExerciseID,
			TargetSets:  w.TargetSets,
			TargetReps:  w.TargetReps,
			Description: w.Description,
		}
		exercise, err := r.exercises.GetByID(ctx, w.ExerciseID)
		if err != nil {
			continue
		}
		detail.Title = exercise.Title
		detail.Category = exercise.Category
		detail.Equipment = exercise.Equipment
		detail.BodyPart = exercise.BodyPart
		detail.Level = exercise.Level
		details = append(details, detail)

		adjustments = append(adjustments, r.adjustmentsFor(ctx, userID, w, exercise.Title)...)
	}

	return &Recommendation{
		Type:           RecommendationScheduled,
		Message:        "Here's your workout for today:",
		Week:           currentWeek,
		Day:            dayNames[weekday],
		Workouts:       details,
		Adjustments:    adjustments,
		MuscleRecovery: r.muscleRecoveryStatus(ctx, userID, today),
	}, nil
}

// SuggestedProgression returns the next-session prescription for one
// planned workout, based on up to the three most recent logs.
func (r *Recommender) SuggestedProgression(ctx context.Context, userID, plannedWorkoutID primitive.ObjectID) (*Suggestion, error) {
	workout, err := r.workouts.GetByID(ctx, plannedWorkoutID)
	if err != nil {
		return nil, err
	}
	logs, err := r.logs.RecentByExercise(ctx, userID, workout.ExerciseID, 3)
	if err != nil {
		log.Printf("WARN: history lookup for exercise %s failed: %v", workout.ExerciseID.Hex(), err)
		logs = nil
	}
	s := SuggestProgression(logs)
	return &s, nil
}

func (r *Recommender) needsRecovery(ctx context.Context, userID primitive.ObjectID, today time.Time) bool {
	count, err := r.logs.CountSince(ctx, userID, today.AddDate(0, 0, -3))
	if err != nil {
		return false
	}
	return count > recoveryLogThreshold
}

func (r *Recommender) recoveryWorkout() *Recommendation {
	idx := 0
	if r.rng != nil {
		idx = r.rng.Intn(len(recoveryTemplates))
	}
	selected := recoveryTemplates[idx]
	return &Recommendation{
		Type:     RecommendationRecovery,
		Message:  "You've been working hard! Here's a recovery workout:",
		Template: &selected,
	}
}

// alternativeDay suggests another day's full session from the same week
// when today has nothing scheduled. Returns nil when the week is empty.
func (r *Recommender) alternativeDay(ctx context.Context, planID primitive.ObjectID, week, today int) *Recommendation {
	weekWorkouts, err := r.workouts.GetForWeek(ctx, planID, week)
	if err != nil || len(weekWorkouts) == 0 {
		return nil
	}

	byDay := map[int][]domain.PlannedWorkout{}
	var days []int
	for _, w := range weekWorkouts {
		if w.Day == today {
			continue
		}
		if _, seen := byDay[w.Day]; !seen {
			days = append(days, w.Day)
		}
		byDay[w.Day] = append(byDay[w.Day], w)
	}
	if len(days) == 0 {
		return nil
	}
	sort.Ints(days)
	picked := days[0]
	if r.rng != nil {
		picked = days[r.rng.Intn(len(days))]
	}

	details := make([]ScheduledExercise, 0, len(byDay[picked]))
	for _, w := range byDay[picked] {
		detail := ScheduledExercise{
			WorkoutID:   w.ID,
			ExerciseID:  w.ExerciseID,
			TargetSets:  w.TargetSets,
			TargetReps:  w.TargetReps,
			Description: w.Description,
		}
		if exercise, err := r.exercises.GetByID(ctx, w.ExerciseID); err == nil {
			detail.Title = exercise.Title
			detail.Category = exercise.Category
			detail.Equipment = exercise.Equipment
			detail.BodyPart = exercise.BodyPart
		}
		details = append(details, detail)
	}

	name := dayNames[picked]
	return &Recommendation{
		Type:     RecommendationAlternative,
		Message:  fmt.Sprintf("No workout scheduled for today. Here's your %s workout instead:", name),
		Day:      name,
		Week:     week,
		Workouts: details,
	}
}

func (r *Recommender) withoutCompletedToday(ctx context.Context, scheduled []domain.PlannedWorkout, today time.Time) []domain.PlannedWorkout {
	dayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	var remaining []domain.PlannedWorkout
	for _, w := range scheduled {
		count, err := r.logs.CountForWorkoutBetween(ctx, w.ID, dayStart, dayStart.AddDate(0, 0, 1))
		if err == nil && count > 0 {
			continue
		}
		remaining = append(remaining, w)
	}
	return remaining
}

func (r *Recommender) adjustmentsFor(ctx context.Context, userID primitive.ObjectID, w domain.PlannedWorkout, title string) []string {
	logs, err := r.logs.RecentByExercise(ctx, userID, w.ExerciseID, 3)
	if err != nil || len(logs) == 0 {
		return nil
	}

	var out []string
	last := logs[0]
	if len(logs) >= 2 && last.Weight-logs[len(logs)-1].Weight <= 0 {
		out = append(out, fmt.Sprintf("Try to increase weight on %s today", title))
	}
	if last.SetsCompleted < last.TargetSets || last.RepsCompleted < last.TargetReps {
		out = append(out, fmt.Sprintf("Focus on completing all %d sets of %s", w.TargetSets, title))
	}
	return out
}

var recoveryMuscleGroups = []string{"Chest", "Back", "Legs", "Shoulders", "Arms", "Core"}

// muscleRecoveryStatus maps each major muscle group to a readiness label
// based on when it was last trained. Errors degrade to "Ready".
func (r *Recommender) muscleRecoveryStatus(ctx context.Context, userID primitive.ObjectID, today time.Time) map[string]string {
	status := make(map[string]string, len(recoveryMuscleGroups))
	for _, muscle := range recoveryMuscleGroups {
		last, err := r.logs.LastTrainedBodyPart(ctx, userID, muscle)
		if err != nil || last == nil {
			status[muscle] = "Ready"
			continue
		}
		daysSince := int(today.Sub(*last).Hours() / 24)
		var label string
		switch {
		case daysSince <= 1:
			label = "Recovery needed"
		case daysSince <= 2:
			label = "Partial recovery"
		default:
			label = "Ready"
		}
		status[muscle] = fmt.Sprintf("%s (%d days)", label, daysSince)
	}
	return status
}

// bonusWorkout builds an extra session appropriate to the plan goal,
// avoiding muscle groups trained in the last two days.
func (r *Recommender) bonusWorkout(ctx context.Context, userID primitive.ObjectID, plan *domain.FitnessPlan, today time.Time) *WorkoutTemplate {
	switch domain.ParseGoal(plan.Goal) {
	case domain.GoalBodyBuilding:
		recent, err := r.logs.BodyPartsTrainedSince(ctx, userID, today.AddDate(0, 0, -2))
		if err != nil {
			recent = nil
		}
		target := "Arms"
		for _, candidate := range []string{"Arms", "Shoulders", "Calves", "Abs"} {
			if !containsBodyPart(recent, candidate) {
				target = candidate
				break
			}
		}
		return &WorkoutTemplate{
			Title:       target + " Specialization",
			Description: fmt.Sprintf("Focus on %s with high volume", target),
			Exercises:   r.exercisesForBodyPart(ctx, target, 4),
		}
	case domain.GoalWeightLoss:
		return &WorkoutTemplate{
			Title:       "Calorie Burner",
			Description: "High-intensity interval training to burn extra calories",
			Exercises: []TemplateExercise{
				{Title: "HIIT Circuit", Instructions: "30 seconds work, 15 seconds rest for 5 exercises, 4 rounds"},
				{Title: "Jump Rope", Instructions: "3 sets of 1 minute fast jumping"},
				{Title: "Mountain Climbers", Instructions: "3 sets of 30 seconds"},
			},
		}
	default:
		return &WorkoutTemplate{
			Title:       "Core & Mobility",
			Description: "Strengthen your core and improve overall mobility",
			Exercises: []TemplateExercise{
				{Title: "Plank Variations", Instructions: "3 sets of 30-45 seconds each variation"},
				{Title: "Russian Twists", Instructions: "3 sets of 20 reps"},
				{Title: "Hip Mobility Flow", Instructions: "5 minutes of dynamic hip movements"},
			},
		}
	}
}

func (r *Recommender) exercisesForBodyPart(ctx context.Context, bodyPart string, count int) []TemplateExercise {
	found, err := r.exercises.Query(ctx, repository.ExerciseFilter{
		BodyPartKeywords: []string{bodyPart},
	}, int64(count))
	if err != nil || len(found) == 0 {
		return []TemplateExercise{
			{Title: "Dumbbell Curls", Instructions: "3 sets of 12 reps"},
			{Title: "Push-ups", Instructions: "3 sets of 10-15 reps"},
			{Title: "Bodyweight Squats", Instructions: "3 sets of 15 reps"},
		}
	}
	if r.rng != nil {
		r.rng.Shuffle(len(found), func(i, j int) { found[i], found[j] = found[j], found[i] })
	}
	out := make([]TemplateExercise, 0, count)
	for _, e := range found {
		if len(out) == count {
			break
		}
		out = append(out, TemplateExercise{Title: e.Title, Instructions: e.Instructions})
	}
	return out
}

// defaultWorkout is the no-active-plan path: six level-appropriate random
// catalog exercises, falling back to a fixed bodyweight trio.
func (r *Recommender) defaultWorkout(ctx context.Context, userID primitive.ObjectID) *Recommendation {
	level := domain.ExperienceBeginner
	if latest, err := r.plans.LatestByUser(ctx, userID); err == nil && latest.Details.ExperienceLevel != "" {
		level = domain.ParseExperienceLevel(string(latest.Details.ExperienceLevel))
	}

	found, err := r.exercises.Query(ctx, repository.ExerciseFilter{Level: string(level)}, 12)
	if err != nil || len(found) == 0 {
		return &Recommendation{
			Type:    RecommendationDefault,
			Message: "Here's a simple workout to get you started:",
			Workouts: []ScheduledExercise{
				{Title: "Push-ups", TargetSets: 3, TargetReps: 10},
				{Title: "Bodyweight Squats", TargetSets: 3, TargetReps: 15},
				{Title: "Plank", TargetSets: 3, TargetReps: 30},
			},
		}
	}
	if r.rng != nil {
		r.rng.Shuffle(len(found), func(i, j int) { found[i], found[j] = found[j], found[i] })
	}
	if len(found) > 6 {
		found = found[:6]
	}

	workouts := make([]ScheduledExercise, 0, len(found))
	for _, e := range found {
		sets, reps := 3, 12
		if e.Category == domain.CategoryCompound {
			sets, reps = 3, 10
			if level != domain.ExperienceBeginner {
				sets, reps = 4, 8
			}
		} else if level != domain.ExperienceBeginner {
			sets, reps = 3, 15
		}
		workouts = append(workouts, ScheduledExercise{
			ExerciseID: e.ID,
			Title:      e.Title,
			Category:   e.Category,
			BodyPart:   e.BodyPart,
			TargetSets: sets,
			TargetReps: reps,
		})
	}

	return &Recommendation{
		Type:     RecommendationDefault,
		Message:  "Here's a general workout since you don't have an active plan:",
		Workouts: workouts,
	}
}

func containsBodyPart(trained []string, target string) bool {
	needle := strings.ToLower(target)
	for _, t := range trained {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}
