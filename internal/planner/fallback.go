package planner

import "fitforge/planner-app/internal/domain"

// Fallback exercises carry a nil ObjectID; the persistence step skips them
// so stored plan rows reference only real catalog ids.

func fallbackExercise(title string, category domain.ExerciseCategory, bodyPart, equipment string) domain.Exercise {
	e := domain.Exercise{
		Title:     title,
		Category:  category,
		BodyPart:  bodyPart,
		Equipment: equipment,
	}
	e.NormalizeTags()
	return e
}

// fallbacksByFocus holds the per-body-region padding pool used when a day
// comes up short. Keys are matched against lower-cased focus labels.
var fallbacksByFocus = map[string][]domain.Exercise{
	"chest": {
		fallbackExercise("Push-ups", domain.CategoryCompound, "Chest", "Bodyweight"),
		fallbackExercise("Incline Push-ups", domain.CategoryCompound, "Chest", "Bodyweight"),
		fallbackExercise("Chest Dips", domain.CategoryCompound, "Chest/Triceps", "Bodyweight"),
	},
	"back": {
		fallbackExercise("Pull-ups", domain.CategoryCompound, "Back", "Bodyweight"),
		fallbackExercise("Inverted Rows", domain.CategoryCompound, "Back", "Bodyweight"),
		fallbackExercise("Superman Hold", domain.CategoryIsolation, "Back", "Bodyweight"),
	},
	"legs": {
		fallbackExercise("Bodyweight Squats", domain.CategoryCompound, "Legs", "Bodyweight"),
		fallbackExercise("Lunges", domain.CategoryCompound, "Legs", "Bodyweight"),
		fallbackExercise("Glute Bridges", domain.CategoryIsolation, "Glutes", "Bodyweight"),
	},
	"shoulders": {
		fallbackExercise("Pike Push-ups", domain.CategoryCompound, "Shoulders", "Bodyweight"),
		fallbackExercise("Handstand Hold", domain.CategoryCompound, "Shoulders", "Bodyweight"),
		fallbackExercise("Lateral Raises", domain.CategoryIsolation, "Shoulders", "Dumbbells"),
	},
	"arms": {
		fallbackExercise("Tricep Dips", domain.CategoryIsolation, "Triceps", "Bodyweight"),
		fallbackExercise("Chin-ups", domain.CategoryCompound, "Biceps/Back", "Bodyweight"),
		fallbackExercise("Diamond Push-ups", domain.CategoryCompound, "Triceps", "Bodyweight"),
	},
	"core": {
		fallbackExercise("Plank", domain.CategoryIsolation, "Core", "Bodyweight"),
		fallbackExercise("Russian Twists", domain.CategoryIsolation, "Core", "Bodyweight"),
		fallbackExercise("Leg Raises", domain.CategoryIsolation, "Core", "Bodyweight"),
	},
	"cardio": {
		fallbackExercise("Jumping Jacks", domain.CategoryCardio, "Full Body", "Bodyweight"),
		fallbackExercise("Mountain Climbers", domain.CategoryCardio, "Full Body", "Bodyweight"),
		fallbackExercise("Burpees", domain.CategoryCardio, "Full Body", "Bodyweight"),
	},
	"mobility": {
		fallbackExercise("Hip Flexor Stretch", domain.CategoryMobility, "Hips", "Bodyweight"),
		fallbackExercise("Shoulder Dislocates", domain.CategoryMobility, "Shoulders", "Bodyweight"),
		fallbackExercise("Ankle Mobility", domain.CategoryMobility, "Ankles", "Bodyweight"),
	},
	"full": {
		fallbackExercise("Burpees", domain.CategoryCompound, "Full Body", "Bodyweight"),
		fallbackExercise("Mountain Climbers", domain.CategoryCardio, "Full Body", "Bodyweight"),
		fallbackExercise("Jump Squats", domain.CategoryCompound, "Legs", "Bodyweight"),
	},
}

// Goal-specific extensions of the padding pool.
var fallbacksByGoal = map[domain.Goal]map[string][]domain.Exercise{
	domain.GoalBodyBuilding: {
		"isolation": {
			fallbackExercise("Dumbbell Curls", domain.CategoryIsolation, "Biceps", "Dumbbells"),
			fallbackExercise("Lateral Raises", domain.CategoryIsolation, "Shoulders", "Dumbbells"),
			fallbackExercise("Tricep Extensions", domain.CategoryIsolation, "Triceps", "Dumbbells"),
		},
	},
	domain.GoalWeightLoss: {
		"hiit": {
			fallbackExercise("HIIT Sprint Intervals", domain.CategoryCardio, "Full Body", "Bodyweight"),
			fallbackExercise("Tabata Squats", domain.CategoryCardio, "Legs", "Bodyweight"),
			fallbackExercise("Circuit Training", domain.CategoryCardio, "Full Body", "Bodyweight"),
		},
	},
	domain.GoalMobilityExclusive: {
		"flexibility": {
			fallbackExercise("Yoga Flow", domain.CategoryMobility, "Full Body", "Bodyweight"),
			fallbackExercise("Dynamic Stretching", domain.CategoryMobility, "Full Body", "Bodyweight"),
			fallbackExercise("Joint Mobility", domain.CategoryMobility, "Full Body", "Bodyweight"),
		},
	},
}

// isolationPool backs the bodybuilding isolation-share repair.
var isolationPool = []domain.Exercise{
	fallbackExercise("Bicep Curls", domain.CategoryIsolation, "Biceps", "Dumbbells"),
	fallbackExercise("Tricep Extensions", domain.CategoryIsolation, "Triceps", "Dumbbells"),
	fallbackExercise("Lateral Raises", domain.CategoryIsolation, "Shoulders", "Dumbbells"),
	fallbackExercise("Chest Flyes", domain.CategoryIsolation, "Chest", "Dumbbells"),
	fallbackExercise("Leg Extensions", domain.CategoryIsolation, "Quads", "Machine"),
	fallbackExercise("Leg Curls", domain.CategoryIsolation, "Hamstrings", "Machine"),
	fallbackExercise("Calf Raises", domain.CategoryIsolation, "Calves", "Bodyweight"),
	fallbackExercise("Face Pulls", domain.CategoryIsolation, "Rear Delts", "Cable"),
	fallbackExercise("Concentration Curls", domain.CategoryIsolation, "Biceps", "Dumbbells"),
	fallbackExercise("Tricep Kickbacks", domain.CategoryIsolation, "Triceps", "Dumbbells"),
}

// cardioPool backs the weight-loss cardio-average repair.
var cardioPool = []domain.Exercise{
	fallbackExercise("HIIT Sprint Intervals", domain.CategoryCardio, "Full Body", "Bodyweight"),
	fallbackExercise("Jump Rope", domain.CategoryCardio, "Full Body", "Jump Rope"),
	fallbackExercise("Burpees", domain.CategoryCardio, "Full Body", "Bodyweight"),
	fallbackExercise("Mountain Climbers", domain.CategoryCardio, "Full Body", "Bodyweight"),
	fallbackExercise("Jumping Jacks", domain.CategoryCardio, "Full Body", "Bodyweight"),
	fallbackExercise("Box Jumps", domain.CategoryCardio, "Legs", "Box"),
	fallbackExercise("Battle Ropes", domain.CategoryCardio, "Arms/Shoulders", "Battle Ropes"),
	fallbackExercise("Rowing Machine", domain.CategoryCardio, "Full Body", "Machine"),
	fallbackExercise("Stair Climber", domain.CategoryCardio, "Legs", "Machine"),
	fallbackExercise("Cycling Intervals", domain.CategoryCardio, "Legs", "Bike"),
}

// mobilityPool backs the mobility-share repair.
var mobilityPool = []domain.Exercise{
	fallbackExercise("Hip Flexor Stretch", domain.CategoryMobility, "Hips", "Bodyweight"),
	fallbackExercise("Shoulder Dislocates", domain.CategoryMobility, "Shoulders", "Resistance Band"),
	fallbackExercise("Ankle Mobility Drill", domain.CategoryMobility, "Ankles", "Bodyweight"),
	fallbackExercise("Thoracic Bridge", domain.CategoryMobility, "Spine", "Bodyweight"),
	fallbackExercise("Cat-Cow Stretch", domain.CategoryMobility, "Spine", "Bodyweight"),
	fallbackExercise("Jefferson Curl", domain.CategoryMobility, "Hamstrings/Back", "Bodyweight"),
	fallbackExercise("Wrist Mobility", domain.CategoryMobility, "Wrists", "Bodyweight"),
	fallbackExercise("Squat Mobility", domain.CategoryMobility, "Hips/Ankles", "Bodyweight"),
	fallbackExercise("Hip 90/90 Stretch", domain.CategoryMobility, "Hips", "Bodyweight"),
	fallbackExercise("Deep Lunge Stretch", domain.CategoryMobility, "Hip Flexors", "Bodyweight"),
}

// bodyweightPool backs the bodyweight-share replacement repair.
var bodyweightPool = []domain.Exercise{
	fallbackExercise("Push-ups", domain.CategoryCompound, "Chest/Triceps", "Bodyweight"),
	fallbackExercise("Pull-ups", domain.CategoryCompound, "Back/Biceps", "Bodyweight"),
	fallbackExercise("Bodyweight Squats", domain.CategoryCompound, "Legs", "Bodyweight"),
	fallbackExercise("Dips", domain.CategoryCompound, "Chest/Triceps", "Bodyweight"),
	fallbackExercise("Inverted Rows", domain.CategoryCompound, "Back", "Bodyweight"),
	fallbackExercise("Pike Push-ups", domain.CategoryCompound, "Shoulders", "Bodyweight"),
	fallbackExercise("Pistol Squats", domain.CategoryCompound, "Legs", "Bodyweight"),
	fallbackExercise("L-Sit Hold", domain.CategoryIsolation, "Core", "Bodyweight"),
	fallbackExercise("Plank", domain.CategoryIsolation, "Core", "Bodyweight"),
	fallbackExercise("Hollow Body Hold", domain.CategoryIsolation, "Core", "Bodyweight"),
}

// fallbackForCategory returns the fixed default set for a selector category
// when the catalog query itself fails or returns nothing.
func fallbackForCategory(category domain.ExerciseCategory) []domain.Exercise {
	switch category {
	case domain.CategoryCompound:
		return fallbacksByFocus["full"]
	case domain.CategoryIsolation:
		return isolationPool[:3]
	case domain.CategoryCardio:
		return fallbacksByFocus["cardio"]
	case domain.CategoryMobility:
		return fallbacksByFocus["mobility"]
	default:
		return fallbacksByFocus["full"]
	}
}
