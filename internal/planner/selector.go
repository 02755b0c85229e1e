package planner

import (
	"context"
	"math/rand"

	"fitforge/planner-app/internal/domain"
	"fitforge/planner-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Selector turns a focus distribution into concrete per-day exercise
// lists via catalog queries. A nil rng keeps the catalog's return order,
// which makes selection fully deterministic for tests; production wires a
// seeded source.
type Selector struct {
	exercises repository.ExerciseRepository
	rng       *rand.Rand
}

func NewSelector(exercises repository.ExerciseRepository, rng *rand.Rand) *Selector {
	return &Selector{exercises: exercises, rng: rng}
}

// categoryCounts is the desired number of exercises per category for one day.
type categoryCounts struct {
	compound  int
	isolation int
	cardio    int
	mobility  int
}

var baseCounts = map[domain.ExperienceLevel]categoryCounts{
	domain.ExperienceBeginner:     {compound: 2, isolation: 2, cardio: 1, mobility: 1},
	domain.ExperienceIntermediate: {compound: 3, isolation: 2, cardio: 1, mobility: 1},
	domain.ExperienceAdvanced:     {compound: 3, isolation: 3, cardio: 1, mobility: 1},
}

// desiredCounts applies the goal adjustments to the experience base table.
func desiredCounts(level domain.ExperienceLevel, goal domain.Goal) categoryCounts {
	counts, ok := baseCounts[level]
	if !ok {
		counts = baseCounts[domain.ExperienceBeginner]
	}

	switch goal {
	case domain.GoalBodyBuilding:
		counts.isolation++
	case domain.GoalSportsAthletics:
		counts.mobility += 2
		counts.compound++
		counts.isolation++
	case domain.GoalWeightLoss:
		counts.cardio++
	case domain.GoalMobilityExclusive:
		counts.mobility += 2
		counts.compound--
		counts.isolation--
	}

	if counts.compound < 0 {
		counts.compound = 0
	}
	if counts.isolation < 0 {
		counts.isolation = 0
	}
	return counts
}

// Select builds the per-day exercise lists. Catalog failures degrade to the
// fixed fallback set for the affected category; Select itself never fails.
func (s *Selector) Select(ctx context.Context, dist FocusDistribution, equipment, limitations []string, level domain.ExperienceLevel, goal domain.Goal) map[string][]domain.Exercise {
	counts := desiredCounts(level, goal)

	plan := make(map[string][]domain.Exercise, len(dist))
	for _, day := range dist.SortedDays() {
		focus := dist[day]
		var picked []domain.Exercise

		// Selection order matters: compounds anchor the day, accessories fill.
		for _, want := range []struct {
			category domain.ExerciseCategory
			count    int
		}{
			{domain.CategoryCompound, counts.compound},
			{domain.CategoryIsolation, counts.isolation},
			{domain.CategoryCardio, counts.cardio},
			{domain.CategoryMobility, counts.mobility},
		} {
			if want.count <= 0 {
				continue
			}
			picked = append(picked, s.pickCategory(ctx, want.category, want.count, focus, equipment, limitations, picked)...)
		}

		plan[day] = picked
	}
	return plan
}

// pickCategory fills one category's quota for a day: a focus-filtered query
// first, then a fallback query without the body-part filter, then the fixed
// default set if the catalog gave nothing at all.
func (s *Selector) pickCategory(ctx context.Context, category domain.ExerciseCategory, count int, focus string, equipment, limitations []string, alreadyPicked []domain.Exercise) []domain.Exercise {
	exclude := idsOf(alreadyPicked)

	filter := repository.ExerciseFilter{
		Category:                 category,
		BodyPartKeywords:         domain.SplitBodyParts(focus),
		EquipmentIn:              equipmentFilter(equipment),
		ExcludeContraindications: limitations,
		ExcludeIDs:               exclude,
	}

	matches, err := s.exercises.Query(ctx, filter, int64(count))
	if err != nil {
		matches = nil
	}
	s.shuffle(matches)
	picked := matches
	if len(picked) > count {
		picked = picked[:count]
	}

	if len(picked) < count {
		// Same category, any body part, skipping what we already have.
		fallbackFilter := filter
		fallbackFilter.BodyPartKeywords = nil
		fallbackFilter.ExcludeIDs = append(exclude, idsOf(picked)...)

		more, err := s.exercises.Query(ctx, fallbackFilter, int64(count-len(picked)))
		if err == nil {
			s.shuffle(more)
			picked = append(picked, more...)
		}
	}

	if len(picked) == 0 {
		defaults := fallbackForCategory(category)
		if len(defaults) > count {
			defaults = defaults[:count]
		}
		return defaults
	}
	return picked
}

func (s *Selector) shuffle(exercises []domain.Exercise) {
	if s.rng == nil {
		return
	}
	s.rng.Shuffle(len(exercises), func(i, j int) {
		exercises[i], exercises[j] = exercises[j], exercises[i]
	})
}

// equipmentFilter leaves an empty access list unfiltered; otherwise
// bodyweight entries are always allowed alongside the user's equipment.
func equipmentFilter(equipment []string) []string {
	if len(equipment) == 0 {
		return nil
	}
	out := make([]string, 0, len(equipment)+1)
	out = append(out, equipment...)
	for _, e := range equipment {
		if e == "Bodyweight" {
			return out
		}
	}
	return append(out, "Bodyweight")
}

func idsOf(exercises []domain.Exercise) []primitive.ObjectID {
	var ids []primitive.ObjectID
	for _, e := range exercises {
		if !e.ID.IsZero() {
			ids = append(ids, e.ID)
		}
	}
	return ids
}
