package planner

import (
	"math"
	"sort"
	"strings"

	"fitforge/planner-app/internal/domain"
)

// repairPadTarget is intentionally above the validator's per-day minimum:
// repaired days get padded to 8 so a repaired plan has slack.
const repairPadTarget = 8

// Repair deterministically patches a plan that failed validation. It works
// only from the fixed fallback tables, never the catalog, and never removes
// exercises except in the bodyweight replacement branch (which swaps
// one-for-one). Repair does not re-validate; the caller persists the result
// and surfaces the original violation as a warning. dist supplies each
// day's focus label for keyword matching.
func Repair(plan map[string][]domain.Exercise, dist FocusDistribution, goal domain.Goal, level domain.ExperienceLevel) map[string][]domain.Exercise {
	_ = level

	days := make([]string, 0, len(plan))
	for day := range plan {
		days = append(days, day)
	}
	sort.Strings(days)

	fixed := make(map[string][]domain.Exercise, len(plan))
	for _, day := range days {
		exercises := append([]domain.Exercise(nil), plan[day]...)
		if len(exercises) < repairPadTarget {
			exercises = append(exercises, paddingExercises(dist[day], goal, repairPadTarget-len(exercises))...)
		}
		fixed[day] = exercises
	}

	switch goal {
	case domain.GoalBodyBuilding:
		repairIsolationShare(fixed, days, dist)
	case domain.GoalWeightLoss:
		repairCardioAverage(fixed, days)
	case domain.GoalMobilityExclusive:
		repairMobilityShare(fixed, days)
	case domain.GoalBodyWeightFitness:
		repairBodyweightShare(fixed, days)
	}

	return fixed
}

// paddingExercises draws count entries from the fallback categories whose
// key appears in the day's focus label, spilling into the remaining pools
// in fixed order when the matched categories run dry.
func paddingExercises(dayFocus string, goal domain.Goal, count int) []domain.Exercise {
	focus := strings.ToLower(dayFocus)
	pools := map[string][]domain.Exercise{}
	var keys []string
	for key, pool := range fallbacksByFocus {
		pools[key] = pool
		keys = append(keys, key)
	}
	for key, pool := range fallbacksByGoal[goal] {
		pools[key] = pool
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var categories []string
	for _, key := range keys {
		if strings.Contains(focus, key) {
			categories = append(categories, key)
		}
	}
	if len(categories) == 0 {
		switch goal {
		case domain.GoalBodyBuilding:
			categories = []string{"chest", "back", "legs", "shoulders", "arms"}
		case domain.GoalWeightLoss:
			categories = []string{"cardio", "hiit", "full"}
		case domain.GoalMobilityExclusive:
			categories = []string{"mobility", "flexibility"}
		default:
			categories = []string{"full"}
		}
	}

	var padding []domain.Exercise
	perCategory := count / len(categories)
	if perCategory < 1 {
		perCategory = 1
	}
	remaining := count

	for _, category := range categories {
		pool := pools[category]
		if pool == nil {
			pool = fallbacksByFocus["full"]
		}
		for i := 0; i < perCategory && remaining > 0; i++ {
			padding = append(padding, pool[i%len(pool)])
			remaining--
		}
		if remaining <= 0 {
			break
		}
	}

	// Still short: cycle every pool in key order.
	for remaining > 0 {
		for _, key := range keys {
			for _, e := range pools[key] {
				if remaining <= 0 {
					return padding
				}
				padding = append(padding, e)
				remaining--
			}
		}
	}
	return padding
}

func allExercises(plan map[string][]domain.Exercise) []domain.Exercise {
	var all []domain.Exercise
	for _, exercises := range plan {
		all = append(all, exercises...)
	}
	return all
}

// repairIsolationShare tops the plan up to a 30% isolation share,
// preferring days whose focus matches the exercise's body part and
// spilling the remainder into the first day.
func repairIsolationShare(plan map[string][]domain.Exercise, days []string, dist FocusDistribution) {
	all := allExercises(plan)
	isolation := 0
	for i := range all {
		if all[i].Category == domain.CategoryIsolation {
			isolation++
		}
	}
	deficit := int(math.Ceil(float64(len(all))*isolationShareMin)) - isolation
	if deficit <= 0 {
		return
	}
	if deficit > len(isolationPool) {
		deficit = len(isolationPool)
	}
	pending := append([]domain.Exercise(nil), isolationPool[:deficit]...)

	for _, day := range days {
		var leftover []domain.Exercise
		for _, e := range pending {
			if e.MatchesFocus(dist[day]) {
				plan[day] = append(plan[day], e)
			} else {
				leftover = append(leftover, e)
			}
		}
		pending = leftover
		if len(pending) == 0 {
			return
		}
	}

	plan[days[0]] = append(plan[days[0]], pending...)
}

// repairCardioAverage appends cardio fallbacks to days with the fewest
// existing cardio exercises until the 1.5-per-day average holds or the
// pool is spent.
func repairCardioAverage(plan map[string][]domain.Exercise, days []string) {
	cardioPerDay := map[string]int{}
	total := 0
	for _, day := range days {
		for i := range plan[day] {
			if plan[day][i].IsCardio() {
				cardioPerDay[day]++
				total++
			}
		}
	}
	deficit := int(math.Ceil(float64(len(days))*cardioPerDayMin)) - total
	if deficit <= 0 {
		return
	}
	if deficit > len(cardioPool) {
		deficit = len(cardioPool)
	}

	order := append([]string(nil), days...)
	sort.SliceStable(order, func(i, j int) bool {
		return cardioPerDay[order[i]] < cardioPerDay[order[j]]
	})

	next := 0
	for next < deficit {
		for _, day := range order {
			if next >= deficit {
				break
			}
			plan[day] = append(plan[day], cardioPool[next])
			next++
		}
	}
}

// repairMobilityShare distributes one to three mobility fallbacks per day
// until the 40% share deficit is covered or the pool is spent.
func repairMobilityShare(plan map[string][]domain.Exercise, days []string) {
	all := allExercises(plan)
	mobility := 0
	for i := range all {
		if all[i].IsMobility() {
			mobility++
		}
	}
	deficit := int(math.Ceil(float64(len(all))*mobilityShareMin)) - mobility
	if deficit <= 0 {
		return
	}
	if deficit > len(mobilityPool) {
		deficit = len(mobilityPool)
	}
	pending := append([]domain.Exercise(nil), mobilityPool[:deficit]...)

	for _, day := range days {
		if len(pending) == 0 {
			return
		}
		take := len(pending)
		if take > 3 {
			take = 3
		}
		plan[day] = append(plan[day], pending[:take]...)
		pending = pending[take:]
	}
}

// repairBodyweightShare replaces (not appends) non-bodyweight exercises
// with bodyweight fallbacks until the 70% share holds or the pool is spent.
// Day exercise counts never change here.
func repairBodyweightShare(plan map[string][]domain.Exercise, days []string) {
	all := allExercises(plan)
	bodyweight := 0
	for i := range all {
		if all[i].IsBodyweight() {
			bodyweight++
		}
	}
	deficit := int(math.Ceil(float64(len(all))*bodyweightShareMin)) - bodyweight
	if deficit <= 0 {
		return
	}
	if deficit > len(bodyweightPool) {
		deficit = len(bodyweightPool)
	}
	pending := append([]domain.Exercise(nil), bodyweightPool[:deficit]...)

	for _, day := range days {
		exercises := plan[day]
		for i := range exercises {
			if len(pending) == 0 {
				return
			}
			if !exercises[i].IsBodyweight() {
				exercises[i] = pending[0]
				pending = pending[1:]
			}
		}
	}
}
