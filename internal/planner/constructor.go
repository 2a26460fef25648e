package planner

// Plan construction constants.
const (
	// MinSessionsPerDay is the session count every day is filled up to and the floor used by the fitness function.
	MinSessionsPerDay = 8

	maxExercisesPerGroup   = 4
	calorieTopUpThreshold  = 0.8
	injectedCardioSessions = 2
)

// RandomPlan builds a structurally valid random plan for the profile.
//
// Every day receives up to four exercises per target muscle group and is topped up to MinSessionsPerDay sessions
// when the catalog allows it. With a calorie target, sets are added until each day reaches 80% of its share of the
// target. A plan without cardio gets two cardio sessions on a random day.
func (e *Engine) RandomPlan(profile UserProfile) *Plan {
	split := muscleGroupSplit(profile.AvailableDays)
	plan := &Plan{Days: make([]*Day, 0, len(split))}

	for i, groups := range split {
		day := NewDay(i + 1)
		e.fillDay(day, groups, profile)
		e.topUpDay(day, groups, profile)
		if profile.hasCalorieTarget() {
			e.boostDayCalories(day, *profile.TargetCalories/float64(len(split)))
		}
		plan.Days = append(plan.Days, day)
	}

	if !plan.HasCardio() {
		e.injectCardio(plan, profile)
	}

	return plan
}

// fillDay adds up to maxExercisesPerGroup distinct exercises for every target muscle group.
func (e *Engine) fillDay(day *Day, groups []MuscleGroup, profile UserProfile) {
	for _, mg := range groups {
		valid := e.catalog.ValidExercises(mg, profile.Equipment)
		for _, ex := range sample(e.rng, valid, maxExercisesPerGroup) {
			day.AddOrCombine(NewSession(e.rng, ex, profile.Goal))
		}
	}
}

// topUpDay adds unused exercises round-robin over the target muscle groups until the day reaches
// MinSessionsPerDay sessions or a full pass over the groups adds nothing.
func (e *Engine) topUpDay(day *Day, groups []MuscleGroup, profile UserProfile) {
	for day.Len() < MinSessionsPerDay {
		added := false
		for _, mg := range groups {
			if day.Len() >= MinSessionsPerDay {
				break
			}
			unused := unusedExercises(e.catalog.ValidExercises(mg, profile.Equipment), day, "")
			if len(unused) == 0 {
				continue
			}
			day.AddOrCombine(NewSession(e.rng, choose(e.rng, unused), profile.Goal))
			added = true
		}
		if !added {
			return
		}
	}
}

// boostDayCalories adds sets to random strength sessions until the day reaches 80% of target.
// Cardio sessions are never boosted, so a day holding only cardio is left as is.
func (e *Engine) boostDayCalories(day *Day, target float64) {
	hasStrength := false
	for _, s := range day.Sessions() {
		if _, ok := s.Sets(); ok {
			hasStrength = true
			break
		}
	}
	if !hasStrength {
		return
	}

	for day.TotalCalories() < target*calorieTopUpThreshold {
		s := choose(e.rng, day.Sessions())
		if sets, ok := s.Sets(); ok {
			s.setSets(sets + 1)
		}
	}
}

// injectCardio adds cardio sessions to a randomly chosen day.
func (e *Engine) injectCardio(plan *Plan, profile UserProfile) {
	cardio := e.catalog.ValidExercises(MuscleCardio, profile.Equipment)
	if len(cardio) == 0 || len(plan.Days) == 0 {
		return
	}
	day := plan.Days[e.rng.IntN(len(plan.Days))]
	for range injectedCardioSessions {
		day.AddOrCombine(NewSession(e.rng, choose(e.rng, cardio), profile.Goal))
	}
}

// unusedExercises filters out exercises already scheduled on the day. The exercise named keep is treated as
// unused even if it is scheduled.
func unusedExercises(valid []*Exercise, day *Day, keep string) []*Exercise {
	unused := make([]*Exercise, 0, len(valid))
	for _, ex := range valid {
		if ex.Name == keep || !day.Has(ex.Name) {
			unused = append(unused, ex)
		}
	}
	return unused
}
