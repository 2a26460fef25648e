package planner

import (
	"context"
	"log/slog"
)

// Volume adjustment bounds of the local refiner.
const (
	minSets       = 1
	maxSets       = 10
	setsStep      = 1
	minDuration   = 5
	maxDuration   = 90
	durationStep  = 5
	perturbKinds  = 2
	perturbSwap   = 0
	perturbAdjust = 1
)

// Refine runs strict hill climbing from plan. A perturbed copy replaces the current plan only when it scores strictly
// higher, so the result never scores below the input. The input plan is never modified.
func (e *Engine) Refine(ctx context.Context, plan *Plan, profile UserProfile) (*Plan, float64) {
	current := plan
	currentScore := Fitness(current, profile)
	accepted := 0

	for iteration := range e.cfg.HillClimbIterations {
		if ctx.Err() != nil {
			e.logger.LogAttrs(ctx, slog.LevelWarn, "refinement cancelled",
				slog.Int("iteration", iteration), slog.Any("error", ctx.Err()))
			break
		}

		neighbour := e.perturb(current, profile)
		if score := Fitness(neighbour, profile); score > currentScore {
			current, currentScore = neighbour, score
			accepted++
		}
	}

	e.logger.LogAttrs(ctx, slog.LevelDebug, "refinement finished",
		slog.Int("accepted", accepted), slog.Float64("score", currentScore))

	return current, currentScore
}

// perturb returns a deep copy of plan with one random day modified by either an exercise swap or a volume
// adjustment.
func (e *Engine) perturb(plan *Plan, profile UserProfile) *Plan {
	neighbour := plan.Clone()
	if len(neighbour.Days) == 0 {
		return neighbour
	}
	day := choose(e.rng, neighbour.Days)
	if day.Len() == 0 {
		return neighbour
	}

	switch e.rng.IntN(perturbKinds) {
	case perturbSwap:
		e.swapExercise(day, profile)
	case perturbAdjust:
		e.adjustVolume(choose(e.rng, day.Sessions()))
	}
	return neighbour
}

// swapExercise replaces a random session with a valid exercise of the same muscle group that the day does not
// contain yet.
func (e *Engine) swapExercise(day *Day, profile UserProfile) {
	idx := e.rng.IntN(day.Len())
	old := day.Sessions()[idx].Exercise()
	unused := unusedExercises(e.catalog.ValidExercises(old.PrimaryMuscle, profile.Equipment), day, "")
	if len(unused) == 0 {
		return
	}
	day.replace(idx, NewSession(e.rng, choose(e.rng, unused), profile.Goal))
}

// adjustVolume nudges sets by one or duration by five minutes in a random direction within fixed bounds.
func (e *Engine) adjustVolume(s *Session) {
	if sets, ok := s.Sets(); ok {
		if next := clamp(sets+e.direction()*setsStep, minSets, maxSets); next != sets {
			s.setSets(next)
		}
		return
	}
	if minutes, ok := s.Duration(); ok {
		if next := clamp(minutes+e.direction()*durationStep, minDuration, maxDuration); next != minutes {
			s.setDuration(next)
		}
	}
}

// direction returns -1 or 1 with equal probability.
func (e *Engine) direction() int {
	if e.rng.IntN(2) == 0 { //nolint:mnd // coin flip.
		return -1
	}
	return 1
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
