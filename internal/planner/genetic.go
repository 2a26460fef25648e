package planner

import (
	"context"
	"log/slog"
	"slices"
)

// candidate is a scored population member.
type candidate struct {
	plan  *Plan
	score float64
}

// Evolve runs the genetic algorithm and returns the best plan seen in any generation along with its score. A
// cancelled ctx stops seeding and evolution early; the best plan so far is returned.
//
// Plans are never modified once they are part of a population. Crossover shares days between parents and children,
// so mutation copies the day it changes.
func (e *Engine) Evolve(ctx context.Context, profile UserProfile) (*Plan, float64) {
	population := make([]*Plan, 0, e.cfg.PopulationSize)
	for len(population) < e.cfg.PopulationSize {
		population = append(population, e.RandomPlan(profile))
		if ctx.Err() != nil {
			e.logger.LogAttrs(ctx, slog.LevelWarn, "population seeding cancelled",
				slog.Int("seeded", len(population)), slog.Any("error", ctx.Err()))
			break
		}
	}

	best := candidate{plan: population[0], score: Fitness(population[0], profile)}

	for generation := range e.cfg.Generations {
		if ctx.Err() != nil {
			e.logger.LogAttrs(ctx, slog.LevelWarn, "evolution cancelled",
				slog.Int("generation", generation), slog.Any("error", ctx.Err()))
			break
		}

		scored := make([]candidate, len(population))
		for i, plan := range population {
			scored[i] = candidate{plan: plan, score: Fitness(plan, profile)}
		}

		if fittest := fittestCandidate(scored); fittest.score > best.score {
			best = fittest
		}

		e.logger.LogAttrs(ctx, slog.LevelDebug, "generation evaluated",
			slog.Int("generation", generation), slog.Float64("best_score", best.score))

		next := make([]*Plan, 0, e.cfg.PopulationSize+1)
		for len(next) < e.cfg.PopulationSize {
			parent1 := e.tournamentSelect(scored)
			parent2 := e.tournamentSelect(scored)
			child1, child2 := e.crossover(parent1, parent2)
			next = append(next, e.mutate(child1, profile), e.mutate(child2, profile))
		}
		population = next[:e.cfg.PopulationSize]
	}

	return best.plan, best.score
}

// fittestCandidate returns the first candidate with the highest score.
func fittestCandidate(scored []candidate) candidate {
	fittest := scored[0]
	for _, c := range scored[1:] {
		if c.score > fittest.score {
			fittest = c
		}
	}
	return fittest
}

// tournamentSelect samples distinct members without replacement and returns the plan of the first one with the
// highest score.
func (e *Engine) tournamentSelect(scored []candidate) *Plan {
	return fittestCandidate(sample(e.rng, scored, e.cfg.TournamentSize)).plan
}

// crossover swaps day suffixes after a random cut point. Parents with at most one day are returned unchanged.
// Days are shared between parents and children, never copied or split.
func (e *Engine) crossover(parent1, parent2 *Plan) (*Plan, *Plan) {
	n := min(len(parent1.Days), len(parent2.Days))
	if n <= 1 {
		return parent1, parent2
	}
	cut := 1 + e.rng.IntN(n-1)
	return crossoverAt(parent1, parent2, cut)
}

func crossoverAt(parent1, parent2 *Plan, cut int) (*Plan, *Plan) {
	child1 := &Plan{Days: slices.Concat(parent1.Days[:cut], parent2.Days[cut:])}
	child2 := &Plan{Days: slices.Concat(parent2.Days[:cut], parent1.Days[cut:])}
	return child1, child2
}

// mutate replaces the exercise of one random session with a valid exercise that is not used elsewhere in the same
// day. The replaced exercise itself remains a candidate. The returned plan is a new plan whose mutated day is a
// copy; plan is returned unchanged when no mutation happens.
func (e *Engine) mutate(plan *Plan, profile UserProfile) *Plan {
	if e.rng.Float64() >= e.cfg.MutationRate || len(plan.Days) == 0 {
		return plan
	}

	dayIdx := e.rng.IntN(len(plan.Days))
	day := plan.Days[dayIdx]
	if day.Len() == 0 {
		return plan
	}
	sessionIdx := e.rng.IntN(day.Len())
	old := day.Sessions()[sessionIdx].Exercise()

	valid := e.catalog.ValidExercises(old.PrimaryMuscle, profile.Equipment)
	unused := unusedExercises(valid, day, old.Name)
	if len(unused) == 0 {
		return plan
	}

	mutated := day.Clone()
	mutated.replace(sessionIdx, NewSession(e.rng, choose(e.rng, unused), profile.Goal))

	days := slices.Clone(plan.Days)
	days[dayIdx] = mutated
	return &Plan{Days: days}
}
