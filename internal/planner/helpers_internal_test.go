package planner

import (
	"testing"
)

// scriptedRand replays fixed values and falls back to zero once a script is exhausted.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func mustLookup(t *testing.T, name string) *Exercise {
	t.Helper()
	ex, ok := DefaultCatalog().Lookup(name)
	if !ok {
		t.Fatalf("exercise %q not in catalog", name)
	}
	return ex
}

func strengthSession(ex *Exercise, goal Goal, reps, sets int) *Session {
	s := &Session{exercise: ex, goal: goal, reps: reps, sets: sets, duration: 0, calories: 0}
	s.recalculate()
	return s
}

func cardioSession(ex *Exercise, goal Goal, minutes int) *Session {
	s := &Session{exercise: ex, goal: goal, reps: 0, sets: 0, duration: minutes, calories: 0}
	s.recalculate()
	return s
}

func dayOf(number int, sessions ...*Session) *Day {
	d := NewDay(number)
	for _, s := range sessions {
		d.AddOrCombine(s)
	}
	return d
}

func newTestEngine(t *testing.T, cfg Config, rng Rand) *Engine {
	t.Helper()
	e, err := New(cfg, DefaultCatalog(), rng, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func smallConfig() Config {
	return Config{
		PopulationSize:      10,
		Generations:         5,
		MutationRate:        0.3,
		TournamentSize:      3,
		HillClimbIterations: 20,
	}
}

// assertCaloriesConsistent checks that every session's stored estimate matches its current volume.
func assertCaloriesConsistent(t *testing.T, plan *Plan) {
	t.Helper()
	for _, d := range plan.Days {
		for _, s := range d.Sessions() {
			want := estimateCalories(s.exercise, s.goal, s.reps, s.sets, s.duration)
			if s.Calories() != want {
				t.Errorf("day %d %s: calories %v, want %v", d.Number, s.exercise.Name, s.Calories(), want)
			}
		}
	}
}

// assertWellFormed checks day numbering, session parameters and name uniqueness within days.
func assertWellFormed(t *testing.T, plan *Plan, days int) {
	t.Helper()
	if len(plan.Days) != days {
		t.Fatalf("got %d days, want %d", len(plan.Days), days)
	}
	for i, d := range plan.Days {
		if d.Number != i+1 {
			t.Errorf("day at index %d has number %d", i, d.Number)
		}
		seen := make(map[string]bool)
		for _, s := range d.Sessions() {
			if seen[s.exercise.Name] {
				t.Errorf("day %d contains %s twice", d.Number, s.exercise.Name)
			}
			seen[s.exercise.Name] = true
			_, hasSets := s.Sets()
			_, hasDuration := s.Duration()
			if s.exercise.IsCardio() != hasDuration || hasSets == hasDuration {
				t.Errorf("day %d %s: sets %v duration %v", d.Number, s.exercise.Name, hasSets, hasDuration)
			}
		}
	}
}
