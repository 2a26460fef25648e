package planner

// Session parameter constants.
const (
	// secondsPerRep is the time cost of a single repetition.
	secondsPerRep = 5

	strengthRestSeconds    = 150
	hypertrophyRestSeconds = 90
	enduranceRestSeconds   = 45

	strengthCardioMinutes    = 20
	hypertrophyCardioMinutes = 30
	enduranceCardioMinutes   = 45

	strengthMinReps    = 4
	strengthMaxReps    = 6
	strengthMinSets    = 2
	strengthMaxSets    = 4
	hypertrophyMinReps = 8
	hypertrophyMaxReps = 12
	hypertrophyMinSets = 2
	hypertrophyMaxSets = 3
	enduranceMinReps   = 15
	enduranceMaxReps   = 20
	enduranceSets      = 2
)

// Session is one scheduled occurrence of an exercise within a day.
//
// Cardio sessions carry a duration, all other sessions carry reps and sets. A zero value means absent. The calorie
// estimate is recomputed by every setter.
type Session struct {
	exercise *Exercise
	goal     Goal
	reps     int
	sets     int
	duration int
	calories float64
}

// NewSession derives training parameters for the exercise and goal and estimates the energy expenditure.
// Reps and sets are drawn from goal dependent ranges using rng.
func NewSession(rng Rand, exercise *Exercise, goal Goal) *Session {
	s := &Session{
		exercise: exercise,
		goal:     goal,
		reps:     0,
		sets:     0,
		duration: 0,
		calories: 0,
	}

	if exercise.IsCardio() {
		s.duration = cardioMinutes(goal)
	} else {
		switch goal {
		case GoalStrength:
			s.reps = randomInt(rng, strengthMinReps, strengthMaxReps)
			s.sets = randomInt(rng, strengthMinSets, strengthMaxSets)
		case GoalHypertrophy:
			s.reps = randomInt(rng, hypertrophyMinReps, hypertrophyMaxReps)
			s.sets = randomInt(rng, hypertrophyMinSets, hypertrophyMaxSets)
		case GoalEndurance:
			s.reps = randomInt(rng, enduranceMinReps, enduranceMaxReps)
			s.sets = enduranceSets
		}
	}

	s.recalculate()
	return s
}

// Exercise returns the scheduled exercise.
func (s *Session) Exercise() *Exercise {
	return s.exercise
}

// Goal returns the goal the session was generated for.
func (s *Session) Goal() Goal {
	return s.goal
}

// Reps returns the repetitions per set and whether the session has them.
func (s *Session) Reps() (int, bool) {
	return s.reps, s.reps > 0
}

// Sets returns the number of sets and whether the session has them.
func (s *Session) Sets() (int, bool) {
	return s.sets, s.sets > 0
}

// Duration returns the duration in minutes and whether the session has one.
func (s *Session) Duration() (int, bool) {
	return s.duration, s.duration > 0
}

// Calories returns the estimated energy expenditure.
func (s *Session) Calories() float64 {
	return s.calories
}

// Clone returns a copy of the session that shares only the exercise.
func (s *Session) Clone() *Session {
	c := *s
	return &c
}

func (s *Session) setSets(sets int) {
	s.sets = sets
	s.recalculate()
}

func (s *Session) setDuration(minutes int) {
	s.duration = minutes
	s.recalculate()
}

func (s *Session) recalculate() {
	s.calories = estimateCalories(s.exercise, s.goal, s.reps, s.sets, s.duration)
}

// estimateCalories returns duration × burn rate for cardio. Strength work is converted to minutes from a fixed
// per-rep cost plus goal dependent rest between sets.
func estimateCalories(exercise *Exercise, goal Goal, reps, sets, duration int) float64 {
	if exercise.IsCardio() {
		return float64(duration) * exercise.CalorieBurnRate
	}
	minutes := float64((reps*secondsPerRep+restSeconds(goal))*sets) / 60 //nolint:mnd // seconds per minute.
	return minutes * exercise.CalorieBurnRate
}

func restSeconds(goal Goal) int {
	switch goal {
	case GoalStrength:
		return strengthRestSeconds
	case GoalHypertrophy:
		return hypertrophyRestSeconds
	case GoalEndurance:
		return enduranceRestSeconds
	default:
		return hypertrophyRestSeconds
	}
}

func cardioMinutes(goal Goal) int {
	switch goal {
	case GoalStrength:
		return strengthCardioMinutes
	case GoalHypertrophy:
		return hypertrophyCardioMinutes
	case GoalEndurance:
		return enduranceCardioMinutes
	default:
		return hypertrophyCardioMinutes
	}
}
