package planner

import (
	"math"
	"time"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/ptr"
)

// GeneratedAtLayout is the UTC timestamp layout of PlanDocument.GeneratedAt.
const GeneratedAtLayout = "2006-01-02T15:04:05.000000Z"

// PlanDocument is the exchange representation of a plan. Calorie figures are rounded to two decimals.
type PlanDocument struct {
	WeeklyPlan          []DayDocument `json:"weekly_plan"           bson:"weekly_plan"`
	TotalWeeklyCalories float64       `json:"total_weekly_calories" bson:"total_weekly_calories"`
	GeneratedAt         string        `json:"generated_at"          bson:"generated_at"`
}

// DayDocument is the exchange representation of a day.
type DayDocument struct {
	DayNumber     int                `json:"day_number"     bson:"day_number"`
	MuscleGroups  []string           `json:"muscle_groups"  bson:"muscle_groups"`
	Exercises     []ExerciseDocument `json:"exercises"      bson:"exercises"`
	TotalCalories float64            `json:"total_calories" bson:"total_calories"`
}

// ExerciseDocument is the exchange representation of a session. It carries either Reps and Sets or
// DurationMinutes.
type ExerciseDocument struct {
	Name            string   `json:"name"                       bson:"name"`
	Equipment       []string `json:"equipment"                  bson:"equipment"`
	PrimaryMuscle   string   `json:"primary_muscle"             bson:"primary_muscle"`
	Calories        float64  `json:"calories"                   bson:"calories"`
	Reps            *int     `json:"reps,omitempty"             bson:"reps,omitempty"`
	Sets            *int     `json:"sets,omitempty"             bson:"sets,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" bson:"duration_minutes,omitempty"`
}

// Serialize converts the plan into its exchange representation stamped with generatedAt.
func Serialize(plan *Plan, generatedAt time.Time) PlanDocument {
	doc := PlanDocument{
		WeeklyPlan:          make([]DayDocument, 0, len(plan.Days)),
		TotalWeeklyCalories: round2(plan.TotalCalories()),
		GeneratedAt:         generatedAt.UTC().Format(GeneratedAtLayout),
	}

	for _, day := range plan.Days {
		dayDoc := DayDocument{
			DayNumber:     day.Number,
			MuscleGroups:  make([]string, 0, len(day.MuscleGroups())),
			Exercises:     make([]ExerciseDocument, 0, day.Len()),
			TotalCalories: round2(day.TotalCalories()),
		}
		for _, mg := range day.MuscleGroups() {
			dayDoc.MuscleGroups = append(dayDoc.MuscleGroups, string(mg))
		}
		for _, s := range day.Sessions() {
			dayDoc.Exercises = append(dayDoc.Exercises, serializeSession(s))
		}
		doc.WeeklyPlan = append(doc.WeeklyPlan, dayDoc)
	}

	return doc
}

func serializeSession(s *Session) ExerciseDocument {
	ex := s.Exercise()
	doc := ExerciseDocument{
		Name:            ex.Name,
		Equipment:       append(make([]string, 0, len(ex.Equipment)), ex.Equipment...),
		PrimaryMuscle:   string(ex.PrimaryMuscle),
		Calories:        round2(s.Calories()),
		Reps:            nil,
		Sets:            nil,
		DurationMinutes: nil,
	}
	reps, hasReps := s.Reps()
	sets, hasSets := s.Sets()
	if hasReps && hasSets {
		doc.Reps = ptr.Ref(reps)
		doc.Sets = ptr.Ref(sets)
	} else if minutes, ok := s.Duration(); ok {
		doc.DurationMinutes = ptr.Ref(minutes)
	}
	return doc
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100 //nolint:mnd // two decimals.
}
