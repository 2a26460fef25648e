package planner

import (
	"math"
	"testing"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/ptr"
	"github.com/google/go-cmp/cmp"
)

func TestEvaluate_SessionFloorWithCardio(t *testing.T) {
	profile := UserProfile{FitnessLevel: LevelBeginner, Goal: GoalStrength, AvailableDays: 1}
	plan := &Plan{Days: []*Day{
		dayOf(1,
			strengthSession(mustLookup(t, "Push-ups"), GoalStrength, 5, 3),
			strengthSession(mustLookup(t, "Plank"), GoalStrength, 5, 3),
			cardioSession(mustLookup(t, "Running"), GoalStrength, 20),
		),
	}}

	want := Breakdown{
		Equipment:    0,
		Recovery:     0,
		Cardio:       30,
		SessionFloor: -50,
		Calories:     0,
		Total:        -20,
	}
	if diff := cmp.Diff(want, Evaluate(plan, profile)); diff != "" {
		t.Errorf("breakdown mismatch (-want +got):\n%s", diff)
	}
	if got := Fitness(plan, profile); got != -20 {
		t.Errorf("Fitness = %v, want -20", got)
	}
}

func TestEvaluate_Terms(t *testing.T) {
	pushUps := mustLookup(t, "Push-ups")
	bench := mustLookup(t, "Barbell Bench Press")
	superman := mustLookup(t, "Superman")
	running := mustLookup(t, "Running")

	fullDay := func(number int, extra ...*Session) *Day {
		d := NewDay(number)
		for _, s := range extra {
			d.AddOrCombine(s)
		}
		for _, ex := range DefaultCatalog().ValidExercises(MuscleCore, nil) {
			if d.Len() >= MinSessionsPerDay {
				break
			}
			d.AddOrCombine(strengthSession(ex, GoalStrength, 5, 2))
		}
		for _, ex := range DefaultCatalog().ValidExercises(MuscleLegs, nil) {
			if d.Len() >= MinSessionsPerDay {
				break
			}
			d.AddOrCombine(strengthSession(ex, GoalStrength, 5, 2))
		}
		return d
	}

	tests := []struct {
		name    string
		plan    *Plan
		profile UserProfile
		want    Breakdown
	}{
		{
			name: "equipment missing counts per item",
			plan: &Plan{Days: []*Day{
				dayOf(1, strengthSession(bench, GoalStrength, 5, 2), cardioSession(running, GoalStrength, 20)),
			}},
			profile: UserProfile{Goal: GoalStrength, AvailableDays: 1, Equipment: []string{"bench"}},
			want:    Breakdown{Equipment: -50, Cardio: 30, SessionFloor: -60, Total: -80},
		},
		{
			name: "adjacent days of the same group",
			plan: &Plan{Days: []*Day{
				fullDay(1, strengthSession(pushUps, GoalStrength, 5, 2)),
				fullDay(2, strengthSession(pushUps, GoalStrength, 5, 2)),
				fullDay(3, strengthSession(superman, GoalStrength, 5, 2)),
			}},
			profile: UserProfile{Goal: GoalStrength, AvailableDays: 3},
			// Chest on days 1 and 2, core and legs on all three days.
			want: Breakdown{Recovery: -75, Cardio: -100, SessionFloor: 60, Total: -115},
		},
		{
			name: "non adjacent days are fine",
			plan: &Plan{Days: []*Day{
				dayOf(1, strengthSession(pushUps, GoalStrength, 5, 2)),
				dayOf(2, cardioSession(running, GoalStrength, 20)),
				dayOf(3, strengthSession(pushUps, GoalStrength, 5, 2)),
			}},
			profile: UserProfile{Goal: GoalStrength, AvailableDays: 3},
			want:    Breakdown{Cardio: 30, SessionFloor: -210, Total: -180},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Evaluate(tt.plan, tt.profile)); diff != "" {
				t.Errorf("breakdown mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCalorieScore(t *testing.T) {
	// 20 minutes of running burn 200 calories.
	plan := &Plan{Days: []*Day{dayOf(1, cardioSession(mustLookup(t, "Running"), GoalStrength, 20))}}

	tests := []struct {
		name   string
		target *float64
		want   float64
	}{
		{name: "no target", target: nil, want: 0},
		{name: "zero target is ignored", target: ptr.Ref(0.0), want: 0},
		{name: "exact", target: ptr.Ref(200.0), want: 50},
		{name: "within ten percent", target: ptr.Ref(210.0), want: 50},
		{name: "between ten and twenty percent", target: ptr.Ref(230.0), want: 0},
		{name: "far off", target: ptr.Ref(400.0), want: -50},
		{name: "far over", target: ptr.Ref(100.0), want: -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := UserProfile{Goal: GoalStrength, AvailableDays: 1, TargetCalories: tt.target}
			if got := calorieScore(plan, profile); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
