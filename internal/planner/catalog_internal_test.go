package planner

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func exerciseNames(exercises []*Exercise) []string {
	names := make([]string, 0, len(exercises))
	for _, ex := range exercises {
		names = append(names, ex.Name)
	}
	return names
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	if got := len(c.Exercises()); got != 42 {
		t.Errorf("got %d exercises, want 42", got)
	}
	for _, mg := range MuscleGroups() {
		if got := len(c.byMuscle[mg]); got != 6 {
			t.Errorf("%s: got %d exercises, want 6", mg, got)
		}
	}
	if _, ok := c.Lookup("Deadlifts"); !ok {
		t.Errorf("expected Deadlifts in catalog")
	}
	if _, ok := c.Lookup("Bench Warmers"); ok {
		t.Errorf("unexpected lookup hit")
	}
}

func TestCatalog_ValidExercises(t *testing.T) {
	tests := []struct {
		name      string
		group     MuscleGroup
		equipment []string
		want      []string
	}{
		{
			name:      "no equipment",
			group:     MuscleChest,
			equipment: nil,
			want:      []string{"Push-ups", "Incline Push-ups"},
		},
		{
			name:      "barbell and bench",
			group:     MuscleChest,
			equipment: []string{"barbell", "bench"},
			want:      []string{"Barbell Bench Press", "Push-ups", "Incline Push-ups"},
		},
		{
			name:      "partial equipment is not enough",
			group:     MuscleChest,
			equipment: []string{"bench"},
			want:      []string{"Push-ups", "Incline Push-ups"},
		},
		{
			name:      "unrelated equipment",
			group:     MuscleBack,
			equipment: []string{"kettlebell"},
			want:      []string{"Superman"},
		},
		{
			name:      "cardio with bike",
			group:     MuscleCardio,
			equipment: []string{"stationary bike"},
			want:      []string{"Running", "Cycling", "Jumping Rope", "Burpees", "High Knees", "Jumping Jacks"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exerciseNames(DefaultCatalog().ValidExercises(tt.group, tt.equipment))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("valid exercises mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func minimalExercises() []Exercise {
	exercises := make([]Exercise, 0, len(MuscleGroups()))
	for _, mg := range MuscleGroups() {
		exercises = append(exercises, Exercise{
			Name:             "Bodyweight " + string(mg),
			Equipment:        nil,
			PrimaryMuscle:    mg,
			SecondaryMuscles: nil,
			CalorieBurnRate:  4,
		})
	}
	return exercises
}

func TestNewCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		modify  func([]Exercise) []Exercise
		wantMsg string
	}{
		{
			name: "duplicate name",
			modify: func(exs []Exercise) []Exercise {
				dup := exs[0]
				return append(exs, dup)
			},
			wantMsg: "duplicate exercise",
		},
		{
			name: "missing equipment free exercise",
			modify: func(exs []Exercise) []Exercise {
				exs[0].Equipment = []string{"barbell"}
				return exs
			},
			wantMsg: "has no exercise without equipment",
		},
		{
			name: "non-positive burn rate",
			modify: func(exs []Exercise) []Exercise {
				exs[1].CalorieBurnRate = 0
				return exs
			},
			wantMsg: "non-positive burn rate",
		},
		{
			name: "unknown muscle group",
			modify: func(exs []Exercise) []Exercise {
				return append(exs, Exercise{Name: "Glute Bridge", PrimaryMuscle: "glutes", CalorieBurnRate: 3})
			},
			wantMsg: "unknown muscle group",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.modify(minimalExercises()))
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}

	if _, err := NewCatalog(minimalExercises()); err != nil {
		t.Errorf("minimal catalog rejected: %v", err)
	}
}

func TestLoadCatalog(t *testing.T) {
	const file = `
exercises:
  - name: Push-ups
    primary_muscle: Chest
    secondary_muscles: [arms]
    calorie_burn_rate: 3.8
  - name: Bench Press
    equipment: [Barbell, bench]
    primary_muscle: chest
  - name: Superman
    primary_muscle: back
  - name: Close-Grip Push-ups
    primary_muscle: arms
  - name: Plank
    primary_muscle: core
  - name: Calf Raises
    primary_muscle: legs
  - name: Pike Push-ups
    primary_muscle: shoulders
  - name: Running
    primary_muscle: cardio
    calorie_burn_rate: 10
`
	c, err := LoadCatalog(strings.NewReader(file))
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	bench, ok := c.Lookup("Bench Press")
	if !ok {
		t.Fatalf("Bench Press missing")
	}
	if diff := cmp.Diff([]string{"barbell", "bench"}, bench.Equipment); diff != "" {
		t.Errorf("equipment mismatch (-want +got):\n%s", diff)
	}
	if bench.CalorieBurnRate != defaultCalorieBurnRate {
		t.Errorf("burn rate = %v, want default %v", bench.CalorieBurnRate, defaultCalorieBurnRate)
	}
	pushUps, _ := c.Lookup("Push-ups")
	if pushUps.CalorieBurnRate != 3.8 || pushUps.PrimaryMuscle != MuscleChest {
		t.Errorf("unexpected push-ups entry %+v", pushUps)
	}
}

func TestLoadCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "unknown field", file: "exercises:\n  - name: Plank\n    muscle: core\n"},
		{name: "unknown muscle group", file: "exercises:\n  - name: Hip Thrust\n    primary_muscle: glutes\n"},
		{name: "missing groups", file: "exercises:\n  - name: Plank\n    primary_muscle: core\n"},
		{name: "malformed", file: "exercises: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadCatalog(strings.NewReader(tt.file)); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}
