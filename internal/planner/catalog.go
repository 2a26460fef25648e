package planner

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog is returned when a catalog cannot support plan construction.
var ErrInvalidCatalog = errors.New("invalid exercise catalog")

// defaultCalorieBurnRate is used when a catalog file omits calorie_burn_rate.
const defaultCalorieBurnRate = 5.0

// Catalog is a fixed reference list of exercises.
type Catalog struct {
	exercises []*Exercise
	byMuscle  map[MuscleGroup][]*Exercise
}

// NewCatalog validates the exercises and builds a catalog from them.
//
// Names must be unique and burn rates positive, and every muscle group needs at least one exercise without
// equipment so that valid exercise lookups can always fall back to it.
func NewCatalog(exercises []Exercise) (*Catalog, error) {
	c := &Catalog{
		exercises: make([]*Exercise, 0, len(exercises)),
		byMuscle:  make(map[MuscleGroup][]*Exercise),
	}

	var errs []error
	seen := make(map[string]bool, len(exercises))
	for i := range exercises {
		ex := exercises[i]
		ex.Equipment = normalizeEquipment(ex.Equipment)
		switch {
		case ex.Name == "":
			errs = append(errs, fmt.Errorf("exercise %d has no name", i))
			continue
		case seen[ex.Name]:
			errs = append(errs, fmt.Errorf("duplicate exercise %q", ex.Name))
			continue
		case !slices.Contains(MuscleGroups(), ex.PrimaryMuscle):
			errs = append(errs, fmt.Errorf("exercise %q has unknown muscle group %q", ex.Name, ex.PrimaryMuscle))
			continue
		case ex.CalorieBurnRate <= 0:
			errs = append(errs, fmt.Errorf("exercise %q has non-positive burn rate %v", ex.Name, ex.CalorieBurnRate))
			continue
		}
		seen[ex.Name] = true
		c.exercises = append(c.exercises, &ex)
		c.byMuscle[ex.PrimaryMuscle] = append(c.byMuscle[ex.PrimaryMuscle], &ex)
	}

	for _, mg := range MuscleGroups() {
		if !slices.ContainsFunc(c.byMuscle[mg], func(ex *Exercise) bool { return len(ex.Equipment) == 0 }) {
			errs = append(errs, fmt.Errorf("muscle group %q has no exercise without equipment", mg))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}
	return c, nil
}

func normalizeEquipment(equipment []string) []string {
	normalized := make([]string, 0, len(equipment))
	for _, item := range equipment {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			normalized = append(normalized, item)
		}
	}
	return normalized
}

// Exercises returns all catalog entries in catalog order.
func (c *Catalog) Exercises() []*Exercise {
	return c.exercises
}

// Lookup returns the exercise with the given name.
func (c *Catalog) Lookup(name string) (*Exercise, bool) {
	idx := slices.IndexFunc(c.exercises, func(ex *Exercise) bool { return ex.Name == name })
	if idx == -1 {
		return nil, false
	}
	return c.exercises[idx], true
}

// ValidExercises returns the exercises for the muscle group that need no equipment or only equipment the user
// owns. If none qualify, the exercises of the group that need no equipment are returned instead.
func (c *Catalog) ValidExercises(mg MuscleGroup, equipment []string) []*Exercise {
	var valid []*Exercise
	for _, ex := range c.byMuscle[mg] {
		if hasAllEquipment(ex, equipment) {
			valid = append(valid, ex)
		}
	}
	if len(valid) > 0 {
		return valid
	}

	for _, ex := range c.byMuscle[mg] {
		if len(ex.Equipment) == 0 {
			valid = append(valid, ex)
		}
	}
	return valid
}

func hasAllEquipment(ex *Exercise, equipment []string) bool {
	for _, item := range ex.Equipment {
		if !slices.Contains(equipment, item) {
			return false
		}
	}
	return true
}

type catalogFile struct {
	Exercises []catalogFileExercise `yaml:"exercises"`
}

type catalogFileExercise struct {
	Name             string   `yaml:"name"`
	Equipment        []string `yaml:"equipment"`
	PrimaryMuscle    string   `yaml:"primary_muscle"`
	SecondaryMuscles []string `yaml:"secondary_muscles"`
	CalorieBurnRate  *float64 `yaml:"calorie_burn_rate"`
}

// LoadCatalog reads a YAML catalog of the form
//
//	exercises:
//	  - name: Push-ups
//	    equipment: []
//	    primary_muscle: chest
//	    secondary_muscles: [arms, shoulders]
//	    calorie_burn_rate: 3.8
//
// A missing calorie_burn_rate defaults to 5.0.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	exercises := make([]Exercise, 0, len(file.Exercises))
	for _, fe := range file.Exercises {
		primary, err := ParseMuscleGroup(fe.PrimaryMuscle)
		if err != nil {
			return nil, fmt.Errorf("%w: exercise %q: %w", ErrInvalidCatalog, fe.Name, err)
		}
		secondary := make([]MuscleGroup, 0, len(fe.SecondaryMuscles))
		for _, name := range fe.SecondaryMuscles {
			var mg MuscleGroup
			if mg, err = ParseMuscleGroup(name); err != nil {
				return nil, fmt.Errorf("%w: exercise %q: %w", ErrInvalidCatalog, fe.Name, err)
			}
			secondary = append(secondary, mg)
		}
		rate := defaultCalorieBurnRate
		if fe.CalorieBurnRate != nil {
			rate = *fe.CalorieBurnRate
		}
		exercises = append(exercises, Exercise{
			Name:             strings.TrimSpace(fe.Name),
			Equipment:        fe.Equipment,
			PrimaryMuscle:    primary,
			SecondaryMuscles: secondary,
			CalorieBurnRate:  rate,
		})
	}

	return NewCatalog(exercises)
}

// DefaultCatalog returns the built-in reference catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(referenceExercises())
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return c
}

func referenceExercises() []Exercise {
	none := []string(nil)
	ex := func(name string, equipment []string, primary MuscleGroup, secondary []MuscleGroup, rate float64) Exercise {
		return Exercise{
			Name:             name,
			Equipment:        equipment,
			PrimaryMuscle:    primary,
			SecondaryMuscles: secondary,
			CalorieBurnRate:  rate,
		}
	}
	eq := func(items ...string) []string { return items }
	mg := func(groups ...MuscleGroup) []MuscleGroup { return groups }

	return []Exercise{
		ex("Barbell Bench Press", eq("barbell", "bench"), MuscleChest, nil, 6.0),
		ex("Push-ups", none, MuscleChest, mg(MuscleArms, MuscleShoulders), 3.8),
		ex("Dumbbell Flyes", eq("dumbbells", "bench"), MuscleChest, nil, 5.0),
		ex("Incline Push-ups", none, MuscleChest, mg(MuscleArms), 4.0),
		ex("Dumbbell Bench Press", eq("dumbbells", "bench"), MuscleChest, nil, 5.5),
		ex("Chest Dips", eq("parallel bars"), MuscleChest, mg(MuscleArms), 5.0),

		ex("Pull-ups", eq("pull-up bar"), MuscleBack, mg(MuscleArms), 5.0),
		ex("Bent-over Rows", eq("barbell"), MuscleBack, mg(MuscleArms), 5.5),
		ex("Lat Pulldowns", eq("cable machine"), MuscleBack, mg(MuscleArms), 4.5),
		ex("Dumbbell Rows", eq("dumbbells"), MuscleBack, mg(MuscleArms), 5.0),
		ex("T-Bar Rows", eq("barbell"), MuscleBack, nil, 5.5),
		ex("Superman", none, MuscleBack, mg(MuscleCore), 3.0),

		ex("Bicep Curls", eq("dumbbells"), MuscleArms, nil, 3.0),
		ex("Tricep Dips", eq("parallel bars"), MuscleArms, nil, 4.0),
		ex("Hammer Curls", eq("dumbbells"), MuscleArms, nil, 3.5),
		ex("Barbell Curls", eq("barbell"), MuscleArms, nil, 3.5),
		ex("Tricep Extensions", eq("dumbbells"), MuscleArms, nil, 3.0),
		ex("Close-Grip Push-ups", none, MuscleArms, mg(MuscleChest), 4.0),

		ex("Plank", none, MuscleCore, nil, 3.0),
		ex("Russian Twists", none, MuscleCore, nil, 4.0),
		ex("Hanging Leg Raises", eq("pull-up bar"), MuscleCore, nil, 5.0),
		ex("Crunches", none, MuscleCore, nil, 3.5),
		ex("Mountain Climbers", none, MuscleCore, nil, 6.0),
		ex("Dead Bug", none, MuscleCore, nil, 3.0),

		ex("Squats", eq("barbell"), MuscleLegs, mg(MuscleCore), 7.0),
		ex("Lunges", eq("dumbbells"), MuscleLegs, nil, 5.5),
		ex("Deadlifts", eq("barbell"), MuscleLegs, mg(MuscleBack), 8.0),
		ex("Bodyweight Squats", none, MuscleLegs, mg(MuscleCore), 5.0),
		ex("Bulgarian Split Squats", none, MuscleLegs, nil, 6.0),
		ex("Calf Raises", none, MuscleLegs, nil, 3.0),

		ex("Overhead Press", eq("barbell"), MuscleShoulders, mg(MuscleArms), 5.0),
		ex("Lateral Raises", eq("dumbbells"), MuscleShoulders, nil, 4.0),
		ex("Front Raises", eq("dumbbells"), MuscleShoulders, nil, 4.0),
		ex("Pike Push-ups", none, MuscleShoulders, mg(MuscleArms), 4.5),
		ex("Rear Delt Flyes", eq("dumbbells"), MuscleShoulders, nil, 3.5),
		ex("Arnold Press", eq("dumbbells"), MuscleShoulders, nil, 5.0),

		ex("Running", none, MuscleCardio, nil, 10.0),
		ex("Cycling", eq("stationary bike"), MuscleCardio, nil, 8.0),
		ex("Jumping Rope", none, MuscleCardio, nil, 12.0),
		ex("Burpees", none, MuscleCardio, nil, 15.0),
		ex("High Knees", none, MuscleCardio, nil, 8.0),
		ex("Jumping Jacks", none, MuscleCardio, nil, 7.0),
	}
}
