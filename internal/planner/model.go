// Package planner assigns exercises to the days of a training week.
//
// A plan is searched for with a genetic algorithm seeded by randomly constructed plans and then refined with
// strict hill climbing. The result is a good schedule, not necessarily an optimal one.
package planner

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownValue is returned when a categorical value cannot be parsed.
var ErrUnknownValue = errors.New("unknown value")

// FitnessLevel is the self-reported training experience of a user. It is informational only.
type FitnessLevel string

// Fitness level constants.
const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// ParseFitnessLevel parses s case-insensitively, treating spaces as underscores.
func ParseFitnessLevel(s string) (FitnessLevel, error) {
	switch level := FitnessLevel(normalizeName(s)); level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return level, nil
	default:
		return "", fmt.Errorf("%w: fitness level %q", ErrUnknownValue, s)
	}
}

// Goal is the training goal that drives session volume.
type Goal string

// Training goal constants.
const (
	GoalStrength    Goal = "strength"
	GoalHypertrophy Goal = "hypertrophy"
	GoalEndurance   Goal = "endurance"
)

// ParseGoal parses s case-insensitively, treating spaces as underscores.
func ParseGoal(s string) (Goal, error) {
	switch goal := Goal(normalizeName(s)); goal {
	case GoalStrength, GoalHypertrophy, GoalEndurance:
		return goal, nil
	default:
		return "", fmt.Errorf("%w: goal %q", ErrUnknownValue, s)
	}
}

// MuscleGroup is the training category of an exercise. Cardio is a category of its own.
type MuscleGroup string

// Muscle group constants.
const (
	MuscleChest     MuscleGroup = "chest"
	MuscleBack      MuscleGroup = "back"
	MuscleArms      MuscleGroup = "arms"
	MuscleCore      MuscleGroup = "core"
	MuscleLegs      MuscleGroup = "legs"
	MuscleShoulders MuscleGroup = "shoulders"
	MuscleCardio    MuscleGroup = "cardio"
)

// MuscleGroups returns every muscle group in declaration order.
func MuscleGroups() []MuscleGroup {
	return []MuscleGroup{
		MuscleChest, MuscleBack, MuscleArms, MuscleCore, MuscleLegs, MuscleShoulders, MuscleCardio,
	}
}

// ParseMuscleGroup parses s case-insensitively.
func ParseMuscleGroup(s string) (MuscleGroup, error) {
	mg := MuscleGroup(normalizeName(s))
	if !slices.Contains(MuscleGroups(), mg) {
		return "", fmt.Errorf("%w: muscle group %q", ErrUnknownValue, s)
	}
	return mg, nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
}

// UserProfile holds the inputs of one generation run. It must not change while the run is in progress.
type UserProfile struct {
	FitnessLevel  FitnessLevel
	Goal          Goal
	AvailableDays int
	// Equipment contains lowercase equipment identifiers.
	Equipment []string
	// TargetCalories is the optional target for the total weekly energy expenditure.
	TargetCalories *float64
}

// Normalized returns a copy of the profile with trimmed, lowercased and de-duplicated equipment.
func (p UserProfile) Normalized() UserProfile {
	equipment := make([]string, 0, len(p.Equipment))
	for _, item := range p.Equipment {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" || slices.Contains(equipment, item) {
			continue
		}
		equipment = append(equipment, item)
	}
	p.Equipment = equipment
	return p
}

// HasEquipment reports whether the user owns item.
func (p UserProfile) HasEquipment(item string) bool {
	return slices.Contains(p.Equipment, item)
}

// hasCalorieTarget reports whether the profile sets a usable weekly calorie target.
func (p UserProfile) hasCalorieTarget() bool {
	return p.TargetCalories != nil && *p.TargetCalories > 0
}

// Exercise is an immutable catalog entry shared by reference between sessions.
type Exercise struct {
	Name string
	// Equipment lists required equipment. Empty means no equipment is needed.
	Equipment        []string
	PrimaryMuscle    MuscleGroup
	SecondaryMuscles []MuscleGroup
	// CalorieBurnRate is a MET-like multiplier used by the calorie estimates.
	CalorieBurnRate float64
}

// IsCardio reports whether the exercise belongs to the cardio category.
func (e *Exercise) IsCardio() bool {
	return e.PrimaryMuscle == MuscleCardio
}

// Day is one training day of a plan. Sessions are keyed by exercise name so that a day never holds the same
// exercise twice.
type Day struct {
	// Number is the 1-based position of the day in the plan.
	Number   int
	sessions []*Session
	index    map[string]int
}

// NewDay creates an empty day.
func NewDay(number int) *Day {
	return &Day{
		Number:   number,
		sessions: nil,
		index:    make(map[string]int),
	}
}

// Sessions returns the sessions of the day in insertion order. The returned slice must not be modified.
func (d *Day) Sessions() []*Session {
	return d.sessions
}

// Len returns the number of sessions in the day.
func (d *Day) Len() int {
	return len(d.sessions)
}

// Has reports whether the day already contains an exercise with the given name.
func (d *Day) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// AddOrCombine adds the session or, if the day already contains the same exercise, merges the volume into the
// existing session. Sets are summed for strength work and durations for cardio.
func (d *Day) AddOrCombine(s *Session) {
	i, ok := d.index[s.exercise.Name]
	if !ok {
		d.index[s.exercise.Name] = len(d.sessions)
		d.sessions = append(d.sessions, s)
		return
	}

	existing := d.sessions[i]
	switch {
	case existing.sets > 0 && s.sets > 0:
		existing.setSets(existing.sets + s.sets)
	case existing.duration > 0 && s.duration > 0:
		existing.setDuration(existing.duration + s.duration)
	}
}

// replace swaps the session at position i for s. The caller guarantees that s.exercise is not used elsewhere in
// the day.
func (d *Day) replace(i int, s *Session) {
	delete(d.index, d.sessions[i].exercise.Name)
	d.sessions[i] = s
	d.index[s.exercise.Name] = i
}

// TotalCalories sums the calorie estimates of all sessions.
func (d *Day) TotalCalories() float64 {
	var total float64
	for _, s := range d.sessions {
		total += s.calories
	}
	return total
}

// MuscleGroups returns the distinct primary muscle groups of the day in order of first appearance.
func (d *Day) MuscleGroups() []MuscleGroup {
	var groups []MuscleGroup
	for _, s := range d.sessions {
		if !slices.Contains(groups, s.exercise.PrimaryMuscle) {
			groups = append(groups, s.exercise.PrimaryMuscle)
		}
	}
	return groups
}

// Clone returns a deep copy of the day. Exercises stay shared.
func (d *Day) Clone() *Day {
	c := &Day{
		Number:   d.Number,
		sessions: make([]*Session, len(d.sessions)),
		index:    make(map[string]int, len(d.index)),
	}
	for i, s := range d.sessions {
		c.sessions[i] = s.Clone()
		c.index[s.exercise.Name] = i
	}
	return c
}

// Plan is a week of training days ordered by day number.
type Plan struct {
	Days []*Day
}

// TotalCalories sums the calorie estimates of all days.
func (p *Plan) TotalCalories() float64 {
	var total float64
	for _, d := range p.Days {
		total += d.TotalCalories()
	}
	return total
}

// MuscleOccurrences maps every non-cardio muscle group to the ascending 0-based indices of the days it is trained on.
func (p *Plan) MuscleOccurrences() map[MuscleGroup][]int {
	occurrences := make(map[MuscleGroup][]int)
	for _, mg := range MuscleGroups() {
		if mg != MuscleCardio {
			occurrences[mg] = nil
		}
	}
	for i, d := range p.Days {
		for _, s := range d.sessions {
			mg := s.exercise.PrimaryMuscle
			days, tracked := occurrences[mg]
			if !tracked {
				continue
			}
			if len(days) == 0 || days[len(days)-1] != i {
				occurrences[mg] = append(days, i)
			}
		}
	}
	return occurrences
}

// HasCardio reports whether any session of the plan is cardio.
func (p *Plan) HasCardio() bool {
	for _, d := range p.Days {
		for _, s := range d.sessions {
			if s.exercise.IsCardio() {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of the plan that shares no days or sessions with p.
func (p *Plan) Clone() *Plan {
	days := make([]*Day, len(p.Days))
	for i, d := range p.Days {
		days[i] = d.Clone()
	}
	return &Plan{Days: days}
}
