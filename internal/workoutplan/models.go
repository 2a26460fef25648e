// Package workoutplan loads user profiles, runs the planner for them and stores the generated plans.
package workoutplan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/planner"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when no profile has the requested id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidUserID is returned for ids that are not 24 character hexadecimal object ids.
	ErrInvalidUserID = errors.New("invalid user id")
	// ErrInvalidProfile is returned when a stored profile cannot be converted into planner input.
	ErrInvalidProfile = errors.New("invalid profile")
)

// UserIDLength is the length of a hexadecimal object id.
const UserIDLength = 24

// UserIDError describes why a user id was rejected. It matches ErrInvalidUserID.
type UserIDError struct {
	Detail string
}

func (e *UserIDError) Error() string {
	return "invalid user id: " + e.Detail
}

// Is reports whether target is ErrInvalidUserID.
func (e *UserIDError) Is(target error) bool {
	return target == ErrInvalidUserID
}

// ValidateUserID checks the length of id first and then that it is a hexadecimal object id.
func ValidateUserID(id string) error {
	if len(id) != UserIDLength {
		return &UserIDError{Detail: fmt.Sprintf("must be %d characters long.", UserIDLength)}
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return &UserIDError{Detail: err.Error()}
	}
	return nil
}

// NewUserID mints a fresh object id.
func NewUserID() string {
	return primitive.NewObjectID().Hex()
}

// MissingFieldError is returned when a required profile field is absent. It matches ErrInvalidProfile.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// Is reports whether target is ErrInvalidProfile.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrInvalidProfile
}

// ProfileDocument is a stored user profile. Optional pointer fields distinguish absent values from zero values.
type ProfileDocument struct {
	ID            string   `json:"id"`
	FitnessLevel  *string  `json:"fitnessLevel,omitempty"`
	Goal          *string  `json:"goal,omitempty"`
	AvailableDays *int     `json:"availableDays,omitempty"`
	CalorieGoal   *float64 `json:"calorieGoal,omitempty"`
	Equipment     []string `json:"equipment"`
	// SessionDuration is a legacy field. It is used as the weekly calorie target when CalorieGoal is unset.
	SessionDuration *float64              `json:"sessionDuration,omitempty"`
	WorkoutPlan     *planner.PlanDocument `json:"workoutPlan,omitempty"`
}

// UserProfile converts the document into planner input.
//
// Missing fitnessLevel, goal or availableDays yield a *MissingFieldError. Unknown categorical values and
// non-positive day counts yield an error wrapping ErrInvalidProfile.
func (d ProfileDocument) UserProfile() (planner.UserProfile, error) {
	if d.FitnessLevel == nil {
		return planner.UserProfile{}, &MissingFieldError{Field: "fitnessLevel"}
	}
	if d.Goal == nil {
		return planner.UserProfile{}, &MissingFieldError{Field: "goal"}
	}
	if d.AvailableDays == nil {
		return planner.UserProfile{}, &MissingFieldError{Field: "availableDays"}
	}

	level, err := planner.ParseFitnessLevel(*d.FitnessLevel)
	if err != nil {
		return planner.UserProfile{}, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	goal, err := planner.ParseGoal(*d.Goal)
	if err != nil {
		return planner.UserProfile{}, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	if *d.AvailableDays < 1 || *d.AvailableDays > planner.MaxAvailableDays {
		return planner.UserProfile{}, fmt.Errorf("%w: available days %d is not between 1 and %d", ErrInvalidProfile,
			*d.AvailableDays, planner.MaxAvailableDays)
	}

	profile := planner.UserProfile{
		FitnessLevel:   level,
		Goal:           goal,
		AvailableDays:  *d.AvailableDays,
		Equipment:      d.Equipment,
		TargetCalories: nil,
	}
	switch {
	case d.CalorieGoal != nil && *d.CalorieGoal > 0:
		profile.TargetCalories = d.CalorieGoal
	case d.SessionDuration != nil && *d.SessionDuration > 0:
		profile.TargetCalories = d.SessionDuration
	}
	if profile.TargetCalories != nil && *profile.TargetCalories > planner.MaxTargetCalories {
		return planner.UserProfile{}, fmt.Errorf("%w: calorie target %v exceeds %v", ErrInvalidProfile,
			*profile.TargetCalories, planner.MaxTargetCalories)
	}
	return profile.Normalized(), nil
}

// validateNew applies the input rules of profile creation: fitness level and goal present, one to seven available
// days, a positive calorie goal within planner.MaxTargetCalories, and an equipment list.
func (d ProfileDocument) validateNew() error {
	var problems []string
	if d.FitnessLevel == nil || strings.TrimSpace(*d.FitnessLevel) == "" {
		problems = append(problems, "fitnessLevel is required")
	}
	if d.Goal == nil || strings.TrimSpace(*d.Goal) == "" {
		problems = append(problems, "goal is required")
	}
	if d.AvailableDays == nil || *d.AvailableDays <= 0 || *d.AvailableDays > planner.MaxAvailableDays {
		problems = append(problems, fmt.Sprintf("availableDays must be between 1 and %d", planner.MaxAvailableDays))
	}
	if d.CalorieGoal == nil || *d.CalorieGoal <= 0 || *d.CalorieGoal > planner.MaxTargetCalories {
		problems = append(problems, fmt.Sprintf("calorieGoal must be positive and at most %v", planner.MaxTargetCalories))
	}
	if d.Equipment == nil {
		problems = append(problems, "equipment is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(problems, ", "))
	}
	return nil
}

// Status is the outcome of a generation request.
type Status string

// Status constants.
const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the structured outcome of GeneratePlan. Exactly one of Data and Error is set.
type Result struct {
	Status Status                `json:"status"`
	Data   *planner.PlanDocument `json:"data"`
	Error  *string               `json:"error"`

	err error
}

func succeeded(doc planner.PlanDocument) Result {
	return Result{Status: StatusSuccess, Data: &doc, Error: nil, err: nil}
}

func failed(err error, message string) Result {
	return Result{Status: StatusError, Data: nil, Error: &message, err: err}
}

// NewErrorResult reports a failure that happened outside GeneratePlan.
func NewErrorResult(err error, message string) Result {
	return failed(err, message)
}

// Err returns the error behind a failed result or nil on success. Match it against the package sentinels.
func (r Result) Err() error {
	return r.err
}
