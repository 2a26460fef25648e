package workoutplan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/logging"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/planner"
)

// Generator produces a plan for a profile. *planner.Engine implements it.
type Generator interface {
	Generate(ctx context.Context, profile planner.UserProfile) (*planner.Plan, error)
}

// Service loads profiles, generates plans for them and writes the plans back.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new workout plan service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// GeneratePlan validates userID, loads the profile, generates a plan with gen and stores it on the profile.
//
// Every failure is reported as an error result. A result is successful only when the plan has been written back.
func (s *Service) GeneratePlan(ctx context.Context, gen Generator, userID string) Result {
	ctx = logging.WithAttrs(ctx, slog.String("user_id", userID))

	if err := ValidateUserID(userID); err != nil {
		var idErr *UserIDError
		errors.As(err, &idErr)
		return s.fail(ctx, err, "Invalid user ID format: "+idErr.Detail)
	}

	doc, err := s.repo.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return s.fail(ctx, err, "User not found")
	}
	if err != nil {
		return s.fail(ctx, err, "Unexpected error: "+err.Error())
	}

	profile, err := doc.UserProfile()
	if err != nil {
		var missing *MissingFieldError
		if errors.As(err, &missing) {
			return s.fail(ctx, err, fmt.Sprintf("Missing field in user profile: '%s'", missing.Field))
		}
		return s.fail(ctx, err, "Error processing user profile: "+err.Error())
	}

	plan, err := gen.Generate(ctx, profile)
	if errors.Is(err, planner.ErrInvalidProfile) {
		return s.fail(ctx, fmt.Errorf("%w: %w", ErrInvalidProfile, err), "Error processing user profile: "+err.Error())
	}
	if err != nil {
		return s.fail(ctx, err, "Unexpected error: "+err.Error())
	}
	if err = ctx.Err(); err != nil {
		return s.fail(ctx, err, "Unexpected error: "+err.Error())
	}

	planDoc := planner.Serialize(plan, s.now())
	if err = s.repo.SavePlan(ctx, userID, planDoc); err != nil {
		if errors.Is(err, ErrNotFound) {
			return s.fail(ctx, err, "User not found")
		}
		return s.fail(ctx, err, "Unexpected error: "+err.Error())
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "generated workout plan",
		slog.Int("days", len(planDoc.WeeklyPlan)),
		slog.Float64("total_weekly_calories", planDoc.TotalWeeklyCalories))
	return succeeded(planDoc)
}

func (s *Service) fail(ctx context.Context, err error, message string) Result {
	s.logger.LogAttrs(ctx, slog.LevelWarn, "workout plan generation failed",
		slog.String("message", message), slog.Any("error", err))
	return failed(err, message)
}

// CreateProfile validates doc and stores it under a fresh object id. Validation failures wrap ErrInvalidProfile.
func (s *Service) CreateProfile(ctx context.Context, doc ProfileDocument) (ProfileDocument, error) {
	if err := doc.validateNew(); err != nil {
		return ProfileDocument{}, err
	}
	doc.ID = NewUserID()
	doc.WorkoutPlan = nil
	if err := s.repo.Create(ctx, doc); err != nil {
		return ProfileDocument{}, fmt.Errorf("create profile: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "created profile", slog.String("user_id", doc.ID))
	return doc, nil
}

// ListProfiles returns every stored profile.
func (s *Service) ListProfiles(ctx context.Context) ([]ProfileDocument, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return docs, nil
}

// GetProfile returns the profile with the given id. It returns ErrInvalidUserID for malformed ids and ErrNotFound
// for unknown ones.
func (s *Service) GetProfile(ctx context.Context, userID string) (ProfileDocument, error) {
	if err := ValidateUserID(userID); err != nil {
		return ProfileDocument{}, err
	}
	doc, err := s.repo.Get(ctx, userID)
	if err != nil {
		return ProfileDocument{}, fmt.Errorf("get profile: %w", err)
	}
	return doc, nil
}
