package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/logging"
	"github.com/google/uuid"
)

// Profile limits. A plan covers one week and the calorie boost adds one set at a time, so an unbounded target
// turns into unbounded work.
const (
	MaxAvailableDays  = 7
	MaxTargetCalories = 50000.0
)

var (
	// ErrInvalidConfig is returned by Config.Validate and New for unusable engine parameters.
	ErrInvalidConfig = errors.New("invalid engine config")
	// ErrInvalidProfile is returned by Generate for profiles the engine cannot plan for.
	ErrInvalidProfile = errors.New("invalid user profile")
)

// Config holds the search budgets of the engine.
type Config struct {
	// PopulationSize is the number of plans in every generation.
	PopulationSize int
	// Generations is the number of generations the genetic algorithm runs.
	Generations int
	// MutationRate is the probability that a child is mutated.
	MutationRate float64
	// TournamentSize is the number of members competing in a tournament selection.
	TournamentSize int
	// HillClimbIterations is the number of perturbations tried by the local refiner.
	HillClimbIterations int
}

// DefaultConfig returns the standard search budgets.
func DefaultConfig() Config {
	return Config{
		PopulationSize:      50,  //nolint:mnd // default population.
		Generations:         100, //nolint:mnd // default generations.
		MutationRate:        0.1, //nolint:mnd // default mutation rate.
		TournamentSize:      3,   //nolint:mnd // default tournament size.
		HillClimbIterations: 50,  //nolint:mnd // default hill climbing budget.
	}
}

// Validate reports every invalid parameter.
func (c Config) Validate() error {
	var errs []error
	if c.PopulationSize < 1 {
		errs = append(errs, fmt.Errorf("population size %d is not positive", c.PopulationSize))
	}
	if c.Generations < 0 {
		errs = append(errs, fmt.Errorf("generations %d is negative", c.Generations))
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		errs = append(errs, fmt.Errorf("mutation rate %v is outside [0, 1]", c.MutationRate))
	}
	if c.TournamentSize < 1 {
		errs = append(errs, fmt.Errorf("tournament size %d is not positive", c.TournamentSize))
	}
	if c.HillClimbIterations < 0 {
		errs = append(errs, fmt.Errorf("hill climb iterations %d is negative", c.HillClimbIterations))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Engine generates workout plans. An Engine is not safe for concurrent use because it owns its random source;
// create one Engine per goroutine.
type Engine struct {
	cfg     Config
	catalog *Catalog
	rng     Rand
	logger  *slog.Logger
}

// New creates an engine. A nil logger discards all log output.
func New(cfg Config, catalog *Catalog, rng Rand, logger *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, fmt.Errorf("%w: catalog is nil", ErrInvalidCatalog)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: random source is nil", ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		cfg:     cfg,
		catalog: catalog,
		rng:     rng,
		logger:  logger,
	}, nil
}

// Generate searches a plan for the profile with the genetic algorithm and refines the best result with hill
// climbing. It returns ctx's error instead of a partial plan when ctx is done before the search completes.
func (e *Engine) Generate(ctx context.Context, profile UserProfile) (*Plan, error) {
	profile = profile.Normalized()
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	ctx = logging.WithAttrs(ctx, slog.String("run_id", uuid.NewString()))
	start := time.Now()
	e.logger.LogAttrs(ctx, slog.LevelDebug, "generating plan",
		slog.String("goal", string(profile.Goal)),
		slog.Int("available_days", profile.AvailableDays),
		slog.Any("equipment", profile.Equipment))

	evolved, evolvedScore := e.Evolve(ctx, profile)
	refined, refinedScore := e.Refine(ctx, evolved, profile)
	if err := ctx.Err(); err != nil {
		// The search was cut short. Its best plan is not a result.
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	e.logger.LogAttrs(ctx, slog.LevelInfo, "plan generated",
		slog.Float64("evolved_score", evolvedScore),
		slog.Float64("refined_score", refinedScore),
		slog.Duration("duration", time.Since(start)))

	return refined, nil
}

func validateProfile(profile UserProfile) error {
	if profile.AvailableDays < 1 || profile.AvailableDays > MaxAvailableDays {
		return fmt.Errorf("%w: available days %d is not between 1 and %d", ErrInvalidProfile, profile.AvailableDays,
			MaxAvailableDays)
	}
	if _, err := ParseGoal(string(profile.Goal)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	if profile.TargetCalories != nil && *profile.TargetCalories < 0 {
		return fmt.Errorf("%w: target calories %v is negative", ErrInvalidProfile, *profile.TargetCalories)
	}
	if profile.TargetCalories != nil && *profile.TargetCalories > MaxTargetCalories {
		return fmt.Errorf("%w: target calories %v exceed %v", ErrInvalidProfile, *profile.TargetCalories,
			MaxTargetCalories)
	}
	return nil
}

// Fitness scores plan for profile. It is equivalent to the package level Fitness.
func (e *Engine) Fitness(plan *Plan, profile UserProfile) float64 {
	return Fitness(plan, profile)
}
