// Command planner generates weekly workout plans for stored user profiles.
//
// Usage:
//
//	planner <user_id> [user_id...]
//
// Every user id produces one JSON result line on stdout in argument order. Logs go to stderr.
package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/envstruct"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/errors"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/logging"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/workoutplan"
	"golang.org/x/sync/errgroup"
)

const usage = "Usage: planner <user_id> [user_id...]"

var (
	errUsage         = errors.NewSentinel("no user ids given")
	errFailedResults = errors.NewSentinel("some workout plans could not be generated")
)

func run(
	ctx context.Context,
	logger *slog.Logger,
	lookupEnv func(string) (string, bool),
	args []string,
	stdout io.Writer,
) (err error) {
	var cancel context.CancelFunc
	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	encoder := json.NewEncoder(stdout)
	if len(args) == 0 {
		if err = encoder.Encode(workoutplan.NewErrorResult(errUsage, usage)); err != nil {
			return errors.Wrap(err, "write usage")
		}
		return errUsage
	}

	var cfg workoutplan.Config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	factory, err := workoutplan.NewEngineFactory(ctx, cfg, logger)
	if err != nil {
		return errors.Wrap(err, "create engine factory", slog.String("catalog_path", cfg.CatalogPath))
	}

	repo, closeRepo, err := workoutplan.OpenRepository(ctx, cfg, logger)
	if err != nil {
		return errors.Wrap(err, "open repository", slog.String("store", cfg.Store))
	}
	defer func() {
		if closeErr := closeRepo(context.WithoutCancel(ctx)); closeErr != nil {
			err = errors.Join(err, errors.Wrap(closeErr, "close repository"))
		}
	}()

	results := generateAll(ctx, workoutplan.NewService(repo, logger), factory, args)

	failed := 0
	for _, res := range results {
		if err = encoder.Encode(res); err != nil {
			return errors.Wrap(err, "write result")
		}
		if res.Status != workoutplan.StatusSuccess {
			failed++
		}
	}
	if failed > 0 {
		return errors.Wrap(errFailedResults, "generate workout plans",
			slog.Int("failed", failed), slog.Int("total", len(results)))
	}
	return nil
}

// generateAll runs one generation per user id with at most GOMAXPROCS running at a time. Results keep the order
// of userIDs.
func generateAll(
	ctx context.Context,
	svc *workoutplan.Service,
	factory *workoutplan.EngineFactory,
	userIDs []string,
) []workoutplan.Result {
	results := make([]workoutplan.Result, len(userIDs))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, userID := range userIDs {
		g.Go(func() error {
			engine, err := factory.Engine(uint64(i)) //nolint:gosec // i is a non-negative index.
			if err != nil {
				results[i] = workoutplan.NewErrorResult(err, "Unexpected error: "+err.Error())
				return nil
			}
			results[i] = svc.GeneratePlan(ctx, engine, userID)
			return nil
		})
	}
	// Failures are reported through results.
	_ = g.Wait()

	return results
}

func main() {
	ctx := context.Background()
	level, levelErr := logging.ParseLevel(os.Getenv("PLANNER_LOG_LEVEL"))
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   false,
		Level:       level,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if levelErr != nil {
		logger.LogAttrs(ctx, slog.LevelWarn, "ignoring invalid log level", errors.SlogError(levelErr))
	}
	if err := run(ctx, logger, os.LookupEnv, os.Args[1:], os.Stdout); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure generating workout plans", errors.SlogError(err))
		os.Exit(1)
	}
}
