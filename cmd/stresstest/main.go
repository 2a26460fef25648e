package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/e2etest"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/errors"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/logging"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

const (
	defaultScenarios        = 20
	maxConcurrentScenarios  = 8
	scenarioTimeout         = time.Minute
	successRateThreshold    = 95.0
	percentageMultiplier    = 100
	minArgsCount            = 2
	maxArgsCount            = 3
	maxAvailableDaysInCycle = 7
)

//nolint:gochecknoglobals // read-only fixtures cycled through by the scenarios.
var (
	fitnessLevels = []string{"beginner", "intermediate", "advanced"}
	goals         = []string{"hypertrophy", "strength", "endurance"}
	equipmentSets = [][]string{{}, {"Dumbbells"}, {"Barbell", "Bench"}, {"Treadmill", "Kettlebell", "Pull-up Bar"}}
)

// scenarioProfile derives a varied but reproducible profile from the scenario index. Every profile is valid, so
// any failed scenario counts against the server.
func scenarioProfile(i int) map[string]any {
	return map[string]any{
		"fitnessLevel":  fitnessLevels[i%len(fitnessLevels)],
		"goal":          goals[i%len(goals)],
		"availableDays": i%maxAvailableDaysInCycle + 1,
		"calorieGoal":   1200 + 100*(i%10), //nolint:mnd // 1200-2100 kcal.
		"equipment":     equipmentSets[i%len(equipmentSets)],
	}
}

// RunLoadTest runs n generation scenarios concurrently and fails when too many of them fail.
func RunLoadTest(ctx context.Context, client *e2etest.Client, n int, logger *slog.Logger) error {
	logger.LogAttrs(ctx, slog.LevelInfo, "Starting load test", slog.Int("scenarios", n))

	var successCount, failureCount atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentScenarios)
	for i := range n {
		g.Go(func() error {
			scenarioCtx, cancel := context.WithTimeout(ctx, scenarioTimeout)
			defer cancel()

			start := time.Now()
			userID, err := client.GeneratePlan(scenarioCtx, scenarioProfile(i))
			if err != nil {
				failureCount.Add(1)
				// Individual failures only count against the success rate.
				logger.LogAttrs(scenarioCtx, slog.LevelWarn, "Scenario failed",
					slog.Int("scenario", i), slog.String("user_id", userID), errors.SlogError(err))
				return nil
			}
			successCount.Add(1)
			logger.LogAttrs(scenarioCtx, slog.LevelDebug, "Scenario succeeded",
				slog.Int("scenario", i), slog.String("user_id", userID), slog.Duration("duration", time.Since(start)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load test failed: %w", err)
	}

	successRate := float64(successCount.Load()) / float64(n) * percentageMultiplier
	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed",
		slog.Int64("successful", successCount.Load()),
		slog.Int64("failed", failureCount.Load()),
		slog.Float64("success_rate", successRate))

	if successRate < successRateThreshold {
		return fmt.Errorf("load test failed: success rate %.1f%% below threshold", successRate)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) < minArgsCount || len(os.Args) > maxArgsCount {
		logger.LogAttrs(ctx, slog.LevelError, "usage: stresstest <hostname> [scenarios]")
		os.Exit(1)
	}

	var (
		hostname  = os.Args[1]
		scenarios = defaultScenarios
		start     = time.Now()
		err       error
	)
	if len(os.Args) == maxArgsCount {
		if scenarios, err = strconv.Atoi(os.Args[2]); err != nil || scenarios < 1 {
			logger.LogAttrs(ctx, slog.LevelError, "scenarios must be a positive integer",
				slog.String("scenarios", os.Args[2]))
			os.Exit(1)
		}
	}
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))

	url := "https://" + hostname
	if strings.HasPrefix(hostname, "localhost") {
		url = "http://" + hostname
	}
	client := e2etest.NewClient(url)
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", errors.SlogError(err))
		os.Exit(1)
	}

	if err = RunLoadTest(ctx, client, scenarios, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "load test failed", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed successfully 🙌",
		slog.Duration("total_duration", time.Since(start)))
}
