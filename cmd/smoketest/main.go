package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/e2etest"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/errors"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/logging"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/testhelpers"
)

const smokeTimeout = time.Minute

// smokeProfile touches both a cardio goal and an equipment filter.
//
//nolint:gochecknoglobals // read-only fixture.
var smokeProfile = map[string]any{
	"fitnessLevel":  "beginner",
	"goal":          "endurance",
	"availableDays": 3,
	"calorieGoal":   1500,
	"equipment":     []string{"Dumbbells"},
}

// run waits for the server at hostname and pushes one profile through plan generation.
func run(ctx context.Context, hostname string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, smokeTimeout)
	defer cancel()

	url := "https://" + hostname
	if strings.HasPrefix(hostname, "localhost") {
		url = "http://" + hostname
	}
	client := e2etest.NewClient(url)
	if err := client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return "", errors.Wrap(err, "server not ready in time")
	}
	userID, err := client.GeneratePlan(ctx, smokeProfile)
	if err != nil {
		return userID, errors.Wrap(err, "generate plan", slog.String("user_id", userID))
	}
	return userID, nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	start := time.Now()
	ctx = logging.WithAttrs(ctx, slog.String("hostname", os.Args[1]))
	userID, err := run(ctx, os.Args[1])
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "smoke test failed", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.String("user_id", userID),
		slog.Duration("duration", time.Since(start)))
}
