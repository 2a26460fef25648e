package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/envstruct"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/errors"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/flightrecorder"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/logging"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/workoutplan"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type application struct {
	logger   *slog.Logger
	plans    *workoutplan.Service
	engines  *workoutplan.EngineFactory
	markdown goldmark.Markdown
	// recorder is nil unless PLANNER_TRACES_DIR is set.
	recorder *flightrecorder.Recorder
	// streams hands every generation request its own random stream.
	streams atomic.Uint64
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"PLANNER_ADDR" envDefault:"localhost:8081"`
	// TracesDir enables the flight recorder. Timed out generations dump an execution trace there.
	TracesDir string `env:"PLANNER_TRACES_DIR" envDefault:""`
}

func newApplication(logger *slog.Logger, plans *workoutplan.Service, engines *workoutplan.EngineFactory) *application {
	return &application{ //nolint:exhaustruct // recorder is optional and streams starts at zero.
		logger:   logger,
		plans:    plans,
		engines:  engines,
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) (err error) {
	var cancel context.CancelFunc
	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}
	var plannerCfg workoutplan.Config
	if err = envstruct.Populate(&plannerCfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate planner config")
	}

	engines, err := workoutplan.NewEngineFactory(ctx, plannerCfg, logger)
	if err != nil {
		return errors.Wrap(err, "create engine factory", slog.String("catalog_path", plannerCfg.CatalogPath))
	}

	repo, closeRepo, err := workoutplan.OpenRepository(ctx, plannerCfg, logger)
	if err != nil {
		return errors.Wrap(err, "open repository", slog.String("store", plannerCfg.Store))
	}
	defer func() {
		if closeErr := closeRepo(context.WithoutCancel(ctx)); closeErr != nil {
			err = errors.Join(err, errors.Wrap(closeErr, "close repository"))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "opened profile store", slog.String("store", plannerCfg.Store))

	app := newApplication(logger, workoutplan.NewService(repo, logger), engines)
	if cfg.TracesDir != "" {
		if app.recorder, err = flightrecorder.New(flightrecorder.Config{
			Logger:    logger,
			Directory: cfg.TracesDir,
			MinAge:    0,
			MaxBytes:  0,
			Cooldown:  0,
		}); err != nil {
			return errors.Wrap(err, "create flight recorder", slog.String("traces_dir", cfg.TracesDir))
		}
		if err = app.recorder.Start(ctx); err != nil {
			return errors.Wrap(err, "start flight recorder")
		}
		defer app.recorder.Stop(context.WithoutCancel(ctx))
	}
	if err = app.configureAndStartServer(ctx, cfg.Addr, app.routes()); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func main() {
	ctx := context.Background()
	level, levelErr := logging.ParseLevel(os.Getenv("PLANNER_LOG_LEVEL"))
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       level,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if levelErr != nil {
		logger.LogAttrs(ctx, slog.LevelWarn, "ignoring invalid log level", errors.SlogError(levelErr))
	}
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
