package workoutplan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/planner"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/sqlite"
)

// ErrUnknownStore is returned for unsupported Config.Store values.
var ErrUnknownStore = errors.New("unknown store")

// Supported profile stores.
const (
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"
)

// Config selects the profile store and the engine budgets. Populate it with envstruct.Populate.
type Config struct {
	// Store is either sqlite or mongo.
	Store string `env:"PLANNER_STORE" envDefault:"sqlite"`
	// SqliteURL is the path to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"PLANNER_SQLITE_URL" envDefault:"./workoutdb.sqlite3"`
	// MongoURI is the connection string of the MongoDB deployment.
	MongoURI string `env:"PLANNER_MONGO_URI" envDefault:"mongodb://localhost:27017/"`
	// MongoDatabase is the database holding the profiles collection.
	MongoDatabase string `env:"PLANNER_MONGO_DATABASE" envDefault:"workoutdb"`
	// CatalogPath is an optional YAML exercise catalog replacing the built-in one.
	CatalogPath string `env:"PLANNER_CATALOG_PATH" envDefault:""`
	// Seed makes generation reproducible. Zero picks a random seed for every engine.
	Seed                uint64  `env:"PLANNER_SEED"                  envDefault:"0"`
	PopulationSize      int     `env:"PLANNER_POPULATION_SIZE"       envDefault:"50"`
	Generations         int     `env:"PLANNER_GENERATIONS"           envDefault:"100"`
	MutationRate        float64 `env:"PLANNER_MUTATION_RATE"         envDefault:"0.1"`
	HillClimbIterations int     `env:"PLANNER_HILL_CLIMB_ITERATIONS" envDefault:"50"`
}

// PlannerConfig returns the engine budgets with the tournament size of planner.DefaultConfig.
func (c Config) PlannerConfig() planner.Config {
	cfg := planner.DefaultConfig()
	cfg.PopulationSize = c.PopulationSize
	cfg.Generations = c.Generations
	cfg.MutationRate = c.MutationRate
	cfg.HillClimbIterations = c.HillClimbIterations
	return cfg
}

// OpenRepository opens the store selected by cfg. The returned function releases it.
func OpenRepository(ctx context.Context, cfg Config, logger *slog.Logger) (
	Repository, func(context.Context) error, error) {
	switch cfg.Store {
	case StoreSQLite:
		db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite database: %w", err)
		}
		return NewSQLiteRepository(db, logger), func(context.Context) error { return db.Close() }, nil
	case StoreMongo:
		repo, err := NewMongoRepository(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Store)
	}
}

// EngineFactory creates engines that share a catalog and budgets. Every engine owns its random source, so an
// engine must not be shared between goroutines but the factory can be.
type EngineFactory struct {
	cfg     planner.Config
	catalog *planner.Catalog
	seed    uint64
	logger  *slog.Logger
}

// NewEngineFactory validates the budgets of cfg and loads the catalog at cfg.CatalogPath, or uses the built-in
// catalog when the path is empty.
func NewEngineFactory(ctx context.Context, cfg Config, logger *slog.Logger) (*EngineFactory, error) {
	plannerCfg := cfg.PlannerConfig()
	if err := plannerCfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}

	catalog := planner.DefaultCatalog()
	if cfg.CatalogPath != "" {
		var err error
		if catalog, err = loadCatalogFile(cfg.CatalogPath); err != nil {
			return nil, err
		}
		logger.LogAttrs(ctx, slog.LevelInfo, "loaded exercise catalog",
			slog.String("path", cfg.CatalogPath), slog.Int("exercises", len(catalog.Exercises())))
	}

	return &EngineFactory{
		cfg:     plannerCfg,
		catalog: catalog,
		seed:    cfg.Seed,
		logger:  logger,
	}, nil
}

func loadCatalogFile(path string) (_ *planner.Catalog, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	catalog, err := planner.LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return catalog, nil
}

// Engine creates an engine. With a fixed seed, the engine for a given stream always draws the same random numbers.
func (f *EngineFactory) Engine(stream uint64) (*planner.Engine, error) {
	seed := f.seed
	if seed != 0 {
		seed += stream
	}
	engine, err := planner.New(f.cfg, f.catalog, planner.NewRand(seed), f.logger)
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	return engine, nil
}
