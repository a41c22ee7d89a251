package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/birdling/internal/bootstrap"
	"github.com/at-ishikawa/birdling/internal/config"
	"github.com/at-ishikawa/birdling/internal/database"
	"github.com/at-ishikawa/birdling/internal/learning"
	"github.com/at-ishikawa/birdling/internal/metrics"
	"github.com/at-ishikawa/birdling/internal/scheduler"
	"github.com/at-ishikawa/birdling/internal/species"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// environment is what the commands share: configuration, stores and the scheduler.
// Everything it opens is closed by the app's shutdown hooks.
type environment struct {
	cfg       *config.Config
	db        *sqlx.DB
	location  *time.Location
	metrics   *metrics.Manager
	items     learning.ItemRepository
	mastery   learning.MasteryRepository
	scheduler *scheduler.Scheduler
	learnerID int64
}

func newEnvironment(app *bootstrap.App) (*environment, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	location, err := cfg.Learning.Location()
	if err != nil {
		return nil, fmt.Errorf("cfg.Learning.Location() > %w", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	app.AddCloser("db", db)

	manager := metrics.NewManager()
	mastery := learning.NewDBMasteryRepository(db)
	return &environment{
		cfg:       cfg,
		db:        db,
		location:  location,
		metrics:   manager,
		items:     learning.NewDBItemRepository(db),
		mastery:   mastery,
		scheduler: scheduler.New(mastery, scheduler.WithLocation(location), scheduler.WithMetrics(manager)),
		learnerID: cfg.Learning.LearnerID,
	}, nil
}

func (env *environment) speciesClient(app *bootstrap.App) *species.Client {
	client := species.NewClient(
		env.cfg.Species.BaseURL,
		env.cfg.Species.APIToken,
		env.cfg.Species.Locale,
		env.cfg.Species.RetryAttempts,
		species.WithCache(env.cfg.Species.CacheDirectory),
		species.WithMetrics(env.metrics),
	)
	app.AddCloser("species", client)
	return client
}

// runWithEnvironment opens the environment, runs fn and closes everything afterwards.
// SQLite databases are created on first use, so their tables are created here too.
func runWithEnvironment(ctx context.Context, fn func(ctx context.Context, app *bootstrap.App, env *environment) error) error {
	app := bootstrap.New()
	return app.Run(ctx, func(ctx context.Context) error {
		env, err := newEnvironment(app)
		if err != nil {
			return err
		}
		if env.cfg.Database.Driver == database.DriverSQLite {
			if err := database.EnsureSchema(ctx, env.db); err != nil {
				return fmt.Errorf("database.EnsureSchema() > %w", err)
			}
		}
		return fn(ctx, app, env)
	})
}
