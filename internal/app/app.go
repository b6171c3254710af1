// Package app wires configuration, storage, services and the HTTP router into
// a runnable server handler.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/baharkarakas/mini-linkedin/internal/api"
	"github.com/baharkarakas/mini-linkedin/internal/auth"
	"github.com/baharkarakas/mini-linkedin/internal/config"
	"github.com/baharkarakas/mini-linkedin/internal/db"
	"github.com/baharkarakas/mini-linkedin/internal/metrics"
	"github.com/baharkarakas/mini-linkedin/internal/repository"
	"github.com/baharkarakas/mini-linkedin/internal/repository/postgres"
	"github.com/baharkarakas/mini-linkedin/internal/repository/sqlite"
	"github.com/baharkarakas/mini-linkedin/internal/services"
	"github.com/baharkarakas/mini-linkedin/internal/worker"
)

const (
	activityWorkers  = 4
	activityQueueCap = 1024
)

type App struct {
	Handler http.Handler
	closers []func()
}

// New opens the configured store, applies migrations when enabled and builds
// the router. Close releases everything New acquired.
func New(ctx context.Context, cfg config.Config, log *slog.Logger, reg *prometheus.Registry) (*App, error) {
	a := &App{}

	repos, err := a.openStore(ctx, cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	wp := worker.NewPool(activityWorkers, activityQueueCap, m.SetQueueDepth)
	// drain queued activity before the store closes
	a.closers = append([]func(){wp.Stop}, a.closers...)

	activity := services.NewActivityRecorder(repos.Activity, wp, log)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	a.Handler = api.NewRouter(api.RouterDeps{
		Cfg:     cfg,
		Log:     log,
		Tokens:  tokens,
		Metrics: m,
		UserSvc: services.NewUserService(repos.Users, tokens, cfg.BcryptCost, activity, m),
		PostSvc: services.NewPostService(repos.Posts, repos.Users, activity, m),
	})
	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (repository.Repositories, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return repository.Repositories{}, fmt.Errorf("db connect: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		if cfg.Migrate {
			sqlDB := db.SQLFromPool(pool)
			err := db.RunMigrations(ctx, sqlDB, config.DriverPostgres)
			_ = sqlDB.Close()
			if err != nil {
				return repository.Repositories{}, err
			}
			log.Info("migrations applied", "driver", cfg.StoreDriver)
		}
		return postgres.NewRepositories(pool), nil

	case config.DriverSQLite:
		conn, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return repository.Repositories{}, fmt.Errorf("db open: %w", err)
		}
		a.closers = append(a.closers, func() { _ = conn.Close() })
		if cfg.Migrate {
			if err := db.RunMigrations(ctx, conn, config.DriverSQLite); err != nil {
				return repository.Repositories{}, err
			}
			log.Info("migrations applied", "driver", cfg.StoreDriver)
		}
		return sqlite.NewRepositories(conn), nil

	default:
		return repository.Repositories{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func (a *App) Close() {
	for _, c := range a.closers {
		c()
	}
	a.closers = nil
}
