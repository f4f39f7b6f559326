// Package app assembles stores, cache and services from a Config. Both the
// HTTP server and the CLI start from here.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/jengzang/tracker-dashboard-go/internal/config"
	"github.com/jengzang/tracker-dashboard-go/internal/database"
	"github.com/jengzang/tracker-dashboard-go/internal/models"
	"github.com/jengzang/tracker-dashboard-go/internal/repository"
	"github.com/jengzang/tracker-dashboard-go/internal/service"
)

// Store is a location store that also accepts imports and counts rows
type Store interface {
	service.LocationStore
	InsertLocations(ctx context.Context, locations []models.RawLocation) error
	CountLocations(ctx context.Context) (int64, error)
}

// App holds the wired dependencies
type App struct {
	Config   *config.Config
	Store    Store
	Runs     *repository.MaintenanceRunRepository
	Sessions *service.SessionService
	Prune    *service.PruneService

	sqlite *sql.DB
	pool   *pgxpool.Pool
	redis  *redis.Client
}

// New opens every backend named by cfg. The sqlite database always holds the
// maintenance run history; locations live in sqlite or Postgres per
// storage.driver.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	if dir := filepath.Dir(cfg.Storage.DBPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := database.OpenAndMigrate(database.Config{Path: cfg.Storage.DBPath})
	if err != nil {
		return nil, err
	}
	a.sqlite = db
	a.Runs = repository.NewMaintenanceRunRepository(db)

	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := database.ConnectPostgres(ctx, cfg.Storage.PostgresURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.pool = pool
		if err := database.EnsurePostgresSchema(ctx, pool); err != nil {
			a.Close()
			return nil, err
		}
		a.Store = repository.NewPostgresLocationRepository(pool)
	default:
		a.Store = repository.NewLocationRepository(db)
	}
	logrus.WithField("driver", cfg.Storage.Driver).Info("[App] Location store ready")

	var cache service.SessionCache
	client, err := database.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password)
	switch {
	case err != nil:
		// the cache is an optimization; run without it
		logrus.WithError(err).Warn("[App] Session cache disabled")
	case client != nil:
		a.redis = client
		cache = repository.NewSessionCache(client, cfg.Redis.TTL)
		logrus.WithField("addr", cfg.Redis.Addr).Info("[App] Session cache enabled")
	}

	a.Sessions = service.NewSessionService(a.Store, cache, cfg.Sessions.MinRecords, cfg.Sessions.HideIncomplete)
	a.Prune = service.NewPruneService(a.Store, cache, a.Runs, cfg.Sessions.MinRecords)

	return a, nil
}

// Close releases every backend
func (a *App) Close() {
	if a.redis != nil {
		a.redis.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
	if a.sqlite != nil {
		a.sqlite.Close()
	}
}
