package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/nikolayk812/storefront-cart/internal/config"
	"github.com/nikolayk812/storefront-cart/internal/httpapi"
	"github.com/nikolayk812/storefront-cart/internal/logger"
	"github.com/nikolayk812/storefront-cart/internal/migrations"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/nikolayk812/storefront-cart/internal/repository"
)

// openedSlot is the configured slot plus whatever must be released on exit.
type openedSlot struct {
	port.Slot
	pinger httpapi.Pinger
	close  func()
}

func openSlot(ctx context.Context, cfg *config.Config, logg *logger.Logger) (openedSlot, error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.DriverFile:
		slot, err := repository.NewFileSlot(cfg.Storage.FileDir)
		if err != nil {
			return openedSlot{}, fmt.Errorf("repository.NewFileSlot: %w", err)
		}
		return openedSlot{Slot: slot, close: noop}, nil

	case config.DriverRedis:
		slot, err := repository.NewRedisSlot(ctx, cfg.Redis)
		if err != nil {
			return openedSlot{}, fmt.Errorf("repository.NewRedisSlot: %w", err)
		}
		return openedSlot{
			Slot:   guard(cfg, slot, logg),
			pinger: slot,
			close: func() {
				if err := slot.Close(); err != nil {
					logg.Error(ctx, "error closing redis", err)
				}
			},
		}, nil

	case config.DriverPostgres:
		pool, err := openPool(ctx, cfg.Postgres, shouldMigrate(cfg), logg)
		if err != nil {
			return openedSlot{}, err
		}
		slot := repository.NewPostgresSlot(pool)
		return openedSlot{Slot: guard(cfg, slot, logg), pinger: slot, close: pool.Close}, nil

	default:
		return openedSlot{Slot: repository.NewMemorySlot(), close: noop}, nil
	}
}

// guard puts a circuit breaker in front of a remote slot.
func guard(cfg *config.Config, slot port.Slot, logg *logger.Logger) port.Slot {
	if !cfg.Breaker.Enabled {
		return slot
	}
	return repository.NewBreakerSlot(cfg.Storage.Driver+"-slot", slot, cfg.Breaker, logg)
}

// shouldMigrate applies the embedded migrations on startup in dev only; other
// environments run them out of band.
func shouldMigrate(cfg *config.Config) bool {
	return cfg.App.IsDev() && cfg.Postgres.AutoMigrate
}

func openPool(ctx context.Context, cfg config.PostgresConfig, migrate bool, logg *logger.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	if migrate {
		db := stdlib.OpenDBFromPool(pool)
		err := migrations.Up(ctx, db)
		if closeErr := db.Close(); closeErr != nil {
			logg.Warn(ctx, "error closing migration db handle", closeErr)
		}
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations.Up: %w", err)
		}
		logg.Info(ctx, "cart slot migrations applied")
	}

	return pool, nil
}
