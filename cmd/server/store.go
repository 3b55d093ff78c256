package main

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tbourn/table-reservations/internal/config"
	"github.com/tbourn/table-reservations/internal/http/handlers"
	"github.com/tbourn/table-reservations/internal/repo"
	"github.com/tbourn/table-reservations/internal/services"
)

// backend bundles what the server needs from a configured state store.
type backend struct {
	State services.StateStore
	Idem  handlers.IdempotencyStore
	Ready func(ctx context.Context) error
	Close func() error
}

// openBackend connects to the store named by cfg.Backend. SQL backends are
// migrated and traced; the memory backend has no idempotency store.
func openBackend(ctx context.Context, cfg config.StoreConfig) (*backend, error) {
	switch cfg.Backend {
	case repo.BackendMemory:
		return &backend{
			State: repo.NewMemoryStateStore(),
			Close: func() error { return nil },
		}, nil

	case repo.BackendRedis:
		client, err := repo.NewRedisClient(ctx, repo.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TLS:      cfg.RedisTLS,
		})
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		return &backend{
			State: repo.NewRedisStateStore(client, cfg.RedisPrefix),
			Idem:  &repo.RedisIdempotency{Client: client, Prefix: cfg.RedisPrefix},
			Ready: func(ctx context.Context) error { return client.Ping(ctx).Err() },
			Close: client.Close,
		}, nil

	case repo.BackendSQLite, repo.BackendPostgres, repo.BackendMySQL, "":
		db, err := repo.OpenDatabase(cfg.Backend, cfg.DBPath, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", cfg.Backend, err)
		}
		if err := repo.EnableTracing(db); err != nil {
			return nil, fmt.Errorf("gorm tracing: %w", err)
		}
		if err := repo.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return &backend{
			State: repo.NewGormStateStore(db),
			Idem:  &repo.GormIdempotency{DB: db},
			Ready: func(ctx context.Context) error {
				_, _, err := repo.StateStats(ctx, db)
				return err
			},
			Close: closeDB(db),
		}, nil
	}
	return nil, errors.New("unknown store backend " + cfg.Backend)
}

func closeDB(db *gorm.DB) func() error {
	return func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
}
