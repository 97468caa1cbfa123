package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"admission/internal/admission/oracle"
	"admission/internal/admission/ports"
	clientstore "admission/internal/admission/store/client"
	userstore "admission/internal/admission/store/user"
	"admission/internal/platform/config"
	"admission/internal/platform/postgres"
	"admission/internal/platform/redis"
)

type dependencies struct {
	clients ports.ClientDirectory
	oracle  ports.CreditLimitOracle
	users   ports.UserStore

	db    *sql.DB
	redis *redis.Client
}

// wire selects collaborators from configuration:
//   - DATABASE_URL set: Postgres directory and user store, otherwise in-memory
//   - CREDIT_ORACLE_URL set: HTTP oracle, otherwise static
//   - REDIS_URL set: oracle results cached in Redis
func wire(ctx context.Context, cfg *config.Config, log *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		deps.db = db
		if cfg.Database.AutoMigrate {
			if err := postgres.MigrateUp(ctx, db); err != nil {
				deps.Close()
				return nil, err
			}
		}
		deps.clients = clientstore.NewPostgres(db)
		deps.users = userstore.NewPostgres(db)
		log.InfoContext(ctx, "using postgres collaborators")
	} else {
		deps.clients = clientstore.NewInMemory(clientstore.DefaultClients()...)
		deps.users = userstore.NewInMemory()
		log.InfoContext(ctx, "using in-memory collaborators")
	}

	if cfg.Oracle.URL != "" {
		deps.oracle = oracle.NewHTTPClient(cfg.Oracle.URL, cfg.Oracle.APIKey, cfg.Oracle.Timeout)
	} else {
		deps.oracle = oracle.NewStatic(cfg.Oracle.DefaultLimit, nil)
	}

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		deps.Close()
		return nil, err
	}
	if rc != nil {
		deps.redis = rc
		deps.oracle = oracle.NewCached(deps.oracle, rc, cfg.Oracle.CacheTTL, oracle.WithCacheLogger(log))
		log.InfoContext(ctx, "caching credit limits in redis", "ttl", cfg.Oracle.CacheTTL)
	}

	return deps, nil
}

func (d *dependencies) Close() error {
	var errs []error
	if d.redis != nil {
		errs = append(errs, d.redis.Close())
	}
	if d.db != nil {
		errs = append(errs, d.db.Close())
	}
	return errors.Join(errs...)
}
