package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"

	clientstore "admission/internal/admission/store/client"
	"admission/internal/platform/config"
	"admission/internal/platform/logger"
	"admission/internal/platform/postgres"
	"admission/pkg/platform/sentinel"
	txcontext "admission/pkg/platform/tx"
)

// main applies the embedded schema to DATABASE_URL.
//
//	migrate up
//	migrate down
//	migrate version
//	migrate force <version>
//	migrate seed
func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: migrate [up|down|version|force <version>|seed]")
	}
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	if err := run(ctx, log, cfg.Database, flag.Args()); err != nil {
		log.ErrorContext(ctx, "migration failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, cfg config.DatabaseConfig, args []string) error {
	command := "up"
	if len(args) > 0 {
		command = args[0]
	}
	if cfg.URL == "" {
		return errors.New("DATABASE_URL is required")
	}

	db, err := postgres.Open(ctx, cfg)
	if err != nil {
		return err
	}
	m, err := postgres.NewMigrator(db)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer m.Close()

	switch command {
	case "up":
		err = m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			log.InfoContext(ctx, "schema is up to date")
			return nil
		}
		if err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		log.InfoContext(ctx, "migrations applied")

	case "down":
		err = m.Down()
		if errors.Is(err, migrate.ErrNoChange) {
			log.InfoContext(ctx, "nothing to roll back")
			return nil
		}
		if err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		log.InfoContext(ctx, "migrations rolled back")

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.InfoContext(ctx, "no migrations applied")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		log.InfoContext(ctx, "schema version", "version", version, "dirty", dirty)

	case "force":
		if len(args) < 2 {
			return errors.New("force requires a version number")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version: %w", err)
		}
		log.InfoContext(ctx, "schema version forced", "version", version)

	case "seed":
		store := clientstore.NewPostgres(db)
		err := txcontext.Run(ctx, db, func(ctx context.Context) error {
			return clientstore.Seed(ctx, store, clientstore.DefaultClients())
		})
		if errors.Is(err, sentinel.ErrConflict) {
			log.InfoContext(ctx, "clients already seeded")
			return nil
		}
		if err != nil {
			return err
		}
		log.InfoContext(ctx, "clients seeded", "count", len(clientstore.DefaultClients()))

	default:
		return fmt.Errorf("unknown command %q (use: up, down, version, force, seed)", command)
	}
	return nil
}
