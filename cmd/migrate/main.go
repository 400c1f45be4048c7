// Command migrate applies or inspects the embedded goose migrations.
//
//	migrate up|down|status|version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"framtt_backend/migrations"
	"framtt_backend/platform/config"
	"framtt_backend/platform/db"
	"framtt_backend/platform/logger"
)

const usage = "usage: migrate up|down|status|version"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, os.Args[1]); err != nil {
		log.Error("migration command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger, command string) error {
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	migrator, err := db.NewMigrator(pool, migrations.FS, log)
	if err != nil {
		return err
	}
	defer func() { _ = migrator.Close() }()

	switch command {
	case "up":
		return migrator.Up(ctx)
	case "down":
		return migrator.Down(ctx)
	case "status":
		return migrator.Status(ctx)
	case "version":
		version, err := migrator.Version(ctx)
		if err != nil {
			return err
		}
		log.Info("current schema version", "version", version)
		return nil
	default:
		return fmt.Errorf("unknown command %q; %s", command, usage)
	}
}
