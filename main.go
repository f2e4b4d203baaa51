package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/talentshive/training-site/internal/app"
	"github.com/talentshive/training-site/internal/config"
	"github.com/talentshive/training-site/internal/database"
	"github.com/talentshive/training-site/internal/delivery/cli"
	"github.com/talentshive/training-site/internal/service"
	"github.com/talentshive/training-site/internal/validation"
	"github.com/talentshive/training-site/pkg/logger"
)

func main() {
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)
	migrateDirection := migrateCmd.String("direction", "up", "direction of migration (up/down)")

	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "serve":
		serve()
	case "migrate":
		_ = migrateCmd.Parse(os.Args[2:])
		runMigrations(*migrateDirection)
	case "worker":
		runWorker()
	case "catalog":
		printCatalog()
	default:
		log := logger.New()
		log.Fatal().Str("command", command).Msg("Unknown command. Use serve, migrate, worker or catalog")
	}
}

func loadConfig() (*config.Config, zerolog.Logger) {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	return cfg, logger.NewWithConfig(cfg.Logging.Level, cfg.Logging.Pretty, cfg.Logging.NoColor)
}

func serve() {
	cfg, log := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	repos, db, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}

	application, err := app.New(cfg, log, repos, db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create application")
	}

	go func() {
		if err := application.Run(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run application")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown gracefully")
	}

	log.Info().Msg("Training site API stopped")
}

func runWorker() {
	cfg, log := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	if err := app.RunWorker(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Notification worker failed")
	}

	log.Info().Msg("Notification worker stopped")
}

func printCatalog() {
	cfg, log := loadConfig()
	ctx := context.Background()

	repos, db, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	if db != nil {
		defer db.Close()
	}

	printer := cli.NewCatalogPrinter(
		service.NewCatalogService(repos, validation.New(), log),
		service.NewStatsService(repos),
		os.Stdout,
	)
	if err := printer.Print(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to print catalog")
	}
}

func runMigrations(direction string) {
	cfg, log := loadConfig()

	migrator, err := database.NewMigrator(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create migrator")
	}

	switch direction {
	case "up":
		if err := migrator.Up(); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
		log.Info().Msg("Migrations applied successfully")
	case "down":
		if err := migrator.Down(); err != nil {
			log.Fatal().Err(err).Msg("Failed to rollback migrations")
		}
		log.Info().Msg("Migrations rolled back successfully")
	default:
		log.Fatal().Msg("Invalid migration direction. Use 'up' or 'down'")
	}
}
