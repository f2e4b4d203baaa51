package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentshive/training-site/internal/config"
	"github.com/talentshive/training-site/internal/database"
	"github.com/talentshive/training-site/internal/notification"
	"github.com/talentshive/training-site/internal/repository"
)

const pingTimeout = 5 * time.Second

// OpenStore builds the repositories selected by storage.driver and seeds them when
// storage.seed is set. The returned *sql.DB is nil for the memory driver.
func OpenStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repository.Repositories, *sql.DB, error) {
	var (
		repos *repository.Repositories
		db    *sql.DB
	)

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		var err error
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, nil, err
		}

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}

		log.Info().Msg("Database connection established")
		repos = repository.NewPostgresRepositories(db, log)
	default:
		repos = repository.NewMemoryRepositories()
	}

	if cfg.Storage.Seed {
		if err := repository.Seed(ctx, repos, time.Now()); err != nil {
			if db != nil {
				db.Close()
			}
			return nil, nil, fmt.Errorf("failed to seed store: %w", err)
		}
		log.Info().Str("driver", cfg.Storage.Driver).Msg("Store seeded")
	}

	return repos, db, nil
}

// NewNotifier picks SendGrid when an API key is configured and the logging sender
// otherwise, optionally archiving every message to MinIO.
func NewNotifier(cfg *config.Config, log zerolog.Logger) (*notification.Notifier, error) {
	renderer, err := notification.NewRenderer(cfg.Notification.Brand, cfg.Notification.SiteURL)
	if err != nil {
		return nil, err
	}

	var sender notification.Sender
	if cfg.Notification.SendGridAPIKey != "" {
		sender = notification.NewSendGridSender(cfg.Notification.SendGridAPIKey, cfg.Notification.Brand, log)
	} else {
		log.Warn().Msg("SendGrid API key not configured, emails will only be logged")
		sender = notification.NewLogSender(log)
	}

	if cfg.Archive.Enabled {
		store, err := notification.NewMinIOStore(
			cfg.Archive.Endpoint,
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			cfg.Archive.Bucket,
			cfg.Archive.Region,
			cfg.Archive.UseSSL,
			log,
		)
		if err != nil {
			return nil, err
		}
		sender = notification.NewArchiveSender(sender, store, log)
	}

	return notification.NewNotifier(sender, renderer, notification.Addresses{
		From:       cfg.Notification.FromAddress,
		Admissions: cfg.Notification.AdmissionsAddress,
		Contact:    cfg.Notification.ContactAddress,
	}, log), nil
}
