package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/talentshive/training-site/internal/config"
	"github.com/talentshive/training-site/internal/delivery/httpd"
	"github.com/talentshive/training-site/internal/middleware"
	"github.com/talentshive/training-site/internal/notification"
	"github.com/talentshive/training-site/internal/repository"
	"github.com/talentshive/training-site/internal/service"
	"github.com/talentshive/training-site/internal/validation"
	"github.com/talentshive/training-site/internal/worker"
	"github.com/talentshive/training-site/internal/worker/queue"
)

type App struct {
	server *http.Server
	logger zerolog.Logger
	config *config.Config
	db     *sql.DB
	pool   *worker.WorkerPool
	broker *queue.Connection
}

// New wires the HTTP API on top of repos. db may be nil; when set it is closed on
// Shutdown.
func New(cfg *config.Config, log zerolog.Logger, repos *repository.Repositories, db *sql.DB) (*App, error) {
	notifier, err := NewNotifier(cfg, log)
	if err != nil {
		return nil, err
	}

	pool := worker.NewWorkerPool(cfg.Workers.Count, cfg.Workers.QueueSize, log)
	pool.Start()

	var (
		dispatcher notification.Dispatcher = notification.NewPoolDispatcher(pool, notifier, cfg.Notification.SendTimeout, log)
		broker     *queue.Connection
	)
	if cfg.RabbitMQ.Enabled {
		broker, err = queue.Dial(cfg.RabbitMQ.URL, topology(cfg.RabbitMQ), log)
		if err != nil {
			log.Error().Err(err).Msg("Failed to connect to RabbitMQ, notifying in process")
		} else {
			publisher := queue.NewRabbitMQPublisher(broker.Channel(), cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey, log)
			dispatcher = notification.NewQueueDispatcher(publisher, dispatcher, log)
		}
	}

	validator := validation.New()

	handler := httpd.NewHandler(
		service.NewCatalogService(repos, validator, log),
		service.NewApplicationService(repos.Applications, validator, log),
		service.NewContactService(repos.ContactMessages, validator, log),
		service.NewStatsService(repos),
		dispatcher,
		validator,
		log,
	)

	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))
	if cfg.Server.RequestTimeout > 0 {
		router.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))
	}
	router.Use(middleware.NewCORS(cfg.CORS))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server: server,
		logger: log,
		config: cfg,
		db:     db,
		pool:   pool,
		broker: broker,
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting training site API on %s", a.config.Server.Address)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, then lets queued notifications finish before
// closing the broker and the database.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down training site API...")

	err := a.server.Shutdown(ctx)

	a.pool.Stop()

	if a.broker != nil {
		if cerr := a.broker.Close(); cerr != nil {
			a.logger.Error().Err(cerr).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.db != nil {
		if cerr := a.db.Close(); cerr != nil {
			a.logger.Error().Err(cerr).Msg("Failed to close database connection")
		}
	}

	return err
}

func topology(cfg config.RabbitMQConfig) queue.Topology {
	return queue.Topology{
		Exchange:   cfg.Exchange,
		Queue:      cfg.QueueName,
		RoutingKey: cfg.RoutingKey,
	}
}
