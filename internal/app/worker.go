package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/talentshive/training-site/internal/config"
	"github.com/talentshive/training-site/internal/worker"
	"github.com/talentshive/training-site/internal/worker/queue"
)

// RunWorker consumes lead events from RabbitMQ and sends their notifications until
// ctx is cancelled or the broker closes the delivery channel.
func RunWorker(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if !cfg.RabbitMQ.Enabled {
		return errors.New("rabbitmq.enabled must be true to run the notification worker")
	}

	notifier, err := NewNotifier(cfg, log)
	if err != nil {
		return err
	}

	broker, err := queue.Dial(cfg.RabbitMQ.URL, topology(cfg.RabbitMQ), log)
	if err != nil {
		return err
	}
	defer broker.Close()

	consumer := queue.NewRabbitMQConsumer(broker.Channel(), cfg.RabbitMQ.QueueName, cfg.RabbitMQ.ConsumerTag, cfg.Workers.Count, log)
	pool := worker.NewWorkerPool(cfg.Workers.Count, cfg.Workers.QueueSize, log)
	leadWorker := worker.NewLeadWorker(pool, consumer, notifier, log)

	if err := leadWorker.Start(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case <-leadWorker.Done():
		log.Warn().Msg("Lead event stream ended")
	}

	leadWorker.Stop()
	return nil
}
