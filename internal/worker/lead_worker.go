package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentshive/training-site/internal/models"
	"github.com/talentshive/training-site/internal/worker/queue"
)

// LeadHandler reacts to a stored lead, typically by sending notification emails.
type LeadHandler interface {
	HandleLeadCreated(ctx context.Context, event models.LeadCreatedEvent) error
}

type WorkerStats struct {
	ActiveWorkers  int `json:"active_workers"`
	TotalProcessed int `json:"total_processed"`
	FailedJobs     int `json:"failed_jobs"`
	QueueLength    int `json:"queue_length"`
}

// LeadWorker consumes LeadCreatedEvent messages from the broker and hands each one
// to a LeadHandler on the worker pool.
type LeadWorker struct {
	workerPool *WorkerPool
	consumer   queue.RabbitMQConsumer
	handler    LeadHandler
	logger     zerolog.Logger

	stats      WorkerStats
	statsMutex sync.RWMutex
	startTime  time.Time
	done       chan struct{}
}

func NewLeadWorker(workerPool *WorkerPool, consumer queue.RabbitMQConsumer, handler LeadHandler, logger zerolog.Logger) *LeadWorker {
	return &LeadWorker{
		workerPool: workerPool,
		consumer:   consumer,
		handler:    handler,
		logger:     logger,
		startTime:  time.Now(),
		done:       make(chan struct{}),
	}
}

func (w *LeadWorker) Start(ctx context.Context) error {
	w.workerPool.Start()

	msgs, err := w.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("failed to start consuming messages: %w", err)
	}

	go w.processMessages(ctx, msgs)

	w.logger.Info().Msg("Lead worker started")
	return nil
}

// Done is closed once the delivery channel has been drained.
func (w *LeadWorker) Done() <-chan struct{} {
	return w.done
}

func (w *LeadWorker) Stop() {
	if err := w.consumer.Close(); err != nil {
		w.logger.Error().Err(err).Msg("Failed to close queue consumer")
	}

	w.workerPool.Stop()

	stats := w.GetStats()
	w.logger.Info().
		Int("total_processed", stats.TotalProcessed).
		Int("failed_jobs", stats.FailedJobs).
		Dur("uptime", time.Since(w.startTime)).
		Msg("Lead worker stopped")
}

func (w *LeadWorker) processMessages(ctx context.Context, msgs <-chan queue.Message) {
	defer close(w.done)

	for msg := range msgs {
		msg := msg
		submitted := w.workerPool.Submit(func() {
			w.finish(msg, w.processMessage(ctx, msg))
		})
		if !submitted {
			if err := msg.Nack(false, true); err != nil {
				w.logger.Error().Err(err).Msg("Failed to nack message")
			}
		}
	}
}

// finish settles msg. Failed events are dropped rather than requeued: notification
// emails are sent at most once.
func (w *LeadWorker) finish(msg queue.Message, err error) {
	w.statsMutex.Lock()
	if err != nil {
		w.stats.FailedJobs++
	} else {
		w.stats.TotalProcessed++
	}
	w.statsMutex.Unlock()

	if err == nil {
		if ackErr := msg.Ack(false); ackErr != nil {
			w.logger.Error().Err(ackErr).Msg("Failed to ack message")
		}
		return
	}

	w.logger.Error().Err(err).Bool("redelivered", msg.Redelivered).Msg("Dropping lead event")
	if nackErr := msg.Nack(false, false); nackErr != nil {
		w.logger.Error().Err(nackErr).Msg("Failed to nack message")
	}
}

func (w *LeadWorker) processMessage(ctx context.Context, msg queue.Message) error {
	var event models.LeadCreatedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	var recordID string
	switch event.Type {
	case models.EventApplicationCreated:
		if event.Application == nil {
			return errors.New("application event without application")
		}
		recordID = event.Application.ID
	case models.EventContactCreated:
		if event.ContactMessage == nil {
			return errors.New("contact event without contact message")
		}
		recordID = event.ContactMessage.ID
	default:
		return fmt.Errorf("unknown event type %q", event.Type)
	}

	w.logger.Debug().
		Str("event_type", event.Type).
		Str("record_id", recordID).
		Msg("Handling lead event")

	return w.handler.HandleLeadCreated(ctx, event)
}

func (w *LeadWorker) GetStats() WorkerStats {
	w.statsMutex.RLock()
	defer w.statsMutex.RUnlock()

	stats := w.stats
	stats.ActiveWorkers = w.workerPool.GetActiveWorkers()
	stats.QueueLength = w.workerPool.GetQueueLength()
	return stats
}
