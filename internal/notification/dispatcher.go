package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentshive/training-site/internal/models"
	"github.com/talentshive/training-site/internal/worker"
	"github.com/talentshive/training-site/internal/worker/queue"
)

const defaultSendTimeout = 30 * time.Second

type LeadNotifier interface {
	NotifyApplication(ctx context.Context, app *models.Application) bool
	NotifyContact(ctx context.Context, msg *models.ContactMessage) bool
}

// Dispatcher hands a stored lead to the notification path without waiting for it.
type Dispatcher interface {
	ApplicationCreated(app *models.Application)
	ContactCreated(msg *models.ContactMessage)
}

// PoolDispatcher runs the notifier on the in-process worker pool.
type PoolDispatcher struct {
	pool        *worker.WorkerPool
	notifier    LeadNotifier
	sendTimeout time.Duration
	logger      zerolog.Logger
}

func NewPoolDispatcher(pool *worker.WorkerPool, notifier LeadNotifier, sendTimeout time.Duration, logger zerolog.Logger) *PoolDispatcher {
	if sendTimeout <= 0 {
		sendTimeout = defaultSendTimeout
	}
	return &PoolDispatcher{
		pool:        pool,
		notifier:    notifier,
		sendTimeout: sendTimeout,
		logger:      logger,
	}
}

func (d *PoolDispatcher) ApplicationCreated(app *models.Application) {
	d.submit(app.ID, func(ctx context.Context) bool {
		return d.notifier.NotifyApplication(ctx, app)
	})
}

func (d *PoolDispatcher) ContactCreated(msg *models.ContactMessage) {
	d.submit(msg.ID, func(ctx context.Context) bool {
		return d.notifier.NotifyContact(ctx, msg)
	})
}

func (d *PoolDispatcher) submit(recordID string, notify func(ctx context.Context) bool) {
	accepted := d.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
		defer cancel()

		if !notify(ctx) {
			d.logger.Warn().Str("record_id", recordID).Msg("Notification not delivered")
		}
	})
	if !accepted {
		d.logger.Error().Str("record_id", recordID).Msg("Notification dropped")
	}
}

// QueueDispatcher publishes LeadCreatedEvent messages for the worker process. When
// publishing fails the lead is handed to fallback instead.
type QueueDispatcher struct {
	publisher queue.RabbitMQPublisher
	fallback  Dispatcher
	logger    zerolog.Logger
	now       func() time.Time
}

func NewQueueDispatcher(publisher queue.RabbitMQPublisher, fallback Dispatcher, logger zerolog.Logger) *QueueDispatcher {
	return &QueueDispatcher{
		publisher: publisher,
		fallback:  fallback,
		logger:    logger,
		now:       time.Now,
	}
}

func (d *QueueDispatcher) ApplicationCreated(app *models.Application) {
	event := models.LeadCreatedEvent{
		Type:        models.EventApplicationCreated,
		Application: app,
		Timestamp:   d.now().Unix(),
	}
	if err := d.publish(event); err != nil {
		d.logger.Error().Err(err).Str("application_id", app.ID).Msg("Failed to publish lead event, notifying in process")
		d.fallback.ApplicationCreated(app)
	}
}

func (d *QueueDispatcher) ContactCreated(msg *models.ContactMessage) {
	event := models.LeadCreatedEvent{
		Type:           models.EventContactCreated,
		ContactMessage: msg,
		Timestamp:      d.now().Unix(),
	}
	if err := d.publish(event); err != nil {
		d.logger.Error().Err(err).Str("contact_id", msg.ID).Msg("Failed to publish lead event, notifying in process")
		d.fallback.ContactCreated(msg)
	}
}

func (d *QueueDispatcher) publish(event models.LeadCreatedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return d.publisher.Publish(context.Background(), body)
}
