package queue

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Message is one lead event delivery. Ack and Nack settle it with the broker.
type Message struct {
	Body        []byte
	Redelivered bool
	Ack         func(multiple bool) error
	Nack        func(multiple bool, requeue bool) error
}

type RabbitMQConsumer interface {
	Consume(ctx context.Context) (<-chan Message, error)
	Close() error
}

type rabbitMQConsumer struct {
	channel     *amqp.Channel
	queue       string
	consumerTag string
	prefetch    int
	logger      zerolog.Logger
}

// NewRabbitMQConsumer reads lead events from queue. prefetch should match the number
// of notification workers so the broker never holds back a free worker.
func NewRabbitMQConsumer(channel *amqp.Channel, queue, consumerTag string, prefetch int, logger zerolog.Logger) RabbitMQConsumer {
	return &rabbitMQConsumer{
		channel:     channel,
		queue:       queue,
		consumerTag: consumerTag,
		prefetch:    prefetchCount(prefetch),
		logger:      logger.With().Str("queue", queue).Logger(),
	}
}

func prefetchCount(workers int) int {
	if workers < 1 {
		return 1
	}
	return workers
}

// Consume forwards deliveries until ctx is done. Deliveries are settled by the caller.
func (c *rabbitMQConsumer) Consume(ctx context.Context) (<-chan Message, error) {
	if err := c.channel.Qos(c.prefetch, 0, false); err != nil {
		return nil, err
	}

	deliveries, err := c.channel.Consume(
		c.queue,       // queue
		c.consumerTag, // consumer
		false,         // auto-ack
		false,         // exclusive
		false,         // no-local
		false,         // no-wait
		nil,           // args
	)
	if err != nil {
		return nil, err
	}

	output := make(chan Message)
	go c.forward(ctx, deliveries, output)

	c.logger.Info().
		Str("consumer_tag", c.consumerTag).
		Int("prefetch", c.prefetch).
		Msg("Listening for lead events")

	return output, nil
}

func (c *rabbitMQConsumer) forward(ctx context.Context, deliveries <-chan amqp.Delivery, output chan<- Message) {
	defer close(output)

	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				c.logger.Warn().Msg("Lead event delivery channel closed")
				return
			}
			if d.Redelivered {
				c.logger.Debug().Uint64("delivery_tag", d.DeliveryTag).Msg("Lead event redelivered")
			}

			msg := Message{
				Body:        d.Body,
				Redelivered: d.Redelivered,
				Ack:         d.Ack,
				Nack:        d.Nack,
			}

			select {
			case output <- msg:
			case <-ctx.Done():
				// Unhandled; give it back so another consumer can send the emails.
				_ = d.Nack(false, true)
				return
			}
		}
	}
}

func (c *rabbitMQConsumer) Close() error {
	return c.channel.Cancel(c.consumerTag, false)
}
